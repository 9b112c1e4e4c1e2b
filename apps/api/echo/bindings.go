package echoapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.DBOrdering{Field: field, Ascending: !descending})
	}
}

// parseID reads an integer path param; anything else cannot name a resource.
func parseID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

func bindGradeFilter(ctx echo.Context) (grade.QueryFilter, error) {
	// query only: reports read the filters on POST too, after the body was bound.
	var filter grade.QueryFilter
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &filter); err != nil {
		return filter, err
	}

	var flds []core.FieldError
	parse := func(param string) *float64 {
		raw := strings.TrimSpace(ctx.QueryParam(param))
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			flds = append(flds, core.FieldError{Field: param, Error: "enter a number"})
			return nil
		}
		return &f
	}
	filter.MinPct = parse("min_pct")
	filter.MaxPct = parse("max_pct")
	if len(flds) > 0 {
		return filter, core.NewValidationError(nil, flds...)
	}
	return filter, nil
}

// queryDay reads a YYYY-MM-DD query param. Missing means def.
func queryDay(ctx echo.Context, param string, def time.Time) (time.Time, error) {
	raw := strings.TrimSpace(ctx.QueryParam(param))
	if raw == "" {
		return def, nil
	}
	day, err := core.ParseDay(raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: param, Error: "enter a date as YYYY-MM-DD"})
	}
	return day, nil
}

func queryInt(ctx echo.Context, param string, def int) (int, error) {
	raw := strings.TrimSpace(ctx.QueryParam(param))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: param, Error: "enter a positive whole number"})
	}
	return n, nil
}
