package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/views"
)

const defaultUpcomingDays = 7

type gradeApi struct {
	svcs views.Services
}

func registerGradeAPI(g *echo.Group, svcs views.Services) {
	api := gradeApi{svcs: svcs}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.POST("", api.create)
	gg.GET("/stats", api.stats)

	dg := gg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)

	ag := g.Group("/assignments")
	ag.GET("", api.assignments)
	ag.GET("/upcoming", api.upcoming)
}

// loadPage loads the grade book with the request filters applied.
func (api *gradeApi) loadPage(ctx echo.Context) (*views.Grades, error) {
	filter, err := bindGradeFilter(ctx)
	if err != nil {
		return nil, err
	}
	var ord Ordering
	ord.Bind(ctx)

	page := views.NewGrades(api.svcs)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return nil, err
	}
	page.SetFilter(filter)
	page.SetOrdering(ord.Orderings)
	return page, nil
}

// Handlers

func (api *gradeApi) query(ctx echo.Context) error {
	page, err := api.loadPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.View())
}

func (api *gradeApi) stats(ctx echo.Context) error {
	page, err := api.loadPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.View().Stats)
}

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}

	g, err := api.svcs.Grades.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	g, err := api.svcs.Grades.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	var data grade.UpdateGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGrade")
	}

	g, err := api.svcs.Grades.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svcs.Grades.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradeApi) assignments(ctx echo.Context) error {
	from, err := queryDay(ctx, "from", time.Time{})
	if err != nil {
		return err
	}
	to, err := queryDay(ctx, "to", time.Time{})
	if err != nil {
		return err
	}

	page := views.NewGrades(api.svcs)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.Assignments(from, to))
}

func (api *gradeApi) upcoming(ctx echo.Context) error {
	days, err := queryInt(ctx, "days", defaultUpcomingDays)
	if err != nil {
		return err
	}

	page := views.NewGrades(api.svcs)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.Upcoming(days))
}
