package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/views"
)

type (
	markRequest struct {
		StudentID int               `json:"student_id"`
		Date      string            `json:"date"` // YYYY-MM-DD, defaults to the grid day
		Status    attendance.Status `json:"status"`
	}

	// bulkRequest marks every student with Status when Marks is empty.
	bulkRequest struct {
		Date   string            `json:"date"`
		Status attendance.Status `json:"status"`
		Marks  []markRequest     `json:"marks"`
	}

	statusRequest struct {
		Status attendance.Status `json:"status"`
	}
)

type attendanceApi struct {
	svcs views.Services
}

func registerAttendanceAPI(g *echo.Group, svcs views.Services) {
	api := attendanceApi{svcs: svcs}

	ag := g.Group("/attendance")
	ag.GET("", api.grid)
	ag.POST("/bulk", api.bulk)
	ag.PUT("/:student_id", api.mark)

	rg := ag.Group("/records/:id")
	rg.GET("", api.retrieve)
	rg.PUT("", api.update)
	rg.DELETE("", api.destroy)
}

// loadPage loads the grid on the ?date= day, today by default.
func (api *attendanceApi) loadPage(ctx echo.Context) (*views.Attendance, error) {
	page := views.NewAttendance(api.svcs)
	day, err := queryDay(ctx, "date", page.Date())
	if err != nil {
		return nil, err
	}
	if err := page.Load(ctx.Request().Context()); err != nil {
		return nil, err
	}
	page.SetDate(day)
	return page, nil
}

func parseBodyDay(raw string, def time.Time) (time.Time, error) {
	if core.CleanString(raw) == "" {
		return def, nil
	}
	day, err := core.ParseDay(raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(nil, core.FieldError{Field: "date", Error: "enter a date as YYYY-MM-DD"})
	}
	return day, nil
}

// Handlers

func (api *attendanceApi) grid(ctx echo.Context) error {
	page, err := api.loadPage(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.View())
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	studentID, err := parseID(ctx, "student_id")
	if err != nil {
		return err
	}
	var data statusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to statusRequest")
	}

	page, err := api.loadPage(ctx)
	if err != nil {
		return err
	}
	r, err := page.Mark(ctx.Request().Context(), studentID, data.Status)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *attendanceApi) bulk(ctx echo.Context) error {
	var data bulkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to bulkRequest")
	}

	page := views.NewAttendance(api.svcs)
	day, err := parseBodyDay(data.Date, page.Date())
	if err != nil {
		return err
	}
	marks := make([]attendance.Mark, 0, len(data.Marks))
	for _, m := range data.Marks {
		mDay, err := parseBodyDay(m.Date, day)
		if err != nil {
			return err
		}
		marks = append(marks, attendance.Mark{StudentID: m.StudentID, Date: mDay, Status: m.Status})
	}

	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	page.SetDate(day)

	var written []attendance.Record
	if len(marks) == 0 {
		written, err = page.MarkAll(ctx.Request().Context(), data.Status)
	} else {
		written, err = page.Bulk(ctx.Request().Context(), marks)
	}
	if err != nil {
		return errors.Wrap(err, "saving attendance")
	}
	return ctx.JSON(http.StatusOK, written)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	r, err := api.svcs.Attendance.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting attendance record")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	var data attendance.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}

	r, err := api.svcs.Attendance.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating attendance record")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svcs.Attendance.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting attendance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
