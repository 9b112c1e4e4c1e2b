package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/views"
)

const importFileField = "file"

type studentApi struct {
	svcs views.Services
}

func registerStudentAPI(g *echo.Group, svcs views.Services) {
	api := studentApi{svcs: svcs}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/import", api.importRoster)
	sg.GET("/import/template", api.importTemplate)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/detail", api.detail)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	page := views.NewStudents(api.svcs)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	page.SetSearch(ctx.QueryParam("search"))
	return ctx.JSON(http.StatusOK, page.View())
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	s, err := api.svcs.Students.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	s, err := api.svcs.Students.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) detail(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	page := views.NewStudentDetail(api.svcs, id)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, page.View())
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	s, err := api.svcs.Students.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return err
	}
	if err := api.svcs.Students.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) importRoster(ctx echo.Context) error {
	invalidFile := func(err error) error {
		return core.NewValidationError(err, core.FieldError{Field: importFileField, Error: errInvalidFileMsg})
	}

	fh, err := ctx.FormFile(importFileField)
	if err != nil {
		return invalidFile(err)
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening upload")
	}
	defer func() { _ = f.Close() }()

	rows, err := report.ReadStudents(f)
	if err != nil {
		return invalidFile(err)
	}

	// Import patches the roster snapshot, so it must be loaded first.
	page := views.NewStudents(api.svcs)
	if err := page.Load(ctx.Request().Context()); err != nil {
		return err
	}
	res, err := page.Import(ctx.Request().Context(), rows)
	if err != nil {
		return errors.Wrap(err, "importing students")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *studentApi) importTemplate(ctx echo.Context) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="students_template.xlsx"`)
	ctx.Response().Header().Set(echo.HeaderContentType, report.FormatXLSX.ContentType())
	ctx.Response().WriteHeader(http.StatusOK)
	return report.WriteStudentTemplate(ctx.Response())
}
