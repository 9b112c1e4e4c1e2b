package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/report"
	"github.com/trezcool/darasa/core/views"
)

type emailReportRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Format  string   `json:"format"`
	Subject string   `json:"subject"`
}

type reportApi struct {
	svcs     views.Services
	mailer   core.EmailService
	validate *validator.Validate
}

func registerReportAPI(g *echo.Group, svcs views.Services, mailer core.EmailService, validate *validator.Validate) {
	api := reportApi{svcs: svcs, mailer: mailer, validate: validate}

	rg := g.Group("/reports/:kind")
	rg.GET("", api.download)
	rg.POST("/email", api.email)
}

// build loads the page behind the report kind. Grade reports honor the grade
// list filters; attendance reports honor ?date= and cover every day without it.
func (api *reportApi) build(ctx echo.Context) (report.Report, error) {
	kind, err := report.ParseKind(ctx.Param("kind"))
	if err != nil {
		return report.Report{}, err
	}

	switch kind {
	case report.KindGrades:
		grades := gradeApi{svcs: api.svcs}
		page, err := grades.loadPage(ctx)
		if err != nil {
			return report.Report{}, err
		}
		return page.Report(), nil
	default:
		day, err := queryDay(ctx, "date", time.Time{})
		if err != nil {
			return report.Report{}, err
		}
		page := views.NewAttendance(api.svcs)
		if err := page.Load(ctx.Request().Context()); err != nil {
			return report.Report{}, err
		}
		return page.Report(day), nil
	}
}

func render(rep report.Report, f report.Format) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := report.Write(&buf, rep, f); err != nil {
		return nil, errors.Wrapf(err, "writing %s report", f)
	}
	return &buf, nil
}

// Handlers

func (api *reportApi) download(ctx echo.Context) error {
	format, err := report.ParseFormat(ctx.QueryParam("format"))
	if err != nil {
		return err
	}
	rep, err := api.build(ctx)
	if err != nil {
		return err
	}
	buf, err := render(rep, format)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rep.FileName(format)))
	return ctx.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (api *reportApi) email(ctx echo.Context) error {
	var data emailReportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to emailReportRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	format, err := report.ParseFormat(data.Format)
	if err != nil {
		return err
	}

	rep, err := api.build(ctx)
	if err != nil {
		return err
	}
	buf, err := render(rep, format)
	if err != nil {
		return err
	}

	msg := &core.EmailMessage{
		Subject: data.Subject,
		BodyStr: fmt.Sprintf("Please find attached the %s generated on %s.", rep.Title, rep.GeneratedAt.Format(core.DisplayLayout)),
	}
	if msg.Subject == "" {
		msg.Subject = rep.Title
	}
	for _, to := range data.To {
		msg.To = append(msg.To, mail.Address{Address: to})
	}
	if err := msg.Attach(buf, rep.FileName(format), format.ContentType()); err != nil {
		return errors.Wrap(err, "attaching report")
	}

	api.mailer.SendMessages(msg)
	return ctx.JSON(http.StatusAccepted, echo.Map{"sent_to": data.To, "file": rep.FileName(format)})
}
