package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/views"
)

func registerDashboardAPI(g *echo.Group, svcs views.Services) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		page := views.NewDashboard(svcs)
		if err := page.Load(ctx.Request().Context()); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, page.View())
	})
}
