package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
)

type attendanceApi struct {
	dispatcher *attendance.Dispatcher
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc attendance.Service, conf *core.Config) {
	api := attendanceApi{dispatcher: attendance.NewDispatcher(svc)}

	ag := g.Group("/analytics")
	// tokens are cumbersome in local dev; the guard only applies outside DEV|TEST
	if !(conf.Debug || conf.TestMode) {
		ag.Use(jwt)
	}

	ag.POST("/query", api.query)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	var req attendance.Request
	if err := ctx.Bind(&req); err != nil {
		return errors.Wrap(err, "binding to Request")
	}

	resp := api.dispatcher.Dispatch(ctx.Request().Context(), req)
	return ctx.JSON(resp.HTTPStatus(), resp)
}
