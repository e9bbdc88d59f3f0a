package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/attendance"
	"github.com/trezcool/samvidha/core/dashboard"
)

const errAttendedExceedsConducted = "attended classes cannot exceed conducted classes"

type attendanceApi struct {
	svc      *dashboard.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *dashboard.Service, validate *validator.Validate) {
	api := attendanceApi{
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/attendance")
	ag.POST("/margin", api.margin)
	ag.POST("/status", api.status)
	ag.POST("/register", api.normalizeRegister)
	ag.POST("/dashboard", api.dashboard)
	ag.POST("/import", api.importPages)
}

// Handlers

func (api *attendanceApi) margin(ctx echo.Context) error {
	var data MarginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if *data.Attended > *data.Conducted {
		return core.NewValidationError(nil, core.FieldError{Field: "attended", Error: errAttendedExceedsConducted})
	}

	res, err := attendance.ComputeMargin(*data.Conducted, *data.Attended, api.svc.Target(data.Target))
	if err != nil {
		return errors.Wrap(err, "computing margin")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *attendanceApi) status(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, StatusResponse{Status: attendance.Classify(*data.Percentage, data.Status)})
}

func (api *attendanceApi) normalizeRegister(ctx echo.Context) error {
	var data RegisterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RegisterRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	year := data.ReferenceYear
	if year == 0 {
		year = api.svc.ReferenceYear()
	}
	return ctx.JSON(http.StatusOK, RegisterResponse{Rows: attendance.NewNormalizer(year).Normalize(data.Rows)})
}

func (api *attendanceApi) dashboard(ctx echo.Context) error {
	var data DashboardRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DashboardRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rep, err := api.svc.Build(data.toRequest())
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *attendanceApi) importPages(ctx echo.Context) error {
	var data ImportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImportRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rep, err := api.svc.Import(data.toPages(), data.Target)
	if err != nil {
		return errors.Wrap(err, "importing portal pages")
	}
	return ctx.JSON(http.StatusOK, rep)
}
