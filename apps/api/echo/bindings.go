package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/samvidha/core/attendance"
	"github.com/trezcool/samvidha/core/dashboard"
)

// A zero (omitted) target falls back to the configured one.

type (
	MarginRequest struct {
		Conducted *int    `json:"conducted" validate:"required,gte=0"`
		Attended  *int    `json:"attended" validate:"required,gte=0"`
		Target    float64 `json:"target" validate:"omitempty,target_percent"`
	}

	StatusRequest struct {
		Percentage *float64 `json:"percentage" validate:"required"`
		Status     string   `json:"status"`
	}

	StatusResponse struct {
		Status attendance.StatusCategory `json:"status"`
	}

	RegisterRequest struct {
		Rows          []attendance.RegisterRow `json:"rows" validate:"required"`
		ReferenceYear int                      `json:"reference_year" validate:"omitempty,gte=1,lte=9999"`
	}

	RegisterResponse struct {
		Rows []attendance.RegisterRow `json:"rows"`
	}

	DashboardRequest struct {
		Student   *dashboard.Student            `json:"student_info"`
		Courses   []attendance.CourseAttendance `json:"courses" validate:"required,dive"`
		Register  []attendance.RegisterRow      `json:"register"`
		Biometric *attendance.BiometricSummary  `json:"biometric"`
		Target    float64                       `json:"target" validate:"omitempty,target_percent"`
	}

	ImportRequest struct {
		AttendanceHTML string  `json:"attendance_html" validate:"required"`
		BiometricHTML  string  `json:"biometric_html"`
		RegisterHTML   string  `json:"register_html"`
		Target         float64 `json:"target" validate:"omitempty,target_percent"`
	}
)

func (r MarginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r StatusRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r RegisterRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r DashboardRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r DashboardRequest) toRequest() dashboard.Request {
	return dashboard.Request{
		Student:       r.Student,
		Courses:       r.Courses,
		Register:      r.Register,
		Biometric:     r.Biometric,
		TargetPercent: r.Target,
	}
}

func (r ImportRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}

func (r ImportRequest) toPages() dashboard.Pages {
	return dashboard.Pages{
		Attendance: r.AttendanceHTML,
		Biometric:  r.BiometricHTML,
		Register:   r.RegisterHTML,
	}
}
