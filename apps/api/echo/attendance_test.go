package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/samvidha/core/attendance"
	"github.com/trezcool/samvidha/core/dashboard"
	"github.com/trezcool/samvidha/tests"
)

func Test_home(t *testing.T) {
	server, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Samvidha Attendance API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func Test_attendanceApi_margin(t *testing.T) {
	server, _ := setup(t)
	path := "/v1/attendance/margin"

	tests := []httpTest{
		{
			name: "safe (default target)", path: path, body: []byte(`{"conducted": 20, "attended": 18}`),
			wantCode: http.StatusOK, wantData: []byte(`{"safe": true, "count": 4}`),
		},
		{
			name: "unsafe (default target)", path: path, body: []byte(`{"conducted": 10, "attended": 6}`),
			wantCode: http.StatusOK, wantData: []byte(`{"safe": false, "count": 6}`),
		},
		{
			name: "unsafe (target 80)", path: path, body: []byte(`{"conducted": 30, "attended": 20, "target": 80}`),
			wantCode: http.StatusOK, wantData: []byte(`{"safe": false, "count": 20}`),
		},
		{
			name: "trailing slash", path: path + "/", body: []byte(`{"conducted": 4, "attended": 4}`),
			wantCode: http.StatusOK, wantData: []byte(`{"safe": true, "count": 1}`),
		},
		{
			name: "nothing conducted", path: path, body: []byte(`{"conducted": 0, "attended": 0}`),
			wantCode: http.StatusOK, wantData: []byte(`{"safe": true, "count": 0}`),
		},
		{
			name: "missing attended", path: path, body: []byte(`{"conducted": 10}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"attended": "this field is required"}`),
		},
		{
			name: "attended > conducted", path: path, body: []byte(`{"conducted": 5, "attended": 6}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"attended": "attended classes cannot exceed conducted classes"}`),
		},
		{
			name: "target too high", path: path, body: []byte(`{"conducted": 5, "attended": 5, "target": 100}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"target": "target must be greater than 0 and less than 100"}`),
		},
		{
			name: "target too close to 100", path: path, body: []byte(`{"conducted": 10, "attended": 0, "target": 99.99999999999999}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "computing margin: target (99.99999999999999) needs more than 2147483647 classes: invalid input"}),
		},
		{
			name: "wrong method", method: http.MethodGet, path: path,
			wantCode: http.StatusMethodNotAllowed, wantData: marshallObj(t, httpErr{Error: "Method Not Allowed"}),
		},
	}
	runHTTPTests(t, server, tests)
}

func Test_attendanceApi_margin_badPayload(t *testing.T) {
	server, _ := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/attendance/margin", []byte(`{"conducted": "ten"`))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newRequest(http.MethodPost, "/v1/attendance/margin", []byte(`{"conducted": -1, "attended": 0}`))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var fldErrs map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fldErrs))
	assert.Contains(t, fldErrs, "conducted")
}

func Test_attendanceApi_status(t *testing.T) {
	server, _ := setup(t)
	path := "/v1/attendance/status"

	tests := []httpTest{
		{
			name: "satisfactory", path: path, body: []byte(`{"percentage": 75}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Satisfactory"}`),
		},
		{
			name: "condonation", path: path, body: []byte(`{"percentage": 74.99}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Condonation"}`),
		},
		{
			name: "critical", path: path, body: []byte(`{"percentage": 64.99}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Critical"}`),
		},
		{
			name: "trusted label", path: path, body: []byte(`{"percentage": 40, "status": " Satisfactory "}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Satisfactory"}`),
		},
		{
			name: "unknown label", path: path, body: []byte(`{"percentage": 80, "status": "Shortage"}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Satisfactory"}`),
		},
		{
			name: "zero percentage", path: path, body: []byte(`{"percentage": 0}`),
			wantCode: http.StatusOK, wantData: []byte(`{"status": "Critical"}`),
		},
		{
			name: "missing percentage", path: path, body: []byte(`{"status": "Condonation"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"percentage": "this field is required"}`),
		},
	}
	runHTTPTests(t, server, tests)
}

func Test_attendanceApi_normalizeRegister(t *testing.T) {
	server, _ := setup(t)
	path := "/v1/attendance/register"

	tests := []httpTest{
		{
			name: "configured year", path: path,
			body:     []byte(`{"rows": [{"Date": "01-03-2025", "Subject": "OS", "28-Feb": "P", "31-Dec": "A"}]}`),
			wantCode: http.StatusOK, wantData: []byte(`{"rows": [{"Subject": "OS", "01-Mar": "P", "01-Jan": "A"}]}`),
		},
		{
			name: "leap year", path: path,
			body:     []byte(`{"rows": [{"date": "x", "28-Feb": "P", "31-Feb": "A"}], "reference_year": 2024}`),
			wantCode: http.StatusOK, wantData: []byte(`{"rows": [{"29-Feb": "P", "31-Feb": "A"}]}`),
		},
		{
			name: "no rows", path: path, body: []byte(`{"rows": []}`),
			wantCode: http.StatusOK, wantData: []byte(`{"rows": []}`),
		},
		{
			name: "missing rows", path: path, body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"rows": "this field is required"}`),
		},
	}
	runHTTPTests(t, server, tests)
}

func Test_attendanceApi_normalizeRegister_keepsOrder(t *testing.T) {
	server, _ := setup(t)

	body := []byte(`{"rows": [{"Subject": "OS", "31-Jul": "P", "01-Aug": "A", "Period": "1"}]}`)
	req, rec := newRequest(http.MethodPost, "/v1/attendance/register", body)
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rows": [{"Subject": "OS", "01-Aug": "P", "02-Aug": "A", "Period": "1"}]}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `{"Subject":"OS","01-Aug":"P","02-Aug":"A","Period":"1"}`)
}

func Test_attendanceApi_dashboard(t *testing.T) {
	server, _ := setup(t)
	path := "/v1/attendance/dashboard"

	tests := []httpTest{
		{
			name: "build", path: path,
			body: []byte(`{
				"courses": [
					{"name": "Compiler Design", "code": "ACSD01", "conducted": 20, "attended": 18},
					{"name": "Bad", "code": "BAD", "conducted": 3, "attended": 5}
				],
				"register": [{"Date": "x", "Subject": "OS", "31-Dec": "P"}]
			}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{
				"target": 75,
				"course_attendance": [
					{
						"name": "Compiler Design", "code": "ACSD01", "conducted": 20, "attended": 18,
						"percentage": 90, "status": "Satisfactory", "margin": {"safe": true, "count": 4}
					},
					{
						"name": "Bad", "code": "BAD", "conducted": 3, "attended": 5,
						"percentage": null, "status": "Critical", "error": "attended (5) exceeds conducted (3): invalid input"
					}
				],
				"overall_course_avg": 90,
				"biometric": null,
				"register": [{"Subject": "OS", "01-Jan": "P"}]
			}`),
		},
		{
			name: "custom target", path: path,
			body:     []byte(`{"courses": [{"name": "X", "code": "X", "conducted": 20, "attended": 18}], "target": 90}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{
				"target": 90,
				"course_attendance": [
					{
						"name": "X", "code": "X", "conducted": 20, "attended": 18,
						"percentage": 90, "status": "Satisfactory", "margin": {"safe": true, "count": 0}
					}
				],
				"overall_course_avg": 90,
				"biometric": null,
				"register": []
			}`),
		},
		{
			name: "missing courses", path: path, body: []byte(`{"target": 80}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"courses": "this field is required"}`),
		},
		{
			name: "invalid target", path: path, body: []byte(`{"courses": [], "target": -3}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"target": "target must be greater than 0 and less than 100"}`),
		},
	}
	runHTTPTests(t, server, tests)
}

func Test_attendanceApi_importPages(t *testing.T) {
	server, _ := setup(t)

	body := marshallObj(t, map[string]interface{}{
		"attendance_html": testutil.AttendancePage,
		"biometric_html":  testutil.BiometricPage,
		"register_html":   testutil.RegisterPage,
	})
	req, rec := newRequest(http.MethodPost, "/v1/attendance/import", body)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep dashboard.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))

	require.NotNil(t, rep.Student)
	assert.Equal(t, "RAVI KUMAR", rep.Student.Name)
	assert.Equal(t, "22951A0501", rep.Student.RollNo)
	assert.Equal(t, "https://img.test/22951A0501.jpg", rep.Student.ProfileImage)

	require.Len(t, rep.Courses, 2)
	assert.Equal(t, attendance.Satisfactory, rep.Courses[0].Status)
	assert.Equal(t, &attendance.MarginResult{Safe: true, Count: 4}, rep.Courses[0].Margin)
	assert.Equal(t, attendance.Critical, rep.Courses[1].Status)
	assert.Equal(t, &attendance.MarginResult{Safe: false, Count: 6}, rep.Courses[1].Margin)
	assert.Equal(t, 75.0, rep.OverallAverage)
	assert.Equal(t, []string{"ACSD03 Networks Lab"}, rep.Skipped)

	assert.Equal(t, &attendance.BiometricSummary{Count: 5, Adjusted: 4, Present: 4, Percentage: 100}, rep.Biometric)

	require.Len(t, rep.Register, 2)
	assert.Equal(t, []string{"Subject", "Period 1", "01-Aug", "02-Aug"}, rep.Register[0].Labels())
	assert.Equal(t, []string{"DBMS", "1", "P", "A"}, rep.Register[0].Values())
	assert.Equal(t, []string{"OS", "2", "A", ""}, rep.Register[1].Values())
}

func Test_attendanceApi_importPages_errors(t *testing.T) {
	server, _ := setup(t)
	path := "/v1/attendance/import"

	tests := []httpTest{
		{
			name: "missing attendance page", path: path, body: []byte(`{"biometric_html": "<table></table>"}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"attendance_html": "this field is required"}`),
		},
		{
			name: "no student info", path: path, body: []byte(`{"attendance_html": "<p>maintenance</p>"}`),
			wantCode: http.StatusUnprocessableEntity,
			wantData: marshallObj(t, httpErr{Error: "importing portal pages: reading attendance page: student info not found"}),
		},
	}
	runHTTPTests(t, server, tests)
}
