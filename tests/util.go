package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/attendance"
)

// Portal pages as served by Samvidha, trimmed to what the parsers read.
const (
	AttendancePage = `<html><body>
<table>
	<tr><td>Name :</td><td>RAVI KUMAR</td><td>Rollno :</td><td>22951A0501</td></tr>
	<tr><td>Semester :</td><td>VI</td><td>Academic Year :</td><td>2025-26</td></tr>
</table>
<table>
	<tr>
		<th>S.No</th><th>Course Code</th><th>Course Name</th><th>Course Type</th><th>Category</th>
		<th>Conducted</th><th>Attended</th><th>Attendance %</th><th>Status</th>
	</tr>
	<tr><td>1</td><td>ACSD01</td><td>Compiler Design</td><td>Theory</td><td>PCC</td><td>20</td><td>18</td><td>90.00</td><td>Satisfactory</td></tr>
	<tr><td>2</td><td>ACSD02</td><td>Operating Systems</td><td>Theory</td><td>PCC</td><td>10</td><td>6</td><td>60.00</td><td>Shortage</td></tr>
	<tr><td>3</td><td>ACSD03</td><td>Networks Lab</td><td>Lab</td><td>PCC</td><td>-</td><td>-</td><td>-</td><td></td></tr>
	<tr><td colspan="5">Total</td><td>30</td><td>24</td></tr>
</table>
</body></html>`

	BiometricPage = `<html><body>
<table>
	<tr><th>S.No</th><th>Date</th><th>In Time</th><th>Status</th></tr>
	<tr><td>1</td><td>01-08-2025</td><td>09:01</td><td>Present</td></tr>
	<tr><td>2</td><td>02-08-2025</td><td></td><td>Absent</td></tr>
	<tr><td>3</td><td>04-08-2025</td><td>09:10</td><td>Present</td></tr>
	<tr><td>4</td><td>05-08-2025</td><td>09:05</td><td>Present</td></tr>
	<tr><td>5</td><td>06-08-2025</td><td>08:59</td><td>Present</td></tr>
</table>
</body></html>`

	RegisterPage = `<html><body>
<table><tr><td>Legend</td><td>P - Present</td></tr></table>
<table>
	<tr><th>Date</th><th>Subject</th><th>Period
1</th><th>31-Jul</th><th>01-Aug</th></tr>
	<tr><td>01-08-2025</td><td>DBMS</td><td>1</td><td>P</td><td>A</td></tr>
	<tr><td>02-08-2025</td><td>OS</td><td>2</td><td>A</td></tr>
	<tr><td>Holiday</td><td></td></tr>
</table>
</body></html>`
)

// NewConfig returns a test configuration, free of any environment lookups.
func NewConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		Debug:    false,
		TestMode: true,
		AppName:  "Samvidha",
		Build:    "test",
		Server: core.ServerConfig{
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Attendance: core.AttendanceConfig{
			TargetPercent: 75,
			ReferenceYear: 2025,
		},
		Portal: core.PortalConfig{
			ProfileImageURL: "https://img.test/%[1]s.jpg",
		},
	}
}

// Courses returns a fixed set of courses covering the safe, unsafe and empty cases.
func Courses(t *testing.T) []attendance.CourseAttendance {
	t.Helper()
	return []attendance.CourseAttendance{
		{Name: "Compiler Design", Code: "ACSD01", Conducted: 20, Attended: 18, SourceStatus: "Satisfactory"},
		{Name: "Operating Systems", Code: "ACSD02", Conducted: 10, Attended: 6},
		{Name: "Networks Lab", Code: "ACSD03", Conducted: 0, Attended: 0},
	}
}
