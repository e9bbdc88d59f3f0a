package dashboard

import (
	"encoding/json"
	"io"
	"math"

	"github.com/trezcool/samvidha/core/attendance"
)

type (
	// PortalParser reads the portal pages once they have been fetched.
	PortalParser interface {
		ParseAttendance(r io.Reader) (AttendancePage, error)
		ParseBiometric(r io.Reader) (*attendance.BiometricSummary, error)
		ParseRegister(r io.Reader) ([]attendance.RegisterRow, error)
	}

	Student struct {
		Name         string            `json:"name"`
		RollNo       string            `json:"roll_no"`
		Semester     string            `json:"semester,omitempty"`
		AcademicYear string            `json:"academic_year,omitempty"`
		ProfileImage string            `json:"profile_image,omitempty"`
		Info         map[string]string `json:"info,omitempty"` // every label/value pair as listed
	}

	AttendancePage struct {
		Student Student
		Courses []attendance.CourseAttendance
		// Skipped lists the courses whose class counts could not be read.
		Skipped []string
	}

	// Pages holds the raw HTML of the portal pages; Biometric and Register are optional.
	Pages struct {
		Attendance string
		Biometric  string
		Register   string
	}

	// Request carries already shaped records. A zero TargetPercent falls back to the configured one.
	Request struct {
		Student       *Student
		Courses       []attendance.CourseAttendance
		Register      []attendance.RegisterRow
		Biometric     *attendance.BiometricSummary
		TargetPercent float64
	}

	CourseReport struct {
		attendance.CourseAttendance
		Percentage Percent                  `json:"percentage"`
		Status     attendance.StatusCategory `json:"status"`
		Margin     *attendance.MarginResult  `json:"margin,omitempty"`
		Error      string                    `json:"error,omitempty"`
	}

	Report struct {
		Student        *Student                     `json:"student_info,omitempty"`
		TargetPercent  float64                      `json:"target"`
		Courses        []CourseReport               `json:"course_attendance"`
		OverallAverage float64                      `json:"overall_course_avg"`
		Biometric      *attendance.BiometricSummary `json:"biometric"`
		Register       []attendance.RegisterRow     `json:"register"`
		Skipped        []string                     `json:"skipped,omitempty"`
	}
)

// Percent is a percentage that is undefined (NaN) when no class was conducted; it encodes as null then.
type Percent float64

func (p Percent) MarshalJSON() ([]byte, error) {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(math.Round(f*100) / 100)
}
