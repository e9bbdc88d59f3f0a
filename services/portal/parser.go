// Package portal reads the attendance pages of the Samvidha student portal once they have been fetched.
package portal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/attendance"
	"github.com/trezcool/samvidha/core/dashboard"
)

// canonical course table columns
const (
	ColCourseName = "Course Name"
	ColCourseCode = "Course Code"
	ColConducted  = "Conducted"
	ColAttended   = "Attended"
	ColPercentage = "Attendance %"
	ColStatus     = "Status"
)

const minCourseCells = 8 // shorter rows are totals/footers

var (
	ErrNoCourseTable = errors.New("course attendance table not found")
	ErrNoStudentInfo = errors.New("student info not found")

	courseColumns = []string{ColCourseName, ColCourseCode, ColConducted, ColAttended, ColPercentage, ColStatus}
)

type Parser struct {
	profileImageURL string
}

var _ dashboard.PortalParser = (*Parser)(nil)

func NewParser(conf *core.Config) *Parser {
	return &Parser{profileImageURL: conf.Portal.ProfileImageURL}
}

// ParseAttendance reads the student info (first table) and the course table (second table).
func (p *Parser) ParseAttendance(r io.Reader) (dashboard.AttendancePage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return dashboard.AttendancePage{}, errors.Wrap(err, "parsing attendance page")
	}
	tables := doc.Find("table")

	var page dashboard.AttendancePage
	page.Student = p.parseStudent(tables.Eq(0))
	if len(page.Student.Info) == 0 {
		return dashboard.AttendancePage{}, ErrNoStudentInfo
	}

	if tables.Length() < 2 {
		return dashboard.AttendancePage{}, ErrNoCourseTable
	}
	page.Courses, page.Skipped = parseCourses(tables.Eq(1))
	return page, nil
}

func (p *Parser) parseStudent(table *goquery.Selection) dashboard.Student {
	info := make(map[string]string)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row.Find("td, th"))
		for i := 0; i+1 < len(cells); i += 2 {
			key := core.CleanString(strings.ReplaceAll(cells[i], ":", ""))
			if key == "" {
				continue
			}
			info[key] = cells[i+1]
		}
	})

	stud := dashboard.Student{
		Name:         firstOf(info, "Name", "Student Name"),
		RollNo:       firstOf(info, "Rollno", "Roll No"),
		Semester:     firstOf(info, "Semester"),
		AcademicYear: firstOf(info, "Academic Year"),
		Info:         info,
	}
	if stud.RollNo != "" && p.profileImageURL != "" {
		stud.ProfileImage = fmt.Sprintf(p.profileImageURL, stud.RollNo)
	}
	return stud
}

func parseCourses(table *goquery.Selection) ([]attendance.CourseAttendance, []string) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, nil
	}
	cols := matchColumns(cellTexts(rows.First().Find("th, td")), courseColumns)

	courses := make([]attendance.CourseAttendance, 0, rows.Length()-1)
	var skipped []string
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row.Find("td"))
		if len(cells) < minCourseCells {
			return
		}
		get := func(col string) string {
			if i, ok := cols[col]; ok && i < len(cells) {
				return cells[i]
			}
			return ""
		}

		course := attendance.CourseAttendance{
			Name:         get(ColCourseName),
			Code:         get(ColCourseCode),
			SourceStatus: get(ColStatus),
		}
		conducted, cErr := strconv.Atoi(get(ColConducted))
		attended, aErr := strconv.Atoi(get(ColAttended))
		if cErr != nil || aErr != nil {
			skipped = append(skipped, courseRef(course))
			return
		}
		course.Conducted, course.Attended = conducted, attended
		courses = append(courses, course)
	})
	return courses, skipped
}

// ParseBiometric summarises the first table of the biometric page. It returns nil when there is none.
func (p *Parser) ParseBiometric(r io.Reader) (*attendance.BiometricSummary, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing biometric page")
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil
	}

	var days [][]string
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		days = append(days, cellTexts(row.Find("td")))
	})
	sum := attendance.SummarizeBiometric(days)
	return &sum, nil
}

// ParseRegister reads the day-wise register: the first table whose header mentions both "date" and "period".
// Register labels are returned as listed; normalization is up to the caller.
func (p *Parser) ParseRegister(r io.Reader) ([]attendance.RegisterRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing register page")
	}

	var target *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		first := strings.ToLower(table.Find("tr").First().Text())
		if strings.Contains(first, "date") && strings.Contains(first, "period") {
			target = table
			return false
		}
		return true
	})
	if target == nil {
		return []attendance.RegisterRow{}, nil
	}

	rows := target.Find("tr")
	headers := cellTexts(rows.First().Find("th, td"))
	for i, h := range headers {
		headers[i] = strings.ReplaceAll(h, "\n", " ")
	}

	register := make([]attendance.RegisterRow, 0, rows.Length()-1)
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := cellTexts(row.Find("td"))
		if len(cells) <= 2 {
			return
		}
		rec := make(attendance.RegisterRow, len(headers))
		for i, h := range headers {
			rec[i].Label = h
			if i < len(cells) {
				rec[i].Value = cells[i]
			}
		}
		register = append(register, rec)
	})
	return register, nil
}

func cellTexts(cells *goquery.Selection) []string {
	return cells.Map(func(_ int, c *goquery.Selection) string {
		return core.CleanString(c.Text())
	})
}

func firstOf(info map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := info[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

func courseRef(c attendance.CourseAttendance) string {
	switch {
	case c.Code != "" && c.Name != "":
		return c.Code + " " + c.Name
	case c.Code != "":
		return c.Code
	}
	return c.Name
}
