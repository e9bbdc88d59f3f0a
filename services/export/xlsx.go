// Package export writes dashboards out as spreadsheets.
package export

import (
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/samvidha/core/dashboard"
)

const (
	CoursesSheet  = "Courses"
	RegisterSheet = "Register"
)

var courseHeader = []interface{}{"Course Name", "Course Code", "Conducted", "Attended", "Attendance %", "Status", "Safe", "Classes"}

// WriteWorkbook writes the courses and the normalized register of `rep` as an .xlsx workbook.
func WriteWorkbook(w io.Writer, rep dashboard.Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// the default sheet becomes the course sheet
	if err := f.SetSheetName(f.GetSheetName(0), CoursesSheet); err != nil {
		return errors.Wrap(err, "renaming sheet")
	}
	if err := writeCourses(f, rep.Courses); err != nil {
		return errors.Wrap(err, "writing courses")
	}

	if _, err := f.NewSheet(RegisterSheet); err != nil {
		return errors.Wrap(err, "creating register sheet")
	}
	if err := writeRegister(f, rep); err != nil {
		return errors.Wrap(err, "writing register")
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func writeCourses(f *excelize.File, courses []dashboard.CourseReport) error {
	if err := setRow(f, CoursesSheet, 1, courseHeader); err != nil {
		return err
	}
	for i, c := range courses {
		var pct interface{}
		if p := float64(c.Percentage); !math.IsNaN(p) {
			pct = math.Round(p*100) / 100
		}
		row := []interface{}{c.Name, c.Code, c.Conducted, c.Attended, pct, c.Status.String(), nil, nil}
		if c.Margin != nil {
			row[6], row[7] = c.Margin.Safe, c.Margin.Count
		}
		if err := setRow(f, CoursesSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRegister lays out the register with one column per label, in first-seen order.
func writeRegister(f *excelize.File, rep dashboard.Report) error {
	index := make(map[string]int)
	var header []interface{}
	for _, row := range rep.Register {
		for _, c := range row {
			if _, ok := index[c.Label]; !ok {
				index[c.Label] = len(header)
				header = append(header, c.Label)
			}
		}
	}
	if err := setRow(f, RegisterSheet, 1, header); err != nil {
		return err
	}

	for i, row := range rep.Register {
		values := make([]interface{}, len(header))
		for _, c := range row {
			values[index[c.Label]] = c.Value
		}
		if err := setRow(f, RegisterSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
