package dashboard

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core"
	"github.com/trezcool/samvidha/core/attendance"
)

type Service struct {
	parser        PortalParser
	targetPercent float64
	normalizer    attendance.Normalizer
}

func NewService(conf *core.Config, parser PortalParser) *Service {
	return &Service{
		parser:        parser,
		targetPercent: conf.Attendance.TargetPercent,
		normalizer:    attendance.NewNormalizer(conf.Attendance.ReferenceYear),
	}
}

// Target returns `targetPercent`, or the configured default when it is zero.
func (svc *Service) Target(targetPercent float64) float64 {
	if targetPercent == 0 {
		return svc.targetPercent
	}
	return targetPercent
}

// ReferenceYear returns the year register labels are shifted in, 0 meaning the current year.
func (svc *Service) ReferenceYear() int {
	return svc.normalizer.ReferenceYear
}

// Build assembles the dashboard. Invalid course counts are reported on the course
// itself; only an invalid target fails the whole report.
func (svc *Service) Build(req Request) (Report, error) {
	target := svc.Target(req.TargetPercent)
	if err := attendance.ValidateTarget(target); err != nil {
		return Report{}, err
	}

	rep := Report{
		Student:        req.Student,
		TargetPercent:  target,
		Courses:        make([]CourseReport, 0, len(req.Courses)),
		OverallAverage: attendance.OverallAverage(validCourses(req.Courses)),
		Biometric:      req.Biometric,
		Register:       svc.normalizer.Normalize(req.Register),
	}
	if rep.Register == nil {
		rep.Register = []attendance.RegisterRow{}
	}

	for _, c := range req.Courses {
		cr := CourseReport{CourseAttendance: c}
		if err := c.Validate(); err != nil {
			cr.Percentage = Percent(math.NaN())
			cr.Status = attendance.Classify(math.NaN(), c.SourceStatus)
			cr.Error = err.Error()
			rep.Courses = append(rep.Courses, cr)
			continue
		}

		cr.Percentage = Percent(c.Percentage())
		cr.Status = attendance.Classify(c.Percentage(), c.SourceStatus)
		margin, err := attendance.ComputeMargin(c.Conducted, c.Attended, target)
		if err != nil {
			return Report{}, errors.Wrapf(err, "computing margin of %q", c.Code)
		}
		cr.Margin = &margin
		rep.Courses = append(rep.Courses, cr)
	}
	return rep, nil
}

// Import parses the portal pages and builds the dashboard out of them.
func (svc *Service) Import(pages Pages, targetPercent float64) (Report, error) {
	page, err := svc.parser.ParseAttendance(strings.NewReader(pages.Attendance))
	if err != nil {
		return Report{}, errors.Wrap(err, "reading attendance page")
	}

	req := Request{
		Student:       &page.Student,
		Courses:       page.Courses,
		TargetPercent: targetPercent,
	}
	if pages.Biometric != "" {
		if req.Biometric, err = svc.parser.ParseBiometric(strings.NewReader(pages.Biometric)); err != nil {
			return Report{}, errors.Wrap(err, "reading biometric page")
		}
	}
	if pages.Register != "" {
		if req.Register, err = svc.parser.ParseRegister(strings.NewReader(pages.Register)); err != nil {
			return Report{}, errors.Wrap(err, "reading register page")
		}
	}

	rep, err := svc.Build(req)
	if err != nil {
		return Report{}, err
	}
	rep.Skipped = page.Skipped
	return rep, nil
}

func validCourses(courses []attendance.CourseAttendance) []attendance.CourseAttendance {
	valid := make([]attendance.CourseAttendance, 0, len(courses))
	for _, c := range courses {
		if c.Validate() == nil {
			valid = append(valid, c)
		}
	}
	return valid
}
