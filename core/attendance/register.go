package attendance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateColumn = "date"

var (
	dateLabelRegex = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})$`)

	monthAbbrevs = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

	nowFunc = time.Now // mockable
)

// Normalizer rewrites register column labels. ReferenceYear decides February's length;
// the zero value uses the current year at call time.
type Normalizer struct {
	ReferenceYear int
}

func NewNormalizer(referenceYear int) Normalizer {
	return Normalizer{ReferenceYear: referenceYear}
}

// Normalize drops the "date" column of every row and shifts every date label one day forward.
// Rows, surviving columns and values are kept in order.
func Normalize(rows []RegisterRow) []RegisterRow {
	return Normalizer{}.Normalize(rows)
}

// ShiftDateLabel advances a `DD-MMM` label by one day in the current year.
func ShiftDateLabel(label string) string {
	return Normalizer{}.ShiftDateLabel(label)
}

func (n Normalizer) Normalize(rows []RegisterRow) []RegisterRow {
	if rows == nil {
		return nil
	}
	year := n.year()
	out := make([]RegisterRow, len(rows))
	for i, row := range rows {
		newRow := make(RegisterRow, 0, len(row))
		for _, c := range row {
			if strings.EqualFold(c.Label, dateColumn) {
				continue
			}
			newRow = append(newRow, Cell{Label: shiftDateLabel(c.Label, year), Value: c.Value})
		}
		out[i] = newRow
	}
	return out
}

func (n Normalizer) ShiftDateLabel(label string) string {
	return shiftDateLabel(label, n.year())
}

func (n Normalizer) year() int {
	if n.ReferenceYear != 0 {
		return n.ReferenceYear
	}
	return nowFunc().Year()
}

// shiftDateLabel returns `label` untouched when it is not a valid day of `year`.
func shiftDateLabel(label string, year int) string {
	m := dateLabelRegex.FindStringSubmatch(label)
	if m == nil {
		return label
	}
	day, _ := strconv.Atoi(m[1])
	month, ok := parseMonth(m[2])
	if !ok {
		return label
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Month() != month || date.Day() != day { // e.g. 31-Feb normalised into March
		return label
	}

	next := date.AddDate(0, 0, 1)
	return fmt.Sprintf("%02d-%s", next.Day(), monthAbbrevs[next.Month()-1])
}

func parseMonth(abbrev string) (time.Month, bool) {
	for i, a := range monthAbbrevs {
		if a == abbrev {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
