package attendance

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrInvalidInput = errors.New("invalid input")
)

// CourseAttendance is one course row of the student's attendance report.
type CourseAttendance struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Conducted    int    `json:"conducted"`
	Attended     int    `json:"attended"`
	SourceStatus string `json:"source_status,omitempty"` // label as reported upstream
}

// Percentage returns attended/conducted×100, or NaN when no class was conducted.
func (c CourseAttendance) Percentage() float64 {
	return Percentage(c.Conducted, c.Attended)
}

func (c CourseAttendance) Validate() error {
	return validateCounts(c.Conducted, c.Attended)
}

func Percentage(conducted, attended int) float64 {
	if conducted == 0 {
		return math.NaN()
	}
	return float64(attended) / float64(conducted) * 100
}

func validateCounts(conducted, attended int) error {
	switch {
	case conducted < 0:
		return errors.Wrapf(ErrInvalidInput, "conducted (%d) is negative", conducted)
	case attended < 0:
		return errors.Wrapf(ErrInvalidInput, "attended (%d) is negative", attended)
	case attended > conducted:
		return errors.Wrapf(ErrInvalidInput, "attended (%d) exceeds conducted (%d)", attended, conducted)
	}
	return nil
}

type MarginResult struct {
	Safe  bool `json:"safe"`
	Count int  `json:"count"`
}

// Cell is a single labelled value of a register row.
type Cell struct {
	Label string
	Value string
}

// RegisterRow is an ordered mapping of column label to cell value.
// Its JSON form is an object whose key order is kept on decode and encode.
type RegisterRow []Cell

// Get returns the value of the first cell labelled `label`.
func (r RegisterRow) Get(label string) (string, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return "", false
}

func (r RegisterRow) Labels() []string {
	labels := make([]string, len(r))
	for i, c := range r {
		labels[i] = c.Label
	}
	return labels
}

func (r RegisterRow) Values() []string {
	values := make([]string, len(r))
	for i, c := range r {
		values[i] = c.Value
	}
	return values
}

func (r RegisterRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *RegisterRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // numbers keep their source text
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "decoding register row")
	}
	if tok == nil { // null
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("register row must be a JSON object, got %v", tok)
	}

	row := make(RegisterRow, 0)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return errors.Wrap(err, "decoding register row label")
		}
		label, _ := tok.(string)

		var raw interface{}
		if err = dec.Decode(&raw); err != nil {
			return errors.Wrapf(err, "decoding register cell %q", label)
		}
		var value string
		switch v := raw.(type) {
		case nil:
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = strconv.FormatBool(v)
		default:
			return errors.Errorf("register cell %q must be a scalar", label)
		}
		row = append(row, Cell{Label: label, Value: value})
	}
	if _, err = dec.Token(); err != nil { // closing '}'
		return errors.Wrap(err, "decoding register row")
	}
	*r = row
	return nil
}
