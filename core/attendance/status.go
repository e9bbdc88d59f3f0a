package attendance

import (
	"github.com/pkg/errors"

	"github.com/trezcool/samvidha/core"
)

type StatusCategory int

const (
	Critical StatusCategory = iota
	Condonation
	Satisfactory
)

// percentage bands, lower bounds inclusive
const (
	SatisfactoryThreshold = 75.0
	CondonationThreshold  = 65.0
)

var statusNames = map[StatusCategory]string{
	Satisfactory: "Satisfactory",
	Condonation:  "Condonation",
	Critical:     "Critical",
}

func (s StatusCategory) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s StatusCategory) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, errors.Errorf("unknown status category %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *StatusCategory) UnmarshalText(text []byte) error {
	st, ok := ParseStatus(string(text))
	if !ok {
		return errors.Errorf("unknown status category %q", string(text))
	}
	*s = st
	return nil
}

// ParseStatus maps a canonical status name to its category.
func ParseStatus(name string) (StatusCategory, bool) {
	name = core.CleanString(name)
	for st, n := range statusNames {
		if n == name {
			return st, true
		}
	}
	return Critical, false
}

// Classify trusts an upstream "Satisfactory" or "Condonation" label and otherwise falls back to
// the percentage bands. A NaN percentage (nothing conducted) is Critical.
func Classify(percentage float64, sourceLabel string) StatusCategory {
	switch core.CleanString(sourceLabel) {
	case "Satisfactory":
		return Satisfactory
	case "Condonation":
		return Condonation
	}

	switch {
	case percentage >= SatisfactoryThreshold:
		return Satisfactory
	case percentage >= CondonationThreshold:
		return Condonation
	default:
		return Critical
	}
}
