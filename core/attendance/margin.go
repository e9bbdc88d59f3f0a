package attendance

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// maxMargin bounds reported counts; targets closer to 0 or 100 than that are rejected.
	maxMargin = math.MaxInt32
	// maxCorrections bounds the steps taken to correct the float estimate.
	maxCorrections = 2
)

// ComputeMargin reports whether `attended` out of `conducted` classes meets `targetPercent`
// and by how many classes:
//   - safe: the most classes that can still be missed while staying at or above target,
//   - unsafe: the fewest classes that must be attended (in a row) to reach the target.
//
// No class conducted yet is treated as safe with nothing to spare: {Safe: true, Count: 0}.
func ComputeMargin(conducted, attended int, targetPercent float64) (MarginResult, error) {
	if err := validateCounts(conducted, attended); err != nil {
		return MarginResult{}, err
	}
	if err := ValidateTarget(targetPercent); err != nil {
		return MarginResult{}, err
	}
	if conducted == 0 {
		return MarginResult{Safe: true, Count: 0}, nil
	}

	target := targetPercent / 100
	a, c := float64(attended), float64(conducted)

	if a/c >= target {
		est := math.Floor(a/target - c)
		if !(est <= maxMargin) { // also rejects +Inf
			return MarginResult{}, errors.Wrapf(ErrInvalidInput, "target (%v) allows more than %d missed classes", targetPercent, maxMargin)
		}
		count := int(math.Max(est, 0))
		// absorb float error so the floor stays tight
		for i := 0; i < maxCorrections && count > 0 && !meetsTarget(a, c+float64(count), target); i++ {
			count--
		}
		for i := 0; i < maxCorrections && meetsTarget(a, c+float64(count+1), target); i++ {
			count++
		}
		return MarginResult{Safe: true, Count: count}, nil
	}

	est := math.Ceil((target*c - a) / (1 - target))
	if !(est <= maxMargin) {
		return MarginResult{}, errors.Wrapf(ErrInvalidInput, "target (%v) needs more than %d classes", targetPercent, maxMargin)
	}
	count := int(math.Max(est, 1))
	// absorb float error so the ceiling stays tight
	for i := 0; i < maxCorrections && !meetsTarget(a+float64(count), c+float64(count), target); i++ {
		count++
	}
	for i := 0; i < maxCorrections && count > 1 && meetsTarget(a+float64(count-1), c+float64(count-1), target); i++ {
		count--
	}
	return MarginResult{Safe: false, Count: count}, nil
}

// ValidateTarget checks that `targetPercent` lies strictly between 0 and 100.
func ValidateTarget(targetPercent float64) error {
	if !(targetPercent > 0 && targetPercent < 100) { // also rejects NaN
		return errors.Wrapf(ErrInvalidInput, "target (%v) must be within (0, 100)", targetPercent)
	}
	return nil
}

func meetsTarget(attended, conducted, target float64) bool {
	return attended/conducted >= target
}
