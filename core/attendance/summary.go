package attendance

import (
	"math"
	"strings"

	"github.com/trezcool/samvidha/core"
)

const presentMark = "Present"

// OverallAverage is the mean of the defined course percentages, rounded to 2 decimals.
func OverallAverage(courses []CourseAttendance) float64 {
	var sum float64
	var n int
	for _, c := range courses {
		p := c.Percentage()
		if math.IsNaN(p) {
			continue
		}
		sum += p
		n++
	}
	if n == 0 {
		return 0
	}
	return core.Round2(sum / float64(n))
}

type BiometricSummary struct {
	Count      int     `json:"biometric_count"`
	Adjusted   int     `json:"biometric_adjusted"`
	Present    int     `json:"biometric_present"`
	Percentage float64 `json:"biometric_percentage"`
}

// SummarizeBiometric counts biometric days (rows of cells, header excluded).
// The portal always lists the current day, which is left out of the percentage.
func SummarizeBiometric(days [][]string) BiometricSummary {
	var sum BiometricSummary
	for _, cells := range days {
		if len(cells) <= 1 {
			continue
		}
		sum.Count++
		for _, cell := range cells {
			if strings.Contains(cell, presentMark) {
				sum.Present++
				break
			}
		}
	}

	if sum.Count > 0 {
		sum.Adjusted = sum.Count - 1
	}
	if sum.Adjusted > 0 {
		sum.Percentage = core.Round2(float64(sum.Present) / float64(sum.Adjusted) * 100)
	}
	return sum
}
