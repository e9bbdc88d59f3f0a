package portal

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/samvidha/core"
)

// minColumnSimilarity is the lowest difflib ratio accepted for a header that is not an exact match.
const minColumnSimilarity = 0.8

// matchColumns maps every wanted column to its index in `headers`: case-insensitive exact matches first,
// then the most similar remaining header. Unmatched columns are absent from the result.
func matchColumns(headers []string, wanted []string) map[string]int {
	cols := make(map[string]int, len(wanted))
	taken := make(map[int]bool, len(headers))

	for _, w := range wanted {
		for i, h := range headers {
			if !taken[i] && strings.EqualFold(core.CleanString(h), w) {
				cols[w] = i
				taken[i] = true
				break
			}
		}
	}

	for _, w := range wanted {
		if _, ok := cols[w]; ok {
			continue
		}
		best, bestRatio := -1, minColumnSimilarity
		for i, h := range headers {
			if taken[i] {
				continue
			}
			if r := similarity(h, w); r >= bestRatio {
				best, bestRatio = i, r
			}
		}
		if best >= 0 {
			cols[w] = best
			taken[best] = true
		}
	}
	return cols
}

func similarity(a, b string) float64 {
	a, b = core.CleanString(a, true), core.CleanString(b, true)
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}
