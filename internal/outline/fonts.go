package outline

import (
	"sort"

	"github.com/dgallion1/outliner/internal/span"
)

// Percentile ranks computed for every document.
var percentileRanks = []int{50, 75, 85, 90, 95}

// FontProfile is an immutable snapshot of document-wide font statistics,
// built once before any span is classified. The modal size and name act
// as the body-text baseline that heading signals are measured against.
type FontProfile struct {
	BodyFontSize    float64
	BodyFontName    string
	Percentiles     map[int]float64
	MinSize         float64
	MaxSize         float64
	UniqueSizeCount int
}

// BuildFontProfile tallies font sizes and names across all spans.
// The modal value wins; ties go to the value encountered first.
// Percentiles are nearest-rank on the ascending sorted size list
// (index floor(p*n), clamped to n-1), with no interpolation.
func BuildFontProfile(spans []span.Span) *FontProfile {
	if len(spans) == 0 {
		return &FontProfile{Percentiles: map[int]float64{}}
	}

	sizeCount := make(map[float64]int)
	var sizeOrder []float64
	nameCount := make(map[string]int)
	var nameOrder []string

	sizes := make([]float64, 0, len(spans))
	for _, s := range spans {
		if _, ok := sizeCount[s.FontSize]; !ok {
			sizeOrder = append(sizeOrder, s.FontSize)
		}
		sizeCount[s.FontSize]++
		if _, ok := nameCount[s.FontName]; !ok {
			nameOrder = append(nameOrder, s.FontName)
		}
		nameCount[s.FontName]++
		sizes = append(sizes, s.FontSize)
	}

	var bodySize float64
	best := 0
	for _, sz := range sizeOrder {
		if sizeCount[sz] > best {
			best = sizeCount[sz]
			bodySize = sz
		}
	}

	var bodyName string
	best = 0
	for _, n := range nameOrder {
		if nameCount[n] > best {
			best = nameCount[n]
			bodyName = n
		}
	}

	sort.Float64s(sizes)
	percentiles := make(map[int]float64, len(percentileRanks))
	for _, p := range percentileRanks {
		idx := p * len(sizes) / 100
		if idx >= len(sizes) {
			idx = len(sizes) - 1
		}
		percentiles[p] = sizes[idx]
	}

	return &FontProfile{
		BodyFontSize:    bodySize,
		BodyFontName:    bodyName,
		Percentiles:     percentiles,
		MinSize:         sizes[0],
		MaxSize:         sizes[len(sizes)-1],
		UniqueSizeCount: len(sizeCount),
	}
}
