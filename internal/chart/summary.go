package chart

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// Summarize computes the display summary of trip durations. It returns false
// when there are no samples.
func Summarize(rows []types.TripDurationSample) (types.TripDurationSummary, bool) {
	if len(rows) == 0 {
		return types.TripDurationSummary{}, false
	}

	x := make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.DurationMinutes
	}
	sort.Float64s(x)

	return types.TripDurationSummary{
		Median: median(x),
		Mean:   stat.Mean(x, nil),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
	}, true
}

// median expects sorted input. Even-length input averages the two middle
// values.
func median(sorted []float64) float64 {
	lower := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted)%2 == 1 {
		return lower
	}
	return (lower + sorted[len(sorted)/2]) / 2
}
