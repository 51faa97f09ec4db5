package reconcile

import (
	"github.com/montanaflynn/stats"

	"pairxl/pkg/contracts/domain"
)

// SummarizeUnmatched computes descriptive statistics over the absolute
// amounts that found no opposite. An empty input yields a zero struct.
func SummarizeUnmatched(amounts []float64) domain.UnmatchedStats {
	if len(amounts) == 0 {
		return domain.UnmatchedStats{}
	}

	data := stats.Float64Data(amounts)

	// These only fail on empty input, which is excluded above.
	total, _ := data.Sum()
	mean, _ := data.Mean()
	median, _ := data.Median()
	min, _ := data.Min()
	max, _ := data.Max()

	return domain.UnmatchedStats{
		Count:  len(amounts),
		Total:  total,
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
	}
}
