// Package stats computes the descriptive statistics the detection methods
// share. Quantiles use nearest-rank indexing (sorted[floor(p*n)]) rather
// than interpolation, and the standard deviation is the population form
// (divisor n). Downstream thresholds were calibrated against exactly these
// estimators, so they must not be swapped for interpolated variants.
package stats

import (
	"math"
	"sort"

	"outlierscope/domain/outlier"

	mstats "github.com/montanaflynn/stats"
)

// Describe computes quartiles, mean, population standard deviation, median
// and median absolute deviation for a sample. An empty sample yields the
// zero value; no error is possible. The input slice is never mutated.
func Describe(sample []float64) outlier.Statistics {
	n := len(sample)
	if n == 0 {
		return outlier.Statistics{}
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1 := sorted[n/4]
	median := sorted[n/2]
	q3 := sorted[(3*n)/4]

	mean, _ := mstats.Mean(sample)
	stdDev, _ := mstats.StandardDeviationPopulation(sample)

	residuals := make([]float64, n)
	for i, x := range sample {
		residuals[i] = math.Abs(x - median)
	}
	sort.Float64s(residuals)
	mad := residuals[n/2]

	return outlier.Statistics{
		Q1:     q1,
		Q3:     q3,
		IQR:    q3 - q1,
		Mean:   mean,
		StdDev: stdDev,
		Median: median,
		MAD:    mad,
	}
}
