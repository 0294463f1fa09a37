// Package detect implements the seven outlier detection methods. Every
// method is a pure function from a single column projection to the set of
// original row indices it flags; degenerate inputs (zero variance, too few
// points, out-of-range sample size) yield an empty result, never an error.
package detect

import (
	"math"
	"sort"

	"outlierscope/domain/table"
	"outlierscope/internal/stats"
)

// Func maps one column projection to the original row indices it flags.
// Returned indices are unique and in deterministic discovery order.
type Func func(col table.ColumnView) []int

// IQR flags values outside the Tukey fences q1 - 1.5*iqr and q3 + 1.5*iqr.
// A zero IQR collapses both fences onto the quartiles, which is the
// intended behavior, not a degenerate case.
func IQR(col table.ColumnView) []int {
	s := stats.Describe(col.Values())
	lower := s.Q1 - IQRFenceMultiplier*s.IQR
	upper := s.Q3 + IQRFenceMultiplier*s.IQR

	var flagged []int
	for _, c := range col {
		if c.Value < lower || c.Value > upper {
			flagged = append(flagged, c.Index)
		}
	}
	return flagged
}

// ZScore flags values whose absolute z-score exceeds ZScoreThreshold.
// Zero variance means nothing can be anomalous.
func ZScore(col table.ColumnView) []int {
	s := stats.Describe(col.Values())
	if s.StdDev == 0 {
		return nil
	}

	var flagged []int
	for _, c := range col {
		if math.Abs(c.Value-s.Mean)/s.StdDev > ZScoreThreshold {
			flagged = append(flagged, c.Index)
		}
	}
	return flagged
}

// ModifiedZScore flags values by the MAD-based modified z-score, which is
// robust against the outliers it is hunting.
func ModifiedZScore(col table.ColumnView) []int {
	return madScore(col, ModifiedZThreshold)
}

// Peirce applies the Peirce criterion proxy: the modified z-score with a
// wider cutoff. It is documented as an approximation of the real test.
func Peirce(col table.ColumnView) []int {
	return madScore(col, PeirceThreshold)
}

// madScore is the shared modified z-score scan. A zero MAD yields an empty
// result.
func madScore(col table.ColumnView, threshold float64) []int {
	s := stats.Describe(col.Values())
	if s.MAD == 0 {
		return nil
	}

	var flagged []int
	for _, c := range col {
		if math.Abs(ModifiedZScale*(c.Value-s.Median)/s.MAD) > threshold {
			flagged = append(flagged, c.Index)
		}
	}
	return flagged
}

// Grubbs runs the simplified single-outlier Grubbs test: only the most
// deviant point can be flagged, and only when its studentized deviation
// exceeds the fixed critical value.
func Grubbs(col table.ColumnView) []int {
	if col.Len() < GrubbsMinSample {
		return nil
	}
	s := stats.Describe(col.Values())
	if s.StdDev == 0 {
		return nil
	}

	maxDev := -1.0
	maxIndex := -1
	for _, c := range col {
		dev := math.Abs(c.Value-s.Mean) / s.StdDev
		if dev > maxDev {
			maxDev = dev
			maxIndex = c.Index
		}
	}

	if maxDev > GrubbsCritical {
		return []int{maxIndex}
	}
	return nil
}

// ESD runs the simplified generalized extreme studentized deviate test:
// repeatedly recompute mean and stddev on the remaining points, remove the
// most deviant one while its deviation exceeds the fixed critical value,
// up to floor(n * 0.1) removals. Removal order determines which points end
// up flagged, so the scan is strictly sequential.
func ESD(col table.ColumnView) []int {
	n := col.Len()
	if n < ESDMinSample {
		return nil
	}
	maxOutliers := int(float64(n) * ESDMaxOutlierFraction)

	remaining := make(table.ColumnView, n)
	copy(remaining, col)

	var flagged []int
	for round := 0; round < maxOutliers; round++ {
		if len(remaining) < ESDMinRemaining {
			break
		}
		s := stats.Describe(remaining.Values())
		if s.StdDev == 0 {
			break
		}

		worst := -1
		maxDev := -1.0
		for i, c := range remaining {
			dev := math.Abs(c.Value-s.Mean) / s.StdDev
			if dev > maxDev {
				maxDev = dev
				worst = i
			}
		}
		if maxDev <= ESDCritical {
			break
		}

		flagged = append(flagged, remaining[worst].Index)
		remaining = append(remaining[:worst], remaining[worst+1:]...)
	}
	return flagged
}

// DixonQ runs Dixon's Q test on small samples (3 <= n <= 30): the gap
// between each extreme and its neighbor, relative to the range, is compared
// against the tabulated critical value. Both extremes may fire.
func DixonQ(col table.ColumnView) []int {
	n := col.Len()
	if n < DixonMinSample || n > DixonMaxSample {
		return nil
	}

	sorted := make(table.ColumnView, n)
	copy(sorted, col)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	valueRange := sorted[n-1].Value - sorted[0].Value
	if valueRange == 0 {
		return nil
	}

	qLow := (sorted[1].Value - sorted[0].Value) / valueRange
	qHigh := (sorted[n-1].Value - sorted[n-2].Value) / valueRange
	qCrit := dixonCritical(n)

	var flagged []int
	if qLow > qCrit {
		flagged = append(flagged, sorted[0].Index)
	}
	if qHigh > qCrit {
		flagged = append(flagged, sorted[n-1].Index)
	}
	return flagged
}
