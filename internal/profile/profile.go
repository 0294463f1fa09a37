// Package profile computes per-column descriptive profiles for ingested
// datasets. Profiles are metadata for the upload surface; the detection
// engine never depends on them.
package profile

import (
	"context"
	"math"

	"outlierscope/domain/table"

	mstats "github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnProfile summarizes the shape of one numeric column.
type ColumnProfile struct {
	Header     string  `json:"header"`
	SampleSize int     `json:"sample_size"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Variance   float64 `json:"variance"`
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"`
	IsNormal   bool    `json:"is_normal"`
	NormalityP float64 `json:"normality_p"`
	NoiseCoeff float64 `json:"noise_coeff"`
}

// Profiler computes column profiles.
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// ProfileDataSet profiles every column of the dataset, one goroutine per
// column. Column order in the result matches header order.
func (p *Profiler) ProfileDataSet(ctx context.Context, ds *table.DataSet) ([]ColumnProfile, error) {
	profiles := make([]ColumnProfile, ds.Dimensions)

	g, _ := errgroup.WithContext(ctx)
	for dim := 0; dim < ds.Dimensions; dim++ {
		g.Go(func() error {
			profiles[dim] = p.ProfileColumn(ds.Headers[dim], ds.Column(dim).Values())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfileColumn computes the profile for a single sample.
func (p *Profiler) ProfileColumn(header string, data []float64) ColumnProfile {
	profile := ColumnProfile{Header: header, SampleSize: len(data)}
	if len(data) == 0 {
		return profile
	}

	mean, _ := mstats.Mean(data)
	stdDev, _ := mstats.StandardDeviationPopulation(data)
	min, _ := mstats.Min(data)
	max, _ := mstats.Max(data)
	variance, _ := mstats.PopulationVariance(data)

	profile.Mean = mean
	profile.StdDev = stdDev
	profile.Min = min
	profile.Max = max
	profile.Variance = variance
	profile.Skewness = skewness(data, mean, stdDev)
	profile.Kurtosis = kurtosis(data, mean, stdDev)
	profile.IsNormal, profile.NormalityP = testNormality(data, mean, stdDev)
	profile.NoiseCoeff = noiseCoefficient(stdDev, mean)

	return profile
}

// skewness computes the adjusted Fisher-Pearson coefficient.
func skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}

	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return sumCubed / n * correction
}

// kurtosis computes bias-corrected total kurtosis (normal = 3).
func kurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3.0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}

	k := sumFourth / n
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		k = k*correction + 6/(n+1)
	}
	return k + 3
}

// testNormality runs a Jarque-Bera-style approximation: combined
// skewness/excess-kurtosis statistic against a chi-squared(2) distribution.
func testNormality(data []float64, mean, stdDev float64) (isNormal bool, pValue float64) {
	if len(data) < 3 || stdDev == 0 {
		return false, 1.0
	}

	skew := skewness(data, mean, stdDev)
	excess := kurtosis(data, mean, stdDev) - 3

	testStat := math.Abs(skew) + math.Abs(excess)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)
	isNormal = pValue > 0.05
	return isNormal, pValue
}

// noiseCoefficient maps the coefficient of variation into [0,1].
func noiseCoefficient(stdDev, mean float64) float64 {
	if mean == 0 {
		return 1.0
	}
	cv := stdDev / math.Abs(mean)
	return math.Min(cv/2.0, 1.0)
}
