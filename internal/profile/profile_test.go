package profile

import (
	"context"
	"testing"

	"outlierscope/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileColumnEmptySample(t *testing.T) {
	profile := NewProfiler().ProfileColumn("empty", nil)

	assert.Equal(t, "empty", profile.Header)
	assert.Equal(t, 0, profile.SampleSize)
	assert.Zero(t, profile.Mean)
	assert.False(t, profile.IsNormal)
}

func TestProfileColumnConstantSample(t *testing.T) {
	profile := NewProfiler().ProfileColumn("flat", []float64{7, 7, 7, 7, 7})

	assert.Equal(t, 5, profile.SampleSize)
	assert.Equal(t, 7.0, profile.Mean)
	assert.Zero(t, profile.StdDev)
	assert.Zero(t, profile.Variance)
	assert.Equal(t, 7.0, profile.Min)
	assert.Equal(t, 7.0, profile.Max)
	assert.Zero(t, profile.Skewness)
	assert.Equal(t, 3.0, profile.Kurtosis)
	assert.False(t, profile.IsNormal)
	assert.Zero(t, profile.NoiseCoeff)
}

func TestProfileColumnBasicMoments(t *testing.T) {
	profile := NewProfiler().ProfileColumn("latency", []float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 5.0, profile.Mean, 1e-9)
	assert.InDelta(t, 2.0, profile.StdDev, 1e-9)
	assert.InDelta(t, 4.0, profile.Variance, 1e-9)
	assert.Equal(t, 2.0, profile.Min)
	assert.Equal(t, 9.0, profile.Max)
	// cv = 2/5, halved.
	assert.InDelta(t, 0.2, profile.NoiseCoeff, 1e-9)
}

func TestProfileColumnNoiseCoeffCapped(t *testing.T) {
	profile := NewProfiler().ProfileColumn("wild", []float64{0.001, 1000, -1000, 500, -500})

	assert.Equal(t, 1.0, profile.NoiseCoeff)
}

func TestProfileDataSetColumnOrder(t *testing.T) {
	ds, err := table.NewDataSet([]string{"cpu", "mem", "io"}, []table.DataPoint{
		{Index: 0, Values: []float64{1, 100, 7}},
		{Index: 1, Values: []float64{2, 200, 7}},
		{Index: 2, Values: []float64{3, 300, 7}},
	})
	require.NoError(t, err)

	profiles, err := NewProfiler().ProfileDataSet(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	assert.Equal(t, "cpu", profiles[0].Header)
	assert.Equal(t, "mem", profiles[1].Header)
	assert.Equal(t, "io", profiles[2].Header)
	assert.InDelta(t, 2.0, profiles[0].Mean, 1e-9)
	assert.InDelta(t, 200.0, profiles[1].Mean, 1e-9)
	assert.Zero(t, profiles[2].StdDev)
}
