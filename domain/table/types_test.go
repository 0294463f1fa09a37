package table

import (
	"testing"

	"outlierscope/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataSetValid(t *testing.T) {
	ds, err := NewDataSet([]string{"cpu", "mem"}, []DataPoint{
		{Index: 0, Values: []float64{0.5, 120}},
		{Index: 3, Values: []float64{0.9, 512}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Dimensions)
	assert.Equal(t, 2, ds.Size())
	assert.NoError(t, ds.Validate())
}

func TestNewDataSetRejectsBadColumnCounts(t *testing.T) {
	point := DataPoint{Index: 0, Values: nil}

	_, err := NewDataSet(nil, []DataPoint{point})
	assert.True(t, core.IsValidationError(err))

	_, err = NewDataSet([]string{"a", "b", "c", "d"}, []DataPoint{point})
	assert.True(t, core.IsValidationError(err))
}

func TestNewDataSetRejectsEmptyData(t *testing.T) {
	_, err := NewDataSet([]string{"a"}, nil)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestNewDataSetRejectsDuplicateIndex(t *testing.T) {
	_, err := NewDataSet([]string{"a"}, []DataPoint{
		{Index: 2, Values: []float64{1}},
		{Index: 2, Values: []float64{2}},
	})
	assert.ErrorIs(t, err, core.ErrDuplicateIndex)
}

func TestNewDataSetRejectsNegativeIndex(t *testing.T) {
	_, err := NewDataSet([]string{"a"}, []DataPoint{
		{Index: -1, Values: []float64{1}},
	})
	assert.True(t, core.IsValidationError(err))
}

func TestNewDataSetRejectsDimensionMismatch(t *testing.T) {
	_, err := NewDataSet([]string{"a", "b"}, []DataPoint{
		{Index: 0, Values: []float64{1, 2}},
		{Index: 1, Values: []float64{3}},
	})
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestValidateCatchesTamperedDimensions(t *testing.T) {
	ds, err := NewDataSet([]string{"a"}, []DataPoint{{Index: 0, Values: []float64{1}}})
	require.NoError(t, err)

	ds.Dimensions = 3
	assert.Error(t, ds.Validate())

	var nilDS *DataSet
	assert.Error(t, nilDS.Validate())
}

func TestColumnProjectionKeepsIndices(t *testing.T) {
	ds, err := NewDataSet([]string{"a", "b"}, []DataPoint{
		{Index: 7, Values: []float64{1, 10}},
		{Index: 2, Values: []float64{3, 30}},
	})
	require.NoError(t, err)

	col := ds.Column(1)
	require.Equal(t, 2, col.Len())
	assert.Equal(t, Cell{Value: 10, Index: 7}, col[0])
	assert.Equal(t, Cell{Value: 30, Index: 2}, col[1])
	assert.Equal(t, []float64{10, 30}, col.Values())
}
