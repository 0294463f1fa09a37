// Package table defines the validated numeric dataset consumed by the
// analysis engine. A DataSet is produced once by ingestion, owned by the
// caller, and only ever read by the engine.
package table

import (
	"fmt"

	"outlierscope/domain/core"
)

// MaxDimensions caps how many numeric columns a dataset may carry.
const MaxDimensions = 3

// DataPoint is one row of a numeric dataset. Index is the original row
// number and stays stable across every view and report; Values always has
// length equal to the owning dataset's Dimensions.
type DataPoint struct {
	Index  int       `json:"index"`
	Values []float64 `json:"values"`
}

// DataSet is an immutable tabular numeric sample of 1 to 3 columns.
type DataSet struct {
	Dimensions int         `json:"dimensions"`
	Headers    []string    `json:"headers"`
	Data       []DataPoint `json:"data"`
}

// Cell pairs a single column value with the original row index it came from.
type Cell struct {
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

// ColumnView is the per-dimension projection handed to detection methods.
// It is derived on demand and never persisted.
type ColumnView []Cell

// NewDataSet builds a dataset and enforces its structural invariants:
// 1 <= dimensions <= 3, one header per dimension, non-empty data, every
// point carrying exactly dimensions values, and unique non-negative indices.
func NewDataSet(headers []string, data []DataPoint) (*DataSet, error) {
	dims := len(headers)
	if dims < 1 || dims > MaxDimensions {
		return nil, core.NewValidationError("headers",
			fmt.Sprintf("expected 1 to %d columns, got %d", MaxDimensions, dims))
	}
	if len(data) == 0 {
		return nil, core.ErrEmptyDataset
	}

	seen := make(map[int]struct{}, len(data))
	for _, p := range data {
		if p.Index < 0 {
			return nil, core.NewValidationError("index",
				fmt.Sprintf("row index must be >= 0, got %d", p.Index))
		}
		if _, dup := seen[p.Index]; dup {
			return nil, fmt.Errorf("%w: %d", core.ErrDuplicateIndex, p.Index)
		}
		seen[p.Index] = struct{}{}
		if len(p.Values) != dims {
			return nil, fmt.Errorf("%w: row %d has %d values, dataset has %d columns",
				core.ErrDimensionMismatch, p.Index, len(p.Values), dims)
		}
	}

	return &DataSet{
		Dimensions: dims,
		Headers:    headers,
		Data:       data,
	}, nil
}

// Validate re-checks the structural invariants. NewDataSet already enforces
// them; this exists so consumers handed a DataSet they did not construct can
// reject malformed input instead of silently reporting "no outliers".
func (ds *DataSet) Validate() error {
	if ds == nil {
		return core.NewValidationError("dataset", "nil dataset")
	}
	if _, err := NewDataSet(ds.Headers, ds.Data); err != nil {
		return err
	}
	if ds.Dimensions != len(ds.Headers) {
		return core.NewValidationError("dimensions",
			fmt.Sprintf("dimensions %d does not match %d headers", ds.Dimensions, len(ds.Headers)))
	}
	return nil
}

// Size returns the number of data rows.
func (ds *DataSet) Size() int {
	return len(ds.Data)
}

// Column projects dimension dim into a ColumnView, preserving row order.
func (ds *DataSet) Column(dim int) ColumnView {
	col := make(ColumnView, 0, len(ds.Data))
	for _, p := range ds.Data {
		col = append(col, Cell{Value: p.Values[dim], Index: p.Index})
	}
	return col
}

// Values returns the raw column values in view order.
func (cv ColumnView) Values() []float64 {
	vals := make([]float64, len(cv))
	for i, c := range cv {
		vals[i] = c.Value
	}
	return vals
}

// Len returns the number of cells in the view.
func (cv ColumnView) Len() int {
	return len(cv)
}
