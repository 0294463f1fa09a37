// Package analyze orchestrates the detection methods over a dataset and
// assembles the per-method report. The engine is synchronous and stateless:
// the report is a pure function of the dataset, so repeated runs on the
// same input produce identical output.
package analyze

import (
	"fmt"

	"outlierscope/domain/outlier"
	"outlierscope/domain/table"
	"outlierscope/internal/detect"
)

// Engine runs every catalog method over every column of a dataset.
type Engine struct {
	methods []detect.Method
}

// New creates an engine over the full method catalog.
func New() *Engine {
	return &Engine{methods: detect.Catalog()}
}

// NewWithMethods creates an engine over a custom method list, preserving
// the given order. Used by tests and single-method callers.
func NewWithMethods(methods []detect.Method) *Engine {
	return &Engine{methods: methods}
}

// Run analyzes the dataset and returns one AnalysisResult per method, in
// catalog order. The only error is a structurally invalid dataset from a
// misbehaving caller; degenerate numeric cases surface as empty outlier
// lists, never as errors.
func (e *Engine) Run(ds *table.DataSet) (outlier.AnalysisReport, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("analysis rejected dataset: %w", err)
	}

	points := make(map[int]table.DataPoint, len(ds.Data))
	for _, p := range ds.Data {
		points[p.Index] = p
	}

	report := make(outlier.AnalysisReport, 0, len(e.methods))
	for _, m := range e.methods {
		report = append(report, e.runMethod(m, ds, points))
	}
	return report, nil
}

// runMethod gathers one method's flags across every dimension. Records are
// keyed by (row index, column index); a second flag for the same pair is
// skipped, while the same row flagged in two different columns produces two
// records, each carrying that column's value. Insertion order is preserved.
func (e *Engine) runMethod(m detect.Method, ds *table.DataSet, points map[int]table.DataPoint) outlier.AnalysisResult {
	records := make([]outlier.OutlierRecord, 0)
	seen := make(map[string]struct{})

	for dim := 0; dim < ds.Dimensions; dim++ {
		col := ds.Column(dim)
		for _, idx := range m.Detect(col) {
			key := fmt.Sprintf("%d-%d", idx, dim)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			p := points[idx]
			records = append(records, outlier.OutlierRecord{
				Index:       idx,
				Value:       p.Values[dim],
				Point:       p.Values,
				ColumnIndex: dim,
			})
		}
	}

	return outlier.AnalysisResult{
		MethodName:  m.Name,
		Description: m.Description,
		Outliers:    records,
	}
}
