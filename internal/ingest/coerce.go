package ingest

import (
	"fmt"
	"strconv"

	"outlierscope/domain/core"
	"outlierscope/domain/table"
)

// numericThreshold is the fraction of non-empty cells in a column that must
// parse as numbers for the column to count as numeric.
const numericThreshold = 0.9

// Summary records what coercion did to the raw table.
type Summary struct {
	RowsTotal       int      `json:"rows_total"`
	RowsDropped     int      `json:"rows_dropped"`
	ColumnsTotal    int      `json:"columns_total"`
	SelectedColumns []string `json:"selected_columns"`
}

// BuildDataSet selects the first 1 to 3 numeric columns of the raw table
// and coerces them into a validated DataSet. A column is numeric when at
// least 90% of its non-empty cells parse as floats; rows with any
// non-parsable cell in a selected column are dropped, and surviving rows
// keep their original 0-based data-row number as the point index.
func BuildDataSet(raw *RawTable) (*table.DataSet, *Summary, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, nil, core.ErrInsufficientData
	}

	selected := selectNumericColumns(raw)
	if len(selected) == 0 {
		return nil, nil, core.ErrNoNumericColumns
	}

	headers := make([]string, len(selected))
	for i, col := range selected {
		headers[i] = raw.Headers[col]
	}

	points := make([]table.DataPoint, 0, len(raw.Rows))
	dropped := 0
	for rowIdx, row := range raw.Rows {
		values := make([]float64, len(selected))
		ok := true
		for i, col := range selected {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				ok = false
				break
			}
			values[i] = v
		}
		if !ok {
			dropped++
			continue
		}
		points = append(points, table.DataPoint{Index: rowIdx, Values: values})
	}

	if len(points) == 0 {
		return nil, nil, fmt.Errorf("%w: every row had a non-numeric cell in the selected columns",
			core.ErrInsufficientData)
	}

	ds, err := table.NewDataSet(headers, points)
	if err != nil {
		return nil, nil, fmt.Errorf("coerced table failed validation: %w", err)
	}

	summary := &Summary{
		RowsTotal:       len(raw.Rows),
		RowsDropped:     dropped,
		ColumnsTotal:    len(raw.Headers),
		SelectedColumns: headers,
	}
	return ds, summary, nil
}

// selectNumericColumns returns the indices of the first columns that pass
// the numeric threshold, capped at table.MaxDimensions, in header order.
func selectNumericColumns(raw *RawTable) []int {
	var selected []int
	for col := range raw.Headers {
		if len(selected) == table.MaxDimensions {
			break
		}
		if numericRatio(raw.Rows, col) >= numericThreshold {
			selected = append(selected, col)
		}
	}
	return selected
}

// numericRatio is the fraction of non-empty cells in the column that parse
// as floats. A column with no non-empty cells is not numeric.
func numericRatio(rows [][]string, col int) float64 {
	parsed, nonEmpty := 0, 0
	for _, row := range rows {
		cell := row[col]
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			parsed++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return float64(parsed) / float64(nonEmpty)
}
