// Package outlier holds the result types produced by the detection engine.
// A report is plain immutable data handed to rendering or storage; nothing
// in this package computes.
package outlier

// Statistics contains the descriptive statistics for one column sample.
// Quartiles and medians follow the nearest-rank rule and StdDev is the
// population standard deviation; see the stats package for the exact
// computation contract.
type Statistics struct {
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	MAD    float64 `json:"mad"`
}

// OutlierRecord flags one dataset row in one column. Value is the flagged
// column's value; Point is the row's full coordinate vector.
type OutlierRecord struct {
	Index       int       `json:"index"`
	Value       float64   `json:"value"`
	Point       []float64 `json:"point"`
	ColumnIndex int       `json:"column_index"`
}

// AnalysisResult is a single method's outcome over every column of the
// dataset. Outliers are deduplicated by (index, column) and kept in
// insertion order.
type AnalysisResult struct {
	MethodName  string          `json:"method_name"`
	Description string          `json:"description"`
	Outliers    []OutlierRecord `json:"outliers"`
}

// AnalysisReport carries one AnalysisResult per catalog method, in catalog
// order. The order is a stable contract consumed by renderers.
type AnalysisReport []AnalysisResult

// TotalFlagged returns the number of outlier records across all methods.
func (r AnalysisReport) TotalFlagged() int {
	total := 0
	for _, res := range r {
		total += len(res.Outliers)
	}
	return total
}

// ByMethod returns the result for a method name, or nil if absent.
func (r AnalysisReport) ByMethod(name string) *AnalysisResult {
	for i := range r {
		if r[i].MethodName == name {
			return &r[i]
		}
	}
	return nil
}
