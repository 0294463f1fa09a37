package outlier

import (
	"outlierscope/domain/core"
)

// StoredReport is a persisted analysis run: the report itself plus the
// metadata of the dataset it was computed from.
type StoredReport struct {
	ID         core.ReportID  `json:"id"`
	DatasetID  core.DatasetID `json:"dataset_id"`
	SourceFile string         `json:"source_file"`
	Dimensions int            `json:"dimensions"`
	RowCount   int            `json:"row_count"`
	Report     AnalysisReport `json:"report"`
	CreatedAt  core.Timestamp `json:"created_at"`
}

// NewStoredReport wraps a finished report with fresh identity and metadata.
func NewStoredReport(datasetID core.DatasetID, sourceFile string, dimensions, rowCount int, report AnalysisReport) *StoredReport {
	return &StoredReport{
		ID:         core.ReportID(core.NewID()),
		DatasetID:  datasetID,
		SourceFile: sourceFile,
		Dimensions: dimensions,
		RowCount:   rowCount,
		Report:     report,
		CreatedAt:  core.Now(),
	}
}
