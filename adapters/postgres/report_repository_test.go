package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"outlierscope/domain/core"
	"outlierscope/domain/outlier"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*ReportRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReportRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sampleReport() outlier.AnalysisReport {
	return outlier.AnalysisReport{
		{
			MethodName:  "IQR",
			Description: "fence test",
			Outliers: []outlier.OutlierRecord{
				{Index: 5, Value: 100, Point: []float64{100}, ColumnIndex: 0},
			},
		},
	}
}

func TestSaveInsertsAllFields(t *testing.T) {
	repo, mock := newMockRepository(t)

	sr := outlier.NewStoredReport("ds-1", "latency.csv", 1, 6, sampleReport())
	reportJSON, err := json.Marshal(sr.Report)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO analysis_reports").
		WithArgs(sr.ID.String(), "ds-1", "latency.csv", 1, 6, reportJSON, sr.CreatedAt.Time()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), sr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	reportJSON, err := json.Marshal(sampleReport())
	require.NoError(t, err)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "dataset_id", "source_file", "dimensions", "row_count", "report", "created_at",
	}).AddRow("rep-1", "ds-1", "latency.csv", 1, 6, reportJSON, created)

	mock.ExpectQuery("SELECT (.+) FROM analysis_reports WHERE id = \\$1").
		WithArgs("rep-1").
		WillReturnRows(rows)

	sr, err := repo.GetByID(context.Background(), core.ReportID("rep-1"))
	require.NoError(t, err)

	assert.Equal(t, core.ReportID("rep-1"), sr.ID)
	assert.Equal(t, core.DatasetID("ds-1"), sr.DatasetID)
	assert.Equal(t, "latency.csv", sr.SourceFile)
	require.Len(t, sr.Report, 1)
	assert.Equal(t, "IQR", sr.Report[0].MethodName)
	require.Len(t, sr.Report[0].Outliers, 1)
	assert.Equal(t, 5, sr.Report[0].Outliers[0].Index)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM analysis_reports WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "dataset_id", "source_file", "dimensions", "row_count", "report", "created_at",
		}))

	_, err := repo.GetByID(context.Background(), core.ReportID("missing"))
	assert.ErrorIs(t, err, core.ErrReportNotFound)
	assert.True(t, core.IsNotFoundError(err))
}

func TestListRecent(t *testing.T) {
	repo, mock := newMockRepository(t)

	reportJSON, err := json.Marshal(sampleReport())
	require.NoError(t, err)
	newer := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "dataset_id", "source_file", "dimensions", "row_count", "report", "created_at",
	}).
		AddRow("rep-2", "ds-2", "b.csv", 2, 10, reportJSON, newer).
		AddRow("rep-1", "ds-1", "a.csv", 1, 6, reportJSON, older)

	mock.ExpectQuery("SELECT (.+) FROM analysis_reports ORDER BY created_at DESC LIMIT \\$1").
		WithArgs(2).
		WillReturnRows(rows)

	reports, err := repo.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, core.ReportID("rep-2"), reports[0].ID)
	assert.Equal(t, core.ReportID("rep-1"), reports[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analysis_reports").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
