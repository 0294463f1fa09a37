// Package postgres persists finished analysis reports. Persistence is an
// optional collaborator: the engine itself never touches storage.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"outlierscope/domain/core"
	"outlierscope/domain/outlier"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Schema creates the report store tables. Applied by EnsureSchema at
// startup; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_reports (
	id          TEXT PRIMARY KEY,
	dataset_id  TEXT NOT NULL,
	source_file TEXT NOT NULL,
	dimensions  INTEGER NOT NULL,
	row_count   INTEGER NOT NULL,
	report      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_reports_dataset ON analysis_reports (dataset_id);
`

// ReportRepository stores and retrieves analysis reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a repository over an open connection.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Connect opens the database and applies the schema.
func Connect(ctx context.Context, databaseURL string) (*ReportRepository, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to report store: %w", err)
	}
	repo := NewReportRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// EnsureSchema applies the report store schema.
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply report store schema: %w", err)
	}
	return nil
}

// Save inserts a stored report.
func (r *ReportRepository) Save(ctx context.Context, sr *outlier.StoredReport) error {
	reportJSON, err := json.Marshal(sr.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `INSERT INTO analysis_reports (
		id, dataset_id, source_file, dimensions, row_count, report, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		sr.ID.String(), sr.DatasetID.String(), sr.SourceFile,
		sr.Dimensions, sr.RowCount, reportJSON, sr.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetByID retrieves one stored report.
func (r *ReportRepository) GetByID(ctx context.Context, id core.ReportID) (*outlier.StoredReport, error) {
	query := `SELECT id, dataset_id, source_file, dimensions, row_count, report, created_at
	FROM analysis_reports WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id.String())
	sr, err := scanStoredReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: report with id %s", core.ErrReportNotFound, id)
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return sr, nil
}

// ListRecent returns the most recent stored reports, newest first.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*outlier.StoredReport, error) {
	query := `SELECT id, dataset_id, source_file, dimensions, row_count, report, created_at
	FROM analysis_reports ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*outlier.StoredReport
	for rows.Next() {
		sr, err := scanStoredReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, sr)
	}
	return reports, rows.Err()
}

// Close releases the underlying connection.
func (r *ReportRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStoredReport(row rowScanner) (*outlier.StoredReport, error) {
	var (
		sr         outlier.StoredReport
		id         string
		datasetID  string
		reportJSON []byte
		createdAt  sql.NullTime
	)

	err := row.Scan(&id, &datasetID, &sr.SourceFile, &sr.Dimensions, &sr.RowCount, &reportJSON, &createdAt)
	if err != nil {
		return nil, err
	}

	sr.ID = core.ReportID(id)
	sr.DatasetID = core.DatasetID(datasetID)
	if createdAt.Valid {
		sr.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	if len(reportJSON) > 0 {
		if err := json.Unmarshal(reportJSON, &sr.Report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report payload: %w", err)
		}
	}
	return &sr, nil
}
