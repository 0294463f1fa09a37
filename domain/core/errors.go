package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrReportNotFound  = fmt.Errorf("%w: report", ErrNotFound)

	// Validation errors
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrDimensionMismatch = errors.New("data point dimension mismatch")
	ErrDuplicateIndex    = errors.New("duplicate data point index")
	ErrEmptyDataset      = errors.New("dataset has no data rows")

	// Ingestion errors
	ErrNoNumericColumns = errors.New("no numeric columns found")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDataset, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDataset) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrDuplicateIndex) ||
		errors.Is(err, ErrEmptyDataset)
}

func IsIngestError(err error) bool {
	return errors.Is(err, ErrNoNumericColumns) ||
		errors.Is(err, ErrUnsupportedFile) ||
		errors.Is(err, ErrInsufficientData)
}
