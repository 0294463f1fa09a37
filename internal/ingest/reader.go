// Package ingest turns uploaded spreadsheet files into validated numeric
// datasets. It owns format detection, header parsing, and per-cell numeric
// coercion; the detection engine receives only the finished
// table.DataSet and never touches a file.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"outlierscope/domain/core"

	"github.com/xuri/excelize/v2"
)

// RawTable is the string form of a parsed file: one header row and the
// remaining data rows, cells untrimmed of meaning but trimmed of space.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Reader handles reading Excel and CSV files from disk.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given path, detecting the format
// from the file extension.
func NewReader(filePath string) *Reader {
	fileType := "csv"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xls":
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read parses the file into a RawTable. The first row is always treated
// as the header row.
func (r *Reader) Read() (*RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcel()
	case "csv":
		return r.readCSV()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, r.fileType)
	}
}

func (r *Reader) readExcel() (*RawTable, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// First sheet, whatever it is named.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrInsufficientData)
	}
	return buildRawTable(rows), nil
}

func (r *Reader) readCSV() (*RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", core.ErrInsufficientData)
	}
	return buildRawTable(rows), nil
}

func buildRawTable(rows [][]string) *RawTable {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		data = append(data, cells)
	}

	return &RawTable{Headers: headers, Rows: data}
}
