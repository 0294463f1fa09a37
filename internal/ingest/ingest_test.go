package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"outlierscope/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "name,latency,errors\nweb-1, 12.5 ,0\nweb-2,14.1,2\n")

	raw, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "latency", "errors"}, raw.Headers)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"web-1", "12.5", "0"}, raw.Rows[0])
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	raw, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", ""}, raw.Rows[0])
}

func TestReadCSVRequiresDataRow(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n")

	_, err := NewReader(path).Read()
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).Read()
	assert.Error(t, err)
}

func TestReadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"latency", "errors"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{12.5, 0}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{14.1, 2}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	raw, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"latency", "errors"}, raw.Headers)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, "12.5", raw.Rows[0][0])
}

// Text columns are skipped, the first numeric columns win, and rows with a
// bad cell in a selected column are dropped while the survivors keep their
// original row numbers.
func TestBuildDataSetSelectsNumericColumns(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"host", "latency", "errors"},
		Rows: [][]string{
			{"web-1", "12.5", "0"},
			{"web-2", "n/a", "2"},
			{"web-3", "14.1", "1"},
		},
	}

	ds, summary, err := BuildDataSet(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"latency", "errors"}, ds.Headers)
	require.Equal(t, 2, ds.Size())
	assert.Equal(t, 0, ds.Data[0].Index)
	assert.Equal(t, 2, ds.Data[1].Index)
	assert.Equal(t, []float64{14.1, 1}, ds.Data[1].Values)

	assert.Equal(t, 3, summary.RowsTotal)
	assert.Equal(t, 1, summary.RowsDropped)
	assert.Equal(t, 3, summary.ColumnsTotal)
	assert.Equal(t, []string{"latency", "errors"}, summary.SelectedColumns)
}

func TestBuildDataSetCapsAtThreeColumns(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"a", "b", "c", "d"},
		Rows: [][]string{
			{"1", "2", "3", "4"},
			{"5", "6", "7", "8"},
		},
	}

	ds, _, err := BuildDataSet(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ds.Headers)
	assert.Equal(t, 3, ds.Dimensions)
}

func TestBuildDataSetNoNumericColumns(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"host", "region"},
		Rows: [][]string{
			{"web-1", "us-east"},
			{"web-2", "eu-west"},
		},
	}

	_, _, err := BuildDataSet(raw)
	assert.ErrorIs(t, err, core.ErrNoNumericColumns)
}

func TestBuildDataSetEmptyColumnNotNumeric(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"v"},
		Rows: [][]string{
			{""},
			{""},
		},
	}

	_, _, err := BuildDataSet(raw)
	assert.ErrorIs(t, err, core.ErrNoNumericColumns)
}

// Both columns clear the numeric threshold on their non-empty cells, yet
// every row has an empty cell in one of them, so nothing survives coercion.
func TestBuildDataSetAllRowsDropped(t *testing.T) {
	raw := &RawTable{
		Headers: []string{"a", "b"},
		Rows: [][]string{
			{"1", ""},
			{"", "2"},
		},
	}

	_, _, err := BuildDataSet(raw)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}
