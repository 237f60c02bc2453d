/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader_test.go
Description: Tests for the input loader. Covers extension dispatch, blank-line handling,
JSON document flattening, spreadsheet reading, and the unsupported-format error.
*/

package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/kleascm/akaylee-sentinel/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFile writes a fixture into a temp directory
func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestFormatForPath tests the extension-to-format mapping
func TestFormatForPath(t *testing.T) {
	cases := map[string]loader.Format{
		"auth.log":     loader.FormatLines,
		"notes.txt":    loader.FormatLines,
		"flows.csv":    loader.FormatDelimited,
		"report.xlsx":  loader.FormatSpreadsheet,
		"legacy.xls":   loader.FormatSpreadsheet,
		"dump.json":    loader.FormatJSON,
		"UPPER.CSV":    loader.FormatDelimited,
		"dir/auth.LOG": loader.FormatLines,
	}
	for path, expected := range cases {
		format, err := loader.FormatForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, format, path)
	}
}

// TestFormatForPathUnsupported tests that unknown extensions are rejected
func TestFormatForPathUnsupported(t *testing.T) {
	for _, path := range []string{"data.parquet", "archive.tar.gz", "noext", "image.png"} {
		_, err := loader.FormatForPath(path)
		require.Error(t, err, path)
		assert.ErrorIs(t, err, loader.ErrUnsupportedFormat, path)
	}
}

// TestLoadUnsupportedFormat tests that Load surfaces the format error before
// touching the file
func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := loader.New().Load("does-not-exist.parquet")
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

// TestLoadLines tests line-oriented loading with blank-line dropping
func TestLoadLines(t *testing.T) {
	path := writeFile(t, "auth.log",
		"first line\n"+
			"\n"+
			"   \t  \n"+
			"second line\r\n"+
			"third line")

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []core.RawRecord{"first line", "second line", "third line"}, records)
}

// TestLoadCSVAsLines tests that delimited files load one raw line per record,
// leaving the tabular interpretation to the sniffing stage
func TestLoadCSVAsLines(t *testing.T) {
	path := writeFile(t, "flows.csv", "src_ip,label\n9.9.9.9,exploit\n")

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []core.RawRecord{"src_ip,label", "9.9.9.9,exploit"}, records)
}

// TestLoadJSONArray tests that a JSON sequence becomes one record per element
func TestLoadJSONArray(t *testing.T) {
	path := writeFile(t, "events.json",
		`["Failed password for root from 10.0.0.5 port 22", {"ip": "1.2.3.4"}, 42]`)

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Failed password for root from 10.0.0.5 port 22", records[0])
	assert.JSONEq(t, `{"ip": "1.2.3.4"}`, records[1])
	assert.Equal(t, "42", records[2])
}

// TestLoadJSONObject tests that a JSON mapping becomes sorted key-value records
func TestLoadJSONObject(t *testing.T) {
	path := writeFile(t, "summary.json", `{"zulu": "last", "alpha": "first", "mike": 7}`)

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []core.RawRecord{
		"alpha: first",
		"mike: 7",
		"zulu: last",
	}, records)
}

// TestLoadJSONScalar tests that any other JSON value becomes a single record
func TestLoadJSONScalar(t *testing.T) {
	path := writeFile(t, "scalar.json", `"just one string"`)

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []core.RawRecord{"just one string"}, records)
}

// TestLoadJSONInvalid tests that malformed JSON fails with the path wrapped
func TestLoadJSONInvalid(t *testing.T) {
	path := writeFile(t, "broken.json", `{"unclosed": `)

	_, err := loader.New().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

// TestLoadSpreadsheet tests workbook loading: header row skipped, empty rows
// dropped, cells tab-joined
func TestLoadSpreadsheet(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]interface{}{"src_ip", "label"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]interface{}{"9.9.9.9", "exploit"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A3", &[]interface{}{"", ""}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A4", &[]interface{}{"8.8.8.8", "benign"}))

	path := filepath.Join(t.TempDir(), "flows.xlsx")
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	records, err := loader.New().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []core.RawRecord{"9.9.9.9\texploit", "8.8.8.8\tbenign"}, records)
}

// TestLoadLegacySpreadsheetDispatch tests that .xls inputs are routed to the
// legacy BIFF reader rather than the OOXML one. A bare OLE compound-file
// container is a read failure with the path wrapped, not a format rejection.
func TestLoadLegacySpreadsheetDispatch(t *testing.T) {
	// The OLE signature every legacy .xls file starts with, truncated before
	// the rest of the container header
	content := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	path := filepath.Join(t.TempDir(), "legacy.xls")
	require.NoError(t, os.WriteFile(path, content, 0644))

	_, err := loader.New().Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, loader.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), path)
	// The OOXML reader rejects the OLE container outright; the legacy reader
	// gets far enough to fail on the workbook structure instead
	assert.NotContains(t, err.Error(), "unsupported workbook file format")
}

// TestLoadMissingFile tests that a missing input fails with the path wrapped
func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.log")

	_, err := loader.New().Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
