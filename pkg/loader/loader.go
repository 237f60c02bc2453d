/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: loader.go
Description: Input loading for the Akaylee Sentinel scan engine. Dispatches on the file
extension to line-oriented, delimited, spreadsheet, and JSON readers and produces the
ordered raw record sequence the partitioner works from. Loading has no side effects
beyond the read.
*/

package loader

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat marks an input whose extension is not recognized.
// This is a user input error, surfaced before any partitioning happens.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Format is the declared input format derived from the file extension
type Format string

const (
	FormatLines       Format = "lines"       // .log, .txt
	FormatDelimited   Format = "delimited"   // .csv
	FormatSpreadsheet Format = "spreadsheet" // .xlsx, .xls
	FormatJSON        Format = "json"        // .json
)

// Extensions lists the recognized file extensions and their formats
var Extensions = map[string]Format{
	".csv":  FormatDelimited,
	".xlsx": FormatSpreadsheet,
	".xls":  FormatSpreadsheet,
	".json": FormatJSON,
	".log":  FormatLines,
	".txt":  FormatLines,
}

// FormatForPath maps the path's extension to its declared format
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := Extensions[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// FileLoader loads telemetry files into raw records
type FileLoader struct{}

// New creates a file loader
func New() *FileLoader {
	return &FileLoader{}
}

// Load reads the file at path according to its declared format and returns
// its records in source order. Unknown extensions fail with
// ErrUnsupportedFormat; read or parse errors are wrapped with the path.
func (l *FileLoader) Load(path string) ([]core.RawRecord, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	var records []core.RawRecord
	switch format {
	case FormatLines, FormatDelimited:
		records, err = loadLines(path)
	case FormatSpreadsheet:
		records, err = loadSpreadsheet(path)
	case FormatJSON:
		records, err = loadJSON(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return records, nil
}

// loadLines reads a text file one line per record, dropping blank and
// whitespace-only lines
func loadLines(path string) ([]core.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := make([]core.RawRecord, 0, 1024)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// loadSpreadsheet reads the first sheet of a workbook, skips the sheet
// header row, and flattens each remaining non-empty row to a tab-joined
// record. OOXML workbooks (.xlsx) go through excelize; legacy BIFF
// workbooks (.xls) go through the xls reader.
func loadSpreadsheet(path string) ([]core.RawRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return loadLegacyWorkbook(path)
	}
	return loadWorkbook(path)
}

// loadWorkbook reads the first sheet of an OOXML workbook
func loadWorkbook(path string) ([]core.RawRecord, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return flattenSheetRows(rows), nil
}

// loadLegacyWorkbook reads the first sheet of a legacy BIFF workbook
func loadLegacyWorkbook(path string) ([]core.RawRecord, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, err
	}

	worksheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, worksheet.GetNumberRows())
	for i := 0; i < worksheet.GetNumberRows(); i++ {
		sheetRow, err := worksheet.GetRow(i)
		if err != nil {
			return nil, err
		}
		cells := make([]string, 0, len(sheetRow.GetCols()))
		for _, cell := range sheetRow.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return flattenSheetRows(rows), nil
}

// flattenSheetRows drops the sheet header row and joins each remaining
// non-empty row into one tab-separated record
func flattenSheetRows(rows [][]string) []core.RawRecord {
	if len(rows) > 0 {
		// First sheet row is the column header, not data
		rows = rows[1:]
	}

	records := make([]core.RawRecord, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		records = append(records, strings.Join(row, "\t"))
	}
	return records
}

// loadJSON reads a JSON document: a sequence becomes one record per element,
// a mapping one "key: value" record per pair in sorted key order, and any
// other value a single record
func loadJSON(path string) ([]core.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := sonic.Unmarshal(data, &value); err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []interface{}:
		records := make([]core.RawRecord, 0, len(v))
		for _, item := range v {
			records = append(records, stringify(item))
		}
		return records, nil

	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		// Sorted keys keep repeated scans byte-identical
		sort.Strings(keys)
		records := make([]core.RawRecord, 0, len(keys))
		for _, key := range keys {
			records = append(records, fmt.Sprintf("%s: %s", key, stringify(v[key])))
		}
		return records, nil

	default:
		return []core.RawRecord{stringify(value)}, nil
	}
}

// stringify renders a decoded JSON value as record text: strings verbatim,
// everything else compact JSON
func stringify(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
