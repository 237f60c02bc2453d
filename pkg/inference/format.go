/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Format sniffing for partition content. Classifies a partition as tabular or
free-form from a small sample, infers the delimiter for tabular content, and builds the
TabularView for the whole partition. The fallback chain is expressed as explicit outcome
variants instead of buried error control flow.
*/

package inference

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	// classifySampleSize is how many leading records the classifier inspects
	classifySampleSize = 10

	// sniffWindow bounds how much of the sample the delimiter detector reads
	sniffWindow = 4096
)

// multiSpaceRe detects runs of two or more whitespace characters, the
// signature of fixed-width tabular dumps
var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// Outcome is the explicit result of sniffing a partition
type Outcome int

const (
	// OutcomeTabular means the partition parsed cleanly into a TabularView
	OutcomeTabular Outcome = iota
	// OutcomeFreeForm means the partition is plain text lines
	OutcomeFreeForm
	// OutcomeParseFailed means the partition looked tabular but could not be
	// parsed with the inferred delimiter; the free-form detector should run
	OutcomeParseFailed
)

// Delimiter is an inferred field separator. Whitespace selects run-of-
// whitespace splitting instead of a single separator rune.
type Delimiter struct {
	Rune       rune
	Whitespace bool
}

// SniffResult carries the outcome of sniffing one partition. View is only
// set for OutcomeTabular; Err is only set for OutcomeParseFailed.
type SniffResult struct {
	Outcome   Outcome
	Delimiter Delimiter
	View      *TabularView
	Err       error
}

// Sniff classifies a partition and, for tabular content, parses the whole
// partition into a TabularView using the inferred delimiter. A structural
// parse error abandons the tabular interpretation entirely and signals the
// caller to run the free-form detector instead.
func Sniff(records []string) SniffResult {
	sample := sampleText(records)
	if !looksTabular(sample) {
		return SniffResult{Outcome: OutcomeFreeForm}
	}

	delimiter := SniffDelimiter(sample)
	view, err := BuildTabularView(records, delimiter)
	if err != nil {
		return SniffResult{Outcome: OutcomeParseFailed, Delimiter: delimiter, Err: err}
	}
	return SniffResult{Outcome: OutcomeTabular, Delimiter: delimiter, View: view}
}

// sampleText joins the first few records into the classification sample
func sampleText(records []string) string {
	n := len(records)
	if n > classifySampleSize {
		n = classifySampleSize
	}
	return strings.Join(records[:n], "\n")
}

// looksTabular reports whether the sample reads as delimiter-separated data:
// it contains a comma, tab or semicolon, or a run of two or more whitespace
// characters.
func looksTabular(sample string) bool {
	if strings.ContainsAny(sample, ",\t;") {
		return true
	}
	return multiSpaceRe.MatchString(sample)
}

// SniffDelimiter infers the field separator for a tabular sample. Automatic
// detection runs over the first sniffWindow bytes; when it fails the
// fallback order is tab, semicolon, comma, then run-of-whitespace.
func SniffDelimiter(sample string) Delimiter {
	window := sample
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}
	if d, ok := detectDelimiter(window); ok {
		return d
	}

	switch {
	case strings.ContainsRune(sample, '\t'):
		return Delimiter{Rune: '\t'}
	case strings.ContainsRune(sample, ';'):
		return Delimiter{Rune: ';'}
	case strings.ContainsRune(sample, ','):
		return Delimiter{Rune: ','}
	default:
		return Delimiter{Whitespace: true}
	}
}

// detectDelimiter looks for a candidate separator that appears a consistent
// number of times on every sample line. Of the consistent candidates the one
// producing the most fields wins.
func detectDelimiter(window string) (Delimiter, bool) {
	lines := make([]string, 0, classifySampleSize)
	for _, line := range strings.Split(window, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Delimiter{}, false
	}

	best := rune(0)
	bestCount := 0
	for _, candidate := range []rune{',', '\t', ';'} {
		count := strings.Count(lines[0], string(candidate))
		if count == 0 {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if strings.Count(line, string(candidate)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best = candidate
			bestCount = count
		}
	}

	if bestCount == 0 {
		return Delimiter{}, false
	}
	return Delimiter{Rune: best}, true
}

// BuildTabularView parses every record of the partition with the given
// delimiter. The first parsed row becomes the header unless every token is
// purely numeric, in which case synthetic col0..colN-1 names are substituted
// and the numeric row is consumed as names only. Rows wider than the header
// are a structural error; narrower rows are padded with empty cells.
func BuildTabularView(records []string, delimiter Delimiter) (*TabularView, error) {
	var parsed [][]string
	var err error
	if delimiter.Whitespace {
		parsed, err = splitWhitespace(records)
	} else {
		parsed, err = splitDelimited(records, delimiter.Rune)
	}
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("no parseable rows in partition")
	}

	header := make([]string, len(parsed[0]))
	for i, name := range parsed[0] {
		header[i] = strings.TrimSpace(name)
	}
	if headerLooksNumeric(header) {
		for i := range header {
			header[i] = fmt.Sprintf("col%d", i)
		}
	}

	rows := make([][]string, 0, len(parsed)-1)
	for i, cells := range parsed[1:] {
		if len(cells) > len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(cells), len(header))
		}
		if len(cells) < len(header) {
			padded := make([]string, len(header))
			copy(padded, cells)
			cells = padded
		}
		rows = append(rows, cells)
	}

	return &TabularView{Columns: header, Rows: rows}, nil
}

// splitDelimited parses the records as CSV-style fields with the given
// separator rune
func splitDelimited(records []string, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(records, "\n")))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	parsed, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("delimited parse: %w", err)
	}
	return parsed, nil
}

// splitWhitespace splits each record on runs of whitespace
func splitWhitespace(records []string) ([][]string, error) {
	parsed := make([][]string, 0, len(records))
	for _, record := range records {
		fields := strings.Fields(record)
		if len(fields) == 0 {
			continue
		}
		parsed = append(parsed, fields)
	}
	return parsed, nil
}

// headerLooksNumeric reports whether every header token is digits only,
// which means the source had no usable header row
func headerLooksNumeric(header []string) bool {
	if len(header) == 0 {
		return false
	}
	for _, token := range header {
		if token == "" {
			return false
		}
		for _, r := range token {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}
