/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format_test.go
Description: Tests for format sniffing. Covers the tabular/free-form classification,
delimiter detection with its fallback chain, TabularView construction, synthetic headers,
and the explicit parse-failure outcome.
*/

package inference_test

import (
	"testing"

	"github.com/kleascm/akaylee-sentinel/pkg/inference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSniffFreeForm tests that plain log lines classify as free-form
func TestSniffFreeForm(t *testing.T) {
	records := []string{
		"Failed password for root from 10.0.0.5 port 22 ssh2",
		"Accepted publickey for alice from 192.168.1.9",
	}

	result := inference.Sniff(records)
	assert.Equal(t, inference.OutcomeFreeForm, result.Outcome)
	assert.Nil(t, result.View)
}

// TestSniffCommaTabular tests classification and parsing of comma-delimited data
func TestSniffCommaTabular(t *testing.T) {
	records := []string{
		"src_ip,dst_ip,label",
		"9.9.9.9,10.0.0.1,exploit",
		"8.8.8.8,10.0.0.1,benign",
	}

	result := inference.Sniff(records)
	require.Equal(t, inference.OutcomeTabular, result.Outcome)
	assert.Equal(t, ',', result.Delimiter.Rune)
	assert.False(t, result.Delimiter.Whitespace)

	require.NotNil(t, result.View)
	assert.Equal(t, []string{"src_ip", "dst_ip", "label"}, result.View.Columns)
	assert.Equal(t, 2, result.View.RowCount())
	assert.Equal(t, "9.9.9.9", result.View.Value(0, 0))
}

// TestSniffTabTabular tests tab-delimited content
func TestSniffTabTabular(t *testing.T) {
	records := []string{
		"src\tlabel",
		"1.1.1.1\texploit",
	}

	result := inference.Sniff(records)
	require.Equal(t, inference.OutcomeTabular, result.Outcome)
	assert.Equal(t, '\t', result.Delimiter.Rune)
}

// TestSniffSemicolonTabular tests semicolon-delimited content
func TestSniffSemicolonTabular(t *testing.T) {
	records := []string{
		"src;label",
		"1.1.1.1;exploit",
	}

	result := inference.Sniff(records)
	require.Equal(t, inference.OutcomeTabular, result.Outcome)
	assert.Equal(t, ';', result.Delimiter.Rune)
}

// TestSniffWhitespaceTabular tests that multi-space runs classify as tabular
// and split on whitespace
func TestSniffWhitespaceTabular(t *testing.T) {
	records := []string{
		"src_ip     label",
		"1.1.1.1    exploit",
		"2.2.2.2    benign",
	}

	result := inference.Sniff(records)
	require.Equal(t, inference.OutcomeTabular, result.Outcome)
	assert.True(t, result.Delimiter.Whitespace)
	assert.Equal(t, []string{"src_ip", "label"}, result.View.Columns)
	assert.Equal(t, "exploit", result.View.Value(0, 1))
}

// TestSniffDelimiterConsistencyWins tests that the detector picks the
// candidate with consistent per-line counts producing the most fields
func TestSniffDelimiterConsistencyWins(t *testing.T) {
	// Commas appear inconsistently, semicolons consistently
	sample := "a;b;c,x\n" +
		"d;e;f\n" +
		"g;h;i,y,z"

	delimiter := inference.SniffDelimiter(sample)
	assert.Equal(t, ';', delimiter.Rune)
}

// TestSniffDelimiterFallbackChain tests the tab, semicolon, comma, whitespace
// fallback order when no candidate is consistent
func TestSniffDelimiterFallbackChain(t *testing.T) {
	// Tab counts differ per line, so detection fails and the chain picks tab
	withTab := "a\tb\n" + "c\td\te"
	assert.Equal(t, '\t', inference.SniffDelimiter(withTab).Rune)

	withSemicolon := "a;b\n" + "c;d;e"
	assert.Equal(t, ';', inference.SniffDelimiter(withSemicolon).Rune)

	withComma := "a,b\n" + "c,d,e"
	assert.Equal(t, ',', inference.SniffDelimiter(withComma).Rune)

	plain := "just  spaced  words"
	assert.True(t, inference.SniffDelimiter(plain).Whitespace)
}

// TestBuildTabularViewNumericHeader tests that an all-numeric first row gets
// synthetic column names
func TestBuildTabularViewNumericHeader(t *testing.T) {
	records := []string{
		"1,2,3",
		"9.9.9.9,10.0.0.1,exploit",
	}

	view, err := inference.BuildTabularView(records, inference.Delimiter{Rune: ','})
	require.NoError(t, err)
	assert.Equal(t, []string{"col0", "col1", "col2"}, view.Columns)
	assert.Equal(t, 1, view.RowCount())
}

// TestBuildTabularViewPadsNarrowRows tests that rows narrower than the header
// are padded with empty cells
func TestBuildTabularViewPadsNarrowRows(t *testing.T) {
	records := []string{
		"src,dst,label",
		"1.1.1.1,2.2.2.2",
	}

	view, err := inference.BuildTabularView(records, inference.Delimiter{Rune: ','})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.1.1", "2.2.2.2", ""}, view.Row(0))
}

// TestBuildTabularViewRejectsWideRows tests that a row wider than the header
// is a structural error
func TestBuildTabularViewRejectsWideRows(t *testing.T) {
	records := []string{
		"src,label",
		"1.1.1.1,exploit,extra",
	}

	_, err := inference.BuildTabularView(records, inference.Delimiter{Rune: ','})
	assert.Error(t, err)
}

// TestSniffParseFailed tests that tabular-looking content that cannot parse
// yields the explicit parse-failure outcome
func TestSniffParseFailed(t *testing.T) {
	records := []string{
		"src,label",
		"1.1.1.1,exploit,unexpected,extra,fields",
	}

	result := inference.Sniff(records)
	assert.Equal(t, inference.OutcomeParseFailed, result.Outcome)
	assert.Error(t, result.Err)
	assert.Nil(t, result.View)
}

// TestTabularViewBoundsSafety tests that out-of-range access returns zero values
func TestTabularViewBoundsSafety(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "2"}},
	}

	assert.Equal(t, "", view.Value(5, 0))
	assert.Equal(t, "", view.Value(0, 5))
	assert.Equal(t, "", view.Value(-1, -1))
	assert.Nil(t, view.Row(9))
	assert.Equal(t, []string{"1"}, view.ColumnValues(0, 100))
}

// TestPatterns tests the shared IP and numeric shape helpers
func TestPatterns(t *testing.T) {
	assert.True(t, inference.IPShapedPrefix("10.0.0.5"))
	assert.True(t, inference.IPShapedPrefix("999.999.1.1 trailing"))
	assert.False(t, inference.IPShapedPrefix("host-10.0.0.5"))
	assert.False(t, inference.IPShapedPrefix("not an ip"))

	assert.True(t, inference.PurelyNumeric("42"))
	assert.True(t, inference.PurelyNumeric("-3.14"))
	assert.False(t, inference.PurelyNumeric(""))
	assert.False(t, inference.PurelyNumeric("3.14.15"))
	assert.False(t, inference.PurelyNumeric("exploit"))

	assert.Equal(t, []string{"10.0.0.5", "192.168.1.9"},
		inference.IPRe.FindAllString("from 10.0.0.5 to 192.168.1.9", -1))
}
