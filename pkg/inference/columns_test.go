/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: columns_test.go
Description: Tests for column inference. Covers name-based matching, content-based IP
probing with its sample threshold, the column-zero fallback, and the right-to-left
trailing probe for the attack column.
*/

package inference_test

import (
	"fmt"
	"testing"

	"github.com/kleascm/akaylee-sentinel/pkg/inference"
	"github.com/stretchr/testify/assert"
)

// TestInferSourceColumnByName tests that header name fragments win first
func TestInferSourceColumnByName(t *testing.T) {
	cases := []struct {
		columns  []string
		expected int
	}{
		{[]string{"timestamp", "src_ip", "bytes"}, 1},
		{[]string{"SOURCE_ADDR", "dst"}, 0},
		{[]string{"time", "sip", "dip"}, 1},
		{[]string{"a", "b", "SrcIP"}, 2},
	}

	for _, tc := range cases {
		view := &inference.TabularView{Columns: tc.columns}
		assert.Equal(t, tc.expected, inference.InferSourceColumn(view), "%v", tc.columns)
	}
}

// TestInferSourceColumnByContent tests that without a name match the first
// column whose samples hold enough IP-shaped values wins
func TestInferSourceColumnByContent(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"event", fmt.Sprintf("10.0.0.%d", i), "500"}
	}
	view := &inference.TabularView{
		Columns: []string{"kind", "addr", "bytes"},
		Rows:    rows,
	}

	assert.Equal(t, 1, inference.InferSourceColumn(view))
}

// TestInferSourceColumnFallback tests that column zero is the last resort
func TestInferSourceColumnFallback(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"kind", "size"},
		Rows:    [][]string{{"event", "500"}, {"event", "600"}},
	}

	assert.Equal(t, 0, inference.InferSourceColumn(view))
}

// TestInferSourceColumnSparseIPs tests that a column with too few IP-shaped
// samples does not win the content probe
func TestInferSourceColumnSparseIPs(t *testing.T) {
	// 100 samples need at least 10 occurrences; one is not enough
	rows := make([][]string, 100)
	for i := range rows {
		rows[i] = []string{"event", "none"}
	}
	rows[0][1] = "10.0.0.1"
	view := &inference.TabularView{
		Columns: []string{"kind", "addr"},
		Rows:    rows,
	}

	assert.Equal(t, 0, inference.InferSourceColumn(view))
}

// TestInferAttackColumnByName tests that label-like header names win first
func TestInferAttackColumnByName(t *testing.T) {
	cases := []struct {
		columns  []string
		expected int
	}{
		{[]string{"src_ip", "attack_cat"}, 1},
		{[]string{"src_ip", "Label", "bytes"}, 1},
		{[]string{"class", "src_ip"}, 0},
		{[]string{"src_ip", "category"}, 1},
	}

	for _, tc := range cases {
		view := &inference.TabularView{Columns: tc.columns}
		assert.Equal(t, tc.expected, inference.InferAttackColumn(view), "%v", tc.columns)
	}
}

// TestInferAttackColumnByTailProbe tests the right-to-left probe over the
// trailing columns for textual samples
func TestInferAttackColumnByTailProbe(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"src_ip", "c1", "c2", "c3"},
		Rows: [][]string{
			{"1.1.1.1", "10", "exploit", "30"},
			{"2.2.2.2", "11", "normal", "31"},
		},
	}

	// c3 is numeric, c2 holds text, probe runs right to left
	assert.Equal(t, 2, inference.InferAttackColumn(view))
}

// TestInferAttackColumnEmptyCellCountsAsTextual tests that an empty sample
// qualifies a trailing column just like a label word
func TestInferAttackColumnEmptyCellCountsAsTextual(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"src_ip", "bytes", "tail"},
		Rows: [][]string{
			{"1.1.1.1", "10", ""},
			{"2.2.2.2", "11", "20"},
		},
	}

	assert.Equal(t, 2, inference.InferAttackColumn(view))
}

// TestInferAttackColumnAbsent tests that all-numeric trailing columns yield -1
func TestInferAttackColumnAbsent(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"c0", "c1", "c2"},
		Rows: [][]string{
			{"1", "2", "3"},
			{"4", "5.5", "-6"},
		},
	}

	assert.Equal(t, -1, inference.InferAttackColumn(view))
}

// TestInferAttackColumnProbeWidth tests that only the trailing columns are
// probed, not the whole row
func TestInferAttackColumnProbeWidth(t *testing.T) {
	// Text lives in column 0 of a nine-column view; the probe stops six
	// columns from the end
	view := &inference.TabularView{
		Columns: []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"},
		Rows: [][]string{
			{"text", "1", "2", "3", "4", "5", "6", "7", "8"},
		},
	}

	assert.Equal(t, -1, inference.InferAttackColumn(view))
}

// TestInferColumns tests the combined inference
func TestInferColumns(t *testing.T) {
	view := &inference.TabularView{
		Columns: []string{"src_ip", "dst_ip", "attack_cat"},
		Rows:    [][]string{{"1.1.1.1", "2.2.2.2", "exploit"}},
	}

	columns := inference.InferColumns(view)
	assert.Equal(t, 0, columns.Source)
	assert.Equal(t, 2, columns.Attack)
}
