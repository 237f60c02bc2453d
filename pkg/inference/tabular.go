/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tabular.go
Description: TabularView, the column-oriented reinterpretation of a partition once it has
been classified as delimited data. Exposes ordered, named columns with bounds-safe value
access so inference and detection never index past a ragged row.
*/

package inference

// TabularView is a partition reinterpreted as columns. Columns holds the
// ordered header names (synthetic col0..colN-1 when the source supplies no
// usable header); Rows are aligned to that header.
type TabularView struct {
	Columns []string
	Rows    [][]string
}

// ColumnCount returns the number of columns in the header
func (v *TabularView) ColumnCount() int {
	return len(v.Columns)
}

// RowCount returns the number of data rows
func (v *TabularView) RowCount() int {
	return len(v.Rows)
}

// Value returns the cell at (row, col), or the empty string when either
// index is out of range.
func (v *TabularView) Value(row, col int) string {
	if row < 0 || row >= len(v.Rows) {
		return ""
	}
	cells := v.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// Row returns the cells of one data row, or nil when out of range
func (v *TabularView) Row(row int) []string {
	if row < 0 || row >= len(v.Rows) {
		return nil
	}
	return v.Rows[row]
}

// ColumnValues returns up to limit values from the given column, in row
// order. A non-positive limit returns every row's value.
func (v *TabularView) ColumnValues(col, limit int) []string {
	n := len(v.Rows)
	if limit > 0 && limit < n {
		n = limit
	}
	values := make([]string, 0, n)
	for row := 0; row < n; row++ {
		values = append(values, v.Value(row, col))
	}
	return values
}
