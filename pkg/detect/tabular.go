/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tabular.go
Description: Tabular suspicious-record detector. Reads the inferred source-IP column per
row, prefers the inferred attack column for the suspicious/benign decision, and falls
back to probing the trailing columns for textual labels. Also collects source-column
value frequencies for the aggregate-level frequency fallback.
*/

package detect

import (
	"strings"

	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/kleascm/akaylee-sentinel/pkg/inference"
)

// tailWidth is how many trailing cells the textual-label fallback inspects
const tailWidth = 6

// benignValues are attack-column values treated as not suspicious
var benignValues = map[string]struct{}{
	"0":      {},
	"-":      {},
	"normal": {},
	"benign": {},
	"none":   {},
	"":       {},
}

// TabularDetector tallies suspicious IPs from a TabularView
type TabularDetector struct{}

// NewTabularDetector creates a tabular detector
func NewTabularDetector() *TabularDetector {
	return &TabularDetector{}
}

// Detect scans every row of the view and returns the local tally plus the
// IP-shaped source-value frequencies.
//
// Per row: the source value is trimmed and the row skipped when it is empty
// or the literal "nan". With a usable attack value the row counts unless the
// value is benign; without one, the row counts when any trailing cell holds
// non-empty, non-numeric text. Frequencies are collected for every row whose
// source value starts IP-shaped, so the aggregator can run the whole-column
// frequency fallback after the gather.
func (d *TabularDetector) Detect(view *inference.TabularView, columns inference.InferredColumns) (core.Tally, core.Tally) {
	tally := make(core.Tally)
	frequencies := make(core.Tally)

	for row := 0; row < view.RowCount(); row++ {
		source := strings.TrimSpace(view.Value(row, columns.Source))
		if source == "" || strings.EqualFold(source, "nan") {
			continue
		}
		if inference.IPShapedPrefix(source) {
			frequencies.Add(source, 1)
		}

		attackValue := ""
		if columns.Attack >= 0 {
			attackValue = strings.TrimSpace(view.Value(row, columns.Attack))
		}

		if attackValue != "" {
			if _, benign := benignValues[strings.ToLower(attackValue)]; !benign {
				tally.Add(source, 1)
			}
			continue
		}

		if hasTextualTail(view.Row(row)) {
			tally.Add(source, 1)
		}
	}

	return tally, frequencies
}

// hasTextualTail reports whether any of the row's trailing cells holds a
// non-empty value that is not purely numeric
func hasTextualTail(cells []string) bool {
	start := len(cells) - tailWidth
	if start < 0 {
		start = 0
	}
	for _, cell := range cells[start:] {
		value := strings.ToLower(strings.TrimSpace(cell))
		if value != "" && !inference.PurelyNumeric(value) {
			return true
		}
	}
	return false
}
