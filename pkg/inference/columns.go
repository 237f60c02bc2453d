/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: columns.go
Description: Column inference for tabular telemetry. Locates the column most likely to
hold the source IP address and the column most likely to hold an attack or label
indicator, trying name-based heuristics first and content-based heuristics as fallback.
Inference runs once per TabularView and the result is passed around explicitly.
*/

package inference

import "strings"

const (
	// sourceSampleLimit caps how many values the source-column probe reads
	sourceSampleLimit = 200

	// attackSampleLimit caps how many values the attack-column probe reads
	attackSampleLimit = 500

	// attackTailWidth is how many trailing columns the attack probe inspects
	attackTailWidth = 6
)

// sourceNameTokens are header fragments that identify a source-IP column
var sourceNameTokens = []string{"src", "source", "sip", "src_ip", "source_ip"}

// attackNameTokens are header fragments that identify an attack/label column
var attackNameTokens = []string{"attack", "label", "cat", "class"}

// InferredColumns is the pair of column indices computed once per view.
// Source is always a valid index when the view has at least one column;
// Attack is -1 when no attack-like column could be found.
type InferredColumns struct {
	Source int
	Attack int
}

// InferColumns runs both inferences over the view
func InferColumns(view *TabularView) InferredColumns {
	return InferredColumns{
		Source: InferSourceColumn(view),
		Attack: InferAttackColumn(view),
	}
}

// InferSourceColumn returns the index of the column most likely to hold the
// source IP. Name-based matching wins; otherwise the first column whose
// sampled values contain enough IP-shaped occurrences; otherwise column 0.
func InferSourceColumn(view *TabularView) int {
	if col, ok := matchColumnName(view, sourceNameTokens); ok {
		return col
	}

	for col := 0; col < view.ColumnCount(); col++ {
		values := view.ColumnValues(col, sourceSampleLimit)
		occurrences := 0
		for _, value := range values {
			occurrences += len(IPRe.FindAllString(value, -1))
		}
		if occurrences >= ipOccurrenceThreshold(len(values)) {
			return col
		}
	}

	return 0
}

// ipOccurrenceThreshold is max(1, min(10, sampleSize/10)): small samples need
// a single hit, large samples need up to ten
func ipOccurrenceThreshold(sampleSize int) int {
	threshold := sampleSize / 10
	if threshold > 10 {
		threshold = 10
	}
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// InferAttackColumn returns the index of the column most likely to hold an
// attack/label indicator, or -1 when none qualifies. Name-based matching
// wins; otherwise the trailing columns are probed right to left for textual
// (non-numeric) samples.
func InferAttackColumn(view *TabularView) int {
	if col, ok := matchColumnName(view, attackNameTokens); ok {
		return col
	}

	start := view.ColumnCount() - attackTailWidth
	if start < 0 {
		start = 0
	}
	for col := view.ColumnCount() - 1; col >= start; col-- {
		values := view.ColumnValues(col, attackSampleLimit)
		for _, value := range values {
			// An empty cell counts as textual here, same as a label word
			if !PurelyNumeric(value) {
				return col
			}
		}
	}

	return -1
}

// matchColumnName returns the first column whose lowered name contains any
// of the given tokens
func matchColumnName(view *TabularView, tokens []string) (int, bool) {
	for col, name := range view.Columns {
		lowered := strings.ToLower(name)
		for _, token := range tokens {
			if strings.Contains(lowered, token) {
				return col, true
			}
		}
	}
	return 0, false
}
