/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: freeform.go
Description: Free-form suspicious-record detector. Matches the failed-authentication
pattern on raw telemetry lines and falls back to counting every IP-shaped substring on
lines that do not carry the pattern.
*/

package detect

import (
	"regexp"

	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/kleascm/akaylee-sentinel/pkg/inference"
)

// authFailureRe matches a failed authentication event naming a source IP
var authFailureRe = regexp.MustCompile(`Failed password for.*from (` + inference.IPPattern + `)`)

// FreeFormDetector tallies suspicious IPs from plain text lines
type FreeFormDetector struct{}

// NewFreeFormDetector creates a free-form detector
func NewFreeFormDetector() *FreeFormDetector {
	return &FreeFormDetector{}
}

// Detect scans raw lines and returns the local tally.
//
// A line matching the failed-password pattern contributes exactly one
// increment for its named source IP. A non-matching line contributes one
// increment per IP-shaped substring it contains. The asymmetry between the
// two cases is deliberate and must not be unified.
func (d *FreeFormDetector) Detect(records []string) core.Tally {
	tally := make(core.Tally)
	for _, line := range records {
		if m := authFailureRe.FindStringSubmatch(line); m != nil {
			tally.Add(m[1], 1)
			continue
		}
		for _, ip := range inference.IPRe.FindAllString(line, -1) {
			tally.Add(ip, 1)
		}
	}
	return tally
}
