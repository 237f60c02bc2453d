/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for Akaylee Sentinel. Provides structured, colorized
output with scan-phase prefixes so load, scatter, scan, fallback, gather, and result
events stand out in the run log.
*/

package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Canonical scan-phase log messages. The engine, worker, and scanner log
// with these and the formatter keys its prefixes on them, so the prefix
// mapping has a single owner.
const (
	MsgEngineInitialized   = "Engine initialized"
	MsgRecordsLoaded       = "Records loaded"
	MsgNoReadableData      = "No readable data found in input"
	MsgPartitionsScattered = "Partitions scattered"
	MsgPartitionScanned    = "Worker partition scanned"
	MsgWorkerScanFailed    = "Worker scan failed"
	MsgFallbackScan        = "Fallback to free-form scan"
	MsgResultsGathered     = "Results gathered"
	MsgArtifactWritten     = "Result artifact written"
)

// ScanFormatter provides structured output with scan-phase prefixes
type ScanFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry with the scan-phase prefix
func (f *ScanFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp)) // Cyan
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", f.getLevelColor(entry.Level), level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}

	if prefix := f.getScanPrefix(entry.Message); prefix != "" {
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[35m[%s]\033[0m ", prefix)) // Magenta
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", prefix))
		}
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[33m[%s]\033[0m ", caller)) // Yellow
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", caller))
		}
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data))
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

// getScanPrefix returns the phase prefix for a log message
func (f *ScanFormatter) getScanPrefix(message string) string {
	switch {
	case strings.Contains(message, MsgRecordsLoaded),
		strings.Contains(message, MsgNoReadableData):
		return "LOAD"
	case strings.Contains(message, MsgPartitionsScattered):
		return "SCATTER"
	case strings.Contains(message, MsgPartitionScanned):
		return "SCAN"
	case strings.Contains(message, MsgFallbackScan):
		return "FALLBACK"
	case strings.Contains(message, MsgResultsGathered):
		return "GATHER"
	case strings.Contains(message, MsgArtifactWritten):
		return "RESULT"
	case strings.Contains(message, "Worker"):
		return "WORKER"
	case strings.Contains(message, "Engine"):
		return "ENGINE"
	default:
		return ""
	}
}

// getLevelColor returns the ANSI color code for a log level
func (f *ScanFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// formatFields formats structured fields in a readable way
func (f *ScanFormatter) formatFields(fields logrus.Fields) string {
	var parts []string

	for key, value := range fields {
		formatted := f.formatValue(value)
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, formatted)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formatted))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *ScanFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 50 {
			return fmt.Sprintf("%s...", v[:50])
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
