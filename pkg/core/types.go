/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types and interfaces for the Akaylee Sentinel scan engine. Defines the
fundamental data structures used throughout a distributed telemetry scan including raw
records, partitions, tallies, analysis results, and configuration parameters.
*/

package core

import (
	"sync/atomic"
	"time"
)

// RawRecord is one unit of loaded input: a text line, or a tabular row
// flattened to text. Records are immutable once produced by the loader.
type RawRecord = string

// Partition is the ordered subset of records assigned to exactly one worker
// rank. Partitions are pairwise disjoint and their union equals the full
// record sequence. A partition is owned exclusively by its rank for the
// duration of one scan.
type Partition struct {
	Rank    int         `json:"rank"`    // Worker rank that owns this partition
	Records []RawRecord `json:"records"` // Records assigned to this rank
}

// Tally maps an IP address string to a non-negative occurrence count.
// Keys are unique; ordering carries no meaning.
type Tally map[string]int

// Add increments the count for the given IP
func (t Tally) Add(ip string, count int) {
	t[ip] += count
}

// Merge folds another tally into this one, summing counts per key.
// Merging is commutative and associative, so gather order never matters.
func (t Tally) Merge(other Tally) {
	for ip, count := range other {
		t[ip] += count
	}
}

// ScanKind describes how a partition ended up being scanned
type ScanKind int

const (
	ScanTabular  ScanKind = iota // Partition parsed and scanned as delimited data
	ScanFreeForm                 // Partition scanned as free-form text lines
	ScanFallback                 // Tabular interpretation failed, recovered as free-form
)

// PartitionResult is the value a worker rank returns from scanning its
// partition. SourceFrequencies carries the rank's IP-shaped source-column
// value counts so the aggregator can apply the frequency fallback over the
// whole column rather than a single partition.
type PartitionResult struct {
	Rank              int      `json:"rank"`               // Rank that produced this result
	Tally             Tally    `json:"tally"`              // Local suspicious-IP tally
	SourceFrequencies Tally    `json:"source_frequencies"` // IP-shaped source value frequencies
	Kind              ScanKind `json:"kind"`               // How the partition was scanned
	RowsScanned       int      `json:"rows_scanned"`       // Rows or lines inspected
}

// NoResultsMessage is the human-readable note used for the sentinel result
const NoResultsMessage = "No suspicious IPs or attack patterns detected."

// AnalysisResult is the outcome of a whole scan: either a non-empty tally,
// or the sentinel message meaning no suspicious activity was detected.
// Exactly one of the two shapes is ever produced.
type AnalysisResult struct {
	Tally   Tally  `json:"tally,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsSentinel reports whether this result is the no-results sentinel
func (r *AnalysisResult) IsSentinel() bool {
	return len(r.Tally) == 0
}

// ScanStats tracks counters for one scan run.
// Uses atomic operations for thread-safe updates.
type ScanStats struct {
	RecordsLoaded      int64     `json:"records_loaded"`      // Records produced by the loader
	PartitionsScanned  int64     `json:"partitions_scanned"`  // Partitions fully scanned
	TabularPartitions  int64     `json:"tabular_partitions"`  // Partitions scanned as tabular data
	FreeFormPartitions int64     `json:"freeform_partitions"` // Partitions scanned as free-form text
	FallbackRecoveries int64     `json:"fallback_recoveries"` // Tabular parses downgraded to free-form
	RowsScanned        int64     `json:"rows_scanned"`        // Total rows/lines inspected
	SuspiciousIPs      int64     `json:"suspicious_ips"`      // Unique IPs in the final tally
	StartTime          time.Time `json:"start_time"`          // When the scan started
}

// IncrementPartitions atomically increments the scanned-partition counter
func (s *ScanStats) IncrementPartitions() {
	atomic.AddInt64(&s.PartitionsScanned, 1)
}

// IncrementTabular atomically increments the tabular-partition counter
func (s *ScanStats) IncrementTabular() {
	atomic.AddInt64(&s.TabularPartitions, 1)
}

// IncrementFreeForm atomically increments the free-form-partition counter
func (s *ScanStats) IncrementFreeForm() {
	atomic.AddInt64(&s.FreeFormPartitions, 1)
}

// IncrementFallbacks atomically increments the fallback-recovery counter
func (s *ScanStats) IncrementFallbacks() {
	atomic.AddInt64(&s.FallbackRecoveries, 1)
}

// AddRows atomically adds to the inspected-row counter
func (s *ScanStats) AddRows(n int) {
	atomic.AddInt64(&s.RowsScanned, int64(n))
}

// ScanConfig contains all configuration parameters for a scan run.
// Supports both command-line flags and configuration files.
type ScanConfig struct {
	// Input configuration
	InputPath string `json:"input_path"` // Path to the telemetry file to scan

	// Execution configuration
	Workers int `json:"workers"` // Number of worker ranks (0 = auto-detect)

	// Output configuration
	OutputDir string `json:"output_dir"` // Directory for the result artifact

	// Logging configuration
	LogLevel string `json:"log_level"` // Logging level (debug, info, warn, error)
	LogDir   string `json:"log_dir"`   // Log output directory
	JSONLogs bool   `json:"json_logs"` // Use JSON log format
}

// Loader produces the ordered record sequence for a scan.
// Implementations must have no side effects beyond the read.
type Loader interface {
	// Load reads the source at path and returns its records in order
	Load(path string) ([]RawRecord, error)
}

// Detector scans one partition and returns its local result.
// Implementations recover locally from partition-level parse failures and
// never fail another rank's scan.
type Detector interface {
	// Scan inspects a partition and returns the rank-local result
	Scan(partition Partition) (PartitionResult, error)
}

// ResultWriter serializes the final analysis result as a stable artifact
type ResultWriter interface {
	// Write persists the result and returns the artifact path.
	// The overwrite must be atomic from a reader's point of view.
	Write(result *AnalysisResult) (string, error)
}
