/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Scan engine for Akaylee Sentinel. Orchestrates one distributed scan: the
root loads and partitions the input, scatters one partition to each worker rank, waits
on the full gather barrier, aggregates the per-rank tallies, and publishes the result
artifact. Fail-fast: an error in any rank aborts the run with no artifact written.
*/

package core

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/akaylee-sentinel/pkg/logging"
	"github.com/sirupsen/logrus"
)

// Engine drives one scan run across a fixed pool of worker ranks
type Engine struct {
	config   *ScanConfig
	loader   Loader
	detector Detector
	writer   ResultWriter
	logger   *logrus.Logger
	stats    *ScanStats
	runID    string
}

// NewEngine creates an engine with default logging and empty statistics.
// Loader, detector, and writer are injected before Initialize.
func NewEngine() *Engine {
	return &Engine{
		logger: logrus.New(),
		stats:  &ScanStats{},
	}
}

// SetLoader injects the input loader
func (e *Engine) SetLoader(loader Loader) {
	e.loader = loader
}

// SetDetector injects the partition detector shared by all ranks
func (e *Engine) SetDetector(detector Detector) {
	e.detector = detector
}

// SetWriter injects the result artifact writer
func (e *Engine) SetWriter(writer ResultWriter) {
	e.writer = writer
}

// SetLogger injects the engine logger
func (e *Engine) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Initialize validates the configuration and prepares the engine for one run
func (e *Engine) Initialize(config *ScanConfig) error {
	if config == nil {
		return fmt.Errorf("config is required")
	}
	if config.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if e.loader == nil {
		return fmt.Errorf("loader is required")
	}
	if e.detector == nil {
		return fmt.Errorf("detector is required")
	}
	if e.writer == nil {
		return fmt.Errorf("writer is required")
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}

	e.config = config
	e.runID = uuid.New().String()
	e.stats.StartTime = time.Now()

	e.logger.WithFields(logrus.Fields{
		"scan_id": e.runID,
		"input":   config.InputPath,
		"workers": config.Workers,
	}).Info(logging.MsgEngineInitialized)

	return nil
}

// Run executes one complete scan and returns the analysis result together
// with the artifact path.
//
// The scatter and gather points carry full-barrier semantics: no rank scans
// before it holds its partition, and aggregation starts only after every
// rank has reported. There is no shared mutable state between ranks, no
// timeout, and no retry; any rank error aborts the whole run before the
// artifact is touched.
func (e *Engine) Run() (*AnalysisResult, string, error) {
	if e.config == nil {
		return nil, "", fmt.Errorf("engine is not initialized")
	}

	// Root loads the whole input before partitioning
	records, err := e.loader.Load(e.config.InputPath)
	if err != nil {
		return nil, "", fmt.Errorf("load failed: %w", err)
	}
	atomic.StoreInt64(&e.stats.RecordsLoaded, int64(len(records)))
	e.logger.WithFields(logrus.Fields{
		"scan_id": e.runID,
		"input":   e.config.InputPath,
		"records": len(records),
	}).Info(logging.MsgRecordsLoaded)
	if len(records) == 0 {
		e.logger.WithFields(logrus.Fields{
			"scan_id": e.runID,
		}).Warn(logging.MsgNoReadableData)
	}

	partitions := PartitionRecords(records, e.config.Workers)
	e.logger.WithFields(logrus.Fields{
		"scan_id": e.runID,
		"workers": len(partitions),
	}).Info(logging.MsgPartitionsScattered)

	results := make([]PartitionResult, len(partitions))
	errs := make([]error, len(partitions))

	var wg sync.WaitGroup
	for rank := range partitions {
		worker := NewWorker(partitions[rank].Rank, e.detector, e.logger)
		wg.Add(1)
		go func(rank int, worker *Worker) {
			defer wg.Done()
			results[rank], errs[rank] = worker.Scan(partitions[rank])
		}(rank, worker)
	}
	// Gather barrier: every rank must report before aggregation
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, "", fmt.Errorf("scan aborted: %w", err)
		}
	}

	for _, result := range results {
		e.stats.IncrementPartitions()
		e.stats.AddRows(result.RowsScanned)
		switch result.Kind {
		case ScanTabular:
			e.stats.IncrementTabular()
		case ScanFreeForm:
			e.stats.IncrementFreeForm()
		case ScanFallback:
			e.stats.IncrementFreeForm()
			e.stats.IncrementFallbacks()
		}
	}

	result := Aggregate(results)
	atomic.StoreInt64(&e.stats.SuspiciousIPs, int64(len(result.Tally)))
	e.logger.WithFields(logrus.Fields{
		"scan_id":    e.runID,
		"suspicious": len(result.Tally),
		"sentinel":   result.IsSentinel(),
	}).Info(logging.MsgResultsGathered)

	path, err := e.writer.Write(result)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write result artifact: %w", err)
	}
	e.logger.WithFields(logrus.Fields{
		"scan_id":  e.runID,
		"artifact": path,
		"duration": time.Since(e.stats.StartTime),
	}).Info(logging.MsgArtifactWritten)

	return result, path, nil
}

// GetStats returns the statistics for the current run
func (e *Engine) GetStats() *ScanStats {
	return e.stats
}

// RunID returns the unique identifier assigned at Initialize
func (e *Engine) RunID() string {
	return e.runID
}
