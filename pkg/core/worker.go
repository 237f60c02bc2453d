/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: worker.go
Description: Worker implementation for parallel partition scanning in the Akaylee
Sentinel engine. Each worker rank owns exactly one partition per run, scans it with the
configured detector, and tracks per-rank statistics for reporting.
*/

package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/kleascm/akaylee-sentinel/pkg/logging"
	"github.com/sirupsen/logrus"
)

// Worker represents a single rank in the distributed scan.
// Detection inside one worker is single-threaded; parallelism exists only
// across ranks.
type Worker struct {
	Rank     int            // Worker rank (0 = root)
	detector Detector       // Partition detector
	logger   *logrus.Logger // Worker-specific logger

	// Performance tracking
	scans      int64     // Number of partitions scanned
	records    int64     // Number of records inspected
	suspicious int64     // Number of unique suspicious IPs found
	startTime  time.Time // When worker was created

	mu sync.RWMutex // Thread safety for counters
}

// NewWorker creates a new worker for the given rank
func NewWorker(rank int, detector Detector, logger *logrus.Logger) *Worker {
	if logger == nil {
		logger = logrus.New()
	}
	return &Worker{
		Rank:      rank,
		detector:  detector,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Scan runs the detector over the worker's partition and returns the
// rank-local result. The partition is owned exclusively by this rank for
// the duration of the scan.
func (w *Worker) Scan(partition Partition) (PartitionResult, error) {
	start := time.Now()

	result, err := w.detector.Scan(partition)
	if err != nil {
		w.logger.WithFields(logrus.Fields{
			"rank":  w.Rank,
			"error": err,
		}).Error(logging.MsgWorkerScanFailed)
		return result, fmt.Errorf("rank %d scan failed: %w", w.Rank, err)
	}

	w.mu.Lock()
	w.scans++
	w.records += int64(len(partition.Records))
	w.suspicious += int64(len(result.Tally))
	w.mu.Unlock()

	w.logger.WithFields(logrus.Fields{
		"rank":       w.Rank,
		"records":    len(partition.Records),
		"suspicious": len(result.Tally),
		"duration":   time.Since(start),
	}).Info(logging.MsgPartitionScanned)

	return result, nil
}

// GetStats returns worker statistics
func (w *Worker) GetStats() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[string]interface{}{
		"rank":       w.Rank,
		"scans":      w.scans,
		"records":    w.records,
		"suspicious": w.suspicious,
		"uptime":     time.Since(w.startTime),
	}
}
