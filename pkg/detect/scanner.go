/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scanner.go
Description: Partition scanner tying format sniffing, column inference, and the two
detector variants together. Implements the core Detector contract with silent local
recovery: a partition whose tabular interpretation fails is rescanned free-form without
failing the run or any other rank.
*/

package detect

import (
	"fmt"

	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/kleascm/akaylee-sentinel/pkg/inference"
	"github.com/kleascm/akaylee-sentinel/pkg/logging"
	"github.com/sirupsen/logrus"
)

// PartitionScanner scans one partition end to end
type PartitionScanner struct {
	logger   *logrus.Logger
	tabular  *TabularDetector
	freeform *FreeFormDetector
}

// NewPartitionScanner creates a scanner logging through the given logger
func NewPartitionScanner(logger *logrus.Logger) *PartitionScanner {
	if logger == nil {
		logger = logrus.New()
	}
	return &PartitionScanner{
		logger:   logger,
		tabular:  NewTabularDetector(),
		freeform: NewFreeFormDetector(),
	}
}

// Scan sniffs the partition and runs the matching detector variant. The
// fallback chain is explicit: a clean tabular parse runs the tabular
// detector, a parse failure or a failure inside the tabular scan downgrades
// to the free-form detector over the raw records, and free-form content goes
// straight to the free-form detector. Fallbacks emit a diagnostic log entry
// only; nothing is escalated.
func (s *PartitionScanner) Scan(partition core.Partition) (core.PartitionResult, error) {
	result := core.PartitionResult{
		Rank:              partition.Rank,
		Tally:             make(core.Tally),
		SourceFrequencies: make(core.Tally),
		RowsScanned:       len(partition.Records),
	}

	sniffed := inference.Sniff(partition.Records)
	switch sniffed.Outcome {
	case inference.OutcomeTabular:
		tally, frequencies, err := s.scanTabular(sniffed.View)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"rank":   partition.Rank,
				"reason": err,
			}).Warn(logging.MsgFallbackScan)
			result.Kind = core.ScanFallback
			result.Tally = s.freeform.Detect(partition.Records)
			break
		}
		result.Kind = core.ScanTabular
		result.Tally = tally
		result.SourceFrequencies = frequencies

	case inference.OutcomeParseFailed:
		s.logger.WithFields(logrus.Fields{
			"rank":   partition.Rank,
			"reason": sniffed.Err,
		}).Warn(logging.MsgFallbackScan)
		result.Kind = core.ScanFallback
		result.Tally = s.freeform.Detect(partition.Records)

	default:
		result.Kind = core.ScanFreeForm
		result.Tally = s.freeform.Detect(partition.Records)
	}

	return result, nil
}

// scanTabular runs column inference and the tabular detector. A panic while
// interpreting a malformed partition is converted to an error so the caller
// can recover with the free-form scan.
func (s *PartitionScanner) scanTabular(view *inference.TabularView) (tally core.Tally, frequencies core.Tally, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tabular scan: %v", r)
		}
	}()

	columns := inference.InferColumns(view)
	tally, frequencies = s.tabular.Detect(view, columns)
	return tally, frequencies, nil
}
