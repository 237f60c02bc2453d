/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: partition.go
Description: Partitioner and Aggregator for the Akaylee Sentinel scan engine. Splits the
loaded record sequence into disjoint per-rank partitions using round-robin assignment and
merges the gathered per-rank tallies into one order-independent analysis result.
*/

package core

// PartitionRecords splits records into workers disjoint partitions.
// Record i (0-based, in load order) goes to partition i mod workers, so the
// split is deterministic and reproducible for a given load order and worker
// count. Every rank receives a partition, possibly empty.
func PartitionRecords(records []RawRecord, workers int) []Partition {
	if workers < 1 {
		workers = 1
	}

	partitions := make([]Partition, workers)
	for rank := 0; rank < workers; rank++ {
		partitions[rank] = Partition{
			Rank:    rank,
			Records: make([]RawRecord, 0, len(records)/workers+1),
		}
	}

	for i, record := range records {
		rank := i % workers
		partitions[rank].Records = append(partitions[rank].Records, record)
	}

	return partitions
}

// Aggregate merges the gathered per-rank results into one AnalysisResult.
//
// Counts are summed per IP across all tallies, which makes the merge
// commutative and associative: ranks may report in any order. If the merged
// tally is empty, the per-rank source-column frequencies are merged and the
// frequency fallback is applied over the whole column: values occurring more
// than once become tally entries with their total frequency as count. If the
// tally is still empty the sentinel result is returned.
func Aggregate(results []PartitionResult) *AnalysisResult {
	merged := make(Tally)
	for _, result := range results {
		merged.Merge(result.Tally)
	}

	if len(merged) == 0 {
		frequencies := make(Tally)
		for _, result := range results {
			frequencies.Merge(result.SourceFrequencies)
		}
		// Single occurrences are noise, not signal
		for ip, count := range frequencies {
			if count > 1 {
				merged[ip] = count
			}
		}
	}

	if len(merged) == 0 {
		return &AnalysisResult{Message: NoResultsMessage}
	}
	return &AnalysisResult{Tally: merged}
}
