// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"sort"

	"github.com/minio/highwayhash"

	"github.com/broadinstitute/dsa/polymer"
)

// shardKey is a fixed, zero-valued HighwayHash key: shard assignment only
// needs to be a stable, well-distributed function of the barcode within a
// single run, not a secret.
var shardKey = make([]byte, 32)

// UMICollapse groups reads sharing a barcode and reduces each group to a
// single consensus read, using highwayhash to deterministically shard
// barcodes across workers so that all reads for a barcode land in the same
// partition (and therefore the same goroutine) regardless of input order.
//
// Groups smaller than minUMIGroupSize are dropped
// (FilterUMIGroupTooSmall). In non-ragged mode, reads whose length
// disagrees with the group's modal length are excluded from the consensus
// and counted as FilterDuplicateUMI (a reads-not-used tally, following the
// documented semantics of the original accounting rather than the source's
// own degenerate implementation of it).
func UMICollapse(reads []Read, minUMIGroupSize int, raggedEnds bool, log *ParseLog) []Read {
	workers := numWorkers()
	shards := make([][]Read, workers)
	for _, r := range reads {
		h := highwayhash.Sum64([]byte(r.Barcode), shardKey)
		s := int(h % uint64(workers))
		shards[s] = append(shards[s], r)
	}

	results := make([][]Read, workers)
	logs := make([]ParseLog, workers)
	parallelForEach(workers, func(s int) {
		groups := groupByBarcode(shards[s])
		var out []Read
		var l ParseLog
		barcodes := make([]string, 0, len(groups))
		for bc := range groups {
			barcodes = append(barcodes, bc)
		}
		sort.Strings(barcodes)
		for _, bc := range barcodes {
			group := groups[bc]
			if len(group) < minUMIGroupSize {
				l.FilterUMIGroupTooSmall += uint64(len(group))
				continue
			}
			consensus, contributed := buildConsensusSequence(group, raggedEnds, minUMIGroupSize)
			l.FilterDuplicateUMI += uint64(len(group) - contributed)
			consensus.Barcode = bc
			consensus.UMIGroupSize = uint64(len(group))
			out = append(out, consensus)
		}
		results[s] = out
		logs[s] = l
	})

	var out []Read
	for _, r := range results {
		out = append(out, r...)
	}
	for _, l := range logs {
		*log = log.Add(l)
	}
	return out
}

func groupByBarcode(reads []Read) map[string][]Read {
	groups := make(map[string][]Read)
	for _, r := range reads {
		groups[r.Barcode] = append(groups[r.Barcode], r)
	}
	return groups
}

// buildConsensusSequence reduces group to a single Read. In ragged-ends
// mode, reads are sorted descending by length and the consensus length is
// the length of the minUMIGroupSize-th largest read, so every position of
// the consensus is backed by at least minUMIGroupSize reads. In strict
// mode, only reads at the modal length contribute; on a tie among
// equally-frequent lengths, the smaller length wins (unspecified upstream;
// resolved deterministically here). It returns the consensus and the
// number of reads that contributed to it.
func buildConsensusSequence(group []Read, raggedEnds bool, minUMIGroupSize int) (Read, int) {
	if len(group) == 1 {
		return group[0], 1
	}

	var targetLen int
	if raggedEnds {
		lengths := make([]int, len(group))
		for i, r := range group {
			lengths[i] = r.Dna.Len()
		}
		sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
		targetLen = lengths[minUMIGroupSize-1]
	} else {
		targetLen = modalLength(group)
	}

	seq := make([]byte, targetLen)
	qual := make([]byte, targetLen)
	contributed := 0

	for pos := 0; pos < targetLen; pos++ {
		var counts [5]int      // A,C,T,G,N via Nt.Index()
		var bestQual [5]byte   // highest quality byte observed for that base at this position
		for _, r := range group {
			if pos >= r.Dna.Len() || (!raggedEnds && r.Dna.Len() != targetLen) {
				continue
			}
			nt := r.Dna.At(pos)
			idx := nt.Index()
			counts[idx]++
			if pos < len(r.Qual) && r.Qual[pos] > bestQual[idx] {
				bestQual[idx] = r.Qual[pos]
			}
		}
		best := 0
		for i := 1; i < 5; i++ {
			if counts[i] > counts[best] {
				best = i
			}
		}
		seq[pos] = ntByIndex[best].Byte()
		qual[pos] = bestQual[best]
	}

	for _, r := range group {
		if raggedEnds || r.Dna.Len() == targetLen {
			contributed++
		}
	}

	return Read{Dna: polymer.NewNts(string(seq)), Qual: qual}, contributed
}

var ntByIndex = [5]polymer.Nt{polymer.NtA, polymer.NtC, polymer.NtT, polymer.NtG, polymer.NtN}

// modalLength returns the most frequent read length in group, preferring
// the smaller length on a tie.
func modalLength(group []Read) int {
	counts := make(map[int]int)
	for _, r := range group {
		counts[r.Dna.Len()]++
	}
	best, bestCount := -1, -1
	for length, count := range counts {
		if count > bestCount || (count == bestCount && length < best) {
			best, bestCount = length, count
		}
	}
	return best
}
