// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"github.com/broadinstitute/dsa/overlap"
	"github.com/broadinstitute/dsa/polymer"
)

// AssembleReads merges each QC'd pair into a single consensus read by
// overlapping the forward read against the reverse-complement of the
// reverse read. Pairs whose reverse-complement overlaps the forward read's
// prefix (rather than its suffix) are treated as sequenced in swapped
// orientation and merged accordingly. Pairs with no overlap of at least
// minOverlap bases and at most maxMismatches mismatches are dropped.
//
// Merging is fully parallel: unlike the reference implementation (which
// hardcodes a single assembly thread), nothing about assembly is
// order-dependent, so this uses the same worker-partitioned model as every
// other stage.
func AssembleReads(pairs []ReadPair, minOverlap, maxMismatches int, log *ParseLog) []Read {
	return parallelTransformFilter(len(pairs), log, func(i int, l *ParseLog) (Read, bool) {
		pair := pairs[i]
		fw := pair.Fw.Dna.Bytes()
		rc := pair.Rv.Dna.ReverseComplement()
		rv := rc.Bytes()

		ov := overlap.Find(fw, rv, maxMismatches)
		if ov.Overlap < minOverlap {
			l.FilterCouldNotAssemble++
			return Read{}, false
		}

		var merged []byte
		var quals []byte
		fwQual := pair.Fw.Qual
		rvQual := reverseQual(pair.Rv.Qual)

		if ov.InOrder {
			// suffix(fw) overlaps prefix(rv): fw ++ rv[overlap:]
			overlapStart := len(fw) - ov.Overlap
			merged = append(merged, fw[:overlapStart]...)
			mergedRegion, qRegion := mergeOverlap(fw[overlapStart:], fwQual[overlapStart:], rv[:ov.Overlap], rvQual[:ov.Overlap])
			merged = append(merged, mergedRegion...)
			quals = append(quals, fwQual[:overlapStart]...)
			quals = append(quals, qRegion...)
			merged = append(merged, rv[ov.Overlap:]...)
			quals = append(quals, rvQual[ov.Overlap:]...)
		} else {
			// prefix(fw) overlaps suffix(rv): rv ++ fw[overlap:]
			overlapStart := len(rv) - ov.Overlap
			merged = append(merged, rv[:overlapStart]...)
			mergedRegion, qRegion := mergeOverlap(rv[overlapStart:], rvQual[overlapStart:], fw[:ov.Overlap], fwQual[:ov.Overlap])
			merged = append(merged, mergedRegion...)
			quals = append(quals, rvQual[:overlapStart]...)
			quals = append(quals, qRegion...)
			merged = append(merged, fw[ov.Overlap:]...)
			quals = append(quals, fwQual[ov.Overlap:]...)
		}

		return Read{
			Barcode:      pair.Fw.Barcode,
			UMIGroupSize: 1,
			Dna:          polymer.NewNts(string(merged)),
			Qual:         quals,
		}, true
	})
}

// mergeOverlap resolves the overlapping region base-by-base, keeping the
// higher-quality base at each mismatching position (the first argument, a,
// wins ties).
func mergeOverlap(a, aq, b, bq []byte) ([]byte, []byte) {
	out := make([]byte, len(a))
	oq := make([]byte, len(a))
	for i := range a {
		if a[i] == b[i] || aq[i] >= bq[i] {
			out[i] = a[i]
			oq[i] = aq[i]
		} else {
			out[i] = b[i]
			oq[i] = bq[i]
		}
	}
	return out, oq
}

func reverseQual(q []byte) []byte {
	out := make([]byte, len(q))
	for i, b := range q {
		out[len(q)-1-i] = b
	}
	return out
}
