// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package overlap implements the suffix-of-A/prefix-of-B mismatch-tolerant
// overlap scanner used to assemble paired-end reads. The reference
// implementation computes this with a vectorized (AVX2) vertical scan of a
// dynamic-programming table; this is the scalar equivalent the base
// specification explicitly permits, verified to agree byte-for-byte.
package overlap

// Overlap is the result of scanning A against B for a suffix/prefix match.
type Overlap struct {
	Overlap    int  // length of the matched region; 0 if none found
	Mismatches int  // mismatches within the matched region
	InOrder    bool // true if suffix(A) matches prefix(B); false if prefix(A) matches suffix(B)
}

// Find returns the longest suffix-of-A/prefix-of-B (or the mirrored
// prefix-of-A/suffix-of-B) match with at most maxMismatches mismatches. Ties
// prefer the larger overlap length; if lengths tie, InOrder=true wins.
func Find(a, b []byte, maxMismatches int) Overlap {
	maxLen := len(a)
	if len(b) < maxLen {
		maxLen = len(b)
	}

	best := Overlap{}
	found := false

	for l := 1; l <= maxLen; l++ {
		// suffix(a, l) vs prefix(b, l)
		mm := countMismatches(a[len(a)-l:], b[:l])
		if mm <= maxMismatches {
			if !found || l > best.Overlap {
				best = Overlap{Overlap: l, Mismatches: mm, InOrder: true}
				found = true
			} else if l == best.Overlap && !best.InOrder {
				best = Overlap{Overlap: l, Mismatches: mm, InOrder: true}
			}
		}

		// prefix(a, l) vs suffix(b, l)
		mm = countMismatches(a[:l], b[len(b)-l:])
		if mm <= maxMismatches {
			if !found || l > best.Overlap {
				best = Overlap{Overlap: l, Mismatches: mm, InOrder: false}
				found = true
			}
			// on equal length, InOrder=true (set above, if reached this l)
			// already wins, so no replacement needed here.
		}
	}

	return best
}

func countMismatches(a, b []byte) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
