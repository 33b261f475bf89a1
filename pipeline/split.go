// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"regexp"

	"github.com/broadinstitute/dsa/polymer"
)

// SplitOrfs divides each ORF's amino-acid (and parallel codon) sequence
// into columns, one per capture group in splitRegex, matched anchored
// against the full amino-acid string (regexp.MatchString semantics are
// unanchored in Go, so this checks the match spans [0, len(s)) itself,
// mirroring the reference implementation's use of a full-string regex
// match rather than a search). An ORF whose amino-acid string does not
// fully match is dropped (FilterSplitFailed).
//
// A nil splitRegex, or one with no capture groups, is the identity split:
// every ORF becomes a single-column row unchanged.
func SplitOrfs(orfs []Orf, splitRegex *regexp.Regexp, log *ParseLog) [][]Orf {
	if splitRegex == nil || splitRegex.NumSubexp() == 0 {
		out := make([][]Orf, len(orfs))
		for i, o := range orfs {
			out[i] = []Orf{o}
		}
		return out
	}

	rows := parallelTransformFilter(len(orfs), log, func(i int, l *ParseLog) ([]Orf, bool) {
		o := orfs[i]
		s := o.Aas.String()
		loc := splitRegex.FindStringSubmatchIndex(s)
		if loc == nil || loc[0] != 0 || loc[1] != len(s) {
			l.FilterSplitFailed++
			return nil, false
		}

		numGroups := splitRegex.NumSubexp()
		cols := make([]Orf, numGroups)
		for g := 1; g <= numGroups; g++ {
			lo, hi := loc[2*g], loc[2*g+1]
			if lo < 0 {
				lo, hi = 0, 0
			}
			cols[g-1] = Orf{
				Barcode:      o.Barcode,
				UMIGroupSize: o.UMIGroupSize,
				Aas:          o.Aas.Slice(lo, hi),
				Cdns:         sliceCdns(o.Cdns, lo, hi),
			}
		}
		return cols, true
	})
	return rows
}

// sliceCdns slices cdns[lo:hi], or returns an empty Cdns unchanged if cdns
// carries no codon data (amino-acid-only template databases).
func sliceCdns(cdns polymer.Cdns, lo, hi int) polymer.Cdns {
	if cdns.Empty() {
		return cdns
	}
	return cdns.Slice(lo, hi)
}
