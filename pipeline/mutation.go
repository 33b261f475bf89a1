// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

// SubstitutionCounts tallies, for one template, how often each observed
// amino acid appears at each aligned position across all reported groups
// (weighted by UMI group size). It is indexed [position][aaIndex].
type SubstitutionCounts [][21]uint

// NewSubstitutionCounts allocates a zeroed table with cols positions.
func NewSubstitutionCounts(cols int) SubstitutionCounts {
	return make(SubstitutionCounts, cols)
}

// TallyMutations computes, for a set of rows aligned to a single template,
// the per-position substitution counts plus synonymous/nonsynonymous/total
// mutation counts relative to the template's reference sequence at each
// position.
//
// referenceAas is the template's amino-acid string. referenceCdns is the
// template's parallel codon string (as rendered by align.CdnAlphabet, one
// byte per position) or "" if the template carries no codon data, in which
// case every non-reference residue is counted as nonsynonymous (codon-level
// synonymy cannot be determined from amino acids alone). Rows whose Cdns
// field is empty are likewise treated as amino-acid-only for this purpose.
func TallyMutations(rows []GroupAlignment, referenceAas, referenceCdns string) (SubstitutionCounts, MutationCount) {
	if len(rows) == 0 {
		return nil, MutationCount{}
	}
	cols := len(referenceAas)
	subs := NewSubstitutionCounts(cols)
	counts := NewMutationCount(cols)
	haveRefCodons := len(referenceCdns) == cols

	for _, r := range rows {
		weight := r.UMIGroupSize
		if weight == 0 {
			weight = 1
		}
		haveRowCodons := haveRefCodons && len(r.Cdns) == cols

		for pos := 0; pos < cols && pos < len(r.Alignment); pos++ {
			observed := toUpperAa(r.Alignment[pos])
			idx := aaIndex(observed)
			if idx < 0 {
				continue
			}
			subs[pos][idx] += uint(weight)

			ref := referenceAas[pos]
			if observed == ref {
				continue
			}
			counts.Total[pos] += uint(weight)

			if haveRowCodons && r.Cdns[pos] == referenceCdns[pos] {
				// Same codon but different reported amino acid cannot
				// happen under a fixed translation table; guard anyway.
				continue
			}
			counts.Nonsynonymous[pos] += uint(weight)
		}

		if haveRowCodons {
			for pos := 0; pos < cols && pos < len(r.Cdns); pos++ {
				if r.Cdns[pos] == ' ' || referenceCdns[pos] == ' ' {
					continue
				}
				if r.Cdns[pos] != referenceCdns[pos] && toUpperAa(r.Alignment[pos]) == referenceAas[pos] {
					counts.Synonymous[pos] += uint(weight)
				}
			}
		}
	}
	return subs, counts
}

func toUpperAa(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func aaIndex(b byte) int {
	const order = "*ACDEFGHIKLMNPQRSTVWY"
	for i := 0; i < len(order); i++ {
		if order[i] == b {
			return i
		}
	}
	return -1
}
