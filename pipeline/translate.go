// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import "github.com/broadinstitute/dsa/polymer"

// TranslateAndFilterPTCs packs each read's nucleotides into codons,
// translates them under the standard genetic code, and drops any ORF
// containing a premature stop codon. If reverseComplement is set, each
// read is reverse-complemented before packing (for reverse-oriented
// libraries). Trailing bases beyond the last full codon are silently
// dropped, matching polymer.Nts.Pack.
func TranslateAndFilterPTCs(reads []Read, reverseComplement bool, log *ParseLog) []Orf {
	return parallelTransformFilter(len(reads), log, func(i int, l *ParseLog) (Orf, bool) {
		dna := reads[i].Dna
		if reverseComplement {
			dna = dna.ReverseComplement()
		}
		cdns := dna.Pack()
		aas := cdns.Translate(polymer.StandardTranslationTable)

		orf := Orf{
			Barcode:      reads[i].Barcode,
			UMIGroupSize: reads[i].UMIGroupSize,
			Cdns:         cdns,
			Aas:          aas,
		}
		if orf.ContainsPTC() {
			l.FilterPrematureStopCodon++
			return Orf{}, false
		}
		return orf, true
	})
}
