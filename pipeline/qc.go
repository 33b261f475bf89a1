// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"github.com/broadinstitute/dsa/umiref"
)

// QCReads runs quality trimming and UMI/reference extraction over paired
// forward/reverse reads. For each side, the first extractor in exs that
// finds its reference wins; the matched reference region (and everything
// past it) is stripped from the read, and the extracted barcodes from both
// sides are concatenated (forward first) to form the pair's Barcode. A read
// missing on either side (already empty from FASTQ parsing) or with no
// matching extractor on a side that has extractors configured is dropped.
func QCReads(fw, rv []Read, tpQualMin byte, fwexs, rvexs []*umiref.Extractor, log *ParseLog) []ReadPair {
	n := len(fw)
	if len(rv) < n {
		n = len(rv)
	}

	return parallelTransformFilter(n, log, func(i int, l *ParseLog) (ReadPair, bool) {
		f := fw[i]
		r := rv[i]
		if f.Empty() || r.Empty() {
			l.FilterInvalidChars++
			return ReadPair{}, false
		}

		f = trimQuality(f, tpQualMin)
		r = trimQuality(r, tpQualMin)

		fBarcode, fOK := extractAndTrim(&f, fwexs)
		if !fOK {
			l.FilterNoFwUMI++
			return ReadPair{}, false
		}
		rBarcode, rOK := extractAndTrim(&r, rvexs)
		if !rOK {
			l.FilterNoRvUMI++
			return ReadPair{}, false
		}

		f.Barcode = fBarcode + rBarcode
		f.UMIGroupSize = 1
		r.Barcode = f.Barcode
		r.UMIGroupSize = 1
		return ReadPair{Fw: f, Rv: r}, true
	})
}

// trimQuality removes the 3' tail of r starting at the first base whose
// quality byte is below tpQualMin (a Phred+33 threshold); tpQualMin == 0
// disables trimming.
func trimQuality(r Read, tpQualMin byte) Read {
	if tpQualMin == 0 {
		return r
	}
	cut := len(r.Qual)
	for i, q := range r.Qual {
		if q < tpQualMin {
			cut = i
			break
		}
	}
	if cut == len(r.Qual) {
		return r
	}
	trimmed := r.Dna.Len() - cut
	if trimmed > 0 {
		r.Dna.Exo(0, trimmed)
	}
	r.Qual = r.Qual[:cut]
	return r
}

// extractAndTrim tries each extractor in order, keeping the first that
// finds its reference; the matched span and everything to its right is
// removed from r's sequence and quality. If exs is empty, r passes through
// unmodified with an empty barcode. It returns ("", false) if exs is
// non-empty but none matched.
func extractAndTrim(r *Read, exs []*umiref.Extractor) (string, bool) {
	if len(exs) == 0 {
		return "", true
	}
	seq := r.Dna.Bytes()
	for _, ex := range exs {
		found := ex.Extract(seq, 0, len(seq))
		if found.Invalid() {
			continue
		}
		keep := found.From
		r.Dna.Exo(0, r.Dna.Len()-keep)
		if keep < len(r.Qual) {
			r.Qual = r.Qual[:keep]
		}
		return found.Barcode, true
	}
	return "", false
}
