// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package polymer implements the packed-byte sequence representations shared
// by every stage of the pipeline: nucleotides (Nts), codons (Cdns), and
// amino acids (Aas). Each is a one-byte-per-symbol buffer supporting O(1)
// left/right trimming, concatenation, and the cross-alphabet conversions
// (nucleotide packing, codon translation) the pipeline needs.
package polymer
