// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package submat provides the three substitution matrices the aligner
// consults: BLOSUM62 over amino acids, an identity matrix over nucleotides,
// and a codon substitution matrix derived from BLOSUM62 at init time.
package submat

import "github.com/broadinstitute/dsa/polymer"

// Matrix is a dense, square substitution matrix indexed by Index() values.
type Matrix [][]int32

// blosum62Order is the row/column order the literal table below is written
// in: this must match polymer.ValidAaChars exactly, since callers index
// this matrix with Aa.Index().
const blosum62Order = polymer.ValidAaChars

// blosum62Data is the standard BLOSUM62 substitution matrix, ordered per
// blosum62Order ("*ACDEFGHIKLMNPQRSTVWY"). Reproduced verbatim: this is a
// fixed scientific constant, not something to derive.
var blosum62Data = [21][21]int32{
	/*  * */ {0, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4, -4},
	/*  A */ {-4, 4, 0, -2, -1, -2, 0, -2, -1, -1, -1, -1, -2, -1, -1, -1, 1, 0, 0, -3, -2},
	/*  C */ {-4, 0, 9, -3, -4, -2, -3, -3, -1, -3, -1, -1, -3, -3, -3, -3, -1, -1, -1, -2, -2},
	/*  D */ {-4, -2, -3, 6, 2, -3, -1, -1, -3, -1, -4, -3, 1, -1, 0, -2, 0, -1, -3, -4, -3},
	/*  E */ {-4, -1, -4, 2, 5, -3, -2, 0, -3, 1, -3, -2, 0, -1, 2, 0, 0, -1, -2, -3, -2},
	/*  F */ {-4, -2, -2, -3, -3, 6, -3, -1, 0, -3, 0, 0, -3, -4, -3, -3, -2, -2, -1, 1, 3},
	/*  G */ {-4, 0, -3, -1, -2, -3, 6, -2, -4, -2, -4, -3, 0, -2, -2, -2, 0, -2, -3, -2, -3},
	/*  H */ {-4, -2, -3, -1, 0, -1, -2, 8, -3, -1, -3, -2, 1, -2, 0, 0, -1, -2, -3, -2, 2},
	/*  I */ {-4, -1, -1, -3, -3, 0, -4, -3, 4, -3, 2, 1, -3, -3, -3, -3, -2, -1, 3, -3, -1},
	/*  K */ {-4, -1, -3, -1, 1, -3, -2, -1, -3, 5, -2, -1, 0, -1, 1, 2, 0, -1, -2, -3, -2},
	/*  L */ {-4, -1, -1, -4, -3, 0, -4, -3, 2, -2, 4, 2, -3, -3, -2, -2, -2, -1, 1, -2, -1},
	/*  M */ {-4, -1, -1, -3, -2, 0, -3, -2, 1, -1, 2, 5, -2, -2, 0, -1, -1, -1, 1, -1, -1},
	/*  N */ {-4, -2, -3, 1, 0, -3, 0, 1, -3, 0, -3, -2, 6, -2, 0, 0, 1, 0, -3, -4, -2},
	/*  P */ {-4, -1, -3, -1, -1, -4, -2, -2, -3, -1, -3, -2, -2, 7, -1, -2, -1, -1, -2, -4, -3},
	/*  Q */ {-4, -1, -3, 0, 2, -3, -2, 0, -3, 1, -2, 0, 0, -1, 5, 1, 0, -1, -2, -2, -1},
	/*  R */ {-4, -1, -3, -2, 0, -3, -2, 0, -3, 2, -2, -1, 0, -2, 1, 5, -1, -1, -3, -3, -2},
	/*  S */ {-4, 1, -1, 0, 0, -2, 0, -1, -2, 0, -2, -1, 1, -1, 0, -1, 4, 1, -2, -3, -2},
	/*  T */ {-4, 0, -1, -1, -1, -2, -2, -2, -1, -1, -1, -1, 0, -1, -1, -1, 1, 5, 0, -2, -2},
	/*  V */ {-4, 0, -1, -3, -2, -1, -3, -3, 3, -2, 1, 1, -3, -2, -2, -3, -2, 0, 4, -3, -1},
	/*  W */ {-4, -3, -2, -4, -3, 1, -2, -2, -3, -3, -2, -1, -4, -4, -2, -3, -3, -2, -3, 11, 2},
	/*  Y */ {-4, -2, -2, -3, -2, 3, -3, 2, -1, -2, -1, -1, -2, -3, -1, -2, -2, -2, -1, 2, 7},
}

// BLOSUM62 is the 21x21 amino-acid substitution matrix, indexed by Aa.Index().
var BLOSUM62 Matrix

// NTIdentity is the 4x4 nucleotide substitution matrix: +1 on the diagonal,
// -1 elsewhere. Indexed by Nt.Index() for A/C/T/G (indices 0-3).
var NTIdentity Matrix

// CdnSubs is the 64x64 codon substitution matrix, computed (not hardcoded)
// as BLOSUM62[aa(i)][aa(j)] + (i == j ? 1 : 0), where aa(k) is the standard
// translation of codon k. This biases the aligner toward identical codons
// among synonymous alternatives.
var CdnSubs Matrix

func newMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int32, n)
	}
	return m
}

func init() {
	BLOSUM62 = newMatrix(21)
	for i := 0; i < 21; i++ {
		copy(BLOSUM62[i], blosum62Data[i][:])
	}

	NTIdentity = newMatrix(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				NTIdentity[i][j] = 1
			} else {
				NTIdentity[i][j] = -1
			}
		}
	}

	CdnSubs = newMatrix(64)
	for i := 0; i < 64; i++ {
		aai := polymer.StandardTranslationTable[i].Index()
		for j := 0; j < 64; j++ {
			aaj := polymer.StandardTranslationTable[j].Index()
			v := BLOSUM62[aai][aaj]
			if i == j {
				v++
			}
			CdnSubs[i][j] = v
		}
	}
}
