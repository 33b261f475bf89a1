// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package align implements a generic Needleman-Wunsch global aligner with
// free end-gaps on the template's terminal row/column (semi-global
// alignment), matching the dynamic-programming recurrence and traceback
// conventions of the reference implementation's nw_align/build_string.
package align

import "github.com/broadinstitute/dsa/submat"

// Monomer is any symbol type that can index into a substitution matrix.
type Monomer interface {
	Index() int
}

// Move records which DP transition produced a cell's score.
type Move uint8

const (
	MATCH Move = iota
	GapQ       // gap opened in the query (template symbol, no query symbol)
	GapT       // gap opened in the template (query symbol, no template symbol)
)

// Cell is one entry of the traceback matrix.
type Cell struct {
	Score int32
	Move  Move
}

// Alignment is the result of a Needleman-Wunsch run.
type Alignment struct {
	Score        int32
	AlignedQuery string
	Traceback    [][]Cell // nil when the run was score-only
}

// Alphabet supplies the per-symbol characters the traceback needs: the
// "regular" (match) character, the "insertion" character, and the shared
// gap character. Amino acids and nucleotides render matches uppercase and
// insertions lowercase; codons render both as the raw codon byte and use a
// space (not a dash) for gaps.
type Alphabet[M Monomer] interface {
	RegChar(m M) byte
	InsChar(m M) byte
	GapChar() byte
}

// Align runs Needleman-Wunsch on query against template using sub as the
// substitution matrix and gapPenalty as the interior gap cost. When
// scoreOnly is true, only Score is populated (Traceback and AlignedQuery
// are left zero-valued) to avoid the O(n*m) traceback matrix allocation.
func Align[M Monomer](query, template []M, alphabet Alphabet[M], sub submat.Matrix, gapPenalty int32, scoreOnly bool) Alignment {
	qN, tN := len(query), len(template)

	rows := make([][]Cell, qN+1)
	for i := range rows {
		rows[i] = make([]Cell, tN+1)
	}

	for j := 1; j <= tN; j++ {
		rows[0][j] = Cell{Score: 0, Move: GapQ}
	}
	for i := 1; i <= qN; i++ {
		rows[i][0] = Cell{Score: 0, Move: GapT}
	}

	for i := 1; i <= qN; i++ {
		for j := 1; j <= tN; j++ {
			matchScore := rows[i-1][j-1].Score + sub[query[i-1].Index()][template[j-1].Index()]

			gapQPenalty := gapPenalty
			if i == qN {
				gapQPenalty = 0
			}
			gapQScore := rows[i][j-1].Score - gapQPenalty

			gapTPenalty := gapPenalty
			if j == tN {
				gapTPenalty = 0
			}
			gapTScore := rows[i-1][j].Score - gapTPenalty

			best := matchScore
			move := MATCH
			if gapQScore > best {
				best = gapQScore
				move = GapQ
			}
			if gapTScore > best {
				best = gapTScore
				move = GapT
			}
			rows[i][j] = Cell{Score: best, Move: move}
		}
	}

	result := Alignment{Score: rows[qN][tN].Score}
	if scoreOnly {
		return result
	}
	result.Traceback = rows

	out := make([]byte, 0, qN+tN)
	i, j := qN, tN
	for i > 0 || j > 0 {
		switch rows[i][j].Move {
		case GapQ:
			out = append(out, alphabet.GapChar())
			j--
		case GapT:
			out = append(out, alphabet.InsChar(query[i-1]))
			i--
		default:
			out = append(out, alphabet.RegChar(query[i-1]))
			i--
			j--
		}
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	result.AlignedQuery = string(out)
	return result
}

// SelfAlignScore returns the sum of the substitution matrix's diagonal
// entries for query's own symbols: the score ceiling an alignment of query
// against itself under sub would achieve.
func SelfAlignScore[M Monomer](query []M, sub submat.Matrix) int32 {
	var total int32
	for _, m := range query {
		idx := m.Index()
		total += sub[idx][idx]
	}
	return total
}
