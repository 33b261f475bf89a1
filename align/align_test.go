// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package align

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/submat"
)

func aaSlice(s string) []polymer.Aa {
	out := make([]polymer.Aa, len(s))
	for i := range s {
		out[i] = polymer.Aa(s[i])
	}
	return out
}

func TestSimpleAlignment(t *testing.T) {
	query := aaSlice("MKTAYIA")
	template := aaSlice("MKTAYIAK")
	res := Align(query, template, AaAlphabet{}, submat.BLOSUM62, 4, false)
	assert.Equal(t, "MKTAYIA-", res.AlignedQuery)

	var want int32
	for _, m := range query {
		want += submat.BLOSUM62[m.Index()][m.Index()]
	}
	assert.Equal(t, want, res.Score)
}

func TestAlignmentCeiling(t *testing.T) {
	query := aaSlice("MKTAYIAKQR")
	score := Align(query, query, AaAlphabet{}, submat.BLOSUM62, 4, true).Score
	assert.Equal(t, SelfAlignScore(query, submat.BLOSUM62), score)
}
