// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/polymer"
)

func TestTallyMutationsNoCodonsAllNonsynonymous(t *testing.T) {
	rows := []GroupAlignment{
		{Alignment: "MK", UMIGroupSize: 1},
		{Alignment: "MR", UMIGroupSize: 2},
	}
	subs, counts := TallyMutations(rows, "MK", "")
	require.Len(t, subs, 2)

	kIdx := aaIndex('K')
	rIdx := aaIndex('R')
	assert.EqualValues(t, 1, subs[1][kIdx])
	assert.EqualValues(t, 2, subs[1][rIdx])

	assert.EqualValues(t, 0, counts.Total[0])
	assert.EqualValues(t, 2, counts.Total[1])
	assert.EqualValues(t, 2, counts.Nonsynonymous[1])
	assert.EqualValues(t, 0, counts.Synonymous[1])
}

func TestTallyMutationsWithCodonsDistinguishesSynonymous(t *testing.T) {
	// codon strings are one byte per position (a packed Cdn), not raw
	// nucleotide triplets: position 1 uses a different Lys codon (AAG vs
	// AAA) while the reported amino acid stays "K" — a synonymous change.
	m := byte(polymer.PackCdn('A', 'T', 'G'))
	kAAA := byte(polymer.PackCdn('A', 'A', 'A'))
	kAAG := byte(polymer.PackCdn('A', 'A', 'G'))

	rows := []GroupAlignment{
		{Alignment: "MK", Cdns: string([]byte{m, kAAG}), UMIGroupSize: 1},
	}
	subs, counts := TallyMutations(rows, "MK", string([]byte{m, kAAA}))
	require.Len(t, subs, 2)
	assert.EqualValues(t, 0, counts.Total[1]) // same reported amino acid: not a "mutation" by amino-acid identity
	assert.EqualValues(t, 1, counts.Synonymous[1])
	assert.EqualValues(t, 0, counts.Nonsynonymous[1])
}

func TestTallyMutationsEmptyRowsReturnsZeroValue(t *testing.T) {
	subs, counts := TallyMutations(nil, "MK", "")
	assert.Nil(t, subs)
	assert.Equal(t, MutationCount{}, counts)
}

func TestMutationCountAdd(t *testing.T) {
	a := NewMutationCount(2)
	a.Total[0] = 1
	b := NewMutationCount(2)
	b.Total[0] = 2
	sum := a.Add(b)
	assert.EqualValues(t, 3, sum.Total[0])
}
