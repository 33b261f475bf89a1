// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/polymer"
)

func TestSplitOrfsIdentityWhenNoRegex(t *testing.T) {
	orfs := []Orf{{Aas: polymer.NewAas("ACDEFG")}}
	var log ParseLog
	rows := SplitOrfs(orfs, nil, &log)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 1)
	assert.Equal(t, "ACDEFG", rows[0][0].Aas.String())
}

func TestSplitOrfsThreeColumns(t *testing.T) {
	nts := polymer.NewNts("GCGTGTGATGAGTTTGGG") // 6 codons -> AAs "ACDEFG"
	cdns := nts.Pack()
	aas := cdns.Translate(polymer.StandardTranslationTable)
	require.Equal(t, "ACDEFG", aas.String())

	orfs := []Orf{{Aas: aas, Cdns: cdns}}
	re := regexp.MustCompile(`(AC)(DE)(FG)`)
	var log ParseLog
	rows := SplitOrfs(orfs, re, &log)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], 3)
	assert.Equal(t, "AC", rows[0][0].Aas.String())
	assert.Equal(t, "DE", rows[0][1].Aas.String())
	assert.Equal(t, "FG", rows[0][2].Aas.String())
	assert.Equal(t, 2, rows[0][0].Cdns.Len())
	assert.Equal(t, 2, rows[0][1].Cdns.Len())
	assert.Equal(t, 2, rows[0][2].Cdns.Len())
	assert.Zero(t, log.FilterSplitFailed)
}

func TestSplitOrfsDropsNonFullMatch(t *testing.T) {
	orfs := []Orf{{Aas: polymer.NewAas("ACDEFGH")}} // trailing H breaks the anchored match
	re := regexp.MustCompile(`(AC)(DE)(FG)`)
	var log ParseLog
	rows := SplitOrfs(orfs, re, &log)
	assert.Len(t, rows, 0)
	assert.EqualValues(t, 1, log.FilterSplitFailed)
}
