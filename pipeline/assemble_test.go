// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleDegenerateScenario(t *testing.T) {
	pairs := []ReadPair{
		{Fw: mkRead("AAAAAAAA"), Rv: mkRead("TTTTTTTT")},
	}
	var log ParseLog
	merged := AssembleReads(pairs, 4, 0, &log)

	assert.Len(t, merged, 1)
	assert.Equal(t, "AAAAAAAA", merged[0].Dna.String())
	assert.Zero(t, log.FilterCouldNotAssemble)
}

func TestAssembleDropsBelowMinOverlap(t *testing.T) {
	pairs := []ReadPair{
		{Fw: mkRead("AAAA"), Rv: mkRead("GGGG")}, // rev-complement CCCC, no overlap with AAAA
	}
	var log ParseLog
	merged := AssembleReads(pairs, 4, 0, &log)

	assert.Len(t, merged, 0)
	assert.EqualValues(t, 1, log.FilterCouldNotAssemble)
}

func TestMergeOverlapPrefersHigherQuality(t *testing.T) {
	a := []byte("ACGT")
	b := []byte("ACGA")
	aq := []byte{'I', 'I', 'I', '#'}
	bq := []byte{'I', 'I', 'I', 'I'}
	merged, q := mergeOverlap(a, aq, b, bq)
	assert.Equal(t, "ACGA", string(merged))
	assert.Equal(t, byte('I'), q[3])
}

func TestReverseQual(t *testing.T) {
	assert.Equal(t, []byte("CBA"), reverseQual([]byte("ABC")))
}
