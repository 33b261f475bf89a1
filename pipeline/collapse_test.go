// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barcodedRead(barcode, seq string) Read {
	r := mkRead(seq)
	r.Barcode = barcode
	r.UMIGroupSize = 1
	return r
}

func TestUMICollapseGroupsByBarcode(t *testing.T) {
	reads := []Read{
		barcodedRead("BC1", "ACGTACGT"),
		barcodedRead("BC1", "ACGTACGT"),
		barcodedRead("BC1", "ACGTACGT"),
		barcodedRead("BC2", "TTTTTTTT"),
		barcodedRead("BC2", "TTTTTTTT"),
	}
	var log ParseLog
	out := UMICollapse(reads, 2, false, &log)
	require.Len(t, out, 2)
	byBarcode := map[string]Read{out[0].Barcode: out[0], out[1].Barcode: out[1]}
	assert.EqualValues(t, 3, byBarcode["BC1"].UMIGroupSize)
	assert.EqualValues(t, 2, byBarcode["BC2"].UMIGroupSize)
}

func TestUMICollapseDropsSmallGroups(t *testing.T) {
	reads := []Read{
		barcodedRead("lonely", "ACGTACGT"),
	}
	var log ParseLog
	out := UMICollapse(reads, 2, false, &log)
	assert.Len(t, out, 0)
	assert.EqualValues(t, 1, log.FilterUMIGroupTooSmall)
}

func TestConsensusIdempotence(t *testing.T) {
	group := []Read{
		barcodedRead("bc", "ACGTACGT"),
		barcodedRead("bc", "ACGTACGT"),
		barcodedRead("bc", "ACGTACGT"),
	}
	consensus, contributed := buildConsensusSequence(group, false, 1)
	assert.Equal(t, 3, contributed)
	assert.Equal(t, "ACGTACGT", consensus.Dna.String())

	again, contributedAgain := buildConsensusSequence([]Read{consensus, consensus, consensus}, false, 1)
	assert.Equal(t, contributed, contributedAgain)
	assert.Equal(t, consensus.Dna.String(), again.Dna.String())
}

func TestConsensusMajorityVoteWithMismatch(t *testing.T) {
	group := []Read{
		barcodedRead("bc", "AAAA"),
		barcodedRead("bc", "AAAA"),
		barcodedRead("bc", "ACAA"),
	}
	consensus, contributed := buildConsensusSequence(group, false, 1)
	assert.Equal(t, 3, contributed)
	assert.Equal(t, "AAAA", consensus.Dna.String())
}

// TestConsensusRaggedEndsUsesMinGroupSizeLength locks in the documented
// ragged-mode rule: sort descending by length, and the consensus length is
// the length of the minUMIGroupSize-th largest read, so every position is
// backed by at least minUMIGroupSize reads.
func TestConsensusRaggedEndsUsesMinGroupSizeLength(t *testing.T) {
	group := []Read{
		barcodedRead("bc", "AAAA"),
		barcodedRead("bc", "AAAAAA"),
		barcodedRead("bc", "AAAAAAAA"),
	}
	consensus, contributed := buildConsensusSequence(group, true, 2)
	assert.Equal(t, 3, contributed)
	assert.Equal(t, 6, consensus.Dna.Len())
}

func TestConsensusRaggedEndsMinGroupSizeOneUsesMaxLength(t *testing.T) {
	group := []Read{
		barcodedRead("bc", "AAAA"),
		barcodedRead("bc", "AAAAAA"),
	}
	consensus, contributed := buildConsensusSequence(group, true, 1)
	assert.Equal(t, 2, contributed)
	assert.Equal(t, 6, consensus.Dna.Len())
}

func TestModalLengthTiebreakPrefersSmaller(t *testing.T) {
	group := []Read{
		barcodedRead("bc", "AAAA"),
		barcodedRead("bc", "AAAAAA"),
	}
	assert.Equal(t, 4, modalLength(group))
}
