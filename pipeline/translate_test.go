// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateAndFilterPTCsScenario(t *testing.T) {
	reads := []Read{mkRead("ATGAAATAA")}
	var log ParseLog
	orfs := TranslateAndFilterPTCs(reads, false, &log)
	// the trailing stop codon is itself the premature stop, so the ORF is dropped.
	assert.Len(t, orfs, 0)
	assert.EqualValues(t, 1, log.FilterPrematureStopCodon)
}

func TestTranslateAndFilterPTCsKeepsCleanOrf(t *testing.T) {
	reads := []Read{mkRead("ATGAAAGGG")}
	var log ParseLog
	orfs := TranslateAndFilterPTCs(reads, false, &log)
	require.Len(t, orfs, 1)
	assert.Equal(t, "MKG", orfs[0].Aas.String())
	assert.Equal(t, 3, orfs[0].Cdns.Len())
}

func TestTranslateReverseComplement(t *testing.T) {
	// reverse complement of CCCTTTCAT is ATGAAAGGG -> "MKG"
	reads := []Read{mkRead("CCCTTTCAT")}
	var log ParseLog
	orfs := TranslateAndFilterPTCs(reads, true, &log)
	require.Len(t, orfs, 1)
	assert.Equal(t, "MKG", orfs[0].Aas.String())
}
