// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/umiref"
)

func mkRead(seq string) Read {
	q := make([]byte, len(seq))
	for i := range q {
		q[i] = 'I'
	}
	return Read{Dna: polymer.NewNts(seq), Qual: q}
}

func TestQCFilterAccounting(t *testing.T) {
	fwex, err := umiref.New("ACGT")
	require.NoError(t, err)

	fw := []Read{
		{}, // bad bases: already empty from FASTQ parsing
		mkRead("TTTTTTTT"),   // no forward reference match
		mkRead("ACGTGGGG"),   // matches, accepted
	}
	rv := []Read{
		mkRead("AAAA"),
		mkRead("AAAA"),
		mkRead("AAAA"),
	}

	var log ParseLog
	pairs := QCReads(fw, rv, 0, []*umiref.Extractor{fwex}, nil, &log)

	assert.Len(t, pairs, 1)
	assert.EqualValues(t, 1, log.FilterInvalidChars)
	assert.EqualValues(t, 1, log.FilterNoFwUMI)
}

func TestTrimQualityCutsAtFirstLowBase(t *testing.T) {
	r := mkRead("ACGTACGT")
	r.Qual[4] = '#' // Phred+33 for quality 2
	trimmed := trimQuality(r, 'I')
	assert.Equal(t, "ACGT", trimmed.Dna.String())
	assert.Equal(t, 4, len(trimmed.Qual))
}

func TestTrimQualityDisabledWhenThresholdZero(t *testing.T) {
	r := mkRead("ACGTACGT")
	r.Qual[0] = '#'
	trimmed := trimQuality(r, 0)
	assert.Equal(t, r.Dna.String(), trimmed.Dna.String())
}

func TestExtractAndTrimNoExtractorsPassesThrough(t *testing.T) {
	r := mkRead("ACGTACGT")
	barcode, ok := extractAndTrim(&r, nil)
	assert.True(t, ok)
	assert.Equal(t, "", barcode)
	assert.Equal(t, "ACGTACGT", r.Dna.String())
}
