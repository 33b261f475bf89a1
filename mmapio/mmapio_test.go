// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package mmapio

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/dsaerr"
)

const fastqBody = "@r1\nACGT\n+\nIIII\n@r2\nACNT\n+\nIIII\n"

func TestLoadPlainFastq(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	require.NoError(t, os.WriteFile(path, []byte(fastqBody), 0644))

	reads, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reads, 2)
	assert.Equal(t, "ACGT", reads[0].Dna.String())
	assert.False(t, reads[0].Empty())
}

func TestLoadMalformedRecordYieldsEmptyRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reads.fastq")
	// second record's sequence contains an invalid character; the record is
	// emitted as an empty Read even though the stripped sequence (ACT) and
	// its quality string have equal length.
	body := "@r1\nACGT\n+\nIIII\n@r2\nACXT\n+\nIII\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	reads, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reads, 2)
	assert.False(t, reads[0].Empty())
	assert.True(t, reads[1].Empty())
}

func TestLoadGzipEquivalence(t *testing.T) {
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "reads.fastq")
	gzPath := filepath.Join(dir, "reads.fastq.gz")

	require.NoError(t, os.WriteFile(plainPath, []byte(fastqBody), 0644))

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(fastqBody))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(gzPath, buf.Bytes(), 0644))

	plain, err := Load(plainPath)
	require.NoError(t, err)
	gz, err := Load(gzPath)
	require.NoError(t, err)

	require.Len(t, gz, len(plain))
	for i := range plain {
		assert.Equal(t, plain[i].Dna.String(), gz[i].Dna.String())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.fastq")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	reads, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, reads, 0)
}

func TestLoadMissingFileIsInputFailure(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.fastq"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dsaerr.ErrInputFailure))
}

func TestSeekNextFindsRecordBoundary(t *testing.T) {
	data := []byte(fastqBody)
	// start scanning partway through the first record; seekNext should land
	// on the start of the second record's header.
	pos := seekNext(6, 0, data)
	assert.Equal(t, []byte("@r2\n"), data[pos:pos+4])
}
