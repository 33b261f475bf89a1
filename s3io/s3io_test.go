// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package s3io

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/dsaerr"
)

func TestResolveLeavesLocalPathUnchanged(t *testing.T) {
	local, cleanup, err := Resolve("/tmp/reads.fastq")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/reads.fastq", local)
	cleanup()
}

func TestResolveRejectsMalformedURI(t *testing.T) {
	_, _, err := Resolve("s3://bucket-with-no-key")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dsaerr.ErrArgValidation))
}

func TestSplitURI(t *testing.T) {
	bucket, key, err := splitURI("s3://my-bucket/path/to/object.fasta")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "path/to/object.fasta", key)
}
