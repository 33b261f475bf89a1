// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package s3io resolves an input path that may be a local filesystem path
// or an s3:// URI into a local filesystem path, downloading S3 objects to a
// temporary file on demand. FASTQ, template-database, and any other
// file-backed input the CLI accepts goes through Resolve so both source
// kinds are interchangeable everywhere a path is expected.
package s3io

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"

	"github.com/broadinstitute/dsa/dsaerr"
)

// Resolve returns a local filesystem path for path. If path is not an
// s3:// URI, it is returned unchanged and cleanup is a no-op. Otherwise the
// object is downloaded to a temporary file, whose path is returned; the
// caller must invoke cleanup once done to remove it.
func Resolve(path string) (local string, cleanup func(), err error) {
	if !strings.HasPrefix(path, "s3://") {
		return path, func() {}, nil
	}

	bucket, key, err := splitURI(path)
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "dsa-s3-*"+filepath.Ext(key))
	if err != nil {
		return "", nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrap(err, "s3io: creating temp file"))
	}
	cleanup = func() { os.Remove(f.Name()) }

	sess, err := session.NewSession(aws.NewConfig())
	if err != nil {
		f.Close()
		cleanup()
		return "", nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrap(err, "s3io: creating AWS session"))
	}

	downloader := s3manager.NewDownloader(sess)
	if _, err := downloader.Download(f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		f.Close()
		cleanup()
		return "", nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "s3io: downloading %s", path))
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrap(err, "s3io: closing temp file"))
	}
	return f.Name(), cleanup, nil
}

func splitURI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", dsaerr.Wrap(dsaerr.ErrArgValidation, errors.Errorf("s3io: malformed S3 URI %q, expected s3://bucket/key", uri))
	}
	return parts[0], parts[1], nil
}
