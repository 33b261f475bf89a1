// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package dsaerr classifies the abort-worthy error kinds from the error
// handling design (argument validation, input failure, parsing failure,
// semantic failure) as sentinel values, so cmd/dsa can select a diagnostic
// and exit path with errors.Is instead of matching error text.
package dsaerr

import (
	"errors"
	"fmt"
)

var (
	// ErrArgValidation marks a bad flag value, a contradictory flag
	// combination, or a mismatched --trim/--template count.
	ErrArgValidation = errors.New("argument validation")
	// ErrInputFailure marks an unreadable file, an mmap failure, or a
	// FASTQ record-count mismatch between forward and reverse input.
	ErrInputFailure = errors.New("input failure")
	// ErrParse marks a malformed FASTA header, an empty template
	// database, an invalid UMI reference pattern, a regex compilation
	// failure, or a DNA template whose length isn't a multiple of 3.
	ErrParse = errors.New("parse failure")
	// ErrSemantic marks a request to trim more residues than a template
	// contains.
	ErrSemantic = errors.New("semantic failure")
)

// Wrap tags err with kind so a later errors.Is(err, dsaerr.ErrX) can
// recover the classification, and folds kind's own description into the
// message. Returns nil if err is nil.
func Wrap(kind error, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", kind, err)
}

// Errorf builds a new formatted error tagged with kind.
func Errorf(kind error, format string, args ...interface{}) error {
	return Wrap(kind, fmt.Errorf(format, args...))
}
