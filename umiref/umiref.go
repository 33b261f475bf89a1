// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package umiref compiles a reference-sequence pattern (a fixed priming
// region with embedded UMI positions) into a regular expression and uses it
// to locate the reference within read data and extract the UMI barcode.
package umiref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/broadinstitute/dsa/dsaerr"
)

// ExtractedUMI is the result of searching for a reference sequence.
type ExtractedUMI struct {
	Barcode string
	From    int // absolute offset of the whole match; meaningless if Length == 0
	Length  int // 0 means "reference not found"
}

func (e ExtractedUMI) Valid() bool   { return e.Length != 0 }
func (e ExtractedUMI) Invalid() bool { return e.Length == 0 }

// Extractor recognizes a specific reference sequence within read data.
//
// The sequence has formatting requirements: capital A/C/G/T match literally,
// capital N is a single-character wildcard, and each maximal run of
// lowercase n is captured as part of the returned UMI barcode. Any other
// character is invalid.
type Extractor struct {
	re       *regexp.Regexp
	pattern  string
	sequence string
}

// New compiles an Extractor for sequence. It returns an error if sequence
// contains a character outside {A,C,G,T,N,n}.
func New(sequence string) (*Extractor, error) {
	var pat strings.Builder
	inRun := false
	for i := 0; i < len(sequence); i++ {
		c := sequence[i]
		switch {
		case c == 'A' || c == 'C' || c == 'G' || c == 'T':
			if inRun {
				pat.WriteByte(')')
				inRun = false
			}
			pat.WriteByte(c)
		case c == 'N':
			if inRun {
				pat.WriteByte(')')
				inRun = false
			}
			pat.WriteByte('.')
		case c == 'n':
			if !inRun {
				pat.WriteByte('(')
				inRun = true
			}
			pat.WriteByte('.')
		default:
			return nil, dsaerr.Errorf(dsaerr.ErrParse, "umiref: invalid reference sequence character %q in %q", c, sequence)
		}
	}
	if inRun {
		pat.WriteByte(')')
	}

	full := "(?i)" + pat.String()
	re, err := regexp.Compile(full)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrParse, fmt.Errorf("umiref: could not compile reference %q: %w", sequence, err))
	}
	return &Extractor{re: re, pattern: full, sequence: sequence}, nil
}

// Empty reports whether the extractor was default-constructed (no pattern).
func (e *Extractor) Empty() bool { return e == nil || e.pattern == "" }

func (e *Extractor) Sequence() string { return e.sequence }
func (e *Extractor) Pattern() string  { return e.pattern }

// NumCaptureGroups returns the number of UMI-capturing groups in the
// compiled pattern (one per maximal lowercase-n run in the source sequence).
func (e *Extractor) NumCaptureGroups() int { return e.re.NumSubexp() }

// Extract searches data[from:to] for the reference sequence. It performs an
// unanchored search (the reference need not start at `from`), matching the
// reference implementation's use of regex_search rather than regex_match.
func (e *Extractor) Extract(data []byte, from, to int) ExtractedUMI {
	loc := e.re.FindSubmatchIndex(data[from:to])
	if loc == nil {
		return ExtractedUMI{}
	}

	var barcode strings.Builder
	for g := 1; 2*g < len(loc); g++ {
		s, en := loc[2*g], loc[2*g+1]
		if s < 0 {
			continue
		}
		barcode.Write(data[from+s : from+en])
	}

	return ExtractedUMI{
		Barcode: barcode.String(),
		From:    from + loc[0],
		Length:  loc[1] - loc[0],
	}
}
