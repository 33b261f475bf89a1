// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package align

import (
	"unicode"

	"github.com/broadinstitute/dsa/polymer"
)

// AaAlphabet renders amino-acid alignments with uppercase matches, lowercase
// insertions, and a dash for gaps.
type AaAlphabet struct{}

func (AaAlphabet) RegChar(m polymer.Aa) byte { return byte(unicode.ToUpper(rune(m))) }
func (AaAlphabet) InsChar(m polymer.Aa) byte { return byte(unicode.ToLower(rune(m))) }
func (AaAlphabet) GapChar() byte             { return '-' }

// NtAlphabet renders nucleotide alignments the same way as AaAlphabet.
type NtAlphabet struct{}

func (NtAlphabet) RegChar(m polymer.Nt) byte { return byte(unicode.ToUpper(rune(m))) }
func (NtAlphabet) InsChar(m polymer.Nt) byte { return byte(unicode.ToLower(rune(m))) }
func (NtAlphabet) GapChar() byte             { return '-' }

// CdnAlphabet renders codon alignments using the raw codon byte for both
// matches and insertions (codons are not case-foldable) and a space as the
// gap character.
type CdnAlphabet struct{}

func (CdnAlphabet) RegChar(m polymer.Cdn) byte { return byte(m) }
func (CdnAlphabet) InsChar(m polymer.Cdn) byte { return byte(m) }
func (CdnAlphabet) GapChar() byte              { return ' ' }
