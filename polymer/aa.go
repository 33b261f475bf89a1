// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

import "strings"

// Aa is a single amino acid symbol (20 residues plus stop), stored as its
// IUPAC ASCII letter ('*' for stop).
type Aa byte

const (
	AaSTOP Aa = '*'
	AaA    Aa = 'A'
	AaC    Aa = 'C'
	AaD    Aa = 'D'
	AaE    Aa = 'E'
	AaF    Aa = 'F'
	AaG    Aa = 'G'
	AaH    Aa = 'H'
	AaI    Aa = 'I'
	AaK    Aa = 'K'
	AaL    Aa = 'L'
	AaM    Aa = 'M'
	AaN    Aa = 'N'
	AaP    Aa = 'P'
	AaQ    Aa = 'Q'
	AaR    Aa = 'R'
	AaS    Aa = 'S'
	AaT    Aa = 'T'
	AaV    Aa = 'V'
	AaW    Aa = 'W'
	AaY    Aa = 'Y'
)

// ValidAaChars lists the 21 recognized amino-acid characters in canonical
// index order (index 0 is stop).
const ValidAaChars = "*ACDEFGHIKLMNPQRSTVWY"

// Index returns a's position within ValidAaChars, or -1 if a is not
// recognized.
func (a Aa) Index() int { return strings.IndexByte(ValidAaChars, byte(a)) }

func (a Aa) Byte() byte { return byte(a) }

// ValidAa reports whether b is one of the 21 recognized amino-acid bytes.
func ValidAa(b byte) bool { return strings.IndexByte(ValidAaChars, b) >= 0 }

// standardCodeTable is the standard genetic code, one amino acid per codon
// index (0..63), in the same codon-index order as polymer.Cdn.Index().
// This exact 64-character string is the standard genetic code and is
// reproduced verbatim rather than derived, matching
// original_source/aa.cc's StandardTranslationTable literal.
const standardCodeTable = "KNNKTTTTIIIMRSSRQHHQPPPPLLLLRRRR*YY*SSSSLFFL*CCWEDDEAAAAVVVVGGGG"

// TranslationTable maps a codon's Index() to the Aa it encodes.
type TranslationTable [64]Aa

// StandardTranslationTable is the standard genetic code.
var StandardTranslationTable TranslationTable

func init() {
	for i := 0; i < 64; i++ {
		StandardTranslationTable[i] = Aa(standardCodeTable[i])
	}

	buf := make([]byte, 0, 64)
	for i := 0; i < 64; i++ {
		if StandardTranslationTable[i] != AaSTOP {
			buf = append(buf, byte(cdnBias+i))
		}
	}
	AllCodingCdns = string(buf)
}

// Translate returns the amino acid encoded by codon c under t.
func (t TranslationTable) Translate(c Cdn) Aa { return t[c.Index()] }
