// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

// Nt is a single nucleotide symbol, stored as its ASCII byte.
type Nt byte

// The five recognized nucleotide symbols.
const (
	NtA Nt = 'A'
	NtC Nt = 'C'
	NtG Nt = 'G'
	NtT Nt = 'T'
	NtN Nt = 'N'
)

// ntIndexByNibble maps (asciiByte & 0xF) >> 1 to a dense index in [0, 5).
// Derived from the low nibble of A(0x41), C(0x43), T(0x54), G(0x47), N(0x4E):
// low nibbles 1, 3, 4, 7, 14; halved (>>1) they land on 0, 1, 2, 3, 7.
var ntIndexByNibble = [8]int{0, 1, 2, 3, 0, 0, 0, 4}

// ntNormalize maps any byte to its canonical uppercase Nt, or 0 if invalid.
var ntNormalize [256]byte

// ntComplementTable is indexed by the low nibble of the ASCII byte, matching
// the source's 16-entry complement lookup.
var ntComplementTable [16]byte

func init() {
	for _, c := range []byte{'A', 'C', 'G', 'T', 'N'} {
		ntNormalize[c] = c
		ntNormalize[c+32] = c // lowercase
	}
	// clut = "-T-GA--C------N" indexed by low nibble.
	clut := "-T-GA--C------N"
	copy(ntComplementTable[:], clut)
}

// Index returns a dense index in [0, 5): A=0, C=1, T=2, G=3, N=4.
func (n Nt) Index() int {
	return ntIndexByNibble[(byte(n)&0xF)>>1]
}

// ValidNt reports whether b is a recognized nucleotide byte (either case).
func ValidNt(b byte) bool { return ntNormalize[b] != 0 }

// NormalizeNt returns the canonical uppercase Nt for b, and whether b was valid.
func NormalizeNt(b byte) (Nt, bool) {
	v := ntNormalize[b]
	if v == 0 {
		return 0, false
	}
	return Nt(v), true
}

// Complement returns the Watson-Crick complement of n (N complements to N).
func (n Nt) Complement() Nt {
	return Nt(ntComplementTable[byte(n)&0xF])
}

func (n Nt) Byte() byte { return byte(n) }

func (n Nt) String() string { return string([]byte{byte(n)}) }
