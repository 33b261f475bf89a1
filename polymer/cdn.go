// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

// Cdn is a single codon symbol: one of 64 values encoded as a single ASCII
// byte in [cdnBias, cdnBias+64). Bit pairs (b5,b4),(b3,b2),(b1,b0) of the
// packed 6-bit value encode three nucleotides under A=00, C=01, T=10, G=11 —
// the same order as Nt.Index() for the four canonical bases.
type Cdn byte

const cdnBias = 0x30

// PackCdn packs three nucleotides into a Cdn. a, b, c must each be one of
// A/C/T/G (upper or lower case); behavior for any other byte is undefined.
func PackCdn(a, b, c byte) Cdn {
	ai, _ := NormalizeNt(a)
	bi, _ := NormalizeNt(b)
	ci, _ := NormalizeNt(c)
	v := (ai.Index() << 4) | (bi.Index() << 2) | ci.Index()
	return Cdn(cdnBias + v)
}

// Index returns a dense index in [0, 64).
func (c Cdn) Index() int { return int(c) - cdnBias }

// cdnLUT is the inverse of Nt.Index() for the four packable bases (A=0,C=1,T=2,G=3).
var cdnLUT = [4]Nt{NtA, NtC, NtT, NtG}

// Nucleotides unpacks a codon into its three nucleotides.
func (c Cdn) Nucleotides() (Nt, Nt, Nt) {
	v := c.Index()
	return cdnLUT[(v>>4)&0x3], cdnLUT[(v>>2)&0x3], cdnLUT[v&0x3]
}

func (c Cdn) Byte() byte { return byte(c) }

// ValidCdn reports whether b falls within the packed codon byte range.
func ValidCdn(b byte) bool { return b >= cdnBias && b < cdnBias+64 }

// AllCdns is the ASCII string of all 64 packed codon bytes, in index order.
var AllCdns string

// AllCodingCdns is AllCdns with the three stop codons removed. Populated in
// aa.go's init() once the standard translation table is available, since
// "stop" is defined by the genetic code, not by codon bit pattern.
var AllCodingCdns string

func init() {
	buf := make([]byte, 64)
	for i := 0; i < 64; i++ {
		buf[i] = byte(cdnBias + i)
	}
	AllCdns = string(buf)
}
