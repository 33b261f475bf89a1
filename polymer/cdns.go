// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

// Cdns is a packed buffer of codon symbols.
type Cdns struct {
	buffer
}

// NewCdns builds a Cdns from an arbitrary string, silently dropping any byte
// outside the packed codon range.
func NewCdns(s string) Cdns {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if ValidCdn(s[i]) {
			out = append(out, s[i])
		}
	}
	return Cdns{bufferFromBytes(out)}
}

func (c Cdns) Len() int        { return c.len() }
func (c Cdns) Bytes() []byte   { return c.bytes() }
func (c Cdns) String() string  { return string(c.bytes()) }
func (c Cdns) At(i int) Cdn    { return Cdn(c.buffer.bytes()[i]) }
func (c *Cdns) Exo(l, r int)   { c.exo(l, r) }
func (c *Cdns) PushBack(v Cdn) { c.pushByte(byte(v)) }

// Slice returns the sub-sequence [lo, hi) as an independent Cdns.
func (c Cdns) Slice(lo, hi int) Cdns {
	return Cdns{bufferFromBytes(append([]byte(nil), c.Bytes()[lo:hi]...))}
}

func (c Cdns) Concat(other Cdns) Cdns {
	out := make([]byte, 0, c.Len()+other.Len())
	out = append(out, c.Bytes()...)
	out = append(out, other.Bytes()...)
	return Cdns{bufferFromBytes(out)}
}

// Unpack reconstructs the nucleotide sequence encoded by c.
func (c Cdns) Unpack() Nts {
	src := c.Bytes()
	out := make([]byte, 0, len(src)*3)
	for _, b := range src {
		a1, a2, a3 := Cdn(b).Nucleotides()
		out = append(out, a1.Byte(), a2.Byte(), a3.Byte())
	}
	return Nts{bufferFromBytes(out)}
}

// Translate applies t to every codon, producing an Aas of the same length.
func (c Cdns) Translate(t TranslationTable) Aas {
	src := c.Bytes()
	out := make([]byte, len(src))
	for i, b := range src {
		out[i] = byte(t.Translate(Cdn(b)))
	}
	return Aas{bufferFromBytes(out)}
}

func (c Cdns) Empty() bool { return c.Len() == 0 }

func (c Cdns) Clone() Cdns { return NewCdns(c.String()) }
