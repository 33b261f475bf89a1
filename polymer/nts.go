// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

// Nts is a packed buffer of nucleotide symbols.
type Nts struct {
	buffer
}

// NewNts builds an Nts from an arbitrary string, silently dropping any byte
// that is not a valid nucleotide letter (either case) and normalizing
// surviving bytes to uppercase. There is no failure path: invalid input
// simply yields a shorter (possibly empty) result.
func NewNts(s string) Nts {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if v, ok := NormalizeNt(s[i]); ok {
			out = append(out, byte(v))
		}
	}
	return Nts{bufferFromBytes(out)}
}

func (n Nts) Len() int      { return n.len() }
func (n Nts) Bytes() []byte { return n.bytes() }
func (n Nts) String() string {
	return string(n.bytes())
}

// At returns the nucleotide at position i.
func (n Nts) At(i int) Nt { return Nt(n.buffer.bytes()[i]) }

// Exo trims l bytes from the left and r from the right in O(1).
func (n *Nts) Exo(l, r int) { n.exo(l, r) }

func (n *Nts) PushBack(v Nt) { n.pushByte(byte(v)) }

func (n *Nts) PopBack() (Nt, bool) {
	b, ok := n.popByte()
	return Nt(b), ok
}

// Concat returns a fresh Nts holding n's bytes followed by other's; n is
// unmodified, to keep value semantics simple.
func (n Nts) Concat(other Nts) Nts {
	out := make([]byte, 0, n.Len()+other.Len())
	out = append(out, n.Bytes()...)
	out = append(out, other.Bytes()...)
	return Nts{bufferFromBytes(out)}
}

// ReverseComplement returns the reverse complement of n; n is unmodified.
func (n Nts) ReverseComplement() Nts {
	src := n.Bytes()
	out := make([]byte, len(src))
	for i, b := range src {
		out[len(src)-1-i] = Nt(b).Complement().Byte()
	}
	return Nts{bufferFromBytes(out)}
}

// Pack packs n into codons. n's length must be a multiple of 3; if it is
// not, the trailing 1-2 nucleotides are ignored (callers that need a hard
// failure on non-multiple-of-3 input should check Len()%3 first).
func (n Nts) Pack() Cdns {
	src := n.Bytes()
	nc := len(src) / 3
	out := make([]byte, nc)
	for i := 0; i < nc; i++ {
		out[i] = byte(PackCdn(src[3*i], src[3*i+1], src[3*i+2]))
	}
	return Cdns{bufferFromBytes(out)}
}

// Clone returns an independent copy of n.
func (n Nts) Clone() Nts { return NewNts(n.String()) }
