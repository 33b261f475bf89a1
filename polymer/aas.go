// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

// Aas is a packed buffer of amino-acid symbols.
type Aas struct {
	buffer
}

// NewAas builds an Aas from an arbitrary string, silently dropping any byte
// that is not one of the 21 recognized amino-acid letters.
func NewAas(s string) Aas {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if ValidAa(s[i]) {
			out = append(out, s[i])
		}
	}
	return Aas{bufferFromBytes(out)}
}

func (a Aas) Len() int       { return a.len() }
func (a Aas) Bytes() []byte  { return a.bytes() }
func (a Aas) String() string { return string(a.bytes()) }
func (a Aas) At(i int) Aa    { return Aa(a.buffer.bytes()[i]) }
func (a *Aas) Exo(l, r int)  { a.exo(l, r) }

// Slice returns the sub-sequence [lo, hi) as an independent Aas.
func (a Aas) Slice(lo, hi int) Aas {
	return Aas{bufferFromBytes(append([]byte(nil), a.Bytes()[lo:hi]...))}
}

// ContainsStop reports whether any residue is the stop symbol.
func (a Aas) ContainsStop() bool {
	for _, b := range a.Bytes() {
		if Aa(b) == AaSTOP {
			return true
		}
	}
	return false
}

func (a Aas) Clone() Aas { return NewAas(a.String()) }
