// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package polymer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsStop(t *testing.T) {
	assert.True(t, NewAas("MK*").ContainsStop())
	assert.False(t, NewAas("MK").ContainsStop())
}

func TestTrimComposition(t *testing.T) {
	x := NewAas("ACDEFGHIKLMNPQRSTVWY")
	a := x.Clone()
	a.Exo(2, 3)
	b := x.Clone()
	b.Exo(1, 1)
	b.Exo(1, 2)
	assert.Equal(t, a.String(), b.String())
}

func TestSlice(t *testing.T) {
	x := NewAas("ACDEFGH")
	assert.Equal(t, "CDE", x.Slice(1, 4).String())
}
