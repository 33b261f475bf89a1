// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/dsaerr"
)

func validParams() *params {
	return &params{
		MinUMIGroup:  1,
		MinOverlap:   4,
		MaxMismatch:  0,
		MinAlignment: 0.5,
		NumberFrom:   1,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validParams().validate())
}

func TestValidateRejectsMaxMismatchNotLessThanMinOverlap(t *testing.T) {
	p := validParams()
	p.MaxMismatch = 4
	p.MinOverlap = 4
	err := p.validate()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dsaerr.ErrArgValidation))
}

func TestValidateRejectsMinUMIGroupBelowOne(t *testing.T) {
	p := validParams()
	p.MinUMIGroup = 0
	assert.Error(t, p.validate())
}

func TestValidateRejectsMinAlignmentOutOfRange(t *testing.T) {
	p := validParams()
	p.MinAlignment = 1.5
	assert.Error(t, p.validate())
}

func TestValidateRejectsNegativeNumberFrom(t *testing.T) {
	p := validParams()
	p.NumberFrom = -1
	assert.Error(t, p.validate())
}

func TestValidateRejectsMismatchedTrimCount(t *testing.T) {
	p := validParams()
	p.Templates = []string{"MK", "MA"}
	p.Trims = []trimPair{{0, 0}}
	assert.Error(t, p.validate())
}

func TestValidateAcceptsMatchingTrimCount(t *testing.T) {
	p := validParams()
	p.Templates = []string{"MK", "MA"}
	p.Trims = []trimPair{{0, 0}, {1, 1}}
	assert.NoError(t, p.validate())
}

func TestValidateRejectsSplitGroupCountMismatch(t *testing.T) {
	p := validParams()
	p.Templates = []string{"MK", "MA"}
	p.Split = regexp.MustCompile(`(.+)`)
	assert.Error(t, p.validate())
}

func TestValidateRejectsSkipAssemblyWithMultipleTemplates(t *testing.T) {
	p := validParams()
	p.Templates = []string{"MK", "MA"}
	p.SkipAssembly = true
	assert.Error(t, p.validate())
}

func TestValidateRejectsSkipAssemblyWithSplit(t *testing.T) {
	p := validParams()
	p.Templates = []string{"MK"}
	p.Split = regexp.MustCompile(`(.+)`)
	p.SkipAssembly = true
	assert.Error(t, p.validate())
}

func TestTrimListSetParsesPair(t *testing.T) {
	var tl trimList
	require.NoError(t, tl.Set("2,3"))
	require.Len(t, tl.values, 1)
	assert.Equal(t, trimPair{L: 2, R: 3}, tl.values[0])
}

func TestTrimListSetRejectsMalformed(t *testing.T) {
	var tl trimList
	err := tl.Set("2")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, dsaerr.ErrArgValidation))
	assert.Error(t, tl.Set("-1,3"))
}

func TestCodonOutputSetAndString(t *testing.T) {
	var c codonOutput
	require.NoError(t, c.Set("horizontal"))
	assert.Equal(t, codonHorizontal, c)
	assert.Equal(t, "horizontal", c.String())

	assert.Error(t, c.Set("bogus"))
}

func TestStringListAccumulates(t *testing.T) {
	var sl stringList
	require.NoError(t, sl.Set("a"))
	require.NoError(t, sl.Set("b"))
	assert.Equal(t, []string{"a", "b"}, sl.values)
}
