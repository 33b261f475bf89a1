// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/templatedb"
)

func TestAlignToMultipleTemplatesExactMatch(t *testing.T) {
	db := templatedb.CreateEmpty()
	db.AddEntry("t1", polymer.Cdns{}, polymer.NewAas("MK"))
	db.AddEntry("t2", polymer.Cdns{}, polymer.NewAas("MA"))

	orf := Orf{Aas: polymer.NewAas("MK"), Barcode: "bc", UMIGroupSize: 3}
	var log ParseLog
	rows := AlignToMultipleTemplates([][]Orf{{orf}}, []*templatedb.Database{db}, 0, false, &log)

	require.Len(t, rows, 1)
	assert.Equal(t, "MK", rows[0].Alignment)
	require.NotNil(t, rows[0].Template)
	assert.Equal(t, []string{"t1"}, rows[0].Template.Labels)
	assert.EqualValues(t, 3, rows[0].UMIGroupSize)
}

func TestAlignToMultipleTemplatesDedupsTies(t *testing.T) {
	db := templatedb.CreateEmpty()
	db.AddEntry("allele1", polymer.Cdns{}, polymer.NewAas("MK"))
	db.AddEntry("allele2", polymer.Cdns{}, polymer.NewAas("MK"))

	orf := Orf{Aas: polymer.NewAas("MK"), Barcode: "bc", UMIGroupSize: 1}
	var log ParseLog
	rows := AlignToMultipleTemplates([][]Orf{{orf}}, []*templatedb.Database{db}, 0, false, &log)

	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Template)
	gotLabels := append([]string(nil), rows[0].Template.Labels...)
	sort.Strings(gotLabels)
	assert.Equal(t, []string{"allele1", "allele2"}, gotLabels)
}

func TestAlignToMultipleTemplatesBadAlignmentDropped(t *testing.T) {
	db := templatedb.CreateEmpty()
	db.AddEntry("t1", polymer.Cdns{}, polymer.NewAas("WWWW"))

	orf := Orf{Aas: polymer.NewAas("AAAA"), Barcode: "bc", UMIGroupSize: 1}
	var log ParseLog
	rows := AlignToMultipleTemplates([][]Orf{{orf}}, []*templatedb.Database{db}, 0.9, false, &log)

	assert.Len(t, rows, 0)
	assert.EqualValues(t, 1, log.FilterBadAlignment)
}

func TestAlignToMultipleTemplatesEmptyDatabaseDropped(t *testing.T) {
	db := templatedb.CreateEmpty()
	orf := Orf{Aas: polymer.NewAas("MK"), Barcode: "bc", UMIGroupSize: 1}
	var log ParseLog
	rows := AlignToMultipleTemplates([][]Orf{{orf}}, []*templatedb.Database{db}, 0, false, &log)

	assert.Len(t, rows, 0)
	assert.EqualValues(t, 1, log.FilterNoMatchingTemplate)
}

func TestAlignToMultipleTemplatesNilDatabasePassesThrough(t *testing.T) {
	orf := Orf{Aas: polymer.NewAas("MK"), Barcode: "bc", UMIGroupSize: 1}
	var log ParseLog
	rows := AlignToMultipleTemplates([][]Orf{{orf}}, []*templatedb.Database{nil}, 0, false, &log)

	require.Len(t, rows, 1)
	assert.Equal(t, "MK", rows[0].Alignment)
	assert.Nil(t, rows[0].Template)
}

func TestCollateSkipAssemblyPairsAndAppendsUnpaired(t *testing.T) {
	fw := []GroupAlignment{
		{Barcode: "A", Alignment: "MK", UMIGroupSize: 2},
		{Barcode: "C", Alignment: "QQ", UMIGroupSize: 1},
	}
	rv := []GroupAlignment{
		{Barcode: "A", Alignment: "TT", UMIGroupSize: 3},
		{Barcode: "B", Alignment: "GG", UMIGroupSize: 1},
	}
	out := CollateSkipAssembly(fw, rv)
	require.Len(t, out, 3)

	byBarcode := make(map[string]GroupAlignment, len(out))
	for _, g := range out {
		byBarcode[g.Barcode] = g
	}
	assert.Equal(t, "MKTT", byBarcode["A"].Alignment)
	assert.EqualValues(t, 5, byBarcode["A"].UMIGroupSize)
	assert.Equal(t, "GG", byBarcode["B"].Alignment)
	assert.Equal(t, "QQ", byBarcode["C"].Alignment)
}
