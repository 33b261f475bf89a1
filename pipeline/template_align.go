// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"sort"

	farm "github.com/dgryski/go-farm"

	"github.com/broadinstitute/dsa/align"
	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/submat"
	"github.com/broadinstitute/dsa/templatedb"
)

// AlignToMultipleTemplates aligns every column of every (possibly split)
// ORF row against its corresponding template database and stitches the
// per-column alignments back into one GroupAlignment per row.
//
// dbs[c] is the database for column c; a nil entry means that column is
// reported verbatim with no alignment (no Template). For a column with a
// database, every entry is scored; the entries tied for the best score
// (within floating-point-free integer equality) are combined into a single
// AlignmentTemplate whose identity is a farm hash of the sorted tuple of
// their 1-based indices, so that two rows landing on the same ambiguous set
// of best-scoring templates are recognized as the same reported template.
// If the best score, expressed as a fraction of the query's self-alignment
// score, falls below minAlignmentScore, the row is dropped
// (FilterBadAlignment); if the database is non-nil but holds no entries to
// score against (Size() == 0), it is dropped as FilterNoMatchingTemplate.
//
// raggedEnds does not change scoring: every entry is scored with
// templatedb.DefaultGapPenalty and no length-difference penalty is applied.
func AlignToMultipleTemplates(orfs [][]Orf, dbs []*templatedb.Database, minAlignmentScore float64, raggedEnds bool, log *ParseLog) []GroupAlignment {
	return parallelTransformFilter(len(orfs), log, func(i int, l *ParseLog) (GroupAlignment, bool) {
		row := orfs[i]
		result := GroupAlignment{}

		for c, orf := range row {
			var db *templatedb.Database
			if c < len(dbs) {
				db = dbs[c]
			}

			if db == nil {
				result.Append(GroupAlignment{Alignment: orf.Aas.String(), Cdns: orf.Cdns.String()})
				continue
			}
			if db.Size() == 0 {
				l.FilterNoMatchingTemplate++
				return GroupAlignment{}, false
			}

			col, ok := alignToDatabase(orf, db, minAlignmentScore, raggedEnds, l)
			if !ok {
				return GroupAlignment{}, false
			}
			if result.Template == nil {
				result.Template = col.Template
			}
			result.Append(col)
		}

		result.UMIGroupSize = row[0].UMIGroupSize
		result.Barcode = row[0].Barcode
		return result, true
	})
}

// alignToDatabase scores orf against every entry of db, groups the
// best-scoring entries into one AlignmentTemplate, and returns the full
// traceback alignment against the first of those entries.
func alignToDatabase(orf Orf, db *templatedb.Database, minAlignmentScore float64, raggedEnds bool, l *ParseLog) (GroupAlignment, bool) {
	useCodons := db.CodonDataAvailable() && !orf.Cdns.Empty()

	var best int32
	var bestIdx []int // 1-based
	first := true

	for i := 1; i <= db.Size(); i++ {
		entry := db.Get(i)
		score := scoreEntry(orf, entry, useCodons)
		if first || score > best {
			best = score
			bestIdx = []int{i}
			first = false
		} else if score == best {
			bestIdx = append(bestIdx, i)
		}
	}

	selfScore := selfScoreOf(orf, useCodons)
	if selfScore <= 0 {
		selfScore = 1
	}
	if float64(best)/float64(selfScore) < minAlignmentScore {
		l.FilterBadAlignment++
		return GroupAlignment{}, false
	}

	sort.Ints(bestIdx)
	tpl := combinedTemplate(db, bestIdx, useCodons)

	aligned := alignEntry(orf, db.Get(bestIdx[0]), useCodons)

	return GroupAlignment{
		Template:  tpl,
		Alignment: aligned.Alignment,
		Cdns:      aligned.Cdns,
	}, true
}

// combinedTemplate builds the reported AlignmentTemplate for a tied set of
// best-scoring entries. Its reference Aas/Cdns are taken from the first
// (lowest-index) tied entry: when multiple entries tie, they are, in
// practice, allelic variants sharing the same reference frame, so any one
// of them is representative for substitution reporting.
func combinedTemplate(db *templatedb.Database, idx []int, useCodons bool) *AlignmentTemplate {
	labels := make([]string, len(idx))
	for i, id := range idx {
		labels[i] = db.Label(id)
	}
	buf := make([]byte, 8*len(idx))
	for i, id := range idx {
		v := uint64(id)
		for b := 0; b < 8; b++ {
			buf[8*i+b] = byte(v >> (8 * b))
		}
	}
	rep := db.Get(idx[0])
	tpl := &AlignmentTemplate{
		ID:     farm.Hash64(buf),
		Labels: labels,
		Aas:    rep.Aas,
	}
	if useCodons {
		tpl.Cdns = rep.Cdns
	}
	return tpl
}

func scoreEntry(orf Orf, entry templatedb.Entry, useCodons bool) int32 {
	gap := templatedb.DefaultGapPenalty
	if useCodons {
		return align.Align(cdnSlice(orf.Cdns), cdnSlice(entry.Cdns), align.CdnAlphabet{}, submat.CdnSubs, gap, true).Score
	}
	return align.Align(aaSlice(orf.Aas), aaSlice(entry.Aas), align.AaAlphabet{}, submat.BLOSUM62, gap, true).Score
}

func selfScoreOf(orf Orf, useCodons bool) int32 {
	if useCodons {
		return align.SelfAlignScore(cdnSlice(orf.Cdns), submat.CdnSubs)
	}
	return align.SelfAlignScore(aaSlice(orf.Aas), submat.BLOSUM62)
}

type alignedPair struct {
	Alignment string
	Cdns      string
}

func alignEntry(orf Orf, entry templatedb.Entry, useCodons bool) alignedPair {
	gap := templatedb.DefaultGapPenalty
	if useCodons {
		res := align.Align(cdnSlice(orf.Cdns), cdnSlice(entry.Cdns), align.CdnAlphabet{}, submat.CdnSubs, gap, false)
		return alignedPair{Alignment: string(translateAligned(res.AlignedQuery)), Cdns: res.AlignedQuery}
	}
	res := align.Align(aaSlice(orf.Aas), aaSlice(entry.Aas), align.AaAlphabet{}, submat.BLOSUM62, gap, false)
	return alignedPair{Alignment: res.AlignedQuery}
}

// translateAligned renders a codon-alphabet aligned string as amino acids,
// leaving the space gap character untranslated.
func translateAligned(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			out[i] = '-'
			continue
		}
		out[i] = byte(polymer.StandardTranslationTable.Translate(polymer.Cdn(s[i])))
	}
	return out
}

func aaSlice(a polymer.Aas) []polymer.Aa {
	out := make([]polymer.Aa, a.Len())
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}

func cdnSlice(c polymer.Cdns) []polymer.Cdn {
	out := make([]polymer.Cdn, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// CollateSkipAssembly merges forward-only and reverse-only alignment rows
// produced when paired-end assembly is skipped. Both slices are expected in
// arbitrary order; they are sorted ascending by barcode and merged with a
// two-pointer walk, pairing rows with matching barcodes (concatenating
// their alignments). All paired rows come first; every unpaired row from
// either side is appended after them, in ascending-barcode order. This reproduces the same set of
// output rows as the reference implementation's descending-sort/pop-from-
// back merge, in a different but equivalent traversal order.
func CollateSkipAssembly(fw, rv []GroupAlignment) []GroupAlignment {
	sort.Slice(fw, func(i, j int) bool { return fw[i].Barcode < fw[j].Barcode })
	sort.Slice(rv, func(i, j int) bool { return rv[i].Barcode < rv[j].Barcode })

	var out, unpaired []GroupAlignment
	i, j := 0, 0
	for i < len(fw) && j < len(rv) {
		switch {
		case fw[i].Barcode == rv[j].Barcode:
			merged := fw[i]
			merged.Append(rv[j])
			merged.UMIGroupSize = fw[i].UMIGroupSize + rv[j].UMIGroupSize
			out = append(out, merged)
			i++
			j++
		case fw[i].Barcode < rv[j].Barcode:
			unpaired = append(unpaired, fw[i])
			i++
		default:
			unpaired = append(unpaired, rv[j])
			j++
		}
	}
	out = append(out, unpaired...)
	out = append(out, fw[i:]...)
	out = append(out, rv[j:]...)
	return out
}
