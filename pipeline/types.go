// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package pipeline implements the data-processing stages of the analysis
// pipeline: QC and pair assembly, UMI collapse/consensus, translation and
// premature-stop filtering, ORF splitting, multi-template alignment, and
// mutation statistics — all built on a shared set of parallel primitives
// modeled on the reference implementation's parallelism.h.
package pipeline

import "github.com/broadinstitute/dsa/polymer"

// Read is a single sequencing read: a barcode (once extracted), the UMI
// group size it represents (1 until UMI collapse merges reads), a
// nucleotide sequence, and its per-base quality bytes.
type Read struct {
	Barcode      string
	UMIGroupSize uint64
	Dna          polymer.Nts
	Qual         []byte
}

// Empty reports whether r carries no sequence data. The mmap FASTQ loader
// emits empty reads (rather than dropping them) for malformed records, to
// preserve positional correspondence between the forward and reverse files.
func (r Read) Empty() bool { return r.Dna.Len() == 0 }

// ReadPair is a forward/reverse read pair that has passed QC but has not
// yet been assembled (or, for the skip-assembly path, never will be).
type ReadPair struct {
	Fw, Rv Read
}

// Orf is a translated open reading frame: the codon and amino-acid
// sequences it was translated from, plus the barcode/group-size metadata
// carried through from its source read(s).
type Orf struct {
	Barcode      string
	UMIGroupSize uint64
	TemplateID   uint64 // not set by any pipeline stage; templates are reported on GroupAlignment.Template
	Cdns         polymer.Cdns
	Aas          polymer.Aas
}

// ContainsPTC reports whether o's amino-acid sequence contains a premature
// stop codon.
func (o Orf) ContainsPTC() bool { return o.Aas.ContainsStop() }

// AlignmentTemplate is the concatenation of one or more template-database
// entries used to align a (possibly split) ORF. Its identity within a run
// is the ordered tuple of database-entry indices that produced it.
type AlignmentTemplate struct {
	ID     uint64
	Labels []string
	Aas    polymer.Aas
	Cdns   polymer.Cdns
}

// Label joins Labels with delim (default " / ").
func (t *AlignmentTemplate) Label(delim string) string {
	if delim == "" {
		delim = " / "
	}
	out := ""
	for i, l := range t.Labels {
		if i > 0 {
			out += delim
		}
		out += l
	}
	return out
}

// GroupAlignment is one row of the final report: a UMI group's aligned
// amino-acid string (and parallel codon string) against its chosen
// template.
type GroupAlignment struct {
	UMIGroupSize uint64
	Template     *AlignmentTemplate // nil if no template database was supplied
	Barcode      string
	Alignment    string // gapped amino-acid string
	Cdns         string // parallel gapped codon string
}

// Append concatenates g2's alignment/codon strings onto g (used when
// stitching together the split parts of one row).
func (g *GroupAlignment) Append(g2 GroupAlignment) {
	g.Alignment += g2.Alignment
	g.Cdns += g2.Cdns
}

// MutationCount holds per-position synonymous/nonsynonymous/total mutation
// tallies for one template.
type MutationCount struct {
	Synonymous    []uint
	Nonsynonymous []uint
	Total         []uint
}

// NewMutationCount allocates a zeroed MutationCount with cols positions.
func NewMutationCount(cols int) MutationCount {
	return MutationCount{
		Synonymous:    make([]uint, cols),
		Nonsynonymous: make([]uint, cols),
		Total:         make([]uint, cols),
	}
}

// Add returns the elementwise sum of m and other; both must have equal
// length (or one may be the zero value, in which case the other is copied).
func (m MutationCount) Add(other MutationCount) MutationCount {
	if len(m.Total) == 0 {
		return other
	}
	if len(other.Total) == 0 {
		return m
	}
	out := NewMutationCount(len(m.Total))
	for i := range m.Total {
		out.Synonymous[i] = m.Synonymous[i] + other.Synonymous[i]
		out.Nonsynonymous[i] = m.Nonsynonymous[i] + other.Nonsynonymous[i]
		out.Total[i] = m.Total[i] + other.Total[i]
	}
	return out
}

// ParseLog is an additive counter of per-record filter reasons. Every
// pipeline stage that can drop a record increments exactly one of these
// fields; ParseLog values from parallel workers are summed to produce a
// run-wide total (see the "Log additivity" testable property).
type ParseLog struct {
	FilterInvalidChars         uint64
	FilterNoFwUMI              uint64
	FilterNoRvUMI              uint64
	FilterCouldNotAssemble     uint64
	FilterUMIGroupTooSmall     uint64
	FilterDuplicateUMI         uint64
	FilterPrematureStopCodon   uint64
	FilterSplitFailed          uint64
	FilterNoMatchingTemplate   uint64
	FilterBadAlignment         uint64
}

// Add returns the elementwise sum of l and other.
func (l ParseLog) Add(other ParseLog) ParseLog {
	return ParseLog{
		FilterInvalidChars:       l.FilterInvalidChars + other.FilterInvalidChars,
		FilterNoFwUMI:            l.FilterNoFwUMI + other.FilterNoFwUMI,
		FilterNoRvUMI:            l.FilterNoRvUMI + other.FilterNoRvUMI,
		FilterCouldNotAssemble:   l.FilterCouldNotAssemble + other.FilterCouldNotAssemble,
		FilterUMIGroupTooSmall:   l.FilterUMIGroupTooSmall + other.FilterUMIGroupTooSmall,
		FilterDuplicateUMI:       l.FilterDuplicateUMI + other.FilterDuplicateUMI,
		FilterPrematureStopCodon: l.FilterPrematureStopCodon + other.FilterPrematureStopCodon,
		FilterSplitFailed:        l.FilterSplitFailed + other.FilterSplitFailed,
		FilterNoMatchingTemplate: l.FilterNoMatchingTemplate + other.FilterNoMatchingTemplate,
		FilterBadAlignment:       l.FilterBadAlignment + other.FilterBadAlignment,
	}
}
