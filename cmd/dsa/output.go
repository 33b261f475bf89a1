// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/broadinstitute/dsa/pipeline"
)

// report holds everything the stdout writer needs, already computed by the
// pipeline: it has no knowledge of how any of it was derived.
type report struct {
	Settings   []string // pre-formatted "name\tvalue" lines
	Log        pipeline.ParseLog
	Templates  []templateReport
	Alignments []pipeline.GroupAlignment
	AssemblyEnabled bool
}

type templateReport struct {
	Label     string
	Subs      pipeline.SubstitutionCounts
	Mutations pipeline.MutationCount
	HasMutations bool
}

func writeReport(w io.Writer, r report, numberFrom int, showCodons codonOutput, noHeader bool) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if !noHeader {
		fmt.Fprintln(bw, "#Settings#")
		for _, line := range r.Settings {
			fmt.Fprintln(bw, line)
		}
	}

	fmt.Fprintln(bw, "#Parse#")
	fmt.Fprintf(bw, "filter_invalid_chars\t%d\n", r.Log.FilterInvalidChars)
	fmt.Fprintf(bw, "filter_no_fw_umi\t%d\n", r.Log.FilterNoFwUMI)
	fmt.Fprintf(bw, "filter_no_rv_umi\t%d\n", r.Log.FilterNoRvUMI)
	fmt.Fprintf(bw, "filter_could_not_assemble\t%d\n", r.Log.FilterCouldNotAssemble)
	fmt.Fprintf(bw, "filter_umi_group_too_small\t%d\n", r.Log.FilterUMIGroupTooSmall)
	fmt.Fprintf(bw, "filter_duplicate_umi\t%d\n", r.Log.FilterDuplicateUMI)
	fmt.Fprintf(bw, "filter_premature_stop_codon\t%d\n", r.Log.FilterPrematureStopCodon)
	fmt.Fprintf(bw, "filter_split_failed\t%d\n", r.Log.FilterSplitFailed)
	fmt.Fprintf(bw, "filter_no_matching_template\t%d\n", r.Log.FilterNoMatchingTemplate)
	fmt.Fprintf(bw, "filter_bad_alignment\t%d\n", r.Log.FilterBadAlignment)

	fmt.Fprintln(bw, "#Templates#")
	for _, t := range r.Templates {
		fmt.Fprintln(bw, t.Label)
	}

	usage := make(map[string]uint64)
	for _, a := range r.Alignments {
		if a.Template != nil {
			usage[a.Template.Label(" / ")] += a.UMIGroupSize
		}
	}
	fmt.Fprintln(bw, "#Template Usage#")
	labels := make([]string, 0, len(usage))
	for l := range usage {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		fmt.Fprintf(bw, "%s\t%d\n", l, usage[l])
	}

	fmt.Fprintln(bw, "#Alignments#")
	for _, a := range r.Alignments {
		id := "none"
		if a.Template != nil {
			id = fmt.Sprintf("%d", a.Template.ID)
		}
		fmt.Fprintf(bw, "%s\t%d\t%s\t%s\n", id, a.UMIGroupSize, a.Barcode, a.Alignment)
		writeCodonRow(bw, a, showCodons)
	}

	for _, t := range r.Templates {
		fmt.Fprintf(bw, "#Substitutions (%s)#\n", t.Label)
		for pos, row := range t.Subs {
			fmt.Fprintf(bw, "%d", pos+numberFrom)
			for _, c := range row {
				fmt.Fprintf(bw, "\t%d", c)
			}
			fmt.Fprintln(bw)
		}
		if t.HasMutations {
			fmt.Fprintf(bw, "#Mutation Counts (%s)#\n", t.Label)
			fmt.Fprintln(bw, "position\tsynonymous\tnonsynonymous\ttotal")
			for pos := range t.Mutations.Total {
				fmt.Fprintf(bw, "%d\t%d\t%d\t%d\n", pos+numberFrom,
					t.Mutations.Synonymous[pos], t.Mutations.Nonsynonymous[pos], t.Mutations.Total[pos])
			}
		}
	}

	if r.AssemblyEnabled {
		writeUniqueSection(bw, "#Unique Amino Acids#", r.Alignments, func(a pipeline.GroupAlignment) string { return a.Alignment })
		writeUniqueSection(bw, "#Unique Codons#", r.Alignments, func(a pipeline.GroupAlignment) string { return a.Cdns })
	}
}

func writeCodonRow(bw *bufio.Writer, a pipeline.GroupAlignment, mode codonOutput) {
	if mode == codonNone || a.Cdns == "" {
		return
	}
	switch mode {
	case codonAscii:
		fmt.Fprintf(bw, "codons\t%d\t%s\t%s\n", a.UMIGroupSize, a.Barcode, a.Cdns)
	case codonHorizontal:
		fmt.Fprintf(bw, "codons\t%d\t%s\t", a.UMIGroupSize, a.Barcode)
		for i := 0; i < len(a.Cdns); i++ {
			if i > 0 {
				fmt.Fprint(bw, " ")
			}
			fmt.Fprintf(bw, "%c", a.Cdns[i])
		}
		fmt.Fprintln(bw)
	case codonVertical:
		for i := 0; i < len(a.Cdns); i++ {
			fmt.Fprintf(bw, "codons[%d]\t%d\t%s\t%c\n", i, a.UMIGroupSize, a.Barcode, a.Cdns[i])
		}
	}
}

func writeUniqueSection(bw *bufio.Writer, header string, alignments []pipeline.GroupAlignment, key func(pipeline.GroupAlignment) string) {
	counts := make(map[string]uint64)
	for _, a := range alignments {
		k := key(a)
		if k == "" {
			continue
		}
		counts[k] += a.UMIGroupSize
	}
	fmt.Fprintln(bw, header)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		fmt.Fprintf(bw, "%s\t%d\n", k, counts[k])
	}
}
