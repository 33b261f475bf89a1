// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// dsa assembles, translates, and aligns paired-end deep-sequencing amplicon
// reads against one or more templates, reporting per-barcode alignments and
// per-template substitution/mutation statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/broadinstitute/dsa/dsaerr"
	"github.com/broadinstitute/dsa/mmapio"
	"github.com/broadinstitute/dsa/pipeline"
	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/templatedb"
	"github.com/broadinstitute/dsa/umiref"
)

var (
	fwRefs      stringList
	rvRefs      stringList
	templates   stringList
	templateDNA stringList
	templateDBs stringList
	trims       trimList
	splitRegex  = flag.String("split", "", "Split translated ORFs by regex capture groups")
	minQual     = flag.String("q", "A", "3' quality cutoff, single ASCII character")
	minUMIGroup = flag.Int("g", 1, "Minimum UMI group size")
	minOverlap  = flag.Int("v", 9, "Minimum assembly overlap")
	maxMismatch = flag.Int("m", 0, "Max mismatches in assembly overlap")
	minAlign    = flag.Float64("a", 0.8, "Min normalized alignment score in [0,1]")
	skipAssembly = flag.Bool("x", false, "Process forward and reverse reads independently")
	numberFrom  = flag.Int("n", 1, "Position numbering offset in the substitutions table")
	showCodons  codonOutput
	noHeader    = flag.Bool("s", false, "Suppress the header preamble")
)

func init() {
	flag.Var(&fwRefs, "f", "Append a forward reference (may repeat)")
	flag.Var(&fwRefs, "fw_ref", "Append a forward reference (may repeat)")
	flag.Var(&rvRefs, "r", "Append a reverse reference (may repeat)")
	flag.Var(&rvRefs, "rv_ref", "Append a reverse reference (may repeat)")
	flag.Var(&templates, "t", "Append an amino-acid template source, or \"none\" (may repeat)")
	flag.Var(&templates, "template", "Append an amino-acid template source, or \"none\" (may repeat)")
	flag.Var(&templateDNA, "d", "Append a codon template source (may repeat)")
	flag.Var(&templateDNA, "template_dna", "Append a codon template source (may repeat)")
	flag.Var(&templateDBs, "template_db", "Append a FASTA template-database path (may repeat)")
	flag.Var(&trims, "trim", "Per-template trim \"L,R\" (may repeat, once per template source)")
	flag.Var(&showCodons, "c", "Codon output mode: none|ascii|horizontal|vertical")
	flag.Var(&showCodons, "show_codons", "Codon output mode: none|ascii|horizontal|vertical")
	flag.StringVar(minQual, "min_qual", "A", "3' quality cutoff, single ASCII character")
	flag.IntVar(minUMIGroup, "min_umi_grp", 1, "Minimum UMI group size")
	flag.IntVar(minOverlap, "min_overlap", 9, "Minimum assembly overlap")
	flag.IntVar(maxMismatch, "max_mismatch", 0, "Max mismatches in assembly overlap")
	flag.Float64Var(minAlign, "min_aln", 0.8, "Min normalized alignment score in [0,1]")
	flag.BoolVar(skipAssembly, "skip_assembly", false, "Process forward and reverse reads independently")
	flag.IntVar(numberFrom, "number_from", 1, "Position numbering offset in the substitutions table")
	flag.BoolVar(noHeader, "no_header", false, "Suppress the header preamble")
}

func main() {
	flag.Usage = dsaUsage
	shutdown := grail.Init()
	defer shutdown()

	p, fwPath, rvPath, err := buildParams()
	if err != nil {
		log.Fatalf("dsa: %s", diagnose(err))
	}

	r, err := run(p, fwPath, rvPath)
	if err != nil {
		log.Fatalf("dsa: %s", diagnose(err))
	}

	writeReport(os.Stdout, r, p.NumberFrom, p.ShowCodons, p.NoHeader)
}

// buildParams reads the already-parsed flag values (grail.Init parses
// os.Args before returning, the same convention every other cmd/ binary in
// this tree follows) and validates the result.
func buildParams() (*params, string, string, error) {
	args := flag.Args()
	if len(args) != 2 {
		return nil, "", "", dsaerr.Errorf(dsaerr.ErrArgValidation, "expected 2 positional arguments (fw.fastq rv.fastq), got %d", len(args))
	}

	if len(*minQual) != 1 {
		return nil, "", "", dsaerr.Errorf(dsaerr.ErrArgValidation, "-q/--min_qual must be a single character, got %q", *minQual)
	}

	p := &params{
		FwRefs:       append([]string(nil), fwRefs.values...),
		RvRefs:       append([]string(nil), rvRefs.values...),
		Templates:    append([]string(nil), templates.values...),
		TemplateDNAs: append([]string(nil), templateDNA.values...),
		TemplateDBs:  append([]string(nil), templateDBs.values...),
		Trims:        append([]trimPair(nil), trims.values...),
		MinQual:      (*minQual)[0],
		MinUMIGroup:  *minUMIGroup,
		MinOverlap:   *minOverlap,
		MaxMismatch:  *maxMismatch,
		MinAlignment: *minAlign,
		SkipAssembly: *skipAssembly,
		NumberFrom:   *numberFrom,
		ShowCodons:   showCodons,
		NoHeader:     *noHeader,
		FwPath:       args[0],
		RvPath:       args[1],
	}

	if *splitRegex != "" {
		re, err := regexp.Compile(*splitRegex)
		if err != nil {
			return nil, "", "", dsaerr.Wrap(dsaerr.ErrParse, fmt.Errorf("--split: %w", err))
		}
		p.Split = re
	}

	if err := p.validate(); err != nil {
		return nil, "", "", err
	}
	return p, p.FwPath, p.RvPath, nil
}

// run executes the full pipeline against already-validated params and
// produces the report the stdout writer renders.
func run(p *params, fwPath, rvPath string) (report, error) {
	fwExs, err := buildExtractors(p.FwRefs)
	if err != nil {
		return report{}, err
	}
	rvExs, err := buildExtractors(p.RvRefs)
	if err != nil {
		return report{}, err
	}

	dbs, err := buildTemplateDatabases(p)
	if err != nil {
		return report{}, err
	}

	fw, err := loadFastq(fwPath)
	if err != nil {
		return report{}, err
	}
	rv, err := loadFastq(rvPath)
	if err != nil {
		return report{}, err
	}
	if len(fw) != len(rv) {
		return report{}, dsaerr.Errorf(dsaerr.ErrInputFailure, "forward (%d) and reverse (%d) FASTQ record counts differ", len(fw), len(rv))
	}

	var log pipeline.ParseLog

	pairs := pipeline.QCReads(fw, rv, p.MinQual, fwExs, rvExs, &log)

	var reads []pipeline.Read
	var alignments []pipeline.GroupAlignment

	if p.SkipAssembly {
		fwReads := make([]pipeline.Read, len(pairs))
		rvReads := make([]pipeline.Read, len(pairs))
		for i, pr := range pairs {
			fwReads[i] = pr.Fw
			rvReads[i] = pr.Rv
		}
		fwAligned := alignReads(fwReads, p, dbs, &log)
		rvAligned := alignReads(rvReads, p, dbs, &log)
		alignments = pipeline.CollateSkipAssembly(fwAligned, rvAligned)
	} else {
		reads = pipeline.AssembleReads(pairs, p.MinOverlap, p.MaxMismatch, &log)
		reads = pipeline.UMICollapse(reads, p.MinUMIGroup, true, &log)
		alignments = alignReads(reads, p, dbs, &log)
	}

	templateReports := buildTemplateReports(alignments)

	return report{
		Settings:        settingsLines(p),
		Log:             log,
		Templates:       templateReports,
		Alignments:      alignments,
		AssemblyEnabled: !p.SkipAssembly,
	}, nil
}

func alignReads(reads []pipeline.Read, p *params, dbs []*templatedb.Database, log *pipeline.ParseLog) []pipeline.GroupAlignment {
	orfs := pipeline.TranslateAndFilterPTCs(reads, false, log)
	split := pipeline.SplitOrfs(orfs, p.Split, log)
	return pipeline.AlignToMultipleTemplates(split, dbs, p.MinAlignment, true, log)
}

func buildExtractors(refs []string) ([]*umiref.Extractor, error) {
	out := make([]*umiref.Extractor, 0, len(refs))
	for _, s := range refs {
		ex, err := umiref.New(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ex)
	}
	return out, nil
}

// buildTemplateDatabases converts each configured template source (an
// amino-acid string, a codon string, "none", or a FASTA path) into a
// single-column *templatedb.Database, applying that column's --trim if one
// was given.
func buildTemplateDatabases(p *params) ([]*templatedb.Database, error) {
	var dbs []*templatedb.Database
	col := 0

	addTrim := func(db *templatedb.Database) error {
		if col < len(p.Trims) {
			t := p.Trims[col]
			if err := db.Trim(t.L, t.R); err != nil {
				return err
			}
		}
		col++
		return nil
	}

	for _, t := range p.Templates {
		if t == "none" {
			dbs = append(dbs, nil)
			col++
			continue
		}
		db := templatedb.CreateEmpty()
		aas := polymer.NewAas(t)
		db.AddEntry(t, polymer.Cdns{}, aas)
		if err := addTrim(db); err != nil {
			return nil, err
		}
		dbs = append(dbs, db)
	}

	for _, d := range p.TemplateDNAs {
		nts := polymer.NewNts(d)
		if nts.Len()%3 != 0 {
			return nil, dsaerr.Errorf(dsaerr.ErrParse, "--template_dna %q length is not a multiple of 3", d)
		}
		cdns := nts.Pack()
		aas := cdns.Translate(polymer.StandardTranslationTable)
		db := templatedb.CreateEmpty()
		db.AddEntry(d, cdns, aas)
		if err := addTrim(db); err != nil {
			return nil, err
		}
		dbs = append(dbs, db)
	}

	for _, path := range p.TemplateDBs {
		db, err := templatedb.FromIMGTFasta(path)
		if err != nil {
			return nil, err
		}
		if err := addTrim(db); err != nil {
			return nil, err
		}
		dbs = append(dbs, db)
	}

	return dbs, nil
}

// buildTemplateReports groups alignment rows by the AlignmentTemplate they
// were reported against and computes each group's substitution and
// mutation-count tables. Position indices assume an insertion-free
// alignment against the reference (the common case for the fixed-length
// CDR/framework templates this tool targets); an inserted (lowercase)
// residue shifts all subsequent positions in that row's own tally, a
// known simplification recorded in the design notes.
func buildTemplateReports(alignments []pipeline.GroupAlignment) []templateReport {
	type group struct {
		label string
		aas   string
		cdns  string
		rows  []pipeline.GroupAlignment
	}
	groups := make(map[uint64]*group)
	var order []uint64
	for _, a := range alignments {
		if a.Template == nil {
			continue
		}
		g, ok := groups[a.Template.ID]
		if !ok {
			g = &group{label: a.Template.Label(" / "), aas: a.Template.Aas.String(), cdns: a.Template.Cdns.String()}
			groups[a.Template.ID] = g
			order = append(order, a.Template.ID)
		}
		g.rows = append(g.rows, a)
	}

	out := make([]templateReport, 0, len(order))
	for _, id := range order {
		g := groups[id]
		subs, mutations := pipeline.TallyMutations(g.rows, g.aas, g.cdns)
		out = append(out, templateReport{
			Label:        g.label,
			Subs:         subs,
			Mutations:    mutations,
			HasMutations: g.cdns != "",
		})
	}
	return out
}

func loadFastq(path string) ([]pipeline.Read, error) {
	return mmapio.Load(path)
}

// diagnose prefixes err with the kind label from the CLI's error-handling
// contract (argument validation, input, parse, semantic), classified with
// errors.Is against dsaerr's sentinels rather than by matching error text.
// An err of an unrecognized kind is returned unprefixed.
func diagnose(err error) string {
	switch {
	case errors.Is(err, dsaerr.ErrArgValidation):
		return "invalid arguments: " + err.Error()
	case errors.Is(err, dsaerr.ErrInputFailure):
		return "input error: " + err.Error()
	case errors.Is(err, dsaerr.ErrParse):
		return "parse error: " + err.Error()
	case errors.Is(err, dsaerr.ErrSemantic):
		return "invalid request: " + err.Error()
	default:
		return err.Error()
	}
}

func settingsLines(p *params) []string {
	return []string{
		fmt.Sprintf("min_qual\t%c", p.MinQual),
		fmt.Sprintf("min_umi_grp\t%d", p.MinUMIGroup),
		fmt.Sprintf("min_overlap\t%d", p.MinOverlap),
		fmt.Sprintf("max_mismatch\t%d", p.MaxMismatch),
		fmt.Sprintf("min_aln\t%v", p.MinAlignment),
		fmt.Sprintf("skip_assembly\t%v", p.SkipAssembly),
		fmt.Sprintf("number_from\t%d", p.NumberFrom),
		fmt.Sprintf("show_codons\t%s", p.ShowCodons.String()),
	}
}
