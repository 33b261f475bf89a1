// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/broadinstitute/dsa/dsaerr"
)

// stringList implements flag.Value for a repeatable string-valued flag
// (-f/--fw_ref, -r/--rv_ref, -t/--template, -d/--template_dna,
// --template_db).
type stringList struct{ values []string }

func (s *stringList) String() string { return strings.Join(s.values, ",") }
func (s *stringList) Set(v string) error {
	s.values = append(s.values, v)
	return nil
}

// trimPair is one "L,R" value from a repeatable --trim flag.
type trimPair struct{ L, R int }

type trimList struct{ values []trimPair }

func (t *trimList) String() string {
	parts := make([]string, len(t.values))
	for i, p := range t.values {
		parts[i] = fmt.Sprintf("%d,%d", p.L, p.R)
	}
	return strings.Join(parts, ";")
}

func (t *trimList) Set(v string) error {
	fields := strings.SplitN(v, ",", 2)
	if len(fields) != 2 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--trim value %q must be of the form L,R", v)
	}
	l, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return dsaerr.Wrap(dsaerr.ErrArgValidation, errors.Wrapf(err, "--trim value %q", v))
	}
	r, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return dsaerr.Wrap(dsaerr.ErrArgValidation, errors.Wrapf(err, "--trim value %q", v))
	}
	if l < 0 || r < 0 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--trim value %q must be non-negative", v)
	}
	t.values = append(t.values, trimPair{L: l, R: r})
	return nil
}

// codonOutput is the --show_codons rendering mode.
type codonOutput int

const (
	codonNone codonOutput = iota
	codonAscii
	codonHorizontal
	codonVertical
)

func (c *codonOutput) String() string {
	switch *c {
	case codonAscii:
		return "ascii"
	case codonHorizontal:
		return "horizontal"
	case codonVertical:
		return "vertical"
	default:
		return "none"
	}
}

func (c *codonOutput) Set(v string) error {
	switch v {
	case "none", "":
		*c = codonNone
	case "ascii":
		*c = codonAscii
	case "horizontal":
		*c = codonHorizontal
	case "vertical":
		*c = codonVertical
	default:
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--show_codons value %q must be one of none|ascii|horizontal|vertical", v)
	}
	return nil
}

// params holds every parsed and validated CLI setting; it is the single
// value the core pipeline is driven from once flag parsing and validation
// complete.
type params struct {
	FwRefs        []string
	RvRefs        []string
	Templates     []string // aa strings, or "none" (no template for that column)
	TemplateDNAs  []string
	TemplateDBs   []string
	Trims         []trimPair
	Split         *regexp.Regexp
	MinQual       byte
	MinUMIGroup   int
	MinOverlap    int
	MaxMismatch   int
	MinAlignment  float64
	SkipAssembly  bool
	NumberFrom    int
	ShowCodons    codonOutput
	NoHeader      bool
	FwPath        string
	RvPath        string
}

// numTemplateSources returns how many template columns were configured
// across -t, -d, and --template_db (they are mutually exclusive per column
// but the flags are order-independent on the command line, so the count is
// their sum).
func (p *params) numTemplateSources() int {
	return len(p.Templates) + len(p.TemplateDNAs) + len(p.TemplateDBs)
}

// validate checks the cross-flag constraints from the CLI contract kind-1
// error surface (bad flag value, contradictory flags, mismatched counts).
func (p *params) validate() error {
	if p.MaxMismatch >= p.MinOverlap {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--max_mismatch (%d) must be less than --min_overlap (%d)", p.MaxMismatch, p.MinOverlap)
	}
	if p.MinUMIGroup < 1 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--min_umi_grp must be >= 1, got %d", p.MinUMIGroup)
	}
	if p.MinOverlap < 1 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--min_overlap must be >= 1, got %d", p.MinOverlap)
	}
	if p.MaxMismatch < 0 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--max_mismatch must be >= 0, got %d", p.MaxMismatch)
	}
	if p.MinAlignment < 0 || p.MinAlignment > 1 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--min_aln must be in [0,1], got %v", p.MinAlignment)
	}
	if p.NumberFrom < 0 {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--number_from must be >= 0, got %d", p.NumberFrom)
	}

	numSources := p.numTemplateSources()
	if len(p.Trims) != 0 && len(p.Trims) != numSources {
		return dsaerr.Errorf(dsaerr.ErrArgValidation, "--trim must appear exactly once per template source (%d sources, %d trims)", numSources, len(p.Trims))
	}

	if p.Split != nil {
		k := p.Split.NumSubexp()
		if k != numSources {
			return dsaerr.Errorf(dsaerr.ErrArgValidation, "--split has %d capture groups but %d template sources were given", k, numSources)
		}
	}

	if p.SkipAssembly {
		if numSources > 1 {
			return dsaerr.Errorf(dsaerr.ErrArgValidation, "--skip_assembly is incompatible with multiple template sources")
		}
		if p.Split != nil {
			return dsaerr.Errorf(dsaerr.ErrArgValidation, "--skip_assembly is incompatible with --split")
		}
	}

	return nil
}
