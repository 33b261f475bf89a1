// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package templatedb

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"blainsmith.com/go/seahash"
	"github.com/pkg/errors"

	"github.com/broadinstitute/dsa/dsaerr"
	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/s3io"
)

// allelicVariant matches IMGT allelic-variant suffixes (e.g. "*02"-"*09")
// at the end of a label; entries whose label matches are silently skipped.
var allelicVariant = regexp.MustCompile(`\*0[2-9]$`)

// FromIMGTFasta parses a FASTA file of in-frame nucleotide templates with
// IMGT-style headers. A header is either a single token (the whole string
// after '>' is the label) or a '|'-delimited IMGT header (the label is the
// second field). Blank lines are skipped, CRLF line endings are stripped,
// and entries whose label denotes a minor allelic variant are dropped.
// Parsing an empty (post-filter) database is an error.
func FromIMGTFasta(path string) (*Database, error) {
	local, cleanup, err := s3io.Resolve(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	raw, err := os.ReadFile(local)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "templatedb: reading %s", path))
	}

	fingerprint := seahash.Sum64(raw)

	if cached, ok := loadCache(fingerprint); ok {
		return cached, nil
	}

	db, err := parseIMGTFasta(raw)
	if err != nil {
		// fmt.Errorf's %w (not errors.Wrapf, which pre-dates Unwrap in this
		// pinned pkg/errors version) keeps the inner *BadParseError's Is
		// method reachable from errors.Is(err, dsaerr.ErrParse).
		return nil, fmt.Errorf("templatedb: parsing %s: %w", path, err)
	}
	db.Fingerprint = fingerprint

	saveCache(fingerprint, db)
	return db, nil
}

func parseIMGTFasta(raw []byte) (*Database, error) {
	db := CreateEmpty()

	var label string
	var seq strings.Builder
	haveRecord := false

	flush := func() error {
		if !haveRecord {
			return nil
		}
		if !allelicVariant.MatchString(label) {
			nts := polymer.NewNts(seq.String())
			if nts.Len()%3 != 0 {
				return &BadParseError{Reason: "template \"" + label + "\" length is not a multiple of 3"}
			}
			cdns := nts.Pack()
			aas := cdns.Translate(polymer.StandardTranslationTable)
			db.AddEntry(label, cdns, aas)
		}
		seq.Reset()
		haveRecord = false
		return nil
	}

	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			header := line[1:]
			l, err := parseHeaderLabel(header)
			if err != nil {
				return nil, err
			}
			label = l
			haveRecord = true
			continue
		}
		seq.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrParse, errors.Wrap(err, "scanning template database"))
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if db.Size() == 0 {
		return nil, &BadParseError{Reason: "template database is empty"}
	}
	return db, nil
}

func parseHeaderLabel(header string) (string, error) {
	if !strings.Contains(header, "|") {
		if header == "" {
			return "", &BadParseError{Reason: "empty FASTA header"}
		}
		return header, nil
	}
	tokens := strings.Split(header, "|")
	if len(tokens) < 2 || tokens[1] == "" {
		return "", &BadParseError{Reason: "malformed IMGT header \"" + header + "\""}
	}
	return tokens[1], nil
}
