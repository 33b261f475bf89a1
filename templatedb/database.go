// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package templatedb implements the template database: an ordered,
// 1-indexed collection of (label, codons, amino acids) entries parsed from
// an IMGT-style FASTA file or built programmatically, used by the
// multi-template aligner to select and score candidate templates.
package templatedb

import (
	"fmt"

	"github.com/broadinstitute/dsa/dsaerr"
	"github.com/broadinstitute/dsa/polymer"
)

// NotFound is the sentinel 1-based index meaning "no entry".
const NotFound = 0

// DefaultGapPenalty is the interior gap penalty the multi-template aligner
// passes to the Needleman-Wunsch aligner when scoring and aligning a query
// against database entries (see pipeline.AlignToMultipleTemplates).
const DefaultGapPenalty int32 = 4

// Entry is one template database record.
type Entry struct {
	Label string
	Cdns  polymer.Cdns
	Aas   polymer.Aas
}

// ExcessiveTrimmingError reports a trim request that would remove an
// entire (or more than an entire) template entry.
type ExcessiveTrimmingError struct {
	Label   string
	Trim    [2]int
	AaCount int
}

func (e *ExcessiveTrimmingError) Error() string {
	return fmt.Sprintf("templatedb: trim (%d,%d) removes all %d residues of template %q",
		e.Trim[0], e.Trim[1], e.AaCount, e.Label)
}

// Is reports whether target is dsaerr.ErrSemantic, so callers can classify
// this error with errors.Is without losing the concrete type needed by
// errors.As.
func (e *ExcessiveTrimmingError) Is(target error) bool { return target == dsaerr.ErrSemantic }

// BadParseError reports a malformed FASTA template database.
type BadParseError struct {
	Reason string
}

func (e *BadParseError) Error() string { return "templatedb: " + e.Reason }

// Is reports whether target is dsaerr.ErrParse.
func (e *BadParseError) Is(target error) bool { return target == dsaerr.ErrParse }

// Database is an ordered, 1-indexed collection of template entries.
type Database struct {
	entries     []Entry
	gapPenalty  int32
	Fingerprint uint64 // seahash of the source file, 0 if built programmatically
}

// CreateEmpty returns a Database with no entries and the default gap
// penalty, ready to be populated with AddEntry.
func CreateEmpty() *Database {
	return &Database{gapPenalty: DefaultGapPenalty}
}

// AddEntry appends a new entry.
func (db *Database) AddEntry(label string, cdns polymer.Cdns, aas polymer.Aas) {
	db.entries = append(db.entries, Entry{Label: label, Cdns: cdns, Aas: aas})
}

// Size returns the number of entries.
func (db *Database) Size() int { return len(db.entries) }

// CodonDataAvailable reports whether the first entry carries non-empty
// codon data (the convention the whole database follows).
func (db *Database) CodonDataAvailable() bool {
	return len(db.entries) > 0 && !db.entries[0].Cdns.Empty()
}

// GapPenalty returns the database's gap-extension penalty (DefaultGapPenalty
// for every database built by this package). The multi-template aligner
// does not read it; it uses DefaultGapPenalty directly.
func (db *Database) GapPenalty() int32 { return db.gapPenalty }

// Get returns the 1-based i-th entry.
func (db *Database) Get(i int) Entry { return db.entries[i-1] }

// Label returns the 1-based i-th entry's label.
func (db *Database) Label(i int) string { return db.entries[i-1].Label }

// Entries returns all entries, 0-indexed, for iteration.
func (db *Database) Entries() []Entry { return db.entries }

// Trim removes l residues from the start and r from the end of every
// entry's amino-acid and codon sequences. It returns an ExcessiveTrimmingError
// without modifying db if any entry is too short.
func (db *Database) Trim(l, r int) error {
	for _, e := range db.entries {
		if l+r >= e.Aas.Len() {
			return &ExcessiveTrimmingError{Label: e.Label, Trim: [2]int{l, r}, AaCount: e.Aas.Len()}
		}
	}
	for i := range db.entries {
		db.entries[i].Aas.Exo(l, r)
		if !db.entries[i].Cdns.Empty() {
			db.entries[i].Cdns.Exo(l, r)
		}
	}
	return nil
}
