// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package templatedb

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/broadinstitute/dsa/polymer"
)

// gobEntry mirrors Entry with exported fields the encoding/gob codec can see
// (polymer.Cdns/Aas already export none of their internals, so we flatten to
// raw bytes for the cache format).
type gobEntry struct {
	Label string
	Cdns  []byte
	Aas   []byte
}

type gobDatabase struct {
	Entries     []gobEntry
	Fingerprint uint64
}

// cacheDir is where parsed template databases are cached, keyed by the
// seahash fingerprint of their source file. Overridable in tests.
var cacheDir = filepath.Join(os.TempDir(), "dsa-templatedb-cache")

func cachePath(fingerprint uint64) string {
	return filepath.Join(cacheDir, fmt.Sprintf("%016x.zst", fingerprint))
}

// loadCache returns the previously parsed Database for fingerprint, if a
// valid cache entry exists on disk.
func loadCache(fingerprint uint64) (*Database, bool) {
	f, err := os.Open(cachePath(fingerprint))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer zr.Close()

	var gd gobDatabase
	if err := gob.NewDecoder(zr).Decode(&gd); err != nil {
		return nil, false
	}
	if gd.Fingerprint != fingerprint {
		return nil, false
	}

	db := CreateEmpty()
	db.Fingerprint = gd.Fingerprint
	for _, ge := range gd.Entries {
		cdns := polymer.NewCdns(string(ge.Cdns))
		aas := polymer.NewAas(string(ge.Aas))
		db.AddEntry(ge.Label, cdns, aas)
	}
	return db, true
}

// saveCache writes db to the on-disk cache under its fingerprint. Failures
// are non-fatal: the cache is a pure optimization, never a correctness
// dependency.
func saveCache(fingerprint uint64, db *Database) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return
	}

	gd := gobDatabase{Fingerprint: fingerprint}
	for _, e := range db.entries {
		gd.Entries = append(gd.Entries, gobEntry{
			Label: e.Label,
			Cdns:  e.Cdns.Bytes(),
			Aas:   e.Aas.Bytes(),
		})
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return
	}
	if err := gob.NewEncoder(zw).Encode(gd); err != nil {
		zw.Close()
		return
	}
	if err := zw.Close(); err != nil {
		return
	}

	tmp := cachePath(fingerprint) + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return
	}
	os.Rename(tmp, cachePath(fingerprint))
}
