// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/broadinstitute/dsa/polymer"
)

func dsaUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] fw.fastq rv.fastq\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "dsa assembles, translates, and aligns paired-end deep-sequencing reads\n")
	fmt.Fprintf(os.Stderr, "against one or more amino-acid or codon templates.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\n--split regex convention: one capture group per output column, matched\n")
	fmt.Fprintf(os.Stderr, "against the full translated ORF (the match must span the entire string).\n")
	fmt.Fprintf(os.Stderr, "Example: --split '(.+[YF][YF]C..)(.+WG.G)(.+)' divides an ORF ending in a\n")
	fmt.Fprintf(os.Stderr, "framework-2/CDR2/framework-3-style boundary into three template columns.\n\n")
	printCodonTable(os.Stderr)
}

// printCodonTable writes the standard genetic code as a 64-row codon/amino-
// acid table, the same reference table --help prints alongside usage.
func printCodonTable(w *os.File) {
	fmt.Fprintf(w, "Standard genetic code:\n")
	for i := 0; i < len(polymer.AllCdns); i++ {
		cdn := polymer.Cdn(polymer.AllCdns[i])
		a, b, c := cdn.Nucleotides()
		aa := polymer.StandardTranslationTable.Translate(cdn)
		fmt.Fprintf(w, "  %c%c%c -> %c\n", a.Byte(), b.Byte(), c.Byte(), aa.Byte())
	}
}
