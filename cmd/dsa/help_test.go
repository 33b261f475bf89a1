// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package main

import (
	"bufio"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCodonTableWritesAllSixtyFourCodons(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	done := make(chan []string, 1)
	go func() {
		var lines []string
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		done <- lines
	}()

	printCodonTable(w)
	require.NoError(t, w.Close())
	lines := <-done

	// one header line plus 64 codon rows
	require.Len(t, lines, 65)
	assert.Contains(t, lines[1], "->")
}
