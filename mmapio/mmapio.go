// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

// Package mmapio memory-maps FASTQ files (or transparently inflates
// gzip-compressed ones) and parses them into pipeline.Read values, chunked
// and parallelized across CPU cores with safe record-boundary seeking, per
// the reference implementation's ConstMapping/next_lines/seek_next.
package mmapio

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/yasushi-saito/zlibng"
	"golang.org/x/sys/unix"

	"github.com/broadinstitute/dsa/dsaerr"
	"github.com/broadinstitute/dsa/pipeline"
	"github.com/broadinstitute/dsa/polymer"
	"github.com/broadinstitute/dsa/s3io"
)

// mapping is a read-only view of a file's bytes, backed either by an mmap
// or (for gzip inputs) a plain inflated buffer.
type mapping struct {
	data   []byte
	unmap  func() error
}

func mapFile(path string) (*mapping, error) {
	if strings.HasSuffix(path, ".gz") {
		return inflateFile(path)
	}
	return mmapFile(path)
}

func mmapFile(path string) (*mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: open %s", path))
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: stat %s", path))
	}
	size := fi.Size()
	if size == 0 {
		return &mapping{data: nil, unmap: func() error { return nil }}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: mmap %s", path))
	}
	return &mapping{data: data, unmap: func() error { return unix.Munmap(data) }}, nil
}

func inflateFile(path string) (*mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: open %s", path))
	}
	defer f.Close()

	zr, err := zlibng.NewReader(f)
	if err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: gzip header in %s", path))
	}
	defer zr.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(zr); err != nil {
		return nil, dsaerr.Wrap(dsaerr.ErrInputFailure, errors.Wrapf(err, "mmapio: inflating %s", path))
	}
	data := buf.Bytes()
	return &mapping{data: data, unmap: func() error { return nil }}, nil
}

// Load memory-maps (or inflates) path and parses it as a FASTQ file,
// returning one Read per record. Malformed records (invalid nucleotide
// bytes, or a sequence/quality length mismatch) are emitted as empty Reads
// rather than dropped, preserving positional correspondence between a
// forward and reverse file pair.
func Load(path string) ([]pipeline.Read, error) {
	local, cleanup, err := s3io.Resolve(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	m, err := mapFile(local)
	if err != nil {
		return nil, err
	}
	defer m.unmap()

	return parseFastq(m.data), nil
}

// parseFastq partitions data into runtime.NumCPU() chunks, advances each
// interior boundary to the next record start, parses each chunk
// concurrently, and concatenates the results in chunk order.
func parseFastq(data []byte) []pipeline.Read {
	if len(data) == 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	batch := len(data) / workers
	if batch == 0 {
		return parseChunk(data, 0, len(data))
	}

	bounds := make([]int, workers+1)
	bounds[0] = 0
	bounds[workers] = len(data)
	lo := 0
	for i := 1; i < workers; i++ {
		lo += batch
		bounds[i] = seekNext(lo, 0, data)
	}

	fragments := make([][]pipeline.Read, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		i := i
		go func() {
			defer wg.Done()
			fragments[i] = parseChunk(data, bounds[i], bounds[i+1])
		}()
	}
	wg.Wait()

	total := 0
	for _, f := range fragments {
		total += len(f)
	}
	out := make([]pipeline.Read, 0, total)
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}

// nextLines returns the position just after the (n+1)-th newline found at
// or after cur, or end if fewer than n+1 newlines remain. This is a direct
// port of the reference implementation's next_lines.
func nextLines(cur, n int, data []byte) int {
	count := 0
	for ; cur != len(data); cur++ {
		if data[cur] == '\n' {
			if count == n {
				return cur + 1
			}
			count++
		}
	}
	return len(data)
}

// seekNext advances cur to the start of the next FASTQ record by scanning
// for a bare "+" separator line (a '+' both preceded and followed by a
// newline) and skipping past the quality line that follows it. Direct port
// of the reference implementation's seek_next.
func seekNext(cur, begin int, data []byte) int {
	end := len(data)
	for ; cur != end; cur++ {
		if data[cur] == '+' {
			if cur+1 == end {
				return end
			}
			if cur != begin && data[cur-1] == '\n' && data[cur+1] == '\n' {
				return nextLines(cur, 1, data)
			}
		}
	}
	return end
}

func lineEnd(data []byte, from int) int {
	for i := from; i < len(data); i++ {
		if data[i] == '\n' {
			return i
		}
	}
	return len(data)
}

// parseChunk parses whole FASTQ records in [lo, hi) into Reads.
func parseChunk(data []byte, lo, hi int) []pipeline.Read {
	var reads []pipeline.Read
	cur := lo
	for cur < hi {
		// header line (discarded)
		headerEnd := lineEnd(data, cur)
		cur = headerEnd + 1
		if cur > hi {
			break
		}

		seqStart := cur
		seqEnd := lineEnd(data, cur)
		seq := data[seqStart:seqEnd]
		cur = seqEnd + 1

		// '+' separator line (discarded)
		plusEnd := lineEnd(data, cur)
		cur = plusEnd + 1

		qualStart := cur
		qualEnd := lineEnd(data, cur)
		qual := data[qualStart:qualEnd]
		cur = qualEnd + 1

		stripped := 0
		dna := make([]byte, 0, len(seq))
		for _, b := range seq {
			if v, ok := polymer.NormalizeNt(b); ok {
				dna = append(dna, byte(v))
			} else {
				stripped++
			}
		}

		if stripped != 0 || len(dna) != len(qual) {
			reads = append(reads, pipeline.Read{})
			continue
		}

		q := make([]byte, len(qual))
		copy(q, qual)
		reads = append(reads, pipeline.Read{
			UMIGroupSize: 1,
			Dna:          polymer.NewNts(string(dna)),
			Qual:         q,
		})
	}
	return reads
}
