// Copyright 2024 The Broad Institute of MIT and Harvard. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package pipeline

import (
	"runtime"
	"sync"
)

// numWorkers returns the partition count for a parallel stage: hardware
// thread count, the direct analogue of std::thread::hardware_concurrency().
func numWorkers() int { return runtime.NumCPU() }

// partition splits [0, n) into up to numWorkers() contiguous, roughly equal
// chunks, mirroring the reference implementation's "batch = n / thread_count"
// partitioning. Fewer items than workers collapses to a single chunk.
func partition(n int) [][2]int {
	workers := numWorkers()
	if workers < 1 {
		workers = 1
	}
	batch := n / workers
	if batch == 0 {
		if n == 0 {
			return nil
		}
		return [][2]int{{0, n}}
	}
	chunks := make([][2]int, 0, workers)
	lo := 0
	for i := 0; i < workers-1; i++ {
		hi := lo + batch
		chunks = append(chunks, [2]int{lo, hi})
		lo = hi
	}
	chunks = append(chunks, [2]int{lo, n})
	return chunks
}

// parallelForEach runs f(i) for every index in [0, n), partitioned across
// goroutines, matching parallel_for_each's per-worker sequential-for-loop
// semantics.
func parallelForEach(n int, f func(i int)) {
	chunks := partition(n)
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, c := range chunks {
		c := c
		go func() {
			defer wg.Done()
			for i := c[0]; i < c[1]; i++ {
				f(i)
			}
		}()
	}
	wg.Wait()
}

// parallelTransformFilter runs tf(i, &localLog) for every index in [0, n),
// keeping the results for which tf reports ok (in original order, concatenated by
// partition) and summing the per-worker ParseLogs into log. This is the
// direct analogue of parallel_transform_filter.
func parallelTransformFilter[T any](n int, log *ParseLog, tf func(i int, log *ParseLog) (T, bool)) []T {
	chunks := partition(n)
	fragments := make([][]T, len(chunks))
	logs := make([]ParseLog, len(chunks))

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for ci, c := range chunks {
		ci, c := ci, c
		go func() {
			defer wg.Done()
			frag := make([]T, 0, c[1]-c[0])
			var localLog ParseLog
			for i := c[0]; i < c[1]; i++ {
				if v, ok := tf(i, &localLog); ok {
					frag = append(frag, v)
				}
			}
			fragments[ci] = frag
			logs[ci] = localLog
		}()
	}
	wg.Wait()

	total := 0
	for _, f := range fragments {
		total += len(f)
	}
	out := make([]T, 0, total)
	for _, f := range fragments {
		out = append(out, f...)
	}
	for _, l := range logs {
		*log = log.Add(l)
	}
	return out
}

// parallelReduce runs f over each partition of [0, n) and combines the
// per-partition results with combine, matching parallel_reduce.
func parallelReduce[T any](n int, zero T, f func(lo, hi int) T, combine func(a, b T) T) T {
	chunks := partition(n)
	if len(chunks) == 0 {
		return zero
	}
	results := make([]T, len(chunks))
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for ci, c := range chunks {
		ci, c := ci, c
		go func() {
			defer wg.Done()
			results[ci] = f(c[0], c[1])
		}()
	}
	wg.Wait()

	acc := results[0]
	for _, r := range results[1:] {
		acc = combine(acc, r)
	}
	return acc
}
