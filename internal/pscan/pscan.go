// Package pscan provides the flag/prefix-sum/offset primitives spec §5
// names as "the foundation of all parallel kernels": flag a per-term
// boolean predicate, prefix-sum it into destination offsets, then let each
// element write to its own offset with no shared mutable state. It adapts
// the in-place, dependency-aware scan style of
// hwy/contrib/algo/prefix_sum.go's DeltaEncode (documented loop-carried-
// dependency reasoning, generic over an integer element type) to the
// exclusive boolean-flag scan the dense Pauli-sum kernels need, which the
// source file didn't itself implement.
package pscan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minParallelSize is the point past which splitting the scan across
// goroutines pays for the synchronization overhead it adds.
const minParallelSize = 256

// Flags2Offsets computes, for each i, the number of true values in
// flags[0:i) — an exclusive prefix sum of the boolean flags — into offsets,
// and returns the total count of true flags. This is the destination-offset
// computation every dense-form kernel (split, merge, truncate) builds on.
func Flags2Offsets(flags []bool, offsets []int) int {
	total := 0
	for i, f := range flags {
		offsets[i] = total
		if f {
			total++
		}
	}
	return total
}

// ParallelFlags2Offsets computes the same exclusive prefix sum as
// Flags2Offsets, splitting the work across workers goroutines with a
// two-pass chunked scan: each worker computes a local exclusive scan and
// its chunk total, a sequential pass turns chunk totals into base offsets
// (this step cannot be parallelized: it has a loop-carried dependency, the
// same reason DeltaEncode fell back to a scalar pass), then each worker
// adds its base back into its chunk. Below minParallelSize*workers elements
// it falls back to the sequential Flags2Offsets outright.
func ParallelFlags2Offsets(ctx context.Context, flags []bool, offsets []int, workers int) (int, error) {
	n := len(flags)
	if workers < 1 {
		workers = 1
	}
	if n == 0 || workers == 1 || n < workers*minParallelSize {
		return Flags2Offsets(flags, offsets), nil
	}

	chunkSize := (n + workers - 1) / workers
	chunkTotals := make([]int, workers)

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start, end := chunkBounds(w, chunkSize, n)
		if start >= end {
			continue
		}
		g.Go(func() error {
			total := 0
			for i := start; i < end; i++ {
				offsets[i] = total
				if flags[i] {
					total++
				}
			}
			chunkTotals[w] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	bases := make([]int, workers)
	running := 0
	for w := 0; w < workers; w++ {
		bases[w] = running
		running += chunkTotals[w]
	}

	g2, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start, end := chunkBounds(w, chunkSize, n)
		base := bases[w]
		if start >= end || base == 0 {
			continue
		}
		g2.Go(func() error {
			for i := start; i < end; i++ {
				offsets[i] += base
			}
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return 0, err
	}
	return running, nil
}

func chunkBounds(worker, chunkSize, n int) (int, int) {
	start := worker * chunkSize
	end := start + chunkSize
	if end > n {
		end = n
	}
	return start, end
}

// ParallelFor runs fn(i) for every i in [0, n) across workers goroutines,
// in contiguous chunks (each kernel index writes only its own output slot,
// per §5's "no partial publication" rule, so no further synchronization is
// needed between chunks).
func ParallelFor(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers < 1 {
		workers = 1
	}
	if n == 0 || workers == 1 || n < workers*minParallelSize {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return nil
	}
	chunkSize := (n + workers - 1) / workers
	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start, end := chunkBounds(w, chunkSize, n)
		if start >= end {
			continue
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}
