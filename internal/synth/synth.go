// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

// Package synth builds synthetic routing metadata for tests, benchmarks and
// examples: a random bin per row, tasks sorted by bin, and every bin padded
// up to a multiple of a block size.
package synth

import (
	"math/rand/v2"
	"slices"
)

// Routing has the same layout as permute.Metadata and converts to it
// directly: permute.Metadata(r).
type Routing struct {
	Indices    []int32
	BinIDs     []int32
	Bins       []int32
	PaddedBins []int32
}

// Route assigns each of rows to one of numBins bins uniformly at random.
func Route(rng *rand.Rand, rows, numBins, blockSize int) Routing {
	assign := make([]int32, rows)
	for i := range assign {
		assign[i] = int32(rng.IntN(numBins))
	}
	return FromAssignment(assign, numBins, blockSize)
}

// FromAssignment builds the routing for an explicit row -> bin assignment.
// Rows of the same bin keep their relative order. blockSize <= 1 means no
// padding.
func FromAssignment(assign []int32, numBins, blockSize int) Routing {
	blockSize = max(blockSize, 1)
	order := make([]int32, len(assign))
	for i := range order {
		order[i] = int32(i)
	}
	slices.SortStableFunc(order, func(a, b int32) int { return int(assign[a] - assign[b]) })

	r := Routing{
		Indices:    order,
		BinIDs:     make([]int32, len(assign)),
		Bins:       make([]int32, numBins),
		PaddedBins: make([]int32, numBins),
	}
	counts := make([]int32, numBins)
	for i, idx := range order {
		r.BinIDs[i] = assign[idx]
		counts[assign[idx]]++
	}

	block := int32(blockSize)
	var bins, padded int32
	for k, c := range counts {
		bins += c
		padded += (c + block - 1) / block * block
		r.Bins[k] = bins
		r.PaddedBins[k] = padded
	}
	return r
}
