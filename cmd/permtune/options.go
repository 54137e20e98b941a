// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// dtypes lists the element types permtune can benchmark.
var dtypes = []string{"f32", "f64", "f16", "i8"}

type options struct {
	rows    int
	cols    []int
	bins    int
	block   int
	dtype   string
	workers int
	iters   int
	chunks  []int
	grains  []int
	seed    uint64
}

// defaultOptions uses the usual GPU tuning grid: chunk widths 64/128/256
// and 2 or 4 rows per batch.
func defaultOptions() *options {
	return &options{
		rows:   4096,
		cols:   []int{512, 1024, 2048, 4096},
		bins:   8,
		block:  128,
		dtype:  "f32",
		iters:  20,
		chunks: []int{64, 128, 256},
		grains: []int{2, 4},
		seed:   1,
	}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.rows, "rows", o.rows, "number of unpadded rows (tokens)")
	fs.IntSliceVar(&o.cols, "cols", o.cols, "row widths (hidden sizes) to benchmark")
	fs.IntVar(&o.bins, "bins", o.bins, "number of bins (experts)")
	fs.IntVar(&o.block, "block", o.block, "pad every bin to a multiple of this many rows")
	fs.StringVar(&o.dtype, "dtype", o.dtype, fmt.Sprintf("element type, one of %v", dtypes))
	fs.IntVar(&o.workers, "workers", o.workers, "worker pool size, 0 for GOMAXPROCS")
	fs.IntVar(&o.iters, "iters", o.iters, "timed gather+scatter round trips per configuration")
	fs.IntSliceVar(&o.chunks, "chunks", o.chunks, "chunk widths (elements) to try")
	fs.IntSliceVar(&o.grains, "grains", o.grains, "rows per work batch to try (0 splits rows evenly across workers)")
	fs.Uint64Var(&o.seed, "seed", o.seed, "seed for the synthetic routing")
}

func (o *options) validate() error {
	positive := func(v int) bool { return v > 0 }
	switch {
	case o.rows < 0:
		return fmt.Errorf("--rows must be >= 0, got %d", o.rows)
	case o.bins <= 0:
		return fmt.Errorf("--bins must be > 0, got %d", o.bins)
	case o.block <= 0:
		return fmt.Errorf("--block must be > 0, got %d", o.block)
	case o.iters <= 0:
		return fmt.Errorf("--iters must be > 0, got %d", o.iters)
	case len(o.cols) == 0 || !lo.EveryBy(o.cols, positive):
		return fmt.Errorf("--cols must list positive widths, got %v", o.cols)
	case len(o.chunks) == 0 || !lo.EveryBy(o.chunks, positive):
		return fmt.Errorf("--chunks must list positive widths, got %v", o.chunks)
	case len(o.grains) == 0 || lo.SomeBy(o.grains, func(g int) bool { return g < 0 }):
		return fmt.Errorf("--grains must list sizes >= 0, got %v", o.grains)
	case !slices.Contains(dtypes, o.dtype):
		return fmt.Errorf("--dtype must be one of %v, got %q", dtypes, o.dtype)
	}
	o.cols = lo.Uniq(o.cols)
	return nil
}
