// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/ajroetker/megablocks-go/hwy"
)

// best returns the fastest result for each column count.
func best(results []result) map[int]result {
	byCols := lo.GroupBy(results, func(r result) int { return r.cols })
	return lo.MapValues(byCols, func(rs []result, _ int) result {
		return lo.MinBy(rs, func(a, b result) bool { return a.perTrip < b.perTrip })
	})
}

func report(w io.Writer, o *options, results []result) error {
	winners := best(results)

	fmt.Fprintf(w, "simd=%s width=%dB dtype=%s rows=%d bins=%d block=%d\n\n",
		hwy.CurrentName(), hwy.CurrentWidth(), o.dtype, o.rows, o.bins, o.block)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COLS\tCHUNK\tGRAIN\tROUND TRIP\tGB/s\t")
	for _, r := range results {
		mark := ""
		if winners[r.cols] == r {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%v\t%.2f\t%s\n",
			r.cols, r.cand.chunk, r.cand.grain, r.perTrip, r.bytesPerSec()/1e9, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, cols := range o.cols {
		if r, ok := winners[cols]; ok {
			fmt.Fprintf(w, "cols=%d: PERMUTE_CHUNK_WIDTH=%d PERMUTE_GRAIN=%d\n", cols, r.cand.chunk, r.cand.grain)
		}
	}
	return nil
}
