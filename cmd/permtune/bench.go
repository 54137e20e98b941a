// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/samber/lo"
	"github.com/x448/float16"
	"k8s.io/klog/v2"

	"github.com/ajroetker/megablocks-go/hwy"
	"github.com/ajroetker/megablocks-go/hwy/contrib/permute"
	"github.com/ajroetker/megablocks-go/hwy/contrib/workerpool"
	"github.com/ajroetker/megablocks-go/internal/synth"
)

type candidate struct {
	chunk, grain int
}

type result struct {
	cols     int
	cand     candidate
	perTrip  time.Duration // one gather plus one scatter
	elemSize int
	rows     int
}

// bytesPerSec counts the bytes read and written by one round trip.
func (r result) bytesPerSec() float64 {
	if r.perTrip <= 0 {
		return 0
	}
	moved := 4 * r.rows * r.cols * r.elemSize
	return float64(moved) / r.perTrip.Seconds()
}

func candidates(chunks, grains []int) []candidate {
	return lo.FlatMap(chunks, func(chunk int, _ int) []candidate {
		return lo.Map(grains, func(grain int, _ int) candidate {
			return candidate{chunk: chunk, grain: grain}
		})
	})
}

func run(o *options) ([]result, error) {
	switch o.dtype {
	case "f64":
		return measure(o, func(i int) float64 { return float64(i) })
	case "f16":
		return measure(o, func(i int) float16.Float16 { return float16.Fromfloat32(float32(i % 2048)) })
	case "i8":
		return measure(o, func(i int) int8 { return int8(i) })
	default:
		return measure(o, func(i int) float32 { return float32(i) })
	}
}

func measure[T hwy.Lanes](o *options, conv func(int) T) ([]result, error) {
	pool := workerpool.New(o.workers)
	defer pool.Close()

	rng := rand.New(rand.NewPCG(o.seed, o.seed))
	md := permute.Metadata(synth.Route(rng, o.rows, o.bins, o.block))
	klog.V(1).Infof("routing: %d rows over %d bins, %d padded rows, simd=%s width=%dB",
		o.rows, o.bins, md.PaddedRows(), hwy.CurrentName(), hwy.CurrentWidth())

	var results []result
	for _, cols := range o.cols {
		x := make([]T, o.rows*cols)
		for i := range x {
			x[i] = conv(i)
		}
		padded := make([]T, md.PaddedRows()*cols)
		back := make([]T, len(x))

		for _, c := range candidates(o.chunks, o.grains) {
			popts := []permute.Option{
				permute.WithPool(pool),
				permute.WithChunkWidth(c.chunk),
				permute.WithGrain(c.grain),
				permute.WithMinParallelElems(0),
			}

			// The first trip warms caches and checks the result.
			if err := roundTrip(x, cols, md, padded, back, popts); err != nil {
				return nil, err
			}
			if !slices.Equal(x, back) {
				return nil, fmt.Errorf("cols=%d chunk=%d grain=%d: scatter did not restore the input", cols, c.chunk, c.grain)
			}

			start := time.Now()
			for range o.iters {
				if err := roundTrip(x, cols, md, padded, back, popts); err != nil {
					return nil, err
				}
			}
			r := result{
				cols:     cols,
				cand:     c,
				perTrip:  time.Since(start) / time.Duration(o.iters),
				elemSize: hwy.SizeOf[T](),
				rows:     o.rows,
			}
			klog.V(2).Infof("cols=%d chunk=%d grain=%d: %v per round trip", cols, c.chunk, c.grain, r.perTrip)
			results = append(results, r)
		}
	}
	return results, nil
}

func roundTrip[T hwy.Lanes](x []T, cols int, md permute.Metadata, padded, back []T, opts []permute.Option) error {
	if err := permute.GatherInto(x, cols, md, padded, opts...); err != nil {
		return err
	}
	return permute.ScatterInto(padded, cols, md, back, opts...)
}
