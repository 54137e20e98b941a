// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import (
	"k8s.io/klog/v2"

	"github.com/ajroetker/megablocks-go/hwy"
)

// Gather moves the rows of the unpadded matrix x into a new padded,
// bin-ordered matrix with md.PaddedRows() rows and x.Cols columns.
//
// Padding rows of the result are zero. Metadata is assumed to satisfy the
// contract described in Metadata.Check; only lengths are validated unless
// debug checks are enabled.
func Gather[T hwy.Lanes](x Matrix[T], md Metadata, opts ...Option) (Matrix[T], error) {
	cfg := newConfig(opts)
	if err := validateGather(x, md, cfg); err != nil {
		return Matrix[T]{}, err
	}
	out := NewMatrix[T](md.PaddedRows(), x.Cols)
	paddedCopy(x, out, md, aToB, cfg, "gather")
	return out, nil
}

// Scatter moves the real rows of the padded matrix x back to their
// unpadded positions and returns a new matrix with md.NumTasks() rows and
// x.Cols columns. Padding rows of x are never read.
func Scatter[T hwy.Lanes](x Matrix[T], md Metadata, opts ...Option) (Matrix[T], error) {
	cfg := newConfig(opts)
	if err := validateScatter(x, md, cfg); err != nil {
		return Matrix[T]{}, err
	}
	out := NewMatrix[T](md.NumTasks(), x.Cols)
	paddedCopy(out, x, md, bToA, cfg, "scatter")
	return out, nil
}

// GatherInto is Gather writing into a caller-owned padded buffer out of
// md.PaddedRows()*cols elements. x holds md.NumTasks()*cols elements.
// Padding rows of out are cleared, so out may be reused across calls.
func GatherInto[T hwy.Lanes](x []T, cols int, md Metadata, out []T, opts ...Option) error {
	cfg := newConfig(opts)
	if cols < 0 {
		return shapeErrorf("negative column count %d", cols)
	}
	src := Matrix[T]{Data: x, Rows: md.NumTasks(), Cols: cols}
	if err := validateGather(src, md, cfg); err != nil {
		return err
	}
	dst := Matrix[T]{Data: out, Rows: md.PaddedRows(), Cols: cols}
	if err := dst.validate("padded output"); err != nil {
		return err
	}
	zeroPadding(dst.Data, dst.Rows, cols, md)
	paddedCopy(src, dst, md, aToB, cfg, "gather")
	return nil
}

// ScatterInto is Scatter writing into a caller-owned unpadded buffer out of
// md.NumTasks()*cols elements. x holds the padded rows and must be a whole
// number of rows of at least md.PaddedRows().
func ScatterInto[T hwy.Lanes](x []T, cols int, md Metadata, out []T, opts ...Option) error {
	cfg := newConfig(opts)
	if cols < 0 {
		return shapeErrorf("negative column count %d", cols)
	}
	rows := md.PaddedRows()
	if cols > 0 {
		if len(x)%cols != 0 {
			return shapeErrorf("padded input length %d is not a multiple of %d columns", len(x), cols)
		}
		rows = len(x) / cols
	}
	src := Matrix[T]{Data: x, Rows: rows, Cols: cols}
	if err := validateScatter(src, md, cfg); err != nil {
		return err
	}
	dst := Matrix[T]{Data: out, Rows: md.NumTasks(), Cols: cols}
	if err := dst.validate("unpadded output"); err != nil {
		return err
	}
	paddedCopy(dst, src, md, bToA, cfg, "scatter")
	return nil
}

func validateGather[T hwy.Lanes](x Matrix[T], md Metadata, cfg Config) error {
	if err := x.validate("unpadded input"); err != nil {
		return err
	}
	if err := md.validate(); err != nil {
		return err
	}
	if err := assertEqual("len(indices) vs unpadded rows", len(md.Indices), x.Rows); err != nil {
		return err
	}
	if err := assertEqual("len(bin_ids) vs unpadded rows", len(md.BinIDs), x.Rows); err != nil {
		return err
	}
	if cfg.Debug {
		return md.Check(x.Rows)
	}
	return nil
}

func validateScatter[T hwy.Lanes](x Matrix[T], md Metadata, cfg Config) error {
	if err := x.validate("padded input"); err != nil {
		return err
	}
	if err := md.validate(); err != nil {
		return err
	}
	if x.Rows < md.PaddedRows() {
		return shapeErrorf("padded input has %d rows, padded_bins needs %d", x.Rows, md.PaddedRows())
	}
	if cfg.Debug {
		return md.Check(md.NumTasks())
	}
	return nil
}

// paddedCopy runs one row task per entry of md between the unpadded matrix
// a and the padded matrix b, in direction dir.
func paddedCopy[T hwy.Lanes](a, b Matrix[T], md Metadata, dir direction, cfg Config, op string) {
	p := &copyPlan[T]{
		bufs:  [2][]T{a.Data, b.Data},
		rows:  [2]int{a.Rows, b.Rows},
		cols:  a.Cols,
		chunk: chunkWidth[T](cfg),
		dir:   dir,
		md:    md,
	}
	if v := klog.V(2); v.Enabled() {
		v.Infof("permute: %s %d rows x %d cols, %d bins, %d padded rows (chunk=%d grain=%d simd=%s)",
			op, md.NumTasks(), p.cols, md.NumBins(), md.PaddedRows(), p.chunk, cfg.Grain, hwy.CurrentLevel())
	}
	if skipped := p.run(cfg); skipped > 0 {
		klog.Warningf("permute: %s skipped %d of %d rows addressed outside their buffers; metadata violates the permutation contract",
			op, skipped, md.NumTasks())
	}
}
