// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

// Metadata describes one padded permutation. It is produced by the routing
// step and is never modified by this package.
type Metadata struct {
	// Indices[i] is the unpadded row handled by task i.
	Indices []int32
	// BinIDs[i] is the bin of task i. Tasks of one bin must be contiguous.
	BinIDs []int32
	// Bins[k] is the cumulative number of real rows in bins 0..k.
	Bins []int32
	// PaddedBins[k] is the cumulative number of padded rows in bins 0..k.
	PaddedBins []int32
}

// NumTasks returns the number of unpadded rows, T.
func (md Metadata) NumTasks() int {
	return len(md.Indices)
}

// NumBins returns the number of bins, E.
func (md Metadata) NumBins() int {
	return len(md.Bins)
}

// PaddedRows returns the number of rows in the padded buffer,
// PaddedBins[E-1], or 0 when there are no bins.
func (md Metadata) PaddedRows() int {
	if len(md.PaddedBins) == 0 {
		return 0
	}
	return int(md.PaddedBins[len(md.PaddedBins)-1])
}

// validate checks the vector lengths shared by both directions.
func (md Metadata) validate() error {
	if err := assertEqual("len(indices) vs len(bin_ids)", len(md.Indices), len(md.BinIDs)); err != nil {
		return err
	}
	if err := assertEqual("len(bins) vs len(padded_bins)", len(md.Bins), len(md.PaddedBins)); err != nil {
		return err
	}
	if len(md.Indices) > 0 && len(md.Bins) == 0 {
		return shapeErrorf("%d rows but no bins", len(md.Indices))
	}
	if md.PaddedRows() < 0 {
		return shapeErrorf("negative padded row count %d", md.PaddedRows())
	}
	return nil
}

// paddedRow returns the padded row of task i and whether it could be
// computed. It is false only for metadata that breaks the contract with an
// out of range bin id.
func (md Metadata) paddedRow(i int) (int, bool) {
	k := int(md.BinIDs[i])
	if k <= 0 {
		return i, k == 0
	}
	if k > len(md.Bins) {
		return 0, false
	}
	return i - int(md.Bins[k-1]) + int(md.PaddedBins[k-1]), true
}

// Check verifies that md describes a valid padded permutation of rows
// unpadded rows:
//
//   - every Indices entry is in [0, rows) and appears once;
//   - Bins and PaddedBins are non-negative and non-decreasing, with
//     Bins[E-1] == len(Indices);
//   - every bin's padded capacity is at least its real row count;
//   - BinIDs are in [0, E) and task i lies inside its bin's range
//     [Bins[k-1], Bins[k]), which also implies BinIDs is non-decreasing.
//
// The kernels never call Check on their own; it runs before dispatch when
// debug checks are enabled. The returned error wraps ErrContract, or
// ErrShape if the lengths are already inconsistent.
func (md Metadata) Check(rows int) error {
	if err := md.validate(); err != nil {
		return err
	}
	if err := assertEqual("unpadded rows vs len(indices)", rows, len(md.Indices)); err != nil {
		return err
	}

	var prevBin, prevPadded int32
	for k := range md.Bins {
		b, p := md.Bins[k], md.PaddedBins[k]
		if b < prevBin {
			return contractErrorf("bins[%d] = %d decreases from %d", k, b, prevBin)
		}
		if p < prevPadded {
			return contractErrorf("padded_bins[%d] = %d decreases from %d", k, p, prevPadded)
		}
		if p-prevPadded < b-prevBin {
			return contractErrorf("bin %d has %d rows but padded capacity %d", k, b-prevBin, p-prevPadded)
		}
		prevBin, prevPadded = b, p
	}
	if len(md.Bins) > 0 && int(prevBin) != len(md.Indices) {
		return contractErrorf("bins[%d] = %d, want %d rows", len(md.Bins)-1, prevBin, len(md.Indices))
	}

	seen := make([]bool, rows)
	for i, idx := range md.Indices {
		if idx < 0 || int(idx) >= rows {
			return contractErrorf("indices[%d] = %d out of range [0, %d)", i, idx, rows)
		}
		if seen[idx] {
			return contractErrorf("indices[%d] = %d repeats an earlier entry", i, idx)
		}
		seen[idx] = true

		k := md.BinIDs[i]
		if k < 0 || int(k) >= len(md.Bins) {
			return contractErrorf("bin_ids[%d] = %d out of range [0, %d)", i, k, len(md.Bins))
		}
		var start int32
		if k > 0 {
			start = md.Bins[k-1]
		}
		if int32(i) < start || int32(i) >= md.Bins[k] {
			return contractErrorf("task %d has bin %d but bin %d spans tasks [%d, %d)", i, k, k, start, md.Bins[k])
		}
	}
	return nil
}
