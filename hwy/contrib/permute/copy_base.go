// Copyright 2025 megablocks-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package permute

import (
	"sync/atomic"

	"github.com/ajroetker/megablocks-go/hwy"
)

// Buffer roles. Buffer a is the unpadded matrix, buffer b the padded one.
const (
	bufA = 0
	bufB = 1
)

// direction selects which buffer is read and which is written.
type direction struct {
	src, dst int
}

var (
	aToB = direction{src: bufA, dst: bufB} // gather
	bToA = direction{src: bufB, dst: bufA} // scatter
)

// copyPlan is everything a row task needs. It is built once per call.
type copyPlan[T hwy.Lanes] struct {
	bufs  [2][]T
	rows  [2]int
	cols  int
	chunk int
	dir   direction
	md    Metadata
}

// basePaddedCopy moves the rows of tasks [start, end) and returns how many
// tasks were skipped because their metadata addressed a row outside a
// buffer.
//
// Task i reads row Indices[i] of buffer a and row
// i - Bins[k-1] + PaddedBins[k-1] of buffer b (k = BinIDs[i]); the direction
// picks which of the two is the source. Since padding is only ever appended
// after a bin's real rows, the intra-bin rank i - Bins[k-1] never reaches a
// padding slot.
func basePaddedCopy[T hwy.Lanes](p *copyPlan[T], start, end int) int {
	src, dst := p.dir.src, p.dir.dst
	srcBuf, dstBuf := p.bufs[src], p.bufs[dst]
	skipped := 0
	for i := start; i < end; i++ {
		var row [2]int
		var ok bool
		row[bufA] = int(p.md.Indices[i])
		row[bufB], ok = p.md.paddedRow(i)
		if !ok ||
			row[src] < 0 || row[src] >= p.rows[src] ||
			row[dst] < 0 || row[dst] >= p.rows[dst] {
			skipped++
			continue
		}
		srcOff, dstOff := row[src]*p.cols, row[dst]*p.cols
		hwy.CopyChunks(dstBuf[dstOff:dstOff+p.cols], srcBuf[srcOff:srcOff+p.cols], p.chunk)
	}
	return skipped
}

// run dispatches one task per row over cfg.Pool and returns the number of
// skipped tasks. A non-positive Grain splits the rows into one contiguous
// range per worker instead of work stealing.
func (p *copyPlan[T]) run(cfg Config) int {
	n := p.md.NumTasks()
	if n == 0 || p.cols == 0 {
		return 0
	}
	if cfg.Pool == nil || n*p.cols < cfg.MinParallelElems {
		return basePaddedCopy(p, 0, n)
	}

	var skipped atomic.Int64
	task := func(start, end int) {
		if s := basePaddedCopy(p, start, end); s > 0 {
			skipped.Add(int64(s))
		}
	}
	if cfg.Grain <= 0 {
		cfg.Pool.ParallelFor(n, task)
	} else {
		cfg.Pool.ParallelForAtomicBatched(n, cfg.Grain, task)
	}
	return int(skipped.Load())
}

// zeroPadding clears the padding rows of the padded buffer b: for every bin
// k, rows [PaddedBins[k-1] + (Bins[k]-Bins[k-1]), PaddedBins[k]). Ranges are
// clipped to the buffer.
func zeroPadding[T hwy.Lanes](b []T, rows, cols int, md Metadata) {
	var prevBin, prevPadded int
	for k := range md.Bins {
		bin, padded := int(md.Bins[k]), int(md.PaddedBins[k])
		from := max(prevPadded+max(bin-prevBin, 0), 0)
		to := min(padded, rows)
		if from < to {
			clear(b[from*cols : to*cols])
		}
		prevBin, prevPadded = bin, padded
	}
}
