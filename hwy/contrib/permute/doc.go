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

// Package permute implements the padded token permutation used to route
// rows of a dense matrix to the experts of a sparse mixture-of-experts layer.
//
// Rows are grouped into bins. Gather moves each row from its natural
// position into a bin-ordered buffer in which every bin starts at its
// padded offset and ends with zero rows of slack. Scatter is the inverse:
// it moves the real rows back into natural order and drops the padding.
//
// Four index vectors, produced by the routing step, describe the permutation:
//
//   - Indices[i]: the unpadded row moved by task i.
//   - BinIDs[i]: the bin of task i. Tasks of one bin are contiguous.
//   - Bins[k]: inclusive cumulative count of real rows in bins 0..k.
//   - PaddedBins[k]: inclusive cumulative count of padded rows in bins 0..k.
//
// Task i lands at padded row
//
//	i - Bins[k-1] + PaddedBins[k-1]    (k = BinIDs[i], both terms 0 for k == 0)
//
// Each task copies exactly one row and no two tasks write the same row, so
// tasks run on a workerpool.Pool without locks.
//
// # Example
//
//	md := permute.Metadata{
//	    Indices:    []int32{0, 1, 2, 3},
//	    BinIDs:     []int32{0, 0, 1, 1},
//	    Bins:       []int32{2, 4},
//	    PaddedBins: []int32{3, 5},
//	}
//	padded, err := permute.Gather(x, md)   // 5 rows, row 2 is zero
//	...
//	back, err := permute.Scatter(padded, md) // equals x
//
// # Configuration
//
// Chunk width, batch size, pool and debug checks are set per call through
// Options; process defaults can be overridden with the environment variables
// PERMUTE_CHUNK_WIDTH, PERMUTE_GRAIN, PERMUTE_MIN_PARALLEL and PERMUTE_DEBUG.
// None of them change results, except PERMUTE_DEBUG which adds metadata
// validation before every call.
package permute
