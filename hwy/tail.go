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

package hwy

// ForEachChunk walks [0, size) in chunks of width elements.
//
// fn(offset, count) is called once per chunk. Every chunk but the last has
// count == width; the last one is clipped so offset+count == size. This is
// the slice equivalent of a masked tail load/store: nothing past size is
// ever addressed.
//
// A non-positive width is treated as 1.
//
// Example:
//
//	hwy.ForEachChunk(len(src), hwy.MaxLanes[float32](), func(offset, count int) {
//	    copy(dst[offset:offset+count], src[offset:offset+count])
//	})
func ForEachChunk(size, width int, fn func(offset, count int)) {
	if width <= 0 {
		width = 1
	}
	offset := 0
	for ; offset+width <= size; offset += width {
		fn(offset, width)
	}
	if remaining := size - offset; remaining > 0 {
		fn(offset, remaining)
	}
}

// CopyChunks copies min(len(dst), len(src)) elements from src to dst in
// chunks of width elements and returns the number of elements copied.
//
// Chunking keeps the work per iteration independent of the row length so
// callers can size the chunk to a cache line or register multiple.
func CopyChunks[T Lanes](dst, src []T, width int) int {
	n := min(len(dst), len(src))
	if width <= 0 || width >= n {
		return copy(dst[:n], src[:n])
	}
	ForEachChunk(n, width, func(offset, count int) {
		copy(dst[offset:offset+count], src[offset:offset+count])
	})
	return n
}
