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

import (
	"fmt"
	"testing"
)

func TestForEachChunk(t *testing.T) {
	tests := []struct {
		size, width int
		want        [][2]int
	}{
		{0, 4, nil},
		{3, 4, [][2]int{{0, 3}}},
		{4, 4, [][2]int{{0, 4}}},
		{10, 4, [][2]int{{0, 4}, {4, 4}, {8, 2}}},
		{3, 0, [][2]int{{0, 1}, {1, 1}, {2, 1}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size=%d/width=%d", tt.size, tt.width), func(t *testing.T) {
			var got [][2]int
			ForEachChunk(tt.size, tt.width, func(offset, count int) {
				got = append(got, [2]int{offset, count})
			})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d chunks %v, want %v", len(got), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCopyChunks(t *testing.T) {
	for _, width := range []int{0, 1, 3, 8, 64} {
		for _, size := range []int{0, 1, 7, 8, 9, 100} {
			src := make([]int32, size)
			for i := range src {
				src[i] = int32(i*3 + 1)
			}
			// One extra sentinel element that must never be written.
			dst := make([]int32, size+1)
			dst[size] = -1

			n := CopyChunks(dst[:size], src, width)
			if n != size {
				t.Errorf("width=%d size=%d: copied %d, want %d", width, size, n, size)
			}
			for i := range size {
				if dst[i] != src[i] {
					t.Errorf("width=%d size=%d: dst[%d] = %d, want %d", width, size, i, dst[i], src[i])
				}
			}
			if dst[size] != -1 {
				t.Errorf("width=%d size=%d: wrote past the end", width, size)
			}
		}
	}
}

func TestCopyChunks_ShortDst(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	dst := make([]float64, 3)
	if n := CopyChunks(dst, src, 2); n != 3 {
		t.Errorf("copied %d, want 3", n)
	}
	if dst[2] != 3 {
		t.Errorf("dst[2] = %v, want 3", dst[2])
	}
}

func TestMaxLanes(t *testing.T) {
	width := CurrentWidth()
	if width < 16 {
		t.Fatalf("CurrentWidth() = %d, want >= 16", width)
	}
	if got := MaxLanes[float32](); got != width/4 {
		t.Errorf("MaxLanes[float32]() = %d, want %d", got, width/4)
	}
	if got := MaxLanes[uint16](); got != width/2 {
		t.Errorf("MaxLanes[uint16]() = %d, want %d", got, width/2)
	}
	if got := LanesFor[float64](4); got != 1 {
		t.Errorf("LanesFor[float64](4) = %d, want 1", got)
	}
	if got := SizeOf[int8](); got != 1 {
		t.Errorf("SizeOf[int8]() = %d, want 1", got)
	}
}

func TestDispatchLevelString(t *testing.T) {
	if CurrentLevel().String() == "unknown" {
		t.Errorf("CurrentLevel() = %d has no name", CurrentLevel())
	}
	if CurrentName() != CurrentLevel().String() {
		t.Errorf("CurrentName() = %q, want %q", CurrentName(), CurrentLevel())
	}
	if got := DispatchLevel(99).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func BenchmarkCopyChunks(b *testing.B) {
	for _, width := range []int{16, 64, 256} {
		b.Run(fmt.Sprintf("width=%d", width), func(b *testing.B) {
			src := make([]float32, 4096)
			dst := make([]float32, 4096)
			b.SetBytes(int64(len(src) * 4))
			for b.Loop() {
				CopyChunks(dst, src, width)
			}
		})
	}
}
