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
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel represents the SIMD instruction set detected at startup.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON

	// DispatchSVE indicates ARM SVE instructions (scalable vector).
	DispatchSVE
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	case DispatchSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// scalarWidth is the register width assumed when no SIMD is available.
// Keeping it at 16 bytes gives the same chunking as SSE2/NEON.
const scalarWidth = 16

// currentLevel and currentWidth are set by init() in dispatch_*.go files.
var (
	currentLevel DispatchLevel
	currentWidth int
)

// CurrentLevel returns the SIMD instruction set detected for this process.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns a human-readable name for the current SIMD target.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the scalar width is used regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but "0"/"false" opt out.
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = scalarWidth
}

// MaxLanes returns the number of elements of type T that fit in one register
// of the current SIMD width.
//
// For example, with AVX2 (32 bytes):
//   - float32: 8 lanes
//   - float64: 4 lanes
//   - uint16 (float16): 16 lanes
func MaxLanes[T Lanes]() int {
	return LanesFor[T](currentWidth)
}

// LanesFor returns the number of elements of type T that fit in widthBytes.
// It never returns less than 1.
func LanesFor[T Lanes](widthBytes int) int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	return max(widthBytes/elementSize, 1)
}

// SizeOf returns the size in bytes of one element of type T.
func SizeOf[T Lanes]() int {
	var dummy T
	return int(unsafe.Sizeof(dummy))
}
