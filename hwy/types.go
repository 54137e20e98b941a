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

// Package hwy provides the runtime CPU description used to size data
// movement: the detected SIMD register width, the number of elements of a
// given type that fit in it, and helpers that walk a row in register-sized
// chunks with a clipped tail.
//
// Basic usage:
//
//	import "github.com/ajroetker/megablocks-go/hwy"
//
//	width := hwy.MaxLanes[float32]() // 8 on AVX2, 16 on AVX-512
//	hwy.ForEachChunk(len(row), width, func(offset, count int) {
//	    copy(dst[offset:offset+count], row[offset:offset+count])
//	})
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
//
// Half-precision types defined over uint16 (for example
// github.com/x448/float16.Float16) satisfy it.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all fixed-width element types that can be moved
// through a SIMD register.
type Lanes interface {
	Floats | Integers
}
