// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import "gonum.org/v1/gonum/mat"

// GatherDense is Gather for gonum matrices. The result shares no memory with
// x. An empty result is returned as a zero-value *mat.Dense, since gonum
// does not allow allocating matrices with a zero dimension.
func GatherDense(x *mat.Dense, md Metadata, opts ...Option) (*mat.Dense, error) {
	out, err := Gather(denseToMatrix(x), md, opts...)
	if err != nil {
		return nil, err
	}
	return matrixToDense(out), nil
}

// ScatterDense is Scatter for gonum matrices.
func ScatterDense(x *mat.Dense, md Metadata, opts ...Option) (*mat.Dense, error) {
	out, err := Scatter(denseToMatrix(x), md, opts...)
	if err != nil {
		return nil, err
	}
	return matrixToDense(out), nil
}

// denseToMatrix views x as a Matrix, copying only when x is a strided view.
func denseToMatrix(x *mat.Dense) Matrix[float64] {
	if x == nil || x.IsEmpty() {
		return Matrix[float64]{}
	}
	raw := x.RawMatrix()
	if raw.Stride != raw.Cols {
		raw = mat.DenseCopyOf(x).RawMatrix()
	}
	return Matrix[float64]{Data: raw.Data[:raw.Rows*raw.Cols], Rows: raw.Rows, Cols: raw.Cols}
}

func matrixToDense(m Matrix[float64]) *mat.Dense {
	if m.Rows == 0 || m.Cols == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(m.Rows, m.Cols, m.Data)
}
