// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package permute

import "github.com/ajroetker/megablocks-go/hwy"

// Matrix is a dense row-major Rows x Cols buffer.
type Matrix[T hwy.Lanes] struct {
	Data []T
	Rows int
	Cols int
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix[T hwy.Lanes](rows, cols int) Matrix[T] {
	return Matrix[T]{Data: make([]T, rows*cols), Rows: rows, Cols: cols}
}

// MatrixFromRows copies rows into a new Matrix. All rows must have the same
// length.
func MatrixFromRows[T hwy.Lanes](rows [][]T) (Matrix[T], error) {
	if len(rows) == 0 {
		return Matrix[T]{}, nil
	}
	cols := len(rows[0])
	m := NewMatrix[T](len(rows), cols)
	for i, r := range rows {
		if err := assertEqual("row length", len(r), cols); err != nil {
			return Matrix[T]{}, err
		}
		copy(m.Row(i), r)
	}
	return m, nil
}

// Row returns the i-th row as a slice aliasing m.Data.
func (m Matrix[T]) Row(i int) []T {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// ToRows returns a copy of m as one slice per row.
func (m Matrix[T]) ToRows() [][]T {
	rows := make([][]T, m.Rows)
	for i := range rows {
		rows[i] = append([]T(nil), m.Row(i)...)
	}
	return rows
}

// validate reports a shape error if m is not a well-formed matrix.
func (m Matrix[T]) validate(name string) error {
	if m.Rows < 0 || m.Cols < 0 {
		return shapeErrorf("%s: negative dimensions %dx%d", name, m.Rows, m.Cols)
	}
	return assertEqual(name+" data length", len(m.Data), m.Rows*m.Cols)
}
