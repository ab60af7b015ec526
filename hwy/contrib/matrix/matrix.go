// Copyright 2025 go-highway Authors
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

// Package matrix provides a small row-major integer matrix value type for
// building test operands and checking kernel results.
//
// A Matrix owns a flat slice of rows*cols elements; element (i, j) lives at
// index i*cols+j, the layout every kernel in hwy/contrib/matmul expects.
package matrix

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-tilecheck/hwy"
)

var (
	// ErrInvalidDimension indicates non-positive row or column counts.
	ErrInvalidDimension = errors.New("matrix: dimensions must be > 0")

	// ErrShapeMismatch indicates operands whose shapes do not combine.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrIndexOutOfRange indicates a row or column index outside the matrix.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrOverflow indicates an element that does not fit the target type.
	ErrOverflow = errors.New("matrix: element overflows target type")
)

// Matrix is a dense row-major matrix of integers.
type Matrix[T hwy.Integers] struct {
	rows, cols int
	data       []T // len == rows*cols
}

// New returns a rows×cols matrix of zeros.
func New[T hwy.Integers](rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, rows, cols)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}, nil
}

// Generate returns a rows×cols matrix whose element (i, j) is fn(i, j).
// fn is called once per element in row-major order.
func Generate[T hwy.Integers](rows, cols int, fn func(i, j int) T) (*Matrix[T], error) {
	m, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		row := m.Row(i)
		for j := range row {
			row[j] = fn(i, j)
		}
	}
	return m, nil
}

// FromRows builds a matrix from equal-length rows, copying them.
func FromRows[T hwy.Integers](rows [][]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}
	m, err := New[T](len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), m.cols)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Shape returns (rows, cols).
func (m *Matrix[T]) Shape() (int, int) { return m.rows, m.cols }

// Data returns the row-major backing slice. Writes through it modify m.
func (m *Matrix[T]) Data() []T { return m.data }

// Row returns row i as a subslice of the backing storage.
// It panics if i is out of range.
func (m *Matrix[T]) Row(i int) []T {
	return m.data[i*m.cols : (i+1)*m.cols]
}

func (m *Matrix[T]) index(i, j int) (int, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndexOutOfRange, i, j, m.rows, m.cols)
	}
	return i*m.cols + j, nil
}

// At returns element (i, j).
func (m *Matrix[T]) At(i, j int) (T, error) {
	idx, err := m.index(i, j)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.data[idx], nil
}

// Set stores v at (i, j).
func (m *Matrix[T]) Set(i, j int, v T) error {
	idx, err := m.index(i, j)
	if err != nil {
		return err
	}
	m.data[idx] = v
	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: append([]T(nil), m.data...)}
}

// Equal reports whether m and o have the same shape and elements. A nil
// matrix is only equal to another nil matrix.
func (m *Matrix[T]) Equal(o *Matrix[T]) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// Bounds returns the smallest and largest element, or zeros for a matrix
// with no elements.
func (m *Matrix[T]) Bounds() (lo, hi T) {
	if len(m.data) == 0 {
		return lo, hi
	}
	lo, hi = m.data[0], m.data[0]
	for _, v := range m.data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Convert returns a copy of m with every element converted to U, or
// ErrOverflow if an element is not representable in U.
func Convert[U, T hwy.Integers](m *Matrix[T]) (*Matrix[U], error) {
	out := &Matrix[U]{rows: m.rows, cols: m.cols, data: make([]U, len(m.data))}
	for idx, v := range m.data {
		u := U(v)
		if T(u) != v || (u < 0) != (v < 0) {
			return nil, fmt.Errorf("%w: element (%d,%d) = %d", ErrOverflow, idx/m.cols, idx%m.cols, v)
		}
		out.data[idx] = u
	}
	return out, nil
}
