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

package matrix

import (
	"fmt"

	"github.com/ajroetker/go-tilecheck/hwy"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
)

func shapeErrorf(op string, ar, ac, br, bc int) error {
	return fmt.Errorf("%w: %s %dx%d with %dx%d", ErrShapeMismatch, op, ar, ac, br, bc)
}

// AddInPlace adds d to m element-wise. Shapes must match.
func (m *Matrix[T]) AddInPlace(d *Matrix[T]) error {
	if m.rows != d.rows || m.cols != d.cols {
		return shapeErrorf("add", m.rows, m.cols, d.rows, d.cols)
	}
	for i, v := range d.data {
		m.data[i] += v
	}
	return nil
}

// Add returns a + b without modifying either.
func Add[T hwy.Integers](a, b *Matrix[T]) (*Matrix[T], error) {
	sum := a.Clone()
	if err := sum.AddInPlace(b); err != nil {
		return nil, err
	}
	return sum, nil
}

// Mul returns a × b computed with the reference triple loop.
// cols(a) must equal rows(b).
func Mul(a, b *Matrix[int32]) (*Matrix[int32], error) {
	if a.cols != b.rows {
		return nil, shapeErrorf("mul", a.rows, a.cols, b.rows, b.cols)
	}
	c, err := New[int32](a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	matmul.MatMul(a.data, b.data, c.data, a.rows, b.cols, a.cols)
	return c, nil
}

// MulWith returns a × b computed with kernel, which accumulates into a
// zeroed result. cols(a) must equal rows(b).
func MulWith(a, b *Matrix[int32], kernel matmul.Func) (*Matrix[int32], error) {
	if a.cols != b.rows {
		return nil, shapeErrorf("mul", a.rows, a.cols, b.rows, b.cols)
	}
	c, err := New[int32](a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	if err := kernel(a.data, b.data, c.data, a.rows, b.cols, a.cols); err != nil {
		return nil, err
	}
	return c, nil
}

// MulAdd accumulates a × b into c using kernel, so c holds c + a×b.
// cols(a) must equal rows(b) and c must be rows(a)×cols(b).
func MulAdd(c, a, b *Matrix[int32], kernel matmul.Func) error {
	if a.cols != b.rows {
		return shapeErrorf("mul", a.rows, a.cols, b.rows, b.cols)
	}
	if c.rows != a.rows || c.cols != b.cols {
		return shapeErrorf("accumulate", c.rows, c.cols, a.rows, b.cols)
	}
	return kernel(a.data, b.data, c.data, a.rows, b.cols, a.cols)
}
