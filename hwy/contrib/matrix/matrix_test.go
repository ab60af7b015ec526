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

package matrix_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"
)

func TestGenerateMatchesIndexFunction(t *testing.T) {
	shapes := []struct{ rows, cols int }{{1, 1}, {3, 5}, {16, 64}, {64, 16}}
	fns := map[string]func(i, j int) int32{
		"sum mod 255":     func(i, j int) int32 { return int32((i + j) % 255) },
		"product mod 255": func(i, j int) int32 { return int32((i * j) % 255) },
		"product":         func(i, j int) int32 { return int32(i * j) },
		"row major index": func(i, j int) int32 { return int32(i*1000 + j) },
	}

	for name, fn := range fns {
		for _, s := range shapes {
			m, err := matrix.Generate(s.rows, s.cols, fn)
			require.NoError(t, err, name)
			require.Equal(t, s.rows, m.Rows())
			require.Equal(t, s.cols, m.Cols())
			for i := range s.rows {
				for j := range s.cols {
					v, err := m.At(i, j)
					require.NoError(t, err)
					require.Equalf(t, fn(i, j), v, "%s at (%d,%d)", name, i, j)
				}
			}
		}
	}
}

func TestGenerateIsPure(t *testing.T) {
	fn := func(i, j int) int64 { return int64(i*j) % 255 }
	first, err := matrix.Generate(16, 64, fn)
	require.NoError(t, err)
	second, err := matrix.Generate(16, 64, fn)
	require.NoError(t, err)

	require.True(t, first.Equal(second))
	require.Equal(t, first.Data(), second.Data())
}

func TestInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 4}, {4, -2}} {
		_, err := matrix.New[int32](dims[0], dims[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimension)

		_, err = matrix.Generate(dims[0], dims[1], func(int, int) int32 { return 1 })
		require.ErrorIs(t, err, matrix.ErrInvalidDimension)
	}

	_, err := matrix.FromRows[int32](nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)
}

func TestFromRows(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3, 4, 5, 6}, m.Data())

	_, err = matrix.FromRows([][]int32{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestAtSetBounds(t *testing.T) {
	m, err := matrix.New[int32](2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, int32(7), v)

	for _, idx := range [][2]int{{2, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		_, err := m.At(idx[0], idx[1])
		require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
		require.ErrorIs(t, m.Set(idx[0], idx[1], 1), matrix.ErrIndexOutOfRange)
	}
}

func TestAddInPlace(t *testing.T) {
	c, err := matrix.FromRows([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	d, err := matrix.FromRows([][]int32{{10, 20}, {30, 40}})
	require.NoError(t, err)

	require.NoError(t, c.AddInPlace(d))
	require.Equal(t, []int32{11, 22, 33, 44}, c.Data())
	require.Equal(t, []int32{10, 20, 30, 40}, d.Data())

	wrong, err := matrix.New[int32](2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, c.AddInPlace(wrong), matrix.ErrShapeMismatch)
	require.Equal(t, []int32{11, 22, 33, 44}, c.Data())
}

func TestAddZeroLeavesProduct(t *testing.T) {
	a, err := matrix.Generate(4, 6, func(i, j int) int32 { return int32(i + 2*j) })
	require.NoError(t, err)
	b, err := matrix.Generate(6, 3, func(i, j int) int32 { return int32(i*j + 1) })
	require.NoError(t, err)

	product, err := matrix.Mul(a, b)
	require.NoError(t, err)
	zero, err := matrix.New[int32](4, 3)
	require.NoError(t, err)

	sum, err := matrix.Add(product, zero)
	require.NoError(t, err)
	require.True(t, sum.Equal(product))
}

func TestMul(t *testing.T) {
	a, err := matrix.FromRows([][]int32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	b, err := matrix.FromRows([][]int32{{7, 8}, {9, 10}, {11, 12}})
	require.NoError(t, err)

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, 2, c.Rows())
	require.Equal(t, 2, c.Cols())
	require.Equal(t, []int32{58, 64, 139, 154}, c.Data())
}

func TestMulShapeMismatch(t *testing.T) {
	a, err := matrix.New[int32](16, 64)
	require.NoError(t, err)
	b, err := matrix.New[int32](63, 16)
	require.NoError(t, err)

	_, err = matrix.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	c, err := matrix.New[int32](16, 16)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.MulAdd(c, a, b, matmul.Reference.Run), matrix.ErrShapeMismatch)

	good, err := matrix.New[int32](64, 16)
	require.NoError(t, err)
	wrongC, err := matrix.New[int32](16, 15)
	require.NoError(t, err)
	require.ErrorIs(t, matrix.MulAdd(wrongC, a, good, matmul.Reference.Run), matrix.ErrShapeMismatch)
}

func TestMulAddWithKernels(t *testing.T) {
	a, err := matrix.Generate(5, 9, func(i, j int) int32 { return int32((i + j) % 255) })
	require.NoError(t, err)
	b, err := matrix.Generate(9, 4, func(i, j int) int32 { return int32((i * j) % 255) })
	require.NoError(t, err)
	bias, err := matrix.Generate(5, 4, func(i, j int) int32 { return int32(i * j) })
	require.NoError(t, err)

	product, err := matrix.Mul(a, b)
	require.NoError(t, err)
	want, err := matrix.Add(bias, product)
	require.NoError(t, err)

	for _, kernel := range matmul.Kernels(nil) {
		c := bias.Clone()
		require.NoError(t, matrix.MulAdd(c, a, b, kernel.Run), kernel.Name)
		require.True(t, c.Equal(want), kernel.Name)
	}
}

func TestMulWithKernels(t *testing.T) {
	a, err := matrix.Generate(7, 11, func(i, j int) int32 { return int32((i + j) % 255) })
	require.NoError(t, err)
	b, err := matrix.Generate(11, 5, func(i, j int) int32 { return int32((i * j) % 255) })
	require.NoError(t, err)

	want, err := matrix.Mul(a, b)
	require.NoError(t, err)
	for _, kernel := range matmul.Kernels(nil) {
		got, err := matrix.MulWith(a, b, kernel.Run)
		require.NoError(t, err, kernel.Name)
		require.True(t, got.Equal(want), kernel.Name)
	}

	_, err = matrix.MulWith(a, a, matmul.Reference.Run)
	require.ErrorIs(t, err, matrix.ErrShapeMismatch)

	wide, err := matrix.FromRows([][]int32{{300}})
	require.NoError(t, err)
	vnni, ok := matmul.Lookup(nil, matmul.KernelVNNI)
	require.True(t, ok)
	_, err = matrix.MulWith(wide, wide, vnni.Run)
	require.ErrorIs(t, err, matmul.ErrNotUint8)
}

func TestConvert(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{0, 1}, {254, 255}})
	require.NoError(t, err)

	bytesM, err := matrix.Convert[uint8](m)
	require.NoError(t, err)
	require.Equal(t, []uint8{0, 1, 254, 255}, bytesM.Data())

	require.NoError(t, m.Set(1, 1, 256))
	_, err = matrix.Convert[uint8](m)
	require.ErrorIs(t, err, matrix.ErrOverflow)

	require.NoError(t, m.Set(1, 1, -1))
	_, err = matrix.Convert[uint8](m)
	require.ErrorIs(t, err, matrix.ErrOverflow)

	signed, err := matrix.FromRows([][]uint8{{200}})
	require.NoError(t, err)
	_, err = matrix.Convert[int8](signed)
	require.ErrorIs(t, err, matrix.ErrOverflow)
}

func TestBounds(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{5, -3}, {12, 0}})
	require.NoError(t, err)
	lo, hi := m.Bounds()
	require.Equal(t, int32(-3), lo)
	require.Equal(t, int32(12), hi)
}

func TestEmptyAndNilMatrices(t *testing.T) {
	var empty matrix.Matrix[int32]
	lo, hi := empty.Bounds()
	require.Zero(t, lo)
	require.Zero(t, hi)

	m, err := matrix.FromRows([][]int32{{1}})
	require.NoError(t, err)
	var none *matrix.Matrix[int32]
	require.False(t, m.Equal(nil))
	require.False(t, none.Equal(m))
	require.True(t, none.Equal(nil))
	require.True(t, empty.Equal(&matrix.Matrix[int32]{}))
}

func TestWriteTo(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{0, 85344}, {-7, 462396}})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)

	want := "       0   85344\n" +
		"      -7  462396\n"
	require.Equal(t, want, buf.String())
	require.Equal(t, int64(len(want)), n)
	require.Equal(t, want, m.String())
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := matrix.FromRows([][]int32{{1, 2}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, int32(1), v)
	require.False(t, m.Equal(c))
}
