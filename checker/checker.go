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

// Package checker computes C + A×B for a fixed, closed-form set of integer
// matrices and uses the result as a correctness oracle for the matmul
// kernels.
//
// The operands are
//
//	A (16×64): A[i,j] = (i + j) mod 255
//	B (64×16): B[i,j] = (i * j) mod 255
//	C (16×16): C[i,j] = i * j
//
// which is exactly one AMX TDPBUUD with the default tile configuration: A
// fills a 16×64-byte tile, B fills 16 rows of 16 VNNI quads and C is a
// 16×16 int32 accumulator.
package checker

import (
	"fmt"
	"io"

	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"
)

// Fixed operand shapes.
const (
	RowsA = 16
	ColsA = 64
	RowsB = ColsA
	ColsB = 16
	RowsC = RowsA
	ColsC = ColsB
)

// SumMod255 generates A.
func SumMod255(i, j int) int32 { return int32((i + j) % 255) }

// ProductMod255 generates B.
func ProductMod255(i, j int) int32 { return int32((i * j) % 255) }

// Product generates C. It has no modulus.
func Product(i, j int) int32 { return int32(i * j) }

// Problem is the shape of a C(M×N) += A(M×K) · B(K×N) check. The operands
// are always generated by SumMod255, ProductMod255 and Product.
type Problem struct {
	M, N, K int
}

// Fixed is the 16×64 · 64×16 problem the tilecheck command runs.
var Fixed = Problem{M: RowsA, N: ColsB, K: ColsA}

// String returns "MxK·KxN".
func (p Problem) String() string {
	return fmt.Sprintf("%dx%d·%dx%d", p.M, p.K, p.K, p.N)
}

// Inputs generates A, B and C for p.
func (p Problem) Inputs() (a, b, c *matrix.Matrix[int32], err error) {
	if a, err = matrix.Generate(p.M, p.K, SumMod255); err != nil {
		return nil, nil, nil, fmt.Errorf("generate A: %w", err)
	}
	if b, err = matrix.Generate(p.K, p.N, ProductMod255); err != nil {
		return nil, nil, nil, fmt.Errorf("generate B: %w", err)
	}
	if c, err = matrix.Generate(p.M, p.N, Product); err != nil {
		return nil, nil, nil, fmt.Errorf("generate C: %w", err)
	}
	return a, b, c, nil
}

// Compute returns C + A×B for p using kernel: the product is formed first
// and then added into C element-wise. The zero Kernel means
// matmul.Reference.
func (p Problem) Compute(kernel matmul.Kernel) (*matrix.Matrix[int32], error) {
	return p.compute(kernel, nil)
}

// compute is Compute with each step timed on timer when it is non-nil.
func (p Problem) compute(kernel matmul.Kernel, timer *SectionTimer) (*matrix.Matrix[int32], error) {
	if kernel.Run == nil {
		kernel = matmul.Reference
	}

	var a, b, c, product *matrix.Matrix[int32]
	err := timer.Time(SectionGenerate, func() (err error) {
		a, b, c, err = p.Inputs()
		return err
	})
	if err != nil {
		return nil, err
	}

	err = timer.Time(SectionMultiply, func() (err error) {
		product, err = matrix.MulWith(a, b, kernel.Run)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s kernel on %s: %w", kernel.Name, p, err)
	}

	if err := timer.Time(SectionAdd, func() error { return c.AddInPlace(product) }); err != nil {
		return nil, fmt.Errorf("add product on %s: %w", p, err)
	}
	return c, nil
}

// Inputs generates the fixed A, B and C.
func Inputs() (a, b, c *matrix.Matrix[int32], err error) {
	return Fixed.Inputs()
}

// Compute returns the fixed C + A×B using kernel.
func Compute(kernel matmul.Kernel) (*matrix.Matrix[int32], error) {
	return Fixed.Compute(kernel)
}

// Run computes the fixed C + A×B with the reference kernel and writes it to
// w, one row per line.
func Run(w io.Writer) (*matrix.Matrix[int32], error) {
	result, err := Compute(matmul.Reference)
	if err != nil {
		return nil, err
	}
	if _, err := result.WriteTo(w); err != nil {
		return nil, fmt.Errorf("write result: %w", err)
	}
	return result, nil
}
