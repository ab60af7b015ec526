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

package matmul

import "github.com/ajroetker/go-tilecheck/hwy/contrib/dot"

// MatMulKLastAdd computes C += A * B^T where:
//   - A is M x K (row-major, K last)
//   - B is N x K (row-major, K last)
//   - C is M x N (row-major)
//
// Each output element: C[i,j] += dot(A[i,:], B[j,:]), computed one row of C
// per dot.Int32Batch call.
//
// Both operand rows are contiguous, which is the layout AMX and I8MM want
// for their second operand before packing.
func MatMulKLastAdd(a, b, c []int32, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < n*k {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	bRows := make([][]int32, n)
	for j := range bRows {
		bRows[j] = b[j*k : (j+1)*k]
	}

	// Row i of C is one batch: row i of A paired with every row of B.
	aRows := make([][]int32, n)
	for i := range m {
		aRow := a[i*k : (i+1)*k]
		for j := range aRows {
			aRows[j] = aRow
		}
		cRow := c[i*n : (i+1)*n]
		for j, v := range dot.Int32Batch(aRows, bRows) {
			cRow[j] += v
		}
	}
}

// TransposedMatMulAdd computes C += A * B for a row-major K x N matrix B by
// first transposing it into K-last order and then calling MatMulKLastAdd.
func TransposedMatMulAdd(a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	bT := make([]int32, n*k)
	Transpose(b, k, n, bT)
	MatMulKLastAdd(a, bT, c, m, n, k)
}
