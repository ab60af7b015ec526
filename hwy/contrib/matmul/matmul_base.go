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

import "github.com/ajroetker/go-tilecheck/hwy"

// checkDims panics if a, b or c cannot hold an m×k, k×n and m×n matrix.
func checkDims[T hwy.Integers](a, b []T, c []int32, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}
}

// MatMul computes C = A * B with the standard triple loop.
// C[i,j] = sum(A[i,p] * B[p,j]) for p in 0..K-1
func MatMul(a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	clear(c[:m*n])
	matmulAddScalar(a, b, c, m, n, k)
}

// MatMulAdd computes C += A * B with the standard triple loop.
// This is the reference every other kernel is checked against.
func MatMulAdd(a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	matmulAddScalar(a, b, c, m, n, k)
}

// matmulAddScalar uses i-p-j order so the innermost loop walks B and C rows
// contiguously.
func matmulAddScalar(a, b, c []int32, m, n, k int) {
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			if aip == 0 {
				continue
			}
			bRow := b[p*n : (p+1)*n]
			for j := range n {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}
