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

import "github.com/ajroetker/go-tilecheck/hwy/contrib/workerpool"

// ParallelMatMulKLastAdd computes C += A * B^T using a persistent worker
// pool. C is cut into strips of RowsPerStrip rows, the strips are divided
// evenly across the workers and each strip runs MatMulKLastAdd.
//
//   - A is M x K (row-major, K last)
//   - B is N x K (row-major, K last)
//   - C is M x N (row-major)
//
// A nil pool, or a problem smaller than MinParallelOps, runs single-threaded.
func ParallelMatMulKLastAdd(pool *workerpool.Pool, a, b, c []int32, m, n, k int) {
	if pool == nil || m*n*k < MinParallelOps {
		MatMulKLastAdd(a, b, c, m, n, k)
		return
	}
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < n*k {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip

	pool.ParallelFor(numStrips, func(start, end int) {
		for strip := start; strip < end; strip++ {
			rowStart := strip * RowsPerStrip
			rowEnd := min(rowStart+RowsPerStrip, m)

			aStrip := a[rowStart*k : rowEnd*k]
			cStrip := c[rowStart*n : rowEnd*n]
			MatMulKLastAdd(aStrip, b, cStrip, rowEnd-rowStart, n, k)
		}
	})
}

// ParallelTransposedMatMulAdd computes C += A * B for a row-major K x N
// matrix B: B is transposed once, then the strips run in the pool.
func ParallelTransposedMatMulAdd(pool *workerpool.Pool, a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	bT := make([]int32, n*k)
	Transpose(b, k, n, bT)
	ParallelMatMulKLastAdd(pool, a, bT, c, m, n, k)
}
