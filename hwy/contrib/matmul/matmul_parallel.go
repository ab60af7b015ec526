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

const (
	// MinParallelOps is the minimum number of multiply-adds before parallelizing.
	MinParallelOps = 64 * 64 * 64

	// RowsPerStrip defines how many rows each worker processes at a time.
	// One AMX tile height, so a strip maps onto one row of C tiles.
	RowsPerStrip = BlockM
)

// ParallelMatMulAdd computes C += A * B by splitting C into horizontal
// strips of RowsPerStrip rows and running BlockedMatMulAdd on each strip in
// the pool.
//
// A nil pool, or a problem smaller than MinParallelOps, runs single-threaded.
func ParallelMatMulAdd(pool *workerpool.Pool, a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	if pool == nil || m*n*k < MinParallelOps {
		BlockedMatMulAdd(a, b, c, m, n, k)
		return
	}

	pool.ParallelForStrips(m, RowsPerStrip, func(rowStart, rowEnd int) {
		aStrip := a[rowStart*k : rowEnd*k]
		cStrip := c[rowStart*n : rowEnd*n]
		BlockedMatMulAdd(aStrip, b, cStrip, rowEnd-rowStart, n, k)
	})
}
