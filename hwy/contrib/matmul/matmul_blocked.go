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

// Block sizes follow the AMX tile geometry: 16 rows of C, 16 int32 columns
// (64 bytes) of C, and 64 steps of K per pass.
const (
	BlockM = 16
	BlockN = 16
	BlockK = 64
)

// BlockedMatMulAdd computes C += A * B using cache tiling.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// The output is walked in BlockM×BlockN blocks and K in BlockK slabs, so the
// working set of one step is a 16×64 slab of A, a 64×16 slab of B and a
// 16×16 block of C.
func BlockedMatMulAdd(a, b, c []int32, m, n, k int) {
	checkDims(a, b, c, m, n, k)

	for i0 := 0; i0 < m; i0 += BlockM {
		iEnd := min(i0+BlockM, m)

		for j0 := 0; j0 < n; j0 += BlockN {
			jEnd := min(j0+BlockN, n)

			for p0 := 0; p0 < k; p0 += BlockK {
				pEnd := min(p0+BlockK, k)
				blockAdd(a, b, c, n, k, i0, iEnd, j0, jEnd, p0, pEnd)
			}
		}
	}
}

// blockAdd accumulates one (i, j, p) block. Rows are processed in pairs so
// each B element loaded is used twice.
func blockAdd(a, b, c []int32, n, k, i0, iEnd, j0, jEnd, p0, pEnd int) {
	var i int
	for i = i0; i+1 < iEnd; i += 2 {
		c0 := c[i*n+j0 : i*n+jEnd]
		c1 := c[(i+1)*n+j0 : (i+1)*n+jEnd]
		for p := p0; p < pEnd; p++ {
			a0 := a[i*k+p]
			a1 := a[(i+1)*k+p]
			bRow := b[p*n+j0 : p*n+jEnd]
			for j, bv := range bRow {
				c0[j] += a0 * bv
				c1[j] += a1 * bv
			}
		}
	}

	// Odd trailing row
	if i < iEnd {
		c0 := c[i*n+j0 : i*n+jEnd]
		for p := p0; p < pEnd; p++ {
			a0 := a[i*k+p]
			bRow := b[p*n+j0 : p*n+jEnd]
			for j, bv := range bRow {
				c0[j] += a0 * bv
			}
		}
	}
}
