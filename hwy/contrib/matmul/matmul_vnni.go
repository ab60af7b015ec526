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

// VNNILanes is the number of int32 lanes in one 512-bit accumulator.
const VNNILanes = 16

// VNNIMatMulAdd computes C += A * B for byte operands, with B already in
// PackVNNI layout.
//
//   - a is M x K bytes (row-major)
//   - bPacked is PackVNNI(B, K, N)
//   - c is M x N int32 (row-major)
//
// Columns of C are processed VNNILanes at a time. For each group of four K
// steps, the four A bytes are broadcast and dotted with the four packed B
// bytes of every lane, the VPDPBUUD data flow.
func VNNIMatMulAdd(a, bPacked []uint8, c []int32, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(bPacked) < PackedVNNILen(k, n) {
		panic("matmul: packed B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	groups := roundUp(k, VNNIGroup) / VNNIGroup
	var quad [VNNIGroup]uint8
	var acc [VNNILanes]int32

	for i := range m {
		aRow := a[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]

		for j0 := 0; j0 < n; j0 += VNNILanes {
			lanes := min(VNNILanes, n-j0)
			copy(acc[:lanes], cRow[j0:j0+lanes])

			for g := range groups {
				// Broadcast A[i, 4g:4g+4], zero-filling past K.
				quad = [VNNIGroup]uint8{}
				copy(quad[:], aRow[g*VNNIGroup:min((g+1)*VNNIGroup, k)])

				base := (g*n + j0) * VNNIGroup
				for l := range lanes {
					off := base + l*VNNIGroup
					acc[l] += dot.Uint8(quad[:], bPacked[off:off+VNNIGroup])
				}
			}

			copy(cRow[j0:j0+lanes], acc[:lanes])
		}
	}
}
