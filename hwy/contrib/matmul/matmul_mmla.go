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

// MMLAMatMulAdd computes C += A * B with the UMMLA data flow, B already in
// PackMMLA layout.
//
//   - a is M x K bytes (row-major)
//   - bPacked is PackMMLA(B, K, N)
//   - c is M x N int32 (row-major)
//
// Each step multiplies a 2×8 block of A (two rows, eight K values) by an
// 8×2 block of B (eight K values of two columns) into a 2×2 int32
// accumulator. Rows and columns past M and N are computed on zero padding
// and dropped.
func MMLAMatMulAdd(a, bPacked []uint8, c []int32, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(bPacked) < PackedMMLALen(k, n) {
		panic("matmul: packed B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	const blockBytes = MMLABlockN * MMLABlockK
	kSlabs := roundUp(k, MMLABlockK) / MMLABlockK

	// aBlk holds two A rows of one K slab, zero padded.
	var aBlk [2][MMLABlockK]uint8
	var acc [2][2]int32

	for i := 0; i < m; i += 2 {
		rows := min(2, m-i)

		for j := 0; j < n; j += MMLABlockN {
			cols := min(MMLABlockN, n-j)
			pair := j / MMLABlockN

			acc = [2][2]int32{}
			for r := range rows {
				for col := range cols {
					acc[r][col] = c[(i+r)*n+j+col]
				}
			}

			for s := range kSlabs {
				p0 := s * MMLABlockK
				pEnd := min(p0+MMLABlockK, k)
				aBlk = [2][MMLABlockK]uint8{}
				for r := range rows {
					copy(aBlk[r][:], a[(i+r)*k+p0:(i+r)*k+pEnd])
				}

				bBlk := bPacked[(pair*kSlabs+s)*blockBytes : (pair*kSlabs+s+1)*blockBytes]
				ummla(&acc, &aBlk, bBlk)
			}

			for r := range rows {
				for col := range cols {
					c[(i+r)*n+j+col] = acc[r][col]
				}
			}
		}
	}
}

// ummla is one UMMLA: acc[r][col] += sum_t a[r][t] * b[col*8+t].
func ummla(acc *[2][2]int32, a *[2][MMLABlockK]uint8, b []uint8) {
	for r := range 2 {
		for col := range MMLABlockN {
			bCol := b[col*MMLABlockK : (col+1)*MMLABlockK]
			var sum int32
			for t := range MMLABlockK {
				sum += int32(a[r][t]) * int32(bCol[t])
			}
			acc[r][col] += sum
		}
	}
}
