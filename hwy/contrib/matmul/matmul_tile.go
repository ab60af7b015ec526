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

// TileMatMulAdd computes C += A * B the way an AMX kernel does: C is cut
// into tiles that fit cfg, each C tile is loaded once, accumulated with
// TDPBUUD over every slab of K, and stored once.
//
//   - a is M x K bytes (row-major)
//   - bPacked is PackVNNI(B, K, N)
//   - c is M x N int32 (row-major)
//
// cfg goes through its LDTILECFG encoding first, so a config that cannot be
// loaded fails here with ErrTileConfig.
//
// Tile 0 holds A, tile 1 holds packed B and tile 2 holds C. The C tile is
// min(Rows[0], Rows[2]) rows by min(ColsB[1], ColsB[2])/4 columns, and one
// K slab is ColsB[0] bytes (capped at 4*Rows[1]). Ragged edges are loaded
// with zero fill, so any M, N and K are accepted.
//
// With DefaultTileConfig and the 16×64 · 64×16 problem this is exactly one
// TDPBUUD.
func TileMatMulAdd(cfg TileConfig, a, bPacked []uint8, c []int32, m, n, k int) error {
	rec := cfg.Bytes()
	cfg, err := LoadTileConfig(rec[:])
	if err != nil {
		return err
	}
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(bPacked) < PackedVNNILen(k, n) {
		panic("matmul: packed B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	tm := int(min(cfg.Rows[tileA], cfg.Rows[tileC]))
	tn := int(min(cfg.ColsB[tileB], cfg.ColsB[tileC])) / 4
	tk := min(int(cfg.ColsB[tileA]), int(cfg.Rows[tileB])*VNNIGroup)
	kPad := roundUp(k, VNNIGroup)

	var ta, tb, tc tile
	for i0 := 0; i0 < m; i0 += tm {
		rows := min(tm, m-i0)

		for j0 := 0; j0 < n; j0 += tn {
			cols := min(tn, n-j0)
			tc.loadInt32(c, i0*n+j0, n, rows, cols)

			for p0 := 0; p0 < kPad; p0 += tk {
				depth := min(tk, kPad-p0)
				ta.loadBytes(a, i0*k+p0, k, rows, depth, k-p0)
				tb.loadBytes(bPacked, (p0/VNNIGroup*n+j0)*VNNIGroup, n*VNNIGroup,
					depth/VNNIGroup, cols*VNNIGroup, cols*VNNIGroup)
				tileDPBUUD(&tc, &ta, &tb)
			}

			tc.storeInt32(c, i0*n+j0, n)
		}
	}
	return nil
}
