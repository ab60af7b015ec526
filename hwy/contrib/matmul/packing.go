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

import (
	"errors"
	"fmt"
)

// ErrNotUint8 is returned when an int32 operand does not fit the unsigned
// byte inputs of the VNNI, AMX and I8MM kernels.
var ErrNotUint8 = errors.New("matmul: element does not fit uint8")

const (
	// VNNIGroup is the number of K steps folded into one 32-bit lane by
	// VPDPBUUD/TDPBUUD: four bytes multiplied pairwise and summed.
	VNNIGroup = 4

	// MMLABlockK is the K depth of one UMMLA instruction (2×8 · 8×2).
	MMLABlockK = 8

	// MMLABlockN is the number of B columns one UMMLA instruction consumes.
	MMLABlockN = 2
)

func roundUp(x, multiple int) int {
	return (x + multiple - 1) / multiple * multiple
}

// ToUint8 narrows src to bytes, failing on the first element outside
// [0, 255].
func ToUint8(src []int32) ([]uint8, error) {
	dst := make([]uint8, len(src))
	for i, v := range src {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: index %d holds %d", ErrNotUint8, i, v)
		}
		dst[i] = uint8(v)
	}
	return dst, nil
}

// PackedVNNILen returns the length of PackVNNI's output for a K×N matrix.
func PackedVNNILen(k, n int) int {
	return roundUp(k, VNNIGroup) * n
}

// PackVNNI reorders the row-major K×N byte matrix b into VNNI layout
// [K/4][N][4]: element B[p,j] lands at ((p/4)*N + j)*4 + p%4. K is padded
// to a multiple of 4 with zeros, so the padded products contribute nothing.
//
// Each group of 4 consecutive bytes is one 32-bit lane's worth of B for a
// single output column, which is what the byte dot product instructions read.
func PackVNNI(b []uint8, k, n int) []uint8 {
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}

	packed := make([]uint8, PackedVNNILen(k, n))
	for p := range k {
		group, offset := p/VNNIGroup, p%VNNIGroup
		row := b[p*n : (p+1)*n]
		for j, v := range row {
			packed[(group*n+j)*VNNIGroup+offset] = v
		}
	}
	return packed
}

// PackedMMLALen returns the length of PackMMLA's output for a K×N matrix.
func PackedMMLALen(k, n int) int {
	return roundUp(k, MMLABlockK) * roundUp(n, MMLABlockN)
}

// PackMMLA reorders the row-major K×N byte matrix b into UMMLA operand
// layout: for each pair of columns and each 8-deep slab of K, 16 bytes
// holding column j then column j+1, each as 8 consecutive K values.
//
//	index(p, j) = ((j/2)*(Kpad/8) + p/8)*16 + (j%2)*8 + p%8
//
// K is padded to a multiple of 8 and N to a multiple of 2 with zeros.
func PackMMLA(b []uint8, k, n int) []uint8 {
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}

	kSlabs := roundUp(k, MMLABlockK) / MMLABlockK
	packed := make([]uint8, PackedMMLALen(k, n))
	for p := range k {
		slab, depth := p/MMLABlockK, p%MMLABlockK
		row := b[p*n : (p+1)*n]
		for j, v := range row {
			pair, col := j/MMLABlockN, j%MMLABlockN
			packed[(pair*kSlabs+slab)*MMLABlockN*MMLABlockK+col*MMLABlockK+depth] = v
		}
	}
	return packed
}
