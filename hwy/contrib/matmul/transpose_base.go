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

// transposeBlock is the side of the square blocks Transpose walks in.
const transposeBlock = 8

// Transpose writes the transpose of the rows×cols matrix src into dst,
// which must hold cols×rows elements.
//
// Source: src[i*cols + j]
// Dest:   dst[j*rows + i]
func Transpose[T hwy.Integers](src []T, rows, cols int, dst []T) {
	if len(src) < rows*cols {
		panic("matmul: src slice too short")
	}
	if len(dst) < rows*cols {
		panic("matmul: dst slice too short")
	}

	for i0 := 0; i0 < rows; i0 += transposeBlock {
		iEnd := min(i0+transposeBlock, rows)
		for j0 := 0; j0 < cols; j0 += transposeBlock {
			jEnd := min(j0+transposeBlock, cols)
			for i := i0; i < iEnd; i++ {
				for j := j0; j < jEnd; j++ {
					dst[j*rows+i] = src[i*cols+j]
				}
			}
		}
	}
}
