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

// Package contrib groups the matrix-multiply building blocks.
//
// # Subpackages
//
//   - matrix: row-major integer Matrix type (generate, add, multiply, print)
//   - matmul: C += A×B kernels, including VNNI, AMX tile and I8MM data flows
//   - dot: integer dot products
//   - workerpool: persistent pool for row-strip parallelism
//
// # Checking a kernel
//
//	import (
//	    "github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
//	    "github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"
//	)
//
//	a, _ := matrix.Generate(16, 64, func(i, j int) int32 { return int32((i + j) % 255) })
//	b, _ := matrix.Generate(64, 16, func(i, j int) int32 { return int32((i * j) % 255) })
//	c, _ := matrix.New[int32](16, 16)
//
//	kernel, _ := matmul.Lookup(nil, matmul.KernelTile)
//	err := matrix.MulAdd(c, a, b, kernel.Run)
package contrib
