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

// Package matmul provides integer matrix multiplication kernels shaped after
// the matrix hardware they stand in for.
//
// Every kernel works on flat row-major slices with the dimensions passed as
// (m, n, k): A is m×k, B is k×n and C is m×n. The accumulating kernels
// compute C += A×B, which is the contract of the AMX TDPB* and VNNI VPDPB*
// instructions.
//
// Example usage:
//
//	// C += A * B where A is MxK, B is KxN, C is MxN
//	a := make([]int32, M*K) // row-major
//	b := make([]int32, K*N) // row-major
//	c := make([]int32, M*N) // accumulator, row-major
//
//	matmul.MatMulAdd(a, b, c, M, N, K)
//
// The byte kernels mirror the hardware data layouts:
//   - VNNIMatMulAdd: B packed by PackVNNI into [K/4][N][4] quads
//   - TileMatMulAdd: AMX tiles configured by a TileConfig, B packed by PackVNNI
//   - MMLAMatMulAdd: I8MM 2×8·8×2 blocks, B packed by PackMMLA
//
// Auto picks the kernel matching hwy.CurrentLevel, and Kernels lists all of
// them behind a common signature so they can be checked against MatMulAdd.
package matmul
