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
	"github.com/samber/lo"

	"github.com/ajroetker/go-tilecheck/hwy"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/workerpool"
)

// Size-based dispatch thresholds for the scalar level.
const (
	// Below this total ops count, the plain triple loop is fastest.
	SmallMatrixThreshold = 64 * 64 * 64 // 262144 ops

	// At or above this total ops count, the parallel strip kernel is used.
	LargeMatrixThreshold = 256 * 256 * 256
)

// Kernel names as reported by Kernels.
const (
	KernelReference  = "reference"
	KernelBlocked    = "blocked"
	KernelTransposed = "klast"
	KernelParallel   = "parallel"
	KernelParallelKL = "klast-parallel"
	KernelVNNI       = "vnni"
	KernelTile       = "amx-tile"
	KernelMMLA       = "i8mm"
)

// Func is the common signature of every registered kernel: C += A * B on
// row-major int32 matrices. Byte kernels narrow A and B first and return
// ErrNotUint8 when they do not fit.
type Func func(a, b, c []int32, m, n, k int) error

// Kernel is a named C += A * B implementation together with the dispatch
// level whose hardware it models.
type Kernel struct {
	Name  string
	Level hwy.DispatchLevel
	Run   Func
}

// Native reports whether the hardware this kernel models is present.
func (k Kernel) Native() bool {
	return hwy.Supports(k.Level)
}

// Reference is the triple-loop kernel the others are checked against.
var Reference = Kernel{
	Name:  KernelReference,
	Level: hwy.DispatchScalar,
	Run: func(a, b, c []int32, m, n, k int) error {
		MatMulAdd(a, b, c, m, n, k)
		return nil
	},
}

// Kernels returns every kernel, Reference first. The parallel kernels run
// on pool; with a nil pool they run single-threaded.
func Kernels(pool *workerpool.Pool) []Kernel {
	return []Kernel{
		Reference,
		{
			Name:  KernelBlocked,
			Level: hwy.DispatchScalar,
			Run: func(a, b, c []int32, m, n, k int) error {
				BlockedMatMulAdd(a, b, c, m, n, k)
				return nil
			},
		},
		{
			Name:  KernelTransposed,
			Level: hwy.DispatchScalar,
			Run: func(a, b, c []int32, m, n, k int) error {
				TransposedMatMulAdd(a, b, c, m, n, k)
				return nil
			},
		},
		{
			Name:  KernelParallel,
			Level: hwy.DispatchScalar,
			Run: func(a, b, c []int32, m, n, k int) error {
				ParallelMatMulAdd(pool, a, b, c, m, n, k)
				return nil
			},
		},
		{
			Name:  KernelParallelKL,
			Level: hwy.DispatchScalar,
			Run: func(a, b, c []int32, m, n, k int) error {
				ParallelTransposedMatMulAdd(pool, a, b, c, m, n, k)
				return nil
			},
		},
		{
			Name:  KernelVNNI,
			Level: hwy.DispatchVNNI,
			Run: bytesKernel(func(a, b []uint8, c []int32, m, n, k int) error {
				VNNIMatMulAdd(a, PackVNNI(b, k, n), c, m, n, k)
				return nil
			}),
		},
		{
			Name:  KernelTile,
			Level: hwy.DispatchAMX,
			Run: bytesKernel(func(a, b []uint8, c []int32, m, n, k int) error {
				return TileMatMulAdd(DefaultTileConfig(), a, PackVNNI(b, k, n), c, m, n, k)
			}),
		},
		{
			Name:  KernelMMLA,
			Level: hwy.DispatchI8MM,
			Run: bytesKernel(func(a, b []uint8, c []int32, m, n, k int) error {
				MMLAMatMulAdd(a, PackMMLA(b, k, n), c, m, n, k)
				return nil
			}),
		},
	}
}

// Lookup returns the kernel called name.
func Lookup(pool *workerpool.Pool, name string) (Kernel, bool) {
	return lo.Find(Kernels(pool), func(k Kernel) bool { return k.Name == name })
}

// Auto selects the kernel for the current dispatch level and problem size.
//
// Byte-capable levels pick the kernel modelling their instructions:
//   - amx: amx-tile
//   - vnni: vnni
//   - i8mm, sme: i8mm
//
// Scalar picks by total ops (M * N * K):
//   - Small (<64^3): reference triple loop
//   - Medium: blocked
//   - Large (>=256^3): parallel strips
func Auto(pool *workerpool.Pool, m, n, k int) Kernel {
	var name string
	switch hwy.CurrentLevel() {
	case hwy.DispatchAMX:
		name = KernelTile
	case hwy.DispatchVNNI:
		name = KernelVNNI
	case hwy.DispatchI8MM, hwy.DispatchSME:
		name = KernelMMLA
	default:
		totalOps := m * n * k
		switch {
		case totalOps < SmallMatrixThreshold:
			name = KernelReference
		case totalOps < LargeMatrixThreshold:
			name = KernelBlocked
		default:
			name = KernelParallel
		}
	}

	kernel, ok := Lookup(pool, name)
	if !ok {
		return Reference
	}
	return kernel
}

// bytesKernel adapts a byte kernel to Func by narrowing A and B.
func bytesKernel(fn func(a, b []uint8, c []int32, m, n, k int) error) Func {
	return func(a, b, c []int32, m, n, k int) error {
		checkDims(a, b, c, m, n, k)

		a8, err := ToUint8(a[:m*k])
		if err != nil {
			return err
		}
		b8, err := ToUint8(b[:k*n])
		if err != nil {
			return err
		}
		return fn(a8, b8, c, m, n, k)
	}
}
