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

package checker

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-tilecheck/hwy"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"
)

// rowsOf copies m into [][]int32 so cmp.Diff prints row-wise.
func rowsOf(m *matrix.Matrix[int32]) [][]int32 {
	out := make([][]int32, m.Rows())
	for i := range out {
		out[i] = append([]int32(nil), m.Row(i)...)
	}
	return out
}

func TestInputsShapesAndValues(t *testing.T) {
	a, b, c, err := Inputs()
	require.NoError(t, err)

	require.Equal(t, [2]int{16, 64}, [2]int{a.Rows(), a.Cols()})
	require.Equal(t, [2]int{64, 16}, [2]int{b.Rows(), b.Cols()})
	require.Equal(t, [2]int{16, 16}, [2]int{c.Rows(), c.Cols()})

	cases := []struct {
		name string
		m    *matrix.Matrix[int32]
		fn   func(i, j int) int32
	}{
		{"A", a, SumMod255},
		{"B", b, ProductMod255},
		{"C", c, Product},
	}
	for _, tc := range cases {
		for i := range tc.m.Rows() {
			for j := range tc.m.Cols() {
				v, err := tc.m.At(i, j)
				require.NoError(t, err)
				require.Equalf(t, tc.fn(i, j), v, "%s(%d,%d)", tc.name, i, j)
			}
		}
	}

	// C has no modulus: 15*15 stays 225, and B wraps at 255.
	v, err := c.At(15, 15)
	require.NoError(t, err)
	require.Equal(t, int32(225), v)
	v, err = b.At(63, 15)
	require.NoError(t, err)
	require.Equal(t, int32((63*15)%255), v)
}

func TestElementBounds(t *testing.T) {
	a, b, _, err := Inputs()
	require.NoError(t, err)

	for name, m := range map[string]*matrix.Matrix[int32]{"A": a, "B": b} {
		lo, hi := m.Bounds()
		require.GreaterOrEqualf(t, lo, int32(0), "%s min", name)
		require.Lessf(t, hi, int32(255), "%s max", name)

		_, err := matrix.Convert[uint8](m)
		require.NoError(t, err, name)
	}

	product, err := matrix.Mul(a, b)
	require.NoError(t, err)
	_, hi := product.Bounds()
	require.LessOrEqual(t, int64(hi), int64(ColsA*254*254))
}

func TestComputeMatchesGolden(t *testing.T) {
	got, err := Compute(matmul.Kernel{})
	require.NoError(t, err)

	if diff := cmp.Diff(rowsOf(GoldenMatrix()), rowsOf(got)); diff != "" {
		t.Fatalf("C + A×B mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeAddsProductIntoC(t *testing.T) {
	// A kernel that overwrites its output still yields C + A×B: the product
	// is formed on its own and then added into C.
	overwrite := matmul.Kernel{
		Name: "overwrite",
		Run: func(a, b, c []int32, m, n, k int) error {
			matmul.MatMul(a, b, c, m, n, k)
			return nil
		},
	}
	got, err := Compute(overwrite)
	require.NoError(t, err)
	if diff := cmp.Diff(rowsOf(GoldenMatrix()), rowsOf(got)); diff != "" {
		t.Fatalf("C + A×B mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	first, err := Compute(matmul.Reference)
	require.NoError(t, err)
	second, err := Compute(matmul.Reference)
	require.NoError(t, err)
	require.True(t, first.Equal(second))
}

func TestEveryKernelMatchesGolden(t *testing.T) {
	t.Logf("Dispatch level: %s", hwy.CurrentName())

	for _, kernel := range matmul.Kernels(nil) {
		t.Run(kernel.Name, func(t *testing.T) {
			got, err := Compute(kernel)
			require.NoError(t, err)
			if diff := cmp.Diff(rowsOf(GoldenMatrix()), rowsOf(got)); diff != "" {
				t.Fatalf("%s mismatch (-want +got):\n%s", kernel.Name, diff)
			}
		})
	}
}

func TestRunWritesGolden(t *testing.T) {
	var buf bytes.Buffer
	result, err := Run(&buf)
	require.NoError(t, err)
	require.True(t, result.Equal(GoldenMatrix()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, RowsC)
	require.Equal(t, "       0   85344  170688  256032  341376", lines[0][:40])
	require.True(t, strings.HasSuffix(lines[RowsC-1], "  358431  350355"))
	for _, line := range lines {
		require.Len(t, line, ColsC*matrix.ColumnWidth)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRunWriteError(t *testing.T) {
	_, err := Run(failingWriter{})
	require.ErrorContains(t, err, "write result")
}

func TestProblemValidation(t *testing.T) {
	_, err := Problem{M: 0, N: 16, K: 64}.Compute(matmul.Reference)
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	_, _, _, err = Problem{M: 4, N: -1, K: 4}.Inputs()
	require.ErrorIs(t, err, matrix.ErrInvalidDimension)

	require.Equal(t, "16x64·64x16", Fixed.String())
}

func TestProblemOtherShapes(t *testing.T) {
	// The index functions stay within a byte for K < 255, so the byte
	// kernels accept any of these.
	for _, p := range []Problem{{M: 1, N: 1, K: 1}, {M: 5, N: 7, K: 9}, {M: 33, N: 17, K: 100}} {
		report, err := p.Verify(context.Background())
		require.NoError(t, err, p.String())
		require.Empty(t, report.Failed())
	}
}

func TestVerify(t *testing.T) {
	report, err := Verify(context.Background())
	require.NoError(t, err)

	require.Equal(t, Fixed, report.Problem)
	require.Equal(t, hwy.CurrentLevel(), report.Level)
	require.Equal(t, []string{
		matmul.KernelReference, matmul.KernelBlocked, matmul.KernelTransposed,
		matmul.KernelParallel, matmul.KernelParallelKL, matmul.KernelVNNI,
		matmul.KernelTile, matmul.KernelMMLA,
		GonumOracle,
	}, report.Names())
	require.Empty(t, report.Failed())

	for _, res := range report.Results {
		t.Logf("%-10s level=%-6s native=%-5v %v", res.Kernel, res.Level, res.Native, res.Elapsed)
	}
}

func TestVerifyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Verify(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotEmpty(t, report.Failed())
}

func TestCompare(t *testing.T) {
	want := GoldenMatrix()
	got := want.Clone()
	require.NoError(t, compare("same", want, got))

	require.NoError(t, got.Set(3, 7, 1))
	err := compare("off", want, got)
	require.ErrorIs(t, err, ErrMismatch)
	require.ErrorContains(t, err, "off at (3,7)")

	small, err := matrix.New[int32](2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, compare("shape", want, small), ErrMismatch)
}

func TestGonumOracle(t *testing.T) {
	got, err := Fixed.computeGonum()
	require.NoError(t, err)
	require.True(t, got.Equal(GoldenMatrix()))
}

func TestMeasure(t *testing.T) {
	calls := 0
	timing, err := Measure(5, func() error {
		calls++
		time.Sleep(time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 5, calls)
	require.Equal(t, 5, timing.Runs)
	require.GreaterOrEqual(t, timing.Total, 5*time.Millisecond)
	require.Equal(t, timing.Total/5, timing.Avg)
	require.Contains(t, timing.String(), "over 5 runs")

	for _, runs := range []int{0, -3} {
		_, err := Measure(runs, func() error { return nil })
		require.ErrorIs(t, err, ErrInvalidRuns)
	}

	boom := errors.New("boom")
	_, err = Measure(3, func() error { return boom })
	require.ErrorIs(t, err, boom)
}
