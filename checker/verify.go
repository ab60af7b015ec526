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
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/ajroetker/go-tilecheck/hwy"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matmul"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/matrix"
	"github.com/ajroetker/go-tilecheck/hwy/contrib/workerpool"
)

// ErrMismatch is returned when a kernel disagrees with the reference.
var ErrMismatch = errors.New("checker: result mismatch")

// GonumOracle is the Result name of the float64 gonum cross-check.
const GonumOracle = "gonum"

// Result is the outcome of checking one kernel.
type Result struct {
	Kernel  string
	Level   hwy.DispatchLevel
	Native  bool // hardware modelled by the kernel is present
	Elapsed time.Duration
	Err     error
}

// Report collects the Results of a Verify call in kernel order, the gonum
// oracle last.
type Report struct {
	Problem Problem
	Level   hwy.DispatchLevel
	Results []Result
}

// Names returns the checked kernel names.
func (r *Report) Names() []string {
	return lo.Map(r.Results, func(res Result, _ int) string { return res.Kernel })
}

// Failed returns the Results that carry an error.
func (r *Report) Failed() []Result {
	return lo.Filter(r.Results, func(res Result, _ int) bool { return res.Err != nil })
}

// Verify runs every matmul kernel and the gonum oracle on p concurrently and
// compares each result to the reference kernel. The first disagreement
// cancels the remaining checks and is returned wrapped in ErrMismatch,
// together with the partial Report.
func (p Problem) Verify(ctx context.Context) (*Report, error) {
	want, err := p.Compute(matmul.Reference)
	if err != nil {
		return nil, err
	}

	pool := workerpool.New(0)
	defer pool.Close()

	kernels := matmul.Kernels(pool)
	report := &Report{
		Problem: p,
		Level:   hwy.CurrentLevel(),
		Results: make([]Result, len(kernels)+1),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, kernel := range kernels {
		report.Results[i] = Result{Kernel: kernel.Name, Level: kernel.Level, Native: kernel.Native()}
		g.Go(func() error {
			return check(ctx, &report.Results[i], want, func() (*matrix.Matrix[int32], error) {
				return p.Compute(kernel)
			})
		})
	}

	oracle := &report.Results[len(kernels)]
	*oracle = Result{Kernel: GonumOracle, Level: hwy.DispatchScalar, Native: true}
	g.Go(func() error {
		return check(ctx, oracle, want, p.computeGonum)
	})

	return report, g.Wait()
}

// Verify checks the Fixed problem.
func Verify(ctx context.Context) (*Report, error) {
	return Fixed.Verify(ctx)
}

// check runs compute, compares against want and records the outcome in res.
func check(ctx context.Context, res *Result, want *matrix.Matrix[int32], compute func() (*matrix.Matrix[int32], error)) error {
	if err := ctx.Err(); err != nil {
		res.Err = err
		return err
	}

	start := time.Now()
	got, err := compute()
	res.Elapsed = time.Since(start)
	if err == nil {
		err = compare(res.Kernel, want, got)
	}
	res.Err = err
	return err
}

// compare reports the first element where got differs from want.
func compare(name string, want, got *matrix.Matrix[int32]) error {
	wr, wc := want.Shape()
	gr, gc := got.Shape()
	if wr != gr || wc != gc {
		return fmt.Errorf("%w: %s returned %dx%d, want %dx%d", ErrMismatch, name, gr, gc, wr, wc)
	}
	wantData, gotData := want.Data(), got.Data()
	for idx, w := range wantData {
		if g := gotData[idx]; g != w {
			return fmt.Errorf("%w: %s at (%d,%d): got %d, want %d", ErrMismatch, name, idx/wc, idx%wc, g, w)
		}
	}
	return nil
}

// computeGonum evaluates C + A×B in float64 with gonum. Every intermediate
// value of the fixed problem is an integer far below 2^53, so the float
// result is exact and must round-trip to the int32 reference.
func (p Problem) computeGonum() (*matrix.Matrix[int32], error) {
	a, b, c, err := p.Inputs()
	if err != nil {
		return nil, err
	}

	var result mat.Dense
	result.Mul(toDense(a), toDense(b))
	result.Add(&result, toDense(c))

	out, err := matrix.New[int32](result.Dims())
	if err != nil {
		return nil, err
	}
	rows, cols := result.Dims()
	for i := range rows {
		row := out.Row(i)
		for j := range cols {
			v := result.At(i, j)
			if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fmt.Errorf("%w: gonum at (%d,%d): %v is not an int32", ErrMismatch, i, j, v)
			}
			row[j] = int32(v)
		}
	}
	return out, nil
}

func toDense(m *matrix.Matrix[int32]) *mat.Dense {
	rows, cols := m.Shape()
	data := make([]float64, rows*cols)
	for i, v := range m.Data() {
		data[i] = float64(v)
	}
	return mat.NewDense(rows, cols, data)
}
