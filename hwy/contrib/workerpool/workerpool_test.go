// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	require.Equal(t, 4, pool.NumWorkers())
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	require.Equal(t, runtime.GOMAXPROCS(0), pool.NumWorkers())
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 5, 16, 100} {
		results := make([]int, n)
		pool.ParallelFor(n, func(start, end int) {
			for i := start; i < end; i++ {
				results[i] += i * 2
			}
		})
		for i := range n {
			require.Equalf(t, i*2, results[i], "n=%d i=%d", n, i)
		}
	}
}

func TestParallelForStrips(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	n := 37
	var calls, oversized atomic.Int32
	results := make([]int, n)
	pool.ParallelForStrips(n, 8, func(start, end int) {
		calls.Add(1)
		if end-start > 8 {
			oversized.Add(1)
		}
		for i := start; i < end; i++ {
			results[i]++
		}
	})

	require.Equal(t, int32(5), calls.Load())
	require.Zero(t, oversized.Load())
	for i := range n {
		require.Equalf(t, 1, results[i], "index %d visited %d times", i, results[i])
	}
}

func TestParallelForEmpty(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	pool.ParallelFor(0, func(int, int) { t.Fatal("called for n=0") })
	pool.ParallelForStrips(-1, 4, func(int, int) { t.Fatal("called for n<0") })
}

func TestClosedPoolRunsInline(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()

	var sum int
	pool.ParallelFor(10, func(start, end int) {
		for i := start; i < end; i++ {
			sum += i
		}
	})
	require.Equal(t, 45, sum)

	sum = 0
	pool.ParallelForStrips(10, 3, func(start, end int) {
		for i := start; i < end; i++ {
			sum += i
		}
	})
	require.Equal(t, 45, sum)
}
