// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for splitting a
// matrix product into row strips.
//
// A Pool is created once and reused across many kernel invocations, so the
// verification of several kernels does not pay goroutine spawn cost per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(m, func(start, end int) {
//	    multiplyRows(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and live until Close.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel call.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with numWorkers workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes first.
// Calling Close multiple times is safe; a closed pool runs work inline.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// dispatch hands fn to `workers` workers and blocks until all return.
func (p *Pool) dispatch(workers int, fn func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		p.workC <- workItem{
			fn:      func() { fn(w) },
			barrier: &wg,
		}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into contiguous chunks, one per worker, and
// calls fn(start, end) for each. Blocks until all chunks are done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers
	// Rounding up can leave trailing workers with nothing to do.
	workers = (n + chunkSize - 1) / chunkSize

	p.dispatch(workers, func(w int) {
		start := w * chunkSize
		fn(start, min(start+chunkSize, n))
	})
}

// ParallelForStrips calls fn for strips of at most stripSize indices,
// handing strips out with an atomic counter so faster workers take more.
// Blocks until every strip is done.
func (p *Pool) ParallelForStrips(n, stripSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if stripSize <= 0 {
		stripSize = 1
	}

	numStrips := (n + stripSize - 1) / stripSize
	workers := min(p.numWorkers, numStrips)
	if workers == 1 || p.closed.Load() {
		for start := 0; start < n; start += stripSize {
			fn(start, min(start+stripSize, n))
		}
		return
	}

	var next atomic.Int32
	p.dispatch(workers, func(int) {
		for {
			strip := int(next.Add(1)) - 1
			start := strip * stripSize
			if start >= n {
				return
			}
			fn(start, min(start+stripSize, n))
		}
	})
}
