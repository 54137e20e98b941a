// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// row-parallel data movement. A Pool is created once and reused across many
// gather/scatter calls, so no goroutines are spawned per call.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	// One task per row, grabbed in batches of 4 rows.
//	pool.ParallelForAtomicBatched(rows, 4, func(start, end int) {
//	    for r := start; r < end; r++ {
//	        moveRow(r)
//	    }
//	})
//
// A panic raised by fn inside a worker is recovered and re-raised on the
// goroutine that called the Parallel* method, after every worker has
// finished, so a failing call never leaves work running behind it.
package workerpool

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is one worker's share of a parallel operation.
type workItem struct {
	fn      func()
	barrier *barrier
}

// barrier waits for the workers of one operation and keeps the first panic
// any of them raised.
type barrier struct {
	wg       sync.WaitGroup
	panicked atomic.Pointer[PanicError]
}

// PanicError wraps a value recovered from a panicking task so it can be
// re-raised on the calling goroutine.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v\n%s", e.Value, e.Stack)
}

func (b *barrier) run(fn func()) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			b.panicked.CompareAndSwap(nil, &PanicError{Value: r, Stack: buf})
		}
	}()
	fn()
}

func (b *barrier) wait() {
	b.wg.Wait()
	if p := b.panicked.Load(); p != nil {
		panic(p)
	}
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
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

var defaultPool = sync.OnceValue(func() *Pool { return New(0) })

// Default returns a process-wide pool sized to GOMAXPROCS. It is created on
// first use and never closed.
func Default() *Pool {
	return defaultPool()
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.barrier.run(item.fn)
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Work already queued completes.
// Calling Close multiple times is safe. A closed pool still accepts
// Parallel* calls and runs them on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// sequential reports whether a call with the given number of units should
// run inline on the caller.
func (p *Pool) sequential(units int) bool {
	return p == nil || p.closed.Load() || min(p.numWorkers, units) <= 1
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker. Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p.sequential(n) {
		fn(0, n)
		return
	}

	workers := min(p.numWorkers, n)
	chunkSize := (n + workers - 1) / workers

	b := &barrier{}
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		b.wg.Add(1)
		p.workC <- workItem{fn: func() { fn(start, end) }, barrier: b}
	}
	b.wait()
}

// ParallelForAtomicBatched executes fn over [0, n) using atomic work
// stealing: each worker repeatedly grabs the next batch of batchSize indices
// until none remain. This balances load when work per index varies.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	numBatches := (n + batchSize - 1) / batchSize
	if p.sequential(numBatches) {
		fn(0, n)
		return
	}

	var nextBatch atomic.Int64
	b := &barrier{}
	workers := min(p.numWorkers, numBatches)
	b.wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					start := int(nextBatch.Add(1)-1) * batchSize
					if start >= n {
						return
					}
					fn(start, min(start+batchSize, n))
				}
			},
			barrier: b,
		}
	}
	b.wait()
}
