// Copyright 2025 megablocks-go Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestDefaultIsShared(t *testing.T) {
	require.Same(t, Default(), Default())
	require.Equal(t, runtime.GOMAXPROCS(0), Default().NumWorkers())
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, batch := range []int{0, 1, 3, 10, 1000} {
		n := 101
		var visits [101]atomic.Int32
		pool.ParallelForAtomicBatched(n, batch, func(start, end int) {
			for i := start; i < end; i++ {
				visits[i].Add(1)
			}
		})
		for i := range n {
			assert.Equal(t, int32(1), visits[i].Load(), "batch=%d index=%d", batch, i)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	n := 3
	var count atomic.Int32
	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) { called = true })
	pool.ParallelForAtomicBatched(0, 4, func(start, end int) { called = true })

	if called {
		t.Error("n=0 should not call fn")
	}
}

func TestNilPoolRunsInline(t *testing.T) {
	var pool *Pool
	var got [2]int
	pool.ParallelForAtomicBatched(17, 4, func(start, end int) {
		got = [2]int{start, end}
	})
	require.Equal(t, [2]int{0, 17}, got)
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelForAtomicBatched(n, 8, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := range n {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestPanicPropagatesToCaller(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var finished atomic.Int32
	defer func() {
		r := recover()
		require.NotNil(t, r)
		perr, ok := r.(*PanicError)
		require.True(t, ok, "recovered %T, want *PanicError", r)
		assert.Equal(t, "row 13", perr.Value)
		assert.Contains(t, perr.Error(), "row 13")

		// Every other batch still ran before the panic was re-raised.
		assert.Equal(t, int32(63), finished.Load())

		// The pool keeps working after a task panicked.
		var count atomic.Int32
		pool.ParallelForAtomicBatched(64, 1, func(start, end int) { count.Add(int32(end - start)) })
		assert.Equal(t, int32(64), count.Load())
	}()

	pool.ParallelForAtomicBatched(64, 1, func(start, end int) {
		if start == 13 {
			panic("row 13")
		}
		finished.Add(1)
	})
	t.Fatal("expected panic")
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000
	for b.Loop() {
		pool.ParallelFor(n, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForAtomicBatched(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000
	for b.Loop() {
		pool.ParallelForAtomicBatched(n, 10, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
