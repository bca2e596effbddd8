// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversAllIndices(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 1000
	hits := make([]atomic.Int32, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i].Add(1)
		}
	})

	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, got)
		}
	}
}

func TestParallelForNilPoolRunsInline(t *testing.T) {
	var pool *Pool
	covered := 0
	pool.ParallelFor(10, func(start, end int) {
		covered += end - start
	})
	if covered != 10 {
		t.Errorf("nil pool covered %d indices, want 10", covered)
	}
}

func TestParallelForUnevenChunks(t *testing.T) {
	// n not divisible by the worker count: the last chunk is short and no
	// index may be dropped or visited twice.
	pool := New(3)
	defer pool.Close()

	n := 777
	hits := make([]atomic.Int32, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i].Add(1)
		}
	})
	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, got)
		}
	}
}

func TestGroupJoinsForkedTasks(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var done atomic.Int32
	g := pool.Group()
	for n := 0; n < 100; n++ {
		g.Go(func() { done.Add(1) })
	}
	g.Wait()

	if done.Load() != 100 {
		t.Errorf("completed %d tasks before Wait returned, want 100", done.Load())
	}
}

func TestGroupNestedForks(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	var done atomic.Int32
	g := pool.Group()
	for n := 0; n < 8; n++ {
		g.Go(func() {
			// Fork from inside a running task, the recursion pattern
			// the sorter relies on.
			for m := 0; m < 8; m++ {
				g.Go(func() { done.Add(1) })
			}
		})
	}
	g.Wait()

	if done.Load() != 64 {
		t.Errorf("completed %d nested tasks, want 64", done.Load())
	}
}

func TestGroupNilPoolRunsInline(t *testing.T) {
	var pool *Pool
	g := pool.Group()
	ran := false
	if forked := g.Go(func() { ran = true }); forked {
		t.Errorf("nil pool should never fork")
	}
	if !ran {
		t.Errorf("inline task did not run")
	}
	g.Wait()
}

func TestGroupSaturatedPoolFallsBackInline(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	// Occupy the single worker, then overfill the queue; the overflow must
	// run inline rather than block.
	block := make(chan struct{})
	g := pool.Group()
	g.Go(func() { <-block })

	var done atomic.Int32
	for n := 0; n < 50; n++ {
		g.Go(func() { done.Add(1) })
	}
	if done.Load() < 48 {
		t.Errorf("expected nearly all overflow tasks to run inline, got %d", done.Load())
	}

	close(block)
	g.Wait()
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := New(2)
	pool.Close()
	pool.Close()

	// A closed pool refuses forks; tasks still run inline.
	g := pool.Group()
	ran := false
	g.Go(func() { ran = true })
	g.Wait()
	if !ran {
		t.Errorf("task did not run after close")
	}
}

func TestNumWorkers(t *testing.T) {
	pool := New(7)
	defer pool.Close()
	if pool.NumWorkers() != 7 {
		t.Errorf("NumWorkers = %d, want 7", pool.NumWorkers())
	}
	var nilPool *Pool
	if nilPool.NumWorkers() != 1 {
		t.Errorf("nil pool NumWorkers = %d, want 1", nilPool.NumWorkers())
	}
}
