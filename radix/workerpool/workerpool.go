// Copyright 2025 The go-radix Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, eliminating allocation and spawn overhead.
//
// Two execution styles are offered: chunked data parallelism (ParallelFor)
// and fork/join task parallelism (Group), which recursive
// divide-and-conquer callers use to spawn child tasks from inside running
// tasks. A forked task that cannot be queued runs inline on the submitting
// goroutine, so recursion never deadlocks on a saturated pool.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	g := pool.Group()
//	g.Go(func() { work(left) })
//	g.Go(func() { work(right) })
//	g.Wait()
package workerpool

import (
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

// workItem represents a single operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
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
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	// Spawn persistent workers
	for n := 0; n < numWorkers; n++ {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// trySubmit queues item without blocking. It reports false when the pool is
// closed or the queue is full; the caller then runs the item inline.
func (p *Pool) trySubmit(item workItem) bool {
	if p.closed.Load() {
		return false
	}
	select {
	case p.workC <- item:
		return true
	default:
		return false
	}
}

// Group joins a set of forked tasks. A nil pool yields a Group whose Go runs
// everything inline, which keeps sequential and parallel callers on one code
// path.
func (p *Pool) Group() *Group {
	return &Group{pool: p}
}

// Group tracks tasks forked onto a pool and waits for all of them. Go may be
// called from inside a running task; Wait must be called exactly once, after
// the caller has finished its own share of the work.
type Group struct {
	pool *Pool
	wg   sync.WaitGroup
}

// Go runs fn as a pool task if a worker slot is available, inline otherwise.
// It reports whether the task was handed to the pool.
func (g *Group) Go(fn func()) bool {
	if g.pool == nil {
		fn()
		return false
	}
	g.wg.Add(1)
	if g.pool.trySubmit(workItem{fn: fn, barrier: &g.wg}) {
		return true
	}
	fn()
	g.wg.Done()
	return false
}

// Wait blocks until every task forked via Go has completed.
func (g *Group) Wait() {
	g.wg.Wait()
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p == nil || p.closed.Load() {
		fn(0, n)
		return
	}

	// Determine number of workers to use (don't use more workers than items)
	workers := min(p.numWorkers, n)

	// For very small n, just run sequentially
	if workers == 1 {
		fn(0, n)
		return
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			// No work for this worker
			wg.Done()
			continue
		}

		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
