// Copyright 2025 go-radix Authors
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

package radix

import (
	"sync/atomic"

	"github.com/ajroetker/go-radix/radix/workerpool"
)

// Options configure a sort call. The zero value sorts sequentially with the
// compiled-in tuning and no instrumentation.
type Options struct {
	// Pool supplies the workers for parallel execution. Nil means fully
	// sequential; the algorithm and resulting key order are identical
	// either way.
	Pool *workerpool.Pool

	// Tuning overrides the strategy thresholds. Nil means DefaultTuning.
	// The table is only read during the call.
	Tuning *Tuning

	// Stats receives strategy-selection events. Nil means NoopStats.
	Stats Stats
}

func (o *Options) fillDefaults() {
	if o.Tuning == nil {
		t := DefaultTuning()
		o.Tuning = &t
	}
	if o.Stats == nil {
		o.Stats = NoopStats{}
	}
}

// Sort reorders items in place into ascending order of their Key byte
// sequences, sequentially with default tuning. The sort is unstable: items
// with fully equal keys may end up in any relative order.
func Sort[T Key](items []T) {
	SortWithOptions(items, Options{})
}

// SortWithOptions is Sort with an explicit pool, tuning table, or stats
// collector.
func SortWithOptions[T Key](items []T, opts Options) {
	at := func(v T, i int) uint8 { return v.DigitAt(i) }
	SortFuncWithOptions(items, digitCount(items), at, opts)
}

// SortFunc reorders items in place into ascending order of the byte sequence
// at(item, 0..digits-1), most significant byte first. It is the closure
// counterpart of Sort for types that cannot or should not implement Key.
func SortFunc[T any](items []T, digits int, at func(T, int) uint8) {
	SortFuncWithOptions(items, digits, at, Options{})
}

// SortFuncWithOptions is SortFunc with an explicit pool, tuning table, or
// stats collector. A digits value of zero or less leaves the multiset of
// items intact with no ordering work; there is nothing to discriminate on.
func SortFuncWithOptions[T any](items []T, digits int, at func(T, int) uint8, opts Options) {
	if len(items) <= 1 || digits <= 0 {
		return
	}
	opts.fillDefaults()

	s := &sorter[T]{
		items:  items,
		digits: digits,
		at:     at,
		tuning: *opts.Tuning,
		pool:   opts.Pool,
		stats:  opts.Stats,
	}
	if s.pool != nil {
		s.budget.Store(int64(s.pool.NumWorkers() * s.tuning.ParallelBudgetFactor))
	}

	g := s.pool.Group()
	s.sort(g, span{0, len(items)}, 0, true)
	g.Wait()
}

// SortUint8s sorts x ascending via a 1-byte radix key.
func SortUint8s(x []uint8) {
	SortFunc(x, 1, func(v uint8, _ int) uint8 { return v })
}

// SortUint16s sorts x ascending via a 2-byte radix key.
func SortUint16s(x []uint16) {
	SortFunc(x, 2, func(v uint16, i int) uint8 { return uint8(v >> ((1 - i) * 8)) })
}

// SortUint32s sorts x ascending via a 4-byte radix key.
func SortUint32s(x []uint32) {
	SortFunc(x, 4, func(v uint32, i int) uint8 { return uint8(v >> ((3 - i) * 8)) })
}

// SortUint64s sorts x ascending via an 8-byte radix key.
func SortUint64s(x []uint64) {
	SortFunc(x, 8, func(v uint64, i int) uint8 { return uint8(v >> ((7 - i) * 8)) })
}

// digitCount reads the key width from the element type. The width is a
// property of the type, so any element will do.
func digitCount[T Key](items []T) int {
	if len(items) == 0 {
		return 0
	}
	return items[0].DigitCount()
}

// span is a half-open index range [start, end) into the backing slice. The
// digit index travels alongside it: all digits before the current one are
// already equal within the span.
type span struct {
	start, end int
}

func (p span) len() int { return p.end - p.start }

// sorter carries the per-call state shared by every partition task. The
// items slice is the only mutable shared resource, and concurrent tasks
// always operate on disjoint spans of it.
type sorter[T any] struct {
	items  []T
	digits int
	at     func(T, int) uint8
	tuning Tuning
	pool   *workerpool.Pool
	stats  Stats
	budget atomic.Int64
}

// sort resolves one partition. It is the strategy selector: each iteration
// either finishes the partition with a terminal strategy or advances the
// digit and loops. root marks the initial whole-slice call, the only place
// where histogram counting itself is parallelized.
func (s *sorter[T]) sort(g *workerpool.Group, p span, digit int, root bool) {
	for {
		part := s.items[p.start:p.end]

		if len(part) <= s.tuning.SmallSortMax {
			s.stats.Record(StrategySmallSort)
			insertionSort(part, digit, s.digits, s.at)
			return
		}
		if digit >= s.digits {
			// Fully discriminated by earlier digits.
			return
		}

		var counts [256]int
		if root && s.pool != nil && len(part) >= s.tuning.ParallelHistogramMin {
			counts = s.parallelHistogram(part, digit)
		} else {
			counts = histogram(part, digit, s.at)
		}

		if isUniform(&counts) {
			// Still the same span, so a root partition stays root.
			s.stats.Record(StrategySkip)
			digit++
			continue
		}

		if len(part) <= s.tuning.CountingSortMax {
			s.stats.Record(StrategyCountingSort)
			countingSort(part, digit, s.digits-1, s.at)
			return
		}

		s.stats.Record(StrategyMsdPartition)
		starts := partitionInPlace(part, digit, &counts, s.at)

		for b := 0; b < 256; b++ {
			childStart := p.start + starts[b]
			childEnd := p.end
			if b < 255 {
				childEnd = p.start + starts[b+1]
			}
			child := span{childStart, childEnd}
			if child.len() > 1 {
				s.dispatch(g, child, digit+1)
			}
		}
		return
	}
}

// dispatch runs a child partition, forking it onto the pool when it is large
// enough to amortize task overhead and the per-call fork budget still has
// room. Everything else runs inline on the current goroutine.
func (s *sorter[T]) dispatch(g *workerpool.Group, p span, digit int) {
	if s.pool != nil && p.len() >= s.tuning.ParallelForkMin && s.takeToken() {
		forked := g.Go(func() {
			defer s.releaseToken()
			s.sort(g, p, digit, false)
		})
		if forked {
			s.stats.Forked()
		}
		return
	}
	s.sort(g, p, digit, false)
}

// takeToken claims one unit of the fork budget, reporting false when the
// budget is exhausted.
func (s *sorter[T]) takeToken() bool {
	for {
		cur := s.budget.Load()
		if cur <= 0 {
			return false
		}
		if s.budget.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

func (s *sorter[T]) releaseToken() {
	s.budget.Add(1)
}

// parallelHistogram splits the partition into per-worker tiles, counts the
// tiles on the pool via ParallelFor, and merges them elementwise. Counting
// is a pure read, so tiles only need to be disjoint, not bucket-aligned.
func (s *sorter[T]) parallelHistogram(part []T, digit int) [256]int {
	tiles := s.pool.NumWorkers()
	tileSize := cdiv(len(part), tiles)
	tileCounts := make([][256]int, tiles)

	s.pool.ParallelFor(tiles, func(start, end int) {
		for t := start; t < end; t++ {
			lo := t * tileSize
			hi := min(lo+tileSize, len(part))
			if lo >= hi {
				continue
			}
			tileCounts[t] = histogram(part[lo:hi], digit, s.at)
		}
	})

	counts := tileCounts[0]
	for _, tc := range tileCounts[1:] {
		for b := 0; b < 256; b++ {
			counts[b] += tc[b]
		}
	}
	return counts
}
