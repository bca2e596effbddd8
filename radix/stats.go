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

import "sync/atomic"

// Strategy identifies which branch the selector took for a partition.
type Strategy int

const (
	// StrategySmallSort is the comparison-sort fallback for tiny partitions.
	StrategySmallSort Strategy = iota

	// StrategySkip advances the digit of a partition that is uniform in the
	// current digit without moving anything.
	StrategySkip

	// StrategyCountingSort finishes a mid-size partition with the
	// scratch-buffer LSD counting sort.
	StrategyCountingSort

	// StrategyMsdPartition splits a partition in place into up to 256
	// buckets and recurses.
	StrategyMsdPartition

	numStrategies
)

func (s Strategy) String() string {
	switch s {
	case StrategySmallSort:
		return "SmallSort"
	case StrategySkip:
		return "Skip"
	case StrategyCountingSort:
		return "CountingSort"
	case StrategyMsdPartition:
		return "MsdPartition"
	default:
		return "Unknown"
	}
}

// Stats receives strategy-selection events during a sort.
//
// Implementations must be safe for concurrent use; the engine calls them
// from every worker. All methods are expected to be lightweight and
// non-blocking. Collection is off by default: the zero Options uses
// NoopStats.
type Stats interface {
	// Record notes that one partition was handled by the given strategy.
	Record(s Strategy)

	// Forked notes that one child partition was spawned as a pool task
	// rather than run inline.
	Forked()
}

// NoopStats discards all events. Use when collection is disabled and zero
// overhead is desired.
type NoopStats struct{}

func (NoopStats) Record(Strategy) {}
func (NoopStats) Forked()         {}

// AtomicStats is a lock-free Stats backed by atomics.
//
// Writes are optimized for hot paths; reads are intended for cold-path
// observation after the sort returns.
type AtomicStats struct {
	strategies [numStrategies]atomic.Uint64

	_ [56]byte // padding to avoid false sharing

	forks atomic.Uint64
}

// Record notes one partition handled by s.
func (a *AtomicStats) Record(s Strategy) {
	a.strategies[s].Add(1)
}

// Forked notes one spawned child task.
func (a *AtomicStats) Forked() {
	a.forks.Add(1)
}

// Count returns how many partitions the given strategy handled.
func (a *AtomicStats) Count(s Strategy) uint64 {
	return a.strategies[s].Load()
}

// Forks returns how many child partitions ran as pool tasks.
func (a *AtomicStats) Forks() uint64 {
	return a.forks.Load()
}

// Reset zeroes all counters.
func (a *AtomicStats) Reset() {
	for i := range a.strategies {
		a.strategies[i].Store(0)
	}
	a.forks.Store(0)
}
