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

// Package radix provides a generic, parallel, unstable radix sort.
//
// Items are ordered by a caller-supplied fixed-width byte key: the Key
// interface (or a closure pair via SortFunc) exposes one byte per digit
// position, most significant first, and the engine reorders the slice in
// place into ascending order of that byte sequence. The relative order of
// items with fully equal keys is not preserved.
//
// # Algorithm
//
// The engine is a most-significant-digit (MSD) radix sort with per-partition
// strategy selection:
//   - Comparison (insertion) sort for partitions below a small cutoff, where
//     256-bucket bookkeeping costs more than it saves
//   - A skip short-circuit for partitions that are uniform in the current
//     digit, advancing to the next digit without moving anything
//   - A scratch-buffer LSD counting sort for mid-size partitions, finishing
//     all remaining digits without further recursion
//   - In-place cycle-following bucket partitioning for large partitions,
//     recursing independently into each nonempty bucket
//
// The crossover thresholds are hardware dependent and live in a Tuning table
// that the offline tools under cmd/ regenerate; see DefaultTuning.
//
// # Parallelism
//
// Pass a workerpool.Pool via Options to fork child partitions as independent
// tasks. Buckets are disjoint index ranges into the same backing slice, so
// sibling tasks never share memory and no locking is involved. With a nil
// pool the identical code path runs fully sequentially. The sorted order of
// distinct keys is the same at any worker count; only ties among equal keys
// may land differently.
//
// # Example Usage
//
//	radix.SortUint32s(values)
//
//	// Custom key spanning two fields:
//	radix.SortFunc(recs, 6, func(r Record, i int) uint8 {
//		if i < 4 {
//			return uint8(r.Account >> ((3 - i) * 8))
//		}
//		return uint8(r.Region >> ((5 - i) * 8))
//	})
//
// # Contract
//
// The key extractor must be pure and consistent for the duration of a call;
// the engine never calls DigitAt with an out-of-range index and assumes no
// concurrent mutation of the items. An inconsistent extractor yields an
// undefined order, not a crash. Sorting never copies the slice wholesale;
// only bounded scratch buffers are allocated.
package radix
