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

// partitionInPlace permutes items so that every bucket of the given digit
// occupies a contiguous range in ascending digit order, using the
// cycle-following (American flag) scheme: each bucket's prefix sum is its
// write head, and misplaced items are swapped along their displacement chain
// until the item landing at the head belongs there. Every item is written to
// its final bucket at most once, and no auxiliary buffer is allocated.
//
// The returned array holds each bucket's start offset; bucket b spans
// [starts[b], starts[b+1]) and bucket 255 ends at len(items). Items inside a
// bucket are left in encountered order, which is what makes the overall sort
// unstable.
func partitionInPlace[T any](items []T, digit int, counts *[256]int, at func(T, int) uint8) [256]int {
	starts := prefixSums(counts)
	heads := starts
	ends := endOffsets(counts, &starts)

	for b := 0; b < 256; b++ {
		for heads[b] < ends[b] {
			d := at(items[heads[b]], digit)
			if int(d) == b {
				heads[b]++
				continue
			}
			items[heads[b]], items[heads[d]] = items[heads[d]], items[heads[b]]
			heads[d]++
		}
	}

	return starts
}
