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

// histogram counts the occurrences of each byte value at the given digit.
// Four independent accumulator arrays break the store-to-load dependency
// between consecutive items; they are folded together at the end.
func histogram[T any](items []T, digit int, at func(T, int) uint8) [256]int {
	var c1, c2, c3, c4 [256]int

	n := len(items)
	i := 0
	for ; i+4 <= n; i += 4 {
		c1[at(items[i], digit)]++
		c2[at(items[i+1], digit)]++
		c3[at(items[i+2], digit)]++
		c4[at(items[i+3], digit)]++
	}
	for ; i < n; i++ {
		c1[at(items[i], digit)]++
	}

	for b := 0; b < 256; b++ {
		c1[b] += c2[b] + c3[b] + c4[b]
	}
	return c1
}

// prefixSums converts a histogram into bucket start offsets.
func prefixSums(counts *[256]int) [256]int {
	var sums [256]int
	running := 0
	for i, c := range counts {
		sums[i] = running
		running += c
	}
	return sums
}

// endOffsets returns the exclusive end of each bucket given its counts and
// start offsets.
func endOffsets(counts, sums *[256]int) [256]int {
	var ends [256]int
	copy(ends[:255], sums[1:])
	ends[255] = sums[255] + counts[255]
	return ends
}

// isUniform reports whether exactly zero or one bucket is nonempty, meaning
// the digit does not discriminate within this partition.
func isUniform(counts *[256]int) bool {
	seen := false
	for _, c := range counts {
		if c > 0 {
			if seen {
				return false
			}
			seen = true
		}
	}
	return true
}

// cdiv is ceiling division.
func cdiv(a, b int) int {
	return (a + b - 1) / b
}
