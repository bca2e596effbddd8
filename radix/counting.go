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

// countingSort finishes a partition with least-significant-digit counting
// passes over digits [first, last], ping-ponging between the partition and
// one scratch buffer of equal size. Each pass is a stable scatter, which is
// what lets LSD order produce the full lexicographic order without
// recursion. Passes whose digit does not discriminate are skipped.
func countingSort[T any](items []T, first, last int, at func(T, int) uint8) {
	scratch := make([]T, len(items))
	src, dst := items, scratch
	flips := 0

	for digit := last; digit >= first; digit-- {
		counts := histogram(src, digit, at)
		if isUniform(&counts) {
			continue
		}
		countingPass(src, dst, digit, &counts, at)
		src, dst = dst, src
		flips++
	}

	if flips%2 == 1 {
		copy(items, scratch)
	}
}

// countingPass scatters src into dst in ascending order of the given digit,
// preserving the relative order of equal digits.
func countingPass[T any](src, dst []T, digit int, counts *[256]int, at func(T, int) uint8) {
	sums := prefixSums(counts)
	for _, v := range src {
		b := at(v, digit)
		dst[sums[b]] = v
		sums[b]++
	}
}
