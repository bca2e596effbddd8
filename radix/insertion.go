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

// insertionSort orders a small partition by comparing the remaining byte
// sequences directly. Digits before first are already equal across the
// partition, so the comparison starts at first and re-derives bytes through
// the extractor instead of materializing keys.
func insertionSort[T any](items []T, first, digits int, at func(T, int) uint8) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && keyLess(key, items[j], first, digits, at) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}

// keyLess reports whether a's byte sequence over digits [first, digits) is
// lexicographically smaller than b's.
func keyLess[T any](a, b T, first, digits int, at func(T, int) uint8) bool {
	for i := first; i < digits; i++ {
		da, db := at(a, i), at(b, i)
		if da != db {
			return da < db
		}
	}
	return false
}
