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
	"slices"
	"testing"
)

func TestPartitionInPlaceBucketsContiguous(t *testing.T) {
	data := generateUint32(40000, 30)
	orig := slices.Clone(data)
	counts := histogram(data, 0, byteAt)

	starts := partitionInPlace(data, 0, &counts, byteAt)

	// Boundaries are monotonically non-decreasing and derived from counts.
	for b := 1; b < 256; b++ {
		if starts[b] < starts[b-1] {
			t.Fatalf("bucket starts not monotonic at %d", b)
		}
		if starts[b]-starts[b-1] != counts[b-1] {
			t.Fatalf("bucket %d width %d, histogram says %d",
				b-1, starts[b]-starts[b-1], counts[b-1])
		}
	}
	if len(data)-starts[255] != counts[255] {
		t.Fatalf("last bucket width %d, histogram says %d", len(data)-starts[255], counts[255])
	}

	// Every item sits inside its own bucket's range.
	for b := 0; b < 256; b++ {
		end := len(data)
		if b < 255 {
			end = starts[b+1]
		}
		for i := starts[b]; i < end; i++ {
			if int(byteAt(data[i], 0)) != b {
				t.Fatalf("item at %d has digit %d, expected bucket %d", i, byteAt(data[i], 0), b)
			}
		}
	}

	if !multisetEqual(orig, data) {
		t.Errorf("partitioning changed the multiset of items")
	}
}

func TestPartitionInPlaceEmptyBuckets(t *testing.T) {
	// Only two digit values present; the other 254 buckets must come out
	// empty without disturbing anything.
	data := make([]uint32, 1000)
	for i := range data {
		if i%3 == 0 {
			data[i] = 0x11000000
		} else {
			data[i] = 0xEE000000
		}
	}
	counts := histogram(data, 0, byteAt)
	starts := partitionInPlace(data, 0, &counts, byteAt)

	if starts[0x11] != 0 {
		t.Errorf("first nonempty bucket should start at 0, got %d", starts[0x11])
	}
	width := starts[0x12] - starts[0x11]
	if width != counts[0x11] {
		t.Errorf("bucket 0x11 width %d, want %d", width, counts[0x11])
	}
	for i := 0; i < width; i++ {
		if data[i] != 0x11000000 {
			t.Fatalf("low bucket polluted at %d", i)
		}
	}
	for i := width; i < len(data); i++ {
		if data[i] != 0xEE000000 {
			t.Fatalf("high bucket polluted at %d", i)
		}
	}
}

func TestPartitionInPlaceAlreadyPartitioned(t *testing.T) {
	data := make([]uint32, 512)
	for i := range data {
		data[i] = uint32(i/2) << 24
	}
	orig := slices.Clone(data)
	counts := histogram(data, 0, byteAt)
	partitionInPlace(data, 0, &counts, byteAt)
	if !slices.Equal(orig, data) {
		t.Errorf("partitioning already-bucketed input moved items")
	}
}

func TestCountingPassIsStable(t *testing.T) {
	// Items with equal digits must keep their relative order within a pass;
	// LSD correctness depends on it.
	type tagged struct {
		digit uint8
		seq   int
	}
	data := []tagged{
		{3, 0}, {1, 1}, {3, 2}, {1, 3}, {3, 4}, {2, 5},
	}
	at := func(v tagged, _ int) uint8 { return v.digit }
	counts := histogram(data, 0, at)
	dst := make([]tagged, len(data))
	countingPass(data, dst, 0, &counts, at)

	want := []tagged{
		{1, 1}, {1, 3}, {2, 5}, {3, 0}, {3, 2}, {3, 4},
	}
	if !slices.Equal(dst, want) {
		t.Errorf("counting pass = %v, want %v", dst, want)
	}
}
