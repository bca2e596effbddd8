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

// Key is the byte-extraction capability the engine sorts by. DigitCount
// reports the fixed key width in bytes and must be the same for every value
// of the implementing type; DigitAt returns the byte at position i, where
// position 0 is the most significant. Both must be pure: the same value and
// index always yield the same byte within one sort call.
//
// A key may span multiple fields, or cover only the discriminating bytes of
// a field. Narrower keys sort faster, so skip bytes that are known to be
// constant.
type Key interface {
	DigitCount() int
	DigitAt(i int) uint8
}

// Built-in keys for the unsigned integer types, extracting big-endian bytes
// so that numeric order and byte-sequence order coincide.

// Uint8Key is a single-digit key over uint8.
type Uint8Key uint8

func (Uint8Key) DigitCount() int       { return 1 }
func (k Uint8Key) DigitAt(_ int) uint8 { return uint8(k) }

// Uint16Key is a two-digit key over uint16.
type Uint16Key uint16

func (Uint16Key) DigitCount() int       { return 2 }
func (k Uint16Key) DigitAt(i int) uint8 { return uint8(k >> ((1 - i) * 8)) }

// Uint32Key is a four-digit key over uint32.
type Uint32Key uint32

func (Uint32Key) DigitCount() int       { return 4 }
func (k Uint32Key) DigitAt(i int) uint8 { return uint8(k >> ((3 - i) * 8)) }

// Uint64Key is an eight-digit key over uint64.
type Uint64Key uint64

func (Uint64Key) DigitCount() int       { return 8 }
func (k Uint64Key) DigitAt(i int) uint8 { return uint8(k >> ((7 - i) * 8)) }

// UintKey is a key over uint. It always extracts eight digits so that sort
// order is the same on 32-bit and 64-bit platforms; on 32-bit the top four
// digits are zero and the uniform-digit skip elides them.
type UintKey uint

func (UintKey) DigitCount() int       { return 8 }
func (k UintKey) DigitAt(i int) uint8 { return uint8(uint64(k) >> ((7 - i) * 8)) }

// Bytes8Key is a key over a fixed 8-byte array, compared left to right.
type Bytes8Key [8]byte

func (Bytes8Key) DigitCount() int       { return 8 }
func (k Bytes8Key) DigitAt(i int) uint8 { return k[i] }

// Bytes16Key is a key over a fixed 16-byte array, compared left to right.
type Bytes16Key [16]byte

func (Bytes16Key) DigitCount() int       { return 16 }
func (k Bytes16Key) DigitAt(i int) uint8 { return k[i] }
