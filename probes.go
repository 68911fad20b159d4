// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import "github.com/holiman/uint256"

// maxSafeInteger is the legacy safe-integer clamp carried over from the
// reference implementation: a head word above this can't be a real offset or
// length in any buffer we'd plausibly be asked to guess, and rejecting it
// early avoids chasing pathologically large allocations.
const maxSafeInteger = (uint64(1) << 53) - 1

// probeOffset tests whether the word at data[pos:pos+32] could plausibly be
// an offset into data: it must fit a safe integer, land strictly after pos,
// land strictly before len(data), and sit on a 32-byte boundary.
func probeOffset(data []byte, pos int) (offset int, ok bool) {
	if pos+32 > len(data) {
		return 0, false
	}
	v, ok := wordToSafeUint64(data[pos : pos+32])
	if !ok {
		return 0, false
	}
	if v <= uint64(pos) || v >= uint64(len(data)) || v%32 != 0 {
		return 0, false
	}
	return int(v), true
}

// probeLength tests whether the word at data[offset:offset+32] could
// plausibly be a length prefix for a region starting right after it: the
// value must fit a safe integer and the claimed region must fit in data.
func probeLength(data []byte, offset int) (length int, ok bool) {
	if offset+32 > len(data) {
		return 0, false
	}
	v, ok := wordToSafeUint64(data[offset : offset+32])
	if !ok {
		return 0, false
	}
	if offset+32+int(v) > len(data) {
		return 0, false
	}
	return int(v), true
}

// wordToSafeUint64 parses a 32-byte big-endian word as an integer, rejecting
// anything at or above maxSafeInteger.
func wordToSafeUint64(word []byte) (uint64, bool) {
	var u uint256.Int
	u.SetBytes(word)
	if !u.IsUint64() {
		return 0, false
	}
	v := u.Uint64()
	if v >= maxSafeInteger {
		return 0, false
	}
	return v, true
}
