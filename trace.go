// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import bitfield "github.com/prysmaticlabs/go-bitfield"

// Trace records, for one successful top-level guess, which head slots the
// backtracker classified as dynamic (offset-bearing) versus static, packed
// into a compact bitlist — the same kind of compact per-item flag list
// go-bitfield is built for (elsewhere used to track per-validator
// participation at consensus scale), applied here to slot classification.
// Trace exists purely for caller and test introspection —
// GuessABIEncodedData itself never needs it.
type Trace struct {
	dynamic bitfield.Bitlist
}

// Len reports how many top-level parameters were classified.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return int(t.dynamic.Len())
}

// IsDynamic reports whether the top-level parameter at idx was classified as
// dynamic (offset-bearing) rather than a plain static word.
func (t *Trace) IsDynamic(idx int) bool {
	if t == nil || idx < 0 || uint64(idx) >= t.dynamic.Len() {
		return false
	}
	return t.dynamic.BitAt(uint64(idx))
}

// Count reports how many top-level parameters were classified as dynamic.
func (t *Trace) Count() int {
	if t == nil {
		return 0
	}
	return int(t.dynamic.Count())
}

func newTrace(collected []slot) *Trace {
	bl := bitfield.NewBitlist(uint64(len(collected)))
	for i, s := range collected {
		if s.kind != slotStatic {
			bl.SetBitAt(uint64(i), true)
		}
	}
	return &Trace{dynamic: bl}
}

// GuessWithTrace behaves like GuessABIEncodedData but additionally returns a
// Trace of the top-level head-slot classification. This lets a caller (or a
// test) inspect which slots the backtracker itself classified as dynamic,
// rather than re-deriving it from the output type strings. The Trace holds
// only the dynamic/static flag per slot, not the slot offsets.
func GuessWithTrace(data []byte) ([]string, *Trace, bool) {
	coarse, collected, ok := decodeWellFormedTuple(data, 0, nil, len(data), nil, modeUnset, 0, &budget{})
	if !ok {
		return nil, nil, false
	}

	refined, ok := refineAgainstCoarse(coarse, data)
	if !ok {
		return nil, nil, false
	}
	return refined, newTrace(collected), true
}
