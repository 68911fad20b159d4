// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import (
	"sort"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/abidecode"
)

// maxRecursionDepth bounds how deep decodeWellFormedTuple may recurse
// (top-level tuple -> array element -> nested tuple -> ...) before giving up.
const maxRecursionDepth = 32

// maxExpansions bounds the total number of decodeWellFormedTuple frames a
// single top-level guess may open, across the whole call tree, guarding
// against pathological backtracking fan-out on adversarial input.
const maxExpansions = 1 << 20

// budget is threaded through one top-level decode attempt to enforce the
// recursion-depth and backtracking-fan-out guards of §5. It has no exported
// surface: callers observe only an overall guess failure. depthHit and
// expnHit record which guard tripped; nothing outside this file reads them.
type budget struct {
	expansions int
	depthHit   bool
	expnHit    bool
}

// enter charges one frame against the budget. It returns false (and records
// which guard tripped) once either limit is exceeded.
func (b *budget) enter(depth int) bool {
	if depth > maxRecursionDepth {
		b.depthHit = true
		return false
	}
	b.expansions++
	if b.expansions > maxExpansions {
		b.expnHit = true
		return false
	}
	return true
}

// oracle submits a candidate type list to the low-level ABI codec; a
// candidate is only ever accepted if the codec can decode data against it
// without error. This is the single ground-truth check the whole
// backtracker is built around.
func oracle(types []string, data []byte) bool {
	if len(types) == 0 {
		return false
	}
	_, err := abidecode.Decode(types, data)
	return err == nil
}

// decodeWellFormedTuple is the recursive backtracker of §4.3. It classifies
// the head words of data[paramIdx*32:endOfStatic] one at a time — as a
// length-prefixed dynamic slot, a bare dynamic slot, or (outside array-
// element mode) a static word — and once the head is exhausted, resolves
// each collected slot's tail region into a concrete coarse type string.
//
// Every guess is gated by the oracle: a branch is only kept if the decoder
// can actually decode data against the type list it produces.
func decodeWellFormedTuple(data []byte, paramIdx int, collected []slot, endOfStatic int, expectedLength *int, mode arrayElementMode, depth int, b *budget) ([]string, []slot, bool) {
	if !b.enter(depth) {
		return nil, nil, false
	}

	paramOffset := paramIdx * 32
	if paramOffset < endOfStatic {
		if offset, ok := probeOffset(data, paramOffset); ok {
			if mode == modeUnset || mode == modeDynamicElements {
				if length, ok := probeLength(data, offset); ok {
					next := appendSlot(collected, slot{kind: slotDynamicWithLength, offset: offset, length: length})
					if types, col, ok := decodeWellFormedTuple(data, paramIdx+1, next, minInt(endOfStatic, offset), expectedLength, mode, depth+1, b); ok && oracle(types, data) {
						return types, col, true
					}
				}
			}
			if mode == modeUnset || mode == modeStaticElements {
				next := appendSlot(collected, slot{kind: slotDynamicNoLength, offset: offset})
				if types, col, ok := decodeWellFormedTuple(data, paramIdx+1, next, minInt(endOfStatic, offset), expectedLength, mode, depth+1, b); ok && oracle(types, data) {
					return types, col, true
				}
			}
		}

		if mode != modeUnset {
			return nil, nil, false
		}

		next := appendSlot(collected, slot{kind: slotStatic})
		if types, col, ok := decodeWellFormedTuple(data, paramIdx+1, next, endOfStatic, expectedLength, mode, depth+1, b); ok && oracle(types, data) {
			return types, col, true
		}
		return nil, nil, false
	}

	return resolveTail(data, collected, expectedLength, depth, b)
}

// appendSlot returns a fresh slice with s appended, never aliasing
// collected's backing array — sibling backtracking branches must not see
// each other's tentative slots.
func appendSlot(collected []slot, s slot) []slot {
	next := make([]slot, len(collected)+1)
	copy(next, collected)
	next[len(collected)] = s
	return next
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// resolveTail expands every collected head slot into a final coarse type
// string once the head phase has consumed all of endOfStatic.
func resolveTail(data []byte, collected []slot, expectedLength *int, depth int, b *budget) ([]string, []slot, bool) {
	if expectedLength != nil && len(collected) != *expectedLength {
		return nil, nil, false
	}

	final := make([]string, 0, len(collected))
	for i, s := range collected {
		if s.kind == slotStatic {
			final = append(final, "bytes32")
			continue
		}

		tailStart := s.offset
		if s.kind == slotDynamicWithLength {
			tailStart += 32
		}
		tailEnd := len(data)
		if nextOffset, trailing := nextDynamicOffset(collected, i); !trailing {
			tailEnd = nextOffset
		}
		if tailStart > tailEnd || tailEnd > len(data) {
			return nil, nil, false
		}
		tail := data[tailStart:tailEnd]

		if s.kind == slotDynamicNoLength {
			params, _, ok := decodeWellFormedTuple(tail, 0, nil, len(tail), nil, modeUnset, depth+1, b)
			if !ok {
				return nil, nil, false
			}
			final = append(final, wrapAsSingleOrTuple(params))
			continue
		}

		if s.length == 0 {
			final = append(final, "()[]")
			continue
		}
		if isByteString(s.length, tail) {
			final = append(final, "bytes")
			continue
		}

		elemType, ok := resolveArrayElement(tail, s.length, depth, b)
		if !ok {
			return nil, nil, false
		}
		final = append(final, elemType+"[]")
	}

	if !oracle(final, data) {
		return nil, nil, false
	}
	return final, collected, true
}

// nextDynamicOffset returns the offset of the next dynamic slot (with or
// without a length prefix) strictly after i, or reports trailing=true if i
// is the last dynamic slot in collected.
func nextDynamicOffset(collected []slot, i int) (offset int, trailing bool) {
	for j := i + 1; j < len(collected); j++ {
		if collected[j].kind != slotStatic {
			return collected[j].offset, false
		}
	}
	return 0, true
}

// isByteString reports whether tail is consistent with a "bytes" value of
// the claimed length: either an exact match, or a word-aligned tail whose
// bytes past length are fewer than 32 and all zero (ABI encoders round
// dynamic bytes up to a word boundary).
func isByteString(length int, tail []byte) bool {
	if length == len(tail) {
		return true
	}
	if len(tail)%32 != 0 || len(tail) < length || len(tail)-length >= 32 {
		return false
	}
	for _, c := range tail[length:] {
		if c != 0 {
			return false
		}
	}
	return true
}

// resolveArrayElement decides the element type of a length-prefixed dynamic
// slot whose tail isn't a plausible "bytes" region, by trying up to three
// structural interpretations of tail as `length` repeated elements:
// dynamic-with-length elements, dynamic-without-length elements, and (if
// tail is a whole number of words) static fixed-size elements, each window
// being (words/length) words long; words left over after length windows are
// not decoded.
//
// A failing window in the static path aborts the *whole* resolution
// (discarding any success already found by the other two paths) rather than
// merely disqualifying that one candidate. This is deliberate, not an
// oversight: see DESIGN.md.
func resolveArrayElement(tail []byte, length int, depth int, b *budget) (string, bool) {
	var rawCandidates [][]string

	expected := length
	if params, _, ok := decodeWellFormedTuple(tail, 0, nil, len(tail), &expected, modeDynamicElements, depth+1, b); ok {
		rawCandidates = append(rawCandidates, params)
	}
	if params, _, ok := decodeWellFormedTuple(tail, 0, nil, len(tail), &expected, modeStaticElements, depth+1, b); ok {
		rawCandidates = append(rawCandidates, params)
	}

	if len(tail)%32 == 0 && length > 0 {
		wordsPerElement := (len(tail) / 32) / length
		staticParams := make([]string, 0, length)
		aborted := false
		for idx := 0; idx < length; idx++ {
			start := idx * wordsPerElement * 32
			end := start + wordsPerElement*32
			if end > len(tail) {
				aborted = true
				break
			}
			window := tail[start:end]
			params, _, ok := decodeWellFormedTuple(window, 0, nil, len(window), nil, modeUnset, depth+1, b)
			if !ok || len(params) == 0 {
				aborted = true
				break
			}
			staticParams = append(staticParams, wrapAsSingleOrTuple(params))
		}
		if aborted {
			return "", false
		}
		rawCandidates = append(rawCandidates, staticParams)
	}

	type survivor struct {
		raw     []string
		reduced string
	}
	var survivors []survivor
	for _, raw := range rawCandidates {
		reduced, ok := consistencyReduce(raw)
		if ok {
			survivors = append(survivors, survivor{raw: raw, reduced: reduced})
		}
	}
	if len(survivors) == 0 {
		return "", false
	}

	sort.SliceStable(survivors, func(i, j int) bool { return len(survivors[i].raw) < len(survivors[j].raw) })
	return survivors[0].reduced, true
}
