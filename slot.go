// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

// slotKind tags which shape a head slot was classified as while the
// backtracker was still in the head phase (§3 "Slot descriptor").
type slotKind uint8

const (
	slotStatic slotKind = iota
	slotDynamicNoLength
	slotDynamicWithLength
)

// slot is the tagged-variant record the decoder accumulates one per
// classified head word. Frames never mutate a shared slot slice in place —
// each recursive branch appends to (and thereby copies) its own collected
// slice, so slots are safe to read long after the frame that produced them
// has returned.
type slot struct {
	kind   slotKind
	offset int // slotDynamicNoLength / slotDynamicWithLength only
	length int // slotDynamicWithLength only
}

// arrayElementMode constrains which head-slot shapes a frame is allowed to
// produce when it is decoding the elements of an array (§3
// "is_dynamic_array_element").
type arrayElementMode uint8

const (
	modeUnset arrayElementMode = iota
	modeDynamicElements
	modeStaticElements
)
