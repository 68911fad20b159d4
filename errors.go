// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import "errors"

// ErrEmptyTypeList is returned by mergeTypes when asked to merge a list that
// contains an empty type string. This is a programmer-misuse condition (the
// decoder never produces empty type strings), not an ordinary decode failure.
var ErrEmptyTypeList = errors.New("abiguess: empty type string in merge list")

// ErrMaxDepthExceeded names the condition of the backtracker's recursion
// depth guard tripping. No function in this package returns it: the guard
// fails the frame and sets the budget's depthHit flag, and callers observe
// only an overall guess failure.
var ErrMaxDepthExceeded = errors.New("abiguess: maximum recursion depth exceeded")

// ErrMaxExpansionsExceeded names the condition of the backtracking fan-out
// guard tripping (more than maxExpansions frames opened by one top-level
// guess). No function in this package returns it: the guard fails the frame
// and sets the budget's expnHit flag.
var ErrMaxExpansionsExceeded = errors.New("abiguess: maximum backtracking expansions exceeded")
