// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import "strings"

// mergeTypes computes the narrowest common supertype of a list of concrete
// type strings (§4.5), used when the same array slot has been independently
// refined per-element and the results need folding back into one element
// type for the array's type string.
//
// The reference algorithm this is grounded on also special-cases a literal
// base tag "array", but that branch can never be reached: array-shaped
// strings always carry their own "[]" suffix rather than a distinguishable
// "array" base, so the classification here goes straight from "ends in []"
// to stripping one level and recursing, without an intermediate tag.
func mergeTypes(types []string) (string, error) {
	if len(types) == 0 {
		return "()", nil
	}
	for _, t := range types {
		if t == "" {
			return "", ErrEmptyTypeList
		}
	}
	if len(types) == 1 {
		return types[0], nil
	}

	if allTuples(types) {
		return mergeTuples(types)
	}
	if allArrays(types) {
		children := make([]string, len(types))
		for i, t := range types {
			children[i] = t[:len(t)-2]
		}
		merged, err := mergeTypes(children)
		if err != nil {
			return "", err
		}
		return merged + "[]", nil
	}

	unique := map[string]bool{}
	for _, t := range types {
		unique[t] = true
	}
	if len(unique) == 1 {
		return types[0], nil
	}
	if unique["bytes"] {
		return "bytes", nil
	}
	if unique["uint256"] {
		return "uint256", nil
	}
	return "bytes32", nil
}

func mergeTuples(types []string) (string, error) {
	arity := len(splitTupleComponents(types[0]))
	componentLists := make([][]string, len(types))
	for i, t := range types {
		cl := splitTupleComponents(t)
		if len(cl) != arity {
			return "()", nil
		}
		componentLists[i] = cl
	}
	merged := make([]string, arity)
	for i := 0; i < arity; i++ {
		column := make([]string, len(componentLists))
		for j, cl := range componentLists {
			column[j] = cl[i]
		}
		m, err := mergeTypes(column)
		if err != nil {
			return "", err
		}
		merged[i] = m
	}
	return "(" + strings.Join(merged, ",") + ")", nil
}

func allTuples(types []string) bool {
	for _, t := range types {
		if !isTupleCandidate(t) {
			return false
		}
	}
	return true
}

func allArrays(types []string) bool {
	for _, t := range types {
		if !strings.HasSuffix(t, "[]") {
			return false
		}
	}
	return true
}
