// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/abidecode"
)

// refineTypes narrows a coarse type list (bytes32 / bytes / tuple / array /
// the "()[]" sentinel) into concrete leaf types, using the already-decoded
// values as evidence (§4.6). types and values must have the same length and
// shape — they come from the same successful decodeWellFormedTuple result
// decoded against itself by the oracle.
func refineTypes(types []string, values []abidecode.Value) ([]string, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("abiguess: refining %d types against %d values", len(types), len(values))
	}
	out := make([]string, len(types))
	for i, t := range types {
		r, err := refineOne(t, values[i])
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func refineOne(t string, v abidecode.Value) (string, error) {
	switch {
	case t == "()[]":
		return "bytes", nil

	case isTupleCandidate(t):
		comps := splitTupleComponents(t)
		if len(comps) != len(v.Elems) {
			return "", fmt.Errorf("abiguess: tuple arity mismatch refining %q", t)
		}
		refined, err := refineTypes(comps, v.Elems)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(refined, ",") + ")", nil

	case strings.HasSuffix(t, "[]"):
		elemType := t[:len(t)-2]
		perElementTypes := make([]string, len(v.Elems))
		for i := range perElementTypes {
			perElementTypes[i] = elemType
		}
		refined, err := refineTypes(perElementTypes, v.Elems)
		if err != nil {
			return "", err
		}
		merged, err := mergeTypes(refined)
		if err != nil {
			return "", err
		}
		return merged + "[]", nil

	case t == "bytes32":
		return refineWord(v.Word), nil

	case t == "bytes":
		if len(v.Bytes) > 0 && utf8.Valid(v.Bytes) {
			return "string", nil
		}
		return "bytes", nil

	default:
		return t, nil
	}
}

// refineWord narrows a static bytes32 word into address, uintN/bytesN, or
// plain bytes32, by inspecting how much of the 32-byte word is padding.
// Order matters: address is tried before the uint256 rule, since a word with
// exactly 17 leading zero bytes falls in both bands and is classified as an
// address.
func refineWord(b [32]byte) string {
	lead := countLeadingZeros(b[:])
	if lead >= 12 && lead <= 17 {
		return "address"
	}
	if lead > 16 {
		return "uint256"
	}
	if trail := countTrailingZeros(b[:]); trail > 0 {
		return fmt.Sprintf("bytes%d", 32-trail)
	}
	return "bytes32"
}

func countLeadingZeros(b []byte) int {
	n := 0
	for _, c := range b {
		if c != 0 {
			break
		}
		n++
	}
	return n
}

func countTrailingZeros(b []byte) int {
	n := 0
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0 {
			break
		}
		n++
	}
	return n
}
