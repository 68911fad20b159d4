// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package abiguess infers a plausible Solidity-style argument type list for
// raw Ethereum ABI-encoded calldata whose function signature is unknown. It
// never needs the real signature or a 4byte-directory lookup: it treats the
// low-level ABI codec (package internal/abidecode) as an oracle, proposing
// structural guesses and keeping only the ones the codec actually decodes.
package abiguess

import (
	"encoding/hex"
	"strings"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/abidecode"
	"github.com/0xSt1ng3R/abi-guesser-go/internal/selector"
)

// GuessABIEncodedData infers a type list for data, which is assumed to be
// the ABI-encoded argument tuple itself (no leading 4-byte selector). It
// returns the guessed types and true on success, or (nil, false) if no
// consistent interpretation of data as a well-formed tuple exists.
func GuessABIEncodedData(data []byte) ([]string, bool) {
	coarse, _, ok := decodeWellFormedTuple(data, 0, nil, len(data), nil, modeUnset, 0, &budget{})
	if !ok {
		return nil, false
	}
	return refineAgainstCoarse(coarse, data)
}

// refineAgainstCoarse re-decodes data against the already-accepted coarse
// type list to recover concrete values, then narrows each coarse type using
// those values as evidence.
func refineAgainstCoarse(coarse []string, data []byte) ([]string, bool) {
	values, err := abidecode.Decode(coarse, data)
	if err != nil {
		return nil, false
	}
	refined, err := refineTypes(coarse, values)
	if err != nil {
		return nil, false
	}
	return refined, true
}

// GuessFragment infers a full fragment for calldata that does carry a
// leading 4-byte selector. It never recovers the original function name —
// the selector alone doesn't determine it — so the result is rendered as
// "guessed_<selector-hex>(<types>)", e.g.
// "guessed_a9059cbb(address,uint256)", making clear the leading identifier
// is a guess keyed off the raw selector rather than a resolved name. ok is
// false if calldata is shorter than the selector or the body doesn't decode.
func GuessFragment(calldata []byte) (string, bool) {
	sel, body, ok := selector.Split(calldata)
	if !ok {
		return "", false
	}
	types, ok := GuessABIEncodedData(body)
	if !ok {
		return "", false
	}
	return "guessed_" + hex.EncodeToString(sel[:]) + "(" + strings.Join(types, ",") + ")", true
}
