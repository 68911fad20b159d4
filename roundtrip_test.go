// abiguess: Ethereum calldata signature guesser
// Copyright 2024 abiguess Authors
// SPDX-License-Identifier: BSD-3-Clause

package abiguess

import (
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/abidecode"
	"github.com/0xSt1ng3R/abi-guesser-go/internal/selector"
)

func hexSelector(sel [selector.Size]byte) string {
	return hex.EncodeToString(sel[:])
}

// TestRoundTripGuessThenEncodeThenDecode exercises the round-trip property:
// for any value the guesser successfully classifies, re-encoding that value
// against the guessed type list and decoding it back with the low-level
// codec must succeed and yield one value per original argument.
func TestRoundTripGuessThenEncodeThenDecode(t *testing.T) {
	cases := []struct {
		name   string
		types  []string
		values []abidecode.Value
	}{
		{
			name:  "scalars",
			types: []string{"address", "uint256"},
			values: []abidecode.Value{
				abidecode.WordValue(addressWord(0x99)),
				abidecode.WordValue(uintWord(555)),
			},
		},
		{
			name:  "dynamic bytes and array",
			types: []string{"bytes", "uint256[]"},
			values: []abidecode.Value{
				abidecode.BytesValue([]byte{0x01, 0x02, 0x03, 0x04, 0x05}),
				abidecode.SequenceValue([]abidecode.Value{
					abidecode.WordValue(uintWord(9)),
					abidecode.WordValue(uintWord(8)),
				}),
			},
		},
		{
			name:  "nested tuple",
			types: []string{"(address,uint256)", "bytes"},
			values: []abidecode.Value{
				abidecode.SequenceValue([]abidecode.Value{
					abidecode.WordValue(addressWord(0x11)),
					abidecode.WordValue(uintWord(3)),
				}),
				abidecode.BytesValue([]byte("tail payload")),
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := abidecode.Encode(c.types, c.values)
			require.NoError(t, err)

			guessed, ok := GuessABIEncodedData(data)
			require.True(t, ok, "expected a successful guess")

			reencoded, err := abidecode.Encode(guessed, c.values)
			require.NoError(t, err, "guessed types must still accept the original values")

			decoded, err := abidecode.Decode(guessed, reencoded)
			require.NoError(t, err)
			require.Len(t, decoded, len(c.values))
		})
	}
}

// TestIdempotentGuess asserts that re-running the guesser on data re-encoded
// under its own first guess reproduces exactly the same guess.
func TestIdempotentGuess(t *testing.T) {
	data := encodeOrFatal(t, []string{"address", "bytes"}, []abidecode.Value{
		abidecode.WordValue(addressWord(0x5)),
		abidecode.BytesValue([]byte("idempotent")),
	})

	first, ok := GuessABIEncodedData(data)
	require.True(t, ok)

	values, err := abidecode.Decode(first, data)
	require.NoError(t, err)
	reencoded, err := abidecode.Encode(first, values)
	require.NoError(t, err)

	second, ok := GuessABIEncodedData(reencoded)
	require.True(t, ok)
	require.Equal(t, first, second)
}

// TestOracleInvariant asserts that every successful guess the backtracker
// returns, prior to refinement, actually decodes against the coarse-grained
// type list the oracle was gated on — i.e. GuessABIEncodedData's result
// always refines a type list the low-level codec accepts.
func TestOracleInvariant(t *testing.T) {
	data := encodeOrFatal(t, []string{"uint256", "bytes32[]"}, []abidecode.Value{
		abidecode.WordValue(uintWord(2)),
		abidecode.SequenceValue([]abidecode.Value{
			abidecode.WordValue(addressWord(0x1)),
			abidecode.WordValue(addressWord(0x2)),
		}),
	})

	guessed, ok := GuessABIEncodedData(data)
	require.True(t, ok)

	_, err := abidecode.Decode(guessed, data)
	require.NoError(t, err, "the guesser must never return a type list the oracle rejects")
}

// fragmentShape matches the documented "guessed_<selector-hex>(<types>)"
// contract GuessFragment promises its callers.
var fragmentShape = regexp.MustCompile(`^guessed_[0-9a-f]{8}\(.*\)$`)

// TestGuessFragmentRoundTripShape asserts the §8 round-trip property at the
// GuessFragment level: calldata carrying a real selector must come back as
// "guessed_<hex>(argTypes')", with the selector bytes preserved verbatim.
func TestGuessFragmentRoundTripShape(t *testing.T) {
	body := encodeOrFatal(t, []string{"address", "uint256"}, []abidecode.Value{
		abidecode.WordValue(addressWord(0x42)),
		abidecode.WordValue(uintWord(7)),
	})
	sel := selector.FromSignature("approve(address,uint256)")
	calldata := append(append([]byte{}, sel[:]...), body...)

	fragment, ok := GuessFragment(calldata)
	require.True(t, ok)
	require.Regexp(t, fragmentShape, fragment)
	require.Contains(t, fragment, hexSelector(sel))
}
