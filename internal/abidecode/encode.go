// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

package abidecode

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Encode is the inverse of Decode: it builds calldata for the given types and
// values under the same head/tail layout rules. It exists solely to build
// test fixtures — neither the guesser nor the CLI calls it.
func Encode(types []string, values []Value) ([]byte, error) {
	parsed, err := ParseTypes(types)
	if err != nil {
		return nil, err
	}
	return encodeSequence(parsed, values)
}

func encodeSequence(types []Type, values []Value) ([]byte, error) {
	if len(types) != len(values) {
		return nil, fmt.Errorf("%w: %d types, %d values", ErrArityMismatch, len(types), len(values))
	}

	headWords := 0
	for _, t := range types {
		headWords += t.HeadWords()
	}
	head := make([]byte, headWords*32)
	var tail []byte

	pos := 0
	for i, t := range types {
		if t.IsDynamic() {
			offset := headWords*32 + len(tail)
			writeUint64Word(head[pos:pos+32], uint64(offset))
			enc, err := encodeInline(t, values[i])
			if err != nil {
				return nil, err
			}
			tail = append(tail, enc...)
			pos += 32
			continue
		}
		enc, err := encodeInline(t, values[i])
		if err != nil {
			return nil, err
		}
		copy(head[pos:], enc)
		pos += len(enc)
	}
	return append(head, tail...), nil
}

func encodeInline(t Type, v Value) ([]byte, error) {
	switch t.Kind {
	case KindUint256, KindAddress, KindBytesN:
		if v.Kind != KindWordValue {
			return nil, fmt.Errorf("%w: expected word value for %s", ErrBadValue, t)
		}
		out := make([]byte, 32)
		copy(out, v.Word[:])
		return out, nil

	case KindBytes, KindString:
		if v.Kind != KindBytesValue {
			return nil, fmt.Errorf("%w: expected bytes value for %s", ErrBadValue, t)
		}
		return encodeDynamicBytes(v.Bytes), nil

	case KindTuple:
		if v.Kind != KindSequenceValue || len(v.Elems) != len(t.Comps) {
			return nil, fmt.Errorf("%w: expected %d-tuple for %s", ErrBadValue, len(t.Comps), t)
		}
		return encodeSequence(t.Comps, v.Elems)

	case KindArray:
		if v.Kind != KindSequenceValue {
			return nil, fmt.Errorf("%w: expected sequence value for %s", ErrBadValue, t)
		}
		n := len(v.Elems)
		content, err := encodeSequence(repeatType(t.Elem, n), v.Elems)
		if err != nil {
			return nil, err
		}
		out := make([]byte, 32)
		writeUint64Word(out, uint64(n))
		return append(out, content...), nil

	case KindFixedArray:
		if v.Kind != KindSequenceValue || len(v.Elems) != t.Length {
			return nil, fmt.Errorf("%w: expected %d-array for %s", ErrBadValue, t.Length, t)
		}
		return encodeSequence(repeatType(t.Elem, t.Length), v.Elems)

	default:
		return nil, fmt.Errorf("%w: unhandled kind %d", ErrBadType, t.Kind)
	}
}

// encodeDynamicBytes renders a length-prefixed, zero-padded-to-32 byte string.
func encodeDynamicBytes(b []byte) []byte {
	padded := ((len(b) + 31) / 32) * 32
	out := make([]byte, 32+padded)
	writeUint64Word(out[:32], uint64(len(b)))
	copy(out[32:], b)
	return out
}

// writeUint64Word renders n as a big-endian 32-byte word into dst.
func writeUint64Word(dst []byte, n uint64) {
	u := uint256.NewInt(n)
	b := u.Bytes32()
	copy(dst, b[:])
}
