// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

package abidecode

import (
	"fmt"

	"github.com/holiman/uint256"
)

// maxSafeInteger mirrors the guesser's own offset/length probes: values above
// this are rejected outright rather than risking a pathological allocation.
const maxSafeInteger = (uint64(1) << 53) - 1

// Decode parses every entry of types and decodes data against the resulting
// ABI layout, head/tail style. It never panics: any malformed type string or
// truncated/out-of-range buffer surfaces as an error.
func Decode(types []string, data []byte) (values []Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			values, err = nil, fmt.Errorf("%w: panic during decode: %v", ErrTruncated, r)
		}
	}()

	parsed, err := ParseTypes(types)
	if err != nil {
		return nil, err
	}
	return decodeSequence(parsed, data)
}

func decodeSequence(types []Type, data []byte) ([]Value, error) {
	values := make([]Value, len(types))
	headPos := 0
	for i, t := range types {
		v, consumed, err := decodeElement(t, data, headPos)
		if err != nil {
			return nil, err
		}
		values[i] = v
		headPos += consumed
	}
	return values, nil
}

// decodeElement decodes the single head slot for t starting at data[headPos:],
// returning the decoded value and how many head bytes it consumed.
func decodeElement(t Type, data []byte, headPos int) (Value, int, error) {
	if t.IsDynamic() {
		if headPos+32 > len(data) {
			return Value{}, 0, fmt.Errorf("%w: head slot at %d", ErrTruncated, headPos)
		}
		off, err := wordToOffset(data[headPos:headPos+32], len(data))
		if err != nil {
			return Value{}, 0, err
		}
		v, err := decodeInline(t, data[off:])
		if err != nil {
			return Value{}, 0, err
		}
		return v, 32, nil
	}

	words := t.HeadWords()
	need := words * 32
	if headPos+need > len(data) {
		return Value{}, 0, fmt.Errorf("%w: head slot at %d needs %d bytes", ErrTruncated, headPos, need)
	}
	v, err := decodeInline(t, data[headPos:])
	if err != nil {
		return Value{}, 0, err
	}
	return v, need, nil
}

// decodeInline decodes t as though its own encoding begins at data[0], in
// data's local coordinate frame (used both for head-region static values and
// for the content a dynamic offset points at).
func decodeInline(t Type, data []byte) (Value, error) {
	switch t.Kind {
	case KindUint256, KindAddress, KindBytesN:
		if len(data) < 32 {
			return Value{}, fmt.Errorf("%w: word", ErrTruncated)
		}
		var w [32]byte
		copy(w[:], data[:32])
		return WordValue(w), nil

	case KindBytes, KindString:
		return decodeDynamicBytes(data)

	case KindTuple:
		elems, err := decodeSequence(t.Comps, data)
		if err != nil {
			return Value{}, err
		}
		return SequenceValue(elems), nil

	case KindArray:
		length, rest, err := decodeLengthPrefix(data)
		if err != nil {
			return Value{}, err
		}
		elems, err := decodeSequence(repeatType(t.Elem, length), rest)
		if err != nil {
			return Value{}, err
		}
		return SequenceValue(elems), nil

	case KindFixedArray:
		elems, err := decodeSequence(repeatType(t.Elem, t.Length), data)
		if err != nil {
			return Value{}, err
		}
		return SequenceValue(elems), nil

	default:
		return Value{}, fmt.Errorf("%w: unhandled kind %d", ErrBadType, t.Kind)
	}
}

// decodeLengthPrefix reads the 32-byte length word at data[0:32] and returns
// the element count plus the remaining slice (the content region).
func decodeLengthPrefix(data []byte) (int, []byte, error) {
	if len(data) < 32 {
		return 0, nil, fmt.Errorf("%w: length word", ErrTruncated)
	}
	n, err := wordToUint64(data[:32])
	if err != nil {
		return 0, nil, err
	}
	if n > maxSafeInteger {
		return 0, nil, fmt.Errorf("%w: length %d unsafe", ErrBadLength, n)
	}
	return int(n), data[32:], nil
}

// decodeDynamicBytes reads a length-prefixed, zero-padded byte string: a
// 32-byte length word followed by ceil(length/32)*32 bytes of content.
func decodeDynamicBytes(data []byte) (Value, error) {
	length, rest, err := decodeLengthPrefix(data)
	if err != nil {
		return Value{}, err
	}
	if length > len(rest) {
		return Value{}, fmt.Errorf("%w: bytes length %d exceeds remaining %d", ErrBadLength, length, len(rest))
	}
	out := make([]byte, length)
	copy(out, rest[:length])
	return BytesValue(out), nil
}

func repeatType(elem *Type, n int) []Type {
	out := make([]Type, n)
	for i := range out {
		out[i] = *elem
	}
	return out
}

// wordToUint64 interprets a 32-byte big-endian word as an integer, rejecting
// anything that does not fit in a uint64 (far beyond what any well-formed
// offset/length could legitimately need).
func wordToUint64(word []byte) (uint64, error) {
	var u uint256.Int
	u.SetBytes(word)
	if !u.IsUint64() {
		return 0, fmt.Errorf("%w: word too large", ErrBadLength)
	}
	return u.Uint64(), nil
}

// wordToOffset interprets word as a head-region offset and validates it lies
// within [0, dataLen] and on a 32-byte boundary.
func wordToOffset(word []byte, dataLen int) (int, error) {
	v, err := wordToUint64(word)
	if err != nil {
		return 0, err
	}
	if v > maxSafeInteger || v > uint64(dataLen) || v%32 != 0 {
		return 0, fmt.Errorf("%w: offset %d (buffer length %d)", ErrBadOffset, v, dataLen)
	}
	return int(v), nil
}
