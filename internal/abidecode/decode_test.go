// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

package abidecode_test

import (
	"bytes"
	"testing"

	"github.com/0xSt1ng3R/abi-guesser-go/internal/abidecode"
)

func wordFromUint64(n uint64) [32]byte {
	var w [32]byte
	for i := 0; i < 8; i++ {
		w[31-i] = byte(n >> (8 * i))
	}
	return w
}

func TestEncodeDecodeRoundTripUint256(t *testing.T) {
	values := []abidecode.Value{abidecode.WordValue(wordFromUint64(123))}
	data, err := abidecode.Encode([]string{"uint256"}, values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(data))
	}

	decoded, err := abidecode.Decode([]string{"uint256"}, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded[0].Word != values[0].Word {
		t.Errorf("round trip mismatch: have %x, want %x", decoded[0].Word, values[0].Word)
	}
}

func TestEncodeDecodeDynamicBytes(t *testing.T) {
	payload := []byte{0x80}
	data, err := abidecode.Encode([]string{"bytes"}, []abidecode.Value{abidecode.BytesValue(payload)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := abidecode.Decode([]string{"bytes"}, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded[0].Bytes, payload) {
		t.Errorf("bytes mismatch: have %x, want %x", decoded[0].Bytes, payload)
	}
}

func TestEncodeDecodeDynamicArray(t *testing.T) {
	elems := []abidecode.Value{
		abidecode.WordValue(wordFromUint64(123)),
		abidecode.WordValue(wordFromUint64(456)),
		abidecode.WordValue(wordFromUint64(789)),
	}
	data, err := abidecode.Encode([]string{"uint256[]"}, []abidecode.Value{abidecode.SequenceValue(elems)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := abidecode.Decode([]string{"uint256[]"}, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded[0].Elems) != len(elems) {
		t.Fatalf("expected %d elements, got %d", len(elems), len(decoded[0].Elems))
	}
	for i, e := range elems {
		if decoded[0].Elems[i].Word != e.Word {
			t.Errorf("element %d mismatch: have %x, want %x", i, decoded[0].Elems[i].Word, e.Word)
		}
	}
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	if _, err := abidecode.Decode([]string{"uint256"}, []byte{0x01, 0x02}); err == nil {
		t.Errorf("expected truncated-data error, got nil")
	}
}

func TestDecodeRejectsBadType(t *testing.T) {
	if _, err := abidecode.Decode([]string{"uint257"}, make([]byte, 32)); err == nil {
		t.Errorf("expected bad-type error, got nil")
	}
}

func TestDecodeRejectsOffsetOutOfRange(t *testing.T) {
	data := make([]byte, 32)
	copy(data, wordFromUint64(64)[:]) // points past the only word present
	if _, err := abidecode.Decode([]string{"bytes"}, data); err == nil {
		t.Errorf("expected offset-out-of-range error, got nil")
	}
}

func TestParseFixedArrayType(t *testing.T) {
	typ, err := abidecode.ParseType("uint256[3]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if typ.Kind != abidecode.KindFixedArray || typ.Length != 3 {
		t.Errorf("unexpected parse result: %+v", typ)
	}
	if typ.String() != "uint256[3]" {
		t.Errorf("round-trip string mismatch: %s", typ.String())
	}
}

func TestParseTupleType(t *testing.T) {
	typ, err := abidecode.ParseType("(uint256,bytes)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if typ.Kind != abidecode.KindTuple || len(typ.Comps) != 2 {
		t.Errorf("unexpected parse result: %+v", typ)
	}
	if !typ.IsDynamic() {
		t.Errorf("tuple with a bytes component should be dynamic")
	}
}

func TestEncodeDecodeFixedArrayOfTuples(t *testing.T) {
	tuple := func(n uint64) abidecode.Value {
		return abidecode.SequenceValue([]abidecode.Value{abidecode.WordValue(wordFromUint64(n))})
	}
	values := []abidecode.Value{abidecode.SequenceValue([]abidecode.Value{tuple(1), tuple(2)})}
	data, err := abidecode.Encode([]string{"(uint256)[2]"}, values)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := abidecode.Decode([]string{"(uint256)[2]"}, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded[0].Elems) != 2 {
		t.Fatalf("expected 2 tuple elements, got %d", len(decoded[0].Elems))
	}
}
