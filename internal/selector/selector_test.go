// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

package selector

import "testing"

func TestSplitSeparatesSelectorAndBody(t *testing.T) {
	calldata := []byte{0xa9, 0x05, 0x9c, 0xbb, 0x01, 0x02, 0x03}
	sel, body, ok := Split(calldata)
	if !ok {
		t.Fatalf("Split failed on well-formed calldata")
	}
	if sel != [Size]byte{0xa9, 0x05, 0x9c, 0xbb} {
		t.Fatalf("sel = %x, want a9059cbb", sel)
	}
	if len(body) != 3 || body[0] != 0x01 {
		t.Fatalf("body = %x, want 010203", body)
	}
}

func TestSplitRejectsShortCalldata(t *testing.T) {
	if _, _, ok := Split([]byte{0x01, 0x02}); ok {
		t.Fatalf("Split accepted calldata shorter than the selector")
	}
}

func TestFromSignatureMatchesKnownSelector(t *testing.T) {
	// transfer(address,uint256) is one of the most widely verified selectors
	// on mainnet; a mismatch here means the keccak wiring is wrong.
	got := FromSignature("transfer(address,uint256)")
	want := [Size]byte{0xa9, 0x05, 0x9c, 0xbb}
	if got != want {
		t.Fatalf("FromSignature = %x, want %x", got, want)
	}
}
