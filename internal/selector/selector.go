// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

// Package selector handles the four-byte function selector prefix that
// precedes ABI-encoded calldata: splitting it off an opaque blob, and (for
// building/verifying test fixtures only) computing it from a canonical
// signature string via keccak256.
package selector

import "golang.org/x/crypto/sha3"

// Size is the length, in bytes, of an ABI function selector.
const Size = 4

// Split separates the four-byte selector prefix from the remainder of
// calldata. ok is false if calldata is shorter than Size bytes.
func Split(calldata []byte) (sel [Size]byte, body []byte, ok bool) {
	if len(calldata) < Size {
		return sel, nil, false
	}
	copy(sel[:], calldata[:Size])
	return sel, calldata[Size:], true
}

// FromSignature computes the four-byte selector of a canonical function
// signature (e.g. "transfer(address,uint256)"), i.e. keccak256(sig)[:4].
// This is signature *hashing*, used only to build test fixtures and by the
// CLI's sign helper — never a lookup against a database of known selectors.
func FromSignature(sig string) [Size]byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	sum := h.Sum(nil)

	var sel [Size]byte
	copy(sel[:], sum[:Size])
	return sel
}
