// abiguess: Ethereum calldata signature guesser
// SPDX-License-Identifier: BSD-3-Clause

package abidecode

import "errors"

// ErrBadType is returned when a type string does not parse under the reduced
// grammar this package supports.
var ErrBadType = errors.New("abidecode: malformed type string")

// ErrTruncated is returned when data is too short to contain a word, length
// prefix, or element the current type requires.
var ErrTruncated = errors.New("abidecode: truncated data")

// ErrBadOffset is returned when a dynamic type's head offset does not point
// inside data, or is not 32-byte aligned.
var ErrBadOffset = errors.New("abidecode: offset out of range")

// ErrBadLength is returned when a length-prefixed region's declared length
// does not fit within the remaining data.
var ErrBadLength = errors.New("abidecode: length out of range")

// ErrArityMismatch is returned when the number of values passed to Encode
// does not match the number of types.
var ErrArityMismatch = errors.New("abidecode: value/type count mismatch")

// ErrBadValue is returned when a Value passed to Encode does not match the
// Kind the corresponding Type expects.
var ErrBadValue = errors.New("abidecode: value does not match type")
