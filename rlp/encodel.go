// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package rlp

import (
	"encoding/binary"
	"math/bits"
)

// General design:
//      - rlp package doesn't manage memory - and Caller must ensure buffers are big enough.
//      - no io.Writer, because it's incompatible with binary.BigEndian functions and Writer can't be used as temporary buffer
//
// Composition:
//     - each Encode method does write to given buffer and return written len
//     - each Parse accept position in payload and return new position
//
// General rules:
//      - functions to calculate prefix len are fast (and pure). it's ok to call them multiple times during encoding of large object for readability.
//      - rlp has 2 data types: List and String (bytes array), and low-level funcs are operate with this types.
//      - profiles (see profile.go) sit on top and give each list element a name and a kind.
//

func ListPrefixLen(dataLen int) int {
	if dataLen >= 56 {
		return 1 + (bits.Len64(uint64(dataLen))+7)/8
	}
	return 1
}

func EncodeListPrefix(dataLen int, to []byte) int {
	if dataLen >= 56 {
		beLen := (bits.Len64(uint64(dataLen)) + 7) / 8
		_ = to[beLen]
		to[0] = 247 + byte(beLen)
		putBe(to[1:1+beLen], uint64(dataLen))
		return 1 + beLen
	}
	to[0] = 192 + byte(dataLen)
	return 1
}

// StringLen is the encoded size of s, prefix included.
func StringLen(s []byte) int {
	switch {
	case len(s) == 1 && s[0] < 128:
		return 1
	case len(s) < 56:
		return 1 + len(s)
	default:
		return 1 + (bits.Len64(uint64(len(s)))+7)/8 + len(s)
	}
}

func EncodeString(s []byte, to []byte) int {
	switch {
	case len(s) >= 56:
		beLen := (bits.Len64(uint64(len(s))) + 7) / 8
		_ = to[beLen+len(s)]
		to[0] = 183 + byte(beLen)
		putBe(to[1:1+beLen], uint64(len(s)))
		copy(to[1+beLen:], s)
		return 1 + beLen + len(s)
	case len(s) == 0:
		to[0] = 128
		return 1
	case len(s) == 1 && s[0] < 128:
		to[0] = s[0]
		return 1
	default: // 1<=s<56
		_ = to[len(s)]
		to[0] = 128 + byte(len(s))
		copy(to[1:], s)
		return 1 + len(s)
	}
}

// putBe writes the low len(to) bytes of i big-endian.
func putBe(to []byte, i uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], i)
	copy(to, b[8-len(to):])
}
