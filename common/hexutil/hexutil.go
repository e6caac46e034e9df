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

// Package hexutil implements the 0x-prefixed hex encoding used at the
// transport boundary of transactions, addresses and hashes.
package hexutil

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	ErrOddLength = errors.New("hex string of odd length")
	ErrSyntax    = errors.New("invalid hex string")
	ErrUint256   = errors.New("hex number > 256 bits")
)

// Has0xPrefix reports whether s starts with "0x" or "0X".
func Has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// Strip0x drops an optional 0x prefix.
func Strip0x(s string) string {
	if Has0xPrefix(s) {
		return s[2:]
	}
	return s
}

// Encode encodes b as a hex string with 0x prefix.
func Encode(b []byte) string {
	enc := make([]byte, len(b)*2+2)
	copy(enc, "0x")
	hex.Encode(enc[2:], b)
	return string(enc)
}

// Decode decodes a hex string; the 0x prefix is optional and "0x" alone yields an empty slice.
func Decode(s string) ([]byte, error) {
	raw := Strip0x(s)
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrOddLength, s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return b, nil
}

// MustDecode decodes a hex string and panics on failure. Intended for tests and constants.
func MustDecode(s string) []byte {
	b, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MustDecodeString is kept for fixtures written without the 0x prefix.
func MustDecodeString(s string) []byte {
	r, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return r
}

// DecodeUint256 parses a 0x-prefixed hex quantity or a decimal string.
func DecodeUint256(s string) (*uint256.Int, error) {
	if Has0xPrefix(s) {
		raw := s[2:]
		if len(raw) == 0 {
			return new(uint256.Int), nil
		}
		if len(raw) > 64 {
			return nil, fmt.Errorf("%w: %q", ErrUint256, s)
		}
		if len(raw)%2 != 0 {
			raw = "0" + raw
		}
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		return new(uint256.Int).SetBytes(b), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrSyntax, s, err)
	}
	return v, nil
}

// EncodeUint256 renders v as a 0x-prefixed quantity without leading zeros.
func EncodeUint256(v *uint256.Int) string {
	if v == nil {
		return "0x0"
	}
	return v.Hex()
}
