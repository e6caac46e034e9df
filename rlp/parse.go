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
	"fmt"
)

// Prefix parses the RLP prefix at pos and returns where its payload starts
// and how long it is. Only the canonical (shortest) form of every prefix is
// accepted and the payload must fit inside the buffer.
func Prefix(payload []byte, pos int) (dataPos int, dataLen int, isList bool, err error) {
	if pos < 0 || pos >= len(payload) {
		return 0, 0, false, fmt.Errorf("%w: prefix at offset %d", ErrUnexpectedEOF, pos)
	}
	first := payload[pos]
	switch {
	case first < 128:
		dataPos, dataLen = pos, 1
	case first < 184:
		dataPos, dataLen = pos+1, int(first)-128
		if dataLen == 1 {
			if dataPos >= len(payload) {
				return 0, 0, false, fmt.Errorf("%w: string at offset %d", ErrUnexpectedEOF, pos)
			}
			if payload[dataPos] < 128 {
				return 0, 0, false, fmt.Errorf("%w: single byte %#x wrapped in a string at offset %d", ErrNonCanonical, payload[dataPos], pos)
			}
		}
	case first < 192:
		beLen := int(first) - 183
		dataPos = pos + 1 + beLen
		dataLen, err = longLen(payload, pos, beLen)
		if err != nil {
			return 0, 0, false, err
		}
	case first < 248:
		isList = true
		dataPos, dataLen = pos+1, int(first)-192
	default:
		isList = true
		beLen := int(first) - 247
		dataPos = pos + 1 + beLen
		dataLen, err = longLen(payload, pos, beLen)
		if err != nil {
			return 0, 0, false, err
		}
	}
	if dataLen > len(payload)-dataPos {
		return 0, 0, false, fmt.Errorf("%w: %d bytes declared at offset %d, %d available", ErrUnexpectedEOF, dataLen, pos, len(payload)-dataPos)
	}
	return dataPos, dataLen, isList, nil
}

// longLen reads the big-endian length that follows a long string or long list prefix at pos.
func longLen(payload []byte, pos, beLen int) (int, error) {
	start := pos + 1
	if start+beLen > len(payload) {
		return 0, fmt.Errorf("%w: length of length at offset %d", ErrUnexpectedEOF, pos)
	}
	if payload[start] == 0 {
		return 0, fmt.Errorf("%w: length with leading zero at offset %d", ErrNonCanonical, pos)
	}
	var l uint64
	for _, b := range payload[start : start+beLen] {
		l = l<<8 | uint64(b)
	}
	if l > uint64(len(payload)) {
		return 0, fmt.Errorf("%w: %d bytes declared at offset %d, %d available", ErrUnexpectedEOF, l, pos, len(payload)-start-beLen)
	}
	if l < 56 {
		return 0, fmt.Errorf("%w: long form for %d bytes at offset %d", ErrNonCanonical, l, pos)
	}
	return int(l), nil
}

// String parses a string prefix at pos.
func String(payload []byte, pos int) (dataPos int, dataLen int, err error) {
	dataPos, dataLen, isList, err := Prefix(payload, pos)
	if err != nil {
		return 0, 0, err
	}
	if isList {
		return 0, 0, fmt.Errorf("%w: at offset %d", ErrExpectedString, pos)
	}
	return dataPos, dataLen, nil
}

// List parses a list prefix at pos.
func List(payload []byte, pos int) (dataPos int, dataLen int, err error) {
	dataPos, dataLen, isList, err := Prefix(payload, pos)
	if err != nil {
		return 0, 0, err
	}
	if !isList {
		return 0, 0, fmt.Errorf("%w: at offset %d", ErrExpectedList, pos)
	}
	return dataPos, dataLen, nil
}
