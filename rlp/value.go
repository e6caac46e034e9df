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
	"bytes"
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"

	"github.com/holiman/uint256"
)

// Value is a decoded RLP item: either a byte string or a list of items.
// The zero Value is the empty string.
type Value struct {
	isList bool
	str    []byte
	items  []Value
}

func NewString(b []byte) Value { return Value{str: b} }

func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{isList: true, items: items}
}

// NewUint64 is the minimal big-endian form of x; zero is the empty string.
func NewUint64(x uint64) Value {
	if x == 0 {
		return Value{}
	}
	n := (bits.Len64(x) + 7) / 8
	b := make([]byte, n)
	putBe(b, x)
	return Value{str: b}
}

func NewUint256(x *uint256.Int) Value {
	if x == nil || x.IsZero() {
		return Value{}
	}
	return Value{str: x.Bytes()}
}

func (v Value) IsList() bool     { return v.isList }
func (v Value) Bytes() []byte    { return v.str }
func (v Value) Items() []Value   { return v.items }
func (v Value) Len() int         { return len(v.items) }
func (v Value) Item(i int) Value { return v.items[i] }

// AsUint64 reads a string as a canonical unsigned integer.
func (v Value) AsUint64() (uint64, error) {
	if err := v.checkUint(8); err != nil {
		return 0, err
	}
	var r uint64
	for _, b := range v.str {
		r = r<<8 | uint64(b)
	}
	return r, nil
}

func (v Value) AsUint256() (*uint256.Int, error) {
	if err := v.checkUint(32); err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(v.str), nil
}

func (v Value) checkUint(maxLen int) error {
	if v.isList {
		return ErrExpectedString
	}
	if len(v.str) > maxLen {
		return fmt.Errorf("%w: %d bytes, max %d", ErrMalformedInteger, len(v.str), maxLen)
	}
	if len(v.str) > 0 && v.str[0] == 0 {
		return fmt.Errorf("%w: leading zero", ErrMalformedInteger)
	}
	return nil
}

// Equal reports whether both values have the same shape and bytes. An empty
// string equals another empty string regardless of nil-ness.
func (v Value) Equal(o Value) bool {
	if v.isList != o.isList {
		return false
	}
	if !v.isList {
		return bytes.Equal(v.str, o.str)
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if !v.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	if !v.isList {
		return "0x" + hex.EncodeToString(v.str)
	}
	parts := make([]string, len(v.items))
	for i, it := range v.items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Value) payloadSize() int {
	size := 0
	for _, it := range v.items {
		size += it.EncodingSize()
	}
	return size
}

// EncodingSize is the number of bytes Encode will produce.
func (v Value) EncodingSize() int {
	if !v.isList {
		return StringLen(v.str)
	}
	payloadSize := v.payloadSize()
	return ListPrefixLen(payloadSize) + payloadSize
}

func (v Value) encodeTo(to []byte) int {
	if !v.isList {
		return EncodeString(v.str, to)
	}
	pos := EncodeListPrefix(v.payloadSize(), to)
	for _, it := range v.items {
		pos += it.encodeTo(to[pos:])
	}
	return pos
}

// Encode serializes v with minimal prefixes.
func Encode(v Value) []byte {
	out := make([]byte, v.EncodingSize())
	v.encodeTo(out)
	return out
}

// Decode parses exactly one canonical item spanning all of b. The result
// does not alias b.
func Decode(b []byte) (Value, error) {
	d := NewDecoder(b)
	v, err := decodeValue(d)
	if err != nil {
		return Value{}, err
	}
	if !d.Empty() {
		return Value{}, fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingData, len(d.Bytes()), d.Offset())
	}
	return v, nil
}

func decodeValue(d *Decoder) (Value, error) {
	tok, err := d.PeekToken()
	if err != nil {
		return Value{}, err
	}
	if !tok.IsList() {
		payload, err := d.StringElem()
		if err != nil {
			return Value{}, err
		}
		return Value{str: bytes.Clone(payload)}, nil
	}
	v := NewList()
	err = d.ForList(func(_ int, item *Decoder) error {
		it, err := decodeValue(item)
		if err != nil {
			return err
		}
		v.items = append(v.items, it)
		return nil
	})
	if err != nil {
		return Value{}, err
	}
	return v, nil
}
