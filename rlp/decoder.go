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

type Token int32

const (
	TokenUnknown Token = iota
	TokenDecimal
	TokenShortBlob
	TokenLongBlob
	TokenShortList
	TokenLongList
)

func (t Token) String() string {
	switch t {
	case TokenDecimal:
		return "decimal"
	case TokenShortBlob:
		return "short_blob"
	case TokenLongBlob:
		return "long_blob"
	case TokenShortList:
		return "short_list"
	case TokenLongList:
		return "long_list"
	default:
		return "unknown"
	}
}

func (t Token) IsList() bool { return t == TokenShortList || t == TokenLongList }

func identifyToken(b byte) Token {
	switch {
	case b < 128:
		return TokenDecimal
	case b < 184:
		return TokenShortBlob
	case b < 192:
		return TokenLongBlob
	case b < 248:
		return TokenShortList
	default:
		return TokenLongList
	}
}

// Decoder walks a buffer one canonical element at a time.
type Decoder struct {
	buf *buf
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{
		buf: newBuf(buf, 0),
	}
}

func (d *Decoder) String() string {
	return fmt.Sprintf(`left=%x pos=%d`, d.buf.Bytes(), d.buf.off)
}

func (d *Decoder) Empty() bool {
	return d.buf.empty()
}

func (d *Decoder) Offset() int {
	return d.buf.off
}

func (d *Decoder) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Decoder) PeekToken() (Token, error) {
	if d.buf.empty() {
		return TokenUnknown, fmt.Errorf("%w: at offset %d", ErrUnexpectedEOF, d.buf.off)
	}
	return identifyToken(d.buf.u[d.buf.off]), nil
}

// StringElem consumes a string element and returns its payload.
func (d *Decoder) StringElem() ([]byte, error) {
	w := d.buf
	dataPos, dataLen, err := String(w.u, w.off)
	if err != nil {
		return nil, err
	}
	w.off = dataPos + dataLen
	return w.u[dataPos:w.off], nil
}

// ForList consumes a list element and calls fn with a decoder positioned on
// each of its items in turn. fn must consume exactly one item.
func (d *Decoder) ForList(fn func(int, *Decoder) error) error {
	w := d.buf
	dataPos, dataLen, err := List(w.u, w.off)
	if err != nil {
		return err
	}
	w.off = dataPos + dataLen
	dec := NewDecoder(w.u[dataPos:w.off])
	for i := 0; !dec.Empty(); i++ {
		if err := fn(i, dec); err != nil {
			return err
		}
	}
	return nil
}

type buf struct {
	u   []byte
	off int
}

func newBuf(u []byte, off int) *buf {
	return &buf{u: u, off: off}
}

func (b *buf) empty() bool { return len(b.u) <= b.off }

func (b *buf) Bytes() []byte {
	return b.u[b.off:]
}
