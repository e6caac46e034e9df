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
	"strconv"

	"github.com/vechain/thortx/common"
)

// Kind selects how a profile field is validated and laid out on the wire.
type Kind uint8

const (
	_ Kind = iota
	// KindNumeric is a minimal big-endian unsigned integer of at most Size bytes.
	KindNumeric
	// KindCompactFixedBlob is a Size byte value sent with its leading zero bytes stripped.
	KindCompactFixedBlob
	// KindOptionalFixedBlob is either exactly Size bytes or empty.
	KindOptionalFixedBlob
	// KindBlob is a byte string of any length.
	KindBlob
	// KindStruct is a list with one item per entry of Fields, in order.
	KindStruct
	// KindList is a list whose items all follow Elem.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCompactFixedBlob:
		return "compact_fixed_blob"
	case KindOptionalFixedBlob:
		return "optional_fixed_blob"
	case KindBlob:
		return "blob"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is one node of a profile: a named, ordered description of an RLP
// shape. Profiles are static values declared next to the types they encode.
type Field struct {
	Name   string
	Kind   Kind
	Size   int
	Fields []Field
	Elem   *Field
}

// Encode checks v against the profile and serializes it. For
// KindCompactFixedBlob fields v carries the full Size bytes.
func (f *Field) Encode(v Value) ([]byte, error) {
	w, err := f.Pack(v)
	if err != nil {
		return nil, err
	}
	return Encode(w), nil
}

// Decode parses b and checks it against the profile.
func (f *Field) Decode(b []byte) (Value, error) {
	v, err := Decode(b)
	if err != nil {
		return Value{}, fieldErr("decode", f.Name, err)
	}
	return f.Unpack(v)
}

// Pack turns a value in its in-memory form into its wire form.
func (f *Field) Pack(v Value) (Value, error) {
	return f.walk(v, f.Name, true)
}

// Unpack is the inverse of Pack for values produced by Decode.
func (f *Field) Unpack(v Value) (Value, error) {
	return f.walk(v, f.Name, false)
}

func (f *Field) walk(v Value, path string, pack bool) (Value, error) {
	op := "decode"
	if pack {
		op = "encode"
	}
	if f.Kind == KindStruct || f.Kind == KindList {
		if !v.isList {
			return Value{}, fieldErr(op, path, ErrExpectedList)
		}
	} else if v.isList {
		return Value{}, fieldErr(op, path, ErrExpectedString)
	}

	switch f.Kind {
	case KindNumeric:
		if err := v.checkUint(f.Size); err != nil {
			return Value{}, fieldErr(op, path, err)
		}
		return v, nil
	case KindCompactFixedBlob:
		if pack {
			if len(v.str) != f.Size {
				return Value{}, fieldErr(op, path, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedBlob, len(v.str), f.Size))
			}
			return NewString(common.TrimLeftZeroes(v.str)), nil
		}
		if len(v.str) > f.Size {
			return Value{}, fieldErr(op, path, fmt.Errorf("%w: %d bytes, max %d", ErrMalformedBlob, len(v.str), f.Size))
		}
		if len(v.str) > 0 && v.str[0] == 0 {
			return Value{}, fieldErr(op, path, fmt.Errorf("%w: leading zero", ErrMalformedBlob))
		}
		return NewString(common.LeftPadBytes(v.str, f.Size)), nil
	case KindOptionalFixedBlob:
		if len(v.str) != 0 && len(v.str) != f.Size {
			return Value{}, fieldErr(op, path, fmt.Errorf("%w: %d bytes, want 0 or %d", ErrMalformedBlob, len(v.str), f.Size))
		}
		return v, nil
	case KindBlob:
		return v, nil
	case KindStruct:
		if len(v.items) != len(f.Fields) {
			return Value{}, fieldErr(op, path, fmt.Errorf("%w: %d, want %d", ErrFieldCount, len(v.items), len(f.Fields)))
		}
		out := make([]Value, len(v.items))
		for i := range f.Fields {
			sub := &f.Fields[i]
			it, err := sub.walk(v.items[i], path+"."+sub.Name, pack)
			if err != nil {
				return Value{}, err
			}
			out[i] = it
		}
		return NewList(out...), nil
	case KindList:
		out := make([]Value, len(v.items))
		for i := range v.items {
			it, err := f.Elem.walk(v.items[i], path+".#"+strconv.Itoa(i), pack)
			if err != nil {
				return Value{}, err
			}
			out[i] = it
		}
		return NewList(out...), nil
	default:
		return Value{}, fieldErr(op, path, fmt.Errorf("unknown field kind %s", f.Kind))
	}
}
