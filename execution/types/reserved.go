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

package types

import (
	"fmt"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/rlp"
)

// Features is the bitset carried in the first reserved entry.
type Features uint32

const (
	// DelegationFeature marks a fee-delegated transaction.
	DelegationFeature Features = 1
)

func (f Features) IsDelegated() bool { return f&DelegationFeature == DelegationFeature }

// SetDelegated returns f with the delegation bit set or cleared. Other bits are kept.
func (f Features) SetDelegated(delegated bool) Features {
	if delegated {
		return f | DelegationFeature
	}
	return f &^ DelegationFeature
}

// Reserved is the forward compatible tail of a transaction body. Unused
// holds the raw entries after the features, kept verbatim.
type Reserved struct {
	Features Features
	Unused   [][]byte
}

func (r Reserved) copy() Reserved {
	return Reserved{Features: r.Features, Unused: common.CopyBytesSlice(r.Unused)}
}

// trimmed drops trailing empty unused entries, which the encoding cannot carry.
func (r Reserved) trimmed() Reserved {
	cpy := r.copy()
	end := len(cpy.Unused)
	for end > 0 && len(cpy.Unused[end-1]) == 0 {
		end--
	}
	if end == 0 {
		cpy.Unused = nil
	} else {
		cpy.Unused = cpy.Unused[:end]
	}
	return cpy
}

// values lays out the reserved list with trailing empty entries removed.
func (r Reserved) values() []rlp.Value {
	list := make([]rlp.Value, 0, 1+len(r.Unused))
	list = append(list, rlp.NewUint64(uint64(r.Features)))
	for _, u := range r.Unused {
		list = append(list, rlp.NewString(u))
	}
	end := len(list)
	for end > 0 && len(list[end-1].Bytes()) == 0 {
		end--
	}
	return list[:end]
}

func decodeReserved(v rlp.Value) (Reserved, error) {
	items := v.Items()
	if len(items) == 0 {
		return Reserved{}, nil
	}
	if len(items[len(items)-1].Bytes()) == 0 {
		return Reserved{}, decodeErr("tx.reserved", ErrUntrimmedReserved)
	}
	features, err := items[0].AsUint64()
	if err != nil {
		return Reserved{}, decodeErr("tx.reserved.#0", err)
	}
	if features > 0xffffffff {
		return Reserved{}, decodeErr("tx.reserved.#0", fmt.Errorf("%w: %d bytes, max 4", rlp.ErrMalformedInteger, len(items[0].Bytes())))
	}
	r := Reserved{Features: Features(features)}
	for _, it := range items[1:] {
		r.Unused = append(r.Unused, it.Bytes())
	}
	return r, nil
}
