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

var clauseProfile = rlp.Field{Name: "clause", Kind: rlp.KindStruct, Fields: []rlp.Field{
	{Name: "to", Kind: rlp.KindOptionalFixedBlob, Size: common.AddressLength},
	{Name: "value", Kind: rlp.KindNumeric, Size: 32},
	{Name: "data", Kind: rlp.KindBlob},
}}

var reservedEntry = rlp.Field{Name: "entry", Kind: rlp.KindBlob}

func txProfile(typ TxType, signed bool) *rlp.Field {
	fields := []rlp.Field{
		{Name: "chainTag", Kind: rlp.KindNumeric, Size: 1},
		{Name: "blockRef", Kind: rlp.KindCompactFixedBlob, Size: common.BlockRefLength},
		{Name: "expiration", Kind: rlp.KindNumeric, Size: 4},
		{Name: "clauses", Kind: rlp.KindList, Elem: &clauseProfile},
	}
	if typ == DynamicFeeTxType {
		fields = append(fields,
			rlp.Field{Name: "maxPriorityFeePerGas", Kind: rlp.KindNumeric, Size: 32},
			rlp.Field{Name: "maxFeePerGas", Kind: rlp.KindNumeric, Size: 32},
		)
	} else {
		fields = append(fields, rlp.Field{Name: "gasPriceCoef", Kind: rlp.KindNumeric, Size: 1})
	}
	fields = append(fields,
		rlp.Field{Name: "gas", Kind: rlp.KindNumeric, Size: 8},
		rlp.Field{Name: "dependsOn", Kind: rlp.KindOptionalFixedBlob, Size: common.HashLength},
		rlp.Field{Name: "nonce", Kind: rlp.KindNumeric, Size: 8},
		rlp.Field{Name: "reserved", Kind: rlp.KindList, Elem: &reservedEntry},
	)
	if signed {
		fields = append(fields, rlp.Field{Name: "signature", Kind: rlp.KindBlob})
	}
	return &rlp.Field{Name: "tx", Kind: rlp.KindStruct, Fields: fields}
}

var (
	legacyUnsignedProfile  = txProfile(LegacyTxType, false)
	legacySignedProfile    = txProfile(LegacyTxType, true)
	dynamicUnsignedProfile = txProfile(DynamicFeeTxType, false)
	dynamicSignedProfile   = txProfile(DynamicFeeTxType, true)
)

// Element counts of the unsigned layouts; a signed list has one more.
const (
	legacyUnsignedFields  = 9
	dynamicUnsignedFields = 10
)

func profileFor(typ TxType, signed bool) *rlp.Field {
	switch {
	case typ == DynamicFeeTxType && signed:
		return dynamicSignedProfile
	case typ == DynamicFeeTxType:
		return dynamicUnsignedProfile
	case signed:
		return legacySignedProfile
	default:
		return legacyUnsignedProfile
	}
}

func (c *Clause) rlpValue() rlp.Value {
	var to []byte
	if c.to != nil {
		to = c.to[:]
	}
	return rlp.NewList(rlp.NewString(to), rlp.NewUint256(&c.value), rlp.NewString(c.data))
}

// values is the body in its in-memory profile form.
func (b *Body) values() []rlp.Value {
	clauses := make([]rlp.Value, len(b.clauses))
	for i, c := range b.clauses {
		clauses[i] = c.rlpValue()
	}
	vals := []rlp.Value{
		rlp.NewUint64(uint64(b.chainTag)),
		rlp.NewString(b.blockRef[:]),
		rlp.NewUint64(uint64(b.expiration)),
		rlp.NewList(clauses...),
	}
	switch f := b.fee.(type) {
	case LegacyFee:
		vals = append(vals, rlp.NewUint64(uint64(f.GasPriceCoef)))
	case DynamicFee:
		vals = append(vals, rlp.NewUint256(f.MaxPriorityFeePerGas), rlp.NewUint256(f.MaxFeePerGas))
	}
	var dependsOn []byte
	if b.dependsOn != nil {
		dependsOn = b.dependsOn[:]
	}
	return append(vals,
		rlp.NewUint64(b.gas),
		rlp.NewString(dependsOn),
		rlp.NewUint64(b.nonce),
		rlp.NewList(b.reserved.values()...),
	)
}

func (b *Body) encode(signature []byte) ([]byte, error) {
	if err := b.check(); err != nil {
		return nil, &TxError{Op: "encode", Field: "tx", Err: err}
	}
	vals := b.values()
	signed := signature != nil
	if signed {
		vals = append(vals, rlp.NewString(signature))
	}
	enc, err := profileFor(b.Type(), signed).Encode(rlp.NewList(vals...))
	if err != nil {
		return nil, &TxError{Op: "encode", Field: "tx", Err: err}
	}
	if b.Type() == LegacyTxType {
		return enc, nil
	}
	return append([]byte{byte(b.Type())}, enc...), nil
}

// EncodeUnsigned returns the canonical encoding without signature, the
// preimage of the signing hash.
func (b *Body) EncodeUnsigned() ([]byte, error) {
	return b.encode(nil)
}

// MarshalBinary encodes the transaction, with its signature if any.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	return tx.body.encode(tx.signature)
}

func (tx *Transaction) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeTransaction(data)
	if err != nil {
		return err
	}
	*tx = *decoded
	return nil
}

// DecodeTransaction parses signed and unsigned encodings of both layouts.
func DecodeTransaction(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, decodeErr("tx", rlp.ErrUnexpectedEOF)
	}
	typ := LegacyTxType
	payload := data
	switch {
	case data[0] >= 0xc0:
	case data[0] == byte(DynamicFeeTxType):
		typ, payload = DynamicFeeTxType, data[1:]
	default:
		return nil, &TxError{Op: "decode", Field: "type", Err: fmt.Errorf("%w: %#x", ErrUnknownTxType, data[0])}
	}

	raw, err := rlp.Decode(payload)
	if err != nil {
		return nil, decodeErr("tx", err)
	}
	if !raw.IsList() {
		return nil, decodeErr("tx", rlp.ErrExpectedList)
	}
	unsignedFields := legacyUnsignedFields
	if typ == DynamicFeeTxType {
		unsignedFields = dynamicUnsignedFields
	}
	var signed bool
	switch raw.Len() {
	case unsignedFields:
	case unsignedFields + 1:
		signed = true
	default:
		return nil, decodeErr("tx", fmt.Errorf("%w: %d, want %d or %d", rlp.ErrFieldCount, raw.Len(), unsignedFields, unsignedFields+1))
	}
	v, err := profileFor(typ, signed).Unpack(raw)
	if err != nil {
		return nil, decodeErr("tx", err)
	}
	return bodyFromValues(typ, v.Items())
}

func bodyFromValues(typ TxType, items []rlp.Value) (*Transaction, error) {
	next := func() rlp.Value {
		v := items[0]
		items = items[1:]
		return v
	}
	// numeric widths are already enforced by the profile
	u64 := func(v rlp.Value) uint64 {
		x, _ := v.AsUint64()
		return x
	}

	b := &Body{}
	b.chainTag = byte(u64(next()))
	b.blockRef = common.BytesToBlockRef(next().Bytes())
	b.expiration = uint32(u64(next()))

	clauses := next().Items()
	if len(clauses) == 0 {
		return nil, decodeErr("tx.clauses", ErrInvalidClauseCount)
	}
	b.clauses = make([]*Clause, len(clauses))
	for i, cv := range clauses {
		c := &Clause{data: cv.Item(2).Bytes()}
		if to := cv.Item(0).Bytes(); len(to) > 0 {
			addr := common.BytesToAddress(to)
			c.to = &addr
		}
		c.value.SetBytes(cv.Item(1).Bytes())
		b.clauses[i] = c
	}

	if typ == DynamicFeeTxType {
		maxPriority, _ := next().AsUint256()
		maxFee, _ := next().AsUint256()
		b.fee = DynamicFee{MaxFeePerGas: maxFee, MaxPriorityFeePerGas: maxPriority}
	} else {
		b.fee = LegacyFee{GasPriceCoef: uint8(u64(next()))}
	}

	b.gas = u64(next())
	if dep := next().Bytes(); len(dep) > 0 {
		h := common.BytesToHash(dep)
		b.dependsOn = &h
	}
	b.nonce = u64(next())

	reserved, err := decodeReserved(next())
	if err != nil {
		return nil, err
	}
	b.reserved = reserved

	if len(items) == 0 {
		return &Transaction{body: b}, nil
	}
	sig := next().Bytes()
	if err := checkSignature(b, sig); err != nil {
		return nil, &TxError{Op: "decode", Field: "tx.signature", Err: err}
	}
	return &Transaction{body: b, signature: sig}, nil
}
