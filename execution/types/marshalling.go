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
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/common/hexutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type clauseJSON struct {
	To    *common.Address `json:"to"`
	Value string          `json:"value"`
	Data  string          `json:"data"`
}

// txJSON is the transport view of a transaction. Raw, when present, is
// authoritative on unmarshal.
type txJSON struct {
	ID                   *common.Hash    `json:"id,omitempty"`
	Origin               *common.Address `json:"origin,omitempty"`
	GasPayer             *common.Address `json:"gasPayer,omitempty"`
	Type                 TxType          `json:"type"`
	ChainTag             uint8           `json:"chainTag"`
	BlockRef             common.BlockRef `json:"blockRef"`
	Expiration           uint32          `json:"expiration"`
	Clauses              []clauseJSON    `json:"clauses"`
	GasPriceCoef         *uint8          `json:"gasPriceCoef,omitempty"`
	MaxFeePerGas         string          `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas string          `json:"maxPriorityFeePerGas,omitempty"`
	Gas                  uint64          `json:"gas"`
	DependsOn            *common.Hash    `json:"dependsOn"`
	Nonce                string          `json:"nonce"`
	Features             Features        `json:"features"`
	Unused               []string        `json:"unused,omitempty"`
	Signature            string          `json:"signature,omitempty"`
	Raw                  string          `json:"raw,omitempty"`
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	b := tx.body
	if err := b.check(); err != nil {
		return nil, &TxError{Op: "marshal", Field: "tx", Err: err}
	}
	enc := txJSON{
		Type:       b.Type(),
		ChainTag:   b.chainTag,
		BlockRef:   b.blockRef,
		Expiration: b.expiration,
		Clauses:    make([]clauseJSON, len(b.clauses)),
		Gas:        b.gas,
		DependsOn:  b.DependsOn(),
		Nonce:      "0x" + strconv.FormatUint(b.nonce, 16),
		Features:   b.reserved.Features,
	}
	for i, c := range b.clauses {
		enc.Clauses[i] = clauseJSON{To: c.To(), Value: hexutil.EncodeUint256(&c.value), Data: hexutil.Encode(c.data)}
	}
	switch f := b.fee.(type) {
	case LegacyFee:
		coef := f.GasPriceCoef
		enc.GasPriceCoef = &coef
	case DynamicFee:
		enc.MaxFeePerGas = hexutil.EncodeUint256(f.MaxFeePerGas)
		enc.MaxPriorityFeePerGas = hexutil.EncodeUint256(f.MaxPriorityFeePerGas)
	}
	for _, u := range b.reserved.Unused {
		enc.Unused = append(enc.Unused, hexutil.Encode(u))
	}
	if tx.signature != nil {
		enc.Signature = hexutil.Encode(tx.signature)
		id, err := tx.ID()
		if err != nil {
			return nil, err
		}
		origin, err := tx.Origin()
		if err != nil {
			return nil, err
		}
		enc.ID, enc.Origin = &id, &origin
		if tx.IsDelegated() && tx.IsSigned() {
			payer, err := tx.GasPayer()
			if err != nil {
				return nil, err
			}
			enc.GasPayer = &payer
		}
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	enc.Raw = hexutil.Encode(raw)
	return json.Marshal(&enc)
}

func (tx *Transaction) UnmarshalJSON(input []byte) error {
	var dec txJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.Raw != "" {
		raw, err := hexutil.Decode(dec.Raw)
		if err != nil {
			return fmt.Errorf("read raw: %w", err)
		}
		return tx.UnmarshalBinary(raw)
	}

	bld := NewBuilder().
		ChainTag(dec.ChainTag).
		BlockRef(dec.BlockRef).
		Expiration(dec.Expiration).
		Gas(dec.Gas).
		DependsOn(dec.DependsOn).
		Features(dec.Features)
	nonce, err := strconv.ParseUint(hexutil.Strip0x(dec.Nonce), 16, 64)
	if err != nil {
		return fmt.Errorf("read nonce: %w", err)
	}
	bld.Nonce(nonce)
	for i, c := range dec.Clauses {
		value, err := hexutil.DecodeUint256(c.Value)
		if err != nil {
			return fmt.Errorf("read clauses[%d].value: %w", i, err)
		}
		data, err := hexutil.Decode(c.Data)
		if err != nil {
			return fmt.Errorf("read clauses[%d].data: %w", i, err)
		}
		bld.Clause(NewClause(c.To).WithValue(value).WithData(data))
	}
	if dec.GasPriceCoef != nil {
		bld.GasPriceCoef(*dec.GasPriceCoef)
	}
	if dec.MaxFeePerGas != "" {
		v, err := hexutil.DecodeUint256(dec.MaxFeePerGas)
		if err != nil {
			return fmt.Errorf("read maxFeePerGas: %w", err)
		}
		bld.MaxFeePerGas(v)
	}
	if dec.MaxPriorityFeePerGas != "" {
		v, err := hexutil.DecodeUint256(dec.MaxPriorityFeePerGas)
		if err != nil {
			return fmt.Errorf("read maxPriorityFeePerGas: %w", err)
		}
		bld.MaxPriorityFeePerGas(v)
	}
	unused := make([][]byte, len(dec.Unused))
	for i, u := range dec.Unused {
		if unused[i], err = hexutil.Decode(u); err != nil {
			return fmt.Errorf("read unused[%d]: %w", i, err)
		}
	}
	bld.Unused(unused...)

	body, err := bld.Build()
	if err != nil {
		return err
	}
	if dec.Signature == "" {
		*tx = Transaction{body: body}
		return nil
	}
	sig, err := hexutil.Decode(dec.Signature)
	if err != nil {
		return fmt.Errorf("read signature: %w", err)
	}
	signed, err := body.WithSignature(sig)
	if err != nil {
		return err
	}
	*tx = *signed
	return nil
}
