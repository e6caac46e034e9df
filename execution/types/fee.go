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

	"github.com/holiman/uint256"
)

// TxType is the envelope marker. Legacy transactions are sent as a bare RLP
// list; every other type is prefixed with its type byte.
type TxType byte

const (
	LegacyTxType     TxType = 0x00
	DynamicFeeTxType TxType = 0x51
)

func (t TxType) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case DynamicFeeTxType:
		return "dynamic_fee"
	default:
		return fmt.Sprintf("type(%#x)", byte(t))
	}
}

// FeeMode is either LegacyFee or DynamicFee.
type FeeMode interface {
	Type() TxType
	feeMode()
}

// LegacyFee prices gas as a blend of the base gas price and a market ceiling
// selected by GasPriceCoef.
type LegacyFee struct {
	GasPriceCoef uint8
}

func (LegacyFee) Type() TxType { return LegacyTxType }
func (LegacyFee) feeMode()     {}

// DynamicFee is the base fee market mode.
type DynamicFee struct {
	MaxFeePerGas         *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
}

func (DynamicFee) Type() TxType { return DynamicFeeTxType }
func (DynamicFee) feeMode()     {}

func (f DynamicFee) copy() DynamicFee {
	return DynamicFee{
		MaxFeePerGas:         cloneOrZero(f.MaxFeePerGas),
		MaxPriorityFeePerGas: cloneOrZero(f.MaxPriorityFeePerGas),
	}
}

func cloneOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}
