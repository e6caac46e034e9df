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

package fixedgas

import (
	"math/bits"

	"github.com/vechain/thortx/params"
)

// CalcIntrinsicGas computes the gas charged before execution from clause
// totals. A transaction with no clauses pays for one regular clause.
// The second return value reports an overflow.
func CalcIntrinsicGas(calls, creations, dataLen, dataNonZeroLen uint64) (uint64, bool) {
	if calls+creations == 0 {
		calls = 1
	}
	gas := params.TxGas
	var overflow bool
	add := func(n, price uint64) {
		hi, lo := bits.Mul64(n, price)
		if hi != 0 {
			overflow = true
		}
		var carry uint64
		gas, carry = bits.Add64(gas, lo, 0)
		if carry != 0 {
			overflow = true
		}
	}
	add(calls, params.ClauseGas)
	add(creations, params.ClauseGasContractCreation)
	add(dataLen-dataNonZeroLen, params.TxDataZeroGas)
	add(dataNonZeroLen, params.TxDataNonZeroGas)
	return gas, overflow
}
