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
	"math"

	"github.com/vechain/thortx/execution/fixedgas"
)

// IntrinsicGas is the gas charged before any clause executes. It saturates
// at math.MaxUint64.
func IntrinsicGas(clauses ...*Clause) uint64 {
	var calls, creations, dataLen, nonZero uint64
	for _, c := range clauses {
		if c.IsCreation() {
			creations++
		} else {
			calls++
		}
		dataLen += uint64(len(c.data))
		for _, b := range c.data {
			if b != 0 {
				nonZero++
			}
		}
	}
	gas, overflow := fixedgas.CalcIntrinsicGas(calls, creations, dataLen, nonZero)
	if overflow {
		return math.MaxUint64
	}
	return gas
}

func (b *Body) IntrinsicGas() uint64 { return IntrinsicGas(b.clauses...) }
