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

package params

const (
	TxGas                     uint64 = 5000  // Per transaction, charged once.
	ClauseGas                 uint64 = 16000 // Per clause calling an account or contract.
	ClauseGasContractCreation uint64 = 48000 // Per clause creating a contract.
	TxDataZeroGas             uint64 = 4     // Per zero byte of clause data.
	TxDataNonZeroGas          uint64 = 68    // Per non zero byte of clause data.
)
