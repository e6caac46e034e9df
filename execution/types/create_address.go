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
	"encoding/binary"
	"fmt"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/crypto"
)

// CreateAddress derives the address of a contract deployed by a transaction:
// the low 20 bytes of blake2b-256(txID || clauseIndex || creationCount), both
// counters as 4 byte big endian.
func CreateAddress(txID common.Hash, clauseIndex, creationCount uint32) common.Address {
	var idx, cnt [4]byte
	binary.BigEndian.PutUint32(idx[:], clauseIndex)
	binary.BigEndian.PutUint32(cnt[:], creationCount)
	h := crypto.Blake2b256(txID[:], idx[:], cnt[:])
	return common.BytesToAddress(h[12:])
}

// ContractAddress is the address of the contract created directly by the
// clause at index i, which must be a creation clause.
func (tx *Transaction) ContractAddress(i int) (common.Address, error) {
	if err := tx.body.check(); err != nil {
		return common.Address{}, &TxError{Op: "contractAddress", Err: err}
	}
	if i < 0 || i >= len(tx.body.clauses) {
		return common.Address{}, fmt.Errorf("clause index %d out of range [0, %d)", i, len(tx.body.clauses))
	}
	if !tx.body.clauses[i].IsCreation() {
		return common.Address{}, fmt.Errorf("clause %d does not create a contract", i)
	}
	id, err := tx.ID()
	if err != nil {
		return common.Address{}, err
	}
	return CreateAddress(id, uint32(i), 0), nil
}
