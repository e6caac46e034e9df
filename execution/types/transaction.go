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
	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/crypto"
)

// Transaction is a body with an optional signature. A nil signature means
// unsigned. Values are immutable: signing returns a new Transaction. The
// zero value has no body; its encodings fail with ErrEmptyBody.
type Transaction struct {
	body      *Body
	signature []byte
}

// NewTransaction wraps body as an unsigned transaction.
func NewTransaction(body *Body) *Transaction {
	return &Transaction{body: body}
}

func (tx *Transaction) Body() *Body { return tx.body }

func (tx *Transaction) Signature() []byte { return common.CopyBytes(tx.signature) }

func (tx *Transaction) Type() TxType { return tx.body.Type() }

func (tx *Transaction) IsDelegated() bool { return tx.body.IsDelegated() }

// IsSigned reports whether the signature is complete for the body's
// delegation mode: 65 bytes without delegation, 130 bytes with it.
func (tx *Transaction) IsSigned() bool {
	if tx.body.IsDelegated() {
		return len(tx.signature) == 2*crypto.SignatureLength
	}
	return len(tx.signature) == crypto.SignatureLength
}

// Hash is the blake2b-256 of the full encoding, signature included. Unlike
// ID it changes with the signature bytes.
func (tx *Transaction) Hash() (common.Hash, error) {
	enc, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Blake2b256(enc), nil
}

// Size is the encoded length in bytes.
func (tx *Transaction) Size() (int, error) {
	enc, err := tx.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return len(enc), nil
}
