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
	"errors"
	"fmt"

	"github.com/vechain/thortx/rlp"
)

var (
	ErrMalformedTransaction    = errors.New("malformed transaction")
	ErrInvalidClauseCount      = errors.New("transaction has no clauses")
	ErrConflictingFeeMode      = errors.New("both legacy and dynamic fee fields set")
	ErrMissingFeeMode          = errors.New("no fee mode set")
	ErrNotSigned               = errors.New("transaction not signed")
	ErrInvalidSignatureLength  = errors.New("invalid signature length")
	ErrSignatureRecoveryFailed = errors.New("signature recovery failed")
	ErrDelegationNotEnabled    = errors.New("delegation feature not enabled")
	ErrDelegated               = errors.New("transaction is delegated, gas payer signature required")
	ErrUntrimmedReserved       = errors.New("reserved list not trimmed")
	ErrUnknownTxType           = errors.New("unknown transaction type")
	ErrEmptyBody               = errors.New("transaction body not built")

	ErrChainTagMismatch       = errors.New("chain tag mismatch")
	ErrDynamicFeeNotActivated = errors.New("dynamic fee transactions not activated")
	ErrTxTooLarge             = errors.New("transaction too large")
)

// TxError reports a failed transaction operation together with the field
// involved, e.g. "decode tx.clauses.#0.value".
type TxError struct {
	Op    string
	Field string
	Err   error
}

func (e *TxError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("tx %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("tx %s %s: %v", e.Op, e.Field, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }

// decodeErr marks err as a malformed transaction. Field paths coming from the
// rlp profile win over the given field.
func decodeErr(field string, err error) error {
	var fe *rlp.FieldError
	if errors.As(err, &fe) {
		field, err = fe.Field, fe.Err
	}
	return &TxError{Op: "decode", Field: field, Err: fmt.Errorf("%w: %w", ErrMalformedTransaction, err)}
}
