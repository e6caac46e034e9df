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

package rlp

import (
	"errors"
	"fmt"
)

var (
	ErrNonCanonical     = errors.New("non-canonical encoding")
	ErrMalformedInteger = errors.New("malformed integer")
	ErrMalformedBlob    = errors.New("malformed blob")
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrTrailingData     = errors.New("trailing data")
	ErrExpectedList     = errors.New("expected list")
	ErrExpectedString   = errors.New("expected string")
	ErrFieldCount       = errors.New("wrong number of list elements")
	ErrValueTooLarge    = errors.New("value too large")
)

// FieldError ties a codec failure to the profile path it happened on,
// e.g. "tx.clauses.#1.value".
type FieldError struct {
	Op    string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("rlp %s %s: %v", e.Op, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(op, field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return err
	}
	return &FieldError{Op: op, Field: field, Err: err}
}
