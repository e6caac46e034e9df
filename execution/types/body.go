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
	"github.com/holiman/uint256"

	"github.com/vechain/thortx/common"
)

// Body is the unsigned content of a transaction. It is built once through a
// Builder or by decoding and is never modified afterwards. The zero value
// fails every encoding with ErrEmptyBody.
type Body struct {
	chainTag   byte
	blockRef   common.BlockRef
	expiration uint32
	clauses    []*Clause
	fee        FeeMode
	gas        uint64
	dependsOn  *common.Hash
	nonce      uint64
	reserved   Reserved
}

func (b *Body) ChainTag() byte            { return b.chainTag }
func (b *Body) BlockRef() common.BlockRef { return b.blockRef }
func (b *Body) Expiration() uint32        { return b.expiration }
func (b *Body) Gas() uint64               { return b.gas }
func (b *Body) Nonce() uint64             { return b.nonce }
func (b *Body) Features() Features        { return b.reserved.Features }

// Type is LegacyTxType for a body without a fee mode.
func (b *Body) Type() TxType {
	if b == nil || b.fee == nil {
		return LegacyTxType
	}
	return b.fee.Type()
}

func (b *Body) IsDelegated() bool {
	return b != nil && b.reserved.Features.IsDelegated()
}

// check rejects bodies that did not come from a Builder or a decoder.
func (b *Body) check() error {
	if b == nil || b.fee == nil || len(b.clauses) == 0 {
		return ErrEmptyBody
	}
	return nil
}

// Clauses returns the clauses in execution order.
func (b *Body) Clauses() []*Clause {
	return append([]*Clause(nil), b.clauses...)
}

func (b *Body) DependsOn() *common.Hash {
	if b.dependsOn == nil {
		return nil
	}
	cpy := *b.dependsOn
	return &cpy
}

// Fee returns a copy of the fee mode; switch on its concrete type.
func (b *Body) Fee() FeeMode {
	if f, ok := b.fee.(DynamicFee); ok {
		return f.copy()
	}
	return b.fee
}

// GasPriceCoef is the legacy coefficient, zero for dynamic fee bodies.
func (b *Body) GasPriceCoef() uint8 {
	if f, ok := b.fee.(LegacyFee); ok {
		return f.GasPriceCoef
	}
	return 0
}

// MaxFeePerGas and MaxPriorityFeePerGas return nil for legacy bodies.
func (b *Body) MaxFeePerGas() *uint256.Int {
	if f, ok := b.fee.(DynamicFee); ok {
		return new(uint256.Int).Set(f.MaxFeePerGas)
	}
	return nil
}

func (b *Body) MaxPriorityFeePerGas() *uint256.Int {
	if f, ok := b.fee.(DynamicFee); ok {
		return new(uint256.Int).Set(f.MaxPriorityFeePerGas)
	}
	return nil
}

func (b *Body) Reserved() Reserved { return b.reserved.copy() }

// Builder returns a builder primed with the content of b.
func (b *Body) Builder() *Builder {
	bld := &Builder{
		chainTag:   b.chainTag,
		blockRef:   b.blockRef,
		expiration: b.expiration,
		clauses:    b.Clauses(),
		gas:        b.gas,
		dependsOn:  b.DependsOn(),
		nonce:      b.nonce,
		reserved:   b.reserved.copy(),
	}
	switch f := b.fee.(type) {
	case LegacyFee:
		coef := f.GasPriceCoef
		bld.gasPriceCoef = &coef
	case DynamicFee:
		bld.maxFeePerGas = new(uint256.Int).Set(f.MaxFeePerGas)
		bld.maxPriorityFeePerGas = new(uint256.Int).Set(f.MaxPriorityFeePerGas)
	}
	return bld
}

// Builder collects body fields. The fee mode is chosen by which setters are
// called: GasPriceCoef for legacy, MaxFeePerGas/MaxPriorityFeePerGas for
// dynamic. Mixing them fails in Build.
type Builder struct {
	chainTag             byte
	blockRef             common.BlockRef
	expiration           uint32
	clauses              []*Clause
	gasPriceCoef         *uint8
	maxFeePerGas         *uint256.Int
	maxPriorityFeePerGas *uint256.Int
	gas                  uint64
	dependsOn            *common.Hash
	nonce                uint64
	reserved             Reserved
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) ChainTag(tag byte) *Builder {
	b.chainTag = tag
	return b
}

func (b *Builder) BlockRef(ref common.BlockRef) *Builder {
	b.blockRef = ref
	return b
}

func (b *Builder) Expiration(exp uint32) *Builder {
	b.expiration = exp
	return b
}

func (b *Builder) Clause(c *Clause) *Builder {
	b.clauses = append(b.clauses, c.copy())
	return b
}

func (b *Builder) Gas(gas uint64) *Builder {
	b.gas = gas
	return b
}

func (b *Builder) DependsOn(id *common.Hash) *Builder {
	if id == nil {
		b.dependsOn = nil
		return b
	}
	cpy := *id
	b.dependsOn = &cpy
	return b
}

func (b *Builder) Nonce(nonce uint64) *Builder {
	b.nonce = nonce
	return b
}

func (b *Builder) GasPriceCoef(coef uint8) *Builder {
	b.gasPriceCoef = &coef
	return b
}

func (b *Builder) MaxFeePerGas(v *uint256.Int) *Builder {
	b.maxFeePerGas = cloneOrZero(v)
	return b
}

func (b *Builder) MaxPriorityFeePerGas(v *uint256.Int) *Builder {
	b.maxPriorityFeePerGas = cloneOrZero(v)
	return b
}

// Fee sets the fee mode in one go, replacing earlier fee setters.
func (b *Builder) Fee(fee FeeMode) *Builder {
	b.gasPriceCoef, b.maxFeePerGas, b.maxPriorityFeePerGas = nil, nil, nil
	switch f := fee.(type) {
	case LegacyFee:
		b.GasPriceCoef(f.GasPriceCoef)
	case DynamicFee:
		b.MaxFeePerGas(f.MaxFeePerGas)
		b.MaxPriorityFeePerGas(f.MaxPriorityFeePerGas)
	}
	return b
}

func (b *Builder) Features(f Features) *Builder {
	b.reserved.Features = f
	return b
}

// Delegated toggles the delegation feature bit.
func (b *Builder) Delegated(delegated bool) *Builder {
	b.reserved.Features = b.reserved.Features.SetDelegated(delegated)
	return b
}

// Unused sets the raw reserved entries that follow the features.
func (b *Builder) Unused(entries ...[]byte) *Builder {
	b.reserved.Unused = common.CopyBytesSlice(entries)
	return b
}

// Build validates the collected fields and returns an immutable body.
func (b *Builder) Build() (*Body, error) {
	dynamic := b.maxFeePerGas != nil || b.maxPriorityFeePerGas != nil
	var fee FeeMode
	switch {
	case b.gasPriceCoef != nil && dynamic:
		return nil, &TxError{Op: "build", Field: "fee", Err: ErrConflictingFeeMode}
	case b.gasPriceCoef != nil:
		fee = LegacyFee{GasPriceCoef: *b.gasPriceCoef}
	case dynamic:
		fee = DynamicFee{MaxFeePerGas: b.maxFeePerGas, MaxPriorityFeePerGas: b.maxPriorityFeePerGas}.copy()
	default:
		return nil, &TxError{Op: "build", Field: "fee", Err: ErrMissingFeeMode}
	}
	if len(b.clauses) == 0 {
		return nil, &TxError{Op: "build", Field: "clauses", Err: ErrInvalidClauseCount}
	}
	body := &Body{
		chainTag:   b.chainTag,
		blockRef:   b.blockRef,
		expiration: b.expiration,
		clauses:    append([]*Clause(nil), b.clauses...),
		fee:        fee,
		gas:        b.gas,
		nonce:      b.nonce,
		reserved:   b.reserved.trimmed(),
	}
	if b.dependsOn != nil {
		cpy := *b.dependsOn
		body.dependsOn = &cpy
	}
	return body, nil
}
