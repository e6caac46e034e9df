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

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/crypto"
)

// checkSignature enforces the signature shapes a body accepts. A 65 byte
// signature on a delegated body is an origin signature still waiting for
// the gas payer.
func checkSignature(b *Body, sig []byte) error {
	switch len(sig) {
	case crypto.SignatureLength:
		return nil
	case 2 * crypto.SignatureLength:
		if !b.IsDelegated() {
			return ErrDelegationNotEnabled
		}
		return nil
	default:
		return fmt.Errorf("%w: %d bytes", ErrInvalidSignatureLength, len(sig))
	}
}

// SigningHash is the blake2b-256 of the unsigned encoding. It is what the
// origin signs.
func (b *Body) SigningHash() (common.Hash, error) {
	enc, err := b.EncodeUnsigned()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Blake2b256(enc), nil
}

// GasPayerSigningHash binds the gas payer signature to one origin:
// blake2b-256(signingHash || origin).
func (b *Body) GasPayerSigningHash(origin common.Address) (common.Hash, error) {
	h, err := b.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Blake2b256(h[:], origin[:]), nil
}

// SignAsOrigin returns the 65 byte origin signature.
func (b *Body) SignAsOrigin(key []byte) ([]byte, error) {
	h, err := b.SigningHash()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(h[:], key)
	if err != nil {
		return nil, &TxError{Op: "sign", Field: "origin", Err: err}
	}
	return sig, nil
}

// SignAsGasPayer returns the 65 byte gas payer signature for a transaction
// sent by origin. The origin does not need to have signed yet.
func (b *Body) SignAsGasPayer(origin common.Address, key []byte) ([]byte, error) {
	if !b.IsDelegated() {
		return nil, &TxError{Op: "sign", Field: "gasPayer", Err: ErrDelegationNotEnabled}
	}
	h, err := b.GasPayerSigningHash(origin)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(h[:], key)
	if err != nil {
		return nil, &TxError{Op: "sign", Field: "gasPayer", Err: err}
	}
	return sig, nil
}

// WithSignature attaches sig, an origin signature optionally followed by
// the gas payer signature. Signatures produced elsewhere, e.g. by a remote
// gas payer service, are combined here.
func (b *Body) WithSignature(sig []byte) (*Transaction, error) {
	if err := checkSignature(b, sig); err != nil {
		return nil, &TxError{Op: "sign", Field: "signature", Err: err}
	}
	return &Transaction{body: b, signature: common.CopyBytes(sig)}, nil
}

// Sign signs a non delegated body.
func (b *Body) Sign(key []byte) (*Transaction, error) {
	if b.IsDelegated() {
		return nil, &TxError{Op: "sign", Field: "origin", Err: ErrDelegated}
	}
	sig, err := b.SignAsOrigin(key)
	if err != nil {
		return nil, err
	}
	return b.WithSignature(sig)
}

// SignWithGasPayer signs a delegated body with both keys.
func (b *Body) SignWithGasPayer(originKey, gasPayerKey []byte) (*Transaction, error) {
	if !b.IsDelegated() {
		return nil, &TxError{Op: "sign", Field: "gasPayer", Err: ErrDelegationNotEnabled}
	}
	origin, err := crypto.AddressFromPrivateKey(originKey)
	if err != nil {
		return nil, &TxError{Op: "sign", Field: "origin", Err: err}
	}
	originSig, err := b.SignAsOrigin(originKey)
	if err != nil {
		return nil, err
	}
	payerSig, err := b.SignAsGasPayer(origin, gasPayerKey)
	if err != nil {
		return nil, err
	}
	return b.WithSignature(append(originSig, payerSig...))
}

// Origin recovers the sender from the first signature.
func (tx *Transaction) Origin() (common.Address, error) {
	if len(tx.signature) < crypto.SignatureLength {
		return common.Address{}, &TxError{Op: "origin", Err: ErrNotSigned}
	}
	h, err := tx.body.SigningHash()
	if err != nil {
		return common.Address{}, err
	}
	addr, err := crypto.SigToAddress(h[:], tx.signature[:crypto.SignatureLength])
	if err != nil {
		return common.Address{}, &TxError{Op: "origin", Field: "signature", Err: fmt.Errorf("%w: %w", ErrSignatureRecoveryFailed, err)}
	}
	return addr, nil
}

// GasPayer recovers the gas payer of a delegated transaction.
func (tx *Transaction) GasPayer() (common.Address, error) {
	if !tx.body.IsDelegated() {
		return common.Address{}, &TxError{Op: "gasPayer", Err: ErrDelegationNotEnabled}
	}
	if len(tx.signature) != 2*crypto.SignatureLength {
		return common.Address{}, &TxError{Op: "gasPayer", Err: ErrNotSigned}
	}
	origin, err := tx.Origin()
	if err != nil {
		return common.Address{}, err
	}
	h, err := tx.body.GasPayerSigningHash(origin)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := crypto.SigToAddress(h[:], tx.signature[crypto.SignatureLength:])
	if err != nil {
		return common.Address{}, &TxError{Op: "gasPayer", Field: "signature", Err: fmt.Errorf("%w: %w", ErrSignatureRecoveryFailed, err)}
	}
	return addr, nil
}

// ID identifies the transaction on the network and is what dependsOn
// refers to: blake2b-256(signingHash || origin).
func (tx *Transaction) ID() (common.Hash, error) {
	origin, err := tx.Origin()
	if err != nil {
		return common.Hash{}, err
	}
	h, err := tx.body.SigningHash()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Blake2b256(h[:], origin[:]), nil
}
