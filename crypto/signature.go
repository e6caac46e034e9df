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

package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/common/hexutil"
)

// compact signatures from decred carry the recovery code first, offset by this.
const compactSigMagicOffset = 27

// ValidatePrivateKey checks that b is a 32 byte scalar in [1, N-1].
func ValidatePrivateKey(b []byte) error {
	if len(b) != PrivateKeyLength {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidPrivateKey, len(b), PrivateKeyLength)
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return fmt.Errorf("%w: not below curve order", ErrInvalidPrivateKey)
	}
	if s.IsZero() {
		return fmt.Errorf("%w: zero", ErrInvalidPrivateKey)
	}
	return nil
}

// HexToPrivateKey parses a hex private key, with or without 0x prefix.
func HexToPrivateKey(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	if err := ValidatePrivateKey(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateKey returns a fresh random private key.
func GenerateKey() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return key.Serialize(), nil
}

func toPrivKey(b []byte) (*secp256k1.PrivateKey, error) {
	if err := ValidatePrivateKey(b); err != nil {
		return nil, err
	}
	return secp256k1.PrivKeyFromBytes(b), nil
}

// PubkeyFromPrivate derives the 65 byte uncompressed public key.
func PubkeyFromPrivate(priv []byte) ([]byte, error) {
	key, err := toPrivKey(priv)
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return key.PubKey().SerializeUncompressed(), nil
}

func parsePubkey(pub []byte) (*secp256k1.PublicKey, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return key, nil
}

// DecompressPubkey accepts a compressed (33 byte) or uncompressed (65 byte)
// public key and returns it in uncompressed form.
func DecompressPubkey(pub []byte) ([]byte, error) {
	key, err := parsePubkey(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

// CompressPubkey is the inverse of DecompressPubkey.
func CompressPubkey(pub []byte) ([]byte, error) {
	key, err := parsePubkey(pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}

// AddressFromPublicKey returns the low 20 bytes of keccak256(X || Y).
func AddressFromPublicKey(pub []byte) (common.Address, error) {
	uncompressed, err := DecompressPubkey(pub)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(Keccak256(uncompressed[1:])[12:]), nil
}

func AddressFromPrivateKey(priv []byte) (common.Address, error) {
	pub, err := PubkeyFromPrivate(priv)
	if err != nil {
		return common.Address{}, err
	}
	return AddressFromPublicKey(pub)
}

// Sign calculates a deterministic (RFC6979) ECDSA signature.
//
// The produced signature is in the [R || S || V] format where V is 0 or 1
// and S is in the lower half of the curve order.
func Sign(hash []byte, priv []byte) ([]byte, error) {
	if len(hash) != MessageHashLength {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidMessageHash, len(hash), MessageHashLength)
	}
	key, err := toPrivKey(priv)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	compact := ecdsa.SignCompact(key, hash, false)
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0] - compactSigMagicOffset
	return sig, nil
}

// Ecrecover returns the uncompressed public key that created the given signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	key, err := sigToPub(hash, sig)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

// SigToAddress recovers the signer address of hash.
func SigToAddress(hash, sig []byte) (common.Address, error) {
	pub, err := Ecrecover(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(Keccak256(pub[1:])[12:]), nil
}

func sigToPub(hash, sig []byte) (*secp256k1.PublicKey, error) {
	if len(hash) != MessageHashLength {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidMessageHash, len(hash), MessageHashLength)
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidSignature, len(sig), SignatureLength)
	}
	if sig[64] > 1 {
		return nil, fmt.Errorf("%w: recovery id %d", ErrInvalidSignature, sig[64])
	}
	var compact [SignatureLength]byte
	compact[0] = sig[64] + compactSigMagicOffset
	copy(compact[1:], sig[:64])
	key, _, err := ecdsa.RecoverCompact(compact[:], hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecoveryFailed, err)
	}
	return key, nil
}
