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

// Package crypto carries the hash functions and the secp256k1 primitives
// used to derive addresses and to sign and recover transactions.
package crypto

import (
	"errors"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/vechain/thortx/common"
)

var (
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInvalidPublicKey   = errors.New("invalid public key")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrRecoveryFailed     = errors.New("public key recovery failed")
	ErrInvalidMessageHash = errors.New("invalid message hash")
)

const (
	// SignatureLength is r(32) || s(32) || recovery id(1).
	SignatureLength = 64 + 1
	// MessageHashLength is the only digest size accepted by Sign and Ecrecover.
	MessageHashLength = 32
	PrivateKeyLength  = 32
)

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	h := Keccak256Hash(data...)
	return h[:]
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.HashData(data...)
}

var blake2bPool = sync.Pool{
	New: func() any {
		h, err := blake2b.New256(nil)
		if err != nil {
			panic(err)
		}
		return h
	},
}

// Blake2b256 is the network hash: signing hash, gas-payer hash and transaction id.
func Blake2b256(data ...[]byte) common.Hash {
	h := blake2bPool.Get().(hash.Hash)
	defer blake2bPool.Put(h)
	h.Reset()
	for _, b := range data {
		h.Write(b)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}
