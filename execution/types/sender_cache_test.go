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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thortx/common/hexutil"
	"github.com/vechain/thortx/crypto"
)

func TestSenderCache(t *testing.T) {
	cache, err := NewSenderCache(2)
	require.NoError(t, err)
	origin, err := crypto.AddressFromPrivateKey(signerKey)
	require.NoError(t, err)
	payer, err := crypto.AddressFromPrivateKey(gasPayerKey)
	require.NoError(t, err)

	plain := txFixtures[0].sign(t, txFixtures[0].body(t))
	delegated := txFixtures[1].sign(t, txFixtures[1].body(t))

	got, err := cache.Origin(plain)
	require.NoError(t, err)
	assert.Equal(t, origin, got)
	_, err = cache.GasPayer(plain)
	require.ErrorIs(t, err, ErrDelegationNotEnabled)

	got, err = cache.GasPayer(delegated)
	require.NoError(t, err)
	assert.Equal(t, payer, got)
	got, err = cache.Origin(delegated)
	require.NoError(t, err)
	assert.Equal(t, origin, got)
	assert.Equal(t, 2, cache.Len())

	_, err = cache.Origin(NewTransaction(txFixtures[0].body(t)))
	require.ErrorIs(t, err, ErrNotSigned)
	assert.Equal(t, 2, cache.Len())

	_, err = NewSenderCache(0)
	require.Error(t, err)
}

func TestDecodeTransactions(t *testing.T) {
	raws := make([][]byte, 0, 2*len(txFixtures))
	for _, f := range txFixtures {
		raws = append(raws, hexutil.MustDecode(f.encodedSigned), hexutil.MustDecode(f.encodedUnsigned))
	}
	cache, err := NewSenderCache(16)
	require.NoError(t, err)

	txs, err := DecodeTransactions(context.Background(), raws, cache)
	require.NoError(t, err)
	require.Len(t, txs, len(raws))
	for i, tx := range txs {
		enc, err := tx.MarshalBinary()
		require.NoError(t, err)
		assert.Equal(t, raws[i], enc)
	}
	assert.Equal(t, len(txFixtures), cache.Len())

	raws = append(raws, []byte{0xc0})
	_, err = DecodeTransactions(context.Background(), raws, nil)
	require.ErrorIs(t, err, ErrMalformedTransaction)
	assert.Contains(t, err.Error(), "transaction 6")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = DecodeTransactions(ctx, raws[:1], nil)
	require.ErrorIs(t, err, context.Canceled)
}
