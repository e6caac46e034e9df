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
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/common/hexutil"
	"github.com/vechain/thortx/rlp"
)

var bodyCmpOpts = []cmp.Option{
	cmp.AllowUnexported(Body{}, Clause{}),
	cmpopts.EquateEmpty(),
}

func requireSameBody(t *testing.T, want, got *Body) {
	t.Helper()
	if diff := cmp.Diff(want, got, bodyCmpOpts...); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

// randomBody fills every body field from f. Roughly half of the bodies use
// the dynamic fee layout.
func randomBody(t *testing.T, f *fuzz.Fuzzer, rnd *rand.Rand) *Body {
	t.Helper()
	var (
		chainTag   byte
		blockRef   [common.BlockRefLength]byte
		expiration uint32
		gas, nonce uint64
		features   uint32
		unused     [][]byte
	)
	f.Fuzz(&chainTag)
	f.Fuzz(&blockRef)
	f.Fuzz(&expiration)
	f.Fuzz(&gas)
	f.Fuzz(&nonce)
	f.Fuzz(&features)
	f.Fuzz(&unused)

	bld := NewBuilder().
		ChainTag(chainTag).
		BlockRef(blockRef).
		Expiration(expiration).
		Gas(gas).
		Nonce(nonce).
		Features(Features(features)).
		Unused(unused...)

	for n := 1 + rnd.Intn(4); n > 0; n-- {
		var (
			to    common.Address
			value [32]byte
			data  []byte
		)
		f.Fuzz(&to)
		f.Fuzz(&value)
		f.Fuzz(&data)
		c := NewClause(&to)
		if rnd.Intn(4) == 0 {
			c = NewClause(nil)
		}
		bld.Clause(c.WithValue(new(uint256.Int).SetBytes32(value[:])).WithData(data))
	}
	if rnd.Intn(2) == 0 {
		var dep common.Hash
		f.Fuzz(&dep)
		bld.DependsOn(&dep)
	}
	if rnd.Intn(2) == 0 {
		var coef uint8
		f.Fuzz(&coef)
		bld.GasPriceCoef(coef)
	} else {
		var maxFee, maxPriority [32]byte
		f.Fuzz(&maxFee)
		f.Fuzz(&maxPriority)
		bld.MaxFeePerGas(new(uint256.Int).SetBytes32(maxFee[:])).
			MaxPriorityFeePerGas(new(uint256.Int).SetBytes32(maxPriority[:]))
	}
	body, err := bld.Build()
	require.NoError(t, err)
	return body
}

func TestEncodingRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	f := fuzz.NewWithSeed(1).NilChance(0.2).NumElements(0, 4)
	sig := bytes.Repeat([]byte{0xab}, 65)
	sig2 := bytes.Repeat([]byte{0xcd}, 130)

	for i := 0; i < 200; i++ {
		body := randomBody(t, f, rnd)

		unsigned, err := body.EncodeUnsigned()
		require.NoError(t, err)
		if body.Type() == DynamicFeeTxType {
			require.Equal(t, byte(DynamicFeeTxType), unsigned[0])
		} else {
			require.GreaterOrEqual(t, unsigned[0], byte(0xc0))
		}

		decoded, err := DecodeTransaction(unsigned)
		require.NoError(t, err, "case %d: %x", i, unsigned)
		requireSameBody(t, body, decoded.Body())
		require.Nil(t, decoded.Signature())

		again, err := decoded.Body().EncodeUnsigned()
		require.NoError(t, err)
		require.Equal(t, unsigned, again)

		s := sig
		if body.IsDelegated() && i%2 == 0 {
			s = sig2
		}
		tx, err := body.WithSignature(s)
		require.NoError(t, err)
		signed, err := tx.MarshalBinary()
		require.NoError(t, err)

		decodedSigned, err := DecodeTransaction(signed)
		require.NoError(t, err)
		requireSameBody(t, body, decodedSigned.Body())
		require.Equal(t, s, decodedSigned.Signature())
	}
}

func TestEncodingDeterministic(t *testing.T) {
	body := txFixtures[2].body(t)
	first, err := body.EncodeUnsigned()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		enc, err := body.Builder().Build()
		require.NoError(t, err)
		got, err := enc.EncodeUnsigned()
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
}

func TestBuilderTrimsReserved(t *testing.T) {
	body, err := fixtureBuilder().Delegated(true).Unused([]byte{1}, nil, []byte{}).Build()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1}}, body.Reserved().Unused)

	enc, err := body.EncodeUnsigned()
	require.NoError(t, err)
	// reserved list: [0x01, 0x01]
	assert.True(t, bytes.HasSuffix(enc, []byte{0xc2, 0x01, 0x01}))

	body, err = fixtureBuilder().Unused(nil, nil).Build()
	require.NoError(t, err)
	enc, err = body.EncodeUnsigned()
	require.NoError(t, err)
	assert.Equal(t, byte(0xc0), enc[len(enc)-1])
}

func TestUnknownFeaturesPreserved(t *testing.T) {
	body, err := fixtureBuilder().Features(0x80000002).Build()
	require.NoError(t, err)
	assert.False(t, body.IsDelegated())

	enc, err := body.EncodeUnsigned()
	require.NoError(t, err)
	decoded, err := DecodeTransaction(enc)
	require.NoError(t, err)
	assert.Equal(t, Features(0x80000002), decoded.Body().Features())
	assert.False(t, decoded.IsDelegated())
}

func TestDynamicFeeEncoding(t *testing.T) {
	body, err := fixtureBuilder().Fee(DynamicFee{
		MaxFeePerGas:         uint256.NewInt(1_000_000_000_000),
		MaxPriorityFeePerGas: uint256.NewInt(1000),
	}).Build()
	require.NoError(t, err)
	require.Equal(t, DynamicFeeTxType, body.Type())
	assert.Zero(t, body.GasPriceCoef())
	assert.Equal(t, uint256.NewInt(1_000_000_000_000), body.MaxFeePerGas())
	assert.Equal(t, uint256.NewInt(1000), body.MaxPriorityFeePerGas())

	enc, err := body.EncodeUnsigned()
	require.NoError(t, err)
	require.Equal(t, byte(0x51), enc[0])

	legacy, err := fixtureBuilder().Build()
	require.NoError(t, err)
	legacyEnc, err := legacy.EncodeUnsigned()
	require.NoError(t, err)
	assert.NotEqual(t, legacyEnc, enc[1:])

	// without its type byte the dynamic list has one field too many for a
	// legacy unsigned body and is read as a legacy signed one
	_, err = DecodeTransaction(enc[1:])
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedTransaction)

	decoded, err := DecodeTransaction(enc)
	require.NoError(t, err)
	requireSameBody(t, body, decoded.Body())

	h1, err := body.SigningHash()
	require.NoError(t, err)
	h2, err := legacy.SigningHash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestDecodeTransactionType(t *testing.T) {
	for _, b := range []byte{0x00, 0x01, 0x02, 0x50, 0x52, 0x7f, 0x80, 0xbf} {
		_, err := DecodeTransaction([]byte{b, 0xc0})
		require.ErrorIs(t, err, ErrUnknownTxType, "type byte %#x", b)
	}
	_, err := DecodeTransaction(nil)
	require.ErrorIs(t, err, ErrMalformedTransaction)
	_, err = DecodeTransaction([]byte{0x51})
	require.ErrorIs(t, err, ErrMalformedTransaction)
}

func TestBuilderErrors(t *testing.T) {
	_, err := fixtureBuilder().MaxFeePerGas(uint256.NewInt(1)).Build()
	require.ErrorIs(t, err, ErrConflictingFeeMode)

	_, err = NewBuilder().Clause(NewClause(nil)).Build()
	require.ErrorIs(t, err, ErrMissingFeeMode)

	_, err = NewBuilder().GasPriceCoef(0).Build()
	require.ErrorIs(t, err, ErrInvalidClauseCount)
	var txErr *TxError
	require.True(t, errors.As(err, &txErr))
	assert.Equal(t, "clauses", txErr.Field)

	// Fee replaces earlier fee setters
	body, err := fixtureBuilder().MaxFeePerGas(uint256.NewInt(1)).Fee(LegacyFee{GasPriceCoef: 7}).Build()
	require.NoError(t, err)
	assert.Equal(t, LegacyTxType, body.Type())
	assert.Equal(t, uint8(7), body.GasPriceCoef())
}

func TestBodyIsolation(t *testing.T) {
	data := []byte{1, 2, 3}
	dep := common.HexToHash("0x01")
	body, err := fixtureBuilder().Clause(NewClause(nil).WithData(data)).DependsOn(&dep).Build()
	require.NoError(t, err)

	data[0] = 9
	dep[31] = 9
	assert.Equal(t, []byte{1, 2, 3}, body.Clauses()[2].Data())
	assert.Equal(t, common.HexToHash("0x01"), *body.DependsOn())

	body.Clauses()[2].Data()[0] = 7
	*body.DependsOn() = common.Hash{}
	assert.Equal(t, []byte{1, 2, 3}, body.Clauses()[2].Data())
	assert.Equal(t, common.HexToHash("0x01"), *body.DependsOn())
}

// mutate re-encodes the undelegated fixture with item i replaced. The
// items are in wire form, so blockRef is stripped first.
func mutate(t *testing.T, i int, v rlp.Value, sig []byte) []byte {
	t.Helper()
	vals := txFixtures[0].body(t).values()
	vals[1] = rlp.NewString([]byte{0xaa, 0xbb, 0xcc, 0xdd})
	if i >= 0 {
		vals[i] = v
	}
	if sig != nil {
		vals = append(vals, rlp.NewString(sig))
	}
	return rlp.Encode(rlp.NewList(vals...))
}

func TestDecodeErrors(t *testing.T) {
	to := hexutil.MustDecode("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	clause := func(to, value []byte) rlp.Value {
		return rlp.NewList(rlp.NewString(to), rlp.NewString(value), rlp.NewString(nil))
	}
	sig := bytes.Repeat([]byte{1}, 65)

	tests := []struct {
		name  string
		input []byte
		field string
		want  error
	}{
		{"chainTag too wide", mutate(t, 0, rlp.NewUint64(0x100), nil), "tx.chainTag", rlp.ErrMalformedInteger},
		{"blockRef leading zero", mutate(t, 1, rlp.NewString([]byte{0, 1}), nil), "tx.blockRef", rlp.ErrMalformedBlob},
		{"blockRef too long", mutate(t, 1, rlp.NewString(make([]byte, 9)), nil), "tx.blockRef", rlp.ErrMalformedBlob},
		{"expiration list", mutate(t, 2, rlp.NewList(), nil), "tx.expiration", rlp.ErrExpectedString},
		{"clauses string", mutate(t, 3, rlp.NewString([]byte{1}), nil), "tx.clauses", rlp.ErrExpectedList},
		{"no clauses", mutate(t, 3, rlp.NewList(), nil), "tx.clauses", ErrInvalidClauseCount},
		{"clause to short", mutate(t, 3, rlp.NewList(clause(to[1:], nil)), nil), "tx.clauses.#0.to", rlp.ErrMalformedBlob},
		{"clause value leading zero", mutate(t, 3, rlp.NewList(clause(to, nil), clause(to, []byte{0, 1})), nil), "tx.clauses.#1.value", rlp.ErrMalformedInteger},
		{"clause value too wide", mutate(t, 3, rlp.NewList(clause(to, bytes.Repeat([]byte{1}, 33))), nil), "tx.clauses.#0.value", rlp.ErrMalformedInteger},
		{"clause fields", mutate(t, 3, rlp.NewList(rlp.NewList(rlp.NewString(to))), nil), "tx.clauses.#0", rlp.ErrFieldCount},
		{"gas leading zero", mutate(t, 5, rlp.NewString([]byte{0, 0x52, 0x08}), nil), "tx.gas", rlp.ErrMalformedInteger},
		{"dependsOn short", mutate(t, 6, rlp.NewString(make([]byte, 31)), nil), "tx.dependsOn", rlp.ErrMalformedBlob},
		{"nonce too wide", mutate(t, 7, rlp.NewString(bytes.Repeat([]byte{1}, 9)), nil), "tx.nonce", rlp.ErrMalformedInteger},
		{"reserved untrimmed", mutate(t, 8, rlp.NewList(rlp.NewUint64(1), rlp.NewString(nil)), nil), "tx.reserved", ErrUntrimmedReserved},
		{"reserved only empty", mutate(t, 8, rlp.NewList(rlp.NewString(nil)), nil), "tx.reserved", ErrUntrimmedReserved},
		{"features too wide", mutate(t, 8, rlp.NewList(rlp.NewUint64(1<<32)), nil), "tx.reserved.#0", rlp.ErrMalformedInteger},
		{"features leading zero", mutate(t, 8, rlp.NewList(rlp.NewString([]byte{0, 1})), nil), "tx.reserved.#0", rlp.ErrMalformedInteger},
		{"reserved entry list", mutate(t, 8, rlp.NewList(rlp.NewUint64(1), rlp.NewList()), nil), "tx.reserved.#1", rlp.ErrExpectedString},
		{"empty input", nil, "tx", rlp.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTransaction(tt.input)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, ErrMalformedTransaction)
			var txErr *TxError
			require.True(t, errors.As(err, &txErr))
			assert.Equal(t, "decode", txErr.Op)
			assert.Equal(t, tt.field, txErr.Field)
		})
	}

	t.Run("field count", func(t *testing.T) {
		vals := txFixtures[0].body(t).values()
		_, err := DecodeTransaction(rlp.Encode(rlp.NewList(vals[:8]...)))
		require.ErrorIs(t, err, rlp.ErrFieldCount)
		_, err = DecodeTransaction(rlp.Encode(rlp.NewList(append(vals, rlp.NewString(sig), rlp.NewString(nil))...)))
		require.ErrorIs(t, err, rlp.ErrFieldCount)
	})
	t.Run("not a list", func(t *testing.T) {
		_, err := DecodeTransaction([]byte{0x80})
		require.ErrorIs(t, err, ErrUnknownTxType)
		_, err = DecodeTransaction([]byte{0x51, 0x80})
		require.ErrorIs(t, err, rlp.ErrExpectedList)
	})
	t.Run("trailing bytes", func(t *testing.T) {
		enc := append(mutate(t, -1, rlp.Value{}, nil), 0x00)
		_, err := DecodeTransaction(enc)
		require.ErrorIs(t, err, rlp.ErrTrailingData)
	})
	t.Run("non canonical prefix", func(t *testing.T) {
		// chainTag 0x01 written as a one byte string
		enc := hexutil.MustDecode(txFixtures[0].encodedUnsigned)
		enc = append([]byte{0xf8, enc[1] + 1, 0x81}, enc[2:]...)
		_, err := DecodeTransaction(enc)
		require.ErrorIs(t, err, rlp.ErrNonCanonical)
	})
	t.Run("signature length", func(t *testing.T) {
		for _, n := range []int{0, 1, 64, 66, 129, 131} {
			_, err := DecodeTransaction(mutate(t, -1, rlp.Value{}, make([]byte, n)))
			require.ErrorIs(t, err, ErrInvalidSignatureLength, "length %d", n)
		}
	})
	t.Run("double signature without delegation", func(t *testing.T) {
		_, err := DecodeTransaction(mutate(t, -1, rlp.Value{}, bytes.Repeat(sig, 2)))
		require.ErrorIs(t, err, ErrDelegationNotEnabled)
	})
}
