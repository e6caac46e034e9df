package rlp

import (
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeHex(in string) []byte {
	payload, err := hex.DecodeString(in)
	if err != nil {
		panic(err)
	}
	return payload
}

var parseUintTests = []struct {
	payload   []byte
	maxLen    int
	expectRes uint64
	expectErr error
}{
	{payload: decodeHex("820400"), maxLen: 8, expectRes: 1024},
	{payload: decodeHex("07"), maxLen: 8, expectRes: 7},
	{payload: decodeHex("80"), maxLen: 8, expectRes: 0},
	{payload: decodeHex("8180"), maxLen: 8, expectRes: 128},
	{payload: decodeHex("88ffffffffffffffff"), maxLen: 8, expectRes: 0xffffffffffffffff},
	{payload: decodeHex("00"), maxLen: 8, expectErr: ErrMalformedInteger},
	{payload: decodeHex("820004"), maxLen: 8, expectErr: ErrMalformedInteger},
	{payload: decodeHex("89010000000000000000"), maxLen: 8, expectErr: ErrMalformedInteger},
	{payload: decodeHex("8107"), maxLen: 8, expectErr: ErrNonCanonical},
	{payload: decodeHex("c0"), maxLen: 8, expectErr: ErrExpectedString},
	{payload: decodeHex("8204"), maxLen: 8, expectErr: ErrUnexpectedEOF},
	{payload: decodeHex(""), maxLen: 8, expectErr: ErrUnexpectedEOF},
	{payload: decodeHex("84ffffffff"), maxLen: 4, expectRes: 0xffffffff},
	{payload: decodeHex("850100000000"), maxLen: 4, expectErr: ErrMalformedInteger},
}

func TestPrimitives(t *testing.T) {
	for i, tt := range parseUintTests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			assert := assert.New(t)
			f := Field{Name: "n", Kind: KindNumeric, Size: tt.maxLen}
			v, err := f.Decode(tt.payload)
			if err == nil {
				var res uint64
				res, err = v.AsUint64()
				if tt.expectErr == nil {
					assert.Equal(tt.expectRes, res)
				}
			}
			if tt.expectErr != nil {
				assert.ErrorIs(err, tt.expectErr)
				return
			}
			assert.NoError(err)
		})
	}
}

var prefixTests = []struct {
	payload   string
	dataPos   int
	dataLen   int
	isList    bool
	expectErr error
}{
	{payload: "7f", dataPos: 0, dataLen: 1},
	{payload: "83646f67", dataPos: 1, dataLen: 3},
	{payload: "c0", dataPos: 1, dataLen: 0, isList: true},
	{payload: "c88363617483646f67", dataPos: 1, dataLen: 8, isList: true},
	{payload: "b838" + strings.Repeat("aa", 56), dataPos: 2, dataLen: 56},
	{payload: "f838" + strings.Repeat("80", 56), dataPos: 2, dataLen: 56, isList: true},
	// single byte below 0x80 must not be wrapped
	{payload: "8100", expectErr: ErrNonCanonical},
	{payload: "817f", expectErr: ErrNonCanonical},
	// long form used for a short payload
	{payload: "b80100", expectErr: ErrNonCanonical},
	{payload: "b837" + strings.Repeat("aa", 55), expectErr: ErrNonCanonical},
	{payload: "f80180", expectErr: ErrNonCanonical},
	// length of length with a leading zero
	{payload: "b90038" + strings.Repeat("aa", 56), expectErr: ErrNonCanonical},
	{payload: "f90038" + strings.Repeat("80", 56), expectErr: ErrNonCanonical},
	// truncated
	{payload: "83646f", expectErr: ErrUnexpectedEOF},
	{payload: "c883636174", expectErr: ErrUnexpectedEOF},
	{payload: "b9", expectErr: ErrUnexpectedEOF},
	{payload: "bf7fffffffffffffff", expectErr: ErrUnexpectedEOF},
	{payload: "81", expectErr: ErrUnexpectedEOF},
}

func TestPrefix(t *testing.T) {
	for i, tt := range prefixTests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			dataPos, dataLen, isList, err := Prefix(decodeHex(tt.payload), 0)
			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dataPos, dataPos)
			assert.Equal(t, tt.dataLen, dataLen)
			assert.Equal(t, tt.isList, isList)
		})
	}
}

func TestStringAndList(t *testing.T) {
	_, _, err := List(decodeHex("83646f67"), 0)
	require.ErrorIs(t, err, ErrExpectedList)
	_, _, err = String(decodeHex("c0"), 0)
	require.ErrorIs(t, err, ErrExpectedString)

	// the second element of [cat, dog]
	payload := decodeHex("c88363617483646f67")
	pos, l, err := String(payload, 5)
	require.NoError(t, err)
	assert.Equal(t, "dog", string(payload[pos:pos+l]))
}
