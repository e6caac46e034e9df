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

package common

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/vechain/thortx/common/hexutil"
)

// Lengths of hashes, addresses and block references in bytes.
const (
	HashLength     = 32
	AddressLength  = 20
	BlockRefLength = 8
)

var ErrInvalidAddress = errors.New("invalid address")

/////////// Hash

// Hash is a 32 byte digest: signing hashes, transaction ids, dependsOn references.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash sets byte representation of s to hash.
func HexToHash(s string) Hash { return BytesToHash(FromHex(s)) }

func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

func (h Hash) Bytes() []byte { return h[:] }
func (h Hash) Hex() string   { return hexutil.Encode(h[:]) }
func (h Hash) String() string {
	return h.Hex()
}

func (h Hash) IsZero() bool { return h == Hash{} }

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash) UnmarshalText(input []byte) error {
	b, err := hexutil.Decode(string(input))
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if len(b) != HashLength {
		return fmt.Errorf("hash: wrong length %d, want %d", len(b), HashLength)
	}
	copy(h[:], b)
	return nil
}

/////////// BlockRef

// BlockRef references a recent block: the first 4 bytes are the block number.
type BlockRef [BlockRefLength]byte

// NewBlockRef creates a reference to the given block number.
func NewBlockRef(blockNum uint32) BlockRef {
	var br BlockRef
	binary.BigEndian.PutUint32(br[:], blockNum)
	return br
}

// BlockRefFromID takes the first 8 bytes of a block id.
func BlockRefFromID(id Hash) BlockRef {
	var br BlockRef
	copy(br[:], id[:BlockRefLength])
	return br
}

func BytesToBlockRef(b []byte) BlockRef {
	var br BlockRef
	if len(b) > BlockRefLength {
		b = b[len(b)-BlockRefLength:]
	}
	copy(br[BlockRefLength-len(b):], b)
	return br
}

func (br BlockRef) Number() uint32 { return binary.BigEndian.Uint32(br[:]) }
func (br BlockRef) Hex() string    { return hexutil.Encode(br[:]) }
func (br BlockRef) String() string { return br.Hex() }

func (br BlockRef) MarshalText() ([]byte, error) {
	return []byte(br.Hex()), nil
}

func (br *BlockRef) UnmarshalText(input []byte) error {
	b, err := hexutil.Decode(string(input))
	if err != nil {
		return fmt.Errorf("blockRef: %w", err)
	}
	if len(b) != BlockRefLength {
		return fmt.Errorf("blockRef: wrong length %d, want %d", len(b), BlockRefLength)
	}
	copy(br[:], b)
	return nil
}

/////////// Address

// Address is the 20 byte identity of an account.
type Address [AddressLength]byte

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress returns Address with byte values of s. Invalid input is silently truncated;
// use ParseAddress when the input is untrusted.
func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

// IsAddress verifies whether s has the shape of an address: 0x followed by 40 hex
// digits, in any case. The checksum is not verified.
func IsAddress(s string) bool {
	if !hexutil.Has0xPrefix(s) {
		return false
	}
	s = s[2:]
	return len(s) == 2*AddressLength && isHex(s)
}

// ParseAddress parses a 0x-prefixed address string of either case.
func ParseAddress(s string) (Address, error) {
	if !IsAddress(s) {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	var a Address
	if _, err := hex.Decode(a[:], []byte(s[2:])); err != nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return a, nil
}

// ParseChecksumAddress parses s and additionally requires it to carry a valid checksum.
func ParseChecksumAddress(s string) (Address, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return Address{}, err
	}
	if a.Hex() != s {
		return Address{}, fmt.Errorf("%w: checksum mismatch %q", ErrInvalidAddress, s)
	}
	return a, nil
}

func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) Bytes() []byte { return a[:] }

// Hex returns the checksummed hex string representation of a.
func (a Address) Hex() string {
	return string(a.checksumHex())
}

func (a Address) String() string {
	return a.Hex()
}

func (a Address) IsZero() bool { return a == Address{} }

// checksumHex applies mixed-case checksum casing: a hex digit is upper-cased when the
// matching nibble of keccak256(lowercase hex) is >= 8.
func (a *Address) checksumHex() []byte {
	var buf [AddressLength*2 + 2]byte
	copy(buf[:2], "0x")
	hex.Encode(buf[2:], a[:])

	h := NewHasher()
	defer ReturnHasherToPool(h)
	h.Sha.Write(buf[2:])
	var sum Hash
	h.Sha.Read(sum[:])

	for i := 2; i < len(buf); i++ {
		hashByte := sum[(i-2)/2]
		if i%2 == 0 {
			hashByte = hashByte >> 4
		} else {
			hashByte &= 0xf
		}
		if buf[i] > '9' && hashByte > 7 {
			buf[i] -= 32
		}
	}
	return buf[:]
}

// ToChecksum re-renders an address string of any case with checksum casing.
func ToChecksum(s string) (string, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return a.Hex(), nil
}

func (a Address) MarshalText() ([]byte, error) {
	return a.checksumHex(), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	parsed, err := ParseAddress(string(input))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// FromHex returns the bytes represented by the hexadecimal string s.
// s may be prefixed with "0x"; an odd length is left padded.
func FromHex(s string) []byte {
	s = hexutil.Strip0x(s)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	h, _ := hex.DecodeString(s)
	return h
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
