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

// Clause is one (to, value, data) instruction of a transaction. A nil To
// creates a contract. Clauses are immutable; the With* methods return copies.
type Clause struct {
	to    *common.Address
	value uint256.Int
	data  []byte
}

func NewClause(to *common.Address) *Clause {
	c := &Clause{}
	if to != nil {
		cpy := *to
		c.to = &cpy
	}
	return c
}

func (c *Clause) copy() *Clause {
	cpy := *c
	cpy.data = common.CopyBytes(c.data)
	return &cpy
}

func (c *Clause) WithValue(value *uint256.Int) *Clause {
	cpy := c.copy()
	if value == nil {
		cpy.value.Clear()
	} else {
		cpy.value.Set(value)
	}
	return cpy
}

func (c *Clause) WithData(data []byte) *Clause {
	cpy := c.copy()
	cpy.data = common.CopyBytes(data)
	return cpy
}

func (c *Clause) To() *common.Address {
	if c.to == nil {
		return nil
	}
	cpy := *c.to
	return &cpy
}

func (c *Clause) Value() *uint256.Int { return new(uint256.Int).Set(&c.value) }
func (c *Clause) Data() []byte        { return common.CopyBytes(c.data) }

// IsCreation reports whether the clause deploys a contract.
func (c *Clause) IsCreation() bool { return c.to == nil }
