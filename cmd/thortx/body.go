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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/common/hexutil"
	"github.com/vechain/thortx/execution/chain"
	"github.com/vechain/thortx/execution/types"
)

type clauseFile struct {
	To    string `yaml:"to" toml:"to"`
	Value string `yaml:"value" toml:"value"`
	Data  string `yaml:"data" toml:"data"`
}

// bodyFile is the human editable form of a transaction body. Amounts are
// decimal or 0x-prefixed hex strings.
type bodyFile struct {
	ChainTag             *uint8       `yaml:"chainTag" toml:"chainTag"`
	BlockRef             string       `yaml:"blockRef" toml:"blockRef"`
	Expiration           uint32       `yaml:"expiration" toml:"expiration"`
	Clauses              []clauseFile `yaml:"clauses" toml:"clauses"`
	GasPriceCoef         *uint8       `yaml:"gasPriceCoef" toml:"gasPriceCoef"`
	MaxFeePerGas         string       `yaml:"maxFeePerGas" toml:"maxFeePerGas"`
	MaxPriorityFeePerGas string       `yaml:"maxPriorityFeePerGas" toml:"maxPriorityFeePerGas"`
	Gas                  uint64       `yaml:"gas" toml:"gas"`
	DependsOn            string       `yaml:"dependsOn" toml:"dependsOn"`
	Nonce                uint64       `yaml:"nonce" toml:"nonce"`
	Delegated            bool         `yaml:"delegated" toml:"delegated"`
}

func readBodyFile(path string) (*bodyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bf := &bodyFile{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, bf)
	case ".toml":
		err = toml.Unmarshal(data, bf)
	default:
		return nil, fmt.Errorf("%w: %q", chain.ErrUnknownConfigFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return bf, nil
}

// build turns the file into a body. A missing chain tag is taken from cfg.
func (bf *bodyFile) build(cfg *chain.Config) (*types.Body, error) {
	bld := types.NewBuilder().
		Expiration(bf.Expiration).
		Gas(bf.Gas).
		Nonce(bf.Nonce).
		Delegated(bf.Delegated)

	if bf.ChainTag != nil {
		bld.ChainTag(*bf.ChainTag)
	} else {
		bld.ChainTag(cfg.ChainTag)
	}
	if bf.BlockRef != "" {
		ref, err := hexutil.Decode(bf.BlockRef)
		if err != nil || len(ref) > common.BlockRefLength {
			return nil, fmt.Errorf("blockRef: invalid value %q", bf.BlockRef)
		}
		bld.BlockRef(common.BytesToBlockRef(ref))
	}
	if bf.DependsOn != "" {
		dep, err := hexutil.Decode(bf.DependsOn)
		if err != nil || len(dep) != common.HashLength {
			return nil, fmt.Errorf("dependsOn: invalid value %q", bf.DependsOn)
		}
		h := common.BytesToHash(dep)
		bld.DependsOn(&h)
	}
	for i, c := range bf.Clauses {
		clause, err := c.clause()
		if err != nil {
			return nil, fmt.Errorf("clauses[%d]: %w", i, err)
		}
		bld.Clause(clause)
	}
	if bf.GasPriceCoef != nil {
		bld.GasPriceCoef(*bf.GasPriceCoef)
	}
	for _, fee := range []struct {
		name, value string
		set         func(*uint256.Int) *types.Builder
	}{
		{"maxFeePerGas", bf.MaxFeePerGas, bld.MaxFeePerGas},
		{"maxPriorityFeePerGas", bf.MaxPriorityFeePerGas, bld.MaxPriorityFeePerGas},
	} {
		if fee.value == "" {
			continue
		}
		v, err := hexutil.DecodeUint256(fee.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fee.name, err)
		}
		fee.set(v)
	}
	return bld.Build()
}

func (c clauseFile) clause() (*types.Clause, error) {
	var to *common.Address
	if c.To != "" {
		addr, err := common.ParseAddress(c.To)
		if err != nil {
			return nil, err
		}
		to = &addr
	}
	value := new(uint256.Int)
	if c.Value != "" {
		v, err := hexutil.DecodeUint256(c.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		value = v
	}
	data, err := hexutil.Decode(c.Data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return types.NewClause(to).WithValue(value).WithData(data), nil
}
