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

package chain

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/vechain/thortx/execution/types"
	"github.com/vechain/thortx/params/networkname"
)

// DefaultMaxTxSize bounds the encoded size of a transaction when a config
// does not set one.
const DefaultMaxTxSize = 64 * datasize.KB

var ErrUnknownConfigFormat = errors.New("unknown config file format")

// Config is what the codec needs to know about a network.
type Config struct {
	Name                string            `yaml:"name" toml:"name"`
	ChainTag            byte              `yaml:"chainTag" toml:"chainTag"`
	DynamicFeeActivated bool              `yaml:"dynamicFeeActivated" toml:"dynamicFeeActivated"`
	MaxTxSize           datasize.ByteSize `yaml:"maxTxSize" toml:"maxTxSize"`
}

func (c *Config) String() string {
	return fmt.Sprintf("{Name: %s, ChainTag: %#x, DynamicFee: %v, MaxTxSize: %s}",
		c.Name, c.ChainTag, c.DynamicFeeActivated, c.MaxTxSize.HumanReadable())
}

//go:embed chainspecs
var chainspecs embed.FS

func readChainSpec(filename string) *Config {
	cfg, err := LoadConfigFs(afero.FromIOFS{FS: chainspecs}, filename)
	if err != nil {
		panic(fmt.Sprintf("Could not parse chainspec for %s: %v", filename, err))
	}
	return cfg
}

var (
	// MainConfig is the VeChainThor main network.
	MainConfig = readChainSpec("chainspecs/main.yaml")

	// TestConfig is the public test network.
	TestConfig = readChainSpec("chainspecs/test.yaml")

	// SoloConfig is a local single node network.
	SoloConfig = readChainSpec("chainspecs/solo.yaml")
)

// ConfigByName returns a copy of a built-in config, or nil.
func ConfigByName(name string) *Config {
	var cfg *Config
	switch name {
	case networkname.MainChainName:
		cfg = MainConfig
	case networkname.TestChainName:
		cfg = TestConfig
	case networkname.SoloChainName:
		cfg = SoloConfig
	default:
		return nil
	}
	cpy := *cfg
	return &cpy
}

func (c *Config) withDefaults() *Config {
	if c.MaxTxSize == 0 {
		c.MaxTxSize = DefaultMaxTxSize
	}
	return c
}

// LoadConfig reads a network config from a .yaml, .yml or .toml file.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigFs(afero.NewOsFs(), path)
}

func LoadConfigFs(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("parse %s: network name missing", path)
	}
	cfg.withDefaults()
	if !slices.Contains(networkname.All, cfg.Name) {
		log.Warn("Unknown network name in config", "name", cfg.Name, "path", path)
	}
	log.Debug("Loaded network config", "path", path, "config", cfg)
	return cfg, nil
}

// CheckTransaction rejects transactions that cannot be sent to this network.
func (c *Config) CheckTransaction(tx *types.Transaction) error {
	body := tx.Body()
	if body.ChainTag() != c.ChainTag {
		return fmt.Errorf("%w: got %#x, want %#x", types.ErrChainTagMismatch, body.ChainTag(), c.ChainTag)
	}
	if body.Type() == types.DynamicFeeTxType && !c.DynamicFeeActivated {
		return fmt.Errorf("%w on %s", types.ErrDynamicFeeNotActivated, c.Name)
	}
	size, err := tx.Size()
	if err != nil {
		return err
	}
	if maxSize := c.MaxTxSize.Bytes(); uint64(size) > maxSize {
		return fmt.Errorf("%w: %d bytes, max %d", types.ErrTxTooLarge, size, maxSize)
	}
	return nil
}
