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
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/holiman/uint256"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/execution/types"
)

func TestBuiltinConfigs(t *testing.T) {
	tests := []struct {
		name     string
		chainTag byte
	}{
		{"main", 0x4a},
		{"test", 0x27},
		{"solo", 0xf6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ConfigByName(tt.name)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.name, cfg.Name)
			assert.Equal(t, tt.chainTag, cfg.ChainTag)
			assert.Equal(t, DefaultMaxTxSize, cfg.MaxTxSize)
			assert.True(t, cfg.DynamicFeeActivated)
		})
	}
	assert.Nil(t, ConfigByName("ropsten"))

	// callers get a copy
	ConfigByName("main").ChainTag = 0
	assert.Equal(t, byte(0x4a), MainConfig.ChainTag)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		file    string
		content string
		want    Config
	}{
		{
			file:    "net.yaml",
			content: "name: custom\nchainTag: 0x10\nmaxTxSize: 1MB\n",
			want:    Config{Name: "custom", ChainTag: 0x10, MaxTxSize: datasize.MB},
		},
		{
			file:    "net.yml",
			content: "name: solo\nchainTag: 246\ndynamicFeeActivated: true\n",
			want:    Config{Name: "solo", ChainTag: 0xf6, DynamicFeeActivated: true, MaxTxSize: DefaultMaxTxSize},
		},
		{
			file:    "net.toml",
			content: "name = \"test\"\nchainTag = 0x27\ndynamicFeeActivated = false\nmaxTxSize = \"32KB\"\n",
			want:    Config{Name: "test", ChainTag: 0x27, MaxTxSize: 32 * datasize.KB},
		},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestLoadConfigFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/thortx/net.yaml", []byte("name: main\nchainTag: 0x4a\n"), 0o600))

	cfg, err := LoadConfigFs(fs, "/etc/thortx/net.yaml")
	require.NoError(t, err)
	assert.Equal(t, MainConfig.ChainTag, cfg.ChainTag)

	_, err = LoadConfigFs(fs, "/etc/thortx/other.yaml")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "net.json", "{}"))
	require.ErrorIs(t, err, ErrUnknownConfigFormat)

	_, err = LoadConfig(writeFile(t, "net.yaml", "chainTag: 1\n"))
	require.ErrorContains(t, err, "network name missing")

	_, err = LoadConfig(writeFile(t, "net.toml", "name = \n"))
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func buildTx(t *testing.T, chainTag byte, dynamic bool, dataLen int) *types.Transaction {
	t.Helper()
	to := common.HexToAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	bld := types.NewBuilder().
		ChainTag(chainTag).
		Clause(types.NewClause(&to).WithValue(uint256.NewInt(10000)).WithData(make([]byte, dataLen))).
		Gas(21000)
	if dynamic {
		bld.MaxFeePerGas(uint256.NewInt(10)).MaxPriorityFeePerGas(uint256.NewInt(1))
	} else {
		bld.GasPriceCoef(0)
	}
	body, err := bld.Build()
	require.NoError(t, err)
	return types.NewTransaction(body)
}

func TestCheckTransaction(t *testing.T) {
	legacyOnly := &Config{Name: "custom", ChainTag: 0x4a, MaxTxSize: datasize.KB}

	require.NoError(t, MainConfig.CheckTransaction(buildTx(t, 0x4a, false, 0)))
	require.NoError(t, MainConfig.CheckTransaction(buildTx(t, 0x4a, true, 0)))
	require.NoError(t, legacyOnly.CheckTransaction(buildTx(t, 0x4a, false, 0)))

	err := TestConfig.CheckTransaction(buildTx(t, 0x4a, false, 0))
	require.ErrorIs(t, err, types.ErrChainTagMismatch)

	err = legacyOnly.CheckTransaction(buildTx(t, 0x4a, true, 0))
	require.ErrorIs(t, err, types.ErrDynamicFeeNotActivated)

	err = legacyOnly.CheckTransaction(buildTx(t, 0x4a, false, 1024))
	require.ErrorIs(t, err, types.ErrTxTooLarge)
	require.NoError(t, MainConfig.CheckTransaction(buildTx(t, 0x4a, false, 1024)))
}
