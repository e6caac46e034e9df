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
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"

	"github.com/vechain/thortx/common"
	"github.com/vechain/thortx/common/hexutil"
	"github.com/vechain/thortx/crypto"
	"github.com/vechain/thortx/execution/chain"
	"github.com/vechain/thortx/execution/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	BodyFlag = cli.StringFlag{
		Name:     "body",
		Usage:    "Transaction body file (.yaml or .toml)",
		Required: true,
	}
	SignedByFlag = cli.StringFlag{
		Name:  "signed-by",
		Usage: "Hex private key of the origin; the encoding is unsigned without it",
	}
	KeyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "Hex private key",
	}
	GasPayerKeyFlag = cli.StringFlag{
		Name:  "gas-payer-key",
		Usage: "Hex private key of the gas payer of a delegated transaction",
	}
	PubkeyFlag = cli.StringFlag{
		Name:  "pubkey",
		Usage: "Hex public key, compressed or uncompressed",
	}
	OriginFlag = cli.StringFlag{
		Name:  "origin",
		Usage: "Origin address; prints the hash the gas payer signs",
	}
)

var encodeCommand = cli.Command{
	Action:    encode,
	Name:      "encode",
	Usage:     "Build a transaction from a body file and print its encoding",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&BodyFlag,
		&SignedByFlag,
		&GasPayerKeyFlag,
	},
}

var decodeCommand = cli.Command{
	Action:    decode,
	Name:      "decode",
	Usage:     "Print the JSON view of encoded transactions",
	ArgsUsage: "<0x encoded transaction>...",
	Flags: []cli.Flag{
		&TableFlag,
	},
}

var signCommand = cli.Command{
	Action:    sign,
	Name:      "sign",
	Usage:     "Sign an unsigned encoding and print the signed encoding and id",
	ArgsUsage: "<0x unsigned transaction>",
	Flags: []cli.Flag{
		&KeyFlag,
		&GasPayerKeyFlag,
	},
}

var hashCommand = cli.Command{
	Action:    hash,
	Name:      "hash",
	Usage:     "Print the signing hash of a transaction",
	ArgsUsage: "<0x encoded transaction>",
	Flags: []cli.Flag{
		&OriginFlag,
	},
}

var addressCommand = cli.Command{
	Action: address,
	Name:   "address",
	Usage:  "Print the checksum address of a key",
	Flags: []cli.Flag{
		&KeyFlag,
		&PubkeyFlag,
	},
}

func networkConfig(ctx *cli.Context) (*chain.Config, error) {
	if path := ctx.String(ConfigFlag.Name); path != "" {
		return chain.LoadConfig(path)
	}
	name := ctx.String(NetworkFlag.Name)
	cfg := chain.ConfigByName(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown network %q", name)
	}
	return cfg, nil
}

func txArg(ctx *cli.Context) (*types.Transaction, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected one encoded transaction, got %d arguments", ctx.NArg())
	}
	raw, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return nil, err
	}
	return types.DecodeTransaction(raw)
}

func keyFlag(ctx *cli.Context, flag *cli.StringFlag) ([]byte, error) {
	key, err := crypto.HexToPrivateKey(ctx.String(flag.Name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag.Name, err)
	}
	return key, nil
}

// signBody signs with the origin key and, for delegated bodies, the gas payer
// key when given. Without it a delegated body gets the origin half only.
func signBody(ctx *cli.Context, body *types.Body, originFlag *cli.StringFlag) (*types.Transaction, error) {
	originKey, err := keyFlag(ctx, originFlag)
	if err != nil {
		return nil, err
	}
	if !body.IsDelegated() {
		if ctx.IsSet(GasPayerKeyFlag.Name) {
			return nil, fmt.Errorf("--%s: %w", GasPayerKeyFlag.Name, types.ErrDelegationNotEnabled)
		}
		return body.Sign(originKey)
	}
	if !ctx.IsSet(GasPayerKeyFlag.Name) {
		sig, err := body.SignAsOrigin(originKey)
		if err != nil {
			return nil, err
		}
		log.Warn("Delegated transaction signed by origin only, gas payer signature missing")
		return body.WithSignature(sig)
	}
	payerKey, err := keyFlag(ctx, &GasPayerKeyFlag)
	if err != nil {
		return nil, err
	}
	return body.SignWithGasPayer(originKey, payerKey)
}

func printTx(ctx *cli.Context, tx *types.Transaction) error {
	enc, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, hexutil.Encode(enc))
	return err
}

func encode(ctx *cli.Context) error {
	cfg, err := networkConfig(ctx)
	if err != nil {
		return err
	}
	bf, err := readBodyFile(ctx.String(BodyFlag.Name))
	if err != nil {
		return err
	}
	body, err := bf.build(cfg)
	if err != nil {
		return err
	}
	tx := types.NewTransaction(body)
	if ctx.IsSet(SignedByFlag.Name) {
		if tx, err = signBody(ctx, body, &SignedByFlag); err != nil {
			return err
		}
	}
	if err := cfg.CheckTransaction(tx); err != nil {
		return err
	}
	log.Debug("Encoded transaction", "network", cfg.Name, "type", body.Type(), "clauses", len(body.Clauses()), "signed", tx.IsSigned())
	return printTx(ctx, tx)
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("expected at least one encoded transaction")
	}
	raws := make([][]byte, ctx.NArg())
	for i, arg := range ctx.Args().Slice() {
		raw, err := hexutil.Decode(arg)
		if err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		raws[i] = raw
	}
	cache, err := types.NewSenderCache(len(raws))
	if err != nil {
		return err
	}
	txs, err := types.DecodeTransactions(ctx.Context, raws, cache)
	if err != nil {
		return err
	}
	cfg, err := networkConfig(ctx)
	if err != nil {
		return err
	}
	for i, tx := range txs {
		if err := cfg.CheckTransaction(tx); err != nil {
			log.Warn("Transaction not valid for network", "index", i, "network", cfg.Name, "err", err)
		}
		if ctx.Bool(TableFlag.Name) {
			if err := renderTxTable(ctx.App.Writer, tx, cache); err != nil {
				return err
			}
			continue
		}
		out, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(ctx.App.Writer, string(out)); err != nil {
			return err
		}
	}
	return nil
}

func sign(ctx *cli.Context) error {
	tx, err := txArg(ctx)
	if err != nil {
		return err
	}
	if tx.Signature() != nil {
		log.Info("Replacing existing signature")
	}
	signed, err := signBody(ctx, tx.Body(), &KeyFlag)
	if err != nil {
		return err
	}
	if err := printTx(ctx, signed); err != nil {
		return err
	}
	id, err := signed.ID()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, id.Hex())
	return err
}

func hash(ctx *cli.Context) error {
	tx, err := txArg(ctx)
	if err != nil {
		return err
	}
	var h common.Hash
	if ctx.IsSet(OriginFlag.Name) {
		origin, perr := common.ParseAddress(ctx.String(OriginFlag.Name))
		if perr != nil {
			return perr
		}
		h, err = tx.Body().GasPayerSigningHash(origin)
	} else {
		h, err = tx.Body().SigningHash()
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, h.Hex())
	return err
}

func address(ctx *cli.Context) error {
	var (
		addr common.Address
		err  error
	)
	switch {
	case ctx.IsSet(KeyFlag.Name) && ctx.IsSet(PubkeyFlag.Name):
		return errors.New("--key and --pubkey are mutually exclusive")
	case ctx.IsSet(KeyFlag.Name):
		key, kerr := keyFlag(ctx, &KeyFlag)
		if kerr != nil {
			return kerr
		}
		addr, err = crypto.AddressFromPrivateKey(key)
	case ctx.IsSet(PubkeyFlag.Name):
		pub, derr := hexutil.Decode(ctx.String(PubkeyFlag.Name))
		if derr != nil {
			return derr
		}
		addr, err = crypto.AddressFromPublicKey(pub)
	default:
		return errors.New("one of --key or --pubkey is required")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(ctx.App.Writer, addr.Hex())
	return err
}
