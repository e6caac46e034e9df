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
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/vechain/thortx/common/hexutil"
	"github.com/vechain/thortx/execution/types"
)

var TableFlag = cli.BoolFlag{
	Name:  "table",
	Usage: "Print a table instead of JSON",
}

// renderTxTable writes the fields of tx, then its clauses, as two tables.
// Senders are recovered through cache.
func renderTxTable(w io.Writer, tx *types.Transaction, cache *types.SenderCache) error {
	body := tx.Body()

	fields := table.NewWriter()
	fields.SetOutputMirror(w)
	fields.SetStyle(table.StyleLight)
	fields.AppendHeader(table.Row{"Field", "Value"})
	fields.AppendRow(table.Row{"type", body.Type()})
	fields.AppendRow(table.Row{"chainTag", fmt.Sprintf("%#x", body.ChainTag())})
	fields.AppendRow(table.Row{"blockRef", fmt.Sprintf("%s (#%d)", body.BlockRef().Hex(), body.BlockRef().Number())})
	fields.AppendRow(table.Row{"expiration", body.Expiration()})
	fields.AppendRow(table.Row{"gas", body.Gas()})
	switch fee := body.Fee().(type) {
	case types.LegacyFee:
		fields.AppendRow(table.Row{"gasPriceCoef", fee.GasPriceCoef})
	case types.DynamicFee:
		fields.AppendRow(table.Row{"maxPriorityFeePerGas", body.MaxPriorityFeePerGas().Dec()})
		fields.AppendRow(table.Row{"maxFeePerGas", body.MaxFeePerGas().Dec()})
	}
	dependsOn := "-"
	if d := body.DependsOn(); d != nil {
		dependsOn = d.Hex()
	}
	fields.AppendRow(table.Row{"dependsOn", dependsOn})
	fields.AppendRow(table.Row{"nonce", strconv.FormatUint(body.Nonce(), 10)})
	fields.AppendRow(table.Row{"delegated", body.IsDelegated()})
	if tx.IsSigned() {
		fields.AppendSeparator()
		id, err := tx.ID()
		if err != nil {
			return err
		}
		origin, err := cache.Origin(tx)
		if err != nil {
			return err
		}
		fields.AppendRow(table.Row{"id", id.Hex()})
		fields.AppendRow(table.Row{"origin", origin.Hex()})
		if body.IsDelegated() {
			payer, err := cache.GasPayer(tx)
			if err != nil {
				return err
			}
			fields.AppendRow(table.Row{"gasPayer", payer.Hex()})
		}
	}
	fields.Render()

	clauses := table.NewWriter()
	clauses.SetOutputMirror(w)
	clauses.SetStyle(table.StyleLight)
	clauses.AppendHeader(table.Row{"#", "To", "Value", "Data"})
	for i, c := range body.Clauses() {
		to := "(create)"
		if c.To() != nil {
			to = c.To().Hex()
		}
		clauses.AppendRow(table.Row{i, to, c.Value().Dec(), hexutil.Encode(c.Data())})
	}
	clauses.Render()
	return nil
}
