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

	"github.com/urfave/cli/v2"

	"github.com/vechain/thortx/params"
	"github.com/vechain/thortx/params/networkname"
	"github.com/vechain/thortx/turbo/logging"
)

var (
	NetworkFlag = cli.StringFlag{
		Name:  "network",
		Usage: fmt.Sprintf("Built-in network the transactions belong to, one of %v", networkname.All),
		Value: networkname.MainChainName,
	}
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Network config file (.yaml or .toml), overrides --network",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = params.ClientName
	app.Usage = "Encode, decode, sign and inspect VeChainThor transactions"
	app.Version = params.VersionWithCommit(params.GitCommit)
	app.UsageText = app.Name + ` [command] [flags]`
	app.Commands = []*cli.Command{
		&encodeCommand,
		&decodeCommand,
		&signCommand,
		&hashCommand,
		&addressCommand,
	}
	app.Flags = append([]cli.Flag{
		&NetworkFlag,
		&ConfigFlag,
	}, logging.Flags...)
	app.Before = func(ctx *cli.Context) error {
		logging.SetupLoggerCtx(app.Name, ctx)
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
