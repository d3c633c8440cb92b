// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// daogov is the command line operator for the stake-weighted treasury governor.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the governance database",
	}
	dbEngineFlag = &cli.StringFlag{
		Name:  "db.engine",
		Usage: "Database backend (leveldb, memory)",
	}
	quorumFlag = &cli.UintFlag{
		Name:  "quorum",
		Usage: "Quorum threshold as a percentage of total stake",
	}
	rpcFlag = &cli.StringFlag{
		Name:  "rpc",
		Usage: "JSON-RPC endpoint used to read stake token balances",
	}
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Address of the ERC-20 stake token",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}

	idFlag = &cli.Uint64Flag{
		Name:     "id",
		Usage:    "Proposal id",
		Required: true,
	}
)

var app = &cli.App{
	Name:  "daogov",
	Usage: "stake-weighted treasury governance",
	Flags: []cli.Flag{
		configFlag,
		dataDirFlag,
		dbEngineFlag,
		quorumFlag,
		rpcFlag,
		tokenFlag,
		verbosityFlag,
	},
	Before: setupLogging,
	Commands: []*cli.Command{
		proposeCommand,
		voteCommand,
		executeCommand,
		showCommand,
		listCommand,
		statusCommand,
	},
}

func setupLogging(ctx *cli.Context) error {
	var (
		output   io.Writer = os.Stderr
		useColor           = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	handler := log.NewTerminalHandlerWithLevel(output, log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), useColor)
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
