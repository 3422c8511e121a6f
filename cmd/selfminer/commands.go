// Copyright 2026 The Selfminer Authors
// This file is part of the selfminer library.
//
// The selfminer library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The selfminer library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the selfminer library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-wordwrap"
	"gopkg.in/urfave/cli.v1"

	"github.com/abeychain/selfminer/config"
	"github.com/abeychain/selfminer/reporting"
)

// wrap reflows a command description to a terminal-friendly width, the
// same wordwrap.WrapString usage the rest of the retrieval pack reaches
// for over hand-rolled line breaking.
func wrap(s string) string { return wordwrap.WrapString(s, 78) }

var configFlag = cli.StringFlag{Name: "config", Usage: "path to the simulation configuration document"}
var outFlag = cli.StringFlag{Name: "out", Usage: "path to write the per-miner CSV report to"}
var verboseFlag = cli.BoolFlag{Name: "verbose", Usage: "log the final public chain length and the run's summary counts after the run"}

// runFamily runs every matching entry for family out of --config, writing
// one CSV per entry (suffixed with the entry's label when more than one
// entry matches) and printing a histogram for each to stdout.
func runFamily(ctx *cli.Context, family string, run func(config.Entry, bool) ([]reporting.Row, int)) error {
	cfgPath := ctx.String("config")
	outPath := ctx.String("out")
	if cfgPath == "" || outPath == "" {
		return cli.NewExitError("both --config and --out are required", 1)
	}
	entries, err := entriesFor(cfgPath, family)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	multi := len(entries) > 1
	for _, entry := range entries {
		rows, rounds := run(entry.Clone(), ctx.Bool("verbose"))
		if err := reporting.WriteCSV(outPathFor(outPath, entry.Label, multi), rows); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Printf("-- %s (%s) --\n", entry.Label, entry.ConsensusName)
		if err := reporting.PrintSummary(rows, rounds); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	return nil
}

var nakamotoCommand = cli.Command{
	Name:      "nakamoto",
	Usage:     "run the Nakamoto selfish-mining simulation",
	ArgsUsage: "--config <path> --out <path>",
	Flags:     []cli.Flag{configFlag, outFlag, verboseFlag},
	Action: func(ctx *cli.Context) error {
		return runFamily(ctx, "Nakamoto", runNakamoto)
	},
}

var strongchainCommand = cli.Command{
	Name:      "strongchain",
	Usage:     "run the Strongchain selfish-mining simulation",
	ArgsUsage: "--config <path> --out <path>",
	Flags:     []cli.Flag{configFlag, outFlag, verboseFlag},
	Action: func(ctx *cli.Context) error {
		return runFamily(ctx, "Strongchain", runStrongchain)
	},
}

var fruitchainCommand = cli.Command{
	Name:      "fruitchain",
	Usage:     "run the Fruitchain selfish-mining simulation",
	ArgsUsage: "--config <path> --out <path>",
	Flags:     []cli.Flag{configFlag, outFlag, verboseFlag},
	Action: func(ctx *cli.Context) error {
		return runFamily(ctx, "Fruitchain", runFruitchain)
	},
}

var subchainCommand = cli.Command{
	Name:      "subchain",
	Usage:     "run the Subchain selfish-mining simulation",
	ArgsUsage: "{weak|strong} --config <path> --out <path>",
	Description: wrap(`The Subchain family splits into two independent variants: "weak" resolves the contest over an epoch's weak sub-chain before sealing it behind one strong block, "strong" keeps one strong chain per miner with an unconstrained weak buffer grafted onto it at the next strong round. The variant is given as the command's first positional argument.`),
	Flags: []cli.Flag{configFlag, outFlag, verboseFlag},
	Action: func(ctx *cli.Context) error {
		variant := ctx.Args().First()
		switch variant {
		case "weak":
			return runFamily(ctx, "Subchain", runSubchainWeak)
		case "strong":
			return runFamily(ctx, "Subchain", runSubchainStrong)
		default:
			return cli.NewExitError(fmt.Sprintf("subchain requires a variant, \"weak\" or \"strong\", got %q", variant), 1)
		}
	},
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "selfminer"
	app.Usage = "discrete-event selfish-mining simulator for Nakamoto, Strongchain, Fruitchain and Subchain"
	app.Commands = []cli.Command{
		nakamotoCommand,
		strongchainCommand,
		fruitchainCommand,
		subchainCommand,
	}
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}
