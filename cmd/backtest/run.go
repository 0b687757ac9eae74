package main

import (
	"github.com/urfave/cli/v2"

	"github.com/marketmill/backtest/engine"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "replays a single configured backtest and prints its report",
	ArgsUsage: "<config.json>",
	Action:    runBacktest,
}

func runBacktest(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	cfgs, err := loadConfigs(c)
	if err != nil {
		return err
	}
	bt, err := engine.NewFromConfig(c.Context, cfgs[0], newLogger())
	if err != nil {
		return err
	}
	if err = bt.Run(c.Context); err != nil {
		return err
	}
	report, err := bt.Report()
	if err != nil {
		return err
	}
	return jsonOutput(report)
}
