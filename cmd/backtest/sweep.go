package main

import (
	"github.com/urfave/cli/v2"

	"github.com/marketmill/backtest/engine"
)

var workers int

var sweepCommand = &cli.Command{
	Name:      "sweep",
	Usage:     "replays several configured backtests concurrently and prints their reports",
	ArgsUsage: "<config.json>...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:        "workers",
			Aliases:     []string{"w"},
			Usage:       "maximum concurrent runs, defaults to the number of CPUs",
			Destination: &workers,
		},
	},
	Action: sweepBacktests,
}

func sweepBacktests(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	cfgs, err := loadConfigs(c)
	if err != nil {
		return err
	}
	reports, sweepErr := engine.Sweep(c.Context, cfgs, workers, newLogger())
	completed := make([]*engine.Report, 0, len(reports))
	for i := range reports {
		if reports[i] != nil {
			completed = append(completed, reports[i])
		}
	}
	if len(completed) > 0 {
		if err := jsonOutput(completed); err != nil {
			return err
		}
	}
	return sweepErr
}
