package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/marketmill/backtest/config"
	"github.com/marketmill/backtest/signaler"
)

const version = "1.0.0"

var verbose bool

func newLogger() zerolog.Logger {
	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(lvl)
}

// jsonOutput writes the report to stdout, keeping it separate from the
// logging stream on stderr so runs can be piped into other tools
func jsonOutput(in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(j))
	return nil
}

func loadConfigs(c *cli.Context) ([]*config.Config, error) {
	cfgs := make([]*config.Config, c.NArg())
	for i := range cfgs {
		cfg, err := config.ReadConfigFromFile(c.Args().Get(i))
		if err != nil {
			return nil, err
		}
		cfgs[i] = cfg
	}
	return cfgs, nil
}

func main() {
	app := cli.NewApp()
	app.Name = "backtest"
	app.Version = version
	app.EnableBashCompletion = true
	app.Usage = "replays recorded market data through trading strategies and reports their performance"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "emit debug logging while runs progress",
			Destination: &verbose,
		},
	}
	app.Commands = []*cli.Command{
		runCommand,
		sweepCommand,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-signaler.WaitForInterrupt()
		fmt.Fprintln(os.Stderr, "interrupt received, draining queued events")
		cancel()
	}()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
