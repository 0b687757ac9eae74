package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/marketmill/backtest/config"
)

// Sweep runs each config as an isolated backtest across at most workers
// goroutines and returns reports in config order. A failed run leaves a nil
// report in its slot and contributes to the joined error. workers below one
// defaults to GOMAXPROCS
func Sweep(ctx context.Context, cfgs []*config.Config, workers int, logger zerolog.Logger) ([]*Report, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	reports := make([]*Report, len(cfgs))
	errs := make([]error, len(cfgs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range cfgs {
		name := fmt.Sprintf("config %v", i)
		if cfgs[i] != nil && cfgs[i].Nickname != "" {
			name = cfgs[i].Nickname
		}
		if err := ctx.Err(); err != nil {
			errs[i] = fmt.Errorf("%v: %w", name, err)
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			errs[i] = fmt.Errorf("%v: %w", name, ctx.Err())
			continue
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			report, err := runOne(ctx, cfgs[i], logger.With().Str("run", name).Logger())
			if err != nil {
				errs[i] = fmt.Errorf("%v: %w", name, err)
				return
			}
			reports[i] = report
		}(i, name)
	}
	wg.Wait()
	return reports, errors.Join(errs...)
}

func runOne(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Report, error) {
	bt, err := NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err = bt.Run(ctx); err != nil {
		return nil, err
	}
	return bt.Report()
}
