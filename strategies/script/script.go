package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/shopspring/decimal"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/strategies/base"
)

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return description
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.path = ""
	s.timeout = defaultTimeout
	s.compiled = nil
	s.position = 0
}

// SetCustomSettings loads and compiles the configured script. The script-path
// setting is required, timeout-ms optionally bounds each per-tick run
func (s *Strategy) SetCustomSettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case scriptPathKey:
			path, ok := v.(string)
			if !ok || path == "" {
				return fmt.Errorf("%w provided %s value could not be parsed: %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.path = path
		case timeoutKey:
			ms, ok := v.(float64)
			if !ok || ms <= 0 {
				return fmt.Errorf("%w provided %s value could not be parsed: %v", base.ErrInvalidCustomSettings, k, v)
			}
			s.timeout = time.Duration(ms) * time.Millisecond
		default:
			return fmt.Errorf("%w unrecognised custom setting key %v with value %v", base.ErrInvalidCustomSettings, k, v)
		}
	}
	if s.path == "" {
		return errNoScript
	}
	return s.load()
}

func (s *Strategy) load() error {
	code, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	script := tengo.NewScript(code)
	script.SetImports(stdlib.GetModuleMap("math"))
	globals := map[string]any{
		"symbol":    "",
		"bid":       0.0,
		"ask":       0.0,
		"last":      0.0,
		"volume":    0.0,
		"position":  int64(0),
		"direction": "",
		"strength":  0.0,
	}
	for name, value := range globals {
		if err = script.Add(name, value); err != nil {
			return fmt.Errorf("%v: %w", s.path, err)
		}
	}
	s.compiled, err = script.Compile()
	if err != nil {
		return fmt.Errorf("%v: %w", s.path, err)
	}
	return nil
}

// OnTick feeds the market snapshot to the compiled script and converts any
// direction it assigns into a signal
func (s *Strategy) OnTick(t tick.Event) (signal.Event, error) {
	if t == nil {
		return nil, common.ErrNilEvent
	}
	if s.compiled == nil {
		return nil, errNoScript
	}
	inputs := map[string]any{
		"symbol":    t.GetSymbol(),
		"bid":       t.GetBid().InexactFloat64(),
		"ask":       t.GetAsk().InexactFloat64(),
		"last":      t.GetLast().InexactFloat64(),
		"volume":    t.GetVolume().InexactFloat64(),
		"position":  s.position,
		"direction": "",
		"strength":  0.0,
	}
	for name, value := range inputs {
		if err := s.compiled.Set(name, value); err != nil {
			return nil, fmt.Errorf("%v: %w", s.path, err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("%v: %w", s.path, err)
	}
	direction := s.compiled.Get("direction").String()
	if direction == "" {
		return nil, nil
	}
	strength := decimal.NewFromFloat(s.compiled.Get("strength").Float())
	return s.CreateSignal(t, signal.Direction(strings.ToUpper(direction)), strength)
}

// OnFill tracks the net position so the script can read it on later ticks
func (s *Strategy) OnFill(f fill.Event) {
	if f == nil {
		return
	}
	switch f.GetDirection() {
	case common.Buy:
		s.position += f.GetAmount()
	case common.Sell:
		s.position -= f.GetAmount()
	}
}

// State reports which script is loaded and the position it has been shown
func (s *Strategy) State() base.State {
	return base.State{
		Name: Name,
		Details: map[string]any{
			"script-path": s.path,
			"position":    s.position,
		},
	}
}
