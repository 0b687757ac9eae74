package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventqueue"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/exchange"
)

// New returns a BackTest with an empty event queue and a disabled logger.
// Handlers are filled in by the caller or by NewFromConfig
func New() *BackTest {
	return &BackTest{
		EventQueue: &eventqueue.Queue{},
		log:        zerolog.Nop(),
	}
}

// SetLogger routes run lifecycle and event routing logs to l
func (bt *BackTest) SetLogger(l zerolog.Logger) {
	bt.log = l
}

// Run replays the feed through the strategy, portfolio and exchange until
// the data runs out or ctx is cancelled. Cancellation stops feed pulls but
// the queue is always drained so no event is dropped. Configuration and data
// errors halt the run and carry the holdings state at the point of failure
func (bt *BackTest) Run(ctx context.Context) error {
	if err := bt.validateSetup(); err != nil {
		return err
	}
	bt.log.Info().
		Str("strategy", bt.Strategy.Name()).
		Str("nickname", bt.Nickname).
		Msg("running backtest")
	for {
		e, ok := bt.EventQueue.Pop()
		if !ok {
			if ctx.Err() != nil {
				bt.log.Info().Msg("cancelled, queue drained")
				break
			}
			if !bt.Feed.HasNext() {
				break
			}
			t, err := bt.Feed.Next()
			if err != nil {
				return bt.fatalData(err)
			}
			if err = bt.pushTick(t); err != nil {
				return err
			}
			continue
		}
		if err := bt.handleEvent(e); err != nil {
			return err
		}
		if err := bt.Statistic.TrackEvent(e); err != nil {
			return bt.fatal(e, err)
		}
	}
	bt.log.Info().
		Int("transactions", len(bt.transactions)).
		Str("equity", bt.Portfolio.GetHolding().Equity().String()).
		Msg("backtest complete")
	return nil
}

// pushTick admits a feed observation into the queue after checking it is
// well formed and does not travel back in time
func (bt *BackTest) pushTick(t *tick.Tick) error {
	if err := t.Validate(); err != nil {
		return bt.fatalData(err)
	}
	if !bt.lastTime.IsZero() && t.GetTime().Before(bt.lastTime) {
		return bt.fatalData(fmt.Errorf("%w, received %v after %v",
			errTickOutOfOrder, t.GetTime(), bt.lastTime))
	}
	bt.lastTime = t.GetTime()
	return bt.EventQueue.Push(t)
}

// handleEvent routes a single event to its handler. Events raised while
// handling are pushed back onto the queue, never handled inline
func (bt *BackTest) handleEvent(e common.Event) error {
	switch ev := e.(type) {
	case tick.Event:
		return bt.processTick(ev)
	case signal.Event:
		return bt.processSignal(ev)
	case order.Event:
		return bt.processOrder(ev)
	case fill.Event:
		return bt.processFill(ev)
	}
	return bt.fatal(e, fmt.Errorf("%w %T", common.ErrInvalidDataType, e))
}

func (bt *BackTest) processTick(t tick.Event) error {
	bt.latest = t
	snap, err := bt.Portfolio.UpdateHoldings(t)
	if err != nil {
		return bt.fatal(t, err)
	}
	if err = bt.Statistic.AddEquitySnapshot(snap); err != nil {
		return bt.fatal(t, err)
	}
	fills, err := bt.Exchange.ProcessTick(t)
	if err != nil {
		return bt.fatal(t, err)
	}
	for i := range fills {
		if err = bt.EventQueue.Push(fills[i]); err != nil {
			return bt.fatal(t, err)
		}
	}
	sig, err := bt.Strategy.OnTick(t)
	if err != nil {
		return bt.fatal(t, err)
	}
	if sig == nil {
		return nil
	}
	return bt.EventQueue.Push(sig)
}

func (bt *BackTest) processSignal(s signal.Event) error {
	o, err := bt.Portfolio.OnSignal(s, bt.latest)
	if err != nil {
		return bt.fatal(s, err)
	}
	if o == nil {
		bt.diagnose(s, stagePortfolio)
		return nil
	}
	return bt.EventQueue.Push(o)
}

func (bt *BackTest) processOrder(o order.Event) error {
	f, err := bt.Exchange.ExecuteOrder(o, bt.latest)
	if err != nil {
		if errors.Is(err, exchange.ErrNoQuote) {
			o.SetStatus(order.Rejected)
			o.AppendReasonf("order rejected: %v", err)
			bt.diagnose(o, stageExchange)
			return nil
		}
		return bt.fatal(o, err)
	}
	if f == nil {
		bt.log.Debug().
			Str("id", o.GetID()).
			Str("type", string(o.GetType())).
			Msg("order resting in book")
		return nil
	}
	return bt.EventQueue.Push(f)
}

func (bt *BackTest) processFill(f fill.Event) error {
	realised, err := bt.Portfolio.OnFill(f)
	if err != nil {
		return bt.fatal(f, err)
	}
	if err = bt.Statistic.TrackTransaction(f, realised); err != nil {
		return bt.fatal(f, err)
	}
	if err = bt.Statistic.AddEquitySnapshot(bt.Portfolio.GetHolding().Snapshot()); err != nil {
		return bt.fatal(f, err)
	}
	bt.Strategy.OnFill(f)
	bt.transactions = append(bt.transactions, Transaction{
		Offset:     f.GetOffset(),
		Time:       f.GetTime(),
		Symbol:     f.GetSymbol(),
		Direction:  f.GetDirection(),
		Amount:     f.GetAmount(),
		Price:      f.GetPrice(),
		Commission: f.GetCommission(),
		Realised:   realised,
		OrderID:    f.GetOrderID(),
	})
	bt.log.Debug().
		Str("symbol", f.GetSymbol()).
		Str("direction", f.GetDirection().String()).
		Int64("amount", f.GetAmount()).
		Str("price", f.GetPrice().String()).
		Str("realised", realised.String()).
		Msg("fill")
	return nil
}

// Report finalises the statistics and assembles the run outcome. Safe to
// call more than once and after a halted run, where it reports the partial
// results up to the failure
func (bt *BackTest) Report() (*Report, error) {
	if err := bt.validateSetup(); err != nil {
		return nil, err
	}
	result, err := bt.Statistic.Finalize()
	if err != nil {
		return nil, err
	}
	report := &Report{
		Nickname:      bt.Nickname,
		Strategy:      bt.Strategy.Name(),
		StrategyState: bt.Strategy.State(),
		Result:        result,
		Holding:       *bt.Portfolio.GetHolding(),
		Transactions:  bt.transactions,
		Diagnostics:   append([]Diagnostic(nil), bt.diagnostics...),
	}
	for _, o := range bt.Exchange.Pending() {
		report.UnfilledOrders = append(report.UnfilledOrders, UnfilledOrder{
			ID:         o.GetID(),
			Symbol:     o.GetSymbol(),
			Direction:  o.GetDirection(),
			Type:       o.GetType(),
			Amount:     o.GetAmount(),
			LimitPrice: o.GetLimitPrice(),
			StopPrice:  o.GetStopPrice(),
			Reason:     o.GetConcatReasons(),
		})
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Offset: o.GetOffset(),
			Time:   o.GetTime(),
			Stage:  stageEnd,
			Reason: fmt.Sprintf("order %v unfilled when data ran out", o.GetID()),
		})
	}
	if result.DegenerateReturns > 0 {
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Stage: stageStatistics,
			Reason: fmt.Sprintf("%v equity snapshots followed non-positive equity, their returns are undefined",
				result.DegenerateReturns),
		})
	}
	return report, nil
}

// validateSetup rejects a run before any event flows when a handler is
// missing
func (bt *BackTest) validateSetup() error {
	switch {
	case bt.Feed == nil:
		return errFeedUnset
	case bt.Strategy == nil:
		return errStrategyUnset
	case bt.Portfolio == nil:
		return errPortfolioUnset
	case bt.Exchange == nil:
		return errExchangeUnset
	case bt.Statistic == nil:
		return errStatisticUnset
	case bt.EventQueue == nil:
		return errQueueUnset
	}
	return nil
}

// fatal decorates a halting error with the event and holdings context at the
// point of failure
func (bt *BackTest) fatal(e common.Event, err error) error {
	h := bt.Portfolio.GetHolding()
	return fmt.Errorf("%w, event offset %v at %v, cash %v equity %v",
		err, e.GetOffset(), e.GetTime(), h.RemainingFunds, h.Equity())
}

// fatalData decorates a feed error, which has no routable event to blame,
// with the holdings context
func (bt *BackTest) fatalData(err error) error {
	h := bt.Portfolio.GetHolding()
	return fmt.Errorf("%w, cash %v equity %v", err, h.RemainingFunds, h.Equity())
}

func (bt *BackTest) diagnose(e common.Event, stage string) {
	d := Diagnostic{
		Offset: e.GetOffset(),
		Time:   e.GetTime(),
		Stage:  stage,
		Reason: e.GetConcatReasons(),
	}
	bt.diagnostics = append(bt.diagnostics, d)
	bt.log.Debug().
		Int64("offset", d.Offset).
		Str("stage", d.Stage).
		Msg(d.Reason)
}
