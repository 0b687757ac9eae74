package statistics

import (
	"fmt"

	"github.com/marketmill/backtest/common"
	gctmath "github.com/marketmill/backtest/common/math"
	"github.com/marketmill/backtest/eventtypes/fill"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/signal"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/portfolio/holdings"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

// Setup creates a statistic. The risk free rate is annual and periods per
// year describes the sampling frequency of the data, 252 for daily equities
func Setup(riskFreeRate decimal.Decimal, periodsPerYear int64) (*Statistic, error) {
	if riskFreeRate.IsNegative() {
		return nil, fmt.Errorf("%w, received %v", errNegativeRiskFreeRate, riskFreeRate)
	}
	if periodsPerYear <= 0 {
		return nil, fmt.Errorf("%w, received %v", errInvalidPeriodsPerYear, periodsPerYear)
	}
	return &Statistic{
		riskFreeRate:   riskFreeRate,
		periodsPerYear: periodsPerYear,
	}, nil
}

// TrackEvent tallies an event leaving the queue
func (s *Statistic) TrackEvent(e common.Event) error {
	if e == nil {
		return common.ErrNilEvent
	}
	if s.finalised {
		return errAlreadyFinalised
	}
	switch e.(type) {
	case tick.Event:
		s.ticks++
	case signal.Event:
		s.signals++
	case order.Event:
		s.orders++
	case fill.Event:
		s.fills++
	}
	if s.firstTime.IsZero() {
		s.firstTime = e.GetTime()
	}
	s.lastTime = e.GetTime()
	return nil
}

// AddEquitySnapshot folds one marked to market account value into the return
// and drawdown accumulators. A non positive previous equity makes the next
// return undefined, which is counted rather than computed
func (s *Statistic) AddEquitySnapshot(snap holdings.EquitySnapshot) error {
	if s.finalised {
		return errAlreadyFinalised
	}
	if s.snapshots == 0 {
		s.firstEquity = snap.Equity
		s.peak = snap.Equity
	} else {
		if s.lastEquity.IsPositive() {
			change := snap.Equity.Sub(s.lastEquity).Div(s.lastEquity)
			s.returns.Add(change.InexactFloat64())
		} else {
			s.degenerate++
		}
		if snap.Equity.GreaterThan(s.peak) {
			s.peak = snap.Equity
		} else if s.peak.IsPositive() {
			drawdown := s.peak.Sub(snap.Equity).Div(s.peak)
			if drawdown.GreaterThan(s.maxDrawdown) {
				s.maxDrawdown = drawdown
			}
		}
	}
	s.lastEquity = snap.Equity
	s.snapshots++
	return nil
}

// TrackTransaction tallies a fill and the realised PNL it produced. Fills
// that close nothing carry zero realised PNL and count as neither win nor
// loss
func (s *Statistic) TrackTransaction(f fill.Event, realised decimal.Decimal) error {
	if f == nil {
		return common.ErrNilEvent
	}
	if s.finalised {
		return errAlreadyFinalised
	}
	s.totalCommission = s.totalCommission.Add(f.GetCommission())
	switch {
	case realised.IsPositive():
		s.wins++
		s.grossProfit = s.grossProfit.Add(realised)
		if realised.GreaterThan(s.largestWin) {
			s.largestWin = realised
		}
	case realised.IsNegative():
		s.losses++
		s.grossLoss = s.grossLoss.Add(realised.Neg())
		if realised.LessThan(s.largestLoss) {
			s.largestLoss = realised
		}
	}
	return nil
}

// Finalize computes the report. It is idempotent, further calls return the
// same result and the accumulators refuse new data once it has been called
func (s *Statistic) Finalize() (*Result, error) {
	if s.finalised {
		return s.result, nil
	}
	s.finalised = true

	r := &Result{
		StartTime:         s.firstTime,
		EndTime:           s.lastTime,
		InitialEquity:     s.firstEquity,
		FinalEquity:       s.lastEquity,
		MaxDrawdown:       s.maxDrawdown,
		Wins:              s.wins,
		Losses:            s.losses,
		GrossProfit:       s.grossProfit,
		GrossLoss:         s.grossLoss,
		LargestWin:        s.largestWin,
		LargestLoss:       s.largestLoss,
		TotalCommission:   s.totalCommission,
		DegenerateReturns: s.degenerate,
		Events: EventCounts{
			Ticks:   s.ticks,
			Signals: s.signals,
			Orders:  s.orders,
			Fills:   s.fills,
		},
	}

	if s.snapshots > 0 && s.firstEquity.IsPositive() {
		totalReturn := s.lastEquity.Sub(s.firstEquity).
			Div(s.firstEquity).
			Mul(decimal.NewFromInt(100))
		r.TotalReturn = null.Float64From(totalReturn.InexactFloat64())
	}

	perPeriodRate := s.riskFreeRate.InexactFloat64() / float64(s.periodsPerYear)
	if deviation := s.returns.SampleStandardDeviation(); s.returns.Count() >= 2 && deviation > 0 {
		sharpe := gctmath.SharpeRatio(s.returns.Mean(), deviation, perPeriodRate)
		r.AnnualisedSharpe = null.Float64From(
			gctmath.AnnualiseSharpe(sharpe, float64(s.periodsPerYear)))
	}

	if s.snapshots >= 2 && s.firstEquity.IsPositive() && s.lastEquity.IsPositive() {
		r.CAGR = null.Float64From(gctmath.CompoundAnnualGrowthRate(
			s.firstEquity.InexactFloat64(),
			s.lastEquity.InexactFloat64(),
			float64(s.periodsPerYear),
			float64(s.snapshots-1)))
	}

	if closed := s.wins + s.losses; closed > 0 {
		r.WinRate = null.Float64From(float64(s.wins) / float64(closed))
	}
	if s.grossLoss.IsPositive() {
		r.ProfitFactor = null.Float64From(
			s.grossProfit.Div(s.grossLoss).InexactFloat64())
	}

	s.result = r
	return r, nil
}
