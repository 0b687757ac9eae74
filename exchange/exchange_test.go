package exchange

import (
	"testing"
	"time"

	"github.com/marketmill/backtest/common"
	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/marketmill/backtest/eventtypes/order"
	"github.com/marketmill/backtest/eventtypes/tick"
	"github.com/marketmill/backtest/exchange/slippage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noSlippage = &slippage.Fixed{}

func testExchange(t *testing.T) *Exchange {
	t.Helper()
	e, err := Setup(noSlippage, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	return e
}

func tickAt(when time.Time, bid, ask, last float64) *tick.Tick {
	return &tick.Tick{
		Base:   &event.Base{Symbol: "AAPL", Time: when},
		Bid:    decimal.NewFromFloat(bid),
		Ask:    decimal.NewFromFloat(ask),
		Last:   decimal.NewFromFloat(last),
		Volume: decimal.NewFromInt(100),
	}
}

func testOrder(side common.Side, oType order.Type, amount int64, limit, stop float64) *order.Order {
	return &order.Order{
		Base:       &event.Base{Symbol: "AAPL", Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		Direction:  side,
		OrderType:  oType,
		Status:     order.New,
		Amount:     amount,
		LimitPrice: decimal.NewFromFloat(limit),
		StopPrice:  decimal.NewFromFloat(stop),
	}
}

func TestSetup(t *testing.T) {
	t.Parallel()
	_, err := Setup(nil, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, errModelUnset)

	_, err = Setup(noSlippage, decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, errNegativeCommission)

	_, err = Setup(noSlippage, decimal.Zero, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, errNegativeMinimum)
}

func TestExecuteOrderNil(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	_, err := e.ExecuteOrder(nil, nil)
	assert.ErrorIs(t, err, common.ErrNilArguments)
}

func TestMarketBuyCrossesTheSpread(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	f, err := e.ExecuteOrder(testOrder(common.Buy, order.Market, 100, 0, 0), tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetPrice().Equal(decimal.NewFromFloat(10.01)) {
		t.Errorf("expected '%v' received '%v'", 10.01, f.GetPrice())
	}
	if f.GetOrderID() == "" {
		t.Error("expected an order id")
	}

	f, err = e.ExecuteOrder(testOrder(common.Sell, order.Market, 100, 0, 0), tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetPrice().Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("expected '%v' received '%v'", 9.99, f.GetPrice())
	}
}

func TestMarketOrderSlippage(t *testing.T) {
	t.Parallel()
	e, err := Setup(&slippage.Fixed{Rate: decimal.NewFromFloat(0.001)}, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	f, err := e.ExecuteOrder(testOrder(common.Buy, order.Market, 100, 0, 0), tickAt(time.Now(), 999, 1000, 1000))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetPrice().Equal(decimal.NewFromInt(1001)) {
		t.Errorf("expected '%v' received '%v'", 1001, f.GetPrice())
	}
}

func TestMarketOrderEmptyBook(t *testing.T) {
	t.Parallel()
	e := testExchange(t)

	// one sided book falls back to last
	f, err := e.ExecuteOrder(testOrder(common.Buy, order.Market, 10, 0, 0), tickAt(time.Now(), 0, 0, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetPrice().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected '%v' received '%v'", 10, f.GetPrice())
	}

	// nothing to price against at all
	_, err = e.ExecuteOrder(testOrder(common.Buy, order.Market, 10, 0, 0), tickAt(time.Now(), 0, 0, 0))
	assert.ErrorIs(t, err, ErrNoQuote)
}

func TestCommissionFloor(t *testing.T) {
	t.Parallel()
	e, err := Setup(noSlippage, decimal.NewFromFloat(0.001), decimal.NewFromInt(1))
	require.NoError(t, err)

	// 0.001 * 10 * 10 = 0.1 is below the floor
	f, err := e.ExecuteOrder(testOrder(common.Buy, order.Market, 10, 0, 0), tickAt(time.Now(), 10, 10, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetCommission().Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected '%v' received '%v'", 1, f.GetCommission())
	}

	// 0.001 * 10 * 1000 = 10 is above it
	f, err = e.ExecuteOrder(testOrder(common.Buy, order.Market, 1000, 0, 0), tickAt(time.Now(), 10, 10, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetCommission().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected '%v' received '%v'", 10, f.GetCommission())
	}
}

func TestLimitOrderRestsUntilPriced(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	o := testOrder(common.Buy, order.Limit, 100, 9.5, 0)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	if f != nil {
		t.Errorf("expected '%v' received '%v'", nil, f)
	}
	if o.GetStatus() != order.Open {
		t.Errorf("expected '%v' received '%v'", order.Open, o.GetStatus())
	}
	require.Len(t, e.Pending(), 1)

	// still above the limit
	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 9.6, 9.7, 9.65))
	require.NoError(t, err)
	require.Empty(t, fills)

	// the ask gaps through the limit and the fill takes the better price
	// without slippage
	later := now.Add(2 * time.Minute)
	fills, err = e.ProcessTick(tickAt(later, 9.1, 9.2, 9.15))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	if !fills[0].GetPrice().Equal(decimal.NewFromFloat(9.2)) {
		t.Errorf("expected '%v' received '%v'", 9.2, fills[0].GetPrice())
	}
	if !fills[0].GetTime().Equal(later) {
		t.Errorf("expected '%v' received '%v'", later, fills[0].GetTime())
	}
	if o.GetStatus() != order.Filled {
		t.Errorf("expected '%v' received '%v'", order.Filled, o.GetStatus())
	}
	require.Empty(t, e.Pending())
}

func TestSellLimit(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	o := testOrder(common.Sell, order.Limit, 100, 10.5, 0)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Nil(t, f)

	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 10.6, 10.7, 10.65))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	if !fills[0].GetPrice().Equal(decimal.NewFromFloat(10.6)) {
		t.Errorf("expected '%v' received '%v'", 10.6, fills[0].GetPrice())
	}
}

func TestStopOrderBecomesMarket(t *testing.T) {
	t.Parallel()
	e, err := Setup(&slippage.Fixed{Rate: decimal.NewFromFloat(0.001)}, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	now := time.Now()

	o := testOrder(common.Buy, order.Stop, 100, 0, 10.5)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Nil(t, f)

	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 10.3, 10.4, 10.35))
	require.NoError(t, err)
	require.Empty(t, fills)

	// last trades through the stop so the order crosses at the ask plus
	// slippage
	fills, err = e.ProcessTick(tickAt(now.Add(2*time.Minute), 10.5, 11, 10.6))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	if !fills[0].GetPrice().Equal(decimal.NewFromFloat(11.011)) {
		t.Errorf("expected '%v' received '%v'", 11.011, fills[0].GetPrice())
	}
}

func TestSellStop(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	o := testOrder(common.Sell, order.Stop, 100, 0, 9.5)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Nil(t, f)

	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 9.4, 9.5, 9.45))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	if !fills[0].GetPrice().Equal(decimal.NewFromFloat(9.4)) {
		t.Errorf("expected '%v' received '%v'", 9.4, fills[0].GetPrice())
	}
}

func TestStopIgnoresTicksWithoutTrades(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	o := testOrder(common.Sell, order.Stop, 100, 0, 9.5)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Nil(t, f)

	// a quote only tick carries no traded price and cannot trigger a stop
	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 9.4, 9.5, 0))
	require.NoError(t, err)
	require.Empty(t, fills)
	assert.Len(t, e.Pending(), 1)
}

func TestStopLimit(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	// sell stop at 9.5 with a limit leg at 9.4
	o := testOrder(common.Sell, order.StopLimit, 100, 9.4, 9.5)
	f, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Nil(t, f)

	// the stop fires but the bid is already through the limit so the
	// order keeps resting
	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 9.3, 9.45, 9.4))
	require.NoError(t, err)
	require.Empty(t, fills)
	assert.Contains(t, o.GetConcatReasons(), "stop leg triggered")

	// once triggered it works as a limit even though last is back above
	// the stop
	fills, err = e.ProcessTick(tickAt(now.Add(2*time.Minute), 9.45, 9.55, 9.6))
	require.NoError(t, err)
	require.Len(t, fills, 1)
	if !fills[0].GetPrice().Equal(decimal.NewFromFloat(9.45)) {
		t.Errorf("expected '%v' received '%v'", 9.45, fills[0].GetPrice())
	}
}

func TestStopLimitImmediateTrigger(t *testing.T) {
	t.Parallel()
	e := testExchange(t)

	// buy stop at 10, already trading there, limit at 10.05 above the ask
	o := testOrder(common.Buy, order.StopLimit, 100, 10.05, 10)
	f, err := e.ExecuteOrder(o, tickAt(time.Now(), 9.99, 10.01, 10))
	require.NoError(t, err)
	require.NotNil(t, f)
	if !f.GetPrice().Equal(decimal.NewFromFloat(10.01)) {
		t.Errorf("expected '%v' received '%v'", 10.01, f.GetPrice())
	}
}

func TestRestingOrdersFillInArrivalOrder(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	first := testOrder(common.Buy, order.Limit, 10, 9.5, 0)
	second := testOrder(common.Buy, order.Limit, 20, 9.5, 0)
	_, err := e.ExecuteOrder(first, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)
	_, err = e.ExecuteOrder(second, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)

	fills, err := e.ProcessTick(tickAt(now.Add(time.Minute), 9.3, 9.4, 9.35))
	require.NoError(t, err)
	require.Len(t, fills, 2)
	if fills[0].GetOrderID() != first.GetID() {
		t.Errorf("expected '%v' received '%v'", first.GetID(), fills[0].GetOrderID())
	}
	if fills[1].GetOrderID() != second.GetID() {
		t.Errorf("expected '%v' received '%v'", second.GetID(), fills[1].GetOrderID())
	}
}

func TestOtherSymbolsDoNotTouchTheBook(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	now := time.Now()

	o := testOrder(common.Buy, order.Limit, 10, 9.5, 0)
	_, err := e.ExecuteOrder(o, tickAt(now, 9.99, 10.01, 10))
	require.NoError(t, err)

	other := tickAt(now.Add(time.Minute), 9.0, 9.1, 9.05)
	other.Symbol = "MSFT"
	fills, err := e.ProcessTick(other)
	require.NoError(t, err)
	require.Empty(t, fills)
	require.Len(t, e.Pending(), 1)
}

func TestReset(t *testing.T) {
	t.Parallel()
	e := testExchange(t)
	_, err := e.ExecuteOrder(testOrder(common.Buy, order.Limit, 10, 9.5, 0), tickAt(time.Now(), 9.99, 10.01, 10))
	require.NoError(t, err)
	require.Len(t, e.Pending(), 1)
	e.Reset()
	require.Empty(t, e.Pending())
}
