package tick

import (
	"testing"
	"time"

	"github.com/marketmill/backtest/eventtypes/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTick() *Tick {
	return &Tick{
		Base: &event.Base{
			Symbol: "AAPL",
			Time:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Bid:    decimal.NewFromFloat(9.99),
		Ask:    decimal.NewFromFloat(10.01),
		Last:   decimal.NewFromInt(10),
		Volume: decimal.NewFromInt(100),
	}
}

func TestGetters(t *testing.T) {
	t.Parallel()
	k := validTick()
	if !k.GetBid().Equal(decimal.NewFromFloat(9.99)) {
		t.Errorf("expected '%v' received '%v'", 9.99, k.GetBid())
	}
	if !k.GetAsk().Equal(decimal.NewFromFloat(10.01)) {
		t.Errorf("expected '%v' received '%v'", 10.01, k.GetAsk())
	}
	if !k.GetLast().Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected '%v' received '%v'", 10, k.GetLast())
	}
	if !k.GetVolume().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected '%v' received '%v'", 100, k.GetVolume())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	k := validTick()
	assert.NoError(t, k.Validate())

	k = validTick()
	k.Time = time.Time{}
	assert.ErrorIs(t, k.Validate(), errNoTime)

	k = validTick()
	k.Symbol = ""
	assert.ErrorIs(t, k.Validate(), errNoSymbol)

	k = validTick()
	k.Last = decimal.NewFromInt(-1)
	assert.ErrorIs(t, k.Validate(), errNegativePrice)

	k = validTick()
	k.Bid = decimal.NewFromInt(11)
	assert.ErrorIs(t, k.Validate(), errCrossedQuote)

	// one sided quotes are allowed, a zero bid is a book with no buyers
	k = validTick()
	k.Bid = decimal.Zero
	assert.NoError(t, k.Validate())
}
