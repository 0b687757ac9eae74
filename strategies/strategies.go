package strategies

import (
	"fmt"
	"strings"

	"github.com/marketmill/backtest/strategies/base"
	"github.com/marketmill/backtest/strategies/buyandhold"
	"github.com/marketmill/backtest/strategies/script"
	"github.com/marketmill/backtest/strategies/smacross"
)

// LoadStrategyByName returns a fresh strategy instance with defaults applied.
// Lookup is case insensitive
func LoadStrategyByName(name string) (Handler, error) {
	strats := GetStrategies()
	for i := range strats {
		if !strings.EqualFold(name, strats[i].Name()) {
			continue
		}
		strats[i].SetDefaults()
		return strats[i], nil
	}
	return nil, fmt.Errorf("%w '%v'", base.ErrStrategyNotFound, name)
}

// GetStrategies returns a new instance of every supported strategy. Instances
// are never shared so concurrent runs cannot trample each other's state
func GetStrategies() []Handler {
	return []Handler{
		new(buyandhold.Strategy),
		new(smacross.Strategy),
		new(script.Strategy),
	}
}
