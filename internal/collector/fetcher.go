package collector

import (
	"context"

	"SynthChart/internal/model"
)

// Fetcher defines the interface for fetching synth price history.
// Returned candles are quoted in sUSD and may be in any order.
type Fetcher interface {
	FetchCandles(ctx context.Context, key model.CurrencyKey, period model.Period) ([]model.Candle, error)
	Name() string
}
