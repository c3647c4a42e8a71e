package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Summary holds the chart header figures for a synthesized series.
type Summary struct {
	High   *big.Int
	Low    *big.Int
	Change decimal.Decimal // percent, last close over first open
}

// PairChart is the synthesized price history of Base quoted in Quote.
type PairChart struct {
	Base    CurrencyKey
	Quote   CurrencyKey
	Period  Period
	Candles []Candle
	NoData  bool
	Summary Summary
}
