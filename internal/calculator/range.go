package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"

	"SynthChart/internal/model"
)

var hundred = decimal.NewFromInt(100)

// PeriodRange scans the candles and returns the highest high and lowest low.
// Nil prices are skipped; both results are nil when nothing is left.
func PeriodRange(candles []model.Candle) (high, low *big.Int) {
	for _, c := range candles {
		if c.High != nil && (high == nil || c.High.Cmp(high) > 0) {
			high = c.High
		}
		if c.Low != nil && (low == nil || c.Low.Cmp(low) < 0) {
			low = c.Low
		}
	}
	if high != nil {
		high = new(big.Int).Set(high)
	}
	if low != nil {
		low = new(big.Int).Set(low)
	}
	return high, low
}

// PriceChange returns the percent move from the first open to the last close.
// It is zero when either end is missing or the first open is zero.
func PriceChange(candles []model.Candle) decimal.Decimal {
	var first, last *big.Int
	for _, c := range candles {
		if first == nil && c.Open != nil {
			first = c.Open
		}
		if c.Close != nil {
			last = c.Close
		}
	}
	if first == nil || last == nil || first.Sign() == 0 {
		return decimal.Zero
	}
	open, cl := FromScaled(first), FromScaled(last)
	return cl.Sub(open).Div(open).Mul(hundred)
}

// Summarize computes the chart header figures for a series.
func Summarize(candles []model.Candle) model.Summary {
	high, low := PeriodRange(candles)
	return model.Summary{High: high, Low: low, Change: PriceChange(candles)}
}
