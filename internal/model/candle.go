package model

import "math/big"

// Candle is a single bar of price history for one synth over a period.
// Prices are fixed-point integers scaled by 10^18.
type Candle struct {
	ID        string
	Synth     string
	Open      *big.Int
	High      *big.Int
	Low       *big.Int
	Close     *big.Int
	Timestamp int64
}

// IsFinite reports whether all four prices are set. Synthesized candles leave
// a price nil when its denominator was zero.
func (c Candle) IsFinite() bool {
	return c.Open != nil && c.High != nil && c.Low != nil && c.Close != nil
}
