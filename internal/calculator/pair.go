package calculator

import (
	"math/big"
	"slices"

	"github.com/shopspring/decimal"

	"SynthChart/internal/model"
)

// workingCandle carries prices as decimals while two series are merged.
type workingCandle struct {
	timestamp int64
	open      decimal.Decimal
	high      decimal.Decimal
	low       decimal.Decimal
	close     decimal.Decimal
	isBase    bool
}

func toWorking(c model.Candle, isBase bool) workingCandle {
	return workingCandle{
		timestamp: c.Timestamp,
		open:      FromScaled(c.Open),
		high:      FromScaled(c.High),
		low:       FromScaled(c.Low),
		close:     FromScaled(c.Close),
		isBase:    isBase,
	}
}

func (w workingCandle) fields() [4]decimal.Decimal {
	return [4]decimal.Decimal{w.open, w.high, w.low, w.close}
}

// pairFold is the accumulator of the merge walk.
type pairFold struct {
	prevBase  workingCandle
	prevQuote workingCandle
	out       []model.Candle
}

// step folds one candle of the time-ordered walk into the accumulator.
func (f pairFold) step(c workingCandle) pairFold {
	var num, den [4]decimal.Decimal
	if c.isBase {
		num, den = c.fields(), f.prevQuote.fields()
		f.prevBase = c
	} else {
		num, den = f.prevBase.fields(), c.fields()
		f.prevQuote = c
	}

	var prices [4]*big.Int
	for i := range prices {
		if q, ok := divCeil(num[i], den[i]); ok {
			prices[i] = ToScaled(q)
		}
	}
	f.out = append(f.out, model.Candle{
		Timestamp: c.timestamp,
		Open:      prices[0],
		High:      prices[1],
		Low:       prices[2],
		Close:     prices[3],
	})
	return f
}

// SynthesizePair derives the price series of base quoted in quote from two
// series that are each quoted in the reference unit.
//
// When one side is the reference unit the other series is returned after a
// fixed-point round trip; missing prices stay nil. Otherwise every candle of
// either series becomes a synthesized candle at its own timestamp, dividing
// against the latest candle seen from the other series. Synthesized candles
// carry no ID or Synth. A price whose denominator is zero is left nil.
func SynthesizePair(base, quote []model.Candle, baseIsReferenceUnit, quoteIsReferenceUnit bool) []model.Candle {
	if baseIsReferenceUnit {
		return roundTrip(quote)
	}
	if quoteIsReferenceUnit {
		return roundTrip(base)
	}
	if len(base) == 0 || len(quote) == 0 {
		return nil
	}

	all := make([]workingCandle, 0, len(base)+len(quote))
	for _, c := range base {
		all = append(all, toWorking(c, true))
	}
	for _, c := range quote {
		all = append(all, toWorking(c, false))
	}
	slices.SortStableFunc(all, func(a, b workingCandle) int {
		switch {
		case a.timestamp < b.timestamp:
			return -1
		case a.timestamp > b.timestamp:
			return 1
		}
		return 0
	})

	f := pairFold{
		prevBase:  toWorking(base[0], true),
		prevQuote: toWorking(quote[0], false),
		out:       make([]model.Candle, 0, len(all)),
	}
	for _, c := range all {
		f = f.step(c)
	}
	return f.out
}

func roundTrip(series []model.Candle) []model.Candle {
	out := make([]model.Candle, len(series))
	for i, c := range series {
		out[i] = model.Candle{
			ID:        c.ID,
			Synth:     c.Synth,
			Timestamp: c.Timestamp,
			Open:      reencode(c.Open),
			High:      reencode(c.High),
			Low:       reencode(c.Low),
			Close:     reencode(c.Close),
		}
	}
	return out
}

// reencode passes a price through the decimal form; a missing price stays nil.
func reencode(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return ToScaled(FromScaled(v))
}
