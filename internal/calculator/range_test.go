package calculator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"SynthChart/internal/model"
)

func TestPeriodRange(t *testing.T) {
	candles := []model.Candle{ohlc(1, 10, 12, 9, 11), ohlc(2, 11, 15, 10, 14), ohlc(3, 14, 14, 8, 9)}

	high, low := PeriodRange(candles)

	assert.Equal(t, 0, scaled(15).Cmp(high))
	assert.Equal(t, 0, scaled(8).Cmp(low))
}

func TestPeriodRange_SkipsNonFinite(t *testing.T) {
	candles := []model.Candle{{Timestamp: 1}, ohlc(2, 3, 4, 2, 3)}

	high, low := PeriodRange(candles)

	assert.Equal(t, 0, scaled(4).Cmp(high))
	assert.Equal(t, 0, scaled(2).Cmp(low))

	high, low = PeriodRange(nil)
	assert.Nil(t, high)
	assert.Nil(t, low)
}

func TestPriceChange(t *testing.T) {
	candles := []model.Candle{ohlc(1, 10, 12, 9, 11), ohlc(2, 11, 13, 10, 12)}
	assert.Equal(t, "20", PriceChange(candles).String())

	zeroOpen := []model.Candle{{Timestamp: 1, Open: big.NewInt(0), Close: scaled(1)}}
	assert.True(t, PriceChange(zeroOpen).IsZero())
	assert.True(t, PriceChange(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Candle{ohlc(1, 4, 5, 3, 2)})

	assert.Equal(t, 0, scaled(5).Cmp(s.High))
	assert.Equal(t, 0, scaled(3).Cmp(s.Low))
	assert.Equal(t, "-50", s.Change.String())
}
