package model

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("ONE_WEEK")
	require.NoError(t, err)
	assert.Equal(t, OneWeek, p)
	assert.Equal(t, int64(4*3600), p.BarSeconds())

	_, err = ParsePeriod("one_week")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestPeriods_ShortestFirst(t *testing.T) {
	for i := 1; i < len(Periods); i++ {
		assert.Less(t, Periods[i-1].Window, Periods[i].Window)
		assert.LessOrEqual(t, Periods[i].Bar, Periods[i].Window)
	}
	assert.Equal(t, time.Hour, OneDay.Bar)
}

func TestCandle_IsFinite(t *testing.T) {
	one := big.NewInt(1)
	c := Candle{Open: one, High: one, Low: one, Close: one}
	assert.True(t, c.IsFinite())

	c.Low = nil
	assert.False(t, c.IsFinite())
}

func TestCurrencyKey_IsReferenceUnit(t *testing.T) {
	assert.True(t, SUSD.IsReferenceUnit())
	assert.False(t, CurrencyKey("sETH").IsReferenceUnit())
	assert.Equal(t, "sBTC", CurrencyKey("sBTC").String())
}
