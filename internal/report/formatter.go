package report

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"SynthChart/internal/calculator"
	"SynthChart/internal/model"
)

// FormatPairChart renders a pair chart as plain text, one line per candle.
func FormatPairChart(chart *model.PairChart) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s/%s | %s\n", chart.Base, chart.Quote, chart.Period.Label))

	if chart.NoData || len(chart.Candles) == 0 {
		b.WriteString("no data\n")
		return b.String()
	}

	s := chart.Summary
	b.WriteString(fmt.Sprintf("high: %s | low: %s | change: %s%%\n\n",
		formatPrice(s.High), formatPrice(s.Low), s.Change.StringFixed(2)))

	for _, c := range chart.Candles {
		b.WriteString(fmt.Sprintf("%s  O=%s H=%s L=%s C=%s\n",
			time.Unix(c.Timestamp, 0).UTC().Format("2006-01-02 15:04"),
			formatPrice(c.Open), formatPrice(c.High), formatPrice(c.Low), formatPrice(c.Close)))
	}
	return b.String()
}

func formatPrice(v *big.Int) string {
	if v == nil {
		return "n/a"
	}
	return calculator.FromScaled(v).String()
}
