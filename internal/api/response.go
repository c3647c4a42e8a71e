package api

import (
	"math/big"

	"SynthChart/internal/calculator"
	"SynthChart/internal/model"
)

// Prices are rendered as decimal strings; nil prices become null.

type candleResponse struct {
	ID        string  `json:"id,omitempty"`
	Timestamp int64   `json:"timestamp"`
	Open      *string `json:"open"`
	High      *string `json:"high"`
	Low       *string `json:"low"`
	Close     *string `json:"close"`
}

type summaryResponse struct {
	High   *string `json:"high"`
	Low    *string `json:"low"`
	Change string  `json:"change_percent"`
}

type chartResponse struct {
	Base    string           `json:"base"`
	Quote   string           `json:"quote"`
	Period  string           `json:"period"`
	NoData  bool             `json:"no_data"`
	Summary summaryResponse  `json:"summary"`
	Candles []candleResponse `json:"candles"`
}

func newChartResponse(chart *model.PairChart) chartResponse {
	candles := make([]candleResponse, len(chart.Candles))
	for i, c := range chart.Candles {
		candles[i] = candleResponse{
			ID:        c.ID,
			Timestamp: c.Timestamp,
			Open:      priceString(c.Open),
			High:      priceString(c.High),
			Low:       priceString(c.Low),
			Close:     priceString(c.Close),
		}
	}
	return chartResponse{
		Base:   chart.Base.String(),
		Quote:  chart.Quote.String(),
		Period: chart.Period.Label,
		NoData: chart.NoData,
		Summary: summaryResponse{
			High:   priceString(chart.Summary.High),
			Low:    priceString(chart.Summary.Low),
			Change: chart.Summary.Change.StringFixed(2),
		},
		Candles: candles,
	}
}

func priceString(v *big.Int) *string {
	if v == nil {
		return nil
	}
	s := calculator.FromScaled(v).String()
	return &s
}
