package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownPeriod = errors.New("unknown period")

// Period is a chart period: the label shown to users, the bar size of the
// candles queried for it, and how far back the chart reaches.
type Period struct {
	Label  string
	Bar    time.Duration
	Window time.Duration
}

// BarSeconds is the candle period as the rates subgraph stores it.
func (p Period) BarSeconds() int64 { return int64(p.Bar / time.Second) }

var (
	OneHour   = Period{Label: "ONE_HOUR", Bar: 5 * time.Minute, Window: time.Hour}
	FourHours = Period{Label: "FOUR_HOURS", Bar: 15 * time.Minute, Window: 4 * time.Hour}
	OneDay    = Period{Label: "ONE_DAY", Bar: time.Hour, Window: 24 * time.Hour}
	OneWeek   = Period{Label: "ONE_WEEK", Bar: 4 * time.Hour, Window: 7 * 24 * time.Hour}
	OneMonth  = Period{Label: "ONE_MONTH", Bar: 24 * time.Hour, Window: 30 * 24 * time.Hour}
)

// Periods lists the supported chart periods, shortest first.
var Periods = []Period{OneHour, FourHours, OneDay, OneWeek, OneMonth}

// ParsePeriod looks up a period by label.
func ParsePeriod(label string) (Period, error) {
	for _, p := range Periods {
		if p.Label == label {
			return p, nil
		}
	}
	return Period{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, label)
}
