package recorder

import (
	"errors"

	"SynthChart/internal/model"
)

var ErrNotFound = errors.New("no recorded chart")

// Recorder persists synthesized pair charts.
type Recorder interface {
	RecordPairChart(runID string, chart *model.PairChart) error
	LatestPairChart(base, quote model.CurrencyKey, period model.Period) (*model.PairChart, error)
	Close() error
}
