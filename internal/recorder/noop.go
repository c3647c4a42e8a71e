package recorder

import "SynthChart/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPairChart(_ string, _ *model.PairChart) error { return nil }

func (n *NoopRecorder) LatestPairChart(_, _ model.CurrencyKey, _ model.Period) (*model.PairChart, error) {
	return nil, ErrNotFound
}

func (n *NoopRecorder) Close() error { return nil }
