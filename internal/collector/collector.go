package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"SynthChart/internal/calculator"
	"SynthChart/internal/model"
)

var ErrSamePair = errors.New("base and quote must differ")

// MockFetcher returns fixed series per synth for development and testing.
type MockFetcher struct {
	Series map[model.CurrencyKey][]model.Candle
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(ctx context.Context, key model.CurrencyKey, _ model.Period) ([]model.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series[key], nil
}

// Collector fetches both legs of a pair and synthesizes the pair chart.
type Collector struct {
	Fetcher Fetcher
	Logger  *logrus.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, logger *logrus.Logger) *Collector {
	return &Collector{Fetcher: fetcher, Logger: logger}
}

// leg is the outcome of one price history query.
type leg struct {
	candles []model.Candle
	noData  bool
}

// CollectPair fetches base and quote history for period and returns the
// synthesized chart of base quoted in quote. The sUSD leg is never fetched.
func (c *Collector) CollectPair(ctx context.Context, base, quote model.CurrencyKey, period model.Period) (*model.PairChart, error) {
	if base == quote {
		return nil, fmt.Errorf("%w: %s", ErrSamePair, base)
	}
	baseIsRef, quoteIsRef := base.IsReferenceUnit(), quote.IsReferenceUnit()

	var baseLeg, quoteLeg leg
	g, gctx := errgroup.WithContext(ctx)
	if !baseIsRef {
		g.Go(func() (err error) {
			baseLeg, err = c.fetchLeg(gctx, base, period)
			return err
		})
	}
	if !quoteIsRef {
		g.Go(func() (err error) {
			quoteLeg, err = c.fetchLeg(gctx, quote, period)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candles := calculator.SynthesizePair(baseLeg.candles, quoteLeg.candles, baseIsRef, quoteIsRef)
	chart := &model.PairChart{
		Base:    base,
		Quote:   quote,
		Period:  period,
		Candles: candles,
		NoData:  (baseLeg.noData && !baseIsRef) || (quoteLeg.noData && !quoteIsRef),
		Summary: calculator.Summarize(candles),
	}

	c.Logger.WithFields(logrus.Fields{
		"pair":    base.String() + "/" + quote.String(),
		"period":  period.Label,
		"candles": len(candles),
		"no_data": chart.NoData,
		"source":  c.Fetcher.Name(),
	}).Debug("pair chart collected")
	return chart, nil
}

func (c *Collector) fetchLeg(ctx context.Context, key model.CurrencyKey, period model.Period) (leg, error) {
	candles, err := c.Fetcher.FetchCandles(ctx, key, period)
	if err != nil {
		return leg{}, fmt.Errorf("fetch %s candles: %w", key, err)
	}
	return leg{candles: candles, noData: len(candles) == 0}, nil
}
