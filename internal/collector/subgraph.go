package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"SynthChart/internal/model"
)

const pageSize = 1000

const candlesQuery = `query Candles($synth: String!, $period: BigInt!, $from: BigInt!, $first: Int!) {
  candles(first: $first, orderBy: timestamp, orderDirection: asc,
    where: {synth: $synth, period: $period, timestamp_gt: $from}) {
    id
    synth
    open
    high
    low
    close
    timestamp
  }
}`

// SubgraphFetcher implements Fetcher against a rates subgraph GraphQL endpoint.
type SubgraphFetcher struct {
	URL    string
	Client *http.Client
	Now    func() time.Time
}

// NewSubgraphFetcher creates a new fetcher with optional proxy support.
func NewSubgraphFetcher(endpoint, proxyURL string) *SubgraphFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SubgraphFetcher{
		URL: endpoint,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Now: time.Now,
	}
}

func (f *SubgraphFetcher) Name() string { return "subgraph" }

type graphRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphCandle mirrors the subgraph entity; BigInt fields arrive as strings.
type graphCandle struct {
	ID        string `json:"id"`
	Synth     string `json:"synth"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Timestamp string `json:"timestamp"`
}

type graphResponse struct {
	Data struct {
		Candles []graphCandle `json:"candles"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchCandles pages through the candles of key newer than the period window,
// advancing the timestamp cursor until a short page comes back.
func (f *SubgraphFetcher) FetchCandles(ctx context.Context, key model.CurrencyKey, period model.Period) ([]model.Candle, error) {
	from := f.Now().Add(-period.Window).Unix()
	var out []model.Candle

	for {
		batch, err := f.fetchPage(ctx, key, period, from)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)

		if len(batch) < pageSize {
			break
		}
		from = batch[len(batch)-1].Timestamp
	}
	return out, nil
}

func (f *SubgraphFetcher) fetchPage(ctx context.Context, key model.CurrencyKey, period model.Period, from int64) ([]model.Candle, error) {
	body, err := json.Marshal(graphRequest{
		Query: candlesQuery,
		Variables: map[string]any{
			"synth":  key.String(),
			"period": strconv.FormatInt(period.BarSeconds(), 10),
			"from":   strconv.FormatInt(from, 10),
			"first":  pageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("subgraph: marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("subgraph: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subgraph: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("subgraph: status %d, body: %s", resp.StatusCode, string(b))
	}

	var gr graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("subgraph: decode response: %w", err)
	}
	if len(gr.Errors) > 0 {
		msgs := make([]string, len(gr.Errors))
		for i, e := range gr.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("subgraph: query error: %s", strings.Join(msgs, "; "))
	}

	candles := make([]model.Candle, 0, len(gr.Data.Candles))
	for i, gc := range gr.Data.Candles {
		c, err := gc.toCandle()
		if err != nil {
			return nil, fmt.Errorf("subgraph: candle[%d] %s: %w", i, gc.ID, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func (gc graphCandle) toCandle() (model.Candle, error) {
	ts, err := strconv.ParseInt(gc.Timestamp, 10, 64)
	if err != nil {
		return model.Candle{}, fmt.Errorf("timestamp: %w", err)
	}
	c := model.Candle{ID: gc.ID, Synth: gc.Synth, Timestamp: ts}
	fields := []struct {
		name string
		raw  string
		dst  **big.Int
	}{
		{"open", gc.Open, &c.Open},
		{"high", gc.High, &c.High},
		{"low", gc.Low, &c.Low},
		{"close", gc.Close, &c.Close},
	}
	for _, fld := range fields {
		v, ok := new(big.Int).SetString(fld.raw, 10)
		if !ok {
			return model.Candle{}, fmt.Errorf("%s: invalid integer %q", fld.name, fld.raw)
		}
		*fld.dst = v
	}
	return c, nil
}
