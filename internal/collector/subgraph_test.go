package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SynthChart/internal/model"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func writeCandles(w http.ResponseWriter, candles []graphCandle) {
	resp := map[string]any{"data": map[string]any{"candles": candles}}
	_ = json.NewEncoder(w).Encode(resp)
}

func fixedNow() time.Time { return time.Unix(1_700_000_000, 0) }

func TestSubgraphFetcher_FetchCandles(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeCandles(w, []graphCandle{
			{ID: "a", Synth: "sETH", Open: "1", High: "2", Low: "3", Close: "4", Timestamp: "1699999000"},
		})
	}))
	defer srv.Close()

	f := NewSubgraphFetcher(srv.URL, "")
	f.Now = fixedNow

	candles, err := f.FetchCandles(context.Background(), "sETH", model.OneDay)

	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, "a", candles[0].ID)
	assert.Equal(t, "sETH", candles[0].Synth)
	assert.Equal(t, int64(1699999000), candles[0].Timestamp)
	assert.Equal(t, "4", candles[0].Close.String())

	assert.Equal(t, "sETH", got.Variables["synth"])
	assert.Equal(t, "3600", got.Variables["period"])
	assert.Equal(t, strconv.FormatInt(1_700_000_000-86400, 10), got.Variables["from"])
}

func TestSubgraphFetcher_Paginates(t *testing.T) {
	var froms []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req capturedRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		froms = append(froms, req.Variables["from"].(string))

		n := pageSize
		if len(froms) > 1 {
			n = 2
		}
		start, _ := strconv.ParseInt(req.Variables["from"].(string), 10, 64)
		page := make([]graphCandle, n)
		for i := range page {
			ts := strconv.FormatInt(start+int64(i)+1, 10)
			page[i] = graphCandle{ID: fmt.Sprint(ts), Open: "1", High: "1", Low: "1", Close: "1", Timestamp: ts}
		}
		writeCandles(w, page)
	}))
	defer srv.Close()

	f := NewSubgraphFetcher(srv.URL, "")
	f.Now = fixedNow

	candles, err := f.FetchCandles(context.Background(), "sBTC", model.OneHour)

	require.NoError(t, err)
	assert.Len(t, candles, pageSize+2)
	require.Len(t, froms, 2)
	assert.Equal(t, strconv.FormatInt(candles[pageSize-1].Timestamp, 10), froms[1])
}

func TestSubgraphFetcher_Errors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "down", http.StatusBadGateway)
			},
			want: "status 502",
		},
		{
			name: "graphql",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"message":"bad field"}]}`))
			},
			want: "bad field",
		},
		{
			name: "bigint",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeCandles(w, []graphCandle{{ID: "x", Open: "1.5", High: "1", Low: "1", Close: "1", Timestamp: "1"}})
			},
			want: "open: invalid integer",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := NewSubgraphFetcher(srv.URL, "").FetchCandles(context.Background(), "sETH", model.OneDay)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
