package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldgauge/internal/config"
)

func marketConfig(baseURL string) *config.MarketConfig {
	return &config.MarketConfig{
		BaseURL:           baseURL,
		Range:             "5d",
		Interval:          "1d",
		RequestTimeout:    5 * time.Second,
		RequestsPerSecond: 100,
		DollarSymbol:      "DX-Y.NYB",
		YieldSymbol:       "^TNX",
		VolatilitySymbol:  "^VIX",
		TrendPeriod:       3,
	}
}

// chartBody builds a chart API payload; closes is the raw JSON array body,
// e.g. "16.5,null,17.1".
func chartBody(symbol, timestamps, closes string) string {
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"symbol": %q, "currency": "USD"},
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, symbol, timestamps, closes)
}

func chartServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHistoryParsesCloses(t *testing.T) {
	srv := chartServer(t, http.StatusOK, chartBody("^VIX",
		"1724050800,1724137200,1724223600",
		"16.5,17.2,18.9"))

	client := NewClient(marketConfig(srv.URL))
	series, err := client.History(context.Background(), "^VIX")
	require.NoError(t, err)

	assert.Equal(t, "^VIX", series.Symbol)
	require.Len(t, series.Points, 3)
	assert.Equal(t, []float64{16.5, 17.2, 18.9}, series.Closes())
	assert.Equal(t, 18.9, series.Latest())
	assert.Equal(t, time.Unix(1724050800, 0).UTC(), series.Points[0].Timestamp)
}

func TestHistorySkipsNullCloses(t *testing.T) {
	srv := chartServer(t, http.StatusOK, chartBody("DX-Y.NYB",
		"1724050800,1724137200,1724223600,1724310000",
		"101.2,null,102.8,null"))

	client := NewClient(marketConfig(srv.URL))
	series, err := client.History(context.Background(), "DX-Y.NYB")
	require.NoError(t, err)

	assert.Equal(t, []float64{101.2, 102.8}, series.Closes())
}

func TestHistoryRequestShape(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		fmt.Fprint(w, chartBody("^TNX", "1724050800", "4.21"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "^TNX")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^TNX", gotPath)
	assert.Equal(t, "5d", gotRange)
	assert.Equal(t, "1d", gotInterval)
}

func TestHistoryAPIError(t *testing.T) {
	body := `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`
	srv := chartServer(t, http.StatusOK, body)

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "BOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestHistoryHTTPStatusError(t *testing.T) {
	srv := chartServer(t, http.StatusTooManyRequests, "slow down")

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "^VIX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestHistoryEmptyResult(t *testing.T) {
	srv := chartServer(t, http.StatusOK, `{"chart": {"result": [], "error": null}}`)

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "^VIX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no chart data")
}

func TestHistoryAllClosesNull(t *testing.T) {
	srv := chartServer(t, http.StatusOK, chartBody("^VIX",
		"1724050800,1724137200",
		"null,null"))

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "^VIX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable closes")
}

func TestHistoryMalformedJSON(t *testing.T) {
	srv := chartServer(t, http.StatusOK, `{"chart": not json`)

	client := NewClient(marketConfig(srv.URL))
	_, err := client.History(context.Background(), "^VIX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestSeriesLatestEmpty(t *testing.T) {
	series := &Series{Symbol: "^VIX"}
	assert.Equal(t, 0.0, series.Latest())
	assert.Empty(t, series.Closes())
}
