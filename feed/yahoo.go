package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/raykavin/chartsnap/core"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=2y"

// YahooSource fetches a trailing two-year daily series from the Yahoo
// Finance chart API. A failed or empty result is terminal; there are
// no retries.
type YahooSource struct {
	symbol string
	client *http.Client
	log    core.Logger
}

// NewYahooSource creates a Yahoo Finance source for the given ticker
func NewYahooSource(symbol string, log core.Logger) *YahooSource {
	return &YahooSource{
		symbol: symbol,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
	}
}

// Symbol returns the ticker this source fetches
func (y *YahooSource) Symbol() string { return y.symbol }

// yahooChart is the response structure of the Yahoo chart API.
// Quote values are pointers because the API reports holidays as nulls.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Candles fetches and decodes the daily bar series
func (y *YahooSource) Candles(ctx context.Context) ([]core.Candle, error) {
	u := fmt.Sprintf(yahooChartURL, url.PathEscape(y.symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	y.log.Debugf("fetching %s from yahoo", y.symbol)

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrEmptyResult, y.symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]core.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if quote.Open[i] == nil || quote.Close[i] == nil {
			continue // null bars (holidays etc.)
		}
		candle := core.Candle{
			Symbol: y.symbol,
			Time:   time.Unix(ts, 0).UTC(),
			Open:   deref(quote.Open[i]),
			High:   deref(quote.High[i]),
			Low:    deref(quote.Low[i]),
			Close:  deref(quote.Close[i]),
			Volume: deref(quote.Volume[i]),
		}
		if candle.IsEmpty() {
			continue // all-zero rows decode past the null check
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrEmptyResult, y.symbol)
	}

	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })

	y.log.Infof("fetched %d daily bars for %s", len(candles), y.symbol)
	return candles, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
