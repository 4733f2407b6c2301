package feed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/raykavin/chartsnap/core"
)

// BinanceSource fetches daily klines for a crypto pair from the public
// Binance API. No credentials are needed for market data.
type BinanceSource struct {
	pair   string
	client *binance.Client
	log    core.Logger
}

// NewBinanceSource creates a Binance source for the given pair
func NewBinanceSource(pair string, log core.Logger) *BinanceSource {
	return &BinanceSource{
		pair:   pair,
		client: binance.NewClient("", ""),
		log:    log,
	}
}

// Symbol returns the trading pair this source fetches
func (b *BinanceSource) Symbol() string { return b.pair }

// Candles fetches daily klines for the trailing remote lookback window
func (b *BinanceSource) Candles(ctx context.Context) ([]core.Candle, error) {
	end := time.Now()
	start := end.Add(-remoteLookback)

	b.log.Debugf("fetching %s from binance", b.pair)

	data, err := b.client.NewKlinesService().
		Symbol(b.pair).
		Interval("1d").
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli()).
		Limit(1000).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrEmptyResult, b.pair)
	}

	candles := make([]core.Candle, 0, len(data))
	for _, k := range data {
		candles = append(candles, convertKline(b.pair, *k))
	}

	b.log.Infof("fetched %d daily bars for %s", len(candles), b.pair)
	return candles, nil
}

// convertKline converts a Binance kline to a core.Candle
func convertKline(pair string, k binance.Kline) core.Candle {
	candle := core.Candle{
		Symbol: pair,
		Time:   time.Unix(0, k.OpenTime*int64(time.Millisecond)).UTC(),
	}

	candle.Open, _ = strconv.ParseFloat(k.Open, 64)
	candle.Close, _ = strconv.ParseFloat(k.Close, 64)
	candle.High, _ = strconv.ParseFloat(k.High, 64)
	candle.Low, _ = strconv.ParseFloat(k.Low, 64)
	candle.Volume, _ = strconv.ParseFloat(k.Volume, 64)

	return candle
}
