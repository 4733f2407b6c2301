package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsnap/core"
)

type staticSource struct {
	symbol  string
	calls   int
	candles []core.Candle
}

func (s *staticSource) Symbol() string { return s.symbol }

func (s *staticSource) Candles(context.Context) ([]core.Candle, error) {
	s.calls++
	return s.candles, nil
}

func cacheCandles(n int) []core.Candle {
	candles := make([]core.Candle, n)
	for i := range candles {
		candles[i] = core.Candle{
			Symbol: "TQQQ",
			Time:   time.Date(2023, time.March, 1+i, 0, 0, 0, 0, time.UTC),
			Open:   100 + float64(i),
			High:   102 + float64(i),
			Low:    99 + float64(i),
			Close:  101 + float64(i),
			Volume: 1000,
		}
	}
	return candles
}

func TestCache_PutGet(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	stored := cacheCandles(3)
	require.NoError(t, cache.Put("TQQQ", stored, time.Minute))

	got, ok := cache.Get("TQQQ")
	require.True(t, ok)
	require.Len(t, got, 3)
	require.Equal(t, stored[2].Close, got[2].Close)
	require.True(t, stored[2].Time.Equal(got[2].Time))

	_, ok = cache.Get("SPY")
	require.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Put("TQQQ", cacheCandles(1), 20*time.Millisecond))
	time.Sleep(60 * time.Millisecond)

	_, ok := cache.Get("TQQQ")
	require.False(t, ok)
}

func TestCachedSource_FetchesOnce(t *testing.T) {
	cache, err := OpenCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	upstream := &staticSource{symbol: "TQQQ", candles: cacheCandles(5)}
	src := WithCache(upstream, cache, time.Minute, testLogger(t))
	require.Equal(t, "TQQQ", src.Symbol())

	first, err := src.Candles(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 5)
	require.Equal(t, 1, upstream.calls)

	second, err := src.Candles(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 5)
	require.Equal(t, 1, upstream.calls, "second read must hit the cache")
}
