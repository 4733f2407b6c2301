package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsnap/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func buildCandles(start time.Time, n int) []core.Candle {
	candles := make([]core.Candle, n)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = core.Candle{
			Symbol: "TEST",
			Time:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price + 2,
			Low:    price - 2,
			Close:  price + 1,
			Volume: 1000,
		}
	}
	return candles
}

func TestPrepare_SortsAndReindexes(t *testing.T) {
	candles := buildCandles(day(2023, time.March, 1), 30)

	// Feed the bars in reverse to prove order does not matter
	reversed := make([]core.Candle, len(candles))
	for i, c := range candles {
		reversed[len(candles)-1-i] = c
	}

	s, err := Prepare("TEST", reversed, 10, 100)
	require.NoError(t, err)
	require.Equal(t, len(candles), s.Len())

	for i := 1; i < s.Len(); i++ {
		require.True(t, s.Candles[i-1].Time.Before(s.Candles[i].Time))
	}
	require.Equal(t, candles[0].Time, s.Candles[0].Time)
}

func TestPrepare_MovingAverage(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	candles := make([]core.Candle, len(closes))
	for i, c := range closes {
		candles[i] = core.Candle{Time: day(2023, time.June, 1+i), Open: c, High: c, Low: c, Close: c}
	}

	s, err := Prepare("TEST", candles, 3, 100)
	require.NoError(t, err)

	_, ok := s.MA(0)
	require.False(t, ok)
	_, ok = s.MA(1)
	require.False(t, ok)

	for i, want := range map[int]float64{2: 2, 3: 3, 4: 4} {
		got, ok := s.MA(i)
		require.True(t, ok)
		require.InDelta(t, want, got, 1e-9)
	}
}

func TestPrepare_MovingAverageUndefinedWhenShort(t *testing.T) {
	s, err := Prepare("TEST", buildCandles(day(2023, time.June, 1), 10), 150, 100)
	require.NoError(t, err)

	for i := 0; i < s.Len(); i++ {
		_, ok := s.MA(i)
		require.False(t, ok)
	}
	require.Nil(t, ClassifyTrend(s))
}

func TestPrepare_CutoffFilter(t *testing.T) {
	// Daily bars from 2022-01-01 through 2024-01-01
	candles := buildCandles(day(2022, time.January, 1), 731)
	require.Equal(t, day(2024, time.January, 1), candles[730].Time)

	s, err := Prepare("TEST", candles, 10, 1)
	require.NoError(t, err)

	// Cutoff is 2023-01-01; only bars strictly after it survive
	require.Equal(t, 365, s.Len())
	require.Equal(t, day(2023, time.January, 2), s.Candles[0].Time)
	require.Equal(t, day(2024, time.January, 1), s.Last().Time)
}

func TestPrepare_GapsAbsorbed(t *testing.T) {
	// Bars with a two-week hole in the middle
	candles := append(buildCandles(day(2023, time.May, 1), 10),
		buildCandles(day(2023, time.June, 1), 10)...)

	s, err := Prepare("TEST", candles, 5, 100)
	require.NoError(t, err)
	require.Equal(t, 20, s.Len())

	// The plot index is the slice position, so the axis stays dense
	// regardless of the calendar hole
	for i := 1; i < s.Len(); i++ {
		require.True(t, s.Candles[i-1].Time.Before(s.Candles[i].Time))
	}
}

func TestPrepare_DuplicateDatesDropped(t *testing.T) {
	candles := buildCandles(day(2023, time.May, 1), 5)
	dup := candles[2]
	dup.Close = 999
	candles = append(candles, dup)

	s, err := Prepare("TEST", candles, 2, 100)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())

	// First occurrence wins
	require.NotEqual(t, 999.0, s.Candles[2].Close)
}

func TestPrepare_EmptyInput(t *testing.T) {
	_, err := Prepare("TEST", nil, 150, 1)
	require.ErrorIs(t, err, ErrNoData)
}

func TestPrepare_NothingAfterCutoff(t *testing.T) {
	// A zero-length horizon excludes even the newest bar
	_, err := Prepare("TEST", buildCandles(day(2023, time.May, 1), 10), 5, 0)
	require.ErrorIs(t, err, ErrNoData)
}
