// Package series implements the data-to-visual transform pipeline:
// preparation, up/down classification, axis tick placement and trend
// classification of an OHLCV bar sequence.
package series

import (
	"errors"
	"sort"
	"time"

	"github.com/StudioSol/set"
	"github.com/markcheno/go-talib"
	"github.com/samber/lo"

	"github.com/raykavin/chartsnap/core"
)

const (
	// DefaultWindow is the default moving average window size
	DefaultWindow = 150

	// DefaultYears is the default lookback horizon in years
	DefaultYears = 1.0

	hoursPerYear = 365 * 24
)

// ErrNoData is returned when there are no bars to prepare,
// or none survive the lookback filter
var ErrNoData = errors.New("no bars in series")

// Series is a prepared bar sequence: sorted, unique by calendar date,
// truncated to the lookback horizon and reindexed to a contiguous
// plotting axis. The plot index of a bar is its slice position.
// A Series is immutable once produced.
type Series struct {
	Symbol  string
	Candles []core.Candle
	Window  int

	sma      core.Series[float64]
	smaValid []bool
}

// Prepare builds a Series from raw bars in any date order.
// The moving average is computed over the full history before the
// lookback filter is applied, so bars near the start of the retained
// range still carry a defined average when enough history precedes them.
func Prepare(symbol string, candles []core.Candle, window int, years float64) (*Series, error) {
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	if window <= 0 {
		window = DefaultWindow
	}

	sorted := make([]core.Candle, len(candles))
	copy(sorted, candles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	sorted = dedupeByDate(sorted)

	closes := lo.Map(sorted, func(c core.Candle, _ int) float64 { return c.Close })

	sma := make([]float64, len(sorted))
	valid := make([]bool, len(sorted))
	if len(closes) >= window {
		sma = talib.Sma(closes, window)
		for i := window - 1; i < len(valid); i++ {
			valid[i] = true
		}
	}

	// Lookback horizon measured in hours to keep fractional years exact
	cutoff := sorted[len(sorted)-1].Time.Add(-time.Duration(years * hoursPerYear * float64(time.Hour)))
	start := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Time.After(cutoff)
	})

	if start >= len(sorted) {
		return nil, ErrNoData
	}

	return &Series{
		Symbol:   symbol,
		Candles:  sorted[start:],
		Window:   window,
		sma:      sma[start:],
		smaValid: valid[start:],
	}, nil
}

// dedupeByDate drops bars whose calendar date was already seen,
// keeping the first occurrence
func dedupeByDate(candles []core.Candle) []core.Candle {
	seen := set.NewLinkedHashSetINT64()
	unique := candles[:0]
	for _, c := range candles {
		day := c.Day().Unix()
		if seen.InArray(day) {
			continue
		}
		seen.Add(day)
		unique = append(unique, c)
	}
	return unique
}

// Len returns the number of bars in the prepared series
func (s *Series) Len() int {
	return len(s.Candles)
}

// Last returns the most recent bar of the series
func (s *Series) Last() core.Candle {
	return s.Candles[len(s.Candles)-1]
}

// MA returns the moving average at the given plot index.
// The second return value reports whether the average is defined there;
// positions with fewer than Window bars of history have no average.
func (s *Series) MA(i int) (float64, bool) {
	if i < 0 || i >= s.sma.Length() || !s.smaValid[i] {
		return 0, false
	}
	return s.sma[i], true
}

// LastMA returns the moving average of the most recent bar
func (s *Series) LastMA() (float64, bool) {
	if s.sma.Length() == 0 || !s.smaValid[len(s.smaValid)-1] {
		return 0, false
	}
	return s.sma.Last(0), true
}
