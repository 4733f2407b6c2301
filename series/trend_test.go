package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raykavin/chartsnap/core"
)

// trendSeries builds a one-bar series with a fixed moving average value
func trendSeries(close, ma float64) *Series {
	return &Series{
		Symbol:   "TEST",
		Candles:  []core.Candle{{Time: day(2024, time.March, 1), Close: close}},
		Window:   150,
		sma:      []float64{ma},
		smaValid: []bool{true},
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name  string
		close float64
		ma    float64
		want  Trend
	}{
		{"just inside band below", 100, 100.5, TrendOn},
		{"clearly below", 99, 100, TrendBelow},
		{"exactly on upper band", 100.5, 100, TrendOn},
		{"exactly on lower band", 99.5, 100, TrendOn},
		{"clearly above", 102, 100, TrendAbove},
		{"equal to average", 100, 100, TrendOn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ClassifyTrend(trendSeries(tt.close, tt.ma))
			require.NotNil(t, status)
			require.Equal(t, tt.want, status.Trend)
		})
	}
}

func TestClassifyTrend_Label(t *testing.T) {
	status := ClassifyTrend(trendSeries(110, 100))
	require.Equal(t, "Above (150) SMA", status.Label)

	status = ClassifyTrend(trendSeries(90, 100))
	require.Equal(t, "Below (150) SMA", status.Label)

	status = ClassifyTrend(trendSeries(100, 100))
	require.Equal(t, "On (150) SMA", status.Label)
}

func TestClassifyTrend_UndefinedAverage(t *testing.T) {
	s := &Series{
		Symbol:   "TEST",
		Candles:  []core.Candle{{Time: day(2024, time.March, 1), Close: 100}},
		Window:   150,
		sma:      []float64{0},
		smaValid: []bool{false},
	}
	require.Nil(t, ClassifyTrend(s))
}
