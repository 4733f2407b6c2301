package series

import "fmt"

// Trend classifies the latest close relative to the moving average
type Trend int8

const (
	TrendBelow Trend = iota
	TrendOn
	TrendAbove
)

// onBand is the relative distance from the moving average, inclusive on
// both sides, inside which the close counts as sitting on the average.
const onBand = 0.005

// TrendStatus is the displayable trend classification of a series
type TrendStatus struct {
	Trend Trend
	Label string
}

func (t Trend) String() string {
	switch t {
	case TrendBelow:
		return "below"
	case TrendOn:
		return "on"
	case TrendAbove:
		return "above"
	default:
		return "unknown"
	}
}

// ClassifyTrend compares the latest close to the latest moving average
// value. It returns nil when the average is undefined, in which case
// the chart carries no trend annotation.
func ClassifyTrend(s *Series) *TrendStatus {
	ma, ok := s.LastMA()
	if !ok {
		return nil
	}

	diff := (s.Last().Close - ma) / ma

	var trend Trend
	var word string
	switch {
	case diff < -onBand:
		trend, word = TrendBelow, "Below"
	case diff > onBand:
		trend, word = TrendAbove, "Above"
	default:
		trend, word = TrendOn, "On"
	}

	return &TrendStatus{
		Trend: trend,
		Label: fmt.Sprintf("%s (%d) SMA", word, s.Window),
	}
}
