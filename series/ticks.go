package series

import "time"

// maxUnlabeledStart is the deepest plot index the first tick may sit at
// before a tick is forced at index 0, so the chart never starts with a
// long unlabeled stretch.
const maxUnlabeledStart = 20

// Tick is one x-axis label position. Month is the three-letter month
// abbreviation; Year is the four-digit year, set only when the label
// should render as a two-line month+year tick.
type Tick struct {
	Index int
	Month string
	Year  string
}

// MonthTicks derives axis ticks at month boundaries: a tick is placed
// wherever the month changes between consecutive bars, which adapts
// tick density to the trading calendar instead of a fixed interval.
//
// A tick shows its year when the bar's month is January and either the
// tick sits at index 0 or the previous bar belongs to another year.
func MonthTicks(s *Series) []Tick {
	if len(s.Candles) == 0 {
		return nil
	}

	var ticks []Tick
	for i := 1; i < len(s.Candles); i++ {
		if s.Candles[i].Time.Month() != s.Candles[i-1].Time.Month() {
			ticks = append(ticks, makeTick(s, i))
		}
	}

	if len(ticks) == 0 || ticks[0].Index > maxUnlabeledStart {
		ticks = append([]Tick{makeTick(s, 0)}, ticks...)
	}

	return ticks
}

func makeTick(s *Series, i int) Tick {
	t := s.Candles[i].Time
	tick := Tick{Index: i, Month: t.Format("Jan")}

	if t.Month() == time.January && (i == 0 || s.Candles[i-1].Time.Year() != t.Year()) {
		tick.Year = t.Format("2006")
	}

	return tick
}
