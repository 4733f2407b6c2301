// Package chart composes prepared series data into a dual-pane
// candlestick and volume scene and renders it to a PNG image.
package chart

import "github.com/raykavin/chartsnap/series"

const (
	defaultWidth  = 1200
	defaultHeight = 800
)

// Scene is an immutable description of one chart: the prepared series,
// its up/down partition, the axis ticks and the optional trend
// annotation. A Scene carries no drawing state; rendering it is a pure
// function of its fields.
type Scene struct {
	Symbol string
	Series *series.Series
	Up     series.Group
	Down   series.Group
	Ticks  []series.Tick
	Trend  *series.TrendStatus

	Width  int
	Height int
}

// NewScene bundles the pipeline outputs into a scene with the default
// canvas geometry
func NewScene(symbol string, s *series.Series, up, down series.Group,
	ticks []series.Tick, trend *series.TrendStatus) Scene {

	return Scene{
		Symbol: symbol,
		Series: s,
		Up:     up,
		Down:   down,
		Ticks:  ticks,
		Trend:  trend,
		Width:  defaultWidth,
		Height: defaultHeight,
	}
}

// Compose runs the classification stages on a prepared series and
// returns the complete scene
func Compose(s *series.Series) Scene {
	up, down := series.Classify(s)
	return NewScene(s.Symbol, s, up, down, series.MonthTicks(s), series.ClassifyTrend(s))
}
