package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/raykavin/chartsnap/series"
)

// Fixed dark palette shared by every rendered chart
var (
	bgColor   = drawing.ColorFromHex("0f0f0f")
	gridColor = drawing.ColorFromHex("868686")
	textColor = drawing.ColorFromHex("868686")
	upColor   = drawing.ColorFromHex("15ff25")
	downColor = drawing.ColorFromHex("ff8486")
	smaColor  = drawing.ColorFromHex("e2e2e2")
	onMAColor = drawing.ColorFromHex("ffff00")
)

// trendColor maps a trend status to its indicator color: below shares
// the down color, above the up color, on gets a neutral accent
func trendColor(t series.Trend) drawing.Color {
	switch t {
	case series.TrendBelow:
		return downColor
	case series.TrendOn:
		return onMAColor
	default:
		return upColor
	}
}
