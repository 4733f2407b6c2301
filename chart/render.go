package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	wchart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/raykavin/chartsnap/series"
)

// ErrEmptySeries is returned when a scene holds no bars to draw
var ErrEmptySeries = errors.New("empty series")

// Canvas geometry. The price pane takes three quarters of the inner
// height, the volume pane the rest, sharing the x-axis.
const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 20
	marginBottom = 55
	paneGap      = 12

	bodyWidth = 0.6 // candle body width in plot units; volume bars take the full unit

	symbolFontSize = 16
	labelFontSize  = 11
	trendFontSize  = 10
)

// Render draws the scene into a single PNG written to w. The image is
// composed fully in memory; nothing reaches w before the scene is
// complete.
func Render(scene Scene, w io.Writer) error {
	if scene.Series == nil || scene.Series.Len() == 0 {
		return ErrEmptySeries
	}

	width, height := scene.Width, scene.Height
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}

	r, err := wchart.PNG(width, height)
	if err != nil {
		return err
	}

	font, err := wchart.GetDefaultFont()
	if err != nil {
		return err
	}
	r.SetFont(font)

	fillRect(r, 0, 0, width, height, bgColor)

	g := newGeometry(scene, width, height)

	drawGrid(r, scene, g)
	drawCandles(r, scene, g)
	drawVolume(r, scene, g)
	drawOverlay(r, scene, g)
	drawAxisLabels(r, scene, g)
	drawAnnotation(r, scene, g)

	return r.Save(w)
}

// geometry holds the resolved pixel layout and value scales of a scene
type geometry struct {
	plotLeft, plotRight   int
	priceTop, priceBottom int
	volTop, volBottom     int
	unit                  float64
	priceMin, priceMax    float64
	volMax                float64
}

func newGeometry(scene Scene, width, height int) geometry {
	g := geometry{
		plotLeft:  marginLeft,
		plotRight: width - marginRight,
	}

	innerH := height - marginTop - marginBottom - paneGap
	priceH := innerH * 3 / 4
	g.priceTop = marginTop
	g.priceBottom = marginTop + priceH
	g.volTop = g.priceBottom + paneGap
	g.volBottom = g.volTop + (innerH - priceH)

	n := scene.Series.Len()
	g.unit = float64(g.plotRight-g.plotLeft) / float64(n)

	g.priceMin, g.priceMax = math.Inf(1), math.Inf(-1)
	for i, c := range scene.Series.Candles {
		g.priceMin = math.Min(g.priceMin, c.Low)
		g.priceMax = math.Max(g.priceMax, c.High)
		g.volMax = math.Max(g.volMax, c.Volume)
		if ma, ok := scene.Series.MA(i); ok {
			g.priceMin = math.Min(g.priceMin, ma)
			g.priceMax = math.Max(g.priceMax, ma)
		}
	}

	pad := (g.priceMax - g.priceMin) * 0.05
	if pad == 0 {
		pad = math.Max(g.priceMax*0.01, 1)
	}
	g.priceMin -= pad
	g.priceMax += pad

	if g.volMax == 0 {
		g.volMax = 1
	}
	g.volMax *= 1.05

	return g
}

// x returns the pixel center of the bar at the given plot index
func (g geometry) x(i int) int {
	return g.plotLeft + int((float64(i)+0.5)*g.unit)
}

func (g geometry) yPrice(v float64) int {
	scale := float64(g.priceBottom-g.priceTop) / (g.priceMax - g.priceMin)
	return g.priceBottom - int((v-g.priceMin)*scale)
}

func (g geometry) yVol(v float64) int {
	scale := float64(g.volBottom-g.volTop) / g.volMax
	return g.volBottom - int(v*scale)
}

func drawGrid(r wchart.Renderer, scene Scene, g geometry) {
	grid := gridColor.WithAlpha(110)

	r.SetFontColor(textColor)
	r.SetFontSize(labelFontSize)

	for _, v := range niceTicks(g.priceMin, g.priceMax, 6) {
		y := g.yPrice(v)
		strokeLine(r, g.plotLeft, y, g.plotRight, y, grid, 1)
		label := formatPrice(v)
		box := r.MeasureText(label)
		r.Text(label, g.plotLeft-8-box.Width(), y+4)
	}

	for _, v := range niceTicks(0, g.volMax, 3) {
		if v == 0 {
			continue
		}
		y := g.yVol(v)
		strokeLine(r, g.plotLeft, y, g.plotRight, y, grid, 1)
		label := formatVolume(v)
		box := r.MeasureText(label)
		r.Text(label, g.plotLeft-8-box.Width(), y+4)
	}

	// Vertical gridlines at the month ticks, spanning both panes
	for _, tick := range scene.Ticks {
		x := g.x(tick.Index)
		strokeLine(r, x, g.priceTop, x, g.priceBottom, grid, 1)
		strokeLine(r, x, g.volTop, x, g.volBottom, grid, 1)
	}

	// Baseline under the volume pane
	strokeLine(r, g.plotLeft, g.volBottom, g.plotRight, g.volBottom, gridColor, 1)
}

func drawCandles(r wchart.Renderer, scene Scene, g geometry) {
	drawGroup(r, scene.Up, upColor, g)
	drawGroup(r, scene.Down, downColor, g)
}

func drawGroup(r wchart.Renderer, group series.Group, color drawing.Color, g geometry) {
	half := int(g.unit * bodyWidth / 2)
	if half < 1 {
		half = 1
	}

	for gi, c := range group.Candles {
		x := g.x(group.Indexes[gi])

		strokeLine(r, x, g.yPrice(c.Low), x, g.yPrice(c.High), color, 1)

		top := g.yPrice(math.Max(c.Open, c.Close))
		bottom := g.yPrice(math.Min(c.Open, c.Close))
		if bottom == top {
			bottom = top + 1 // dojis still get a visible body
		}
		fillRect(r, x-half, top, x+half, bottom, color)
	}
}

func drawVolume(r wchart.Renderer, scene Scene, g geometry) {
	drawVolumeGroup(r, scene.Up, upColor, g)
	drawVolumeGroup(r, scene.Down, downColor, g)
}

func drawVolumeGroup(r wchart.Renderer, group series.Group, color drawing.Color, g geometry) {
	// Full unit width so adjacent volume bars touch
	half := g.unit / 2
	if half < 1 {
		half = 1
	}

	for gi, c := range group.Candles {
		if c.Volume <= 0 {
			continue
		}
		x := g.x(group.Indexes[gi])
		fillRect(r, x-int(half), g.yVol(c.Volume), x+int(math.Ceil(half)), g.volBottom, color)
	}
}

// drawOverlay strokes the moving average line, skipping the leading
// positions where the average is undefined
func drawOverlay(r wchart.Renderer, scene Scene, g geometry) {
	started := false
	for i := range scene.Series.Candles {
		ma, ok := scene.Series.MA(i)
		if !ok {
			continue
		}
		if !started {
			r.MoveTo(g.x(i), g.yPrice(ma))
			started = true
			continue
		}
		r.LineTo(g.x(i), g.yPrice(ma))
	}

	if !started {
		return
	}

	r.SetStrokeColor(smaColor)
	r.SetStrokeWidth(1.5)
	r.Stroke()
}

func drawAxisLabels(r wchart.Renderer, scene Scene, g geometry) {
	r.SetFontColor(textColor)
	r.SetFontSize(labelFontSize)

	for _, tick := range scene.Ticks {
		x := g.x(tick.Index)

		box := r.MeasureText(tick.Month)
		r.Text(tick.Month, x-box.Width()/2, g.volBottom+18)

		if tick.Year != "" {
			box = r.MeasureText(tick.Year)
			r.Text(tick.Year, x-box.Width()/2, g.volBottom+33)
		}
	}
}

// drawAnnotation places the symbol name at the top left of the price
// pane, with the trend status text and indicator dot beneath it when a
// trend classification exists
func drawAnnotation(r wchart.Renderer, scene Scene, g geometry) {
	x := g.plotLeft + (g.plotRight-g.plotLeft)/50
	y := g.priceTop + 26

	r.SetFontColor(textColor)
	r.SetFontSize(symbolFontSize)
	r.Text(scene.Symbol, x, y)

	if scene.Trend == nil {
		return
	}

	y += 22
	r.SetFontSize(trendFontSize)
	r.Text(scene.Trend.Label, x, y)

	box := r.MeasureText(scene.Trend.Label)
	r.SetFillColor(trendColor(scene.Trend.Trend))
	r.Circle(4, x+box.Width()+10, y-4)
	r.Fill()
}

func fillRect(r wchart.Renderer, x0, y0, x1, y1 int, color drawing.Color) {
	r.SetFillColor(color)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

func strokeLine(r wchart.Renderer, x0, y0, x1, y1 int, color drawing.Color, width float64) {
	r.SetStrokeColor(color)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// niceTicks returns rounded tick values covering [min, max] with
// roughly the requested count
func niceTicks(min, max float64, count int) []float64 {
	if count < 1 || max <= min {
		return nil
	}

	step := niceStep((max - min) / float64(count))
	var ticks []float64
	for v := math.Ceil(min/step) * step; v <= max; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// niceStep rounds a raw step up to the nearest 1, 2 or 5 times a power
// of ten
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatPrice(v float64) string {
	switch {
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func formatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
