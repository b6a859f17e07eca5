package chart

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/dashgen/pkg/errors"
)

// renderPNG runs a plotting-backend render into memory and decodes the
// resulting raster. The backend never touches the filesystem.
func renderPNG(render func(gochart.RendererProvider, io.Writer) error) (image.Image, error) {
	var buf bytes.Buffer
	if err := render(gochart.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "chart backend failed")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "cannot decode chart raster")
	}
	return img, nil
}

// categoryTicks places one labeled tick per category slot.
func categoryTicks(labels []string) []gochart.Tick {
	ticks := make([]gochart.Tick, len(labels))
	for i, label := range labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: label}
	}
	return ticks
}

// valueTicks labels round values between lo and hi.
func valueTicks(lo, hi float64) []gochart.Tick {
	vals := niceTicks(lo, hi, 5)
	ticks := make([]gochart.Tick, len(vals))
	for i, v := range vals {
		ticks[i] = gochart.Tick{Value: v, Label: formatValue(v)}
	}
	return ticks
}

// drawCenteredLabel places bold label text centered on x with its
// baseline at y.
func drawCenteredLabel(r gochart.Renderer, label string, x, y int, font *truetype.Font, defaults gochart.Style) {
	style := gochart.Style{
		Font:      font,
		FontSize:  valueLabelSize,
		FontColor: hexStroke(ColorTextSecondary, 255),
	}.InheritFrom(defaults)
	style.WriteTextOptionsToRenderer(r)
	tb := r.MeasureText(label)
	r.Text(label, x-tb.Width()/2, y)
}

// pointMarkers draws white-edged dots and a value label above every
// point. Drawn as a chart element so the markers paint over the series
// strokes and fills.
func pointMarkers(values []float64, xr, yr gochart.ContinuousRange, dot drawing.Color, labelFont *truetype.Font) gochart.Renderable {
	offset := span(values) * 0.05
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		xr.Domain = canvasBox.Width()
		yr.Domain = canvasBox.Height()

		for i, v := range values {
			x := canvasBox.Left + xr.Translate(float64(i))
			y := canvasBox.Bottom - yr.Translate(v)

			r.SetFillColor(dot)
			r.SetStrokeColor(gochart.ColorWhite)
			r.SetStrokeWidth(2.0)
			r.Circle(4.0, x, y)
			r.FillStroke()

			drawCenteredLabel(r, formatValue(v), x, canvasBox.Bottom-yr.Translate(v+offset), labelFont, defaults)
		}
	}
}

// legendEntry is one swatch row in a drawn legend.
type legendEntry struct {
	label  string
	color  drawing.Color
	dashed bool
}

// legendBox frames swatch rows in the plot's upper left. The plotting
// library's built-in legend lists unnamed series too, so charts that
// need a legend draw their own.
func legendBox(entries []legendEntry, font *truetype.Font) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		textStyle := gochart.Style{
			Font:      font,
			FontSize:  legendFontSize,
			FontColor: hexStroke(ColorTextPrimary, 255),
		}.InheritFrom(defaults)
		textStyle.WriteTextOptionsToRenderer(r)

		const (
			pad    = 8
			swatch = 18
			gap    = 6
			rowGap = 6
		)
		maxWidth, rowHeight := 0, 10
		for _, e := range entries {
			tb := r.MeasureText(e.label)
			if tb.Width() > maxWidth {
				maxWidth = tb.Width()
			}
			if tb.Height() > rowHeight {
				rowHeight = tb.Height()
			}
		}

		box := gochart.Box{
			Top:  canvasBox.Top + 12,
			Left: canvasBox.Left + 12,
		}
		box.Right = box.Left + pad*2 + swatch + gap + maxWidth
		box.Bottom = box.Top + pad*2 + len(entries)*rowHeight + (len(entries)-1)*rowGap

		gochart.Draw.Box(r, box, gochart.Style{
			FillColor:   drawing.Color{R: 255, G: 255, B: 255, A: 230},
			StrokeColor: hexStroke(ColorBorder, 255),
			StrokeWidth: 1.0,
		})

		y := box.Top + pad
		for _, e := range entries {
			cy := y + rowHeight/2
			r.SetStrokeColor(e.color)
			r.SetStrokeWidth(2.0)
			if e.dashed {
				r.SetStrokeDashArray([]float64{4, 3})
			}
			r.MoveTo(box.Left+pad, cy)
			r.LineTo(box.Left+pad+swatch, cy)
			r.Stroke()
			if e.dashed {
				r.SetStrokeDashArray(nil)
			}

			textStyle.WriteTextOptionsToRenderer(r)
			r.Text(e.label, box.Left+pad+swatch+gap, y+rowHeight-2)
			y += rowHeight + rowGap
		}
	}
}

// horizontalGridLines rules light lines across the plot at each tick.
func horizontalGridLines(r gochart.Renderer, canvasBox gochart.Box, yr gochart.ContinuousRange, ticks []gochart.Tick) {
	g := gridStyle()
	r.SetStrokeColor(g.StrokeColor)
	r.SetStrokeWidth(g.StrokeWidth)
	for _, t := range ticks {
		y := canvasBox.Bottom - yr.Translate(t.Value)
		if y <= canvasBox.Top || y >= canvasBox.Bottom {
			continue
		}
		r.MoveTo(canvasBox.Left, y)
		r.LineTo(canvasBox.Right, y)
		r.Stroke()
	}
}

// drawLeftAxis draws a spine, tick marks, and right-aligned tick labels
// along the plot's left edge.
func drawLeftAxis(r gochart.Renderer, canvasBox gochart.Box, yr gochart.ContinuousRange, ticks []gochart.Tick, font *truetype.Font, defaults gochart.Style) {
	spine := hexStroke(ColorBorder, 255)
	r.SetStrokeColor(spine)
	r.SetStrokeWidth(0.8)
	r.MoveTo(canvasBox.Left, canvasBox.Top)
	r.LineTo(canvasBox.Left, canvasBox.Bottom)
	r.Stroke()

	tickStyle := gochart.Style{
		Font:      font,
		FontSize:  tickFontSize,
		FontColor: hexStroke(ColorTextSecondary, 255),
	}.InheritFrom(defaults)

	for _, t := range ticks {
		y := canvasBox.Bottom - yr.Translate(t.Value)
		r.SetStrokeColor(spine)
		r.SetStrokeWidth(0.8)
		r.MoveTo(canvasBox.Left-4, y)
		r.LineTo(canvasBox.Left, y)
		r.Stroke()

		tickStyle.WriteTextOptionsToRenderer(r)
		tb := r.MeasureText(t.Label)
		r.Text(t.Label, canvasBox.Left-8-tb.Width(), y+tb.Height()/2)
	}
}

// axisTitles writes the x title centered under the plot and the y title
// rotated along its left edge.
func axisTitles(r gochart.Renderer, canvasBox gochart.Box, xTitle, yTitle string, font *truetype.Font, defaults gochart.Style) {
	style := gochart.Style{
		Font:      font,
		FontSize:  axisTitleFontSize,
		FontColor: hexStroke(ColorTextPrimary, 255),
	}.InheritFrom(defaults)
	style.WriteTextOptionsToRenderer(r)

	tb := r.MeasureText(xTitle)
	r.Text(xTitle, canvasBox.Left+(canvasBox.Width()-tb.Width())/2, canvasBox.Bottom+34)

	tb = r.MeasureText(yTitle)
	x := canvasBox.Left - 64
	if x < 16 {
		x = 16
	}
	r.SetTextRotation(-math.Pi / 2)
	r.Text(yTitle, x, canvasBox.Top+(canvasBox.Height()+tb.Width())/2)
	r.ClearTextRotation()
}

// scaledBarGeometry mirrors the plotting library's bar sizing: when the
// requested bars overflow the plot, bar width shrinks while spacing
// holds.
func scaledBarGeometry(count, barWidth, spacing, canvasWidth int) (int, int) {
	total := count * (barWidth + spacing)
	if total > canvasWidth {
		less := canvasWidth - count*spacing
		if less > 0 {
			barWidth = int(math.Floor(float64(less) / float64(count)))
		}
	}
	return barWidth, spacing
}

// barDecorations rules the grid, draws the left axis, labels each bar,
// and titles both axes. The plotting library's bar chart renders its
// value axis on the right and has no grid or axis titles, so the bar
// renderer supplies them as an element.
func barDecorations(values []float64, yr gochart.ContinuousRange, ticks []gochart.Tick, barWidth, barSpacing int, labelFont, axisFont *truetype.Font) gochart.Renderable {
	offset := span(values) * 0.02
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		yr.Domain = canvasBox.Height()

		horizontalGridLines(r, canvasBox, yr, ticks)
		drawLeftAxis(r, canvasBox, yr, ticks, axisFont, defaults)

		width, spacing := scaledBarGeometry(len(values), barWidth, barSpacing, canvasBox.Width())
		x := canvasBox.Left
		for _, v := range values {
			cx := x + spacing/2 + width/2
			drawCenteredLabel(r, formatValue(v), cx, canvasBox.Bottom-yr.Translate(v+offset), labelFont, defaults)
			x += width + spacing
		}

		axisTitles(r, canvasBox, "Category", "Value", axisFont, defaults)
	}
}
