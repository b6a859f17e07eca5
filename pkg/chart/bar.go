package chart

import (
	"image"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
)

// Bar plots one value per category as white-edged bars filling 70% of
// their slot, labeled above each bar.
type Bar struct {
	Data  config.Series
	Fonts *fonts.Library
}

// Horizontal padding reserved around the plot: room for the left axis
// with its rotated title, and a matching breathing margin on the right.
const (
	barPaddingLeft  = 84
	barPaddingRight = 24
)

func (b *Bar) Render(width, height int) (image.Image, error) {
	n := len(b.Data.Values)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "bar chart has no data points")
	}

	regular, err := b.Fonts.Font(fonts.Regular)
	if err != nil {
		return nil, err
	}
	bold, err := b.Fonts.Font(fonts.Bold)
	if err != nil {
		return nil, err
	}

	yLo, yHi := baselineRange(b.Data.Values)
	ticks := valueTicks(yLo, yHi)

	// Bars fill 70% of their slot, estimated against the padded plot
	// width. The element re-derives the backend's final geometry, so
	// labels stay centered even if the backend rescales.
	slot := (width - barPaddingLeft - barPaddingRight) / n
	if slot < 10 {
		slot = 10
	}
	barWidth := slot * 7 / 10
	barSpacing := slot - barWidth

	fill := PaletteSecondary.stroke(0, 230)
	bars := make([]gochart.Value, n)
	for i, v := range b.Data.Values {
		bars[i] = gochart.Value{
			Value: v,
			Label: b.Data.Labels[i],
			Style: gochart.Style{
				FillColor:   fill,
				StrokeColor: gochart.ColorWhite,
				StrokeWidth: 1.0,
			},
		}
	}

	bc := gochart.BarChart{
		DPI:        chartDPI,
		Width:      width,
		Height:     height,
		Font:       regular,
		Background: surfaceStyle(gochart.Box{Top: 24, Left: barPaddingLeft, Right: barPaddingRight, Bottom: 48}),
		Canvas:     gochart.Style{FillColor: hexStroke(ColorBackground, 255)},
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		XAxis:      axisStyle(regular),
		// The backend would draw this axis on the right; the element
		// below draws the left axis instead.
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: yLo, Max: yHi},
		},
		Bars: bars,
		Elements: []gochart.Renderable{
			barDecorations(b.Data.Values,
				gochart.ContinuousRange{Min: yLo, Max: yHi},
				ticks, barWidth, barSpacing, bold, regular),
		},
	}

	return renderPNG(bc.Render)
}
