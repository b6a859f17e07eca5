package chart

import (
	"image"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
)

// Area plots one series as a filled region under its line, anchored at
// zero, with the same trend overlay the line chart draws.
type Area struct {
	Data  config.Series
	Fonts *fonts.Library
}

func (a *Area) Render(width, height int) (image.Image, error) {
	n := len(a.Data.Values)
	if n == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "area chart has no data points")
	}

	regular, err := a.Fonts.Font(fonts.Regular)
	if err != nil {
		return nil, err
	}
	bold, err := a.Fonts.Font(fonts.Bold)
	if err != nil {
		return nil, err
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	yLo, yHi := baselineRange(a.Data.Values)

	main := gochart.ContinuousSeries{
		XValues: xs,
		YValues: a.Data.Values,
		YAxis:   gochart.YAxisSecondary,
		Style: gochart.Style{
			StrokeColor: PaletteGradient.stroke(0, 255),
			StrokeWidth: 3.0,
			FillColor:   PaletteGradient.stroke(0, 179),
		},
	}
	series := []gochart.Series{main}

	elements := []gochart.Renderable{
		pointMarkers(a.Data.Values,
			gochart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			gochart.ContinuousRange{Min: yLo, Max: yHi},
			PaletteGradient.stroke(0, 255), bold),
	}

	if n >= 2 {
		series = append(series, &gochart.LinearRegressionSeries{
			Name:        "Trend",
			InnerSeries: main,
			YAxis:       gochart.YAxisSecondary,
			Style: gochart.Style{
				StrokeColor:     PaletteGradient.stroke(1, 179),
				StrokeWidth:     2.0,
				StrokeDashArray: []float64{5, 5},
			},
		})
		elements = append(elements, legendBox([]legendEntry{
			{label: "Trend", color: PaletteGradient.stroke(1, 179), dashed: true},
		}, regular))
	}

	ch := gochart.Chart{
		DPI:        chartDPI,
		Width:      width,
		Height:     height,
		Font:       regular,
		Background: surfaceStyle(gochart.Box{Top: 24, Left: 16, Right: 20, Bottom: 12}),
		Canvas:     gochart.Style{FillColor: hexStroke(ColorBackground, 255)},
		XAxis: gochart.XAxis{
			Name:           "Period",
			NameStyle:      axisNameStyle(regular),
			Style:          axisStyle(regular),
			Ticks:          categoryTicks(a.Data.Labels),
			Range:          &gochart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			GridMajorStyle: gridStyle(),
		},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: &gochart.ContinuousRange{Min: yLo, Max: yHi},
		},
		YAxisSecondary: gochart.YAxis{
			AxisType:       gochart.YAxisSecondary,
			Name:           "Value",
			NameStyle:      axisNameStyle(regular),
			Style:          axisStyle(regular),
			Ticks:          valueTicks(yLo, yHi),
			Range:          &gochart.ContinuousRange{Min: yLo, Max: yHi},
			GridMajorStyle: gridStyle(),
		},
		Series:   series,
		Elements: elements,
	}

	return renderPNG(ch.Render)
}
