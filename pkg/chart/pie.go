package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
)

// Pie draws white-bordered wedges clockwise from 12 o'clock, with
// percentage labels inside the ring, category labels outside it, and
// the running total in a central hole. The plotting library cannot
// place labels at two radii or text in the hole, so this renderer
// draws directly.
type Pie struct {
	Data  config.Series
	Fonts *fonts.Library
}

// Label radii and the hole, as fractions of the pie radius.
const (
	piePctRadius   = 0.85
	pieLabelRadius = 1.1
	pieHoleRadius  = 0.3
)

func (p *Pie) Render(width, height int) (image.Image, error) {
	if len(p.Data.Values) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "pie chart has no data points")
	}
	var total float64
	for _, v := range p.Data.Values {
		total += v
	}
	if total <= 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "pie chart values must sum above zero")
	}

	pctFace, err := p.Fonts.Face(fontPixels(piePctFontSize), fonts.Bold)
	if err != nil {
		return nil, err
	}
	labelFace, err := p.Fonts.Face(fontPixels(pieLabelFontSize), fonts.Medium)
	if err != nil {
		return nil, err
	}
	totalFace, err := p.Fonts.Face(fontPixels(pieTotalFontSize), fonts.Bold)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(ColorBackground)
	dc.Clear()

	cx := float64(width) / 2
	cy := float64(height) / 2
	// Category labels sit outside the wedges, so the pie takes 72% of
	// the shorter canvas edge and leaves the rest for label text.
	radius := math.Min(float64(width), float64(height)) * 0.36

	angle := -math.Pi / 2
	for i, v := range p.Data.Values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, angle, angle+sweep)
		dc.ClosePath()
		dc.SetColor(WithAlpha(PalettePastel.Color(i), 230))
		dc.FillPreserve()
		dc.SetColor(color.White)
		dc.SetLineWidth(2)
		dc.Stroke()

		angle += sweep
	}

	dc.DrawCircle(cx, cy, radius*pieHoleRadius)
	dc.SetColor(color.White)
	dc.Fill()

	pcts := shares(p.Data.Values)
	angle = -math.Pi / 2
	for i, v := range p.Data.Values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		mid := angle + sweep/2
		angle += sweep

		dc.SetFontFace(pctFace)
		dc.SetColor(color.White)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", pcts[i]),
			cx+math.Cos(mid)*radius*piePctRadius,
			cy+math.Sin(mid)*radius*piePctRadius, 0.5, 0.5)

		// Anchor category labels away from the pie on their side.
		ax := 0.5
		switch {
		case math.Cos(mid) > 0.08:
			ax = 0
		case math.Cos(mid) < -0.08:
			ax = 1
		}
		dc.SetFontFace(labelFace)
		dc.SetColor(MustHex(ColorTextPrimary))
		dc.DrawStringAnchored(p.Data.Labels[i],
			cx+math.Cos(mid)*radius*pieLabelRadius,
			cy+math.Sin(mid)*radius*pieLabelRadius, ax, 0.5)
	}

	dc.SetFontFace(totalFace)
	dc.SetColor(MustHex(ColorTextPrimary))
	lineGap := fontPixels(pieTotalFontSize) * 1.25
	dc.DrawStringAnchored("Total", cx, cy-lineGap/2, 0.5, 0.5)
	dc.DrawStringAnchored(formatValue(total), cx, cy+lineGap/2, 0.5, 0.5)

	return dc.Image(), nil
}
