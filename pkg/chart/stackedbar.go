package chart

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
)

// StackedBar draws one bar group per period with category segments
// stacked bottom-up on a shared absolute value axis. The plotting
// library normalizes stacked bars to the full plot height, so this
// renderer draws directly.
type StackedBar struct {
	Data  config.Stacked
	Fonts *fonts.Library
}

// Plot frame margins in pixels.
const (
	stackedMarginLeft   = 84
	stackedMarginRight  = 24
	stackedMarginTop    = 24
	stackedMarginBottom = 64
)

func (s *StackedBar) Render(width, height int) (image.Image, error) {
	if len(s.Data.Years) == 0 || len(s.Data.Categories) == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "stacked bar chart has no data")
	}

	tickFace, err := s.Fonts.Face(fontPixels(tickFontSize), fonts.Regular)
	if err != nil {
		return nil, err
	}
	titleFace, err := s.Fonts.Face(fontPixels(axisTitleFontSize), fonts.Regular)
	if err != nil {
		return nil, err
	}
	labelFace, err := s.Fonts.Face(fontPixels(segmentLabelSize), fonts.Bold)
	if err != nil {
		return nil, err
	}
	legendFace, err := s.Fonts.Face(fontPixels(legendFontSize), fonts.Regular)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(ColorBackground)
	dc.Clear()

	left := float64(stackedMarginLeft)
	top := float64(stackedMarginTop)
	right := float64(width - stackedMarginRight)
	bottom := float64(height - stackedMarginBottom)
	plotW := right - left
	plotH := bottom - top

	totals := make([]float64, len(s.Data.Years))
	var maxTotal float64
	for i, row := range s.Data.Values {
		for _, v := range row {
			totals[i] += v
		}
		if totals[i] > maxTotal {
			maxTotal = totals[i]
		}
	}
	if maxTotal <= 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "stacked bar chart values must sum above zero")
	}
	yMax := maxTotal * 1.05
	scale := plotH / yMax

	// Grid and y tick labels first, so bars paint over the grid.
	dc.SetFontFace(tickFace)
	for _, tick := range niceTicks(0, yMax, 5) {
		y := bottom - tick*scale
		if tick > 0 {
			dc.SetColor(WithAlpha(MustHex(ColorBorder), 77))
			dc.SetLineWidth(1)
			dc.DrawLine(left, y, right, y)
			dc.Stroke()
		}
		dc.SetColor(MustHex(ColorTextSecondary))
		dc.DrawStringAnchored(formatValue(tick), left-8, y, 1, 0.5)
	}

	// Left and bottom spines only.
	dc.SetColor(MustHex(ColorBorder))
	dc.SetLineWidth(0.8)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()

	slot := plotW / float64(len(s.Data.Years))
	barW := slot * 0.7
	for i, year := range s.Data.Years {
		x := left + slot*float64(i) + slot*0.15
		var cum float64
		for j, category := range s.Data.Categories {
			v := s.Data.Values[i][j]
			if v > 0 {
				segTop := bottom - (cum+v)*scale
				segH := v * scale

				dc.SetColor(WithAlpha(CategoryColor(category, j), 230))
				dc.DrawRectangle(x, segTop, barW, segH)
				dc.FillPreserve()
				dc.SetColor(color.White)
				dc.SetLineWidth(0.5)
				dc.Stroke()

				if showSegmentLabel(v, totals[i]) {
					dc.SetFontFace(labelFace)
					dc.SetColor(color.White)
					dc.DrawStringAnchored(formatValue(v), x+barW/2, segTop+segH/2, 0.5, 0.5)
				}
			}
			cum += v
		}

		dc.SetFontFace(tickFace)
		dc.SetColor(MustHex(ColorTextSecondary))
		dc.DrawStringAnchored(year, left+slot*float64(i)+slot/2, bottom+8, 0.5, 1)
	}

	dc.SetFontFace(titleFace)
	dc.SetColor(MustHex(ColorTextPrimary))
	dc.DrawStringAnchored("Year", left+plotW/2, bottom+34, 0.5, 1)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 22, top+plotH/2)
	dc.DrawStringAnchored("Market Size (USD Billion)", 22, top+plotH/2, 0.5, 0.5)
	dc.Pop()

	s.drawLegend(dc, legendFace, left+12, top+12)

	return dc.Image(), nil
}

// drawLegend frames one swatch row per category in the plot's upper
// left, matching the framed trend legends of the plotting backend.
func (s *StackedBar) drawLegend(dc *gg.Context, face font.Face, x, y float64) {
	dc.SetFontFace(face)

	const (
		pad    = 8.0
		swatch = 12.0
		gap    = 6.0
		rowGap = 6.0
	)
	var maxW, rowH float64
	for _, category := range s.Data.Categories {
		w, h := dc.MeasureString(category)
		if w > maxW {
			maxW = w
		}
		if h > rowH {
			rowH = h
		}
	}
	boxW := pad*2 + swatch + gap + maxW
	boxH := pad*2 + float64(len(s.Data.Categories))*rowH + float64(len(s.Data.Categories)-1)*rowGap

	dc.SetColor(WithAlpha(MustHex(ColorBackground), 230))
	dc.DrawRoundedRectangle(x, y, boxW, boxH, 4)
	dc.FillPreserve()
	dc.SetColor(MustHex(ColorBorder))
	dc.SetLineWidth(1)
	dc.Stroke()

	rowY := y + pad
	for j, category := range s.Data.Categories {
		dc.SetColor(CategoryColor(category, j))
		dc.DrawRectangle(x+pad, rowY+(rowH-swatch)/2, swatch, swatch)
		dc.Fill()

		dc.SetColor(MustHex(ColorTextPrimary))
		dc.DrawStringAnchored(category, x+pad+swatch+gap, rowY+rowH/2, 0, 0.5)
		rowY += rowH + rowGap
	}
}
