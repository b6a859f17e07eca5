package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// =============================================================================
// Palettes
// =============================================================================

// Palette is an ordered set of brand colors, indexed cyclically.
type Palette []string

// Brand palettes. Which palette a chart draws with depends on its type:
// stacked bars resolve category names first and fall back to primary,
// line and bar use secondary, area uses gradient, pie uses pastel.
var (
	PalettePrimary   = Palette{"#1F3B4D", "#26547C", "#5C88B0", "#A3BFD9", "#D4E4F1"}
	PaletteSecondary = Palette{"#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4"}
	PaletteGradient  = Palette{"#667EEA", "#764BA2", "#F093FB", "#F5576C", "#4FACFE"}
	PalettePastel    = Palette{"#FFB3BA", "#BAFFC9", "#BAE1FF", "#FFFFBA", "#FFB3F7"}
)

// categoryColors maps well-known stacked-bar category names to fixed
// brand colors. Keys are normalized: lowercased, spaces to underscores.
var categoryColors = map[string]string{
	"cbd_oil":          "#1F3B4D",
	"cbd_isolates":     "#26547C",
	"cbd_concentrates": "#5C88B0",
	"others":           "#A3BFD9",
}

// UI colors shared between the chart renderers and the dashboard
// composer.
const (
	ColorTextPrimary   = "#111827"
	ColorTextSecondary = "#6B7280"
	ColorTextLight     = "#9CA3AF"
	ColorBackground    = "#FFFFFF"
	ColorSurface       = "#F9FAFB"
	ColorBorder        = "#E5E7EB"
)

// Hex returns the i-th palette color, wrapping around the end.
func (p Palette) Hex(i int) string {
	return p[((i%len(p))+len(p))%len(p)]
}

// Color returns the i-th palette color as an opaque RGBA.
func (p Palette) Color(i int) color.RGBA {
	return MustHex(p.Hex(i))
}

// stroke returns the i-th palette color for the plotting backend.
func (p Palette) stroke(i int, alpha uint8) drawing.Color {
	c := p.Color(i)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// CategoryColor resolves a stacked-bar category name to its brand
// color. Unknown names fall back to the primary palette by position.
func CategoryColor(name string, position int) color.RGBA {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "_")
	if hex, ok := categoryColors[key]; ok {
		return MustHex(hex)
	}
	return PalettePrimary.Color(position)
}

// MustHex parses a #RRGGBB constant into an opaque color. It panics on
// malformed input, which only a bad table entry can cause.
func MustHex(hex string) color.RGBA {
	s := strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		panic(fmt.Sprintf("malformed color constant %q", hex))
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// WithAlpha copies c with the given alpha, unpremultiplied.
func WithAlpha(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// hexStroke converts a hex constant for the plotting backend.
func hexStroke(hex string, alpha uint8) drawing.Color {
	c := MustHex(hex)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: alpha}
}

// =============================================================================
// Typography and shared plotting styles
// =============================================================================

// chartDPI is the plotting backend's render DPI. The 2D backend
// converts point sizes with the same ratio so text matches across all
// five chart types.
const chartDPI = 100.0

// fontPixels converts a point size to pixels at the chart DPI.
func fontPixels(points float64) float64 {
	return points * chartDPI / 72.0
}

// Font sizes in points.
const (
	tickFontSize      = 9
	axisTitleFontSize = 11
	valueLabelSize    = 9
	legendFontSize    = 9
	segmentLabelSize  = 8
	piePctFontSize    = 10
	pieLabelFontSize  = 11
	pieTotalFontSize  = 12
)

// axisStyle renders tick labels in secondary gray over border-colored
// spines.
func axisStyle(font *truetype.Font) gochart.Style {
	return gochart.Style{
		Font:        font,
		FontSize:    tickFontSize,
		FontColor:   hexStroke(ColorTextSecondary, 255),
		StrokeColor: hexStroke(ColorBorder, 255),
		StrokeWidth: 0.8,
	}
}

// axisNameStyle renders axis titles.
func axisNameStyle(font *truetype.Font) gochart.Style {
	return gochart.Style{
		Font:      font,
		FontSize:  axisTitleFontSize,
		FontColor: hexStroke(ColorTextPrimary, 255),
	}
}

// gridStyle renders grid lines at 30% opacity.
func gridStyle() gochart.Style {
	return gochart.Style{
		StrokeColor: hexStroke(ColorBorder, 77),
		StrokeWidth: 1.0,
	}
}

// surfaceStyle fills chart backgrounds white.
func surfaceStyle(padding gochart.Box) gochart.Style {
	return gochart.Style{
		FillColor: hexStroke(ColorBackground, 255),
		Padding:   padding,
	}
}

// =============================================================================
// Ranges, ticks, and labels
// =============================================================================

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// span is the spread of the data. Value label offsets scale with it.
func span(values []float64) float64 {
	lo, hi := minMax(values)
	return hi - lo
}

// paddedRange bounds an axis around the data with a small margin below
// and headroom above for point labels. Flat data still gets a usable
// span.
func paddedRange(values []float64) (float64, float64) {
	lo, hi := minMax(values)
	if lo == hi {
		return lo - 1, hi + 1
	}
	s := hi - lo
	return lo - s*0.05, hi + s*0.15
}

// baselineRange anchors an axis at zero for bars and area fills.
func baselineRange(values []float64) (float64, float64) {
	lo, hi := minMax(values)
	if lo > 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if lo == hi {
		return 0, 1
	}
	return lo, hi + (hi-lo)*0.15
}

// niceTicks returns round tick values covering [lo, hi], aiming for
// target intervals. Steps are 1, 2, 2.5, or 5 times a power of ten.
func niceTicks(lo, hi float64, target int) []float64 {
	if target < 1 {
		target = 1
	}
	raw := (hi - lo) / float64(target)
	if raw <= 0 {
		return []float64{lo}
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5} {
		if raw <= m*mag {
			step = m * mag
			break
		}
	}
	var ticks []float64
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// formatValue renders numeric labels the way every chart draws them.
func formatValue(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// showSegmentLabel reports whether a stacked segment is tall enough,
// relative to its bar's total, to carry a readable label.
func showSegmentLabel(value, total float64) bool {
	return value > 0 && total > 0 && value/total > 0.1
}

// shares converts values to percentages of their sum.
func shares(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	out := make([]float64, len(values))
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total * 100
	}
	return out
}
