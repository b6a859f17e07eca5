package dashboard

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/dashgen/pkg/chart"
	"github.com/matzehuels/dashgen/pkg/layout"
)

// PanelKey identifies one rounded-rectangle raster in the panel cache.
type PanelKey struct {
	W, H   int
	Radius int
	Fill   string // #RRGGBB, or #RRGGBBAA when translucent
}

// roundedPanel returns a memoized w×h rounded rectangle filled with the
// given color on a transparent background.
func (c *Composer) roundedPanel(w, h, radius int, fill color.NRGBA) (image.Image, error) {
	key := PanelKey{W: w, H: h, Radius: radius, Fill: fillHex(fill)}
	return c.panels.Get(key, func() (image.Image, error) {
		dc := gg.NewContext(w, h)
		dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(radius))
		dc.SetColor(fill)
		dc.Fill()
		return dc.Image(), nil
	})
}

// cardShadow renders the blurred drop shadow for a w×h card. The raster
// is padded by the blur radius on every side so the blur has room to
// spread; callers offset their draw position by the same padding.
func (c *Composer) cardShadow(w, h int) (image.Image, error) {
	rect, err := c.roundedPanel(w, h, layout.CardRadius, color.NRGBA{A: layout.ShadowAlpha})
	if err != nil {
		return nil, err
	}
	pad := layout.ShadowBlur
	base := imaging.New(w+2*pad, h+2*pad, color.NRGBA{})
	base = imaging.Paste(base, rect, image.Pt(pad, pad))
	return imaging.Blur(base, float64(layout.ShadowBlur)/2), nil
}

func fillHex(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func nrgbaOf(hex string) color.NRGBA {
	rgba := chart.MustHex(hex)
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}
