// Package dashboard composes the final dashboard canvas.
//
// A Composer paints one 1600×900 dashboard in a fixed stage order:
// background, card, logo, text, chart, footer, then finalization. Each
// stage draws exactly once and in order; drawing out of order is an
// internal error. Compose runs every stage for callers that don't need
// to interleave their own work between stages.
//
// Rounded-panel rasters and decoded logos are memoized in bounded caches
// so repeated renders in one process skip the expensive work. Both
// caches are injectable for tests.
package dashboard

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/dashgen/pkg/cache"
	"github.com/matzehuels/dashgen/pkg/chart"
	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
	"github.com/matzehuels/dashgen/pkg/layout"
)

// Text pixel sizes for the branding block.
const (
	titleFontSize    = 48
	subtitleFontSize = 24
	footerFontSize   = 18
)

// Default cache bounds.
const (
	defaultPanelEntries = 16
	defaultLogoEntries  = 32
)

// backgroundTop is the top stop of the canvas gradient; it fades to
// white at the bottom edge.
var backgroundTop = color.NRGBA{R: 248, G: 250, B: 252, A: 255}

// stage is the composer's position in the fixed drawing order.
type stage int

const (
	stageBackground stage = iota
	stageCard
	stageLogo
	stageText
	stageChart
	stageFooter
	stageFinalize
	stageFinalized
)

var stageNames = [...]string{
	"background", "card", "logo", "text", "chart", "footer", "finalize", "finalized",
}

func (s stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Composer paints one dashboard canvas stage by stage.
type Composer struct {
	cfg    *config.Config
	pos    layout.Positions
	fonts  *fonts.Library
	panels *cache.Memo[PanelKey, image.Image]
	logos  *cache.Memo[string, image.Image]
	logger *log.Logger

	dc    *gg.Context
	stage stage
}

// Option configures a Composer.
type Option func(*Composer)

func WithFonts(lib *fonts.Library) Option { return func(c *Composer) { c.fonts = lib } }
func WithLogger(l *log.Logger) Option     { return func(c *Composer) { c.logger = l } }
func WithPanelCache(m *cache.Memo[PanelKey, image.Image]) Option {
	return func(c *Composer) { c.panels = m }
}
func WithLogoCache(m *cache.Memo[string, image.Image]) Option {
	return func(c *Composer) { c.logos = m }
}

// NewComposer creates a composer for one dashboard. The configuration
// must be non-nil and validated.
func NewComposer(cfg *config.Config, opts ...Option) *Composer {
	c := &Composer{
		cfg:   cfg,
		pos:   layout.Compute(),
		dc:    gg.NewContext(layout.CanvasWidth, layout.CanvasHeight),
		stage: stageBackground,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fonts == nil {
		c.fonts = fonts.NewLibrary(nil)
	}
	if c.panels == nil {
		c.panels = cache.New[PanelKey, image.Image]("panels", defaultPanelEntries)
	}
	if c.logos == nil {
		c.logos = cache.New[string, image.Image]("logos", defaultLogoEntries)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Compose runs every stage in order and returns the finished canvas.
func Compose(cfg *config.Config, chartImg image.Image, opts ...Option) (image.Image, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nil dashboard configuration")
	}
	c := NewComposer(cfg, opts...)

	steps := []func() error{
		c.DrawBackground,
		c.DrawCard,
		c.DrawLogo,
		c.DrawText,
		func() error { return c.DrawChart(chartImg) },
		c.DrawFooter,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return c.Finalize()
}

// expect guards the stage order.
func (c *Composer) expect(s stage) error {
	if c.stage != s {
		return errors.New(errors.ErrCodeInternal, "composer: %s drawn out of order (next stage is %s)", s, c.stage)
	}
	return nil
}

// DrawBackground fills the canvas with the vertical brand gradient.
func (c *Composer) DrawBackground() error {
	if err := c.expect(stageBackground); err != nil {
		return err
	}
	grad := gg.NewLinearGradient(0, 0, 0, layout.CanvasHeight)
	grad.AddColorStop(0, backgroundTop)
	grad.AddColorStop(1, color.White)
	c.dc.SetFillStyle(grad)
	c.dc.DrawRectangle(0, 0, layout.CanvasWidth, layout.CanvasHeight)
	c.dc.Fill()
	c.stage = stageCard
	return nil
}

// DrawCard paints the content card and its drop shadow.
func (c *Composer) DrawCard() error {
	if err := c.expect(stageCard); err != nil {
		return err
	}
	card := c.pos.Card
	w, h := card.Dx(), card.Dy()

	shadow, err := c.cardShadow(w, h)
	if err != nil {
		return err
	}
	pad := layout.ShadowBlur
	c.dc.DrawImage(shadow, card.Min.X-pad+layout.ShadowOffsetX, card.Min.Y-pad+layout.ShadowOffsetY)

	front, err := c.roundedPanel(w, h, layout.CardRadius, nrgbaOf(chart.ColorBackground))
	if err != nil {
		return err
	}
	c.dc.DrawImage(front, card.Min.X, card.Min.Y)
	c.stage = stageLogo
	return nil
}

// DrawLogo places the logo in the top-right corner, scaled to fit its
// bounding box. A missing or unreadable logo is logged and skipped; the
// stage advances either way.
func (c *Composer) DrawLogo() error {
	if err := c.expect(stageLogo); err != nil {
		return err
	}
	c.stage = stageText

	path := c.cfg.LogoPath
	if path == "" {
		return nil
	}
	img, err := c.logos.Get(path, func() (image.Image, error) {
		src, err := imaging.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAssetUnreadable, err, "cannot load logo %q", path)
		}
		return imaging.Fit(src, layout.LogoMaxWidth, layout.LogoMaxHeight, imaging.Lanczos), nil
	})
	if err != nil {
		c.logger.Warn("skipping logo", "path", path, "err", err)
		return nil
	}

	// Right-aligned inside the reserved box.
	x := c.pos.Logo.X + layout.LogoMaxWidth - img.Bounds().Dx()
	c.dc.DrawImage(img, x, c.pos.Logo.Y)
	return nil
}

// DrawText paints the title and, when present, the subtitle.
func (c *Composer) DrawText() error {
	if err := c.expect(stageText); err != nil {
		return err
	}
	title, err := c.fonts.Face(titleFontSize, fonts.Bold)
	if err != nil {
		return err
	}
	c.drawTop(title, c.cfg.Title, float64(c.pos.Title.X), float64(c.pos.Title.Y), chart.MustHex(chart.ColorTextPrimary))

	if c.cfg.Subtitle != "" {
		sub, err := c.fonts.Face(subtitleFontSize, fonts.Medium)
		if err != nil {
			return err
		}
		c.drawTop(sub, c.cfg.Subtitle, float64(c.pos.Subtitle.X), float64(c.pos.Subtitle.Y), chart.MustHex(chart.ColorTextSecondary))
	}
	c.stage = stageChart
	return nil
}

// DrawChart paints the surface panel and embeds the chart raster,
// resizing it to the graph region if the sizes differ.
func (c *Composer) DrawChart(img image.Image) error {
	if err := c.expect(stageChart); err != nil {
		return err
	}
	if img == nil {
		return errors.New(errors.ErrCodeInternal, "composer: nil chart raster")
	}

	panel := c.pos.Panel
	surface, err := c.roundedPanel(panel.Dx(), panel.Dy(), layout.PanelRadius, nrgbaOf(chart.ColorSurface))
	if err != nil {
		return err
	}
	c.dc.DrawImage(surface, panel.Min.X, panel.Min.Y)

	g := c.pos.Graph
	if b := img.Bounds(); b.Dx() != g.Dx() || b.Dy() != g.Dy() {
		img = imaging.Resize(img, g.Dx(), g.Dy(), imaging.Lanczos)
	}
	c.dc.DrawImage(img, g.Min.X, g.Min.Y)
	c.stage = stageFooter
	return nil
}

// DrawFooter paints the footer centered on the canvas width. An empty
// footer is skipped; the stage advances either way.
func (c *Composer) DrawFooter() error {
	if err := c.expect(stageFooter); err != nil {
		return err
	}
	c.stage = stageFinalize

	if c.cfg.Footer == "" {
		return nil
	}
	face, err := c.fonts.Face(footerFontSize, fonts.Regular)
	if err != nil {
		return err
	}
	c.dc.SetFontFace(face)
	w, _ := c.dc.MeasureString(c.cfg.Footer)
	c.drawTop(face, c.cfg.Footer, (layout.CanvasWidth-w)/2, float64(c.pos.FooterY), chart.MustHex(chart.ColorTextLight))
	return nil
}

// Finalize flattens the canvas against white and returns the opaque
// result. The composer cannot be reused afterwards.
func (c *Composer) Finalize() (image.Image, error) {
	if err := c.expect(stageFinalize); err != nil {
		return nil, err
	}
	flat := image.NewRGBA(image.Rect(0, 0, layout.CanvasWidth, layout.CanvasHeight))
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), c.dc.Image(), image.Point{}, draw.Over)
	c.stage = stageFinalized
	return flat, nil
}

// drawTop draws s with its glyph top at y, the anchor convention of
// every text block on the canvas.
func (c *Composer) drawTop(face font.Face, s string, x, y float64, col color.Color) {
	c.dc.SetFontFace(face)
	c.dc.SetColor(col)
	ascent := float64(face.Metrics().Ascent) / 64
	c.dc.DrawString(s, x, y+ascent)
}
