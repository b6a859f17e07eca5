package dashboard

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgen/pkg/cache"
	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/layout"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func chartRaster(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func writeLogo(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create logo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode logo: %v", err)
	}
	return path
}

func rgba8(c color.Color) (uint8, uint8, uint8, uint8) {
	r, g, b, a := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func TestComposeCanvas(t *testing.T) {
	cfg := &config.Config{
		Title:    "Quarterly Revenue",
		Subtitle: "FY2025 overview",
		Footer:   "Source: internal reporting",
	}
	pos := layout.Compute()

	img, err := Compose(cfg, chartRaster(pos.Graph.Dx(), pos.Graph.Dy()), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if got := img.Bounds().Dx(); got != layout.CanvasWidth {
		t.Errorf("width = %d, want %d", got, layout.CanvasWidth)
	}
	if got := img.Bounds().Dy(); got != layout.CanvasHeight {
		t.Errorf("height = %d, want %d", got, layout.CanvasHeight)
	}

	// Finalization flattens the canvas, so every pixel is opaque.
	corners := []image.Point{
		{0, 0}, {layout.CanvasWidth - 1, 0},
		{0, layout.CanvasHeight - 1}, {layout.CanvasWidth - 1, layout.CanvasHeight - 1},
		{layout.CanvasWidth / 2, layout.CanvasHeight / 2},
	}
	for _, p := range corners {
		if _, _, _, a := rgba8(img.At(p.X, p.Y)); a != 0xFF {
			t.Errorf("pixel at %v has alpha %d, want 255", p, a)
		}
	}

	// The top-left corner sits outside the card and shadow, so it shows
	// the first gradient stop.
	r, g, b, _ := rgba8(img.At(0, 0))
	if r != 248 || g != 250 || b != 252 {
		t.Errorf("gradient top = (%d, %d, %d), want (248, 250, 252)", r, g, b)
	}

	// Inside the card, clear of text and panel, the canvas is white.
	r, g, b, _ = rgba8(img.At(1500, 850))
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("card interior = (%d, %d, %d), want white", r, g, b)
	}
}

func TestComposeMinimalConfig(t *testing.T) {
	cfg := &config.Config{Title: "T"}
	img, err := Compose(cfg, chartRaster(320, 180), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if img.Bounds().Dx() != layout.CanvasWidth || img.Bounds().Dy() != layout.CanvasHeight {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestComposeNilConfig(t *testing.T) {
	_, err := Compose(nil, chartRaster(320, 180))
	if err == nil {
		t.Fatal("expected error for nil configuration")
	}
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestComposeMissingLogo(t *testing.T) {
	cfg := &config.Config{
		Title:    "T",
		LogoPath: filepath.Join(t.TempDir(), "missing.png"),
	}
	if _, err := Compose(cfg, chartRaster(320, 180), WithLogger(quietLogger())); err != nil {
		t.Fatalf("a missing logo must not fail the compose: %v", err)
	}
}

func TestComposeWithLogo(t *testing.T) {
	logos := cache.New[string, image.Image]("logos", 8)
	cfg := &config.Config{
		Title:    "T",
		LogoPath: writeLogo(t, 400, 300),
	}
	if _, err := Compose(cfg, chartRaster(320, 180), WithLogger(quietLogger()), WithLogoCache(logos)); err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	if logos.Len() != 1 {
		t.Errorf("logo cache entries = %d, want 1", logos.Len())
	}
}

func TestPanelCacheReuse(t *testing.T) {
	panels := cache.New[PanelKey, image.Image]("panels", 16)
	cfg := &config.Config{Title: "T"}

	for i := 0; i < 2; i++ {
		if _, err := Compose(cfg, chartRaster(320, 180), WithLogger(quietLogger()), WithPanelCache(panels)); err != nil {
			t.Fatalf("Compose() error: %v", err)
		}
	}

	// Shadow shape, card front, and chart panel; the second run reuses
	// all three.
	if panels.Len() != 3 {
		t.Errorf("panel cache entries = %d, want 3", panels.Len())
	}
}

func TestStageOrder(t *testing.T) {
	c := NewComposer(&config.Config{Title: "T"}, WithLogger(quietLogger()))

	if err := c.DrawCard(); err == nil {
		t.Fatal("expected error drawing card before background")
	} else if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}

	if err := c.DrawBackground(); err != nil {
		t.Fatalf("DrawBackground() error: %v", err)
	}
	if err := c.DrawBackground(); err == nil {
		t.Fatal("expected error drawing background twice")
	}
}

func TestDrawChartNilRaster(t *testing.T) {
	c := NewComposer(&config.Config{Title: "T"}, WithLogger(quietLogger()))
	for _, step := range []func() error{c.DrawBackground, c.DrawCard, c.DrawLogo, c.DrawText} {
		if err := step(); err != nil {
			t.Fatalf("stage error: %v", err)
		}
	}
	if err := c.DrawChart(nil); err == nil {
		t.Fatal("expected error for nil chart raster")
	} else if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInternal)
	}
}

func TestFinalizeOnce(t *testing.T) {
	c := NewComposer(&config.Config{Title: "T"}, WithLogger(quietLogger()))
	steps := []func() error{
		c.DrawBackground, c.DrawCard, c.DrawLogo, c.DrawText,
		func() error { return c.DrawChart(chartRaster(320, 180)) },
		c.DrawFooter,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("stage error: %v", err)
		}
	}
	if _, err := c.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if _, err := c.Finalize(); err == nil {
		t.Fatal("expected error finalizing twice")
	}
}
