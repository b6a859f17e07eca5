// Package chart renders the five dashboard chart variants.
//
// # Renderers
//
// Each variant is a value type implementing [Renderer], producing a
// raster of exactly the requested size. Line, area, and bar charts
// render through the plotting library; stacked bars and pies are drawn
// directly, because the plotting backend normalizes stacked bars to
// percentages and cannot place two-ring pie labels or a center total.
// All five share the palette and style tables in this package.
//
// # Dispatch
//
// [New] maps a chart configuration to its renderer over the closed set
// of type tags. Validation screens unknown tags before dispatch; the
// default arm still rejects them so a renderer is never silently
// skipped.
package chart

import (
	"image"
	"strings"

	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
)

// Renderer turns a data payload into a standalone chart raster.
type Renderer interface {
	Render(width, height int) (image.Image, error)
}

var (
	_ Renderer = (*StackedBar)(nil)
	_ Renderer = (*Line)(nil)
	_ Renderer = (*Pie)(nil)
	_ Renderer = (*Area)(nil)
	_ Renderer = (*Bar)(nil)
)

// New constructs the renderer for a chart configuration, decoding the
// payload into the shape the chart type expects.
func New(cfg *config.Chart, lib *fonts.Library) (Renderer, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nil chart configuration")
	}
	if lib == nil {
		lib = fonts.NewLibrary(nil)
	}

	switch cfg.Type {
	case config.TypeStackedBar:
		data, err := cfg.Stacked()
		if err != nil {
			return nil, err
		}
		return &StackedBar{Data: data, Fonts: lib}, nil
	case config.TypeLine:
		data, err := cfg.Series()
		if err != nil {
			return nil, err
		}
		return &Line{Data: data, Fonts: lib}, nil
	case config.TypePie:
		data, err := cfg.Series()
		if err != nil {
			return nil, err
		}
		return &Pie{Data: data, Fonts: lib}, nil
	case config.TypeArea:
		data, err := cfg.Series()
		if err != nil {
			return nil, err
		}
		return &Area{Data: data, Fonts: lib}, nil
	case config.TypeBar:
		data, err := cfg.Series()
		if err != nil {
			return nil, err
		}
		return &Bar{Data: data, Fonts: lib}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedChart,
			"unsupported chart type: %q (supported: %s)", cfg.Type, strings.Join(config.Types(), ", "))
	}
}

// Render dispatches and renders in one call.
func Render(cfg *config.Chart, lib *fonts.Library, width, height int) (image.Image, error) {
	r, err := New(cfg, lib)
	if err != nil {
		return nil, err
	}
	return r.Render(width, height)
}
