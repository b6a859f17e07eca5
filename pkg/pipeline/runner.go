package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgen/pkg/cache"
	"github.com/matzehuels/dashgen/pkg/chart"
	"github.com/matzehuels/dashgen/pkg/config"
	"github.com/matzehuels/dashgen/pkg/dashboard"
	"github.com/matzehuels/dashgen/pkg/errors"
	"github.com/matzehuels/dashgen/pkg/fonts"
	"github.com/matzehuels/dashgen/pkg/layout"
	"github.com/matzehuels/dashgen/pkg/observability"
	"github.com/matzehuels/dashgen/pkg/output"
)

// Default cache bounds for a runner's process-local memos.
const (
	defaultPanelEntries = 16
	defaultLogoEntries  = 32
)

// Runner encapsulates pipeline execution with process-local caches.
//
// The Runner is stateless except for the caches and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Fonts  *fonts.Library
	Panels *cache.Memo[dashboard.PanelKey, image.Image]
	Logos  *cache.Memo[string, image.Image]
	Logger *log.Logger
}

// NewRunner creates a runner with fresh caches.
// If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fonts:  fonts.NewLibrary(nil),
		Panels: cache.New[dashboard.PanelKey, image.Image]("panels", defaultPanelEntries),
		Logos:  cache.New[string, image.Image]("logos", defaultLogoEntries),
		Logger: logger,
	}
}

// Execute runs the complete load → render → compose → write pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load and validate
	cfg, err := r.loadConfig(ctx, &opts, &result.Stats.LoadTime)
	if err != nil {
		return nil, err
	}
	result.ChartType = cfg.Graph.Type

	opts.Logger.Info("loaded configuration",
		"path", opts.ConfigPath,
		"chart", cfg.Graph.Type,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render the chart
	var raster image.Image
	err = timed(ctx, observability.StageRender, &result.Stats.RenderTime, func() error {
		g := layout.Compute().Graph
		var err error
		raster, err = chart.Render(cfg.Graph, r.Fonts, g.Dx(), g.Dy())
		return err
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered chart",
		"type", cfg.Graph.Type,
		"duration", result.Stats.RenderTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Compose the canvas
	var canvas image.Image
	err = timed(ctx, observability.StageCompose, &result.Stats.ComposeTime, func() error {
		var err error
		canvas, err = dashboard.Compose(cfg, raster,
			dashboard.WithFonts(r.Fonts),
			dashboard.WithPanelCache(r.Panels),
			dashboard.WithLogoCache(r.Logos),
			dashboard.WithLogger(opts.Logger),
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("composed dashboard",
		"duration", result.Stats.ComposeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Write the PNG
	err = timed(ctx, observability.StageWrite, &result.Stats.WriteTime, func() error {
		return r.write(cfg, canvas, opts, result)
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Info("wrote dashboard",
		"path", result.RelPath,
		"duration", result.Stats.WriteTime)

	return result, nil
}

// LoadConfig runs only the load and validate stages. The CLI's validate
// command uses it to check a configuration without rendering.
func (r *Runner) LoadConfig(ctx context.Context, opts Options) (*config.Config, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.loadConfig(ctx, &opts, nil)
}

// loadConfig loads and validates the configuration as two observed stages.
func (r *Runner) loadConfig(ctx context.Context, opts *Options, slot *time.Duration) (*config.Config, error) {
	var cfg *config.Config
	err := timed(ctx, observability.StageLoad, slot, func() error {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = timed(ctx, observability.StageValidate, slot, func() error {
		return config.Validate(cfg)
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// write encodes the canvas and creates the output file. The PNG is encoded
// to memory first so a failed encode never leaves a partial file behind.
func (r *Runner) write(cfg *config.Config, canvas image.Image, opts Options, result *Result) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return errors.Wrap(errors.ErrCodeOutputFailed, err, "encode dashboard PNG")
	}

	f, err := output.Create(opts.OutputDir, cfg.Title)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeOutputFailed, err, "write %s", f.Name())
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeOutputFailed, err, "close %s", f.Name())
	}

	result.Path = f.Name()
	result.RelPath = output.RelPath(f.Name())
	return nil
}

// timed runs fn as one observed pipeline stage, adding its duration to slot
// when slot is non-nil.
func timed(ctx context.Context, stage string, slot *time.Duration, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	if slot != nil {
		*slot += d
	}
	hooks.OnStageComplete(ctx, stage, d, err)
	return err
}

// applyLogger sets the runner's logger on options if not already set.
// It must run before ValidateAndSetDefaults, which would otherwise fill
// the slot with the silent default.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
