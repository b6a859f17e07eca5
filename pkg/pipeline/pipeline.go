// Package pipeline provides the dashboard generation pipeline.
//
// This package implements the complete load → render → compose → write
// pipeline shared by the CLI and any embedding caller. Centralizing this
// logic keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read and validate the dashboard configuration (JSON or TOML)
//  2. Render: Draw the configured chart to a raster
//  3. Compose: Paint the dashboard canvas around the chart
//  4. Write: Encode the canvas as a PNG under the output directory
//
// Each stage reports start and completion to the observability hooks and
// contributes its duration to the result statistics.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    ConfigPath: "dashboard.json",
//	    OutputDir:  "output",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.RelPath)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgen/pkg/errors"
)

// DefaultOutputDir receives rendered dashboards when no directory is
// configured.
const DefaultOutputDir = "output"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for embedding callers.
type Options struct {
	// ConfigPath locates the dashboard configuration file (JSON, or TOML
	// by extension).
	ConfigPath string `json:"config_path"`

	// OutputDir receives the rendered PNG. Created if missing.
	OutputDir string `json:"output_dir,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ConfigPath == "" {
		return errors.New(errors.ErrCodeConfigNotFound, "configuration path is required")
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Path is the written PNG's location as handed to the OS.
	Path string

	// RelPath is Path relative to the working directory, for display.
	RelPath string

	// ChartType is the type tag of the rendered chart.
	ChartType string

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	// LoadTime covers configuration loading and validation.
	LoadTime    time.Duration
	RenderTime  time.Duration
	ComposeTime time.Duration
	WriteTime   time.Duration
}
