// Package pkg provides the core libraries for dashgen dashboard generation.
//
// # Overview
//
// Dashgen turns declarative configuration files into branded 1600x900
// dashboard PNGs: a titled card on a soft gradient, a chart in the center,
// and an optional logo and footer. The pkg directory is organized into
// three main areas:
//
//  1. Input: [config] (load + validate), [fonts] (typeface resolution)
//  2. Rendering: [chart] (plots), [layout] (geometry), [dashboard] (canvas composition)
//  3. Orchestration: [pipeline] (load -> render -> compose -> write), [output] (file naming)
//
// # Architecture
//
// The typical data flow through dashgen:
//
//	Config file (JSON/TOML)
//	         |
//	    [config] package (decode + validate)
//	         |
//	    [chart] package (render the plot raster)
//	         |
//	    [dashboard] package (compose canvas, card, text, logo, footer)
//	         |
//	    PNG output
//
// # Quick Start
//
// Generate a dashboard from a config file:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/dashgen/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    ConfigPath: "examples/quarterly-sales.json",
//	    OutputDir:  "output",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.RelPath)
//
// # Main Packages
//
// [config] - Configuration model plus JSON and TOML loading. Validation
// checks required fields and chart-specific data shapes before anything is
// rendered.
//
// [chart] - The five chart renderers (stacked_bar, line, area, bar, pie)
// built on go-chart, plus the shared brand palette, axis tick selection,
// and category color mapping.
//
// [layout] - Fixed canvas geometry: the card, graph area, logo box, text
// origins, and footer baseline as absolute pixel rectangles.
//
// [dashboard] - Canvas composition. A staged composer draws background,
// card, logo, title text, chart raster, and footer in order, memoizing
// rounded panels and decoded logos across renders.
//
// [fonts] - Typeface resolution via system font discovery with an embedded
// fallback, caching parsed fonts and sized faces.
//
// [pipeline] - Orchestration of the full generation run with per-stage
// timing and hooks. The single entry point used by the CLI.
//
// [output] - Slug-based file naming and collision-safe creation of the
// destination PNG.
//
// [cache] - Bounded memoization primitive shared by the font library and
// the composer's panel and logo caches.
//
// [errors] - Coded errors with user-facing messages and a fatal/non-fatal
// split for asset problems.
//
// [observability] - Stage hooks for callers that want progress reporting
// or timing collection without coupling to the pipeline internals.
//
// [buildinfo] - Version metadata shown by the CLI's --version flag.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/chart/...      # Specific package
//	go test -run Example         # Examples only
//
// [config]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/config
// [chart]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/chart
// [layout]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/layout
// [dashboard]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/dashboard
// [fonts]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/pipeline
// [output]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/output
// [cache]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dashgen/pkg/buildinfo
package pkg
