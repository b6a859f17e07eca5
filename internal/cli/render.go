package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/dashgen/pkg/pipeline"
)

// renderOpts holds the flag values for the root render command.
type renderOpts struct {
	configPath string
	outputDir  string
}

// runRender executes the generation pipeline and prints the written path.
// Decorated status goes to stderr; stdout receives only the relative path
// of the generated image so the command stays scriptable.
func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	spinner := newSpinnerWithContext(ctx, "Generating dashboard...")
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		ConfigPath: opts.configPath,
		OutputDir:  opts.outputDir,
		Logger:     logger,
	})
	if err != nil {
		spinner.StopWithError("Dashboard generation failed")
		return err
	}
	spinner.StopWithSuccess("Dashboard saved")

	total := result.Stats.LoadTime + result.Stats.RenderTime + result.Stats.ComposeTime + result.Stats.WriteTime
	printDetail("%s chart in %s", result.ChartType, total.Round(time.Millisecond))

	fmt.Println(result.RelPath)
	return nil
}
