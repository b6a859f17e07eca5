package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgen/pkg/pipeline"
)

// validateCommand creates the validate command for checking configs without
// rendering anything.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a dashboard config without rendering",
		Long: `Check a dashboard config without rendering.

The validate command loads the given JSON or TOML file, applies the same
structural checks the render pipeline runs, and reports the chart type it
found. No image is produced and the output directory is never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

// runValidate loads and validates a config file, reporting what it found.
func (c *CLI) runValidate(ctx context.Context, path string) error {
	printInfo("Checking %s", path)

	runner := pipeline.NewRunner(loggerFromContext(ctx))
	cfg, err := runner.LoadConfig(ctx, pipeline.Options{ConfigPath: path})
	if err != nil {
		return err
	}

	printSuccess("Configuration is valid")
	printKeyValue("title", cfg.Title)
	printKeyValue("chart", cfg.Graph.Type)

	fmt.Println(cfg.Graph.Type)
	return nil
}
