// Package cli implements the dashgen command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgen/pkg/buildinfo"
	"github.com/matzehuels/dashgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completion scripts.
	appName = "dashgen"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself renders a dashboard; validate and completion are
// available as subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	opts := renderOpts{outputDir: pipeline.DefaultOutputDir}

	root := &cobra.Command{
		Use:   appName,
		Short: "Dashgen renders branded dashboard images from config files",
		Long: `Dashgen is a CLI tool for generating polished dashboard PNGs from
declarative configuration files. A config describes the title, chart type,
and data; dashgen composes the branded canvas and writes the image.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to the dashboard config file (JSON or TOML)")
	root.Flags().StringVarP(&opts.outputDir, "output-dir", "o", opts.outputDir, "directory for generated images")
	_ = root.MarkFlagRequired("config")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute builds the command tree and runs it with the given arguments.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
