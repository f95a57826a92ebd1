// Package cli provides the lexview command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/logger"
)

var (
	// version is set by Execute from the build.
	version = "dev"

	configDir string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "lexview",
	Short: "Render legal entity annotations and judgment summaries for review",
	Long: `lexview renders the output of legal named entity recognition and
judgment summarisation as reviewable views.

Entity spans are drawn as coloured highlights over the document text.
Summary sections are normalised and rendered under their headings.
Views are available as HTML, in the terminal, over an HTTP API and
through an MCP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
		return logger.SetFormat(logFormat)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config", "", "configuration directory (default ~/.lexview)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", logger.FormatConsole, "log format: console or json")
}

// Execute runs the root command with the given build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}
