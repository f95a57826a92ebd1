package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/adapters/driving/tui"
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/logger"
)

var (
	viewText     string
	viewTextFile string
	viewSpans    string
	viewSections string
	viewModel    bool
)

// viewCmd represents the view command.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse annotations in an interactive terminal viewer",
	Long: `Open the entities and summary views in a scrollable terminal viewer.

Views come from precomputed spans and sections, or from the configured
model with --model.

Controls:
  tab/shift+tab - Switch view
  ↑/k, ↓/j      - Scroll
  pgup, pgdn    - Page
  g, G          - Top, bottom
  ?             - Toggle help
  q             - Quit`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewText, "text", "", "document text")
	viewCmd.Flags().StringVar(&viewTextFile, "text-file", "", "read document text from file")
	viewCmd.Flags().StringVar(&viewSpans, "spans", "", "spans file (YAML or JSON)")
	viewCmd.Flags().StringVar(&viewSections, "sections", "", "sections file (YAML or JSON)")
	viewCmd.Flags().BoolVar(&viewModel, "model", false, "annotate with the configured model")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	// Recover to restore a readable stack trace outside the alt screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in viewer: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	req, err := viewRequest(cmd.Context())
	if err != nil {
		return err
	}

	c, err := loadComponents()
	if err != nil {
		return err
	}
	r, err := newRenderer(domain.FormatANSI, os.Stdout)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Annotation: c.service(r)}, req)
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	app.WithContext(cmd.Context())

	// Log lines would draw over the alt screen; diagnostics reach the status bar.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(cmd.ErrOrStderr())

	if err := app.Run(); err != nil {
		return fmt.Errorf("viewer error: %w", err)
	}
	return nil
}

// viewRequest builds the viewer request from flags.
func viewRequest(ctx context.Context) (tui.Request, error) {
	if viewTextFile == "-" || viewSpans == "-" || viewSections == "-" {
		return tui.Request{}, fmt.Errorf("%w: the viewer needs stdin for the keyboard", domain.ErrInvalidInput)
	}

	text, err := readText(ctx, viewText, viewTextFile)
	if err != nil {
		return tui.Request{}, err
	}
	spans, err := readSpans(viewSpans)
	if err != nil {
		return tui.Request{}, err
	}
	sections, err := readSections(viewSections)
	if err != nil {
		return tui.Request{}, err
	}

	req := tui.Request{Text: text, Spans: spans, Sections: sections, UseModel: viewModel}
	return req, req.Validate()
}
