package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/renderers/html"
)

var (
	annotateText     string
	annotateTextFile string
	annotateFormat   string
	annotateOut      string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Extract entities and summarise a document with the configured model",
	Long: `Run the configured model over a document, then render the highlighted
entities and the sectioned summary together.

A model must be configured first (see 'lexview config init').

Examples:
  lexview annotate --text-file judgment.txt --out judgment.html
  cat judgment.txt | lexview annotate --text-file - --format ansi`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&annotateText, "text", "", "document text")
	annotateCmd.Flags().StringVar(&annotateTextFile, "text-file", "", "read document text from file (- for stdin)")
	annotateCmd.Flags().StringVarP(&annotateFormat, "format", "f", "", "output format: html or ansi (default depends on output)")
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	text, err := readText(cmd.Context(), annotateText, annotateTextFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: no text to annotate", domain.ErrInvalidInput)
	}

	c, err := loadComponents()
	if err != nil {
		return err
	}

	out := outputWriter(cmd, annotateOut)
	format := resolveFormat(annotateFormat, out)
	r, err := newRenderer(format, out)
	if err != nil {
		return err
	}

	ann, err := c.service(r).Annotate(cmd.Context(), text)
	if errors.Is(err, domain.ErrModelUnavailable) {
		return fmt.Errorf("%w (run 'lexview config init' to configure one)", err)
	}
	if err != nil {
		return err
	}
	reportDiagnostics(ann.Entities.Diagnostics)

	if format == domain.FormatHTML {
		page := html.Page("lexview",
			html.PageSection{Heading: "Entities", View: ann.Entities.View},
			html.PageSection{Heading: "Summary", View: ann.Summary.View},
		)
		return writeOutput(cmd.OutOrStdout(), annotateOut, page)
	}

	combined := ann.Entities.View.Markup + "\n\n" + ann.Summary.View.Markup
	return writeOutput(cmd.OutOrStdout(), annotateOut, combined)
}
