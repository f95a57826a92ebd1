package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

var (
	renderText     string
	renderTextFile string
	renderSpans    string
	renderSections string
	renderFormat   string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render precomputed annotations",
	Long: `Render entity spans or summary sections that were produced elsewhere.

Spans and sections are read from YAML or JSON files. Output is HTML
unless writing to a terminal, where it is styled text.`,
}

var renderEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Render entity spans over a text",
	Long: `Render entity spans as coloured highlights over the document text.

The spans file holds a list of {start, end, label} objects, or an object
with a "spans" list. Offsets count characters, not bytes. Malformed spans
are dropped and reported as warnings.

Examples:
  lexview render entities --text "John filed on 2020." --spans spans.yaml
  lexview render entities --text-file judgment.txt --spans spans.json --out view.html`,
	RunE: runRenderEntities,
}

var renderSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render summary sections",
	Long: `Normalise and render summary sections under their headings.

The sections file holds a mapping of heading to text, in display order,
or a list of {name, text} objects.

Example:
  lexview render summary --sections summary.yaml --format html`,
	RunE: runRenderSummary,
}

func init() {
	for _, c := range []*cobra.Command{renderEntitiesCmd, renderSummaryCmd} {
		c.Flags().StringVarP(&renderFormat, "format", "f", "", "output format: html or ansi (default depends on output)")
		c.Flags().StringVarP(&renderOut, "out", "o", "", "write to file instead of stdout")
	}
	renderEntitiesCmd.Flags().StringVar(&renderText, "text", "", "document text")
	renderEntitiesCmd.Flags().StringVar(&renderTextFile, "text-file", "", "read document text from file (- for stdin)")
	renderEntitiesCmd.Flags().StringVar(&renderSpans, "spans", "", "spans file (YAML or JSON, - for stdin)")
	renderSummaryCmd.Flags().StringVar(&renderSections, "sections", "", "sections file (YAML or JSON, - for stdin)")
	_ = renderSummaryCmd.MarkFlagRequired("sections")

	renderCmd.AddCommand(renderEntitiesCmd, renderSummaryCmd)
	rootCmd.AddCommand(renderCmd)
}

func runRenderEntities(cmd *cobra.Command, _ []string) error {
	if renderSpans == "-" && renderTextFile == "-" {
		return errors.New("stdin can feed either --text-file or --spans, not both")
	}
	text, err := readText(cmd.Context(), renderText, renderTextFile)
	if err != nil {
		return err
	}
	spans, err := readSpans(renderSpans)
	if err != nil {
		return err
	}

	c, err := loadComponents()
	if err != nil {
		return err
	}

	out := outputWriter(cmd, renderOut)
	r, err := newRenderer(resolveFormat(renderFormat, out), out)
	if err != nil {
		return err
	}

	view := c.service(r).RenderEntities(text, spans)
	reportDiagnostics(view.Diagnostics)

	return writeOutput(cmd.OutOrStdout(), renderOut, view.View.Markup)
}

func runRenderSummary(cmd *cobra.Command, _ []string) error {
	sections, err := readSections(renderSections)
	if err != nil {
		return err
	}

	c, err := loadComponents()
	if err != nil {
		return err
	}

	out := outputWriter(cmd, renderOut)
	r, err := newRenderer(resolveFormat(renderFormat, out), out)
	if err != nil {
		return err
	}

	view := c.service(r).RenderSummary(sections)
	return writeOutput(cmd.OutOrStdout(), renderOut, view.View.Markup)
}

// outputWriter returns the writer output goes to for format detection.
// A path yields nil: files are never terminals.
func outputWriter(cmd *cobra.Command, path string) io.Writer {
	if path != "" {
		return nil
	}
	return cmd.OutOrStdout()
}
