package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/lexview/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexview/internal/adapters/driven/fixture"
	"github.com/custodia-labs/lexview/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/core/services"
	"github.com/custodia-labs/lexview/internal/logger"
	"github.com/custodia-labs/lexview/internal/normalisers"
	"github.com/custodia-labs/lexview/internal/normalisers/section"
	"github.com/custodia-labs/lexview/internal/renderers/html"
	"github.com/custodia-labs/lexview/internal/renderers/terminal"
)

// stdin is read when an input path is "-".
var stdin io.Reader = os.Stdin

// components holds what a command needs, built from configuration.
type components struct {
	store     *file.ConfigStore
	cfg       domain.RenderConfig
	model     *ollama.Client
	extractor driven.EntityExtractor
}

// loadComponents reads the configuration and builds the model client
// when model.name is set.
func loadComponents() (*components, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cfg, err := store.RenderConfig()
	if err != nil {
		return nil, err
	}

	c := &components{store: store, cfg: cfg}

	settings := modelSettings(store)
	if !settings.IsConfigured() {
		logger.Debug("No model configured; annotate is unavailable")
		return c, nil
	}

	c.model, err = ai.CreateModel(settings)
	if err != nil {
		return nil, err
	}
	c.extractor = ai.NewChunkedExtractor(c.model, settings)
	return c, nil
}

// modelSettings reads the model.* keys; prompts live next to the config file.
func modelSettings(store *file.ConfigStore) ai.ModelSettings {
	settings := ai.SettingsFromConfig(store)
	settings.PromptDir = promptDir(store)
	return settings
}

// promptDir is the prompt template directory beside the config file.
func promptDir(store *file.ConfigStore) string {
	return filepath.Join(filepath.Dir(store.Path()), "prompts")
}

// service builds the annotation service over r.
func (c *components) service(r driven.Renderer) *services.AnnotationService {
	if c.model == nil {
		return services.NewAnnotationService(c.cfg, r, section.New(), nil, nil)
	}
	return services.NewAnnotationService(c.cfg, r, section.New(), c.extractor, c.model)
}

// newRenderer returns the renderer for format. Terminal output is
// wrapped to the width of out when it is a terminal.
func newRenderer(format domain.Format, out io.Writer) (driven.Renderer, error) {
	switch format {
	case domain.FormatHTML:
		return html.New(), nil
	case domain.FormatANSI:
		opts := []terminal.Option{}
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
				opts = append(opts, terminal.WithWordWrap(width-4))
			}
		}
		return terminal.New(out, opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want html or ansi)", domain.ErrInvalidInput, format)
	}
}

// resolveFormat picks the output format: the flag if given, otherwise
// ANSI for an interactive terminal and HTML for anything else.
func resolveFormat(flag string, out io.Writer) domain.Format {
	if flag != "" {
		return domain.Format(strings.ToLower(flag))
	}
	if isTerminal(out) {
		return domain.FormatANSI
	}
	return domain.FormatHTML
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readText returns the literal text, or the text extracted from path.
// Files go through the document normalisers by extension; stdin ("-") is
// taken as plain text.
func readText(ctx context.Context, text, path string) (string, error) {
	if text != "" && path != "" {
		return "", fmt.Errorf("%w: use either --text or --text-file", domain.ErrInvalidInput)
	}
	switch path {
	case "":
		return text, nil
	case "-":
		data, err := readStdin()
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	doc, err := normalisers.NewDefaultRegistry().LoadFile(ctx, path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func readStdin() ([]byte, error) {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// readSpans decodes spans from path; an empty path means no spans.
func readSpans(path string) ([]domain.TextSpan, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return fixture.LoadSpans(stdin)
	}
	spans, err := fixture.LoadSpansFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return spans, nil
}

// readSections decodes sections from path; an empty path means none.
func readSections(path string) (domain.SectionMap, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return fixture.LoadSections(stdin)
	}
	sections, err := fixture.LoadSectionsFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return sections, nil
}

// writeOutput writes markup to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, markup domain.Markup) error {
	content := markup.String()
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("Wrote %s", path)
	return nil
}

// reportDiagnostics logs each diagnostic as a warning.
func reportDiagnostics(diags []domain.Diagnostic) {
	for _, d := range diags {
		logger.Warn("%s", d.Message)
	}
}
