// Package terminal renders annotation views as ANSI-styled text.
//
// Terminal escape sequences in document text, labels and section content
// are stripped with ansi.Strip before styling, so untrusted input cannot
// move the cursor or rewrite the screen.
package terminal

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Defaults for summary rendering.
const (
	DefaultWordWrap     = 80
	DefaultSummaryTheme = "dark"
)

// Renderer produces ANSI markup.
type Renderer struct {
	lg       *lipgloss.Renderer
	wordWrap int
	theme    string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWordWrap sets the summary wrap width in cells.
func WithWordWrap(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.wordWrap = width
		}
	}
}

// WithSummaryTheme sets the glamour style used for summaries,
// e.g. "dark", "light" or "notty".
func WithSummaryTheme(theme string) Option {
	return func(r *Renderer) {
		if theme != "" {
			r.theme = theme
		}
	}
}

// New creates a terminal renderer that detects colour support from out.
// A nil out uses stdout.
func New(out io.Writer, opts ...Option) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	r := &Renderer{
		lg:       lipgloss.NewRenderer(out),
		wordWrap: DefaultWordWrap,
		theme:    DefaultSummaryTheme,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns domain.FormatANSI.
func (r *Renderer) Format() domain.Format {
	return domain.FormatANSI
}

// Entities renders text with each labelled segment drawn on its palette
// colour. Bad segments are skipped the same way as the HTML renderer, and
// every character of text appears exactly once.
func (r *Renderer) Entities(text string, segments []domain.LabeledSegment, cfg domain.RenderConfig) domain.Markup {
	if text == "" {
		return ""
	}

	idx := domain.NewTextIndex(text)
	n := idx.Len()
	fg := lipgloss.Color(safeColor(cfg.Foreground, domain.DefaultForeground))
	badge := r.lg.NewStyle().Bold(true).Foreground(fg).TabWidth(lipgloss.NoTabConversion)

	var b strings.Builder
	cursor := 0
	for _, seg := range segments {
		if seg.Start < cursor || seg.Start >= seg.End || seg.End > n {
			continue
		}
		if seg.Start > cursor {
			b.WriteString(ansi.Strip(idx.Slice(cursor, seg.Start)))
		}
		raw := ansi.Strip(idx.Slice(seg.Start, seg.End))
		if !seg.Labeled() {
			b.WriteString(raw)
			cursor = seg.End
			continue
		}

		primary := cfg.PrimaryLabel(seg.Labels)
		bg := lipgloss.Color(safeColor(cfg.ColorFor(primary), domain.DefaultEntityColor))
		style := r.lg.NewStyle().Background(bg).Foreground(fg).TabWidth(lipgloss.NoTabConversion)
		b.WriteString(renderLines(style, raw))
		if cfg.ShowLabels {
			b.WriteString(badge.Background(bg).Render(" " + ansi.Strip(primary)))
		}
		cursor = seg.End
	}
	if cursor < n {
		b.WriteString(ansi.Strip(idx.Slice(cursor, n)))
	}

	return domain.Markup(b.String())
}

// Summary renders the sections as markdown through glamour. Section text
// is escaped so it is never interpreted as markdown.
func (r *Renderer) Summary(sections domain.SectionMap) domain.Markup {
	if len(sections) == 0 {
		return ""
	}

	var md strings.Builder
	for i, sec := range sections {
		if i > 0 {
			md.WriteString("\n")
		}
		md.WriteString("## ")
		md.WriteString(escapeMarkdown(sec.Name))
		md.WriteString("\n\n")
		md.WriteString(escapeMarkdown(sec.Text))
		md.WriteString("\n")
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.theme),
		glamour.WithWordWrap(r.wordWrap),
	)
	if err != nil {
		logger.Debug("Markdown renderer unavailable, using plain summary: %v", err)
		return r.plainSummary(sections)
	}
	out, err := tr.Render(md.String())
	if err != nil {
		logger.Debug("Markdown render failed, using plain summary: %v", err)
		return r.plainSummary(sections)
	}
	return domain.Markup(strings.Trim(out, "\n"))
}

func (r *Renderer) plainSummary(sections domain.SectionMap) domain.Markup {
	heading := r.lg.NewStyle().Bold(true)
	parts := make([]string, len(sections))
	for i, sec := range sections {
		parts[i] = heading.Render(ansi.Strip(sec.Name)) + "\n" + ansi.Strip(sec.Text)
	}
	return domain.Markup(strings.Join(parts, "\n\n"))
}

// Wrap draws a rounded border around markup. Terminals cannot clip by
// pixel height, so MaxHeightPx is carried for hosts such as the TUI that
// size a viewport from it.
func (r *Renderer) Wrap(markup domain.Markup, maxHeightPx int) domain.RenderedView {
	if maxHeightPx <= 0 {
		maxHeightPx = domain.DefaultMaxHeightPx
	}

	box := r.lg.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		TabWidth(lipgloss.NoTabConversion)

	return domain.RenderedView{
		Markup:      domain.Markup(box.Render(markup.String())),
		Format:      domain.FormatANSI,
		MaxHeightPx: maxHeightPx,
	}
}

// renderLines styles each line separately so lipgloss does not pad short
// lines to the width of the longest one.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`, `#`, `\#`, `+`, `\+`,
	`-`, `\-`, `!`, `\!`, `|`, `\|`, `<`, `\<`, `>`, `\>`, `~`, `\~`, `.`, `\.`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(ansi.Strip(s))
}

func safeColor(token, fallback string) string {
	if domain.IsColorToken(token) {
		return token
	}
	return fallback
}
