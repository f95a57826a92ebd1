// Package html renders annotation views as escaped HTML fragments.
//
// All untrusted content (document text, labels, section names and text)
// goes through html.EscapeString before any tag is written around it.
// Colour and font tokens are checked again here so a configuration that
// skipped validation still cannot break out of a style attribute.
package html

import (
	"fmt"
	"html"
	"strings"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

// Renderer produces HTML markup.
type Renderer struct{}

// New creates a new HTML renderer.
func New() *Renderer {
	return &Renderer{}
}

// Format returns domain.FormatHTML.
func (r *Renderer) Format() domain.Format {
	return domain.FormatHTML
}

// Entities renders text with each labelled segment wrapped in a coloured
// mark. Segments that overlap earlier ones or fall outside the text are
// skipped and any text they leave uncovered is emitted plain, so the
// whole text always appears exactly once.
func (r *Renderer) Entities(text string, segments []domain.LabeledSegment, cfg domain.RenderConfig) domain.Markup {
	if text == "" {
		return ""
	}

	idx := domain.NewTextIndex(text)
	n := idx.Len()
	fg := safeColor(cfg.Foreground, domain.DefaultForeground)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<div class="entities" style="background: %s; color: %s; font-family: %s; line-height: 2.5; white-space: pre-wrap;">`,
		safeColor(cfg.Background, domain.DefaultBackground), fg, safeFont(cfg.Font),
	)

	cursor := 0
	for _, seg := range segments {
		if seg.Start < cursor || seg.Start >= seg.End || seg.End > n {
			continue
		}
		if seg.Start > cursor {
			b.WriteString(html.EscapeString(idx.Slice(cursor, seg.Start)))
		}
		raw := idx.Slice(seg.Start, seg.End)
		if seg.Labeled() {
			writeEntity(&b, raw, seg.Labels, cfg, fg)
		} else {
			b.WriteString(html.EscapeString(raw))
		}
		cursor = seg.End
	}
	if cursor < n {
		b.WriteString(html.EscapeString(idx.Slice(cursor, n)))
	}

	b.WriteString(`</div>`)
	return domain.Markup(b.String())
}

// writeEntity writes one highlighted run. The primary label picks the
// colour; every label is kept in the title for hover.
func writeEntity(b *strings.Builder, raw string, labels []string, cfg domain.RenderConfig, fg string) {
	primary := cfg.PrimaryLabel(labels)
	color := safeColor(cfg.ColorFor(primary), domain.DefaultEntityColor)

	fmt.Fprintf(b,
		`<mark class="entity" data-label="%s" data-labels="%s" title="%s" style="background: %s; color: %s; padding: 0.25em 0.35em; margin: 0 0.25em; line-height: 1; border-radius: 0.35em;">`,
		html.EscapeString(primary),
		html.EscapeString(strings.Join(labels, " ")),
		html.EscapeString(strings.Join(labels, ", ")),
		color, fg,
	)
	b.WriteString(html.EscapeString(raw))
	if cfg.ShowLabels {
		fmt.Fprintf(b,
			`<span class="entity-label" style="font-size: 0.8em; font-weight: bold; line-height: 1; vertical-align: middle; margin-left: 0.5rem; color: %s;">%s</span>`,
			fg, html.EscapeString(primary),
		)
	}
	b.WriteString(`</mark>`)
}

// Summary renders each section as a heading and a paragraph, in order.
func (r *Renderer) Summary(sections domain.SectionMap) domain.Markup {
	if len(sections) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="summary">`)
	for _, sec := range sections {
		b.WriteString(`<h4>`)
		b.WriteString(html.EscapeString(sec.Name))
		b.WriteString(`</h4><p>`)
		b.WriteString(html.EscapeString(sec.Text))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)
	return domain.Markup(b.String())
}

// Wrap places markup in a block that scrolls vertically beyond
// maxHeightPx. The markup is trusted and written as is.
func (r *Renderer) Wrap(markup domain.Markup, maxHeightPx int) domain.RenderedView {
	if maxHeightPx <= 0 {
		maxHeightPx = domain.DefaultMaxHeightPx
	}

	out := fmt.Sprintf(
		`<div class="scroll-view" style="max-height: %dpx; overflow-y: auto;">%s</div>`,
		maxHeightPx, markup,
	)
	return domain.RenderedView{
		Markup:      domain.Markup(out),
		Format:      domain.FormatHTML,
		MaxHeightPx: maxHeightPx,
	}
}

func safeColor(token, fallback string) string {
	if domain.IsColorToken(token) {
		return token
	}
	return fallback
}

func safeFont(font string) string {
	if domain.IsFontToken(font) {
		return font
	}
	return domain.DefaultFont
}
