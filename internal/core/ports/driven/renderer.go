package driven

import (
	"github.com/custodia-labs/lexview/internal/core/domain"
)

// Renderer turns resolved annotation data into presentation markup.
// Every method is pure: identical input gives byte-identical output.
//
// Implementations:
//   - html: escaped HTML for browsers and web hosts
//   - terminal: lipgloss/glamour styled text for terminals
type Renderer interface {
	// Format returns the markup language produced.
	Format() domain.Format

	// Entities renders text with each labelled segment highlighted in the
	// colour of its primary label. Untrusted text is escaped before any
	// wrapping markup is added.
	Entities(text string, segments []domain.LabeledSegment, cfg domain.RenderConfig) domain.Markup

	// Summary renders each section as a heading followed by its text.
	// Sections keep their order and empty sections are still rendered.
	Summary(sections domain.SectionMap) domain.Markup

	// Wrap places already-safe markup in a bounded, scrollable view.
	// It never escapes its input.
	Wrap(markup domain.Markup, maxHeightPx int) domain.RenderedView
}
