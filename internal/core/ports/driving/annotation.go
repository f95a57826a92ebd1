package driving

import (
	"context"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// AnnotationService renders extraction output for human review.
type AnnotationService interface {
	// RenderEntities resolves spans over text and renders the highlighted
	// entities view. Malformed spans and unknown labels are reported as
	// diagnostics, never as errors.
	RenderEntities(text string, spans []domain.TextSpan) domain.EntitiesView

	// RenderSummary normalises the sections and renders the summary view.
	RenderSummary(sections domain.SectionMap) domain.SummaryView

	// Annotate runs the configured models over text and renders both views.
	// Returns domain.ErrModelUnavailable if no model is configured.
	Annotate(ctx context.Context, text string) (*domain.Annotation, error)

	// Config returns the render configuration in use.
	Config() domain.RenderConfig
}
