// Package tui provides an interactive terminal viewer for annotated
// documents. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Annotation renders entity and summary views.
	Annotation driving.AnnotationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}

// Request describes what the viewer should show.
type Request struct {
	// Text is the document text.
	Text string

	// Spans are precomputed entity spans over Text.
	Spans []domain.TextSpan

	// Sections are precomputed summary sections.
	Sections domain.SectionMap

	// UseModel runs the configured models over Text instead of using
	// Spans and Sections.
	UseModel bool
}

// Validate checks that the request has something to render.
func (r Request) Validate() error {
	if r.UseModel && r.Text == "" {
		return ErrNothingToShow
	}
	if r.Text == "" && len(r.Sections) == 0 {
		return ErrNothingToShow
	}
	return nil
}
