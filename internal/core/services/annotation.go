package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/core/ports/driving"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService renders extraction and summarisation output.
// It holds no per-request state and is safe for concurrent use.
type AnnotationService struct {
	cfg        domain.RenderConfig
	renderer   driven.Renderer
	normaliser driven.Normaliser
	extractor  driven.EntityExtractor
	summariser driven.Summariser
}

// NewAnnotationService creates a new annotation service.
// The extractor and summariser may be nil; Annotate then degrades.
func NewAnnotationService(
	cfg domain.RenderConfig,
	renderer driven.Renderer,
	normaliser driven.Normaliser,
	extractor driven.EntityExtractor,
	summariser driven.Summariser,
) *AnnotationService {
	return &AnnotationService{
		cfg:        cfg.Clone(),
		renderer:   renderer,
		normaliser: normaliser,
		extractor:  extractor,
		summariser: summariser,
	}
}

// Config returns a copy of the render configuration.
func (s *AnnotationService) Config() domain.RenderConfig {
	return s.cfg.Clone()
}

// RenderEntities resolves spans and renders the highlighted entities view.
func (s *AnnotationService) RenderEntities(text string, spans []domain.TextSpan) domain.EntitiesView {
	logger.Section("Render Entities")

	n := domain.NewTextIndex(text).Len()
	segments, diags := resolve(n, spans)
	diags = append(diags, s.unknownLabels(segments)...)

	logger.Debug("Spans: %d, segments: %d, diagnostics: %d", len(spans), len(segments), len(diags))

	markup := s.renderer.Entities(text, segments, s.cfg)
	return domain.EntitiesView{
		View:        s.renderer.Wrap(markup, s.cfg.MaxHeightPx),
		Segments:    segments,
		Diagnostics: diags,
	}
}

// RenderSummary normalises every section and renders the summary view.
func (s *AnnotationService) RenderSummary(sections domain.SectionMap) domain.SummaryView {
	logger.Section("Render Summary")

	normalised := NormaliseSections(s.normaliser, sections)
	logger.Debug("Sections: %s", strings.Join(normalised.Names(), ", "))

	markup := s.renderer.Summary(normalised)
	return domain.SummaryView{
		View:     s.renderer.Wrap(markup, s.cfg.MaxHeightPx),
		Sections: normalised,
	}
}

// Annotate runs the extractor and summariser concurrently, then renders
// both views. A missing capability leaves its view empty.
func (s *AnnotationService) Annotate(ctx context.Context, text string) (*domain.Annotation, error) {
	if s.extractor == nil && s.summariser == nil {
		return nil, domain.ErrModelUnavailable
	}

	var (
		spans    []domain.TextSpan
		sections domain.SectionMap
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.extractor != nil {
		g.Go(func() error {
			var err error
			spans, err = s.extractor.Extract(gctx, text)
			if err != nil {
				return fmt.Errorf("extracting entities: %w", err)
			}
			return nil
		})
	} else {
		logger.Warn("No entity extractor configured, entities view is unhighlighted")
	}
	if s.summariser != nil {
		g.Go(func() error {
			var err error
			sections, err = s.summariser.Summarise(gctx, text)
			if err != nil {
				return fmt.Errorf("summarising: %w", err)
			}
			return nil
		})
	} else {
		logger.Warn("No summariser configured, summary view is empty")
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Annotation{
		Text:     text,
		Spans:    spans,
		Entities: s.RenderEntities(text, spans),
		Summary:  s.RenderSummary(sections),
	}, nil
}

// unknownLabels reports each distinct label without a palette entry once,
// in lexical order.
func (s *AnnotationService) unknownLabels(segments []domain.LabeledSegment) []domain.Diagnostic {
	missing := make(map[string]struct{})
	for _, seg := range segments {
		for _, label := range seg.Labels {
			if !s.cfg.Knows(label) {
				missing[label] = struct{}{}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}

	labels := make([]string, 0, len(missing))
	for label := range missing {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	diags := make([]domain.Diagnostic, len(labels))
	for i, label := range labels {
		diags[i] = domain.UnknownLabel(label)
	}
	return diags
}

// NormaliseSections applies n to every section text, keeping names and
// order. A nil normaliser copies the sections unchanged.
func NormaliseSections(n driven.Normaliser, sections domain.SectionMap) domain.SectionMap {
	out := make(domain.SectionMap, len(sections))
	for i, sec := range sections {
		out[i] = sec
		if n != nil {
			out[i].Text = n.Normalise(sec.Text)
		}
	}
	return out
}
