package chunker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.EntityExtractor = (*Extractor)(nil)

// Extractor runs an entity extractor over each chunk of a long text and
// maps the spans back onto the full text.
type Extractor struct {
	inner       driven.EntityExtractor
	splitter    *Splitter
	concurrency int
}

// NewExtractor wraps inner. At most concurrency chunks are extracted at
// once; values below 1 mean one at a time.
func NewExtractor(inner driven.EntityExtractor, splitter *Splitter, concurrency int) *Extractor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Extractor{inner: inner, splitter: splitter, concurrency: concurrency}
}

// Extract returns spans over text in character offsets. Spans found twice
// in overlapping windows are kept once, in chunk order.
func (e *Extractor) Extract(ctx context.Context, text string) ([]domain.TextSpan, error) {
	chunks := e.splitter.Split(text)
	if len(chunks) <= 1 {
		return e.inner.Extract(ctx, text)
	}

	results := make([][]domain.TextSpan, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			spans, err := e.inner.Extract(gctx, chunk.Text)
			if err != nil {
				return fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
			}
			for j := range spans {
				spans[j].Start += chunk.Start
				spans[j].End += chunk.Start
			}
			results[i] = spans
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[domain.TextSpan]struct{})
	var out []domain.TextSpan
	for _, spans := range results {
		for _, s := range spans {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}

	logger.Debug("Extracted %d spans from %d chunks", len(out), len(chunks))
	return out, nil
}
