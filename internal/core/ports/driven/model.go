package driven

import (
	"context"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// EntityExtractor finds labelled entity spans in a text.
// The extraction model is a black box: the core only checks span bounds.
//
// Implementations may include:
//   - Fixture data loaded from JSON or YAML
//   - Ollama (local models prompted for JSON)
type EntityExtractor interface {
	// Extract returns spans over text using character offsets.
	Extract(ctx context.Context, text string) ([]domain.TextSpan, error)
}

// Summariser produces a sectioned summary of a text.
type Summariser interface {
	// Summarise returns raw, unnormalised sections in the model's order.
	Summarise(ctx context.Context, text string) (domain.SectionMap, error)
}
