package driven

import (
	"context"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// DocumentNormaliser extracts the plain text of one document format.
type DocumentNormaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority orders normalisers for the same MIME type. Higher wins.
	Priority() int

	// Normalise extracts the document text.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}

// DocumentRegistry selects the appropriate normaliser for a document.
type DocumentRegistry interface {
	// Normalise extracts text using the best matching normaliser.
	// Returns domain.ErrUnsupportedType if nothing handles the MIME type.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser DocumentNormaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
