// Package plaintext provides a DocumentNormaliser for plain text files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.DocumentNormaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/rtf",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise returns the content as text. A byte order mark is dropped
// and line endings become "\n"; nothing else changes, so spans computed
// on the file's text stay valid.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, domain.ErrInvalidInput
	}

	text := strings.TrimPrefix(string(raw.Content), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return &domain.Document{
		URI:    raw.URI,
		Title:  domain.TitleFromURI(raw.URI),
		Text:   text,
		Format: "text",
	}, nil
}
