package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown output format or input kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidConfig indicates the render configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// Annotation Diagnostics.

	// ErrMalformedSpan indicates a span was out of bounds or had no length.
	// Such spans are dropped; the error only travels inside a Diagnostic.
	ErrMalformedSpan = errors.New("malformed span")

	// ErrUnknownLabel indicates a label has no palette entry.
	// The span is rendered with the default colour.
	ErrUnknownLabel = errors.New("unknown label")

	// Model Errors.

	// ErrModelUnavailable indicates neither an entity extractor nor a
	// summariser is configured.
	ErrModelUnavailable = errors.New("model service unavailable")

	// ErrModelResponse indicates the model returned a response that could
	// not be used.
	ErrModelResponse = errors.New("unusable model response")
)
