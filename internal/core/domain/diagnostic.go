package domain

import "fmt"

// DiagnosticKind classifies a non-fatal issue found while rendering.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// DiagnosticMalformedSpan marks a span that was dropped.
	DiagnosticMalformedSpan DiagnosticKind = "malformed_span"

	// DiagnosticUnknownLabel marks a label rendered with the default colour.
	DiagnosticUnknownLabel DiagnosticKind = "unknown_label"
)

// Diagnostic describes a problem that degraded, but did not stop, a render.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`

	// Span is the offending span. For unknown labels only Label is set.
	Span TextSpan `json:"span"`

	// Message is a human-readable explanation.
	Message string `json:"message"`
}

// MalformedSpan builds a diagnostic for a dropped span.
func MalformedSpan(span TextSpan, textLen int) Diagnostic {
	var reason string
	switch {
	case span.Start < 0:
		reason = "start is negative"
	case span.End > textLen:
		reason = fmt.Sprintf("end exceeds text length %d", textLen)
	default:
		reason = "span is empty or inverted"
	}
	return Diagnostic{
		Kind:    DiagnosticMalformedSpan,
		Span:    span,
		Message: fmt.Sprintf("span %s dropped: %s", span, reason),
	}
}

// UnknownLabel builds a diagnostic for a label without a palette entry.
func UnknownLabel(label string) Diagnostic {
	return Diagnostic{
		Kind:    DiagnosticUnknownLabel,
		Span:    TextSpan{Label: label},
		Message: fmt.Sprintf("label %q has no palette colour, using default", label),
	}
}

// Error implements error so diagnostics can be logged and matched.
func (d Diagnostic) Error() string {
	return d.Message
}

// Unwrap returns the sentinel error for the diagnostic kind.
func (d Diagnostic) Unwrap() error {
	switch d.Kind {
	case DiagnosticMalformedSpan:
		return ErrMalformedSpan
	case DiagnosticUnknownLabel:
		return ErrUnknownLabel
	default:
		return nil
	}
}
