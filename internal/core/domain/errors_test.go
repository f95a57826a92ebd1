package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrMalformedSpan", ErrMalformedSpan},
		{"ErrUnknownLabel", ErrUnknownLabel},
		{"ErrModelUnavailable", ErrModelUnavailable},
		{"ErrModelResponse", ErrModelResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests that wrapped domain errors still match
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading palette: %w", ErrInvalidConfig)

	assert.True(t, errors.Is(wrapped, ErrInvalidConfig))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

// TestDiagnostic_Unwrap tests diagnostics match their sentinel errors
func TestDiagnostic_Unwrap(t *testing.T) {
	malformed := MalformedSpan(TextSpan{Start: -1, End: 3, Label: "DATE"}, 10)
	unknown := UnknownLabel("VEHICLE")

	assert.True(t, errors.Is(malformed, ErrMalformedSpan))
	assert.False(t, errors.Is(malformed, ErrUnknownLabel))
	assert.True(t, errors.Is(unknown, ErrUnknownLabel))
	assert.Nil(t, Diagnostic{Kind: "other"}.Unwrap())
}

// TestMalformedSpan_Reasons tests the diagnostic message names the cause
func TestMalformedSpan_Reasons(t *testing.T) {
	tests := []struct {
		name string
		span TextSpan
		want string
	}{
		{"negative start", TextSpan{Start: -1, End: 2}, "start is negative"},
		{"past end", TextSpan{Start: 2, End: 20}, "end exceeds text length 10"},
		{"empty", TextSpan{Start: 4, End: 4}, "span is empty or inverted"},
		{"inverted", TextSpan{Start: 5, End: 1}, "span is empty or inverted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MalformedSpan(tt.span, 10)
			assert.Equal(t, DiagnosticMalformedSpan, d.Kind)
			assert.Equal(t, tt.span, d.Span)
			assert.Contains(t, d.Error(), tt.want)
		})
	}
}
