package domain

import "fmt"

// TextSpan is a labelled half-open character range [Start, End) over a base
// text. Spans come from an external extractor and may overlap, repeat or
// fall outside the text.
type TextSpan struct {
	// Start is the first character offset covered by the span.
	Start int `json:"start" yaml:"start"`

	// End is the character offset one past the last covered character.
	End int `json:"end" yaml:"end"`

	// Label is the entity type, e.g. "DATE" or "COURT".
	Label string `json:"label" yaml:"label"`
}

// Len returns the number of characters covered by the span.
func (s TextSpan) Len() int {
	return s.End - s.Start
}

// Within reports whether the span is non-empty and lies inside a text of n
// characters.
func (s TextSpan) Within(n int) bool {
	return s.Start >= 0 && s.Start < s.End && s.End <= n
}

// String returns a compact representation for logs and diagnostics.
func (s TextSpan) String() string {
	return fmt.Sprintf("[%d,%d) %s", s.Start, s.End, s.Label)
}

// LabeledSegment is a contiguous run of the base text produced by resolving
// spans. Segments returned by the resolver never overlap and together cover
// the whole text exactly once.
type LabeledSegment struct {
	// Start is the first character offset of the segment.
	Start int `json:"start"`

	// End is the character offset one past the end of the segment.
	End int `json:"end"`

	// Labels holds every label covering the segment, sorted and unique.
	// Empty for plain text.
	Labels []string `json:"labels"`
}

// Labeled returns true if at least one span covers the segment.
func (s LabeledSegment) Labeled() bool {
	return len(s.Labels) > 0
}

// HasLabel reports whether label covers the segment.
func (s LabeledSegment) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}
