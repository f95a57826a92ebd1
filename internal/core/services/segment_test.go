package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

func TestResolveSpans_Example(t *testing.T) {
	text := "John filed on 2020."
	spans := []domain.TextSpan{
		{Start: 0, End: 4, Label: "OTHER_PERSON"},
		{Start: 14, End: 18, Label: "DATE"},
	}

	segments, diags := ResolveSpans(text, spans)

	require.Empty(t, diags)
	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 4, Labels: []string{"OTHER_PERSON"}},
		{Start: 4, End: 14},
		{Start: 14, End: 18, Labels: []string{"DATE"}},
		{Start: 18, End: 19},
	}, segments)
	assert.Equal(t, text, strings.Join(SegmentText(text, segments), ""))
}

func TestResolveSpans_NoSpans(t *testing.T) {
	segments, diags := ResolveSpans("plain text", nil)

	assert.Empty(t, diags)
	assert.Equal(t, []domain.LabeledSegment{{Start: 0, End: 10}}, segments)
}

func TestResolveSpans_EmptyText(t *testing.T) {
	segments, diags := ResolveSpans("", []domain.TextSpan{{Start: 0, End: 1, Label: "DATE"}})

	assert.Empty(t, segments)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], domain.ErrMalformedSpan))
}

func TestResolveSpans_Overlap(t *testing.T) {
	// "High Court of Delhi" with COURT over all of it and GPE over "Delhi".
	text := "the High Court of Delhi ruled"
	spans := []domain.TextSpan{
		{Start: 18, End: 23, Label: "GPE"},
		{Start: 4, End: 23, Label: "COURT"},
	}

	segments, diags := ResolveSpans(text, spans)

	require.Empty(t, diags)
	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 4},
		{Start: 4, End: 18, Labels: []string{"COURT"}},
		{Start: 18, End: 23, Labels: []string{"COURT", "GPE"}},
		{Start: 23, End: 29},
	}, segments)
	assert.Equal(t, []string{"the ", "High Court of ", "Delhi", " ruled"}, SegmentText(text, segments))
}

func TestResolveSpans_PartialOverlap(t *testing.T) {
	text := "abcdefghij"
	spans := []domain.TextSpan{
		{Start: 2, End: 6, Label: "A"},
		{Start: 4, End: 8, Label: "B"},
	}

	segments, _ := ResolveSpans(text, spans)

	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 2},
		{Start: 2, End: 4, Labels: []string{"A"}},
		{Start: 4, End: 6, Labels: []string{"A", "B"}},
		{Start: 6, End: 8, Labels: []string{"B"}},
		{Start: 8, End: 10},
	}, segments)
}

func TestResolveSpans_AdjacentSpansDoNotLeak(t *testing.T) {
	text := "aaaabbbb"
	spans := []domain.TextSpan{
		{Start: 4, End: 8, Label: "B"},
		{Start: 0, End: 4, Label: "A"},
	}

	segments, _ := ResolveSpans(text, spans)

	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 4, Labels: []string{"A"}},
		{Start: 4, End: 8, Labels: []string{"B"}},
	}, segments)
}

func TestResolveSpans_SameLabelNested(t *testing.T) {
	text := "0123456789"
	spans := []domain.TextSpan{
		{Start: 0, End: 10, Label: "ORG"},
		{Start: 3, End: 5, Label: "ORG"},
	}

	segments, _ := ResolveSpans(text, spans)

	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 3, Labels: []string{"ORG"}},
		{Start: 3, End: 5, Labels: []string{"ORG"}},
		{Start: 5, End: 10, Labels: []string{"ORG"}},
	}, segments)
}

func TestResolveSpans_DuplicatesCollapsed(t *testing.T) {
	text := "John Doe"
	span := domain.TextSpan{Start: 0, End: 4, Label: "JUDGE"}

	segments, diags := ResolveSpans(text, []domain.TextSpan{span, span, span})

	assert.Empty(t, diags)
	assert.Equal(t, []string{"JUDGE"}, segments[0].Labels)
}

func TestResolveSpans_MalformedDropped(t *testing.T) {
	text := "John filed on 2020."
	spans := []domain.TextSpan{
		{Start: -1, End: 4, Label: "OTHER_PERSON"},
		{Start: 14, End: 20, Label: "DATE"},
		{Start: 5, End: 5, Label: "ORG"},
		{Start: 9, End: 6, Label: "ORG"},
		{Start: 5, End: 10, Label: "ACTION"},
	}

	segments, diags := ResolveSpans(text, spans)

	require.Len(t, diags, 4)
	for i, d := range diags {
		assert.Equal(t, domain.DiagnosticMalformedSpan, d.Kind)
		assert.Equal(t, spans[i], d.Span)
	}
	assert.Equal(t, []domain.LabeledSegment{
		{Start: 0, End: 5},
		{Start: 5, End: 10, Labels: []string{"ACTION"}},
		{Start: 10, End: 19},
	}, segments)
	for _, seg := range segments {
		assert.False(t, seg.HasLabel("DATE"))
		assert.False(t, seg.HasLabel("OTHER_PERSON"))
	}
}

func TestResolveSpans_CharacterOffsets(t *testing.T) {
	text := "Café ₹500 paid"
	spans := []domain.TextSpan{{Start: 5, End: 9, Label: "MONEY"}}

	segments, diags := ResolveSpans(text, spans)

	require.Empty(t, diags)
	assert.Equal(t, []string{"Café ", "₹500", " paid"}, SegmentText(text, segments))
}

func TestResolveSpans_Deterministic(t *testing.T) {
	text := "abcdefghij"
	spans := []domain.TextSpan{
		{Start: 0, End: 6, Label: "Z"},
		{Start: 2, End: 8, Label: "A"},
		{Start: 2, End: 8, Label: "M"},
	}

	first, _ := ResolveSpans(text, spans)
	for i := 0; i < 20; i++ {
		again, _ := ResolveSpans(text, spans)
		assert.Equal(t, first, again)
	}
}

func assertPartition(t *testing.T, text string, segments []domain.LabeledSegment) {
	t.Helper()

	n := domain.NewTextIndex(text).Len()
	cursor := 0
	for _, seg := range segments {
		if seg.Start != cursor || seg.End <= seg.Start {
			t.Fatalf("segments do not partition text: %+v", segments)
		}
		cursor = seg.End
	}
	if cursor != n {
		t.Fatalf("segments end at %d, text has %d characters", cursor, n)
	}
	if got := strings.Join(SegmentText(text, segments), ""); got != text {
		t.Fatalf("round trip mismatch: %q != %q", got, text)
	}
}

func TestResolveSpans_Partition(t *testing.T) {
	text := "State of Punjab v. Amar Singh, AIR 1953 SC 131"
	spans := []domain.TextSpan{
		{Start: 0, End: 15, Label: "ORG"},
		{Start: 9, End: 15, Label: "GPE"},
		{Start: 19, End: 29, Label: "OTHER_PERSON"},
		{Start: 31, End: 46, Label: "PRECEDENT"},
		{Start: 35, End: 39, Label: "DATE"},
		{Start: 40, End: 100, Label: "BROKEN"},
	}

	segments, diags := ResolveSpans(text, spans)

	assert.Len(t, diags, 1)
	assertPartition(t, text, segments)
}

func FuzzResolveSpans_RoundTrip(f *testing.F) {
	f.Add("John filed on 2020.", 0, 4, 14, 18)
	f.Add("", 0, 0, 0, 0)
	f.Add("Café ₹500", -1, 3, 2, 9)
	f.Add("a\xffb", 1, 2, 0, 3)

	f.Fuzz(func(t *testing.T, text string, s1, e1, s2, e2 int) {
		spans := []domain.TextSpan{
			{Start: s1, End: e1, Label: "A"},
			{Start: s2, End: e2, Label: "B"},
		}
		segments, _ := ResolveSpans(text, spans)
		if text == "" {
			if len(segments) != 0 {
				t.Fatalf("expected no segments for empty text")
			}
			return
		}
		assertPartition(t, text, segments)
	})
}
