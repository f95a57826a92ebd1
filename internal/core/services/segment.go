package services

import (
	"sort"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// ResolveSpans partitions text into labelled segments.
//
// Spans may arrive unsorted, overlapping or duplicated. Spans outside the
// text or without length are dropped and reported as diagnostics. The
// surviving span boundaries, plus 0 and the text length, become
// breakpoints; a sweep over the sorted breakpoints tracks which labels are
// open and emits one segment per gap between consecutive breakpoints.
//
// Concatenating the text of the returned segments in order always
// reproduces text exactly.
func ResolveSpans(text string, spans []domain.TextSpan) ([]domain.LabeledSegment, []domain.Diagnostic) {
	n := domain.NewTextIndex(text).Len()
	return resolve(n, spans)
}

// resolve works on a text length so callers holding an index avoid
// rebuilding it.
func resolve(n int, spans []domain.TextSpan) ([]domain.LabeledSegment, []domain.Diagnostic) {
	var diags []domain.Diagnostic

	// Validate and drop exact duplicates.
	seen := make(map[domain.TextSpan]struct{}, len(spans))
	valid := make([]domain.TextSpan, 0, len(spans))
	for _, s := range spans {
		if !s.Within(n) {
			diags = append(diags, domain.MalformedSpan(s, n))
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		valid = append(valid, s)
	}

	if n == 0 {
		return nil, diags
	}

	// Boundary events per offset.
	opens := make(map[int][]string)
	closes := make(map[int][]string)
	points := []int{0, n}
	for _, s := range valid {
		opens[s.Start] = append(opens[s.Start], s.Label)
		closes[s.End] = append(closes[s.End], s.Label)
		points = append(points, s.Start, s.End)
	}
	points = uniqueSorted(points)

	// Sweep: close before open so a span ending where another starts does
	// not leak into the next segment.
	active := make(map[string]int)
	segments := make([]domain.LabeledSegment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		at := points[i]
		for _, label := range closes[at] {
			active[label]--
			if active[label] == 0 {
				delete(active, label)
			}
		}
		for _, label := range opens[at] {
			active[label]++
		}

		segments = append(segments, domain.LabeledSegment{
			Start:  at,
			End:    points[i+1],
			Labels: activeLabels(active),
		})
	}

	return segments, diags
}

// SegmentText returns the raw text of each segment, in order.
func SegmentText(text string, segments []domain.LabeledSegment) []string {
	idx := domain.NewTextIndex(text)
	out := make([]string, len(segments))
	for i, seg := range segments {
		out[i] = idx.Slice(seg.Start, seg.End)
	}
	return out
}

func activeLabels(active map[string]int) []string {
	if len(active) == 0 {
		return nil
	}
	labels := make([]string, 0, len(active))
	for label := range active {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func uniqueSorted(points []int) []int {
	sort.Ints(points)
	out := points[:0]
	for _, p := range points {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	return out
}
