package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

func newTestRenderer() *Renderer {
	return New(&bytes.Buffer{}, WithSummaryTheme("notty"), WithWordWrap(120))
}

func TestRenderer_Format(t *testing.T) {
	assert.Equal(t, domain.FormatANSI, newTestRenderer().Format())
}

func TestEntities_PreservesText(t *testing.T) {
	cfg := domain.DefaultRenderConfig()
	cfg.ShowLabels = false
	text := "John filed on 2020.\nNext\tline"
	segments := []domain.LabeledSegment{
		{Start: 0, End: 4, Labels: []string{"OTHER_PERSON"}},
		{Start: 4, End: 14},
		{Start: 14, End: 18, Labels: []string{"DATE"}},
		{Start: 18, End: 30},
	}

	out := newTestRenderer().Entities(text, segments, cfg)

	assert.Equal(t, text, ansi.Strip(out.String()))
}

func TestEntities_ShowLabels(t *testing.T) {
	cfg := domain.DefaultRenderConfig()
	segments := []domain.LabeledSegment{{Start: 0, End: 5, Labels: []string{"GPE", "COURT"}}}

	out := newTestRenderer().Entities("Delhi", segments, cfg)

	assert.Equal(t, "Delhi COURT", ansi.Strip(out.String()))
}

func TestEntities_StripsEscapeSequences(t *testing.T) {
	cfg := domain.DefaultRenderConfig()
	cfg.ShowLabels = false
	text := "a\x1b[2Jb"

	out := newTestRenderer().Entities(text, nil, cfg)

	assert.NotContains(t, out.String(), "\x1b[2J")
	assert.Equal(t, "ab", out.String())
}

func TestEntities_MultilineEntity(t *testing.T) {
	cfg := domain.DefaultRenderConfig()
	cfg.ShowLabels = false
	text := "long\nx"

	out := newTestRenderer().Entities(text, []domain.LabeledSegment{{Start: 0, End: 6, Labels: []string{"ORG"}}}, cfg)

	assert.Equal(t, text, ansi.Strip(out.String()))
}

func TestEntities_Empty(t *testing.T) {
	assert.Empty(t, newTestRenderer().Entities("", nil, domain.DefaultRenderConfig()))
}

func TestSummary(t *testing.T) {
	sections := domain.SectionMap{
		{Name: "Facts", Text: "Whether x < y holds."},
		{Name: "Ruling", Text: "Appeal *dismissed*."},
	}

	out := ansi.Strip(newTestRenderer().Summary(sections).String())

	require.NotEmpty(t, out)
	assert.Contains(t, out, "Facts")
	assert.Contains(t, out, "Whether x < y holds.")
	assert.Contains(t, out, "Appeal *dismissed*.")
	assert.Less(t, strings.Index(out, "Facts"), strings.Index(out, "Ruling"))
}

func TestSummary_Empty(t *testing.T) {
	assert.Empty(t, newTestRenderer().Summary(nil))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\# 1\. a\_b \[c\]\(d\)`, escapeMarkdown("# 1. a_b [c](d)"))
	assert.Equal(t, "plain words", escapeMarkdown("plain words"))
}

func TestWrap(t *testing.T) {
	view := newTestRenderer().Wrap("hello", 0)

	assert.Equal(t, domain.FormatANSI, view.Format)
	assert.Equal(t, domain.DefaultMaxHeightPx, view.MaxHeightPx)
	assert.Contains(t, view.Markup.String(), "hello")
	assert.Contains(t, view.Markup.String(), "╭")
	assert.Contains(t, view.Markup.String(), "╯")
}
