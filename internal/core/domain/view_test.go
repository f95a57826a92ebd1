package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderedView_IDDeterministic(t *testing.T) {
	a := RenderedView{Markup: "<p>x</p>", Format: FormatHTML, MaxHeightPx: 400}
	b := RenderedView{Markup: "<p>x</p>", Format: FormatHTML, MaxHeightPx: 400}
	c := RenderedView{Markup: "<p>y</p>", Format: FormatHTML, MaxHeightPx: 400}
	d := RenderedView{Markup: "<p>x</p>", Format: FormatANSI, MaxHeightPx: 400}

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.NotEqual(t, a.ID(), d.ID())
	assert.Len(t, a.ID(), 36)
}

func TestRenderedView_Empty(t *testing.T) {
	assert.True(t, RenderedView{}.Empty())
	assert.False(t, RenderedView{Markup: "<div></div>"}.Empty())
}

func TestFormat_IsValid(t *testing.T) {
	assert.True(t, FormatHTML.IsValid())
	assert.True(t, FormatANSI.IsValid())
	assert.False(t, Format("pdf").IsValid())
}

func TestSectionMap_Lookup(t *testing.T) {
	m := SectionMap{
		{Name: "Facts", Text: "The court held that X."},
		{Name: "Issues", Text: ""},
	}

	text, ok := m.Get("Facts")
	assert.True(t, ok)
	assert.Equal(t, "The court held that X.", text)

	_, ok = m.Get("Ratio")
	assert.False(t, ok)
	assert.Equal(t, []string{"Facts", "Issues"}, m.Names())
}
