package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
		title    string
	}{
		{ViewEntities, "entities", "Entities"},
		{ViewSummary, "summary", "Summary"},
		{ViewType(99), "unknown", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
			assert.Equal(t, tt.title, tt.view.Title())
		})
	}
}

func TestViewType_NextPrevWrap(t *testing.T) {
	assert.Equal(t, ViewSummary, ViewEntities.Next())
	assert.Equal(t, ViewEntities, ViewSummary.Next())
	assert.Equal(t, ViewSummary, ViewEntities.Prev())
	assert.Equal(t, ViewEntities, ViewSummary.Prev())
}

func TestAnnotationLoaded(t *testing.T) {
	t.Run("with views", func(t *testing.T) {
		msg := AnnotationLoaded{
			Entities: domain.EntitiesView{View: domain.RenderedView{Markup: "e"}},
			Summary:  domain.SummaryView{View: domain.RenderedView{Markup: "s"}},
		}
		assert.Equal(t, domain.Markup("e"), msg.Entities.View.Markup)
		assert.Equal(t, domain.Markup("s"), msg.Summary.View.Markup)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := AnnotationLoaded{Err: errors.New("boom")}
		assert.EqualError(t, msg.Err, "boom")
	})
}

func TestErrorOccurred(t *testing.T) {
	err := errors.New("test error")
	msg := ErrorOccurred{Err: err}
	assert.Equal(t, err, msg.Err)
}
