// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/lexview/internal/core/domain"
)

// ViewType identifies which tab is active.
type ViewType int

const (
	// ViewEntities is the highlighted entities tab.
	ViewEntities ViewType = iota
	// ViewSummary is the sectioned summary tab.
	ViewSummary
)

// Views lists the tabs in display order.
var Views = []ViewType{ViewEntities, ViewSummary}

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEntities:
		return "entities"
	case ViewSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Title returns the tab caption.
func (v ViewType) Title() string {
	switch v {
	case ViewEntities:
		return "Entities"
	case ViewSummary:
		return "Summary"
	default:
		return "?"
	}
}

// Next returns the tab after v, wrapping around.
func (v ViewType) Next() ViewType {
	return Views[(int(v)+1)%len(Views)]
}

// Prev returns the tab before v, wrapping around.
func (v ViewType) Prev() ViewType {
	return Views[(int(v)+len(Views)-1)%len(Views)]
}

// ViewChanged is sent when switching tabs.
type ViewChanged struct {
	View ViewType
}

// AnnotationLoaded carries rendered views back to the model.
type AnnotationLoaded struct {
	Entities domain.EntitiesView
	Summary  domain.SummaryView
	Err      error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}
