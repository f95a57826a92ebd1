package domain

// EntitiesView is the result of rendering entity spans over a text.
type EntitiesView struct {
	// View is the wrapped, presentation-ready markup.
	View RenderedView

	// Segments is the resolved partition of the text.
	Segments []LabeledSegment

	// Diagnostics lists dropped spans and unknown labels.
	Diagnostics []Diagnostic
}

// SummaryView is the result of rendering summary sections.
type SummaryView struct {
	// View is the wrapped, presentation-ready markup.
	View RenderedView

	// Sections holds the normalised sections that were rendered.
	Sections SectionMap
}

// Annotation is the complete review output for one document.
type Annotation struct {
	// Text is the document text the views were rendered over.
	Text string

	// Spans are the spans returned by the extractor.
	Spans []TextSpan

	// Entities is the highlighted entities view.
	Entities EntitiesView

	// Summary is the sectioned summary view.
	Summary SummaryView
}
