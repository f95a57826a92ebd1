package domain

// Document is the plain text of an input file, ready for annotation.
// Span offsets refer to Text exactly as stored here.
type Document struct {
	// URI is the original location.
	URI string

	// Title is the human-readable title.
	Title string

	// Text is the extracted document text.
	Text string

	// Format names the normaliser that produced Text (e.g., "text").
	Format string
}
