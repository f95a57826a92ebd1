// Package chunker splits long judgments into overlapping windows so each
// model request stays within the model's context.
package chunker

import "unicode"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 4000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunk is one window of the text.
type Chunk struct {
	// Start is the character offset of the window in the full text.
	Start int

	// Text is the window content.
	Text string
}

// Splitter cuts text into fixed-size character windows.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split returns the windows covering text. Consecutive windows share up to
// overlap characters, and a window ends after whitespace when one falls in
// its last overlap characters. Text no longer than one chunk is returned
// whole.
func (s *Splitter) Split(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}
	if n <= s.chunkSize {
		return []Chunk{{Start: 0, Text: text}}
	}

	chunks := make([]Chunk, 0, n/(s.chunkSize-s.overlap)+1)
	for start := 0; start < n; {
		end := min(start+s.chunkSize, n)
		if end < n {
			end = breakAfterSpace(runes, start, end, s.overlap)
		}

		chunks = append(chunks, Chunk{Start: start, Text: string(runes[start:end])})
		if end == n {
			break
		}

		next := end - s.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// breakAfterSpace moves end back to just after the last whitespace in the
// final window runes of [start, end).
func breakAfterSpace(runes []rune, start, end, window int) int {
	floor := max(end-window, start+1)
	for i := end; i > floor; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
