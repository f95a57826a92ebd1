package driven

// Normaliser cleans raw section text into a display-ready string.
// Implementations must be idempotent and never fail.
type Normaliser interface {
	// Name identifies the normaliser in logs.
	Name() string

	// Normalise returns the cleaned text.
	Normalise(text string) string
}
