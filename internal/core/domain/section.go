package domain

// Section is one named block of a summary.
type Section struct {
	// Name is the section heading, e.g. "Facts" or "Issues".
	Name string `json:"name" yaml:"name"`

	// Text is the section body.
	Text string `json:"text" yaml:"text"`
}

// SectionMap is an ordered list of summary sections. Order is decided by
// the summariser (or the caller) and is preserved through normalisation
// and rendering.
type SectionMap []Section

// Get returns the text of the first section with the given name.
func (m SectionMap) Get(name string) (string, bool) {
	for _, s := range m {
		if s.Name == name {
			return s.Text, true
		}
	}
	return "", false
}

// Names returns the section names in order.
func (m SectionMap) Names() []string {
	names := make([]string, len(m))
	for i, s := range m {
		names[i] = s.Name
	}
	return names
}
