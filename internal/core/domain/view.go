package domain

import "github.com/google/uuid"

// Markup is trusted presentation output: wrapper tags produced by a
// renderer around content that has already been escaped. Untrusted text
// must never be converted to Markup directly.
type Markup string

// String returns the markup as a plain string.
func (m Markup) String() string {
	return string(m)
}

// Format identifies the markup language of a view.
type Format string

// Available formats.
const (
	// FormatHTML is HTML markup for browsers and web hosts.
	FormatHTML Format = "html"

	// FormatANSI is terminal text with ANSI styling.
	FormatANSI Format = "ansi"
)

// IsValid returns true if the format is recognised.
func (f Format) IsValid() bool {
	return f == FormatHTML || f == FormatANSI
}

// viewNamespace scopes view IDs.
var viewNamespace = uuid.MustParse("6f1c0a52-3d5e-4c1b-9a6e-3b1f5d2c7e90")

// RenderedView is the terminal output of a render call: markup plus the
// scroll constraint a host should honour when embedding it.
type RenderedView struct {
	// Markup is the complete, safe view content.
	Markup Markup `json:"markup"`

	// Format is the markup language.
	Format Format `json:"format"`

	// MaxHeightPx is the maximum height before the view scrolls.
	MaxHeightPx int `json:"max_height_px"`
}

// ID returns a content-derived identifier. Identical views share an ID.
func (v RenderedView) ID() string {
	return uuid.NewSHA1(viewNamespace, []byte(string(v.Format)+"\x00"+string(v.Markup))).String()
}

// Empty returns true if the view has no markup at all.
func (v RenderedView) Empty() bool {
	return v.Markup == ""
}
