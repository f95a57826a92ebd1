package domain

import (
	"fmt"
	"regexp"
	"slices"
)

// Render defaults.
const (
	// DefaultMaxHeightPx is the scroll viewport height used when none is set.
	DefaultMaxHeightPx = 400

	// DefaultEntityColor is used for labels missing from the palette.
	DefaultEntityColor = "#dddddd"

	// DefaultForeground keeps entity text dark regardless of label colour.
	DefaultForeground = "#000000"

	// DefaultBackground is the light surface entities are drawn on.
	DefaultBackground = "#ffffff"

	// DefaultFont is the font family of the entities view.
	DefaultFont = "monospace"
)

// DefaultPalette returns the colours for the legal entity labels.
func DefaultPalette() map[string]string {
	return map[string]string{
		"CASE_NUMBER":  "#f3e79b",
		"DATE":         "#f5b971",
		"COURT":        "#b5ead7",
		"OTHER_PERSON": "#ffdac1",
		"JUDGE":        "#f8c291",
		"PROVISION":    "#c7ceea",
		"STATUTE":      "#e0bbe4",
		"ORG":          "#bde0fe",
		"GPE":          "#ffb4a2",
		"PETITIONER":   "#a0c4ff",
		"RESPONDENT":   "#ffc6ff",
		"LAWYER":       "#caffbf",
		"WITNESS":      "#fdffb6",
		"PRECEDENT":    "#9bf6ff",
	}
}

// DefaultPrecedence returns the label order used to pick a primary colour
// when spans overlap. Earlier labels win.
func DefaultPrecedence() []string {
	return []string{
		"CASE_NUMBER",
		"COURT",
		"JUDGE",
		"STATUTE",
		"PROVISION",
		"PRECEDENT",
		"DATE",
		"PETITIONER",
		"RESPONDENT",
		"LAWYER",
		"WITNESS",
		"OTHER_PERSON",
		"ORG",
		"GPE",
	}
}

// RenderConfig is the static presentation configuration. It is built once
// at start-up and passed by value; Clone before mutating a copy.
type RenderConfig struct {
	// Palette maps a label to a colour token.
	Palette map[string]string

	// DefaultColor is used for labels absent from Palette.
	DefaultColor string

	// Foreground is the text colour forced on every entity.
	Foreground string

	// Background is the surface colour of the entities view.
	Background string

	// Font is the CSS font family of the entities view.
	Font string

	// Precedence orders labels for overlap tie-breaking.
	Precedence []string

	// MaxHeightPx is the scroll viewport height.
	MaxHeightPx int

	// ShowLabels appends the primary label as a badge inside each entity.
	ShowLabels bool
}

// DefaultRenderConfig returns the built-in configuration.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Palette:      DefaultPalette(),
		DefaultColor: DefaultEntityColor,
		Foreground:   DefaultForeground,
		Background:   DefaultBackground,
		Font:         DefaultFont,
		Precedence:   DefaultPrecedence(),
		MaxHeightPx:  DefaultMaxHeightPx,
		ShowLabels:   true,
	}
}

// ColorFor returns the colour for label, falling back to DefaultColor.
func (c RenderConfig) ColorFor(label string) string {
	if color, ok := c.Palette[label]; ok {
		return color
	}
	if c.DefaultColor == "" {
		return DefaultEntityColor
	}
	return c.DefaultColor
}

// Knows reports whether label has its own palette entry.
func (c RenderConfig) Knows(label string) bool {
	_, ok := c.Palette[label]
	return ok
}

// PrimaryLabel picks the label that colours a segment using the configured
// precedence.
func (c RenderConfig) PrimaryLabel(labels []string) string {
	return PrimaryLabel(labels, c.Precedence)
}

// Clone returns a deep copy.
func (c RenderConfig) Clone() RenderConfig {
	out := c
	out.Palette = make(map[string]string, len(c.Palette))
	for k, v := range c.Palette {
		out.Palette[k] = v
	}
	out.Precedence = slices.Clone(c.Precedence)
	return out
}

// colorToken accepts hex colours and bare CSS colour names. Anything else
// could smuggle extra declarations into a style attribute.
var colorToken = regexp.MustCompile(`^(#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+)$`)

// fontToken accepts comma separated family names.
var fontToken = regexp.MustCompile(`^[a-zA-Z0-9 ,\-]+$`)

// IsFontToken reports whether s is an acceptable font family list.
func IsFontToken(s string) bool {
	return fontToken.MatchString(s)
}

// IsColorToken reports whether s is an acceptable colour token.
func IsColorToken(s string) bool {
	return colorToken.MatchString(s)
}

// Validate checks every colour token and numeric bound.
func (c RenderConfig) Validate() error {
	for label, color := range c.Palette {
		if !IsColorToken(color) {
			return fmt.Errorf("%w: palette colour %q for label %q", ErrInvalidConfig, color, label)
		}
	}
	named := map[string]string{
		"default_color": c.DefaultColor,
		"foreground":    c.Foreground,
		"background":    c.Background,
	}
	for key, color := range named {
		if !IsColorToken(color) {
			return fmt.Errorf("%w: %s %q", ErrInvalidConfig, key, color)
		}
	}
	if c.Font != "" && !IsFontToken(c.Font) {
		return fmt.Errorf("%w: font %q", ErrInvalidConfig, c.Font)
	}
	if c.MaxHeightPx < 0 {
		return fmt.Errorf("%w: max_height_px must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PrimaryLabel picks the label that decides a segment's colour.
// Labels earlier in precedence win; unlisted labels rank after every
// listed one; ties fall back to lexical order. Returns "" for no labels.
func PrimaryLabel(labels []string, precedence []string) string {
	if len(labels) == 0 {
		return ""
	}

	rank := make(map[string]int, len(precedence))
	for i, label := range precedence {
		if _, ok := rank[label]; !ok {
			rank[label] = i
		}
	}
	rankOf := func(label string) int {
		if r, ok := rank[label]; ok {
			return r
		}
		return len(precedence)
	}

	best := labels[0]
	for _, label := range labels[1:] {
		rb, rl := rankOf(best), rankOf(label)
		if rl < rb || (rl == rb && label < best) {
			best = label
		}
	}
	return best
}
