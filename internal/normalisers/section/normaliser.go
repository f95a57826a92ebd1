// Package section provides the normaliser for summary section text.
package section

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Whitespace covers ASCII \s, vertical tab, NEL and every Unicode
// separator. Line breaks are a subset of it.
const (
	whitespace = `[\s\v\x{85}\p{Z}]`
	lineBreak  = `[\r\n\x{85}\x{2028}\x{2029}]`
)

// Pre-compiled regular expressions for section cleanup.
var (
	spaceBeforePeriod = regexp.MustCompile(whitespace + `+\.`)
	lineBreaks        = regexp.MustCompile(lineBreak + `+`)
	whitespaceRuns    = regexp.MustCompile(whitespace + `+`)
)

// step is one stage of the cleanup.
type step func(string) string

// steps run in order. NFC must stay last: removing characters earlier can
// bring a base letter and a combining mark together.
var steps = []step{
	func(s string) string { return spaceBeforePeriod.ReplaceAllString(s, ".") },
	func(s string) string { return lineBreaks.ReplaceAllString(s, "") },
	func(s string) string { return whitespaceRuns.ReplaceAllString(s, " ") },
	strings.TrimSpace,
	norm.NFC.String,
}

// Normaliser cleans summary section text produced by a summarisation model.
// It is stateless and idempotent.
type Normaliser struct{}

// New creates a new section normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "section"
}

// Normalise joins the text into a single line with single spaces, removes
// whitespace before periods and trims the ends.
func (n *Normaliser) Normalise(text string) string {
	for _, fn := range steps {
		text = fn(text)
	}
	return text
}
