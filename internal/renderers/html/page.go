package html

import (
	"fmt"
	"html"
	"strings"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// PageSection is one titled view on a standalone page.
type PageSection struct {
	Heading string
	View    domain.RenderedView
}

// Page assembles a complete HTML document around already rendered views.
// Headings and the title are escaped; view markup is trusted.
func Page(title string, sections ...PageSection) domain.Markup {
	var b strings.Builder
	fmt.Fprintf(&b,
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title>`+
			`<style>body { font-family: sans-serif; margin: 2rem; } section { margin-bottom: 2rem; }</style>`+
			`</head><body><h1>%s</h1>`,
		html.EscapeString(title), html.EscapeString(title),
	)
	for _, sec := range sections {
		fmt.Fprintf(&b, `<section><h2>%s</h2>%s</section>`, html.EscapeString(sec.Heading), sec.View.Markup)
	}
	b.WriteString(`</body></html>`)
	return domain.Markup(b.String())
}

// Form returns a page with a single text area that posts to action. text
// pre-fills the area.
func Form(title, action, text string) domain.Markup {
	return domain.Markup(fmt.Sprintf(
		`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>`+
			`<h1>%s</h1><form method="post" action="%s">`+
			`<textarea name="text" rows="20" cols="100" placeholder="Paste legal text here">%s</textarea>`+
			`<p><button type="submit">Annotate</button></p></form></body></html>`,
		html.EscapeString(title), html.EscapeString(title), html.EscapeString(action), html.EscapeString(text),
	))
}
