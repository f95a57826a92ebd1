// Package renderers provides implementations of the driven.Renderer
// interface. Each renderer produces one markup format.
//
// # Available Renderers
//
//   - html: Escaped HTML fragments for browsers and web hosts
//   - terminal: ANSI-styled text for terminals and the TUI
package renderers
