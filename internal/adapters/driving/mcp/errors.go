// Package mcp provides an MCP (Model Context Protocol) server adapter for
// lexview. It lets AI assistants render entity and summary views.
package mcp

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("mcp: annotation service is required")
