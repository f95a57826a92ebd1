package mcp

import (
	"github.com/custodia-labs/lexview/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Annotation renders entity and summary views.
	Annotation driving.AnnotationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Annotation == nil {
		return ErrMissingAnnotationService
	}
	return nil
}
