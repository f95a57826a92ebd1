package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for lexview resources.
	uriScheme = "lexview://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config/render",
		Name:        "render-config",
		Description: "Palette, label precedence and layout settings used for rendering",
		MIMEType:    "application/json",
	}, s.handleRenderConfigResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "labels/{label}",
		Name:        "label-color",
		Description: "Highlight colour of one entity label",
		MIMEType:    "text/plain",
	}, s.handleLabelResource)
}

// renderConfigInfo is the JSON shape of the render configuration.
type renderConfigInfo struct {
	Palette      map[string]string `json:"palette"`
	DefaultColor string            `json:"default_color"`
	Foreground   string            `json:"foreground"`
	Background   string            `json:"background"`
	Font         string            `json:"font"`
	Precedence   []string          `json:"precedence"`
	MaxHeightPx  int               `json:"max_height_px"`
	ShowLabels   bool              `json:"show_labels"`
}

// handleRenderConfigResource returns the effective render configuration.
func (s *Server) handleRenderConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	cfg := s.ports.Annotation.Config()
	data, err := json.MarshalIndent(renderConfigInfo{
		Palette:      cfg.Palette,
		DefaultColor: cfg.DefaultColor,
		Foreground:   cfg.Foreground,
		Background:   cfg.Background,
		Font:         cfg.Font,
		Precedence:   cfg.Precedence,
		MaxHeightPx:  cfg.MaxHeightPx,
		ShowLabels:   cfg.ShowLabels,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling render config: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleLabelResource returns the colour used for one label. Labels
// without a palette entry resolve to the default colour.
func (s *Server) handleLabelResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	label := extractLabel(req.Params.URI)
	if label == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     s.ports.Annotation.Config().ColorFor(label),
		}},
	}, nil
}

// extractLabel extracts the label from a URI like lexview://labels/{label}.
func extractLabel(uri string) string {
	const prefix = uriScheme + "labels/"

	label, ok := strings.CutPrefix(uri, prefix)
	if !ok || strings.Contains(label, "/") {
		return ""
	}
	return label
}
