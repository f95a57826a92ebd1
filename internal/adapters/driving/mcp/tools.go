package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/lexview/internal/core/domain"
)

// SpanInput is one labelled character range.
type SpanInput struct {
	Start int    `json:"start" jsonschema:"first character offset, inclusive"`
	End   int    `json:"end" jsonschema:"last character offset, exclusive"`
	Label string `json:"label" jsonschema:"entity label such as COURT or DATE"`
}

// SectionInput is one named summary section.
type SectionInput struct {
	Name string `json:"name" jsonschema:"section heading"`
	Text string `json:"text" jsonschema:"section body"`
}

// RenderEntitiesInput is the input schema for the render_entities tool.
type RenderEntitiesInput struct {
	Text  string      `json:"text" jsonschema:"the document text"`
	Spans []SpanInput `json:"spans,omitempty" jsonschema:"entity spans over the text, in any order"`
}

// RenderSummaryInput is the input schema for the render_summary tool.
type RenderSummaryInput struct {
	Sections []SectionInput `json:"sections" jsonschema:"summary sections in display order"`
}

// AnnotateInput is the input schema for the annotate tool.
type AnnotateInput struct {
	Text string `json:"text" jsonschema:"the document text to extract entities from and summarise"`
}

// ViewOutput describes one rendered view.
type ViewOutput struct {
	ID          string `json:"id"`
	Format      string `json:"format"`
	Markup      string `json:"markup"`
	MaxHeightPx int    `json:"max_height_px"`
}

// RenderEntitiesOutput is the output schema for the render_entities tool.
type RenderEntitiesOutput struct {
	View        ViewOutput `json:"view"`
	Segments    int        `json:"segments"`
	Diagnostics []string   `json:"diagnostics,omitempty"`
}

// RenderSummaryOutput is the output schema for the render_summary tool.
type RenderSummaryOutput struct {
	View     ViewOutput     `json:"view"`
	Sections []SectionInput `json:"sections"`
}

// AnnotateOutput is the output schema for the annotate tool.
type AnnotateOutput struct {
	Entities RenderEntitiesOutput `json:"entities"`
	Summary  RenderSummaryOutput  `json:"summary"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_entities",
		Description: "Render document text with labelled entity spans highlighted as HTML",
	}, s.handleRenderEntities)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_summary",
		Description: "Clean up summary sections and render them as HTML",
	}, s.handleRenderSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "annotate",
		Description: "Extract entities and summarise a legal document with the configured model, then render both views",
	}, s.handleAnnotate)
}

// handleRenderEntities handles the render_entities tool invocation.
func (s *Server) handleRenderEntities(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderEntitiesInput,
) (*mcp.CallToolResult, RenderEntitiesOutput, error) {
	spans := make([]domain.TextSpan, len(input.Spans))
	for i, sp := range input.Spans {
		spans[i] = domain.TextSpan{Start: sp.Start, End: sp.End, Label: sp.Label}
	}

	view := s.ports.Annotation.RenderEntities(input.Text, spans)
	return nil, entitiesOutput(view), nil
}

// handleRenderSummary handles the render_summary tool invocation.
func (s *Server) handleRenderSummary(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderSummaryInput,
) (*mcp.CallToolResult, RenderSummaryOutput, error) {
	sections := make(domain.SectionMap, len(input.Sections))
	for i, sec := range input.Sections {
		sections[i] = domain.Section{Name: sec.Name, Text: sec.Text}
	}

	view := s.ports.Annotation.RenderSummary(sections)
	return nil, summaryOutput(view), nil
}

// handleAnnotate handles the annotate tool invocation.
func (s *Server) handleAnnotate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnnotateInput,
) (*mcp.CallToolResult, AnnotateOutput, error) {
	ann, err := s.ports.Annotation.Annotate(ctx, input.Text)
	if err != nil {
		return nil, AnnotateOutput{}, err
	}

	return nil, AnnotateOutput{
		Entities: entitiesOutput(ann.Entities),
		Summary:  summaryOutput(ann.Summary),
	}, nil
}

func viewOutput(v domain.RenderedView) ViewOutput {
	return ViewOutput{
		ID:          v.ID(),
		Format:      string(v.Format),
		Markup:      v.Markup.String(),
		MaxHeightPx: v.MaxHeightPx,
	}
}

func entitiesOutput(view domain.EntitiesView) RenderEntitiesOutput {
	out := RenderEntitiesOutput{
		View:     viewOutput(view.View),
		Segments: len(view.Segments),
	}
	for _, d := range view.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.Message)
	}
	return out
}

func summaryOutput(view domain.SummaryView) RenderSummaryOutput {
	out := RenderSummaryOutput{
		View:     viewOutput(view.View),
		Sections: make([]SectionInput, len(view.Sections)),
	}
	for i, sec := range view.Sections {
		out.Sections[i] = SectionInput{Name: sec.Name, Text: sec.Text}
	}
	return out
}
