package ollama

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

// defaultSummaryPrompt is used when no PromptStore is configured.
const defaultSummaryPrompt = `Summarise the court judgment below.
Respond with a JSON object mapping section headings ("Facts", "Issues",
"Arguments", "Reasoning", "Decision") to section text, in that order.

Judgment:
%s`

// Summarise asks the model for a sectioned summary. Sections keep the
// order in which the model wrote them.
func (c *Client) Summarise(ctx context.Context, text string) (domain.SectionMap, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	out, err := c.generate(ctx, c.prompt(driven.PromptSummary, defaultSummaryPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("summarise: %w", err)
	}
	return parseSections(out)
}

// parseSections decodes a JSON object through yaml.v3 nodes, which keep
// key order. List values are joined with spaces.
func parseSections(out string) (domain.SectionMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		return nil, fmt.Errorf("%w: summary is not valid JSON: %v", domain.ErrModelResponse, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: summary must be a JSON object", domain.ErrModelResponse)
	}

	root := doc.Content[0]
	sections := make(domain.SectionMap, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, val := root.Content[i].Value, root.Content[i+1]
		var text string
		switch val.Kind {
		case yaml.ScalarNode:
			text = val.Value
		case yaml.SequenceNode:
			parts := make([]string, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode {
					parts = append(parts, item.Value)
				}
			}
			text = strings.Join(parts, " ")
		default:
			return nil, fmt.Errorf("%w: section %q is not text", domain.ErrModelResponse, name)
		}
		sections = append(sections, domain.Section{Name: name, Text: text})
	}
	return sections, nil
}
