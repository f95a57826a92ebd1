// Package fixture provides model capabilities backed by preloaded data.
//
// Spans and sections are read from JSON or YAML documents. Both formats go
// through the yaml.v3 node API so that the key order of a section mapping
// is kept exactly as written.
package fixture

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

// Ensure the fixtures implement the capability interfaces.
var (
	_ driven.EntityExtractor = (*Extractor)(nil)
	_ driven.Summariser      = (*Summariser)(nil)
)

// Extractor returns the same spans for every text.
type Extractor struct {
	spans []domain.TextSpan
}

// NewExtractor creates an extractor that always returns spans.
func NewExtractor(spans []domain.TextSpan) *Extractor {
	return &Extractor{spans: slices.Clone(spans)}
}

// Extract returns a copy of the preloaded spans.
func (e *Extractor) Extract(ctx context.Context, _ string) ([]domain.TextSpan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(e.spans), nil
}

// Summariser returns the same sections for every text.
type Summariser struct {
	sections domain.SectionMap
}

// NewSummariser creates a summariser that always returns sections.
func NewSummariser(sections domain.SectionMap) *Summariser {
	return &Summariser{sections: slices.Clone(sections)}
}

// Summarise returns a copy of the preloaded sections.
func (s *Summariser) Summarise(ctx context.Context, _ string) (domain.SectionMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.sections), nil
}

// spanList accepts either a bare list or {"spans": [...]}.
type spanList struct {
	Spans []domain.TextSpan `yaml:"spans"`
}

// DecodeSpans parses a span list. The document is either a sequence of
// {start, end, label} objects or a mapping with a "spans" key.
func DecodeSpans(data []byte) ([]domain.TextSpan, error) {
	root, err := parse(data)
	if err != nil || root == nil {
		return nil, err
	}

	switch root.Kind {
	case yaml.SequenceNode:
		var spans []domain.TextSpan
		if err := root.Decode(&spans); err != nil {
			return nil, fmt.Errorf("%w: spans: %v", domain.ErrInvalidInput, err)
		}
		return spans, nil
	case yaml.MappingNode:
		var list spanList
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("%w: spans: %v", domain.ErrInvalidInput, err)
		}
		return list.Spans, nil
	default:
		return nil, fmt.Errorf("%w: spans must be a list", domain.ErrInvalidInput)
	}
}

// DecodeSections parses summary sections. A mapping of name to text keeps
// its key order; a sequence of {name, text} objects is also accepted.
func DecodeSections(data []byte) (domain.SectionMap, error) {
	root, err := parse(data)
	if err != nil || root == nil {
		return nil, err
	}
	return SectionsFromNode(root)
}

// SectionsFromNode converts a decoded YAML node into sections.
func SectionsFromNode(node *yaml.Node) (domain.SectionMap, error) {
	switch node.Kind {
	case yaml.MappingNode:
		sections := make(domain.SectionMap, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: section %q must be text", domain.ErrInvalidInput, key.Value)
			}
			sections = append(sections, domain.Section{Name: key.Value, Text: val.Value})
		}
		return sections, nil
	case yaml.SequenceNode:
		var sections domain.SectionMap
		if err := node.Decode(&sections); err != nil {
			return nil, fmt.Errorf("%w: sections: %v", domain.ErrInvalidInput, err)
		}
		return sections, nil
	default:
		return nil, fmt.Errorf("%w: sections must be a mapping or a list", domain.ErrInvalidInput)
	}
}

// LoadSpans reads spans from r.
func LoadSpans(r io.Reader) ([]domain.TextSpan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read spans: %w", err)
	}
	return DecodeSpans(data)
}

// LoadSections reads sections from r.
func LoadSections(r io.Reader) (domain.SectionMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sections: %w", err)
	}
	return DecodeSections(data)
}

// LoadSpansFile reads spans from the file at path.
func LoadSpansFile(path string) ([]domain.TextSpan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSpans(f)
}

// LoadSectionsFile reads sections from the file at path.
func LoadSectionsFile(path string) (domain.SectionMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadSections(f)
}

// parse returns the document's root node, or nil for an empty document.
func parse(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}
