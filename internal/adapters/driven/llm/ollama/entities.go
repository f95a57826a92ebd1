package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// defaultEntitiesPrompt is used when no PromptStore is configured.
const defaultEntitiesPrompt = `Find the legal entities in the text below.
Respond with JSON only: {"entities": [{"text": "<exact text>", "label": "<LABEL>"}]}
Use labels such as CASE_NUMBER, COURT, JUDGE, STATUTE, PROVISION, DATE,
OTHER_PERSON, ORG and GPE. List entities in order of appearance.

Text:
%s`

// entity is one item of the model's entity list.
type entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// entityList is the expected response shape.
type entityList struct {
	Entities []entity `json:"entities"`
}

// Extract asks the model for entities and locates each one in text.
func (c *Client) Extract(ctx context.Context, text string) ([]domain.TextSpan, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	out, err := c.generate(ctx, c.prompt(driven.PromptEntities, defaultEntitiesPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	entities, err := parseEntities(out)
	if err != nil {
		return nil, err
	}

	spans := locate(text, entities)
	logger.Debug("Model returned %d entities, located %d", len(entities), len(spans))
	return spans, nil
}

// parseEntities accepts {"entities": [...]} or a bare list.
func parseEntities(out string) ([]entity, error) {
	var list entityList
	if err := json.Unmarshal([]byte(out), &list); err == nil {
		return list.Entities, nil
	}

	var bare []entity
	if err := json.Unmarshal([]byte(out), &bare); err != nil {
		return nil, fmt.Errorf("%w: entities are not valid JSON: %v", domain.ErrModelResponse, err)
	}
	return bare, nil
}

// locate converts entity texts to character spans. Each entity is searched
// for from the end of the previous match, then from the start of the text;
// entities that never occur are dropped.
func locate(text string, entities []entity) []domain.TextSpan {
	idx := domain.NewTextIndex(text)
	spans := make([]domain.TextSpan, 0, len(entities))
	cursor := 0

	for _, e := range entities {
		needle := strings.TrimSpace(e.Text)
		label := strings.ToUpper(strings.TrimSpace(e.Label))
		if needle == "" || label == "" {
			continue
		}

		at := strings.Index(text[cursor:], needle)
		if at >= 0 {
			at += cursor
		} else {
			at = strings.Index(text, needle)
		}
		if at < 0 {
			logger.Debug("Entity %q not found in text, dropped", needle)
			continue
		}

		end := at + len(needle)
		spans = append(spans, domain.TextSpan{
			Start: idx.Offset(at),
			End:   idx.Offset(end),
			Label: label,
		})
		cursor = end
	}
	return spans
}
