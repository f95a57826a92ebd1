package mcp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/adapters/driven/fixture"
	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/services"
	"github.com/custodia-labs/lexview/internal/normalisers/section"
	"github.com/custodia-labs/lexview/internal/renderers/html"
)

// newTestServer builds a server over the real annotation service. A nil
// extractor and summariser leave the service without a model.
func newTestServer(t *testing.T, extractor *fixture.Extractor, summariser *fixture.Summariser) *Server {
	t.Helper()

	svc := services.NewAnnotationService(domain.DefaultRenderConfig(), html.New(), section.New(), nil, nil)
	if extractor != nil || summariser != nil {
		svc = services.NewAnnotationService(domain.DefaultRenderConfig(), html.New(), section.New(), extractor, summariser)
	}

	server, err := NewServer(&Ports{Annotation: svc})
	require.NoError(t, err)
	return server
}
