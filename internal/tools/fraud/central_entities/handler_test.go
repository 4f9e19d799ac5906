package central_entities_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	analytics "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	graphsource_mocks "github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/central_entities"
)

func call(t *testing.T, deps *tools.ToolDependencies, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := central_entities.Handler(deps)(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func decode(t *testing.T, result *mcp.CallToolResult) []centrality.NodeCentrality {
	t.Helper()
	require.False(t, result.IsError)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var ranked []centrality.NodeCentrality
	require.NoError(t, json.Unmarshal([]byte(text.Text), &ranked))
	return ranked
}

func TestRankCentralEntitiesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("rank-central-entities").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	s, err := scenario.Get(scenario.RecycledPassenger)
	require.NoError(t, err)
	deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Source: s.Source()}

	t.Run("default limit returns every node of a small graph", func(t *testing.T) {
		ranked := decode(t, call(t, deps, nil))
		require.Len(t, ranked, 10)
		assert.Equal(t, "CLM-101", ranked[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		ranked := decode(t, call(t, deps, map[string]any{"limit": 3}))
		assert.Len(t, ranked, 3)
	})

	t.Run("flagged only", func(t *testing.T) {
		ranked := decode(t, call(t, deps, map[string]any{"flaggedOnly": true}))
		require.Len(t, ranked, 4)
		for _, r := range ranked {
			assert.True(t, r.Flagged)
		}
	})

	t.Run("node type filter accepts aliases", func(t *testing.T) {
		ranked := decode(t, call(t, deps, map[string]any{"nodeType": "Doctor"}))
		require.Len(t, ranked, 1)
		assert.Equal(t, "DOC-X", ranked[0].ID)
		assert.Equal(t, model.NodeTypeMedicalProvider, ranked[0].Type)
	})

	t.Run("negative limit", func(t *testing.T) {
		assert.True(t, call(t, deps, map[string]any{"limit": -5}).IsError)
	})

	t.Run("source error", func(t *testing.T) {
		src := graphsource_mocks.NewMockGraphSource(ctrl)
		src.EXPECT().FetchAllNodes(gomock.Any()).Return([]model.NodeRecord{}, nil)
		src.EXPECT().FetchAllEdges(gomock.Any()).Return(nil, errors.New("query failed"))

		result := call(t, &tools.ToolDependencies{AnalyticsService: analyticsService, Source: src}, nil)
		assert.True(t, result.IsError)
	})
}
