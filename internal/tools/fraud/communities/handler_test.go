package communities_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	analytics "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	graphsource_mocks "github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/communities"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestDetectCommunitiesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("detect-communities").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	s, err := scenario.Get(scenario.RecycledPassenger)
	require.NoError(t, err)

	t.Run("finds the recycled passenger ring", func(t *testing.T) {
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Source: s.Source()}

		result, err := communities.Handler(deps)(context.Background(), mcp.CallToolRequest{})
		require.NoError(t, err)
		require.False(t, result.IsError, resultText(t, result))

		var resp communities.Response
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
		assert.Equal(t, 10, resp.NodeCount)
		assert.Equal(t, 12, resp.EdgeCount)
		assert.Equal(t, 1, resp.Total)
		require.Len(t, resp.Communities, 1)
		assert.Equal(t, 10, resp.Communities[0].Size)
		assert.Contains(t, resp.Communities[0].Members, "PH-RING")
	})

	t.Run("minRiskScore filters communities", func(t *testing.T) {
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Source: s.Source()}
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: map[string]any{"minRiskScore": 90}},
		}

		result, err := communities.Handler(deps)(context.Background(), request)
		require.NoError(t, err)
		require.False(t, result.IsError)

		var resp communities.Response
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
		assert.Equal(t, 1, resp.Total)
		assert.Empty(t, resp.Communities)
	})

	t.Run("negative limit", func(t *testing.T) {
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Source: s.Source()}
		request := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: map[string]any{"limit": -1}},
		}

		result, err := communities.Handler(deps)(context.Background(), request)
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("source unavailable", func(t *testing.T) {
		src := graphsource_mocks.NewMockGraphSource(ctrl)
		src.EXPECT().FetchAllNodes(gomock.Any()).Return(nil, graphsource.ErrUnavailable)
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Source: src}

		result, err := communities.Handler(deps)(context.Background(), mcp.CallToolRequest{})
		assert.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, resultText(t, result), "graph source unavailable")
	})

	t.Run("missing graph source", func(t *testing.T) {
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService}

		result, err := communities.Handler(deps)(context.Background(), mcp.CallToolRequest{})
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})
}
