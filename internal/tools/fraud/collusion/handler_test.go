package collusion_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/patterns"
	analytics "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	graphsource_mocks "github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/collusion"
)

func TestDetectCollusionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("detect-collusion-patterns").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	fixture, err := scenario.LoadFixture("../../../scenario/testdata/shared_shop.yaml")
	require.NoError(t, err)

	run := func(t *testing.T, deps *tools.ToolDependencies, args map[string]any) *mcp.CallToolResult {
		t.Helper()
		result, err := collusion.Handler(deps)(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: args},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		return result
	}

	t.Run("shared repair shop", func(t *testing.T) {
		result := run(t, &tools.ToolDependencies{AnalyticsService: analyticsService, Source: fixture.Source()}, nil)
		require.False(t, result.IsError)

		var matches []patterns.Match
		require.NoError(t, json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, "S-1", matches[0].EntityID)
		assert.Equal(t, patterns.RiskHigh, matches[0].RiskLevel)
	})

	t.Run("risk level filter", func(t *testing.T) {
		result := run(t, &tools.ToolDependencies{AnalyticsService: analyticsService, Source: fixture.Source()}, map[string]any{"riskLevel": "medium"})
		require.False(t, result.IsError)
		assert.JSONEq(t, `[]`, result.Content[0].(mcp.TextContent).Text)
	})

	t.Run("invalid risk level", func(t *testing.T) {
		result := run(t, &tools.ToolDependencies{AnalyticsService: analyticsService, Source: fixture.Source()}, map[string]any{"riskLevel": "LOW"})
		assert.True(t, result.IsError)
	})

	t.Run("source unavailable", func(t *testing.T) {
		src := graphsource_mocks.NewMockGraphSource(ctrl)
		src.EXPECT().RunPatternQuery(gomock.Any(), gomock.Any()).Return(nil, graphsource.ErrUnavailable)

		result := run(t, &tools.ToolDependencies{AnalyticsService: analyticsService, Source: src}, nil)
		assert.True(t, result.IsError)
	})
}
