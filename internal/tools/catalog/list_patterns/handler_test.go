package list_patterns_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	analytics "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/catalog/list_patterns"
	embedded "github.com/mkd-neo4j/neo4j-claims-fraud/tools"
)

func TestListPatternsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("list-fraud-patterns").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	c, err := catalog.Load(embedded.ConfigFiles, "config/patterns")
	require.NoError(t, err)
	deps := &tools.ToolDependencies{AnalyticsService: analyticsService, Catalog: c}

	call := func(t *testing.T, deps *tools.ToolDependencies, args map[string]any) (*mcp.CallToolResult, string) {
		t.Helper()
		result, err := list_patterns.Handler(deps)(context.Background(), mcp.CallToolRequest{
			Params: mcp.CallToolParams{Arguments: args},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		return result, result.Content[0].(mcp.TextContent).Text
	}

	t.Run("all categories", func(t *testing.T) {
		result, text := call(t, deps, nil)
		require.False(t, result.IsError)
		assert.Contains(t, text, "## claim")
		assert.Contains(t, text, "## collusion")
		assert.Contains(t, text, "`shared_repair_shop`")
		assert.Contains(t, text, "`claim_context`")
		assert.Contains(t, text, "```cypher")
	})

	t.Run("single category", func(t *testing.T) {
		result, text := call(t, deps, map[string]any{"category": "collusion"})
		require.False(t, result.IsError)
		assert.Contains(t, text, "`medical_mill`")
		assert.NotContains(t, text, "`claim_context`")
	})

	t.Run("single pattern", func(t *testing.T) {
		result, text := call(t, deps, map[string]any{"patternId": "attorney_steering"})
		require.False(t, result.IsError)
		assert.Contains(t, text, "### Attorney Steering (`attorney_steering`)")
		assert.Contains(t, text, "`$minClaimants` (integer) [default: 4]")
	})

	t.Run("unknown pattern", func(t *testing.T) {
		result, text := call(t, deps, map[string]any{"patternId": "nope"})
		assert.True(t, result.IsError)
		assert.Contains(t, text, "unknown pattern")
	})

	t.Run("unknown category", func(t *testing.T) {
		result, _ := call(t, deps, map[string]any{"category": "payments"})
		assert.True(t, result.IsError)
	})

	t.Run("catalogue not loaded", func(t *testing.T) {
		result, _ := call(t, &tools.ToolDependencies{AnalyticsService: analyticsService}, nil)
		assert.True(t, result.IsError)
	})
}
