package seed_scenario_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	analytics "github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics/mocks"
	db "github.com/mkd-neo4j/neo4j-claims-fraud/internal/database/mocks"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/data/seed_scenario"
)

func TestSeedScenarioHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	analyticsService := analytics.NewMockService(ctrl)
	analyticsService.EXPECT().NewToolsEvent("seed-scenario").AnyTimes()
	analyticsService.EXPECT().EmitEvent(gomock.Any()).AnyTimes()
	defer ctrl.Finish()

	request := func(args map[string]any) mcp.CallToolRequest {
		return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
	}

	t.Run("seeds recycled passenger", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().GetDatabaseName().Return("neo4j").AnyTimes()
		// wipe, 5 labels, 5 relationship types
		mockDB.EXPECT().
			ExecuteWriteQuery(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]*neo4j.Record{}, nil).
			Times(11)

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		result, err := seed_scenario.Handler(deps)(context.Background(), request(map[string]any{"scenario": 1}))
		require.NoError(t, err)
		require.False(t, result.IsError)
		assert.JSONEq(t,
			`{"scenario": "Recycled Passenger", "nodes": 10, "relationships": 12, "statements": 11}`,
			result.Content[0].(mcp.TextContent).Text)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		deps := &tools.ToolDependencies{DBService: db.NewMockService(ctrl), AnalyticsService: analyticsService}
		result, err := seed_scenario.Handler(deps)(context.Background(), request(map[string]any{"scenario": 9}))
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("write failure", func(t *testing.T) {
		mockDB := db.NewMockService(ctrl)
		mockDB.EXPECT().
			ExecuteWriteQuery(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("write not allowed"))

		deps := &tools.ToolDependencies{DBService: mockDB, AnalyticsService: analyticsService}
		result, err := seed_scenario.Handler(deps)(context.Background(), request(map[string]any{"scenario": 2}))
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("missing database service", func(t *testing.T) {
		deps := &tools.ToolDependencies{AnalyticsService: analyticsService}
		result, err := seed_scenario.Handler(deps)(context.Background(), request(map[string]any{"scenario": 1}))
		assert.NoError(t, err)
		assert.True(t, result.IsError)
	})
}
