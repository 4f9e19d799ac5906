package seed_scenario

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

// Handler returns the tool handler function for scenario seeding
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSeedScenario(ctx, request, deps)
	}
}

func handleSeedScenario(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	if deps.DBService == nil {
		errMessage := "Database service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("seed-scenario"),
	)

	var args SeedScenarioInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	s, err := scenario.Get(args.Scenario)
	if err != nil {
		slog.Error("error selecting scenario", "scenario", args.Scenario, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Info("seeding scenario", "scenario", s.Name)

	seeder := &scenario.Seeder{DB: deps.DBService}
	result, err := seeder.Seed(ctx, s)
	if err != nil {
		slog.Error("error seeding scenario", "scenario", s.Name, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	return tools.NewJSONResult(result), nil
}
