package collusion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/patterns"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

// Handler returns the tool handler function for collusion pattern detection
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetectCollusion(ctx, request, deps)
	}
}

func handleDetectCollusion(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	if deps.Source == nil {
		errMessage := "Graph source is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("detect-collusion-patterns"),
	)

	var args DetectCollusionInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	level := patterns.RiskLevel(strings.ToUpper(args.RiskLevel))
	if level != "" && level != patterns.RiskHigh && level != patterns.RiskMedium {
		errMessage := fmt.Sprintf("riskLevel must be HIGH or MEDIUM, got %q", args.RiskLevel)
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	slog.Info("detecting collusion patterns", "riskLevel", level)
	defer metrics.ObserveAnalysis("collusion", time.Now())

	matches, err := patterns.Detector{Source: deps.Source}.Detect(ctx)
	if err != nil {
		slog.Error("error detecting collusion patterns", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if level != "" {
		filtered := make([]patterns.Match, 0, len(matches))
		for _, m := range matches {
			if m.RiskLevel == level {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	return tools.NewJSONResult(matches), nil
}
