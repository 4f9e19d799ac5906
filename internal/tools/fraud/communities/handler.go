package communities

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/community"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

const defaultLimit = 10

type Response struct {
	NodeCount   int                `json:"node_count"`
	EdgeCount   int                `json:"edge_count"`
	Total       int                `json:"total_communities"`
	Communities []community.Report `json:"communities"`
}

// Handler returns the tool handler function for community detection
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleDetectCommunities(ctx, request, deps)
	}
}

func handleDetectCommunities(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("detect-communities"),
	)

	var args DetectCommunitiesInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Limit < 0 || args.MinRiskScore < 0 {
		errMessage := "limit and minRiskScore must not be negative"
		slog.Error(errMessage, "limit", args.Limit, "minRiskScore", args.MinRiskScore)
		return mcp.NewToolResultError(errMessage), nil
	}

	limit := args.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	slog.Info("detecting communities", "minRiskScore", args.MinRiskScore, "limit", limit)
	defer metrics.ObserveAnalysis("communities", time.Now())

	g, err := graph.Load(ctx, deps.Source)
	if err != nil {
		slog.Error("error loading graph snapshot", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	reports := community.Detect(g)
	return tools.NewJSONResult(Response{
		NodeCount:   g.Len(),
		EdgeCount:   len(g.Edges()),
		Total:       len(reports),
		Communities: community.Filter(reports, args.MinRiskScore, limit),
	}), nil
}
