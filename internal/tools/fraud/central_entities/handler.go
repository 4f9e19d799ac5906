package central_entities

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

const defaultLimit = 20

// Handler returns the tool handler function for centrality ranking
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRankCentralEntities(ctx, request, deps)
	}
}

func handleRankCentralEntities(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("rank-central-entities"),
	)

	var args RankCentralEntitiesInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.Limit < 0 {
		errMessage := "limit must not be negative"
		slog.Error(errMessage, "limit", args.Limit)
		return mcp.NewToolResultError(errMessage), nil
	}

	limit := args.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	var nodeType model.NodeType
	if args.NodeType != "" {
		nodeType = model.ParseNodeType(args.NodeType)
	}

	slog.Info("ranking central entities", "limit", limit, "flaggedOnly", args.FlaggedOnly, "nodeType", nodeType)
	defer metrics.ObserveAnalysis("centrality", time.Now())

	g, err := graph.Load(ctx, deps.Source)
	if err != nil {
		slog.Error("error loading graph snapshot", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	ranked := deps.Centrality.Rank(g)
	out := make([]centrality.NodeCentrality, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		if args.FlaggedOnly && !r.Flagged {
			continue
		}
		if nodeType != "" && r.Type != nodeType {
			continue
		}
		out = append(out, r)
	}

	return tools.NewJSONResult(out), nil
}
