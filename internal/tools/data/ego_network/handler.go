package ego_network

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

type Response struct {
	Found bool `json:"found"`
	*model.EgoNetwork
}

// Handler returns the tool handler function for ego network retrieval
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGetEgoNetwork(ctx, request, deps)
	}
}

func handleGetEgoNetwork(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("get-ego-network"),
	)

	var args GetEgoNetworkInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	centerID := strings.TrimSpace(args.CenterID)
	if centerID == "" {
		errMessage := "centerId parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}
	if args.Hops > graphsource.MaxEgoHops || args.Limit > graphsource.MaxEgoLimit {
		errMessage := fmt.Sprintf("hops must be at most %d and limit at most %d", graphsource.MaxEgoHops, graphsource.MaxEgoLimit)
		slog.Error(errMessage, "hops", args.Hops, "limit", args.Limit)
		return mcp.NewToolResultError(errMessage), nil
	}

	hops, limit := graphsource.ClampEgoBounds(args.Hops, args.Limit)
	slog.Info("fetching ego network", "centerId", centerID, "hops", hops, "limit", limit)

	ego, err := deps.Source.FetchEgoNetwork(ctx, centerID, hops, limit)
	if err != nil {
		slog.Error("error fetching ego network", "centerId", centerID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if ego == nil {
		ego = &model.EgoNetwork{CenterID: centerID, Hops: hops, Nodes: []model.Node{}, Edges: []model.Edge{}}
	}

	return tools.NewJSONResult(Response{Found: !ego.Empty(), EgoNetwork: ego}), nil
}
