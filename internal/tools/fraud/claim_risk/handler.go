package claim_risk

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/claimrisk"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

type notFound struct {
	Found   bool   `json:"found"`
	ClaimID string `json:"claim_id"`
	Message string `json:"message"`
}

// Handler returns the tool handler function for claim scoring
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleScoreClaim(ctx, request, deps)
	}
}

func handleScoreClaim(ctx context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
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
		deps.AnalyticsService.NewToolsEvent("score-claim"),
	)

	var args ScoreClaimInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	claimID := strings.TrimSpace(args.ClaimID)
	if claimID == "" {
		errMessage := "claimId parameter is required"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	slog.Info("scoring claim", "claimId", claimID)
	defer metrics.ObserveAnalysis("claim_risk", time.Now())

	report, err := claimrisk.Scorer{Source: deps.Source}.Score(ctx, claimID)
	if err != nil {
		slog.Error("error scoring claim", "claimId", claimID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if report == nil {
		return tools.NewJSONResult(notFound{
			ClaimID: claimID,
			Message: "no claim with a filing claimant was found for this id",
		}), nil
	}

	return tools.NewJSONResult(report), nil
}
