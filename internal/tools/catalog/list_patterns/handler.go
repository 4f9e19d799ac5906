package list_patterns

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
)

// Handler returns the tool handler function for listing the pattern catalogue
func Handler(deps *tools.ToolDependencies) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleListPatterns(ctx, request, deps)
	}
}

func handleListPatterns(_ context.Context, request mcp.CallToolRequest, deps *tools.ToolDependencies) (*mcp.CallToolResult, error) {
	if deps.AnalyticsService == nil {
		errMessage := "Analytics service is not initialized"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	if deps.Catalog == nil {
		errMessage := "Pattern catalogue is not loaded"
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	deps.AnalyticsService.EmitEvent(
		deps.AnalyticsService.NewToolsEvent("list-fraud-patterns"),
	)

	var args ListPatternsInput
	if err := request.BindArguments(&args); err != nil {
		slog.Error("error binding arguments", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if args.PatternID != "" {
		config, err := deps.Catalog.Get(args.PatternID)
		if err != nil {
			slog.Error("error looking up pattern", "patternId", args.PatternID, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(catalog.BuildEnrichedDescription(config)), nil
	}

	categories := deps.Catalog.ListCategories()
	if args.Category != "" {
		categories = []string{args.Category}
	}

	slog.Info("listing fraud patterns", "categories", categories)

	var sb strings.Builder
	for _, category := range categories {
		configs := deps.Catalog.GetPatternsByCategory(category)
		if len(configs) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("## %s\n\n", category))
		for _, config := range configs {
			sb.WriteString(catalog.BuildEnrichedDescription(config))
			sb.WriteString("\n")
		}
	}

	if sb.Len() == 0 {
		errMessage := fmt.Sprintf("no patterns found in category %q", args.Category)
		slog.Error(errMessage)
		return mcp.NewToolResultError(errMessage), nil
	}

	return mcp.NewToolResultText(sb.String()), nil
}
