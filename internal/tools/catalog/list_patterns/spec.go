package list_patterns

import "github.com/mark3labs/mcp-go/mcp"

type ListPatternsInput struct {
	Category  string `json:"category,omitempty" jsonschema:"description=Optional category filter (collusion or claim)"`
	PatternID string `json:"patternId,omitempty" jsonschema:"description=Optional: return a single pattern by id"`
}

// Spec returns the MCP tool specification for the pattern catalogue listing
func Spec() mcp.Tool {
	return mcp.NewTool("list-fraud-patterns",
		mcp.WithDescription(`Lists the graph pattern queries the fraud analyses run, with their intent, the labels and relationships they read, their parameters and the Cypher itself.

**When to use this tool:**
- Explaining to an investigator why a collusion match or claim score was produced
- Checking which labels and relationships the database must contain for an analysis to work

**Returns:**
- Markdown, one section per pattern, grouped by category`),
		mcp.WithInputSchema[ListPatternsInput](),
		mcp.WithTitleAnnotation("List Fraud Patterns"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}
