package communities

import "github.com/mark3labs/mcp-go/mcp"

type DetectCommunitiesInput struct {
	MinRiskScore float64 `json:"minRiskScore,omitempty" jsonschema:"default=0,description=Only return communities scoring at least this much"`
	Limit        int     `json:"limit,omitempty" jsonschema:"default=10,description=Maximum number of communities to return"`
}

// Spec returns the MCP tool specification for community detection
func Spec() mcp.Tool {
	return mcp.NewTool("detect-communities",
		mcp.WithDescription(`Finds clusters of connected entities in the claims graph and scores each cluster for fraud risk.

Every connected group of at least 4 entities (claims, people, shops, providers, attorneys, phones...) is a community. Each community is scored from:
- flagged members (10 points each, capped at 30)
- members on confirmed fraud claims (5 points each, capped at 40)
- internal link density (up to 20 points)
- size (10 points for 5 to 20 members, 5 points above that)

**When to use this tool:**
- Looking for organised rings across the whole book of claims
- Deciding which cluster to investigate first

**Returns:**
- Communities ordered by risk score (highest first)
- Member ids, flagged and fraud counts, a node type histogram and the density of each community

Follow up with get-ego-network on a member to inspect the cluster, or score-claim on its claims.`),
		mcp.WithInputSchema[DetectCommunitiesInput](),
		mcp.WithTitleAnnotation("Detect Fraud Communities"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
