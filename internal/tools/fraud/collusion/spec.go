package collusion

import "github.com/mark3labs/mcp-go/mcp"

type DetectCollusionInput struct {
	RiskLevel string `json:"riskLevel,omitempty" jsonschema:"enum=HIGH,enum=MEDIUM,description=Optional: only return matches at this risk level"`
}

// Spec returns the MCP tool specification for collusion pattern detection
func Spec() mcp.Tool {
	return mcp.NewTool("detect-collusion-patterns",
		mcp.WithDescription(`Detects service providers that concentrate unrelated claimants, the classic signature of provider collusion in auto insurance fraud.

**Patterns checked:**
1. **Shared Repair Shop** - a repair shop used by more than 3 distinct claimants (HIGH above 5)
2. **Medical Mill** - a medical provider treating more than 4 distinct claimants (always HIGH)
3. **Attorney Steering** - an attorney representing more than 4 claimants whose vehicles go to few shops (HIGH when fewer than 0.3 shops per claimant)

**When to use this tool:**
- Screening the provider network for collusion
- Explaining why a community from detect-communities is suspicious

**Returns:**
- One entry per matching entity with pattern type, claimant count, flag state, risk level and a short description

The pattern queries are listed by list-fraud-patterns.`),
		mcp.WithInputSchema[DetectCollusionInput](),
		mcp.WithTitleAnnotation("Detect Collusion Patterns"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
