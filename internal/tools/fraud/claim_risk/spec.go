package claim_risk

import "github.com/mark3labs/mcp-go/mcp"

type ScoreClaimInput struct {
	ClaimID string `json:"claimId" jsonschema:"required,description=Id of the claim to score (e.g. CLM-101)"`
}

// Spec returns the MCP tool specification for contextual claim scoring
func Spec() mcp.Tool {
	return mcp.NewTool("score-claim",
		mcp.WithDescription(`Scores a single claim from its network context rather than its own attributes. Two claims with the same amount and damage can carry very different risk depending on who and what surrounds them.

**Risk factors:**
- Repair shop is flagged: +25
- Medical provider is flagged: +25
- Attorney is flagged: +20
- Claimant phone is flagged (shared across identities): +30

**Risk levels:** HIGH at 60 or more, MEDIUM at 30 or more, LOW otherwise.

Claims scoring below 10 that are not confirmed fraud get mitigating factors, which helps clear legitimate customers quickly.

**Returns:**
- Score, level, risk factors, mitigating factors and whether the claim is confirmed fraud
- The number of other claims at the same repair shop (informational)
- {"found": false} when the claim has no claimant in the graph`),
		mcp.WithInputSchema[ScoreClaimInput](),
		mcp.WithTitleAnnotation("Score Claim Risk"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
