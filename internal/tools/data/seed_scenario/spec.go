package seed_scenario

import "github.com/mark3labs/mcp-go/mcp"

type SeedScenarioInput struct {
	Scenario int `json:"scenario" jsonschema:"required,minimum=1,maximum=3,description=Scenario to load: 1 Recycled Passenger / 2 Latent Witness / 3 False Positive Context"`
}

// Spec returns the MCP tool specification for loading a demo scenario
func Spec() mcp.Tool {
	return mcp.NewTool("seed-scenario",
		mcp.WithDescription(`Replaces the contents of the database with one of the built-in fraud scenarios. ALL existing nodes and relationships are deleted first.

**Scenarios:**
1. **Recycled Passenger** - two staged accidents share a passenger, a clinic, an attorney and the drivers' burner phone
2. **Latent Witness** - two unrelated claims linked only through a flagged phone shared by a witness and a claimant
3. **False Positive Context** - two identical $25k claims where only network context separates the loyal customer from the fraud

**Returns:**
- Number of nodes, relationships and statements written`),
		mcp.WithInputSchema[SeedScenarioInput](),
		mcp.WithTitleAnnotation("Seed Fraud Scenario"),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
