package central_entities

import "github.com/mark3labs/mcp-go/mcp"

type RankCentralEntitiesInput struct {
	Limit       int    `json:"limit,omitempty" jsonschema:"default=20,description=Maximum number of entities to return"`
	FlaggedOnly bool   `json:"flaggedOnly,omitempty" jsonschema:"description=Only return entities that are already flagged"`
	NodeType    string `json:"nodeType,omitempty" jsonschema:"description=Optional entity type filter (e.g. RepairShop or MedicalProvider)"`
}

// Spec returns the MCP tool specification for centrality ranking
func Spec() mcp.Tool {
	return mcp.NewTool("rank-central-entities",
		mcp.WithDescription(`Ranks entities by how central they are to the claims network. Central entities are the hubs and brokers fraud rings depend on: the clinic every staged accident visits or the phone shared by several drivers.

The score combines:
- degree centrality (share of all other entities directly linked) weighted 0.4
- betweenness centrality (share of shortest paths passing through the entity) weighted 0.6

On large graphs betweenness is estimated from a fixed random sample of source entities, so results are stable between calls.

**When to use this tool:**
- Finding the organiser or service provider at the heart of a ring
- Prioritising which entity to investigate after detect-communities

**Returns:**
- Entities ordered by combined score with degree and betweenness, type and flags`),
		mcp.WithInputSchema[RankCentralEntitiesInput](),
		mcp.WithTitleAnnotation("Rank Central Entities"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
