package ego_network

import "github.com/mark3labs/mcp-go/mcp"

type GetEgoNetworkInput struct {
	CenterID string `json:"centerId" jsonschema:"required,description=Id of the entity at the centre of the network (e.g. CLM-101 or DOC-X)"`
	Hops     int    `json:"hops,omitempty" jsonschema:"default=2,minimum=1,maximum=5,description=Maximum hop distance from the centre"`
	Limit    int    `json:"limit,omitempty" jsonschema:"default=150,minimum=1,maximum=1000,description=Maximum number of nodes to return"`
}

// Spec returns the MCP tool specification for ego network retrieval
func Spec() mcp.Tool {
	return mcp.NewTool("get-ego-network",
		mcp.WithDescription(`Retrieves the neighbourhood of one entity for visual investigation: every node within the given hop distance and the relationships between them.

Nodes are collected nearest first, so when the limit is reached the closest entities are kept.

**When to use this tool:**
- Inspecting a member of a community returned by detect-communities
- Showing how a flagged phone or provider links otherwise unrelated claims

**Returns:**
- nodes with id, type, name, flags and attributes
- edges with source, target and relationship type
- found=false when the centre id does not exist`),
		mcp.WithInputSchema[GetEgoNetworkInput](),
		mcp.WithTitleAnnotation("Get Ego Network"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}
