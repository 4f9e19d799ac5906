package server

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/catalog/list_patterns"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/data/ego_network"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/data/seed_scenario"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/central_entities"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/claim_risk"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/collusion"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/tools/fraud/communities"
)

// registerTools registers all enabled MCP tools and adds them to the provided MCP server.
// In read-only mode (NEO4J_READ_ONLY or Config.ReadOnly) tools that mutate the database are
// excluded.
func (s *Neo4jMCPServer) registerTools() error {
	filteredTools := s.getEnabledTools()
	s.MCPServer.AddTools(filteredTools...)
	return nil
}

type toolFilter func(tools []ToolDefinition) []ToolDefinition

type toolCategory int

const (
	fraudCategory   toolCategory = 0
	dataCategory    toolCategory = 1
	catalogCategory toolCategory = 2
)

type ToolDefinition struct {
	category   toolCategory
	definition server.ServerTool
	readonly   bool
}

func (s *Neo4jMCPServer) toolDependencies() *tools.ToolDependencies {
	deps := &tools.ToolDependencies{
		DBService:        s.dbService,
		AnalyticsService: s.anService,
		Source:           s.source,
		Catalog:          s.catalog,
	}
	if s.config != nil {
		deps.Centrality = centrality.Analyzer{
			SampleSize: s.config.CentralitySampleSize,
			Seed:       s.config.CentralitySeed,
		}
	}
	return deps
}

func (s *Neo4jMCPServer) getEnabledTools() []server.ServerTool {
	filters := make([]toolFilter, 0)

	// If read-only mode is enabled, expose only tools annotated as read-only.
	if s.config != nil && s.config.ReadOnly {
		filters = append(filters, filterWriteTools)
	}
	toolDefs := s.getAllToolsDefs(s.toolDependencies())

	for _, filter := range filters {
		toolDefs = filter(toolDefs)
	}
	enabledTools := make([]server.ServerTool, 0)
	for _, toolDef := range toolDefs {
		enabledTools = append(enabledTools, toolDef.definition)
	}
	return enabledTools
}

func filterWriteTools(tools []ToolDefinition) []ToolDefinition {
	readOnlyTools := make([]ToolDefinition, 0, len(tools))
	for _, t := range tools {
		if t.readonly {
			readOnlyTools = append(readOnlyTools, t)
		}
	}
	return readOnlyTools
}

// getAllToolsDefs returns all available tools with their specs and handlers
func (s *Neo4jMCPServer) getAllToolsDefs(deps *tools.ToolDependencies) []ToolDefinition {
	return []ToolDefinition{
		// Fraud analyses
		{
			category: fraudCategory,
			definition: server.ServerTool{
				Tool:    communities.Spec(),
				Handler: communities.Handler(deps),
			},
			readonly: true,
		},
		{
			category: fraudCategory,
			definition: server.ServerTool{
				Tool:    central_entities.Spec(),
				Handler: central_entities.Handler(deps),
			},
			readonly: true,
		},
		{
			category: fraudCategory,
			definition: server.ServerTool{
				Tool:    collusion.Spec(),
				Handler: collusion.Handler(deps),
			},
			readonly: true,
		},
		{
			category: fraudCategory,
			definition: server.ServerTool{
				Tool:    claim_risk.Spec(),
				Handler: claim_risk.Handler(deps),
			},
			readonly: true,
		},
		// Data retrieval and loading
		{
			category: dataCategory,
			definition: server.ServerTool{
				Tool:    ego_network.Spec(),
				Handler: ego_network.Handler(deps),
			},
			readonly: true,
		},
		{
			category: dataCategory,
			definition: server.ServerTool{
				Tool:    seed_scenario.Spec(),
				Handler: seed_scenario.Handler(deps),
			},
			readonly: false,
		},
		// Pattern catalogue
		{
			category: catalogCategory,
			definition: server.ServerTool{
				Tool:    list_patterns.Spec(),
				Handler: list_patterns.Handler(deps),
			},
			readonly: true,
		},
	}
}
