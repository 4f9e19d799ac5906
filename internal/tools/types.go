package tools

import (
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/centrality"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analytics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
)

// ToolDependencies contains all dependencies needed by tools
type ToolDependencies struct {
	DBService        database.Service
	AnalyticsService analytics.Service
	Source           graphsource.GraphSource
	Catalog          *catalog.Catalog
	Centrality       centrality.Analyzer
}
