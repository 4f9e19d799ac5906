package graphsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/catalog"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/metrics"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// nodeColumns projects n onto the NodeRecord columns. Seed data stores display names in
// `label` and fraud flags in either `is_fraudulent` or `is_fraud`.
const nodeColumns = `n.id AS id,
       labels(n)[0] AS label,
       coalesce(n.name, n.label) AS name,
       n.flagged AS flagged,
       coalesce(n.is_fraudulent, n.is_fraud) AS is_fraud,
       n.ring_id AS ring_id,
       n.amount AS amount,
       n.role AS role,
       n.tenure AS tenure,
       n.date AS date,
       coalesce(n.number, n.phone_number) AS phone_number,
       n.injury_type AS injury_type`

const allNodesQuery = `MATCH (n)
WHERE n.id IS NOT NULL
RETURN ` + nodeColumns

const allEdgesQuery = `MATCH (a)-[r]->(b)
WHERE a.id IS NOT NULL AND b.id IS NOT NULL
RETURN a.id AS source, b.id AS target, type(r) AS rel_type`

const nodesByIDQuery = `UNWIND $ids AS nodeId
MATCH (n {id: nodeId})
RETURN ` + nodeColumns

const edgesAmongQuery = `MATCH (a)-[r]->(b)
WHERE a.id IN $ids AND b.id IN $ids
RETURN a.id AS source, b.id AS target, type(r) AS rel_type`

// Neo4jSource serves graph data from Neo4j. Pattern queries are resolved from the catalogue.
type Neo4jSource struct {
	db      database.Service
	catalog *catalog.Catalog
}

// NewNeo4jSource creates a source over db using the patterns in c.
func NewNeo4jSource(db database.Service, c *catalog.Catalog) *Neo4jSource {
	return &Neo4jSource{db: db, catalog: c}
}

func (s *Neo4jSource) FetchAllNodes(ctx context.Context) ([]model.NodeRecord, error) {
	rows, err := s.read(ctx, "fetch_nodes", allNodesQuery, nil)
	if err != nil {
		return nil, err
	}
	nodes := make([]model.NodeRecord, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, nodeRecordFromRow(row))
	}
	return nodes, nil
}

func (s *Neo4jSource) FetchAllEdges(ctx context.Context) ([]model.EdgeRecord, error) {
	rows, err := s.read(ctx, "fetch_edges", allEdgesQuery, nil)
	if err != nil {
		return nil, err
	}
	return edgeRecordsFromRows(rows), nil
}

// RunPatternQuery resolves spec against the catalogue and runs it on a reader.
func (s *Neo4jSource) RunPatternQuery(ctx context.Context, spec PatternSpec) ([]Row, error) {
	cypher, params, err := s.catalog.Resolve(string(spec.ID), spec.Params)
	if err != nil {
		return nil, err
	}
	slog.Debug("running pattern query", "pattern", spec.ID, "params", params)
	return s.read(ctx, "pattern:"+string(spec.ID), cypher, params)
}

// FetchEgoNetwork expands breadth-first from centerID one hop per query, so the node limit
// applies in distance order exactly as for the in-memory source.
func (s *Neo4jSource) FetchEgoNetwork(ctx context.Context, centerID string, hops, limit int) (*model.EgoNetwork, error) {
	hops, limit = ClampEgoBounds(hops, limit)
	ego := &model.EgoNetwork{CenterID: centerID, Hops: hops, Nodes: []model.Node{}, Edges: []model.Edge{}}

	rows, err := s.read(ctx, "ego_network", nodesByIDQuery, map[string]any{"ids": []string{centerID}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return ego, nil
	}

	dist := map[string]int{centerID: 0}
	ego.Nodes = append(ego.Nodes, nodeRecordFromRow(rows[0]).Normalize())

	frontier := []string{centerID}
	expand := query_builder.PathPattern("n", "", query_builder.PathSpecification{Direction: "both", MinHops: 1, MaxHops: 1}, "m")
	neighboursQuery := fmt.Sprintf(`UNWIND range(0, size($ids) - 1) AS i
MATCH %s
WHERE n.id = $ids[i] AND m.id IS NOT NULL AND m.id <> n.id
WITH DISTINCT i, m AS n
RETURN i AS frontier_index, %s
ORDER BY frontier_index, id`, expand, nodeColumns)

	for depth := 1; depth <= hops && len(frontier) > 0 && len(ego.Nodes) < limit; depth++ {
		rows, err := s.read(ctx, "ego_network", neighboursQuery, map[string]any{"ids": frontier})
		if err != nil {
			return nil, err
		}

		var next []string
		for _, row := range rows {
			rec := nodeRecordFromRow(row)
			if _, seen := dist[rec.ID]; seen {
				continue
			}
			dist[rec.ID] = depth
			next = append(next, rec.ID)
			ego.Nodes = append(ego.Nodes, rec.Normalize())
			if len(ego.Nodes) >= limit {
				break
			}
		}
		frontier = next
	}

	ids := make([]string, 0, len(ego.Nodes))
	for _, n := range ego.Nodes {
		ids = append(ids, n.ID)
	}
	edgeRows, err := s.read(ctx, "ego_network", edgesAmongQuery, map[string]any{"ids": ids})
	if err != nil {
		return nil, err
	}

	type edgeKey struct {
		source, target string
		rel            model.RelType
	}
	seen := make(map[edgeKey]bool)
	for _, e := range edgeRecordsFromRows(edgeRows) {
		if min(dist[e.Source], dist[e.Target]) >= hops {
			continue
		}
		key := edgeKey{e.Source, e.Target, e.RelType}
		if seen[key] {
			continue
		}
		seen[key] = true
		ego.Edges = append(ego.Edges, model.Edge{Source: e.Source, Target: e.Target, RelType: e.RelType})
	}

	return ego, nil
}

func (s *Neo4jSource) read(ctx context.Context, operation, cypher string, params map[string]any) ([]Row, error) {
	records, err := s.db.ExecuteReadQuery(ctx, cypher, params)
	if err != nil {
		metrics.SourceErrors.WithLabelValues(operation).Inc()
		if errors.Is(err, database.ErrConnectivity) {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, operation, err)
		}
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return rowsFromRecords(records), nil
}

func rowsFromRecords(records []*neo4j.Record) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, Row(record.AsMap()))
	}
	return rows
}

func edgeRecordsFromRows(rows []Row) []model.EdgeRecord {
	edges := make([]model.EdgeRecord, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, model.EdgeRecord{
			Source:  row.String("source"),
			Target:  row.String("target"),
			RelType: model.RelType(row.StringOr("rel_type", string(model.RelRelated))),
		})
	}
	return edges
}

// nodeRecordFromRow keeps absent and null columns as nil optionals.
func nodeRecordFromRow(row Row) model.NodeRecord {
	rec := model.NodeRecord{
		ID:    row.String("id"),
		Label: row.String("label"),
		Attributes: model.Attributes{
			Role:        row.String("role"),
			Tenure:      row.String("tenure"),
			Date:        row.String("date"),
			PhoneNumber: row.String("phone_number"),
			InjuryType:  row.String("injury_type"),
		},
	}
	if v, ok := row["name"].(string); ok {
		rec.Name = &v
	}
	if v, ok := row["flagged"].(bool); ok {
		rec.Flagged = &v
	}
	if v, ok := row["is_fraud"].(bool); ok {
		rec.IsFraud = &v
	}
	if v, ok := row["ring_id"].(string); ok {
		rec.RingID = &v
	}
	if v, ok := row.Float("amount"); ok {
		rec.Amount = &v
	}
	return rec
}
