package scenario

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/cypher/query_builder"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/database"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

const wipeQuery = "MATCH (n) DETACH DELETE n"

// Seeder replaces the database contents with a scenario.
type Seeder struct {
	DB database.Service
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Scenario      string `json:"scenario"`
	Nodes         int    `json:"nodes"`
	Relationships int    `json:"relationships"`
	Statements    int    `json:"statements"`
}

// Seed wipes the database and writes s with one batched statement per label and per
// relationship type.
func (sd *Seeder) Seed(ctx context.Context, s *Scenario) (*SeedResult, error) {
	result := &SeedResult{Scenario: s.Name}

	if _, err := sd.DB.ExecuteWriteQuery(ctx, wipeQuery, nil); err != nil {
		return nil, fmt.Errorf("failed to clear database: %w", err)
	}
	result.Statements++

	labels, nodeRows := groupNodes(s.Nodes)
	for _, label := range labels {
		rows := nodeRows[label]
		if _, err := sd.DB.ExecuteWriteQuery(ctx, query_builder.UnwindCreateNodes(label), map[string]any{"rows": rows}); err != nil {
			return nil, fmt.Errorf("failed to create %s nodes: %w", label, err)
		}
		result.Nodes += len(rows)
		result.Statements++
	}

	relTypes, edgeRows := groupEdges(s.Edges)
	for _, rel := range relTypes {
		rows := edgeRows[rel]
		if _, err := sd.DB.ExecuteWriteQuery(ctx, query_builder.UnwindCreateRelationships(rel), map[string]any{"rows": rows}); err != nil {
			return nil, fmt.Errorf("failed to create %s relationships: %w", rel, err)
		}
		result.Relationships += len(rows)
		result.Statements++
	}

	slog.Info("scenario seeded", "scenario", s.Name, "nodes", result.Nodes, "relationships", result.Relationships, "database", sd.DB.GetDatabaseName())
	return result, nil
}

// groupNodes buckets node properties by label in first-seen label order.
func groupNodes(nodes []model.NodeRecord) ([]string, map[string][]map[string]any) {
	var order []string
	rows := make(map[string][]map[string]any)
	for _, n := range nodes {
		label := n.Label
		if label == "" {
			label = string(model.NodeTypeUnknown)
		}
		if _, ok := rows[label]; !ok {
			order = append(order, label)
		}
		rows[label] = append(rows[label], nodeProperties(n))
	}
	return order, rows
}

func groupEdges(edges []model.EdgeRecord) ([]string, map[string][]map[string]any) {
	var order []string
	rows := make(map[string][]map[string]any)
	for _, e := range edges {
		rel := string(e.RelType)
		if rel == "" {
			rel = string(model.RelRelated)
		}
		if _, ok := rows[rel]; !ok {
			order = append(order, rel)
		}
		rows[rel] = append(rows[rel], map[string]any{"source": e.Source, "target": e.Target})
	}
	return order, rows
}

// nodeProperties writes only the fields the record carries.
func nodeProperties(n model.NodeRecord) map[string]any {
	props := map[string]any{"id": n.ID}
	if n.Name != nil {
		props["name"] = *n.Name
	}
	if n.Flagged != nil {
		props["flagged"] = *n.Flagged
	}
	if n.IsFraud != nil {
		props["is_fraud"] = *n.IsFraud
	}
	if n.RingID != nil {
		props["ring_id"] = *n.RingID
	}
	if n.Amount != nil {
		props["amount"] = *n.Amount
	}
	for key, val := range map[string]string{
		"role":        n.Attributes.Role,
		"tenure":      n.Attributes.Tenure,
		"date":        n.Attributes.Date,
		"number":      n.Attributes.PhoneNumber,
		"injury_type": n.Attributes.InjuryType,
	} {
		if val != "" {
			props[key] = val
		}
	}
	return props
}
