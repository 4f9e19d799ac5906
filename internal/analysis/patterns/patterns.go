// Package patterns detects collusion between claimants and service providers with fixed,
// parameterised graph traversals.
package patterns

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
)

// RiskLevel is the severity assigned to a match.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Match is one entity that exhibits a collusion pattern.
type Match struct {
	PatternType    string                `json:"pattern_type"`
	PatternID      graphsource.PatternID `json:"pattern_id"`
	EntityID       string                `json:"entity_id"`
	Entity         string                `json:"entity"`
	ConnectedCount int                   `json:"connected_count"`
	UniqueShops    *int                  `json:"unique_shops,omitempty"`
	Flagged        bool                  `json:"flagged"`
	RiskLevel      RiskLevel             `json:"risk_level"`
	Description    string                `json:"description"`
}

// Rule binds a pattern query to its threshold and the classification of its rows.
type Rule struct {
	ID           graphsource.PatternID
	Name         string
	MinClaimants int
	classify     func(row graphsource.Row, count int) (RiskLevel, string)
}

// Rules returns the collusion rules in evaluation order.
func Rules() []Rule {
	return []Rule{
		{
			ID:           graphsource.PatternSharedRepairShop,
			Name:         "Shared Repair Shop",
			MinClaimants: 3,
			classify: func(_ graphsource.Row, count int) (RiskLevel, string) {
				level := RiskMedium
				if count > 5 {
					level = RiskHigh
				}
				return level, fmt.Sprintf("%d unrelated claimants using same repair shop", count)
			},
		},
		{
			ID:           graphsource.PatternMedicalMill,
			Name:         "Medical Mill",
			MinClaimants: 4,
			classify: func(_ graphsource.Row, count int) (RiskLevel, string) {
				return RiskHigh, fmt.Sprintf("%d claimants treated by same provider", count)
			},
		},
		{
			ID:           graphsource.PatternAttorneySteering,
			Name:         "Attorney Steering",
			MinClaimants: 4,
			classify: func(row graphsource.Row, count int) (RiskLevel, string) {
				shops := row.Int("unique_shops")
				level := RiskMedium
				if float64(shops)/float64(count) < 0.3 {
					level = RiskHigh
				}
				return level, fmt.Sprintf("Represents %d claimants from %d shops", count, shops)
			},
		},
	}
}

// Detector runs every collusion rule against a graph source.
type Detector struct {
	Source graphsource.GraphSource
}

// Detect returns the matches of all rules, grouped by rule in evaluation order. The first
// source error aborts the run.
func (d Detector) Detect(ctx context.Context) ([]Match, error) {
	matches := make([]Match, 0)
	for _, rule := range Rules() {
		found, err := d.run(ctx, rule)
		if err != nil {
			return nil, err
		}
		matches = append(matches, found...)
	}
	slog.Debug("collusion patterns detected", "matches", len(matches))
	return matches, nil
}

func (d Detector) run(ctx context.Context, rule Rule) ([]Match, error) {
	rows, err := d.Source.RunPatternQuery(ctx, graphsource.PatternSpec{
		ID:     rule.ID,
		Params: map[string]any{"minClaimants": rule.MinClaimants},
	})
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", rule.ID, err)
	}

	var matches []Match
	for _, row := range rows {
		count := row.Int("connected_count")
		// sources are not trusted to apply the threshold
		if count <= rule.MinClaimants {
			continue
		}
		id := row.String("entity_id")
		level, description := rule.classify(row, count)
		m := Match{
			PatternType:    rule.Name,
			PatternID:      rule.ID,
			EntityID:       id,
			Entity:         row.StringOr("entity", id),
			ConnectedCount: count,
			Flagged:        row.Bool("flagged"),
			RiskLevel:      level,
			Description:    description,
		}
		if rule.ID == graphsource.PatternAttorneySteering {
			shops := row.Int("unique_shops")
			m.UniqueShops = &shops
		}
		matches = append(matches, m)
	}
	return matches, nil
}
