// Package claimrisk scores a single claim from the flags of the entities around it.
package claimrisk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/patterns"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
)

// ErrEmptyClaimID is returned when Score is called without a claim id.
var ErrEmptyClaimID = errors.New("claim id is required")

const (
	shopFlaggedWeight     = 25
	providerFlaggedWeight = 25
	attorneyFlaggedWeight = 20
	phoneFlaggedWeight    = 30

	highThreshold   = 60
	mediumThreshold = 30
	isolatedBelow   = 10
)

// Report is the contextual risk assessment of one claim.
type Report struct {
	ClaimID           string             `json:"claim_id"`
	ClaimantName      string             `json:"claimant_name"`
	Amount            *float64           `json:"amount,omitempty"`
	RingID            string             `json:"ring_id,omitempty"`
	RiskScore         int                `json:"risk_score"`
	RiskLevel         patterns.RiskLevel `json:"risk_level"`
	RiskFactors       []string           `json:"risk_factors"`
	MitigatingFactors []string           `json:"mitigating_factors"`
	IsKnownFraud      bool               `json:"is_known_fraud"`
	// ShopClaimCount is the number of other claims at the claim's repair shop. It does not
	// affect the score.
	ShopClaimCount int               `json:"shop_claim_count"`
	Context        map[string]string `json:"context,omitempty"`
}

// Scorer queries a graph source for claim context.
type Scorer struct {
	Source graphsource.GraphSource
}

// claimContext aggregates the claim_context rows of one claim.
type claimContext struct {
	claimantName string
	amount       *float64
	ringID       string
	isFraud      bool

	shop     bool
	provider bool
	attorney bool
	phone    bool

	names map[string]string
}

// Score returns the risk report of claimID, or nil with no error when the claim has no
// filed context.
func (s Scorer) Score(ctx context.Context, claimID string) (*Report, error) {
	if claimID == "" {
		return nil, ErrEmptyClaimID
	}

	rows, err := s.Source.RunPatternQuery(ctx, graphsource.PatternSpec{
		ID:     graphsource.PatternClaimContext,
		Params: map[string]any{"claimId": claimID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load claim context: %w", err)
	}
	if len(rows) == 0 {
		slog.Debug("no context for claim", "claim_id", claimID)
		return nil, nil
	}

	volume, err := s.Source.RunPatternQuery(ctx, graphsource.PatternSpec{
		ID:     graphsource.PatternShopClaimVolume,
		Params: map[string]any{"claimId": claimID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load shop claim volume: %w", err)
	}

	cc := fold(rows)
	report := &Report{
		ClaimID:           claimID,
		ClaimantName:      cc.claimantName,
		Amount:            cc.amount,
		RingID:            cc.ringID,
		RiskFactors:       []string{},
		MitigatingFactors: []string{},
		IsKnownFraud:      cc.isFraud,
		Context:           cc.names,
	}
	if len(volume) > 0 {
		report.ShopClaimCount = volume[0].Int("other_claims")
	}

	add := func(hit bool, weight int, factor string) {
		if hit {
			report.RiskScore += weight
			report.RiskFactors = append(report.RiskFactors, factor)
		}
	}
	add(cc.shop, shopFlaggedWeight, "Repair shop is flagged")
	add(cc.provider, providerFlaggedWeight, "Medical provider is flagged")
	add(cc.attorney, attorneyFlaggedWeight, "Attorney is flagged")
	add(cc.phone, phoneFlaggedWeight, "Phone number associated with multiple identities")

	if report.RiskScore < isolatedBelow && !cc.isFraud {
		report.MitigatingFactors = append(report.MitigatingFactors,
			"Isolated from known fraud rings",
			"Service providers have normal claim volumes")
	}

	report.RiskLevel = Level(report.RiskScore)
	slog.Debug("claim scored", "claim_id", claimID, "score", report.RiskScore, "level", report.RiskLevel)
	return report, nil
}

// Level maps a claim score to its risk level.
func Level(score int) patterns.RiskLevel {
	switch {
	case score >= highThreshold:
		return patterns.RiskHigh
	case score >= mediumThreshold:
		return patterns.RiskMedium
	default:
		return patterns.RiskLow
	}
}

// fold merges rows so flags hold when any row has them. Descriptive fields come from the
// first row that carries them.
func fold(rows []graphsource.Row) claimContext {
	cc := claimContext{names: make(map[string]string)}
	for _, row := range rows {
		if cc.claimantName == "" {
			cc.claimantName = row.StringOr("claimant_name", row.String("claimant_id"))
		}
		if cc.amount == nil {
			if v, ok := row.Float("amount"); ok {
				cc.amount = &v
			}
		}
		if cc.ringID == "" {
			cc.ringID = row.String("ring_id")
		}
		cc.isFraud = cc.isFraud || row.Bool("is_fraud")
		cc.shop = cc.shop || row.Bool("shop_flagged")
		cc.provider = cc.provider || row.Bool("provider_flagged")
		cc.attorney = cc.attorney || row.Bool("attorney_flagged")
		cc.phone = cc.phone || row.Bool("phone_flagged")

		for _, key := range []string{"shop_name", "provider_name", "attorney_name", "witness_name", "phone_number", "injury"} {
			if _, ok := cc.names[key]; ok {
				continue
			}
			if v := row.String(key); v != "" {
				cc.names[key] = v
			}
		}
	}
	return cc
}
