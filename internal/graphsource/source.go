package graphsource

//go:generate mockgen -destination=mocks/mock_graphsource.go -package=graphsource_mocks github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource GraphSource

import (
	"context"
	"errors"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// ErrUnavailable marks failures to reach the backing graph store. Analyses must surface it
// to their caller instead of treating the call as an empty result.
var ErrUnavailable = errors.New("graph source unavailable")

// PatternID identifies one of the fixed structural query shapes.
type PatternID string

const (
	PatternSharedRepairShop PatternID = "shared_repair_shop"
	PatternMedicalMill      PatternID = "medical_mill"
	PatternAttorneySteering PatternID = "attorney_steering"
	PatternClaimContext     PatternID = "claim_context"
	PatternShopClaimVolume  PatternID = "shop_claim_volume"
)

// PatternSpec is a parameterised pattern request: a pattern id plus its bound parameters.
type PatternSpec struct {
	ID     PatternID
	Params map[string]any
}

// GraphSource executes traversals against persisted graph data.
type GraphSource interface {
	FetchAllNodes(ctx context.Context) ([]model.NodeRecord, error)
	FetchAllEdges(ctx context.Context) ([]model.EdgeRecord, error)
	RunPatternQuery(ctx context.Context, spec PatternSpec) ([]Row, error)
	FetchEgoNetwork(ctx context.Context, centerID string, hops, limit int) (*model.EgoNetwork, error)
}

const (
	DefaultEgoHops  = 2
	MaxEgoHops      = 5
	DefaultEgoLimit = 150
	MaxEgoLimit     = 1000
)

// ClampEgoBounds applies the default and maximum hop and limit values.
func ClampEgoBounds(hops, limit int) (int, int) {
	if hops <= 0 {
		hops = DefaultEgoHops
	}
	if hops > MaxEgoHops {
		hops = MaxEgoHops
	}
	if limit <= 0 {
		limit = DefaultEgoLimit
	}
	if limit > MaxEgoLimit {
		limit = MaxEgoLimit
	}
	return hops, limit
}
