package community

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/scenario"
)

func scenarioGraph(t *testing.T, id int) *graph.Graph {
	t.Helper()
	s, err := scenario.Get(id)
	require.NoError(t, err)
	return graph.Build(s.Nodes, s.Edges)
}

func TestDetect_RecycledPassenger(t *testing.T) {
	reports := Detect(scenarioGraph(t, scenario.RecycledPassenger))

	require.Len(t, reports, 1)
	r := reports[0]
	assert.GreaterOrEqual(t, r.Size, 7)
	for _, id := range []string{"CLM-101", "CLM-102", "Pass-B", "Driver-A", "Driver-D", "DOC-X", "ATT-Y", "PH-RING"} {
		assert.Contains(t, r.Members, id)
	}
	assert.Equal(t, 10, r.Size)
	assert.Equal(t, 4, r.FlaggedCount)
	assert.Equal(t, 0, r.FraudCount)
	assert.Equal(t, 5, r.NodeTypes[model.NodeTypePerson])
	assert.Equal(t, 1, r.NodeTypes[model.NodeTypeMedicalProvider])

	// 12 distinct links among 10 nodes: density 24/90.
	assert.InDelta(t, 0.2667, r.Density, 1e-9)
	assert.Equal(t, 45.33, r.RiskScore)
}

func TestDetect_PartitionIsValid(t *testing.T) {
	for _, s := range scenario.All() {
		t.Run(s.Name, func(t *testing.T) {
			g := graph.Build(s.Nodes, s.Edges)
			seen := make(map[string]bool)
			for _, r := range Detect(g) {
				assert.GreaterOrEqual(t, r.Size, MinSize)
				assert.Len(t, r.Members, r.Size)
				for _, m := range r.Members {
					_, ok := g.Node(m)
					assert.True(t, ok, "member %s not in graph", m)
					assert.False(t, seen[m], "member %s in two communities", m)
					seen[m] = true
				}
			}
		})
	}
}

func TestComponents_CoverEveryNode(t *testing.T) {
	g := scenarioGraph(t, scenario.FalsePositiveContext)

	total := 0
	for _, c := range Components(g) {
		total += len(c)
	}
	assert.Equal(t, g.Len(), total)
}

func TestDetect_DropsSmallComponents(t *testing.T) {
	// Two components: a 3-node path and a 4-node star.
	nodes := []model.NodeRecord{}
	for _, id := range []string{"A", "B", "C", "H", "X", "Y", "Z"} {
		nodes = append(nodes, model.NodeRecord{ID: id, Label: "Person"})
	}
	edges := []model.EdgeRecord{
		{Source: "A", Target: "B"}, {Source: "B", Target: "C"},
		{Source: "H", Target: "X"}, {Source: "H", Target: "Y"}, {Source: "H", Target: "Z"},
	}

	reports := Detect(graph.Build(nodes, edges))
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].CommunityID)
	assert.Equal(t, []string{"H", "X", "Y", "Z"}, reports[0].Members)
}

func TestDetect_Idempotent(t *testing.T) {
	g := scenarioGraph(t, scenario.LatentWitness)
	assert.Equal(t, Detect(g), Detect(g))
}

func TestDetect_SortedByRiskDescending(t *testing.T) {
	var nodes []model.NodeRecord
	var edges []model.EdgeRecord
	flagged := true
	// Three 4-node stars; the second has a flagged hub.
	for c := 0; c < 3; c++ {
		hub := fmt.Sprintf("H%d", c)
		rec := model.NodeRecord{ID: hub, Label: "Shop"}
		if c == 1 {
			rec.Flagged = &flagged
		}
		nodes = append(nodes, rec)
		for k := 0; k < 3; k++ {
			leaf := fmt.Sprintf("L%d-%d", c, k)
			nodes = append(nodes, model.NodeRecord{ID: leaf, Label: "Claim"})
			edges = append(edges, model.EdgeRecord{Source: leaf, Target: hub, RelType: model.RelRepairedAt})
		}
	}

	reports := Detect(graph.Build(nodes, edges))
	require.Len(t, reports, 3)
	assert.Equal(t, 1, reports[0].CommunityID)
	assert.Equal(t, 0, reports[1].CommunityID)
	assert.Equal(t, 2, reports[2].CommunityID)
}

func TestRiskScore(t *testing.T) {
	t.Run("caps", func(t *testing.T) {
		assert.Equal(t, 30.0, RiskScore(100, 0, 4, 0, nil))
		assert.Equal(t, 40.0, RiskScore(0, 100, 4, 0, nil))
		assert.Equal(t, 20.0, RiskScore(0, 0, 4, 1, nil))
		assert.Equal(t, 100.0, RiskScore(50, 50, 10, 1, nil))
	})

	t.Run("size bonus", func(t *testing.T) {
		assert.Equal(t, 0.0, RiskScore(0, 0, 4, 0, nil))
		assert.Equal(t, 10.0, RiskScore(0, 0, 5, 0, nil))
		assert.Equal(t, 10.0, RiskScore(0, 0, 20, 0, nil))
		assert.Equal(t, 5.0, RiskScore(0, 0, 21, 0, nil))
	})

	t.Run("monotone in flagged and fraud", func(t *testing.T) {
		for k := 0; k < 12; k++ {
			assert.LessOrEqual(t, RiskScore(k, 2, 8, 0.3, nil), RiskScore(k+1, 2, 8, 0.3, nil))
			assert.LessOrEqual(t, RiskScore(1, k, 8, 0.3, nil), RiskScore(1, k+1, 8, 0.3, nil))
		}
	})

	t.Run("density failure contributes zero", func(t *testing.T) {
		assert.Equal(t, 10.0, RiskScore(1, 0, 4, 0.9, errors.New("boom")))
		assert.Equal(t, 10.0, RiskScore(1, 0, 1, 0.9, nil))
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		assert.Equal(t, 6.67, RiskScore(0, 0, 4, 1.0/3.0, nil))
	})
}

func TestFilter(t *testing.T) {
	reports := []Report{{CommunityID: 0, RiskScore: 80}, {CommunityID: 1, RiskScore: 40}, {CommunityID: 2, RiskScore: 10}}

	assert.Len(t, Filter(reports, 0, 0), 3)
	assert.Len(t, Filter(reports, 40, 0), 2)
	filtered := Filter(reports, 0, 1)
	require.Len(t, filtered, 1)
	assert.Equal(t, 0, filtered[0].CommunityID)
}
