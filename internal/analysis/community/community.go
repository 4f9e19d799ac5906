// Package community partitions a graph snapshot into connected components and scores the
// ones large enough to be suspicious.
package community

import (
	"log/slog"
	"math"
	"sort"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/analysis/graph"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// MinSize is the smallest component reported as a community.
const MinSize = 4

// Report describes one suspicious community.
type Report struct {
	// CommunityID is the discovery index of the component among all components of the run.
	CommunityID  int                    `json:"community_id"`
	Size         int                    `json:"size"`
	Members      []string               `json:"members"`
	FlaggedCount int                    `json:"flagged_count"`
	FraudCount   int                    `json:"fraud_count"`
	NodeTypes    map[model.NodeType]int `json:"node_types"`
	Density      float64                `json:"density"`
	RiskScore    float64                `json:"risk_score"`
}

// Components returns every connected component as node ids, discovered by BFS in node
// insertion order. Members appear in visit order.
func Components(g *graph.Graph) [][]string {
	nodes := g.Nodes()
	visited := make([]bool, len(nodes))
	var components [][]string

	for start := range nodes {
		if visited[start] {
			continue
		}
		visited[start] = true
		queue := []int{start}
		var members []string
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			members = append(members, nodes[i].ID)
			for _, j := range g.Adjacency(i) {
				if !visited[j] {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}
		components = append(components, members)
	}

	return components
}

// Detect returns the scored communities of g, highest risk first. Equal scores keep
// discovery order.
func Detect(g *graph.Graph) []Report {
	components := Components(g)
	reports := make([]Report, 0)

	for id, members := range components {
		if len(members) < MinSize {
			continue
		}

		r := Report{
			CommunityID: id,
			Size:        len(members),
			Members:     members,
			NodeTypes:   make(map[model.NodeType]int),
		}
		for _, memberID := range members {
			n, _ := g.Node(memberID)
			if n.Flagged {
				r.FlaggedCount++
			}
			if n.IsFraud {
				r.FraudCount++
			}
			r.NodeTypes[n.Type]++
		}

		density, err := g.Density(members)
		if err != nil {
			slog.Debug("density unavailable, scoring without it", "community", id, "error", err)
			density = 0
		}
		r.Density = round(density, 4)
		r.RiskScore = RiskScore(r.FlaggedCount, r.FraudCount, r.Size, density, err)
		reports = append(reports, r)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].RiskScore > reports[j].RiskScore
	})

	slog.Debug("communities detected", "components", len(components), "suspicious", len(reports))
	return reports
}

// RiskScore combines the capped factors of a community of n members. A density error or a
// non-finite density contributes nothing. The sum is rounded to 2 decimals and not clamped.
func RiskScore(flagged, fraud, n int, density float64, densityErr error) float64 {
	score := float64(min(flagged*10, 30))
	score += float64(min(fraud*5, 40))

	if densityErr == nil && n >= 2 && !math.IsNaN(density) && !math.IsInf(density, 0) {
		score += density * 20
	}

	switch {
	case n >= 5 && n <= 20:
		score += 10
	case n > 20:
		score += 5
	}

	return round(score, 2)
}

// Filter keeps reports scoring at least minScore, truncated to limit when limit > 0.
func Filter(reports []Report, minScore float64, limit int) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if r.RiskScore >= minScore {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
