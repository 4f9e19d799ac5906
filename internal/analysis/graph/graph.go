// Package graph builds an in-memory snapshot of the claims network from source records.
package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// ErrDegenerate is returned by metrics that are undefined for the given node set.
var ErrDegenerate = errors.New("degenerate graph")

// Graph is an immutable snapshot. Node iteration follows first-seen order of ids.
// Edges keep direction and multiplicity; connectivity queries use the undirected simple
// projection (parallel edges collapse, self loops are ignored).
type Graph struct {
	nodes []model.Node
	index map[string]int
	edges []model.Edge

	adj     [][]int
	skipped int
}

// Build creates a graph from raw records. Duplicate ids keep the last record at the position
// of the first. Edges with a missing endpoint are skipped.
func Build(nodes []model.NodeRecord, edges []model.EdgeRecord) *Graph {
	g := &Graph{index: make(map[string]int, len(nodes))}

	for _, rec := range nodes {
		n := rec.Normalize()
		if i, ok := g.index[n.ID]; ok {
			g.nodes[i] = n
			continue
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n)
	}

	g.adj = make([][]int, len(g.nodes))
	linked := make(map[[2]int]bool)

	for _, rec := range edges {
		s, okS := g.index[rec.Source]
		t, okT := g.index[rec.Target]
		if !okS || !okT {
			g.skipped++
			slog.Debug("skipping edge with missing endpoint", "source", rec.Source, "target", rec.Target, "rel_type", rec.RelType)
			continue
		}
		relType := rec.RelType
		if relType == "" {
			relType = model.RelRelated
		}
		g.edges = append(g.edges, model.Edge{Source: rec.Source, Target: rec.Target, RelType: relType})

		if s == t {
			continue
		}
		key := [2]int{min(s, t), max(s, t)}
		if linked[key] {
			continue
		}
		linked[key] = true
		g.adj[s] = append(g.adj[s], t)
		g.adj[t] = append(g.adj[t], s)
	}

	return g
}

// Load fetches nodes then edges from src and builds the snapshot.
func Load(ctx context.Context, src graphsource.GraphSource) (*Graph, error) {
	nodes, err := src.FetchAllNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nodes: %w", err)
	}
	edges, err := src.FetchAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch edges: %w", err)
	}

	g := Build(nodes, edges)
	slog.Debug("graph snapshot built", "nodes", g.Len(), "edges", len(g.edges), "skipped_edges", g.skipped)
	return g, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []model.Node {
	return g.nodes
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (model.Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return model.Node{}, false
	}
	return g.nodes[i], true
}

// Index returns the insertion position of id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Edges returns all accepted edges in input order.
func (g *Graph) Edges() []model.Edge {
	return g.edges
}

// Skipped returns how many edge records were dropped for a missing endpoint.
func (g *Graph) Skipped() int {
	return g.skipped
}

// Neighbors returns the distinct undirected neighbours of id, in first-linked order.
func (g *Graph) Neighbors(id string) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]string, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.nodes[j].ID
	}
	return out
}

// Adjacency exposes neighbour positions for the node at position i.
func (g *Graph) Adjacency(i int) []int {
	return g.adj[i]
}

// Degree returns the number of distinct neighbours of id.
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// Density returns 2|E|/(n(n-1)) of the subgraph induced by ids, counting each adjacent pair
// once. Unknown ids are ignored.
func (g *Graph) Density(ids []string) (float64, error) {
	members := make(map[int]bool, len(ids))
	for _, id := range ids {
		if i, ok := g.index[id]; ok {
			members[i] = true
		}
	}
	n := len(members)
	if n < 2 {
		return 0, fmt.Errorf("%w: density needs at least 2 nodes, got %d", ErrDegenerate, n)
	}

	links := 0
	for i := range members {
		for _, j := range g.adj[i] {
			if j > i && members[j] {
				links++
			}
		}
	}

	density := 2 * float64(links) / (float64(n) * float64(n-1))
	if math.IsNaN(density) || math.IsInf(density, 0) {
		return 0, fmt.Errorf("%w: non-finite density", ErrDegenerate)
	}
	return density, nil
}
