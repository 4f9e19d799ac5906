package graphsource

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// MemorySource serves node and edge records held in memory. It evaluates the fixed pattern
// shapes natively with the same semantics as the catalogue Cypher, so analyses can run
// offline against fixtures and scenarios.
type MemorySource struct {
	nodes []model.NodeRecord
	index map[string]int
	edges []model.EdgeRecord

	out        map[string]map[model.RelType][]string
	in         map[string]map[model.RelType][]string
	neighbours map[string][]string
}

// NewMemorySource indexes the given records. Duplicate node ids keep the last record.
func NewMemorySource(nodes []model.NodeRecord, edges []model.EdgeRecord) *MemorySource {
	m := &MemorySource{
		nodes: make([]model.NodeRecord, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
		edges: append([]model.EdgeRecord(nil), edges...),
		out:   make(map[string]map[model.RelType][]string),
		in:    make(map[string]map[model.RelType][]string),

		neighbours: make(map[string][]string),
	}

	for _, n := range nodes {
		if i, ok := m.index[n.ID]; ok {
			m.nodes[i] = n
			continue
		}
		m.index[n.ID] = len(m.nodes)
		m.nodes = append(m.nodes, n)
	}

	for _, e := range edges {
		if m.out[e.Source] == nil {
			m.out[e.Source] = make(map[model.RelType][]string)
		}
		if m.in[e.Target] == nil {
			m.in[e.Target] = make(map[model.RelType][]string)
		}
		m.out[e.Source][e.RelType] = append(m.out[e.Source][e.RelType], e.Target)
		m.in[e.Target][e.RelType] = append(m.in[e.Target][e.RelType], e.Source)

		if e.Source != e.Target {
			m.addNeighbour(e.Source, e.Target)
			m.addNeighbour(e.Target, e.Source)
		}
	}

	return m
}

// FetchAllNodes returns every node record in insertion order.
func (m *MemorySource) FetchAllNodes(_ context.Context) ([]model.NodeRecord, error) {
	return append([]model.NodeRecord(nil), m.nodes...), nil
}

// FetchAllEdges returns every edge record, including ones with dangling endpoints.
func (m *MemorySource) FetchAllEdges(_ context.Context) ([]model.EdgeRecord, error) {
	return append([]model.EdgeRecord(nil), m.edges...), nil
}

// RunPatternQuery evaluates one of the fixed pattern shapes.
func (m *MemorySource) RunPatternQuery(_ context.Context, spec PatternSpec) ([]Row, error) {
	slog.Debug("evaluating pattern in memory", "pattern", spec.ID)

	switch spec.ID {
	case PatternSharedRepairShop:
		return m.sharedProvider(model.RelRepairedAt, model.NodeTypeRepairShop, intParam(spec.Params, "minClaimants", 3)), nil
	case PatternMedicalMill:
		return m.sharedProvider(model.RelTreatedAt, model.NodeTypeMedicalProvider, intParam(spec.Params, "minClaimants", 4)), nil
	case PatternAttorneySteering:
		return m.attorneySteering(intParam(spec.Params, "minClaimants", 4)), nil
	case PatternClaimContext:
		claimID, _ := spec.Params["claimId"].(string)
		return m.claimContext(claimID), nil
	case PatternShopClaimVolume:
		claimID, _ := spec.Params["claimId"].(string)
		return m.shopClaimVolume(claimID), nil
	default:
		return nil, fmt.Errorf("unknown pattern %q", spec.ID)
	}
}

// FetchEgoNetwork walks the undirected neighbourhood of centerID breadth-first.
// The limit bounds the number of returned nodes.
func (m *MemorySource) FetchEgoNetwork(_ context.Context, centerID string, hops, limit int) (*model.EgoNetwork, error) {
	hops, limit = ClampEgoBounds(hops, limit)
	ego := &model.EgoNetwork{CenterID: centerID, Hops: hops, Nodes: []model.Node{}, Edges: []model.Edge{}}

	center, ok := m.node(centerID)
	if !ok {
		return ego, nil
	}

	dist := map[string]int{centerID: 0}
	order := []string{centerID}
	ego.Nodes = append(ego.Nodes, center)

	for queue := []string{centerID}; len(queue) > 0 && len(order) < limit; {
		current := queue[0]
		queue = queue[1:]
		if dist[current] >= hops {
			continue
		}
		for _, next := range m.undirectedNeighbours(current) {
			if _, seen := dist[next]; seen {
				continue
			}
			n, ok := m.node(next)
			if !ok {
				continue
			}
			dist[next] = dist[current] + 1
			order = append(order, next)
			ego.Nodes = append(ego.Nodes, n)
			queue = append(queue, next)
			if len(order) >= limit {
				break
			}
		}
	}

	type edgeKey struct {
		source, target string
		rel            model.RelType
	}
	seen := make(map[edgeKey]bool)
	for _, e := range m.edges {
		ds, okS := dist[e.Source]
		dt, okT := dist[e.Target]
		if !okS || !okT || min(ds, dt) >= hops {
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

func (m *MemorySource) node(id string) (model.Node, bool) {
	i, ok := m.index[id]
	if !ok {
		return model.Node{}, false
	}
	return m.nodes[i].Normalize(), true
}

func (m *MemorySource) isType(id string, t model.NodeType) bool {
	i, ok := m.index[id]
	return ok && model.ParseNodeType(m.nodes[i].Label) == t
}

// related returns distinct existing nodes of type t reached from id over rel in the given direction.
func (m *MemorySource) related(id string, rel model.RelType, outgoing bool, t model.NodeType) []string {
	adj := m.in
	if outgoing {
		adj = m.out
	}
	var result []string
	seen := make(map[string]bool)
	for _, other := range adj[id][rel] {
		if seen[other] || !m.isType(other, t) {
			continue
		}
		seen[other] = true
		result = append(result, other)
	}
	return result
}

func (m *MemorySource) addNeighbour(a, b string) {
	if !contains(m.neighbours[a], b) {
		m.neighbours[a] = append(m.neighbours[a], b)
	}
}

func (m *MemorySource) undirectedNeighbours(id string) []string {
	return m.neighbours[id]
}

func (m *MemorySource) claimantsOf(claimID string) []string {
	return m.related(claimID, model.RelFiled, false, model.NodeTypePerson)
}

func (m *MemorySource) attorneyClaims(attorneyID string) []string {
	claims := m.related(attorneyID, model.RelRepresents, true, model.NodeTypeClaim)
	for _, c := range m.related(attorneyID, model.RelRepresentedBy, false, model.NodeTypeClaim) {
		if !contains(claims, c) {
			claims = append(claims, c)
		}
	}
	return claims
}

func (m *MemorySource) sharedProvider(rel model.RelType, providerType model.NodeType, minClaimants int) []Row {
	var rows []Row
	for _, rec := range m.nodes {
		if model.ParseNodeType(rec.Label) != providerType {
			continue
		}
		claimants := make(map[string]bool)
		for _, claim := range m.related(rec.ID, rel, false, model.NodeTypeClaim) {
			for _, c := range m.claimantsOf(claim) {
				claimants[c] = true
			}
		}
		if len(claimants) <= minClaimants {
			continue
		}
		n := rec.Normalize()
		rows = append(rows, Row{
			"entity_id":       n.ID,
			"entity":          n.Name,
			"connected_count": int64(len(claimants)),
			"flagged":         n.Flagged,
		})
	}
	sortByCount(rows)
	return rows
}

func (m *MemorySource) attorneySteering(minClaimants int) []Row {
	var rows []Row
	for _, rec := range m.nodes {
		if model.ParseNodeType(rec.Label) != model.NodeTypeAttorney {
			continue
		}
		claimants := make(map[string]bool)
		shops := make(map[string]bool)
		for _, claim := range m.attorneyClaims(rec.ID) {
			filers := m.claimantsOf(claim)
			if len(filers) == 0 {
				continue
			}
			for _, c := range filers {
				claimants[c] = true
			}
			for _, s := range m.related(claim, model.RelRepairedAt, true, model.NodeTypeRepairShop) {
				shops[s] = true
			}
		}
		if len(claimants) <= minClaimants {
			continue
		}
		n := rec.Normalize()
		rows = append(rows, Row{
			"entity_id":       n.ID,
			"entity":          n.Name,
			"connected_count": int64(len(claimants)),
			"unique_shops":    int64(len(shops)),
			"flagged":         n.Flagged,
		})
	}
	sortByCount(rows)
	return rows
}

func (m *MemorySource) claimContext(claimID string) []Row {
	if !m.isType(claimID, model.NodeTypeClaim) {
		return nil
	}
	claim, _ := m.node(claimID)

	shops := m.nodesOf(m.related(claimID, model.RelRepairedAt, true, model.NodeTypeRepairShop))
	providers := m.nodesOf(m.related(claimID, model.RelTreatedAt, true, model.NodeTypeMedicalProvider))
	attorneyIDs := m.related(claimID, model.RelRepresentedBy, true, model.NodeTypeAttorney)
	for _, a := range m.related(claimID, model.RelRepresents, false, model.NodeTypeAttorney) {
		if !contains(attorneyIDs, a) {
			attorneyIDs = append(attorneyIDs, a)
		}
	}
	attorneys := m.nodesOf(attorneyIDs)
	witnesses := m.nodesOf(m.related(claimID, model.RelWitnessed, false, model.NodeTypePerson))

	var rows []Row
	for _, claimantID := range m.claimantsOf(claimID) {
		claimant, _ := m.node(claimantID)
		phones := m.nodesOf(m.related(claimantID, model.RelHasPhone, true, model.NodeTypePhone))

		row := Row{
			"claimant_id":   claimant.ID,
			"claimant_name": claimant.Name,
			"claim_id":      claim.ID,
			"is_fraud":      claim.IsFraud,
			"ring_id":       nilIfEmpty(claim.RingID),
			"injury":        nilIfEmpty(claim.Attributes.InjuryType),
			"amount":        nil,
		}
		if claim.Amount != nil {
			row["amount"] = *claim.Amount
		}
		putFirst(row, "shop", shops)
		putFirst(row, "provider", providers)
		putFirst(row, "attorney", attorneys)
		putFirst(row, "witness", witnesses)
		putFirst(row, "phone", phones)
		if len(phones) > 0 {
			row["phone_number"] = phones[0].Attributes.PhoneNumber
			if phones[0].Attributes.PhoneNumber == "" {
				row["phone_number"] = phones[0].Name
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *MemorySource) shopClaimVolume(claimID string) []Row {
	others := make(map[string]bool)
	for _, shop := range m.related(claimID, model.RelRepairedAt, true, model.NodeTypeRepairShop) {
		for _, other := range m.related(shop, model.RelRepairedAt, false, model.NodeTypeClaim) {
			if other != claimID {
				others[other] = true
			}
		}
	}
	return []Row{{"other_claims": int64(len(others))}}
}

func (m *MemorySource) nodesOf(ids []string) []model.Node {
	nodes := make([]model.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := m.node(id); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// putFirst writes <prefix>_id and <prefix>_name of the first node and <prefix>_flagged as any().
func putFirst(row Row, prefix string, nodes []model.Node) {
	row[prefix+"_id"] = nil
	row[prefix+"_name"] = nil
	flagged := false
	for i, n := range nodes {
		if i == 0 {
			row[prefix+"_id"] = n.ID
			row[prefix+"_name"] = n.Name
		}
		flagged = flagged || n.Flagged
	}
	row[prefix+"_flagged"] = flagged
}

func sortByCount(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Int("connected_count") > rows[j].Int("connected_count")
	})
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
