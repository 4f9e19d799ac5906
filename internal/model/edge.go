package model

// RelType names the semantics of a directed relationship.
type RelType string

const (
	RelFiled         RelType = "FILED"
	RelPassengerIn   RelType = "PASSENGER_IN"
	RelTreatedAt     RelType = "TREATED_AT"
	RelRepresentedBy RelType = "REPRESENTED_BY"
	RelRepresents    RelType = "REPRESENTS"
	RelRepairedAt    RelType = "REPAIRED_AT"
	RelHasPhone      RelType = "HAS_PHONE"
	RelWitnessed     RelType = "WITNESSED"
	RelHolder        RelType = "HOLDER"
	RelCovers        RelType = "COVERS"
	RelInvolves      RelType = "INVOLVES"
	RelRelated       RelType = "RELATED"
)

// EdgeRecord is a relationship as delivered by a graph source.
type EdgeRecord struct {
	Source  string  `json:"source" yaml:"source"`
	Target  string  `json:"target" yaml:"target"`
	RelType RelType `json:"rel_type" yaml:"rel_type"`
}

// Edge is a directed relationship between two nodes of the same snapshot.
// Edges are not uniquely keyed; parallel edges with different RelType are meaningful.
type Edge struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	RelType RelType `json:"rel_type"`
}

// EgoNetwork is the subgraph within a bounded hop distance of one centre node,
// shaped for a visualisation client.
type EgoNetwork struct {
	CenterID string `json:"center_id"`
	Hops     int    `json:"hops"`
	Nodes    []Node `json:"nodes"`
	Edges    []Edge `json:"edges"`
}

// Empty reports whether the ego network holds no nodes.
func (e *EgoNetwork) Empty() bool {
	return e == nil || len(e.Nodes) == 0
}
