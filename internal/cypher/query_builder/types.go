package query_builder

// PathSpecification defines a graph traversal step between two pattern variables.
type PathSpecification struct {
	// RelationshipTypes restricts the traversal to these types. Empty means any type.
	RelationshipTypes []string `json:"relationshipTypes,omitempty"`

	// Direction specifies the relationship direction: "out", "in", or "both"
	Direction string `json:"direction"`

	// TargetLabels are alternative labels for the end node. Empty means unlabelled.
	TargetLabels []string `json:"targetLabels,omitempty"`

	// MinHops is the minimum number of hops (relationships) to traverse. 0 means no minimum.
	MinHops int `json:"minHops,omitempty"`

	// MaxHops is the maximum number of hops to traverse. 0 means unlimited (use with caution).
	MaxHops int `json:"maxHops,omitempty"`
}
