package model

import "strings"

// NodeType is the canonical entity kind of a graph node.
type NodeType string

const (
	NodeTypePerson          NodeType = "Person"
	NodeTypeClaim           NodeType = "Claim"
	NodeTypeRepairShop      NodeType = "RepairShop"
	NodeTypeMedicalProvider NodeType = "MedicalProvider"
	NodeTypePolicy          NodeType = "Policy"
	NodeTypeVehicle         NodeType = "Vehicle"
	NodeTypePhone           NodeType = "Phone"
	NodeTypeAddress         NodeType = "Address"
	NodeTypeAttorney        NodeType = "Attorney"
	NodeTypeUnknown         NodeType = "Unknown"
)

// nodeTypeAliases maps the labels used by seed data and legacy queries onto canonical kinds.
var nodeTypeAliases = map[string]NodeType{
	"person":          NodeTypePerson,
	"claimant":        NodeTypePerson,
	"witness":         NodeTypePerson,
	"claim":           NodeTypeClaim,
	"shop":            NodeTypeRepairShop,
	"repairshop":      NodeTypeRepairShop,
	"doctor":          NodeTypeMedicalProvider,
	"medicalprovider": NodeTypeMedicalProvider,
	"policy":          NodeTypePolicy,
	"vehicle":         NodeTypeVehicle,
	"phone":           NodeTypePhone,
	"address":         NodeTypeAddress,
	"attorney":        NodeTypeAttorney,
}

// ParseNodeType resolves a node label to its canonical kind.
// Labels outside the known set are kept verbatim so callers still see them in histograms.
func ParseNodeType(label string) NodeType {
	label = strings.TrimSpace(label)
	if label == "" {
		return NodeTypeUnknown
	}
	if t, ok := nodeTypeAliases[strings.ToLower(label)]; ok {
		return t
	}
	return NodeType(label)
}

// Labels returns the database labels that may carry this kind, canonical label first.
func (t NodeType) Labels() []string {
	switch t {
	case NodeTypePerson:
		return []string{"Person", "Claimant", "Witness"}
	case NodeTypeRepairShop:
		return []string{"RepairShop", "Shop"}
	case NodeTypeMedicalProvider:
		return []string{"MedicalProvider", "Doctor"}
	default:
		return []string{string(t)}
	}
}

// Attributes holds the type-specific properties a node may carry.
type Attributes struct {
	Role        string `json:"role,omitempty" yaml:"role,omitempty"`
	Tenure      string `json:"tenure,omitempty" yaml:"tenure,omitempty"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	InjuryType  string `json:"injury_type,omitempty" yaml:"injury_type,omitempty"`
}

// NodeRecord is a node as delivered by a graph source. Optional fields are nil when the
// source did not provide them.
type NodeRecord struct {
	ID         string     `json:"id" yaml:"id"`
	Label      string     `json:"type" yaml:"type"`
	Name       *string    `json:"name,omitempty" yaml:"name,omitempty"`
	Flagged    *bool      `json:"flagged,omitempty" yaml:"flagged,omitempty"`
	IsFraud    *bool      `json:"is_fraud,omitempty" yaml:"is_fraud,omitempty"`
	RingID     *string    `json:"ring_id,omitempty" yaml:"ring_id,omitempty"`
	Amount     *float64   `json:"amount,omitempty" yaml:"amount,omitempty"`
	Attributes Attributes `json:"attributes" yaml:"attributes,omitempty"`
}

// Node is a normalised graph node. Name is never empty.
type Node struct {
	ID         string     `json:"id"`
	Type       NodeType   `json:"type"`
	Name       string     `json:"name"`
	Flagged    bool       `json:"flagged"`
	IsFraud    bool       `json:"is_fraud"`
	RingID     string     `json:"ring_id,omitempty"`
	Amount     *float64   `json:"amount,omitempty"`
	Attributes Attributes `json:"attributes"`
}

// Normalize applies the defaulting rules: name falls back to id, flags default to false.
func (r NodeRecord) Normalize() Node {
	n := Node{
		ID:         r.ID,
		Type:       ParseNodeType(r.Label),
		Name:       r.ID,
		Amount:     r.Amount,
		Attributes: r.Attributes,
	}
	if r.Name != nil && *r.Name != "" {
		n.Name = *r.Name
	}
	if r.Flagged != nil {
		n.Flagged = *r.Flagged
	}
	if r.IsFraud != nil {
		n.IsFraud = *r.IsFraud
	}
	if r.RingID != nil {
		n.RingID = *r.RingID
	}
	return n
}
