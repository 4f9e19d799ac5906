// Package scenario provides the canned auto-insurance fraud topologies used for demos and
// tests, plus loading of custom fixtures and seeding them into Neo4j.
package scenario

import (
	"errors"
	"fmt"

	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/graphsource"
	"github.com/mkd-neo4j/neo4j-claims-fraud/internal/model"
)

// ErrUnknownScenario is returned by Get for ids outside the catalogue.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a self-contained graph of node and edge records.
type Scenario struct {
	ID          int                `json:"id" yaml:"id"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Nodes       []model.NodeRecord `json:"nodes" yaml:"nodes"`
	Edges       []model.EdgeRecord `json:"edges" yaml:"edges"`
}

// Source serves the scenario from memory.
func (s *Scenario) Source() *graphsource.MemorySource {
	return graphsource.NewMemorySource(s.Nodes, s.Edges)
}

// IDs of the built-in scenarios.
const (
	RecycledPassenger    = 1
	LatentWitness        = 2
	FalsePositiveContext = 3
)

// Get returns a fresh copy of the built-in scenario with the given id.
func Get(id int) (*Scenario, error) {
	switch id {
	case RecycledPassenger:
		return recycledPassenger(), nil
	case LatentWitness:
		return latentWitness(), nil
	case FalsePositiveContext:
		return falsePositiveContext(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScenario, id)
	}
}

// All returns every built-in scenario in id order.
func All() []*Scenario {
	return []*Scenario{recycledPassenger(), latentWitness(), falsePositiveContext()}
}

type nodeOpt func(*model.NodeRecord)

func flagged(r *model.NodeRecord) {
	v := true
	r.Flagged = &v
}

func fraud(r *model.NodeRecord) {
	v := true
	r.IsFraud = &v
}

func amount(v float64) nodeOpt {
	return func(r *model.NodeRecord) { r.Amount = &v }
}

func role(v string) nodeOpt {
	return func(r *model.NodeRecord) { r.Attributes.Role = v }
}

func tenure(v string) nodeOpt {
	return func(r *model.NodeRecord) { r.Attributes.Tenure = v }
}

func date(v string) nodeOpt {
	return func(r *model.NodeRecord) { r.Attributes.Date = v }
}

func phoneNumber(v string) nodeOpt {
	return func(r *model.NodeRecord) { r.Attributes.PhoneNumber = v }
}

func node(id, label, name string, opts ...nodeOpt) model.NodeRecord {
	r := model.NodeRecord{ID: id, Label: label, Name: &name}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func edge(source string, rel model.RelType, target string) model.EdgeRecord {
	return model.EdgeRecord{Source: source, Target: target, RelType: rel}
}

// recycledPassenger: two staged accidents share a passenger, a clinic and an attorney, and
// the two drivers share a burner phone.
func recycledPassenger() *Scenario {
	return &Scenario{
		ID:          RecycledPassenger,
		Name:        "Recycled Passenger",
		Description: "A ring where passengers cycle through staged accidents. Two accident clusters share a passenger and a service nexus.",
		Nodes: []model.NodeRecord{
			node("DOC-X", "Doctor", "Elite Rehab Center", flagged),
			node("ATT-Y", "Attorney", "Lawyer Saul", flagged),
			node("CLM-101", "Claim", "Accident #1 ($45k)", amount(45000), date("2024-01-10")),
			node("Driver-A", "Person", "Driver A", role("Organizer")),
			node("Pass-B", "Person", "Passenger B", role("Recycled Passenger"), flagged),
			node("Pass-C", "Person", "Passenger C", role("Passenger")),
			node("CLM-102", "Claim", "Accident #2 ($38k)", amount(38000), date("2024-04-22")),
			node("Driver-D", "Person", "Driver D", role("Organizer")),
			node("Pass-E", "Person", "Passenger E", role("Passenger")),
			node("PH-RING", "Phone", "Burner Phone", flagged),
		},
		Edges: []model.EdgeRecord{
			edge("Driver-A", model.RelFiled, "CLM-101"),
			edge("Pass-B", model.RelPassengerIn, "CLM-101"),
			edge("Pass-C", model.RelPassengerIn, "CLM-101"),
			edge("CLM-101", model.RelTreatedAt, "DOC-X"),
			edge("CLM-101", model.RelRepresentedBy, "ATT-Y"),
			edge("Driver-D", model.RelFiled, "CLM-102"),
			edge("Pass-B", model.RelPassengerIn, "CLM-102"),
			edge("Pass-E", model.RelPassengerIn, "CLM-102"),
			edge("CLM-102", model.RelTreatedAt, "DOC-X"),
			edge("CLM-102", model.RelRepresentedBy, "ATT-Y"),
			edge("Driver-A", model.RelHasPhone, "PH-RING"),
			edge("Driver-D", model.RelHasPhone, "PH-RING"),
		},
	}
}

// latentWitness: two unrelated-looking claims are linked only because the witness of one
// shares a flagged phone with the claimant of the other.
func latentWitness() *Scenario {
	return &Scenario{
		ID:          LatentWitness,
		Name:        "Latent Witness",
		Description: "A compromised witness. Two policy clusters connect only through a shared flagged phone.",
		Nodes: []model.NodeRecord{
			node("Alice", "Person", "Alice", role("Claimant")),
			node("POL-A", "Policy", "Policy #A-991", tenure("3 Years")),
			node("VEH-A", "Vehicle", "2020 Ford Fusion"),
			node("CLM-A", "Claim", "Claim #A-22", amount(4500), date("2024-03-10")),
			node("SHOP-A", "Shop", "Downtown Auto"),
			node("Wit-Bob", "Person", "Bob", role("Witness")),
			node("Charlie", "Person", "Charlie", role("Claimant")),
			node("POL-B", "Policy", "Policy #B-772", tenure("6 Months")),
			node("VEH-B", "Vehicle", "2016 Chevy Malibu"),
			node("CLM-B", "Claim", "Claim #B-44", amount(5200), date("2024-04-05")),
			node("DOC-B", "Doctor", "Metro Health"),
			node("PH-555", "Phone", "555-0199", phoneNumber("555-0199"), flagged),
		},
		Edges: []model.EdgeRecord{
			edge("Alice", model.RelHolder, "POL-A"),
			edge("POL-A", model.RelCovers, "VEH-A"),
			edge("Alice", model.RelFiled, "CLM-A"),
			edge("CLM-A", model.RelInvolves, "VEH-A"),
			edge("CLM-A", model.RelRepairedAt, "SHOP-A"),
			edge("Wit-Bob", model.RelWitnessed, "CLM-A"),
			edge("Charlie", model.RelHolder, "POL-B"),
			edge("POL-B", model.RelCovers, "VEH-B"),
			edge("Charlie", model.RelFiled, "CLM-B"),
			edge("CLM-B", model.RelInvolves, "VEH-B"),
			edge("CLM-B", model.RelTreatedAt, "DOC-B"),
			edge("Wit-Bob", model.RelHasPhone, "PH-555"),
			edge("Charlie", model.RelHasPhone, "PH-555"),
		},
	}
}

// falsePositiveContext: two identical high-value claims, one from a long-tenured customer at a
// dealer shop, one from a new customer at a flagged shop with past fraud.
func falsePositiveContext() *Scenario {
	return &Scenario{
		ID:          FalsePositiveContext,
		Name:        "False Positive Context",
		Description: "Two $25k claims that look alike in isolation. Network context separates the loyal customer from the fraud.",
		Nodes: []model.NodeRecord{
			node("L-User", "Person", "Loyal Customer", role("Insured")),
			node("POL-L", "Policy", "Policy (10 Yrs)", tenure("120 Months")),
			node("CLM-999", "Claim", "Major Accident ($25k)", amount(25000)),
			node("S-Dealer", "Shop", "Official Dealer"),
			node("F-User", "Person", "New Customer", role("Insured")),
			node("POL-F", "Policy", "Policy (1 Mo)", tenure("1 Month")),
			node("CLM-888", "Claim", "Major Accident ($25k)", amount(25000)),
			node("S-Shady", "Shop", "Shady Body Shop", flagged),
			node("CLM-OLD", "Claim", "Past Fraud Claim", fraud),
		},
		Edges: []model.EdgeRecord{
			edge("L-User", model.RelHolder, "POL-L"),
			edge("L-User", model.RelFiled, "CLM-999"),
			edge("CLM-999", model.RelRepairedAt, "S-Dealer"),
			edge("F-User", model.RelHolder, "POL-F"),
			edge("F-User", model.RelFiled, "CLM-888"),
			edge("CLM-888", model.RelRepairedAt, "S-Shady"),
			edge("CLM-OLD", model.RelRepairedAt, "S-Shady"),
		},
	}
}
