package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFixture reads a YAML graph fixture:
//
//	name: Shared shop
//	nodes:
//	  - {id: S-1, type: Shop, name: Shady Body Shop, flagged: true}
//	edges:
//	  - {source: CLM-1, target: S-1, rel_type: REPAIRED_AT}
func LoadFixture(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes fixture YAML. Nodes without an id are rejected.
func ParseFixture(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}
	for i, n := range s.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("fixture node[%d] has no id", i)
		}
	}
	return &s, nil
}
