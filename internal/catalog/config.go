package catalog

// PatternConfig represents the YAML definition of one parameterised pattern query
type PatternConfig struct {
	// ID is the unique pattern identifier (e.g., "shared_repair_shop")
	ID string `yaml:"id" validate:"required"`

	// Name is the human-readable pattern name used in reports
	Name string `yaml:"name" validate:"required"`

	// Description explains what the query returns
	Description string `yaml:"description" validate:"required"`

	// Intent provides semantic understanding for agents - WHEN this pattern applies
	Intent string `yaml:"intent,omitempty"`

	// Cypher is the query executed against Neo4j
	Cypher string `yaml:"cypher" validate:"required"`

	// ReferenceSchema lists the labels and relationships the query touches
	ReferenceSchema *ReferenceSchemaConfig `yaml:"reference_schema,omitempty"`

	// Parameters defines typed input parameters for the query
	Parameters []ParameterConfig `yaml:"parameters,omitempty"`

	// Category is derived from the folder structure (e.g., "collusion", "claim")
	// This is an internal field, not from YAML
	Category string `yaml:"-"`
}

// ReferenceSchemaConfig provides hints about the graph elements a pattern reads
type ReferenceSchemaConfig struct {
	Labels        []string `yaml:"labels,omitempty"`
	Relationships []string `yaml:"relationships,omitempty"`
}

// ParameterConfig defines a typed input parameter
type ParameterConfig struct {
	// Name is the parameter identifier, bound as $name in the Cypher
	Name string `yaml:"name" validate:"required"`

	// Type is the JSON Schema type (string, integer, number, boolean, array, object)
	Type string `yaml:"type" validate:"omitempty,oneof=string integer number boolean array object"`

	Description string `yaml:"description,omitempty"`

	// Default value (type depends on Type field)
	Default any `yaml:"default,omitempty"`

	// Required indicates if this parameter must be provided
	Required bool `yaml:"required,omitempty"`
}
