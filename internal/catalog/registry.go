package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
)

var (
	// ErrUnknownPattern is returned when a pattern id is not in the catalogue.
	ErrUnknownPattern = errors.New("unknown pattern")
	// ErrMissingParameter is returned when a required parameter has no value.
	ErrMissingParameter = errors.New("missing required parameter")
)

// Catalog indexes the loaded pattern definitions by id.
type Catalog struct {
	patterns map[string]*PatternConfig
	order    []string
}

// Load walks the embedded catalogue (falling back to configDir) and indexes it.
func Load(embedded fs.FS, configDir string) (*Catalog, error) {
	configs, err := WalkConfigDirectory(embedded, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern catalogue: %w", err)
	}
	c, err := New(configs)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded pattern catalogue", "count", c.Len(), "categories", c.ListCategories())
	return c, nil
}

// New indexes configs. Duplicate ids are an error.
func New(configs []*PatternConfig) (*Catalog, error) {
	c := &Catalog{patterns: make(map[string]*PatternConfig, len(configs))}
	for _, config := range configs {
		if _, dup := c.patterns[config.ID]; dup {
			return nil, fmt.Errorf("duplicate pattern id '%s'", config.ID)
		}
		c.patterns[config.ID] = config
		c.order = append(c.order, config.ID)
	}
	sort.Strings(c.order)
	return c, nil
}

// Len returns the number of loaded patterns
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get returns the pattern with the given id.
func (c *Catalog) Get(id string) (*PatternConfig, error) {
	config, ok := c.patterns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, id)
	}
	return config, nil
}

// Patterns returns all pattern definitions ordered by id.
func (c *Catalog) Patterns() []*PatternConfig {
	configs := make([]*PatternConfig, 0, len(c.order))
	for _, id := range c.order {
		configs = append(configs, c.patterns[id])
	}
	return configs
}

// GetPatternsByCategory returns all patterns in a specific category
func (c *Catalog) GetPatternsByCategory(category string) []*PatternConfig {
	configs := make([]*PatternConfig, 0)
	for _, config := range c.Patterns() {
		if config.Category == category {
			configs = append(configs, config)
		}
	}
	return configs
}

// ListCategories returns all unique categories, sorted
func (c *Catalog) ListCategories() []string {
	categoryMap := make(map[string]bool)
	for _, config := range c.patterns {
		categoryMap[config.Category] = true
	}

	categories := make([]string, 0, len(categoryMap))
	for category := range categoryMap {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Resolve returns the Cypher for a pattern and its bound parameters. Caller values win over
// declared defaults; parameters the pattern does not declare are dropped.
func (c *Catalog) Resolve(id string, params map[string]any) (string, map[string]any, error) {
	config, err := c.Get(id)
	if err != nil {
		return "", nil, err
	}

	bound := make(map[string]any, len(config.Parameters))
	for _, p := range config.Parameters {
		val, ok := params[p.Name]
		if !ok || val == nil {
			val = p.Default
		}
		if val == nil {
			if p.Required {
				return "", nil, fmt.Errorf("%w: %s requires $%s", ErrMissingParameter, id, p.Name)
			}
			continue
		}
		bound[p.Name] = coerce(p.Type, val)
	}

	return config.Cypher, bound, nil
}

// coerce narrows JSON numbers to int64 for integer parameters so Cypher compares integers.
func coerce(typ string, val any) any {
	if typ != "integer" {
		return val
	}
	switch v := val.(type) {
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	}
	return val
}
