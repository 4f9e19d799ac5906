package catalog

import (
	"fmt"
	"strings"
)

// BuildEnrichedDescription renders a pattern as markdown guidance for an agent.
func BuildEnrichedDescription(config *PatternConfig) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s (`%s`)\n", config.Name, config.ID))
	sb.WriteString(strings.TrimSpace(config.Description))

	if config.Intent != "" {
		sb.WriteString("\n\n**Intent:** ")
		sb.WriteString(strings.TrimSpace(config.Intent))
	}

	if config.ReferenceSchema != nil {
		sb.WriteString("\n\n**Reference Schema**\n")
		if len(config.ReferenceSchema.Labels) > 0 {
			sb.WriteString(fmt.Sprintf("- Labels: %v\n", config.ReferenceSchema.Labels))
		}
		if len(config.ReferenceSchema.Relationships) > 0 {
			sb.WriteString(fmt.Sprintf("- Relationships: %v\n", config.ReferenceSchema.Relationships))
		}
	}

	if len(config.Parameters) > 0 {
		sb.WriteString("\n**Parameters**\n")
		for _, p := range config.Parameters {
			sb.WriteString(fmt.Sprintf("- `$%s` (%s)", p.Name, p.Type))
			if p.Required {
				sb.WriteString(" [required]")
			}
			if p.Default != nil {
				sb.WriteString(fmt.Sprintf(" [default: %v]", p.Default))
			}
			if p.Description != "" {
				sb.WriteString(fmt.Sprintf(": %s", p.Description))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n```cypher\n")
	sb.WriteString(strings.TrimSpace(config.Cypher))
	sb.WriteString("\n```\n")

	return sb.String()
}
