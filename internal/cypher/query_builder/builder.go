package query_builder

import (
	"fmt"
	"strings"
)

// HopSpec renders the variable-length suffix of a relationship pattern.
//
//	HopSpec(1, 3) // "*1..3"
//	HopSpec(2, 2) // "*2"
//	HopSpec(0, 4) // "*..4"
//	HopSpec(0, 0) // ""
func HopSpec(minHops, maxHops int) string {
	switch {
	case minHops <= 0 && maxHops <= 0:
		return ""
	case minHops == maxHops:
		return fmt.Sprintf("*%d", minHops)
	case maxHops > 0 && minHops > 0:
		return fmt.Sprintf("*%d..%d", minHops, maxHops)
	case maxHops > 0:
		return fmt.Sprintf("*..%d", maxHops)
	default:
		return fmt.Sprintf("*%d..", minHops)
	}
}

// PathPattern renders (source)-[...]-(target) for the given specification.
// Relationship types and labels are sanitised; relVar may be empty.
//
// Example:
//
//	PathPattern("center", "", PathSpecification{Direction: "both", MinHops: 1, MaxHops: 2}, "connected")
//	// Returns: (center)-[*1..2]-(connected)
func PathPattern(sourceVar, relVar string, path PathSpecification, targetVar string) string {
	var rel strings.Builder
	rel.WriteString(relVar)
	if len(path.RelationshipTypes) > 0 {
		types := make([]string, len(path.RelationshipTypes))
		for i, t := range path.RelationshipTypes {
			types[i] = SanitizeIdentifier(t)
		}
		rel.WriteString(":" + strings.Join(types, "|"))
	}
	rel.WriteString(HopSpec(path.MinHops, path.MaxHops))

	target := targetVar
	if len(path.TargetLabels) == 1 {
		target += ":" + SanitizeIdentifier(path.TargetLabels[0])
	}

	switch path.Direction {
	case "in":
		return fmt.Sprintf("(%s)<-[%s]-(%s)", sourceVar, rel.String(), target)
	case "both":
		return fmt.Sprintf("(%s)-[%s]-(%s)", sourceVar, rel.String(), target)
	default:
		return fmt.Sprintf("(%s)-[%s]->(%s)", sourceVar, rel.String(), target)
	}
}

// UnwindCreateNodes builds a batched node insert for one label. Each row of $rows becomes the
// property map of a new node.
func UnwindCreateNodes(label string) string {
	return fmt.Sprintf("UNWIND $rows AS row\nCREATE (n:%s)\nSET n = row", SanitizeIdentifier(label))
}

// UnwindCreateRelationships builds a batched relationship insert for one type, matching
// endpoints by their id property. Rows carry source and target.
func UnwindCreateRelationships(relType string) string {
	return fmt.Sprintf(
		"UNWIND $rows AS row\nMATCH (a {id: row.source}), (b {id: row.target})\nCREATE (a)-[:%s]->(b)",
		SanitizeIdentifier(relType),
	)
}

// SanitizeIdentifier sanitizes a string to be used as a Cypher identifier.
// Keeps letters, digits and underscores and ensures a leading letter.
func SanitizeIdentifier(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}

	sanitized := result.String()

	if len(sanitized) > 0 && ((sanitized[0] >= '0' && sanitized[0] <= '9') || sanitized[0] == '_') {
		sanitized = "v" + sanitized
	}

	if sanitized == "" {
		sanitized = "var"
	}

	return sanitized
}
