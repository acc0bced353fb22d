package graph

import (
	"fmt"
	"strings"
)

// Schema selects how extracted knowledge maps onto graph identifiers.
type Schema int

const (
	// FixedLabelSchema stores every entity under the Entity label and every
	// relation as a RELATION edge carrying the relation type as a property.
	// No extracted string is ever interpolated into query text.
	FixedLabelSchema Schema = iota

	// PerEntityLabelSchema names edges after the normalized relation type.
	// Relation types originate from LLM output, so only strings passing the
	// identifier allow-list are interpolated; everything else falls back to
	// the fixed RELATION edge.
	PerEntityLabelSchema
)

func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(s) {
	case "", "fixed":
		return FixedLabelSchema, nil
	case "per_entity":
		return PerEntityLabelSchema, nil
	default:
		return FixedLabelSchema, fmt.Errorf("unknown graph schema %q (want \"fixed\" or \"per_entity\")", s)
	}
}

// SafeIdentifier reports whether s can be used verbatim as a Cypher label or
// relationship type: ASCII letters, digits and underscores only, not starting
// with a digit. Stripping dangerous characters is not enough — anything that
// fails the allow-list is rejected outright.
func SafeIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
