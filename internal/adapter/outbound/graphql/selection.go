package graphql

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// maxSelectionDepth bounds how many structured-type hops a generated
// selection may take beyond the root. The bound doubles as cycle
// avoidance: with at most two structural levels, self-referential object
// types cannot make generation diverge.
const maxSelectionDepth = 1

// SelectionConfig tunes which structured fields are excluded from
// generated selection clauses. Both knobs exist to bound response size:
// connection-shaped fields fan out into paginated collections, and the
// exclusion list names known-heavy aggregate fields.
type SelectionConfig struct {
	// ConnectionSuffix excludes any structured field whose name ends with
	// it. Empty disables the heuristic.
	ConnectionSuffix string
	// ExcludeFields lists structured field names that are never selected.
	ExcludeFields []string
}

// DefaultSelectionConfig returns the exclusions used when the config file
// does not override them.
func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		ConnectionSuffix: "Connection",
		ExcludeFields:    []string{"dailyStats", "analytics"},
	}
}

func (c SelectionConfig) skipStructured(fieldName string) bool {
	if c.ConnectionSuffix != "" && strings.HasSuffix(fieldName, c.ConnectionSuffix) {
		return true
	}
	return slices.Contains(c.ExcludeFields, fieldName)
}

// buildSelection generates the selection clause for an output type.
// List and non-null modifiers are unwrapped first; scalars and enums are
// leaves and yield an empty clause (the caller selects the field bare).
// Structured types list their leaf fields in declaration order and expand
// nested structured fields only while depth < maxSelectionDepth. Unions
// select __typename plus an inline fragment per member, each bounded the
// same way. A structured type with nothing selectable yields "" so the
// caller can omit the braces entirely.
func buildSelection(schema *ast.Schema, typ *ast.Type, depth int, cfg SelectionConfig) string {
	def, ok := schema.Types[typ.Name()]
	if !ok {
		return ""
	}

	switch def.Kind {
	case ast.Object, ast.Interface:
	case ast.Union:
		return buildUnionSelection(schema, def, depth, cfg)
	default:
		return ""
	}

	var fields []string
	for _, field := range def.Fields {
		if strings.HasPrefix(field.Name, "__") {
			continue
		}
		child, ok := schema.Types[field.Type.Name()]
		if ok && (child.Kind == ast.Scalar || child.Kind == ast.Enum) {
			fields = append(fields, field.Name)
			continue
		}
		if depth >= maxSelectionDepth || cfg.skipStructured(field.Name) {
			continue
		}
		nested := buildSelection(schema, field.Type, depth+1, cfg)
		if nested == "" {
			continue
		}
		fields = append(fields, field.Name+" "+nested)
	}

	if len(fields) == 0 {
		return ""
	}
	return "{ " + strings.Join(fields, " ") + " }"
}

// buildUnionSelection selects __typename so responses stay discriminable,
// then one inline fragment per member type. Fragments do not count as a
// structural hop; the members expand at the same depth as the union.
func buildUnionSelection(schema *ast.Schema, def *ast.Definition, depth int, cfg SelectionConfig) string {
	parts := []string{"__typename"}
	for _, member := range def.Types {
		nested := buildSelection(schema, ast.NamedType(member, nil), depth, cfg)
		if nested == "" {
			continue
		}
		parts = append(parts, "... on "+member+" "+nested)
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
