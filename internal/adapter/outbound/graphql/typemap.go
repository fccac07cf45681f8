package graphql

import (
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/domain"
)

// scalarSchemas maps the built-in (and a few well-known custom) scalar
// names to their JSON Schema rendering. Anything absent degrades to a
// plain string rather than failing generation.
var scalarSchemas = map[string]domain.JSONSchemaProps{
	"String":  {Type: "string"},
	"ID":      {Type: "string"},
	"Int":     {Type: "integer"},
	"Float":   {Type: "number"},
	"Boolean": {Type: "boolean"},
	"DateTime": {
		Type:        "string",
		Format:      "date-time",
		Description: "ISO-8601 timestamp, e.g. 2025-04-01T14:30:00Z",
	},
}

// mapType converts a GraphQL input type reference into a JSON Schema node.
// gqlparser folds non-null into a flag on ast.Type instead of a wrapper
// node, so required-ness is always recorded by the caller (the argument
// loop in the generator, or the input-object field loop here), never on
// the node itself.
//
// visiting guards against self-referential input objects: a repeated type
// bottoms out as a bare object instead of recursing forever.
func mapType(schema *ast.Schema, typ *ast.Type, visiting map[string]bool) domain.JSONSchemaProps {
	if typ.Elem != nil {
		items := mapType(schema, typ.Elem, visiting)
		return domain.JSONSchemaProps{Type: "array", Items: &items}
	}

	def, ok := schema.Types[typ.NamedType]
	if !ok {
		return domain.JSONSchemaProps{Type: "string"}
	}

	switch def.Kind {
	case ast.Enum:
		node := domain.JSONSchemaProps{Type: "string", Description: def.Description}
		for _, member := range def.EnumValues {
			node.Enum = append(node.Enum, member.Name)
		}
		return node

	case ast.InputObject:
		if visiting[def.Name] {
			return domain.JSONSchemaProps{Type: "object"}
		}
		visiting[def.Name] = true
		defer delete(visiting, def.Name)

		node := domain.JSONSchemaProps{
			Type:       "object",
			Properties: make(map[string]domain.JSONSchemaProps, len(def.Fields)),
		}
		for _, field := range def.Fields {
			prop := mapType(schema, field.Type, visiting)
			// Descriptions and defaults attach to the child node.
			if field.Description != "" {
				prop.Description = field.Description
			}
			if field.DefaultValue != nil {
				prop.Default = valueToJSON(field.DefaultValue)
			}
			node.Properties[field.Name] = prop
			if field.Type.NonNull {
				node.Required = append(node.Required, field.Name)
			}
		}
		return node

	case ast.Scalar:
		if mapped, ok := scalarSchemas[def.Name]; ok {
			return mapped
		}
		return domain.JSONSchemaProps{Type: "string"}

	default:
		// Object/interface/union types are not valid as inputs; if one
		// slips through, degrade to string like an unknown scalar.
		return domain.JSONSchemaProps{Type: "string"}
	}
}

// valueToJSON converts a GraphQL const value (argument or input-field
// default) into a plain Go value suitable for JSON rendering.
func valueToJSON(v *ast.Value) interface{} {
	switch v.Kind {
	case ast.IntValue:
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n
		}
		return v.Raw
	case ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
		return v.Raw
	case ast.BooleanValue:
		return v.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.ListValue:
		list := make([]interface{}, 0, len(v.Children))
		for _, child := range v.Children {
			list = append(list, valueToJSON(child.Value))
		}
		return list
	case ast.ObjectValue:
		obj := make(map[string]interface{}, len(v.Children))
		for _, child := range v.Children {
			obj[child.Name] = valueToJSON(child.Value)
		}
		return obj
	default:
		// String, enum and block values all carry the literal in Raw.
		return v.Raw
	}
}
