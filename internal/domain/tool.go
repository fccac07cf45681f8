package domain

import "encoding/json"

// Tool represents a callable function derived from an API schema,
// compliant with the Model Context Protocol (MCP).
type Tool struct {
	// Name follows the pattern "{operation-kind}_{fieldName}" where the
	// operation kind token is "query-tool" or "mutation-tool". It MUST be
	// unique within the MCP server; the prefix is the sole collision
	// mechanism between query and mutation fields sharing a name.
	Name string `json:"name"`

	// Description provides a natural language explanation of what the tool
	// does. This is what lets the LLM decide when to use the tool.
	Description string `json:"description"`

	// InputSchema defines the structure of the arguments the tool expects,
	// in JSON Schema form.
	InputSchema JSONSchemaProps `json:"input_schema"`
}

// JSONSchemaProps is a JSON Schema node describing a tool argument tree.
// Only the subset of JSON Schema needed for GraphQL input types is kept.
type JSONSchemaProps struct {
	Type        string                     `json:"type,omitempty"`        // "object", "string", "number", "integer", "boolean", "array"
	Description string                     `json:"description,omitempty"` // Carried over from the schema's own descriptions
	Properties  map[string]JSONSchemaProps `json:"properties,omitempty"`  // For type "object"
	Required    []string                   `json:"required,omitempty"`    // Property names with non-null declared types
	Items       *JSONSchemaProps           `json:"items,omitempty"`       // For type "array"
	Enum        []string                   `json:"enum,omitempty"`        // Enum member names in declaration order
	Default     interface{}                `json:"default,omitempty"`     // Declared default value, if any
	Format      string                     `json:"format,omitempty"`      // e.g. "date-time"
}

// ToolCall is a single invocation of a tool: the tool name plus the raw
// JSON object of argument values as provided by the caller. Arguments are
// kept as raw JSON so key order survives into the generated operation.
// Calls are transient; nothing is retained across invocations.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}
