package domain

// SchemaType defines the type of the source API schema.
type SchemaType string

const (
	SchemaTypeGraphQL SchemaType = "graphql"
	// Add other types like OpenAPI here if needed later
)

// APISchema represents a fetched API schema before tool generation.
// It holds the raw schema text and metadata about its origin.
type APISchema struct {
	// Source indicates where the schema was loaded from (URL or file path).
	Source string
	// Type specifies the kind of schema.
	Type SchemaType
	// Endpoint is the upstream HTTP endpoint that executes operations
	// generated from this schema. May be empty for offline inspection.
	Endpoint string
	// Headers are static headers to forward when invoking the endpoint.
	Headers map[string]string
	// RawData holds the unprocessed schema text (SDL for GraphQL).
	RawData []byte
	// ParsedData holds the schema parsed into a library-specific
	// representation so later stages do not reparse. For GraphQL this is
	// *ast.Schema from gqlparser. Kept as interface{} to keep the domain
	// free of parser imports; adapters assert the concrete type.
	ParsedData interface{}
}
