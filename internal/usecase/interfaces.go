package usecase

import (
	"context"
	"errors"

	"gqlizer/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
)

// Standard errors returned by use cases and adapters.
var (
	ErrToolNotFound = errors.New("tool not found")
)

// --- Schema Source Related ---

// SchemaSourceConfig represents a configured schema source.
type SchemaSourceConfig struct {
	// URL is where the schema text lives (file path or http(s) URL).
	URL string
	// Endpoint is the upstream GraphQL HTTP endpoint operations are sent
	// to. When empty and URL is itself an http(s) URL, URL is used.
	Endpoint string
	// Headers are forwarded on both schema fetch and invocation.
	Headers map[string]string
	// Type selects the fetcher/generator pair. Defaults to GraphQL.
	Type domain.SchemaType
}

// SchemaFetcher fetches and parses API schemas from a source.
type SchemaFetcher interface {
	Fetch(ctx context.Context, source string) (domain.APISchema, error)
	FetchWithConfig(ctx context.Context, config SchemaSourceConfig) (domain.APISchema, error)
}

// ToolGenerator derives the tool catalog and per-tool invocation details
// from a fetched APISchema. Generation is deterministic: the same schema
// yields a byte-identical catalog on every run.
type ToolGenerator interface {
	Generate(schema domain.APISchema) ([]domain.Tool, []InvocationDetails, error)
}

// ToolRepository stores generated Tools and their InvocationDetails.
// Implementations range from in-memory stores to persistent databases.
type ToolRepository interface {
	// Save stores tools and their invocation details. Slices correspond
	// by index and must have the same length.
	Save(ctx context.Context, tools []domain.Tool, details []InvocationDetails) error

	// List retrieves all currently stored tools.
	List(ctx context.Context) ([]domain.Tool, error)

	// FindToolByName retrieves a tool definition by its unique name.
	FindToolByName(ctx context.Context, name string) (*domain.Tool, error)

	// FindInvocationDetailsByName retrieves the invocation details for a
	// tool by name.
	FindInvocationDetailsByName(ctx context.Context, name string) (*InvocationDetails, error)
}

// --- MCP Server Abstraction ---

// MCPServerAdapter is the slice of the underlying MCP server (mcp-go)
// needed by SyncSchemaUseCase to publish tools. Keeping it behind an
// interface avoids a hard dependency on one server implementation in the
// use case and lets tests substitute a mock.
type MCPServerAdapter interface {
	AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc)
}
