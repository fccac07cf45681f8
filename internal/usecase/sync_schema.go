package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gqlizer/internal/domain"

	"github.com/mark3labs/mcp-go/mcp"
)

// SyncSchemaUseCase orchestrates fetching a schema, generating the tool
// catalog, storing it, and publishing each tool on the MCP server with a
// handler that invokes the upstream API.
type SyncSchemaUseCase struct {
	sources    []SchemaSourceConfig
	fetchers   map[domain.SchemaType]SchemaFetcher
	generators map[domain.SchemaType]ToolGenerator
	repository ToolRepository
	mcpServer  MCPServerAdapter
	invoker    ToolInvoker
	logger     *slog.Logger
}

// NewSyncSchemaUseCase creates a new SyncSchemaUseCase. Fetchers and
// generators are keyed by schema type; every configured source must have
// a registered pair.
func NewSyncSchemaUseCase(
	sources []SchemaSourceConfig,
	fetchers map[domain.SchemaType]SchemaFetcher,
	generators map[domain.SchemaType]ToolGenerator,
	repository ToolRepository,
	mcpServer MCPServerAdapter,
	invoker ToolInvoker,
	logger *slog.Logger,
) *SyncSchemaUseCase {
	return &SyncSchemaUseCase{
		sources:    sources,
		fetchers:   fetchers,
		generators: generators,
		repository: repository,
		mcpServer:  mcpServer,
		invoker:    invoker,
		logger:     logger.With("usecase", "SyncSchema"),
	}
}

// SyncAllConfiguredSources syncs every source from the configuration.
// Individual source failures are collected rather than aborting the rest.
func (uc *SyncSchemaUseCase) SyncAllConfiguredSources(ctx context.Context) error {
	var errs []error
	for _, src := range uc.sources {
		if err := uc.Execute(ctx, src); err != nil {
			uc.logger.Error("Failed to sync schema source", slog.String("source", src.URL), slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Execute fetches one schema source, generates tools, saves them, and
// registers them on the MCP server.
func (uc *SyncSchemaUseCase) Execute(ctx context.Context, source SchemaSourceConfig) error {
	log := uc.logger.With(slog.String("source", source.URL))
	log.Info("Starting schema sync")

	schemaType := source.Type
	if schemaType == "" {
		schemaType = domain.SchemaTypeGraphQL
	}

	fetcher, ok := uc.fetchers[schemaType]
	if !ok {
		return fmt.Errorf("no schema fetcher available for type %s (source %s)", schemaType, source.URL)
	}

	fetched, err := fetcher.FetchWithConfig(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to fetch schema from %s: %w", source.URL, err)
	}
	if fetched.Type == "" {
		fetched.Type = schemaType
	}
	log.Info("Schema fetched successfully", slog.String("schema_type", string(fetched.Type)))

	generator, ok := uc.generators[fetched.Type]
	if !ok {
		return fmt.Errorf("no tool generator found for schema type: %s", fetched.Type)
	}

	tools, details, err := generator.Generate(fetched)
	if err != nil {
		return fmt.Errorf("failed to generate tools for schema %s: %w", source.URL, err)
	}

	if err := uc.repository.Save(ctx, tools, details); err != nil {
		return fmt.Errorf("failed to save generated tools: %w", err)
	}

	if uc.mcpServer != nil {
		for i, tool := range tools {
			if err := uc.registerTool(tool, details[i]); err != nil {
				log.Warn("Skipping MCP registration for tool", slog.String("tool_name", tool.Name), slog.Any("error", err))
			}
		}
	}

	log.Info("Successfully synced schema", slog.Int("tool_count", len(tools)))
	return nil
}

// registerTool publishes one tool on the MCP server. The handler compiles
// and executes the upstream call through the ToolInvoker on every request;
// no state is retained between calls.
func (uc *SyncSchemaUseCase) registerTool(tool domain.Tool, details InvocationDetails) error {
	rawSchema, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return fmt.Errorf("marshalling input schema for %s: %w", tool.Name, err)
	}

	mcpTool := mcp.Tool{
		Name:           tool.Name,
		Description:    tool.Description,
		RawInputSchema: rawSchema,
	}

	uc.mcpServer.AddTool(mcpTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		result, err := uc.invoker.Invoke(ctx, details, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	})
	return nil
}
