package graphql

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/domain"
	"gqlizer/internal/usecase"
)

// Tool name prefixes. The prefix is a wire contract: external consumers
// split tool names on the first underscore to recover the operation kind,
// so these tokens must not change.
const (
	queryToolPrefix    = "query-tool"
	mutationToolPrefix = "mutation-tool"
	toolNameSeparator  = "_"
)

// ToolGenerator implements usecase.ToolGenerator for GraphQL schemas.
// It also registers a Compiler for each generated schema so the invoker
// can build operation strings at call time.
type ToolGenerator struct {
	registry  *Registry
	selection SelectionConfig
	logger    *slog.Logger
}

// NewToolGenerator creates a new GraphQL ToolGenerator.
func NewToolGenerator(registry *Registry, selection SelectionConfig, logger *slog.Logger) *ToolGenerator {
	return &ToolGenerator{
		registry:  registry,
		selection: selection,
		logger:    logger.With("component", "graphql_generator"),
	}
}

// Generate derives one tool per root query field and per root mutation
// field, in schema declaration order (queries first). Generation is pure
// over the parsed schema: running it twice against the same schema yields
// an identical catalog.
func (g *ToolGenerator) Generate(schema domain.APISchema) ([]domain.Tool, []usecase.InvocationDetails, error) {
	log := g.logger.With(slog.String("source", schema.Source))
	log.Info("Generating tools from GraphQL schema")

	doc, ok := schema.ParsedData.(*ast.Schema)
	if !ok || doc == nil {
		return nil, nil, fmt.Errorf("invalid or missing parsed GraphQL schema in APISchema")
	}

	endpoint := schema.Endpoint
	if endpoint == "" && strings.HasPrefix(schema.Source, "http") {
		endpoint = schema.Source
	}

	var tools []domain.Tool
	var detailsList []usecase.InvocationDetails

	appendRoot := func(root *ast.Definition, prefix, kind string) {
		if root == nil {
			return
		}
		for _, field := range root.Fields {
			if strings.HasPrefix(field.Name, "__") {
				continue
			}
			tools = append(tools, g.buildTool(doc, prefix, field))
			detailsList = append(detailsList, usecase.InvocationDetails{
				Type:          string(domain.SchemaTypeGraphQL),
				Source:        schema.Source,
				Endpoint:      endpoint,
				Headers:       schema.Headers,
				ToolName:      prefix + toolNameSeparator + field.Name,
				OperationKind: kind,
				FieldName:     field.Name,
			})
		}
	}

	appendRoot(doc.Query, queryToolPrefix, "query")
	appendRoot(doc.Mutation, mutationToolPrefix, "mutation")

	if g.registry != nil {
		g.registry.Put(schema.Source, NewCompiler(doc, g.selection))
	}

	log.Info("Finished generating tools from GraphQL schema", slog.Int("tool_count", len(tools)))
	return tools, detailsList, nil
}

// buildTool maps one root field to a tool definition. The top-level input
// schema is always object-kind; each declared argument becomes a property,
// required iff its declared type is non-null at the top level (nullability
// nested inside a list or input object does not propagate upward).
func (g *ToolGenerator) buildTool(doc *ast.Schema, prefix string, field *ast.FieldDefinition) domain.Tool {
	input := domain.JSONSchemaProps{
		Type:       "object",
		Properties: make(map[string]domain.JSONSchemaProps, len(field.Arguments)),
	}
	for _, arg := range field.Arguments {
		prop := mapType(doc, arg.Type, map[string]bool{})
		if arg.Description != "" {
			prop.Description = arg.Description
		}
		if arg.DefaultValue != nil {
			prop.Default = valueToJSON(arg.DefaultValue)
		}
		input.Properties[arg.Name] = prop
		if arg.Type.NonNull {
			input.Required = append(input.Required, arg.Name)
		}
	}

	description := field.Description
	if description == "" {
		description = fmt.Sprintf("%s: %s", prefix, field.Name)
	}

	return domain.Tool{
		Name:        prefix + toolNameSeparator + field.Name,
		Description: description,
		InputSchema: input,
	}
}
