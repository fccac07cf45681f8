// Command gqlcheck inspects a GraphQL schema offline: it prints the tool
// catalog that gqlizer would expose for it, and optionally compiles a
// single tool call into an operation string without contacting any
// endpoint. Useful for checking what an agent will see before serving.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/adapter/outbound/graphql"
	"gqlizer/internal/domain"
)

func main() {
	var (
		schemaSrc string
		toolName  string
		toolArgs  string
	)
	flag.StringVar(&schemaSrc, "schema", "", "GraphQL SDL source (file path or URL)")
	flag.StringVar(&toolName, "tool", "", "Tool name to compile (prints the catalog when empty)")
	flag.StringVar(&toolArgs, "args", "", "JSON object of argument values for -tool")
	flag.Parse()

	if schemaSrc == "" {
		fmt.Fprintln(os.Stderr, "usage: gqlcheck -schema <sdl> [-tool <name> [-args <json>]]")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := graphql.NewSchemaFetcher(&http.Client{Timeout: 10 * time.Second}, logger)
	schema, err := fetcher.Fetch(ctx, schemaSrc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gqlcheck: %v\n", err)
		os.Exit(1)
	}

	selection := graphql.DefaultSelectionConfig()

	if toolName != "" {
		doc := schema.ParsedData.(*ast.Schema)
		compiler := graphql.NewCompiler(doc, selection)
		operation, err := compiler.Compile(domain.ToolCall{
			Name:      toolName,
			Arguments: json.RawMessage(toolArgs),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "gqlcheck: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(operation)
		return
	}

	generator := graphql.NewToolGenerator(nil, selection, logger)
	tools, _, err := generator.Generate(schema)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gqlcheck: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tools); err != nil {
		fmt.Fprintf(os.Stderr, "gqlcheck: %v\n", err)
		os.Exit(1)
	}
}
