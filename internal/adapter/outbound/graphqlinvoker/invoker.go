package graphqlinvoker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"gqlizer/internal/adapter/outbound/graphql"
	"gqlizer/internal/domain"
	"gqlizer/internal/usecase"
)

// Invoker implements usecase.ToolInvoker for GraphQL endpoints. It looks
// up the compiler for the tool's schema, builds the operation string from
// the call's arguments, and POSTs it to the configured endpoint.
type Invoker struct {
	client   *http.Client
	registry *graphql.Registry
	logger   *slog.Logger
}

// New creates a new GraphQL Invoker.
func New(client *http.Client, registry *graphql.Registry, logger *slog.Logger) *Invoker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Invoker{
		client:   client,
		registry: registry,
		logger:   logger.With("component", "graphql_invoker"),
	}
}

// request is the standard GraphQL-over-HTTP request body.
type request struct {
	Query string `json:"query"`
}

// response is the standard GraphQL-over-HTTP response envelope.
type response struct {
	Data   map[string]interface{} `json:"data"`
	Errors []responseError        `json:"errors,omitempty"`
}

type responseError struct {
	Message string `json:"message"`
}

// Invoke compiles the operation and executes it against the upstream
// endpoint. Returns the response's data object; GraphQL-level errors are
// mapped to a Go error.
func (i *Invoker) Invoke(ctx context.Context, details usecase.InvocationDetails, args json.RawMessage) (map[string]interface{}, error) {
	log := i.logger.With(
		slog.String("tool_name", details.ToolName),
		slog.String("endpoint", details.Endpoint),
		slog.String("invocation_id", uuid.NewString()),
	)

	compiler, ok := i.registry.Get(details.Source)
	if !ok {
		return nil, fmt.Errorf("no compiled schema registered for source %s", details.Source)
	}

	operation, err := compiler.Compile(domain.ToolCall{Name: details.ToolName, Arguments: args})
	if err != nil {
		log.Error("Failed to compile operation", slog.Any("error", err))
		return nil, fmt.Errorf("compiling operation for %s: %w", details.ToolName, err)
	}
	log.Debug("Compiled operation", slog.String("operation", operation))

	if details.Endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured for source %s", details.Source)
	}

	body, err := json.Marshal(request{Query: operation})
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, details.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", details.Endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		log.Error("Upstream request failed", slog.Any("error", err))
		return nil, fmt.Errorf("executing operation against %s: %w", details.Endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", details.Endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn("Upstream returned non-OK status", slog.String("status", resp.Status))
		return nil, fmt.Errorf("endpoint %s returned status %s", details.Endpoint, resp.Status)
	}

	var envelope response
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", details.Endpoint, err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for idx, e := range envelope.Errors {
			messages[idx] = e.Message
		}
		log.Warn("Upstream reported GraphQL errors", slog.Int("error_count", len(envelope.Errors)))
		return nil, fmt.Errorf("graphql errors from %s: %s", details.Endpoint, strings.Join(messages, "; "))
	}

	log.Info("Tool invocation completed")
	return envelope.Data, nil
}
