package graphqlinvoker_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/adapter/outbound/graphql"
	"gqlizer/internal/adapter/outbound/graphqlinvoker"
	"gqlizer/internal/usecase"
)

const invokerSDL = `
type Profile {
  id: ID!
  handle: String!
}

type Query {
  profiles: [Profile!]!
}
`

func newTestRegistry(t *testing.T) *graphql.Registry {
	t.Helper()
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: invokerSDL})
	require.NoError(t, err)

	registry := graphql.NewRegistry()
	registry.Put("test.graphql", graphql.NewCompiler(doc, graphql.DefaultSelectionConfig()))
	return registry
}

func newTestInvoker(t *testing.T, handler http.Handler) (*graphqlinvoker.Invoker, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return graphqlinvoker.New(server.Client(), newTestRegistry(t), logger), server
}

func detailsFor(endpoint string) usecase.InvocationDetails {
	return usecase.InvocationDetails{
		Type:          "graphql",
		Source:        "test.graphql",
		Endpoint:      endpoint,
		Headers:       map[string]string{"Authorization": "Bearer tok"},
		ToolName:      "query-tool_profiles",
		OperationKind: "query",
		FieldName:     "profiles",
	}
}

func TestInvoker_Invoke_Success(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	data := map[string]interface{}{
		"profiles": []interface{}{map[string]interface{}{"id": "p1", "handle": "alice"}},
	}

	invoker, server := newTestInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("application/json", r.Header.Get("Content-Type"))
		assert.Equal("Bearer tok", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		require.NoError(json.Unmarshal(body, &req))
		assert.Equal("query { profiles { id handle } }", req["query"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))

	result, err := invoker.Invoke(ctx, detailsFor(server.URL), nil)
	require.NoError(err)
	assert.Equal(data, result)
}

func TestInvoker_Invoke_GraphQLErrors(t *testing.T) {
	invoker, server := newTestInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data":   nil,
			"errors": []map[string]string{{"message": "profile not found"}},
		})
	}))

	_, err := invoker.Invoke(context.Background(), detailsFor(server.URL), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile not found")
}

func TestInvoker_Invoke_NonOKStatus(t *testing.T) {
	invoker, server := newTestInvoker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := invoker.Invoke(context.Background(), detailsFor(server.URL), nil)
	assert.Error(t, err)
}

func TestInvoker_Invoke_UnknownSource(t *testing.T) {
	invoker, server := newTestInvoker(t, http.NotFoundHandler())

	details := detailsFor(server.URL)
	details.Source = "unregistered.graphql"
	_, err := invoker.Invoke(context.Background(), details, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compiled schema registered")
}

func TestInvoker_Invoke_MissingEndpoint(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	invoker := graphqlinvoker.New(nil, newTestRegistry(t), logger)

	details := detailsFor("")
	_, err := invoker.Invoke(context.Background(), details, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no endpoint configured")
}

func TestInvoker_Invoke_CompileError(t *testing.T) {
	invoker, server := newTestInvoker(t, http.NotFoundHandler())

	details := detailsFor(server.URL)
	details.ToolName = "query-tool_nonexistent"
	_, err := invoker.Invoke(context.Background(), details, nil)
	assert.ErrorIs(t, err, graphql.ErrUnknownField)
}
