package graphql_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/adapter/outbound/graphql"
	"gqlizer/internal/domain"
	"gqlizer/internal/usecase"
)

func newTestFetcher(t *testing.T, client *http.Client) *graphql.SchemaFetcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return graphql.NewSchemaFetcher(client, logger)
}

func TestSchemaFetcher_Fetch_File(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(os.WriteFile(path, []byte(testSDL), 0644))

	schema, err := newTestFetcher(t, nil).Fetch(ctx, path)
	require.NoError(err)

	assert.Equal(domain.SchemaTypeGraphQL, schema.Type)
	assert.Equal(path, schema.Source)
	assert.Empty(schema.Endpoint) // file sources have no implicit endpoint
	doc, ok := schema.ParsedData.(*ast.Schema)
	require.True(ok)
	require.NotNil(doc.Query)
	assert.NotNil(doc.Query.Fields.ForName("profiles"))
}

func TestSchemaFetcher_Fetch_URL(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("Bearer token123", r.Header.Get("Authorization"))
		w.Write([]byte(testSDL))
	}))
	t.Cleanup(server.Close)

	schema, err := newTestFetcher(t, server.Client()).FetchWithConfig(ctx, usecase.SchemaSourceConfig{
		URL:     server.URL,
		Headers: map[string]string{"Authorization": "Bearer token123"},
	})
	require.NoError(err)

	// HTTP sources double as the invocation endpoint unless overridden.
	assert.Equal(server.URL, schema.Endpoint)
	assert.Equal(map[string]string{"Authorization": "Bearer token123"}, schema.Headers)
}

func TestSchemaFetcher_Fetch_ExplicitEndpoint(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(os.WriteFile(path, []byte(testSDL), 0644))

	schema, err := newTestFetcher(t, nil).FetchWithConfig(ctx, usecase.SchemaSourceConfig{
		URL:      path,
		Endpoint: "https://api.example.com/graphql",
	})
	require.NoError(err)
	require.Equal("https://api.example.com/graphql", schema.Endpoint)
}

func TestSchemaFetcher_Fetch_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := newTestFetcher(t, nil).Fetch(ctx, "/nonexistent/schema.graphql")
		assert.Error(t, err)
	})

	t.Run("invalid SDL", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.graphql")
		require.NoError(t, os.WriteFile(path, []byte("type Query {"), 0644))

		_, err := newTestFetcher(t, nil).Fetch(ctx, path)
		assert.Error(t, err)
	})

	t.Run("non-OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		t.Cleanup(server.Close)

		_, err := newTestFetcher(t, server.Client()).Fetch(ctx, server.URL)
		assert.Error(t, err)
	})
}
