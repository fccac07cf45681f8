package graphql_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"gqlizer/internal/adapter/outbound/graphql"
	"gqlizer/internal/domain"
)

func newTestCompiler(t *testing.T) *graphql.Compiler {
	t.Helper()
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: testSDL})
	require.NoError(t, err)
	return graphql.NewCompiler(doc, graphql.DefaultSelectionConfig())
}

func TestCompiler_Compile(t *testing.T) {
	compiler := newTestCompiler(t)

	tests := []struct {
		name    string
		call    domain.ToolCall
		want    string
		wantErr error
	}{
		{
			name: "query without arguments",
			call: domain.ToolCall{Name: "query-tool_profiles"},
			want: "query { profiles { id handle service owner { id email plan } } }",
		},
		{
			name: "query with empty argument object",
			call: domain.ToolCall{Name: "query-tool_profiles", Arguments: json.RawMessage(`{}`)},
			want: "query { profiles { id handle service owner { id email plan } } }",
		},
		{
			name: "query with scalar argument",
			call: domain.ToolCall{Name: "query-tool_profile", Arguments: json.RawMessage(`{"id": "prof_123"}`)},
			want: `query { profile(id: "prof_123") { id handle service owner { id email plan } } }`,
		},
		{
			name: "selection recurses one level into structured fields",
			call: domain.ToolCall{Name: "query-tool_post", Arguments: json.RawMessage(`{"id": "p1"}`)},
			want: `query { post(id: "p1") { id text status profile { id handle service } } }`,
		},
		{
			name: "mixed argument kinds preserve call order",
			call: domain.ToolCall{Name: "query-tool_tags", Arguments: json.RawMessage(`{"limit": 5, "filter": {"search": "go", "ids": ["a", "b"]}}`)},
			want: `query { tags(limit: 5, filter: {search: "go", ids: ["a", "b"]}) { id name } }`,
		},
		{
			name: "mutation with nested input object",
			call: domain.ToolCall{
				Name:      "mutation-tool_createPost",
				Arguments: json.RawMessage(`{"input": {"profileId": "prof_123", "text": "hello", "scheduledAt": "2025-04-01T14:30:00Z"}}`),
			},
			want: `mutation { createPost(input: {profileId: "prof_123", text: "hello", scheduledAt: "2025-04-01T14:30:00Z"}) { id status post { id text status } } }`,
		},
		{
			name: "scalar return type omits selection",
			call: domain.ToolCall{Name: "mutation-tool_deletePost", Arguments: json.RawMessage(`{"id": "p1", "reason": "spam"}`)},
			want: `mutation { deletePost(id: "p1", reason: "spam") }`,
		},
		{
			name: "null and boolean literals pass through bare",
			call: domain.ToolCall{Name: "mutation-tool_deletePost", Arguments: json.RawMessage(`{"id": "p1", "reason": null}`)},
			want: `mutation { deletePost(id: "p1", reason: null) }`,
		},
		{
			name:    "unknown prefix",
			call:    domain.ToolCall{Name: "subscription-tool_profiles"},
			wantErr: graphql.ErrUnknownOperationKind,
		},
		{
			name:    "name without separator",
			call:    domain.ToolCall{Name: "profiles"},
			wantErr: graphql.ErrUnknownOperationKind,
		},
		{
			name:    "unknown field",
			call:    domain.ToolCall{Name: "query-tool_nonexistent"},
			wantErr: graphql.ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compiler.Compile(tt.call)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompiler_Compile_MissingRootType(t *testing.T) {
	const sdl = `
type Query {
  ping: String
}
`
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: "query-only.graphql", Input: sdl})
	require.NoError(t, err)
	compiler := graphql.NewCompiler(doc, graphql.DefaultSelectionConfig())

	_, err = compiler.Compile(domain.ToolCall{Name: "mutation-tool_createPost"})
	assert.ErrorIs(t, err, graphql.ErrUnknownOperationKind)
}

func TestCompiler_Compile_StringEscapes(t *testing.T) {
	compiler := newTestCompiler(t)

	// GraphQL strings only allow the JSON escape set (\" \\ \/ \b \f \n
	// \r \t \uXXXX); control characters must not come out as Go escapes
	// like \a or \x07. DEL (U+007F) is a legal raw source character.
	got, err := compiler.Compile(domain.ToolCall{
		Name:      "mutation-tool_deletePost",
		Arguments: json.RawMessage(`{"id": "p1", "reason": "bell \"quoted\"\nnext line del"}`),
	})
	require.NoError(t, err)

	assert.Contains(t, got, ``)
	assert.Contains(t, got, `\"quoted\"`)
	assert.Contains(t, got, `\n`)
	assert.NotContains(t, got, `\a`)
	assert.NotContains(t, got, `\x`)

	_, err = parser.ParseQuery(&ast.Source{Name: "compiled.graphql", Input: got})
	assert.NoError(t, err)
}

func TestCompiler_Compile_InvalidArguments(t *testing.T) {
	compiler := newTestCompiler(t)

	_, err := compiler.Compile(domain.ToolCall{
		Name:      "query-tool_profile",
		Arguments: json.RawMessage(`["not", "an", "object"]`),
	})
	assert.Error(t, err)
}
