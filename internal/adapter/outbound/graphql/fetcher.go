package graphql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"gqlizer/internal/domain"
	"gqlizer/internal/usecase"
)

// SchemaFetcher implements usecase.SchemaFetcher for GraphQL SDL sources.
type SchemaFetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSchemaFetcher creates a new GraphQL SchemaFetcher.
func NewSchemaFetcher(client *http.Client, logger *slog.Logger) *SchemaFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &SchemaFetcher{
		httpClient: client,
		logger:     logger.With("component", "graphql_fetcher"),
	}
}

// Fetch loads a GraphQL SDL document from a URL or local file path.
func (f *SchemaFetcher) Fetch(ctx context.Context, src string) (domain.APISchema, error) {
	return f.FetchWithConfig(ctx, usecase.SchemaSourceConfig{URL: src})
}

// FetchWithConfig loads a GraphQL SDL document with per-source settings
// (custom headers, explicit invocation endpoint).
func (f *SchemaFetcher) FetchWithConfig(ctx context.Context, config usecase.SchemaSourceConfig) (domain.APISchema, error) {
	log := f.logger.With(slog.String("source", config.URL))
	log.Info("Fetching GraphQL schema")

	rawData, err := f.load(ctx, config, log)
	if err != nil {
		return domain.APISchema{}, err
	}

	doc, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: config.URL, Input: string(rawData)})
	if gqlErr != nil {
		log.Error("Failed to parse GraphQL SDL", slog.Any("error", gqlErr))
		return domain.APISchema{}, fmt.Errorf("failed to parse GraphQL schema from %s: %w", config.URL, gqlErr)
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		if u, parseErr := url.ParseRequestURI(config.URL); parseErr == nil && (u.Scheme == "http" || u.Scheme == "https") {
			endpoint = config.URL
		}
	}

	log.Info("Successfully fetched and parsed GraphQL schema")
	return domain.APISchema{
		Source:     config.URL,
		Type:       domain.SchemaTypeGraphQL,
		Endpoint:   endpoint,
		Headers:    config.Headers,
		RawData:    rawData,
		ParsedData: doc,
	}, nil
}

// load reads the SDL text from an http(s) URL or a local file.
func (f *SchemaFetcher) load(ctx context.Context, config usecase.SchemaSourceConfig, log *slog.Logger) ([]byte, error) {
	u, parseErr := url.ParseRequestURI(config.URL)
	if parseErr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		log.Debug("Fetching SDL from URL")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request for %s: %w", config.URL, err)
		}
		for key, value := range config.Headers {
			req.Header.Set(key, value)
		}
		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch schema from URL %s: %w", config.URL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Warn("Received non-OK status from schema URL", slog.String("status", resp.Status))
			return nil, fmt.Errorf("failed to fetch schema from URL %s: status %s", config.URL, resp.Status)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body from %s: %w", config.URL, err)
		}
		return body, nil
	}

	log.Debug("Assuming local file path")
	data, err := os.ReadFile(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema from file %s: %w", config.URL, err)
	}
	return data, nil
}
