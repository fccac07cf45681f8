package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// SchemaSource describes one GraphQL schema to expose as tools.
type SchemaSource struct {
	// URL is the SDL location: a local file path or an http(s) URL.
	URL string `yaml:"url"`
	// Endpoint is the GraphQL HTTP endpoint that executes operations.
	// Defaults to URL when URL is itself an http(s) URL.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Headers are sent on schema fetch and on every invocation.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// SelectionSettings tunes the generated selection clauses. Both knobs
// exist because hardcoded exclusion lists only work for one schema; see
// the selection builder for the semantics.
type SelectionSettings struct {
	ConnectionSuffix string   `yaml:"connection_suffix,omitempty"`
	ExcludeFields    []string `yaml:"exclude_fields,omitempty"`
}

// FileConfig is the structure loaded from the YAML configuration file.
type FileConfig struct {
	SchemaSources []interface{}      `yaml:"schema_sources"`
	Selection     *SelectionSettings `yaml:"selection,omitempty"`
}

// Config holds the final application configuration, merged from file and
// environment variables. Environment variables use the prefix "GQLIZER_"
// and override file settings.
type Config struct {
	// Config file path (loaded first from env).
	ConfigFilePath string `envconfig:"CONFIG_FILE" default:"configs/gqlizer.yaml"`

	// File-loaded fields (merged).
	SchemaSources []SchemaSource
	Selection     *SelectionSettings

	// Environment-overridable fields.
	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminListenAddr          string        `envconfig:"ADMIN_LISTEN_ADDR" default:":8081"`
	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
}

// ParsedLogLevel returns the slog.Level for the configured LogLevel.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load reads environment variables (to find the config file path), then
// the YAML file, then environment variables again so env settings win.
func Load() (*Config, error) {
	var initialCfg Config
	if err := envconfig.Process("gqlizer", &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process initial environment variables: %w", err)
	}

	fileCfg := FileConfig{}
	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
			}
			slog.Info("Config file not found, using defaults/env vars only.", "path", initialCfg.ConfigFilePath)
		} else {
			if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
			}
			slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)
		}
	}

	finalCfg := initialCfg
	finalCfg.Selection = fileCfg.Selection

	// Schema sources accept both a bare URL string and an object form.
	finalCfg.SchemaSources = make([]SchemaSource, 0, len(fileCfg.SchemaSources))
	for _, source := range fileCfg.SchemaSources {
		switch v := source.(type) {
		case string:
			finalCfg.SchemaSources = append(finalCfg.SchemaSources, SchemaSource{URL: v})
		case map[string]interface{}:
			ss := SchemaSource{}
			if url, ok := v["url"].(string); ok {
				ss.URL = url
			}
			if endpoint, ok := v["endpoint"].(string); ok {
				ss.Endpoint = endpoint
			}
			if headers, ok := v["headers"].(map[string]interface{}); ok {
				ss.Headers = make(map[string]string)
				for k, val := range headers {
					if strVal, ok := val.(string); ok {
						ss.Headers[k] = strVal
					}
				}
			}
			if ss.URL != "" {
				finalCfg.SchemaSources = append(finalCfg.SchemaSources, ss)
			}
		default:
			slog.Warn("Ignoring invalid schema source format", "source", source)
		}
	}

	// Process environment variables again so they override file settings.
	if err := envconfig.Process("gqlizer", &finalCfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}

	return &finalCfg, nil
}
