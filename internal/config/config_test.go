package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NEO4J_URI", "NEO4J_USERNAME", "NEO4J_PASSWORD", "NEO4J_DATABASE", "NEO4J_READ_ONLY",
		"FRAUD_CENTRALITY_SAMPLE_SIZE", "FRAUD_CENTRALITY_SEED", "FRAUD_TRANSPORT", "FRAUD_HTTP_ADDR",
		"FRAUD_TELEMETRY", "FRAUD_TELEMETRY_ENDPOINT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "bolt://localhost:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.Username)
	assert.Equal(t, "neo4j", cfg.Database)
	assert.False(t, cfg.ReadOnly)
	assert.Equal(t, 200, cfg.CentralitySampleSize)
	assert.Equal(t, uint64(42), cfg.CentralitySeed)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEO4J_URI", "neo4j://graph:7687")
	t.Setenv("NEO4J_PASSWORD", "s3cret")
	t.Setenv("NEO4J_READ_ONLY", "true")
	t.Setenv("FRAUD_CENTRALITY_SAMPLE_SIZE", "50")
	t.Setenv("FRAUD_CENTRALITY_SEED", "7")
	t.Setenv("FRAUD_TRANSPORT", "HTTP")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph:7687", cfg.URI)
	assert.Equal(t, "s3cret", cfg.Password)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, 50, cfg.CentralitySampleSize)
	assert.Equal(t, uint64(7), cfg.CentralitySeed)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad bool", "NEO4J_READ_ONLY", "maybe"},
		{"bad int", "FRAUD_CENTRALITY_SAMPLE_SIZE", "lots"},
		{"zero sample size", "FRAUD_CENTRALITY_SAMPLE_SIZE", "0"},
		{"negative seed", "FRAUD_CENTRALITY_SEED", "-1"},
		{"unknown transport", "FRAUD_TRANSPORT", "grpc"},
		{"unknown log level", "LOG_LEVEL", "trace"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"telemetry without endpoint", "FRAUD_TELEMETRY", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := FromEnv()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLogValue_HidesPassword(t *testing.T) {
	cfg := &Config{URI: "bolt://localhost:7687", Username: "neo4j", Password: "s3cret", Database: "neo4j"}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("config loaded", "config", cfg)

	assert.Contains(t, buf.String(), "config.uri=bolt://localhost:7687")
	assert.NotContains(t, buf.String(), "s3cret")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
