// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the server, analysis and logging settings.
type Config struct {
	URI      string `validate:"required,uri"`
	Username string `validate:"required"`
	Password string
	Database string `validate:"required"`
	ReadOnly bool

	CentralitySampleSize int    `validate:"gte=1"`
	CentralitySeed       uint64 `validate:"gte=1"`

	Transport string `validate:"oneof=stdio http"`
	HTTPAddr  string `validate:"required_if=Transport http"`

	Telemetry         bool
	TelemetryEndpoint string `validate:"required_if=Telemetry true"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads .env (if present) and the process environment, applies defaults and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		URI:               getEnvString("NEO4J_URI", "bolt://localhost:7687"),
		Username:          getEnvString("NEO4J_USERNAME", "neo4j"),
		Password:          getEnvString("NEO4J_PASSWORD", ""),
		Database:          getEnvString("NEO4J_DATABASE", "neo4j"),
		Transport:         strings.ToLower(getEnvString("FRAUD_TRANSPORT", TransportStdio)),
		HTTPAddr:          getEnvString("FRAUD_HTTP_ADDR", ":8080"),
		TelemetryEndpoint: getEnvString("FRAUD_TELEMETRY_ENDPOINT", ""),
		LogLevel:          strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnvString("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.ReadOnly, err = getEnvBool("NEO4J_READ_ONLY", false); err != nil {
		return nil, err
	}
	if cfg.Telemetry, err = getEnvBool("FRAUD_TELEMETRY", false); err != nil {
		return nil, err
	}
	if cfg.CentralitySampleSize, err = getEnvInt("FRAUD_CENTRALITY_SAMPLE_SIZE", 200); err != nil {
		return nil, err
	}
	seed, err := getEnvInt("FRAUD_CENTRALITY_SEED", 42)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, fmt.Errorf("FRAUD_CENTRALITY_SEED must not be negative, got %d", seed)
	}
	cfg.CentralitySeed = uint64(seed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LogValue keeps the password out of logs.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("uri", c.URI),
		slog.String("username", c.Username),
		slog.String("database", c.Database),
		slog.Bool("read_only", c.ReadOnly),
		slog.String("transport", c.Transport),
		slog.Int("centrality_sample_size", c.CentralitySampleSize),
		slog.Bool("telemetry", c.Telemetry),
		slog.String("log_level", c.LogLevel),
	)
}

// NewLogger builds the process logger. Output goes to w, normally stderr, because stdout
// carries the stdio transport.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, value)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}
