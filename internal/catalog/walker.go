package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WalkConfigDirectory loads all YAML pattern definitions.
// It first attempts the embedded filesystem, falling back to configDir on the OS filesystem.
func WalkConfigDirectory(embedded fs.FS, configDir string) ([]*PatternConfig, error) {
	if embedded != nil {
		configs, err := WalkFS(embedded)
		if err == nil && len(configs) > 0 {
			slog.Debug("loaded patterns from embedded filesystem", "count", len(configs))
			return configs, nil
		}
		if err != nil {
			slog.Warn("embedded pattern catalogue unusable, falling back to filesystem", "error", err)
		}
	}

	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		slog.Warn("config directory does not exist", "dir", configDir)
		return []*PatternConfig{}, nil
	}
	return WalkFS(os.DirFS(configDir))
}

// WalkFS parses every .yaml/.yml file below the root of fsys.
func WalkFS(fsys fs.FS) ([]*PatternConfig, error) {
	var configs []*PatternConfig

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			slog.Error("failed to read pattern config", "path", path, "error", err)
			return err
		}

		config, err := parsePatternConfig(data, path)
		if err != nil {
			slog.Error("failed to parse pattern config", "path", path, "error", err)
			return err
		}

		configs = append(configs, config)
		slog.Debug("loaded pattern config", "pattern", config.ID, "category", config.Category, "path", path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk pattern configs: %w", err)
	}

	return configs, nil
}

// parsePatternConfig parses and validates a YAML pattern definition
func parsePatternConfig(data []byte, path string) (*PatternConfig, error) {
	var config PatternConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Category = deriveCategoryFromPath(path)

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid pattern config %s: %w", path, err)
	}

	if err := validateParameters(config.Parameters); err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}

	return &config, nil
}

// validateParameters validates parameter definitions
func validateParameters(params []ParameterConfig) error {
	names := make(map[string]bool)
	for i, param := range params {
		if err := validate.Struct(&param); err != nil {
			return fmt.Errorf("parameter[%d]: %w", i, err)
		}
		if names[param.Name] {
			return fmt.Errorf("duplicate parameter name '%s'", param.Name)
		}
		names[param.Name] = true
	}
	return nil
}

// deriveCategoryFromPath extracts the category from the file path
// Example: "config/patterns/collusion/medical_mill.yaml" -> "collusion"
func deriveCategoryFromPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")

	for i, part := range parts {
		if part == "patterns" && i+2 < len(parts) {
			return parts[i+1]
		}
	}

	if len(parts) >= 2 && parts[0] != "config" {
		return parts[0]
	}

	return "general"
}
