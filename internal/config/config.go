// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/fit-scorer/internal/ranking"
	"gopkg.in/yaml.v3"
)

// DefaultPort is used by serve when neither the config nor PORT sets one.
const DefaultPort = 8080

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Scoring
	TablesDir string                 `json:"tables_dir,omitempty" yaml:"tables_dir,omitempty"` // Directory with table overrides
	Weights   ranking.ScoringWeights `json:"weights,omitempty" yaml:"weights,omitempty"`       // Composite weights; zero uses defaults
	Workers   int                    `json:"workers,omitempty" yaml:"workers,omitempty" validate:"min=0,max=64"`

	// Server
	Port        int    `json:"port,omitempty" yaml:"port,omitempty" validate:"min=0,max=65535"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Behavior
	LogJSON        bool `json:"log_json,omitempty" yaml:"log_json,omitempty"`               // JSON log output
	Debug          bool `json:"debug,omitempty" yaml:"debug,omitempty"`                     // Debug level logging
	ValidateOutput bool `json:"validate_output,omitempty" yaml:"validate_output,omitempty"` // Check assessments against the JSON schema
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the extension
// is .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if !c.Weights.IsZero() {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.TablesDir != "" {
		info, err := os.Stat(c.TablesDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: tables directory not found: %s", c.TablesDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: tables_dir is not a directory: %s", c.TablesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TablesDir == "" {
		result.TablesDir = defaults.TablesDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Weights.IsZero() {
		result.Weights = defaults.Weights
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills DatabaseURL and Port from DATABASE_URL and PORT when unset.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
}
