// Package config loads generator configuration from YAML files and the
// environment. Precedence is defaults, then file values, then environment
// variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when no path is given.
const DefaultPath = "projectgen.yaml"

// Config holds all generator settings.
type Config struct {
	// Provider is the LLM provider name ("openai", "anthropic", "gemini").
	Provider string `yaml:"provider" env:"PROJECTGEN_PROVIDER"`
	// Model is the planner model identifier.
	Model string `yaml:"model" env:"PROJECTGEN_MODEL"`
	// APIKey overrides the provider's conventional key variable. Empty
	// means the provider SDK reads its own environment.
	APIKey string `yaml:"api_key" env:"PROJECTGEN_API_KEY"`
	// MaxSteps is the planner-call budget per generation session.
	MaxSteps int `yaml:"max_steps" env:"PROJECTGEN_MAX_STEPS"`
	// OutputDir is the workspace root projects are generated into.
	OutputDir string `yaml:"output_dir" env:"PROJECTGEN_OUTPUT_DIR"`
	// CommandTimeout bounds each shell command. Zero disables the bound.
	CommandTimeout time.Duration `yaml:"command_timeout" env:"PROJECTGEN_COMMAND_TIMEOUT"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" env:"PROJECTGEN_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:       "openai",
		Model:          "gpt-4o",
		MaxSteps:       25,
		OutputDir:      ".",
		CommandTimeout: 2 * time.Minute,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. File values override defaults and
// environment variables override both. A missing config file is not an
// error; the file layer is simply skipped.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the generator cannot run with.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be positive, got %d", c.MaxSteps)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative, got %s", c.CommandTimeout)
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
