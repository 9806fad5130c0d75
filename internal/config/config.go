// Package config loads the vault configuration file.
//
// All thresholds and backend choices are explicit configuration with
// named defaults; nothing ambient. A missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/promptvault/promptvault/internal/insights"
)

// Backend names for the LLM generator.
const (
	BackendAPI = "api" // Anthropic Messages API (needs ANTHROPIC_API_KEY)
	BackendCLI = "cli" // local Claude Code CLI
	BackendOff = "off" // rule-based classification only
)

// Config is the full vault configuration.
type Config struct {
	DBPath   string         `yaml:"db_path"`
	LLM      LLMConfig      `yaml:"llm"`
	Insights InsightsConfig `yaml:"insights"`
}

// LLMConfig selects and tunes the classification backend.
type LLMConfig struct {
	Backend        string `yaml:"backend"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-request classification timeout.
func (l LLMConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// InsightsConfig carries the correlation thresholds.
type InsightsConfig struct {
	MinRated       int     `yaml:"min_rated"`
	HighCutoff     int     `yaml:"high_cutoff"`
	LowCutoff      int     `yaml:"low_cutoff"`
	MinDifference  float64 `yaml:"min_difference"`
	TopPatterns    int     `yaml:"top_patterns"`
	MaxSuggestions int     `yaml:"max_suggestions"`
}

// EngineConfig maps the insights section onto engine thresholds.
// Zero-valued fields fall back to the engine defaults.
func (i InsightsConfig) EngineConfig() insights.Config {
	return insights.Config{
		MinRated:      i.MinRated,
		HighCutoff:    i.HighCutoff,
		LowCutoff:     i.LowCutoff,
		MinDifference: i.MinDifference,
		TopPatterns:   i.TopPatterns,
	}
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Backend:        BackendAPI,
			TimeoutSeconds: 30,
		},
		Insights: InsightsConfig{
			MinRated:       insights.DefaultMinRated,
			HighCutoff:     insights.DefaultHighCutoff,
			LowCutoff:      insights.DefaultLowCutoff,
			MinDifference:  insights.DefaultMinDifference,
			TopPatterns:    insights.DefaultTopPatterns,
			MaxSuggestions: insights.DefaultMaxSuggestions,
		},
	}
}

// Dir returns the vault directory (~/.promptvault).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".promptvault"), nil
}

// Load reads the configuration at path. A missing file is not an
// error: defaults are returned. Set fields override defaults
// field-by-field.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault reads ~/.promptvault/config.yaml, and resolves the
// default database path when the file does not set one.
func LoadDefault() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "prompts.db")
	}
	return cfg, nil
}
