// Package config loads audit settings from an optional YAML file and applies
// defaults. Every field is tunable but the zero config is a working config.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is resolved relative to the audited project root.
const DefaultConfigPath = ".appaudit.yaml"

// Config contains the fully merged settings for an audit run.
type Config struct {
	// MaxIterations bounds the remediation loop. Default 5.
	MaxIterations int `yaml:"max_iterations"`

	// ReportDir receives the per-iteration report files. Default ".".
	ReportDir string `yaml:"report_dir"`

	// HistoryPath is the SQLite file recording past runs. Empty disables
	// history persistence.
	HistoryPath string `yaml:"history_path"`

	// HistoryRetentionDays prunes iteration rows older than this on open.
	// Zero disables pruning. Default 90.
	HistoryRetentionDays int `yaml:"history_retention_days"`

	// ExcludeDirs are directory names excluded from every scan pattern.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// RequiredDeps overrides the dependency manifest requirements.
	RequiredDeps []string `yaml:"required_deps"`

	// BrandPalette and ForbiddenColors override the style compliance lists.
	BrandPalette    map[string]string `yaml:"brand_palette"`
	ForbiddenColors []string          `yaml:"forbidden_colors"`
}

// Default returns the baseline configuration used when no file is present.
func Default() Config {
	return Config{
		MaxIterations:        5,
		ReportDir:            ".",
		HistoryPath:          ".appaudit/history.db",
		HistoryRetentionDays: 90,
		ExcludeDirs:          []string{"node_modules", ".git", "dist", "build", "coverage"},
	}
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. A present-but-invalid file is an error: silently
// ignoring a broken config hides misconfiguration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the engine cannot honor.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1 (got %d)", c.MaxIterations)
	}
	if c.ReportDir == "" {
		return errors.New("report_dir cannot be empty")
	}
	if c.HistoryRetentionDays < 0 {
		return fmt.Errorf("history_retention_days cannot be negative (got %d)", c.HistoryRetentionDays)
	}
	return nil
}
