// Package config provides configuration management for the cforge CLI tool.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Repository visibility values accepted by the hosting tool.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Optional scaffold features a project may include.
const (
	FeatureGitignore = "gitignore"
	FeatureReadme    = "readme"
	FeatureTests     = "tests"
)

// KnownFeatures lists every feature name the scaffolder understands,
// in the order they are presented to the user.
var KnownFeatures = []string{FeatureGitignore, FeatureReadme, FeatureTests}

// GlobalConfig represents the main configuration structure stored at
// ~/.cforge/config.json. It holds the defaults used to pre-answer
// scaffolding prompts and non-interactive runs.
type GlobalConfig struct {
	Version  string            `json:"version"`            // Config schema version
	Defaults *ScaffoldDefaults `json:"defaults,omitempty"` // Default answers for the new-project flow
}

// ScaffoldDefaults holds the default answers applied when a prompt is
// skipped (non-interactive runs) or accepted with an empty reply.
type ScaffoldDefaults struct {
	Features   []string `json:"features"`             // Pre-selected optional features
	InitGit    bool     `json:"initGit"`              // Whether to initialize a git repository
	Visibility string   `json:"visibility,omitempty"` // Default remote repository visibility
}

// NewDefaultScaffoldDefaults returns the built-in scaffolding defaults.
func NewDefaultScaffoldDefaults() ScaffoldDefaults {
	return ScaffoldDefaults{
		Features:   []string{FeatureGitignore, FeatureReadme},
		InitGit:    true,
		Visibility: VisibilityPrivate,
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *GlobalConfig {
	defaults := NewDefaultScaffoldDefaults()
	return &GlobalConfig{
		Version:  "1.0.0",
		Defaults: &defaults,
	}
}

// IsKnownFeature reports whether name is one of the supported features.
func IsKnownFeature(name string) bool {
	for _, known := range KnownFeatures {
		if name == known {
			return true
		}
	}
	return false
}

// GetConfigDir returns the cforge config directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cforge"), nil
}

// GetConfigPath returns the full path to config.json
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	return os.MkdirAll(configDir, 0o755)
}

// LoadConfig loads the global configuration from ~/.cforge/config.json.
// The configuration is validated after loading to ensure it's properly formatted.
func LoadConfig() (*GlobalConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found at %s", configPath)
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON
	var config GlobalConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the stored configuration, falling back to the
// built-in defaults when no config file exists yet. A malformed config
// file is still an error.
func LoadOrDefault() (*GlobalConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadConfig()
}

// SaveConfig saves the configuration to ~/.cforge/config.json.
// Creates the ~/.cforge directory if it doesn't exist and writes the
// configuration as formatted JSON with proper indentation.
func SaveConfig(config *GlobalConfig) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Marshall with indentation for readability
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateConfig performs basic validation on the configuration to ensure
// required fields are present and values are within acceptable ranges.
// Returns an error if any validation rules fail.
func ValidateConfig(config *GlobalConfig) error {
	if config.Version == "" {
		return fmt.Errorf("version field is required")
	}

	if config.Defaults == nil {
		return nil
	}

	return validateDefaults(config.Defaults)
}

// validateDefaults validates the stored scaffolding defaults
func validateDefaults(defaults *ScaffoldDefaults) error {
	seen := make(map[string]bool)
	for _, feature := range defaults.Features {
		if !IsKnownFeature(feature) {
			return fmt.Errorf("unknown feature '%s' (supported: %v)", feature, KnownFeatures)
		}
		if seen[feature] {
			return fmt.Errorf("feature '%s': duplicate feature name", feature)
		}
		seen[feature] = true
	}

	switch defaults.Visibility {
	case "", VisibilityPublic, VisibilityPrivate:
	default:
		return fmt.Errorf("visibility must be '%s' or '%s', got '%s'",
			VisibilityPublic, VisibilityPrivate, defaults.Visibility)
	}

	return nil
}
