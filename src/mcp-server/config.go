// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// MCP_VERIFIER_CONFIG_FILE environment variable, with defaults applied for
// any missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for certificate chain operations
	Defaults struct {
		// WarnDays: Number of days before expiry to show warnings
		WarnDays int `json:"warnDays" yaml:"warnDays"`
		// TrustBundle: Path to the default trust bundle (PEM file or directory).
		// Tool calls may override it per request.
		TrustBundle string `json:"trustBundle,omitempty" yaml:"trustBundle,omitempty"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file
// extension. It uses case-insensitive matching for cross-platform
// compatibility; anything that is not .yaml or .yml is treated as JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig loads MCP server configuration from a JSON or YAML file or
// applies defaults.
//
// Configuration Priority:
//  1. Default values are set
//  2. MCP_VERIFIER_CONFIG_FILE environment variable is checked if configPath
//     is empty
//  3. Config file values override defaults (if file exists and is valid)
//  4. The VERIFIER_TRUST_BUNDLE environment variable overrides the trust
//     bundle path from the config file
func loadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Defaults.WarnDays = 30

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv("MCP_VERIFIER_CONFIG_FILE")
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Validate and set defaults for invalid values
		if config.Defaults.WarnDays <= 0 {
			config.Defaults.WarnDays = 30
		}
	}

	// Override trust bundle from environment if set
	if bundle := os.Getenv("VERIFIER_TRUST_BUNDLE"); bundle != "" {
		config.Defaults.TrustBundle = bundle
	}

	return config, nil
}
