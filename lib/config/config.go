// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads taskdeck's client configuration.
//
// Configuration comes from a single YAML file specified by the
// TASKDECK_CONFIG environment variable or the --config flag. When
// neither is set, built-in defaults apply — a client must work out of
// the box against a local server. The only expansion performed on values
// is ${VAR} substitution for path portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	// Server configures the remote task service.
	Server ServerConfig `yaml:"server"`

	// Session configures local session persistence.
	Session SessionConfig `yaml:"session"`
}

// ServerConfig configures the remote task service endpoint.
type ServerConfig struct {
	// BaseURL is the service root, e.g. "https://tasks.example.com".
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request (Go duration string). Applied to the
	// shared http.Client; there is no per-call retry or backoff.
	Timeout string `yaml:"timeout"`
}

// SessionConfig configures where the session token is persisted.
type SessionConfig struct {
	// File is the session file path. Empty means the well-known
	// location (TASKDECK_SESSION_FILE, or the XDG config directory).
	File string `yaml:"file"`
}

// Default returns the built-in configuration: a local development server
// and the well-known session path.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:3000",
			Timeout: "30s",
		},
	}
}

// Load reads configuration from the file named by TASKDECK_CONFIG, or
// returns defaults when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv("TASKDECK_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific path, merging over the
// defaults, expanding ${VAR} references, and validating the result.
func LoadFile(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	config.expandVariables()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return config, nil
}

// RequestTimeout returns Server.Timeout parsed as a duration. Call
// Validate first; an unparseable value falls back to 30 seconds here.
func (c *Config) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Server.Timeout)
	if err != nil || timeout <= 0 {
		return 30 * time.Second
	}
	return timeout
}

// Validate checks the configuration for errors, reporting all of them
// at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.BaseURL == "" {
		errs = append(errs, fmt.Errorf("server.base_url is required"))
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("server.timeout: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// and URL values.
func (c *Config) expandVariables() {
	c.Server.BaseURL = expandVars(c.Server.BaseURL)
	c.Session.File = expandVars(c.Session.File)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}
