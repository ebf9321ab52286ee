// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadWithoutEnvReturnsDefaults(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, want the local default", cfg.Server.BaseURL)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://tasks.example.com
  timeout: 10s
session:
  file: /var/lib/taskdeck/session.json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.BaseURL != "https://tasks.example.com" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout())
	}
	if cfg.Session.File != "/var/lib/taskdeck/session.json" {
		t.Errorf("Session.File = %q", cfg.Session.File)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://tasks.example.com
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Timeout != "30s" {
		t.Errorf("Timeout = %q, want the 30s default", cfg.Server.Timeout)
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	t.Setenv("TASKDECK_TEST_HOME", "/home/ada")

	path := writeConfig(t, `
session:
  file: ${TASKDECK_TEST_HOME}/.taskdeck/session.json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Session.File != "/home/ada/.taskdeck/session.json" {
		t.Errorf("Session.File = %q, variable not expanded", cfg.Session.File)
	}
}

func TestExpandVarsDefaultValue(t *testing.T) {
	t.Setenv("TASKDECK_TEST_UNSET", "")
	got := expandVars("${TASKDECK_TEST_UNSET:-/fallback}/x")
	if got != "/fallback/x" {
		t.Errorf("expandVars = %q, want /fallback/x", got)
	}
}

func TestLoadFileRejectsBadTimeout(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: https://tasks.example.com
  timeout: banana
`)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile accepted an unparseable timeout")
	}
}

func TestLoadFileRejectsEmptyBaseURL(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: ""
`)

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile accepted an empty base_url")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile succeeded on a missing file")
	}
}

func TestValidateReportsAllErrors(t *testing.T) {
	cfg := &Config{Server: ServerConfig{BaseURL: "", Timeout: "nope"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted an invalid config")
	}
}
