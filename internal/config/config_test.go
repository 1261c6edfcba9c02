package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Mode:              ModeStdio,
		Host:              DefaultHost,
		Port:              DefaultPort,
		SyllabusDirectory: t.TempDir(),
		MaxFileSize:       DefaultMaxFileSize,
		Timezone:          "America/Chicago",
		LogLevel:          "info",
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeStdio {
		t.Errorf("Expected default mode to be '%s', got '%s'", ModeStdio, cfg.Mode)
	}
	if cfg.Host != DefaultHost {
		t.Errorf("Expected default host to be '%s', got '%s'", DefaultHost, cfg.Host)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Expected default port to be %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level to be '%s', got '%s'", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("Expected default max file size to be %d, got %d", DefaultMaxFileSize, cfg.MaxFileSize)
	}
	if cfg.ServerName != "mcp-syllabus-reader" {
		t.Errorf("Expected default server name to be 'mcp-syllabus-reader', got '%s'", cfg.ServerName)
	}
	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Expected default timezone to be 'America/Chicago', got '%s'", cfg.Timezone)
	}
	if cfg.TermStart != "" {
		t.Errorf("Expected no default term start, got '%s'", cfg.TermStart)
	}

	currentDir, _ := os.Getwd()
	if cfg.SyllabusDirectory != currentDir {
		t.Errorf("Expected default syllabus directory to be '%s', got '%s'", currentDir, cfg.SyllabusDirectory)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError bool
		wantErr     error
	}{
		{name: "valid stdio config", modify: func(*Config) {}},
		{name: "valid server config", modify: func(c *Config) { c.Mode = ModeServer }},
		{name: "invalid mode", modify: func(c *Config) { c.Mode = "websocket" }, expectError: true},
		{name: "server port too low", modify: func(c *Config) { c.Mode = ModeServer; c.Port = 0 }, expectError: true},
		{name: "server port too high", modify: func(c *Config) { c.Mode = ModeServer; c.Port = 70000 }, expectError: true},
		{name: "port ignored in stdio mode", modify: func(c *Config) { c.Port = 0 }},
		{name: "empty directory", modify: func(c *Config) { c.SyllabusDirectory = "" }, expectError: true},
		{name: "zero max file size", modify: func(c *Config) { c.MaxFileSize = 0 }, expectError: true},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "verbose" }, expectError: true},
		{name: "empty timezone uses default", modify: func(c *Config) { c.Timezone = "" }},
		{
			name:        "unknown timezone",
			modify:      func(c *Config) { c.Timezone = "Mars/Olympus_Mons" },
			expectError: true,
			wantErr:     syllabus.ErrInvalidTimezone,
		},
		{name: "valid term start", modify: func(c *Config) { c.TermStart = "2025-08-25" }},
		{
			name:        "invalid term start",
			modify:      func(c *Config) { c.TermStart = "08/25/2025" },
			expectError: true,
			wantErr:     syllabus.ErrInvalidTermStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error wrapping %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigValidateDirectoryCreation(t *testing.T) {
	cfg := validConfig(t)
	cfg.SyllabusDirectory = filepath.Join(cfg.SyllabusDirectory, "fall", "2025")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	info, err := os.Stat(cfg.SyllabusDirectory)
	if err != nil {
		t.Fatalf("Expected directory to be created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected created path to be a directory")
	}
}

func TestConfigLocation(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Berlin"}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("Location() = %s, want Europe/Berlin", loc)
	}

	cfg.Timezone = ""
	loc, err = cfg.Location()
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc.String() != syllabus.DefaultTimezone {
		t.Errorf("Location() = %s, want %s", loc, syllabus.DefaultTimezone)
	}
}

func TestConfigAddress(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 9090}
	if got := cfg.Address(); got != "localhost:9090" {
		t.Errorf("Address() = %s, want localhost:9090", got)
	}
}

func TestConfigIsDebug(t *testing.T) {
	for level, want := range map[string]bool{"debug": true, "info": false, "warn": false, "error": false} {
		cfg := &Config{LogLevel: level}
		if got := cfg.IsDebug(); got != want {
			t.Errorf("IsDebug() with %s = %v, want %v", level, got, want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:              ModeServer,
		Host:              "localhost",
		Port:              8080,
		SyllabusDirectory: "/home/user/syllabi",
		LogLevel:          "debug",
		MaxFileSize:       1024,
		Timezone:          "America/Denver",
		TermStart:         "2026-01-12",
	}

	result := cfg.String()
	for _, part := range []string{
		"Mode: server",
		"Host: localhost",
		"Port: 8080",
		"SyllabusDirectory: /home/user/syllabi",
		"LogLevel: debug",
		"MaxFileSize: 1024",
		"Timezone: America/Denver",
		"TermStart: 2026-01-12",
	} {
		if !strings.Contains(result, part) {
			t.Errorf("String() = %s, missing %q", result, part)
		}
	}
}

func TestConfigModes(t *testing.T) {
	server := &Config{Mode: ModeServer}
	if !server.IsServerMode() || server.IsStdioMode() {
		t.Error("Expected server mode")
	}

	stdio := &Config{Mode: ModeStdio}
	if stdio.IsServerMode() || !stdio.IsStdioMode() {
		t.Error("Expected stdio mode")
	}
}
