package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/mcp-syllabus-reader/internal/syllabus"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultServerName  = "mcp-syllabus-reader"

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "MCP_SYLLABUS"
)

// ErrVersionRequested is returned by LoadFromFlags when --version is on the command line
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the syllabus MCP server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	SyllabusDirectory string
	MaxFileSize       int64 // Maximum document size in bytes

	// Date anchoring defaults for requests that do not name their own
	Timezone  string
	TermStart string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio,
		Host:              DefaultHost,
		Port:              DefaultPort,
		SyllabusDirectory: currentDir,
		MaxFileSize:       DefaultMaxFileSize,
		Timezone:          syllabus.DefaultTimezone,
		Version:           "1.0.0",
		ServerName:        DefaultServerName,
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and the MCP_SYLLABUS_* environment
// and returns a validated configuration. Flags win over environment values.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	if versionRequested(os.Args[1:]) {
		return nil, ErrVersionRequested
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.SyllabusDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.SyllabusDirectory); err == nil {
			cfg.SyllabusDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.SyllabusDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("timezone", cfg.Timezone)
	viper.SetDefault("termstart", cfg.TermStart)
}

var flagKeys = []string{"mode", "host", "port", "dir", "loglevel", "maxfilesize", "timezone", "termstart"}

func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.SyllabusDirectory, "Directory containing syllabus documents")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum document size in bytes")
	pflag.String("timezone", cfg.Timezone, "Default IANA timezone for extracted events")
	pflag.String("termstart", cfg.TermStart, "Default term start date (YYYY-MM-DD) used to anchor dates without a year")
}

func bindFlagsToViper() {
	for _, key := range flagKeys {
		_ = viper.BindPFlag(key, pflag.Lookup(key))
	}
}

func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Syllabus Reader - A Model Context Protocol server that turns course syllabi into calendar events\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/syllabi --termstart=2025-08-25\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --timezone=America/New_York              # events in Eastern time\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081  # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		for _, key := range flagKeys {
			fmt.Fprintf(os.Stderr, "  %s_%s\n", envPrefix, strings.ToUpper(key))
		}
	}
}

func versionRequested(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.SyllabusDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Timezone = viper.GetString("timezone")
	cfg.TermStart = viper.GetString("termstart")
}

// Validate checks if the configuration is valid. A missing syllabus directory
// is created.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.SyllabusDirectory == "" {
		return errors.New("syllabus directory cannot be empty")
	}

	if _, err := os.Stat(c.SyllabusDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.SyllabusDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create syllabus directory %s: %w", c.SyllabusDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access syllabus directory %s: %w", c.SyllabusDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	loc, err := c.Location()
	if err != nil {
		return err
	}
	if c.TermStart != "" {
		if _, err := syllabus.ParseTermStart(c.TermStart, loc); err != nil {
			return err
		}
	}

	return nil
}

// Location loads the configured timezone. Empty means syllabus.DefaultTimezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = syllabus.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", syllabus.ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, SyllabusDirectory: %s, LogLevel: %s, "+
		"MaxFileSize: %d, Timezone: %s, TermStart: %s}",
		c.Mode, c.Host, c.Port, c.SyllabusDirectory, c.LogLevel, c.MaxFileSize, c.Timezone, c.TermStart)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
