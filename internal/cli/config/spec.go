package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session store backends accepted in session.backend.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// CLIConfig is the configuration for libros-cli.
type CLIConfig struct {
	Server  string        `koanf:"server" yaml:"server"`
	Output  string        `koanf:"output" yaml:"output"` // table, json, yaml
	Session SessionConfig `koanf:"session" yaml:"session"`
	Request RequestConfig `koanf:"request" yaml:"request"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
}

// SessionConfig selects where the session token lives.
type SessionConfig struct {
	Backend string `koanf:"backend" yaml:"backend"`
	// Path is the token file (file backend) or database directory (badger backend).
	Path string `koanf:"path" yaml:"path"`
}

// RequestConfig tunes outgoing catalog requests.
type RequestConfig struct {
	// Timeout bounds each command's requests; 0 disables it.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`
	// Rate is the client-side limit in requests per second; 0 disables it.
	Rate  float64 `koanf:"rate" yaml:"rate"`
	Burst int     `koanf:"burst" yaml:"burst"`
	// CAFile is a PEM bundle trusted in addition to the system roots.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: "http://localhost:8000",
		Output: "table",
		Session: SessionConfig{
			Backend: BackendFile,
			Path:    DefaultTokenPath(),
		},
		Request: RequestConfig{
			Timeout: 30 * time.Second,
			Burst:   1,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultTokenPath returns the default token file path.
func DefaultTokenPath() string {
	return filepath.Join(baseDir(), "token")
}

// DefaultBadgerPath returns the default directory of the badger session backend.
func DefaultBadgerPath() string {
	return filepath.Join(baseDir(), "session.db")
}

func baseDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".libros")
}

// Validate checks the configuration for values the CLI cannot use.
func (c *CLIConfig) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}

	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("output: unsupported format %q", c.Output)
	}

	switch c.Session.Backend {
	case BackendFile, BackendBadger:
		if c.Session.Path == "" {
			return fmt.Errorf("session.path is required for the %s backend", c.Session.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("session.backend: unknown backend %q", c.Session.Backend)
	}

	if c.Request.Timeout < 0 {
		return fmt.Errorf("request.timeout must not be negative")
	}
	if c.Request.Rate < 0 {
		return fmt.Errorf("request.rate must not be negative")
	}
	if c.Request.Rate > 0 && c.Request.Burst < 1 {
		return fmt.Errorf("request.burst must be at least 1 when request.rate is set")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}

	return nil
}
