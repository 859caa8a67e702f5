// Package config manages the optional server configuration file.
//
// The file is HuJSON: plain JSON plus comments and trailing commas. Values set
// on the command line or in the environment take precedence over the file;
// that layering is done by the caller.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// ServerConfig stores server-wide settings.
type ServerConfig struct {
	// HTTP is the listen address. Empty means ":" followed by $PORT, or ":3000".
	HTTP string `json:"http"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level"`

	// Seed is an optional YAML file replacing the built-in seed books.
	Seed string `json:"seed"`

	// GeoDB is an optional MaxMind MMDB file used to tag request logs with a
	// country code.
	GeoDB string `json:"geo_db"`

	// MaxRequestBodyBytes limits the size of any single HTTP request body.
	// 0 means unlimited.
	MaxRequestBodyBytes int64 `json:"max_request_body_bytes"`
}

// DefaultPort is used when neither the configuration nor $PORT name one.
const DefaultPort = "3000"

// Default returns the default configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		LogLevel:            "info",
		MaxRequestBodyBytes: 1024 * 1024, // 1 MiB
	}
}

// Validate checks that the configuration is valid.
func (c *ServerConfig) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %q", c.LogLevel)
	}
	if c.MaxRequestBodyBytes < 0 {
		return errors.New("max_request_body_bytes must be non-negative")
	}
	return nil
}

// Load reads the configuration from path.
//
// A missing file is created with defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*ServerConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --config flag
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path atomically.
func (c *ServerConfig) Save(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func parse(data []byte, cfg *ServerConfig) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	d := json.NewDecoder(bytes.NewReader(standardized))
	d.DisallowUnknownFields()
	if err := d.Decode(cfg); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
