package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.HTTP != "" {
		t.Errorf("HTTP = %q, want empty", cfg.HTTP)
	}
	if cfg.MaxRequestBodyBytes != 1<<20 {
		t.Errorf("MaxRequestBodyBytes = %d, want %d", cfg.MaxRequestBodyBytes, 1<<20)
	}
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"default", func(*ServerConfig) {}, false},
		{"debug", func(c *ServerConfig) { c.LogLevel = "debug" }, false},
		{"unlimited body", func(c *ServerConfig) { c.MaxRequestBodyBytes = 0 }, false},
		{"bad level", func(c *ServerConfig) { c.LogLevel = "verbose" }, true},
		{"empty level", func(c *ServerConfig) { c.LogLevel = "" }, true},
		{"negative body", func(c *ServerConfig) { c.MaxRequestBodyBytes = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bookcatalog.json")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("config file not created: %v", err)
		}
		again, err := Load(path)
		if err != nil {
			t.Fatalf("Load again: %v", err)
		}
		if diff := cmp.Diff(cfg, again); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("hujson", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bookcatalog.json")
		content := `{
	// Listen on all interfaces.
	"http": "0.0.0.0:8080",
	"log_level": "debug",
	"seed": "books.yaml", // trailing comma below
}
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		want := &ServerConfig{
			HTTP:                "0.0.0.0:8080",
			LogLevel:            "debug",
			Seed:                "books.yaml",
			MaxRequestBodyBytes: 1 << 20,
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"syntax", `{"http": `},
			{"unknown field", `{"port": 3000}`},
			{"invalid level", `{"log_level": "loud"}`},
			{"wrong type", `{"max_request_body_bytes": "big"}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "bookcatalog.json")
				if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
				if _, err := Load(path); err == nil {
					t.Error("Load() succeeded, want error")
				}
			})
		}
	})
}
