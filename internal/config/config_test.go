package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("default port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Forecast.APIKeyEnv != "OPENWEATHER_API_KEY" {
		t.Errorf("default api_key_env = %q, want OPENWEATHER_API_KEY", cfg.Forecast.APIKeyEnv)
	}
	if len(cfg.Locations) != 5 {
		t.Errorf("default locations = %d, want 5", len(cfg.Locations))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"duplicate location name", func(c *Config) {
			c.Locations = []Location{
				{Name: "Farley", Lat: 42, Lon: -72},
				{Name: "Farley", Lat: 43, Lon: -71},
			}
		}},
		{"unnamed location", func(c *Config) {
			c.Locations = []Location{{Lat: 42, Lon: -72}}
		}},
		{"latitude out of range", func(c *Config) {
			c.Locations = []Location{{Name: "Nowhere", Lat: 95, Lon: 0}}
		}},
		{"longitude out of range", func(c *Config) {
			c.Locations = []Location{{Name: "Nowhere", Lat: 0, Lon: 200}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[server]
port = 8080

[logging]
level = "debug"

[[locations]]
name = "Farley"
lat = 42.5949
lon = -72.3678
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	// Unset sections still pick up defaults.
	if cfg.Forecast.BaseURL == "" {
		t.Error("forecast base_url default not applied")
	}
	if len(cfg.Locations) != 1 {
		t.Errorf("locations = %d, want 1 (file overrides defaults)", len(cfg.Locations))
	}
}

func TestLoadWithFallbackMissingFile(t *testing.T) {
	// No config anywhere: defaults apply instead of failing.
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback failed: %v", err)
	}
	if len(cfg.Locations) == 0 {
		t.Error("fallback config has no locations")
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := Default()
	t.Setenv("OPENWEATHER_API_KEY", "from-env")
	cfg.ResolveAPIKey()
	if cfg.Forecast.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.Forecast.APIKey)
	}
}
