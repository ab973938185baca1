package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Server    ServerConfig    `toml:"server"`    // HTTP server settings
	Logging   LoggingConfig   `toml:"logging"`   // Application logging settings
	Forecast  ForecastConfig  `toml:"forecast"`  // Forecast provider settings
	Dashboard DashboardConfig `toml:"dashboard"` // Chart rendering settings
	Locations []Location      `toml:"locations"` // Climbing areas to fetch forecasts for
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port             int    `toml:"port"`                  // HTTP port for the server
	Host             string `toml:"host"`                  // Host address to bind to (e.g., 127.0.0.1 for localhost only, 0.0.0.0 for all interfaces)
	ReadTimeoutSecs  int    `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request
	WriteTimeoutSecs int    `toml:"write_timeout_seconds"` // Maximum duration for writing the response
	IdleTimeoutSecs  int    `toml:"idle_timeout_seconds"`  // Maximum duration to wait for the next request when keep-alives are enabled
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// ForecastConfig contains forecast provider configuration
type ForecastConfig struct {
	BaseURL               string  `toml:"base_url"`                // Base URL for the forecast API (OpenWeatherMap 5 day / 3 hour endpoint)
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds"` // HTTP request timeout in seconds
	RateLimitRPS          float64 `toml:"rate_limit_rps"`          // Maximum provider requests per second (fractional values allowed)
	RateLimitBurst        int     `toml:"rate_limit_burst"`        // Maximum provider request burst size
	APIKeyEnv             string  `toml:"api_key_env"`             // Name of the environment variable holding the API credential

	// APIKey is resolved from the environment at load time, never from the
	// config file. An empty value surfaces as an error page on request, not
	// as a startup failure.
	APIKey string `toml:"-"`
}

// DashboardConfig contains chart rendering configuration
type DashboardConfig struct {
	WidthPx      int `toml:"width_px"`       // Rendered chart width in pixels
	BandHeightPx int `toml:"band_height_px"` // Height of each location band in pixels; total height scales with location count
}

// Location is one configured climbing area
type Location struct {
	Name string  `toml:"name"` // Unique display name
	Lat  float64 `toml:"lat"`  // Latitude in decimal degrees
	Lon  float64 `toml:"lon"`  // Longitude in decimal degrees
}

// defaultLocations are the areas the dashboard was built for, used when the
// config file does not list any.
func defaultLocations() []Location {
	return []Location{
		{Name: "Farley", Lat: 42.5949, Lon: -72.3678},
		{Name: "Rumney", Lat: 43.9426, Lon: -71.8224},
		{Name: "Merriam Woods", Lat: 43.9948, Lon: -71.6828},
		{Name: "The Gunks", Lat: 41.7459, Lon: -74.0890},
		{Name: "Hanging Mountain", Lat: 42.0618, Lon: -73.1150},
	}
}

// Default returns a configuration with all defaults applied, used when no
// config file exists in any of the search locations.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads the configuration from the specified file path
func Load(path string) (*Config, error) {
	var config Config

	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read the config file
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in
// order of preference. Unlike most services, a missing config file is not an
// error: the dashboard runs fine on defaults, so the built-in configuration
// is returned instead.
func LoadWithFallback(preferredPath string) (*Config, error) {
	// List of paths to check in order of preference
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // Location in configs/ folder
		"config.toml",         // Root directory
	}

	for _, path := range searchPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		config, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		return config, nil
	}

	return Default(), nil
}

// Validate validates the configuration and applies defaults for unset values
func (c *Config) Validate() error {
	c.applyDefaults()

	// Validate server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeoutSecs < 0 || c.Server.WriteTimeoutSecs < 0 || c.Server.IdleTimeoutSecs < 0 {
		return fmt.Errorf("server timeouts must be 0 or greater")
	}

	// Validate logging config
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid log level
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid log format
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	// Validate forecast config
	if c.Forecast.BaseURL == "" {
		return fmt.Errorf("forecast base_url cannot be empty")
	}
	if c.Forecast.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("forecast request_timeout_seconds must be greater than 0: %d", c.Forecast.RequestTimeoutSeconds)
	}
	if c.Forecast.RateLimitRPS <= 0 {
		return fmt.Errorf("forecast rate_limit_rps must be greater than 0: %f", c.Forecast.RateLimitRPS)
	}
	if c.Forecast.RateLimitBurst <= 0 {
		return fmt.Errorf("forecast rate_limit_burst must be greater than 0: %d", c.Forecast.RateLimitBurst)
	}
	if c.Forecast.APIKeyEnv == "" {
		return fmt.Errorf("forecast api_key_env cannot be empty")
	}

	// Validate dashboard config
	if c.Dashboard.WidthPx <= 0 {
		return fmt.Errorf("dashboard width_px must be greater than 0: %d", c.Dashboard.WidthPx)
	}
	if c.Dashboard.BandHeightPx <= 0 {
		return fmt.Errorf("dashboard band_height_px must be greater than 0: %d", c.Dashboard.BandHeightPx)
	}

	// Validate locations
	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}
	names := make(map[string]bool)
	for i, loc := range c.Locations {
		if loc.Name == "" {
			return fmt.Errorf("location #%d: name is required", i+1)
		}
		if names[loc.Name] {
			return fmt.Errorf("location #%d: duplicate name: %s", i+1, loc.Name)
		}
		names[loc.Name] = true
		if loc.Lat < -90 || loc.Lat > 90 {
			return fmt.Errorf("location %s: invalid latitude: %f", loc.Name, loc.Lat)
		}
		if loc.Lon < -180 || loc.Lon > 180 {
			return fmt.Errorf("location %s: invalid longitude: %f", loc.Name, loc.Lon)
		}
	}

	return nil
}

// ResolveAPIKey reads the forecast API credential from the environment.
// Called after the environment is fully populated (e.g. after godotenv).
func (c *Config) ResolveAPIKey() {
	c.Forecast.APIKey = os.Getenv(c.Forecast.APIKeyEnv)
}

// applyDefaults fills unset fields with working defaults
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = 30
	}
	if c.Server.WriteTimeoutSecs == 0 {
		c.Server.WriteTimeoutSecs = 60
	}
	if c.Server.IdleTimeoutSecs == 0 {
		c.Server.IdleTimeoutSecs = 120
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Forecast.BaseURL == "" {
		c.Forecast.BaseURL = "https://api.openweathermap.org/data/2.5/forecast"
	}
	if c.Forecast.RequestTimeoutSeconds == 0 {
		c.Forecast.RequestTimeoutSeconds = 10
	}
	if c.Forecast.RateLimitRPS == 0 {
		c.Forecast.RateLimitRPS = 1
	}
	if c.Forecast.RateLimitBurst == 0 {
		c.Forecast.RateLimitBurst = 5
	}
	if c.Forecast.APIKeyEnv == "" {
		c.Forecast.APIKeyEnv = "OPENWEATHER_API_KEY"
	}
	if c.Dashboard.WidthPx == 0 {
		c.Dashboard.WidthPx = 1200
	}
	if c.Dashboard.BandHeightPx == 0 {
		c.Dashboard.BandHeightPx = 300
	}
	if len(c.Locations) == 0 {
		c.Locations = defaultLocations()
	}
}
