package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{
		Retry: RetryConfig{MaxRetries: 3},
		Jokes: JokesConfig{ChuckNorrisChance: 0.5},
	}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file.
// A missing file is not an error: the widget runs on defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so that keys absent from the file keep them,
	// including legitimate zero values such as max_retries: 0.
	cfg := Default()
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults again for keys that expanded to empty values
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 10 * time.Second
	}

	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = time.Second
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = 10 * time.Second
	}
	if cfg.Retry.BackoffFactor == 0 {
		cfg.Retry.BackoffFactor = 2
	}

	if cfg.Jokes.DadJokeURL == "" {
		cfg.Jokes.DadJokeURL = "https://icanhazdadjoke.com/"
	}
	if cfg.Jokes.ChuckNorrisURL == "" {
		cfg.Jokes.ChuckNorrisURL = "https://api.chucknorris.io/jokes/random"
	}

	if cfg.Weather.ForecastURL == "" {
		cfg.Weather.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.Weather.GeocodingURL == "" {
		cfg.Weather.GeocodingURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	}
	if cfg.Weather.Language == "" {
		cfg.Weather.Language = "en"
	}
	if cfg.Weather.CurrentFields == "" {
		cfg.Weather.CurrentFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"
	}
	if cfg.Weather.Timezone == "" {
		cfg.Weather.Timezone = "auto"
	}

	if cfg.Geolocation.Source == "" {
		cfg.Geolocation.Source = GeolocationSourceIP
	}
	if cfg.Geolocation.IPLookupURL == "" {
		cfg.Geolocation.IPLookupURL = "http://ip-api.com/json/"
	}
	if cfg.Geolocation.Timeout == 0 {
		cfg.Geolocation.Timeout = 10 * time.Second
	}
	if cfg.Geolocation.MaximumAge == 0 {
		cfg.Geolocation.MaximumAge = 5 * time.Minute
	}
}

// Validate checks values that have no sensible default.
func (c *AppConfig) Validate() error {
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must be >= 0, got %d", c.Retry.MaxRetries)
	}
	if c.Retry.BackoffFactor <= 1 {
		return fmt.Errorf("retry.backoff_factor must be > 1, got %v", c.Retry.BackoffFactor)
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		return fmt.Errorf("retry.max_delay (%v) is below retry.base_delay (%v)",
			c.Retry.MaxDelay, c.Retry.BaseDelay)
	}
	if c.Jokes.ChuckNorrisChance < 0 || c.Jokes.ChuckNorrisChance > 1 {
		return fmt.Errorf("jokes.chuck_norris_chance must be within [0,1], got %v",
			c.Jokes.ChuckNorrisChance)
	}
	switch c.Geolocation.Source {
	case GeolocationSourceIP, GeolocationSourceStatic, GeolocationSourceNone:
	default:
		return fmt.Errorf("unknown geolocation.source %q", c.Geolocation.Source)
	}
	return nil
}
