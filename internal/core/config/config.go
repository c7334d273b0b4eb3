package config

import (
	"time"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Retry       RetryConfig       `yaml:"retry"`
	Jokes       JokesConfig       `yaml:"jokes"`
	Weather     WeatherConfig     `yaml:"weather"`
	Geolocation GeolocationConfig `yaml:"geolocation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// FetchConfig holds per-attempt HTTP settings.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// RetryConfig holds backoff settings shared by every outbound call.
type RetryConfig struct {
	MaxRetries    int           `yaml:"max_retries"`
	BaseDelay     time.Duration `yaml:"base_delay"`
	MaxDelay      time.Duration `yaml:"max_delay"`
	BackoffFactor float64       `yaml:"backoff_factor"`
}

// JokesConfig holds the joke provider endpoints.
type JokesConfig struct {
	DadJokeURL        string  `yaml:"dad_joke_url"`
	ChuckNorrisURL    string  `yaml:"chuck_norris_url"`
	ChuckNorrisChance float64 `yaml:"chuck_norris_chance"` // probability Chuck Norris is tried first
}

// WeatherConfig holds the weather and reverse geocoding endpoints.
type WeatherConfig struct {
	ForecastURL   string `yaml:"forecast_url"`
	GeocodingURL  string `yaml:"geocoding_url"`
	Language      string `yaml:"language"`
	CurrentFields string `yaml:"current_fields"`
	Timezone      string `yaml:"timezone"`
}

// GeolocationConfig selects how the device position is resolved.
type GeolocationConfig struct {
	Source             string        `yaml:"source"` // ip, static, none
	IPLookupURL        string        `yaml:"ip_lookup_url"`
	Latitude           float64       `yaml:"latitude"`
	Longitude          float64       `yaml:"longitude"`
	Timeout            time.Duration `yaml:"timeout"`
	MaximumAge         time.Duration `yaml:"maximum_age"`
	EnableHighAccuracy bool          `yaml:"enable_high_accuracy"`
}

const (
	GeolocationSourceIP     = "ip"
	GeolocationSourceStatic = "static"
	GeolocationSourceNone   = "none"
)
