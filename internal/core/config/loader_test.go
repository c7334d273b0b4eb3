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
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("TEST_JOKE_URL", "http://localhost:9999/joke")

	path := writeConfig(t, `
jokes:
  dad_joke_url: ${TEST_JOKE_URL}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Jokes.DadJokeURL != "http://localhost:9999/joke" {
		t.Errorf("Expected URL http://localhost:9999/joke, got %s", cfg.Jokes.DadJokeURL)
	}
	if cfg.Jokes.ChuckNorrisURL != "https://api.chucknorris.io/jokes/random" {
		t.Errorf("Expected default Chuck Norris URL, got %s", cfg.Jokes.ChuckNorrisURL)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Retry.MaxRetries != 3 || cfg.Retry.BaseDelay != time.Second ||
		cfg.Retry.MaxDelay != 10*time.Second || cfg.Retry.BackoffFactor != 2 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Expected 10s fetch timeout, got %v", cfg.Fetch.Timeout)
	}
	if cfg.Geolocation.MaximumAge != 5*time.Minute {
		t.Errorf("Expected 5m maximum age, got %v", cfg.Geolocation.MaximumAge)
	}
	if cfg.Jokes.ChuckNorrisChance != 0.5 {
		t.Errorf("Expected 0.5 chance, got %v", cfg.Jokes.ChuckNorrisChance)
	}
}

func TestLoad_DurationsAndExplicitZeroRetries(t *testing.T) {
	path := writeConfig(t, `
retry:
  max_retries: 0
  base_delay: 250ms
geolocation:
  source: static
  latitude: -23.5
  longitude: -46.6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Retry.MaxRetries != 0 {
		t.Errorf("Expected explicit max_retries 0 to survive, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.BaseDelay != 250*time.Millisecond {
		t.Errorf("Expected 250ms base delay, got %v", cfg.Retry.BaseDelay)
	}
	if cfg.Retry.MaxDelay != 10*time.Second {
		t.Errorf("Expected default max delay, got %v", cfg.Retry.MaxDelay)
	}
	if cfg.Geolocation.Source != GeolocationSourceStatic || cfg.Geolocation.Latitude != -23.5 {
		t.Errorf("unexpected geolocation config: %+v", cfg.Geolocation)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"backoff factor", "retry:\n  backoff_factor: 1\n"},
		{"negative retries", "retry:\n  max_retries: -1\n"},
		{"max below base", "retry:\n  base_delay: 5s\n  max_delay: 1s\n"},
		{"chance", "jokes:\n  chuck_norris_chance: 1.5\n"},
		{"source", "geolocation:\n  source: gps\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}
