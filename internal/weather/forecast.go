package weather

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

// DefaultCurrentFields are the current-condition fields requested from Open-Meteo.
const DefaultCurrentFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"

// Forecaster reads current conditions from Open-Meteo.
type Forecaster struct {
	endpoint      *fetch.Endpoint
	currentFields string
	timezone      string
}

// NewForecaster creates a forecaster. Empty fields and timezone fall back
// to DefaultCurrentFields and "auto".
func NewForecaster(rawURL, currentFields, timezone string, f *fetch.Fetcher, retry fetch.RetryConfig) *Forecaster {
	if currentFields == "" {
		currentFields = DefaultCurrentFields
	}
	if timezone == "" {
		timezone = "auto"
	}
	return &Forecaster{
		endpoint:      fetch.NewEndpoint("Weather", rawURL, f, retry),
		currentFields: currentFields,
		timezone:      timezone,
	}
}

// Endpoint exposes the underlying endpoint for health reporting.
func (f *Forecaster) Endpoint() *fetch.Endpoint { return f.endpoint }

// Current returns the current observation at the coordinates.
func (f *Forecaster) Current(ctx context.Context, coords domain.Coordinates) (domain.Observation, error) {
	query := url.Values{
		"latitude":  {formatCoord(coords.Latitude)},
		"longitude": {formatCoord(coords.Longitude)},
		"current":   {f.currentFields},
		"timezone":  {f.timezone},
	}

	var resp struct {
		Current *domain.Observation `json:"current"`
	}
	if err := f.endpoint.GetJSON(ctx, query, &resp); err != nil {
		return domain.Observation{}, fmt.Errorf("fetch weather: %w", err)
	}
	if resp.Current == nil {
		return domain.Observation{}, &domain.NetworkError{
			Message: "Weather API error: missing current conditions",
		}
	}
	return *resp.Current, nil
}
