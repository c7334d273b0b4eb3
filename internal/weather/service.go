// Package weather resolves the device position and renders current
// conditions for it.
package weather

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/jokecast/internal/core/domain"
)

// DefaultCity is used when the place name resolves to nothing at all.
const DefaultCity = "Your location"

// CityResolver turns coordinates into a place name.
type CityResolver interface {
	CityName(ctx context.Context, coords domain.Coordinates) (string, error)
}

// ObservationSource returns current conditions at coordinates.
type ObservationSource interface {
	Current(ctx context.Context, coords domain.Coordinates) (domain.Observation, error)
}

// Service loads a weather snapshot for the current position.
type Service struct {
	locator    Locator
	cities     CityResolver
	conditions ObservationSource
	options    PositionOptions
}

// NewService creates a weather service.
func NewService(
	locator Locator,
	cities CityResolver,
	conditions ObservationSource,
	options PositionOptions,
) *Service {
	return &Service{
		locator:    locator,
		cities:     cities,
		conditions: conditions,
		options:    options,
	}
}

// LoadWeather resolves the position, then the place name and the current
// conditions concurrently. Either lookup failing fails the load.
func (s *Service) LoadWeather(ctx context.Context) (domain.WeatherSnapshot, error) {
	if s.locator == nil {
		return domain.WeatherSnapshot{}, &domain.GeolocationError{
			Code:    domain.GeolocationNotSupported,
			Message: "Geolocation not supported",
		}
	}

	coords, err := s.locator.CurrentPosition(ctx, s.options)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("resolve position: %w", err)
	}

	var (
		city string
		obs  domain.Observation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		name, err := s.cities.CityName(gctx, coords)
		if err != nil {
			return err
		}
		city = name
		return nil
	})
	g.Go(func() error {
		current, err := s.conditions.Current(gctx, coords)
		if err != nil {
			return err
		}
		obs = current
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.WeatherSnapshot{}, err
	}

	return Snapshot(obs, city), nil
}

// Snapshot rounds the observation and attaches its description.
func Snapshot(obs domain.Observation, city string) domain.WeatherSnapshot {
	if city == "" {
		city = DefaultCity
	}
	return domain.WeatherSnapshot{
		Temperature: int(math.Round(obs.Temperature)),
		Description: Describe(obs.WeatherCode),
		City:        city,
		Humidity:    int(math.Round(obs.Humidity)),
		WindSpeed:   int(math.Round(obs.WindSpeed)),
		Code:        obs.WeatherCode,
	}
}
