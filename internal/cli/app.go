package cli

import (
	"fmt"

	"github.com/vietddude/jokecast/internal/core/config"
	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
	"github.com/vietddude/jokecast/internal/joke"
	"github.com/vietddude/jokecast/internal/weather"
)

// app holds the services shared by every command.
type app struct {
	jokes    *joke.Service
	weather  *weather.Service
	monitors map[string]*fetch.Monitor
}

func newApp(cfg *config.AppConfig) (*app, error) {
	retry := fetch.RetryConfig{
		MaxRetries:    cfg.Retry.MaxRetries,
		BaseDelay:     cfg.Retry.BaseDelay,
		MaxDelay:      cfg.Retry.MaxDelay,
		BackoffFactor: cfg.Retry.BackoffFactor,
	}
	if err := retry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}

	f := fetch.NewFetcher(fetch.WithTimeout(cfg.Fetch.Timeout))
	monitors := make(map[string]*fetch.Monitor)
	track := func(ep *fetch.Endpoint) {
		monitors[ep.Name] = ep.Monitor
	}

	dad := joke.NewDadJoke(cfg.Jokes.DadJokeURL, f, retry)
	chuck := joke.NewChuckNorris(cfg.Jokes.ChuckNorrisURL, f, retry)
	track(dad.Endpoint())
	track(chuck.Endpoint())

	var source weather.Source
	switch cfg.Geolocation.Source {
	case config.GeolocationSourceIP:
		ip := weather.NewIPSource(cfg.Geolocation.IPLookupURL, f, retry)
		track(ip.Endpoint())
		source = ip
	case config.GeolocationSourceStatic:
		source = weather.StaticSource{Coords: domain.Coordinates{
			Latitude:  cfg.Geolocation.Latitude,
			Longitude: cfg.Geolocation.Longitude,
		}}
	case config.GeolocationSourceNone:
		// no locator: the weather panel reports NOT_SUPPORTED
	default:
		return nil, fmt.Errorf("unknown geolocation source %q", cfg.Geolocation.Source)
	}

	geocoder := weather.NewReverseGeocoder(cfg.Weather.GeocodingURL, cfg.Weather.Language, f, retry)
	forecaster := weather.NewForecaster(cfg.Weather.ForecastURL, cfg.Weather.CurrentFields, cfg.Weather.Timezone, f, retry)
	track(geocoder.Endpoint())
	track(forecaster.Endpoint())

	return &app{
		jokes: joke.NewService(dad, chuck, joke.WithChuckNorrisChance(cfg.Jokes.ChuckNorrisChance)),
		weather: weather.NewService(
			weather.NewGeolocator(source),
			geocoder,
			forecaster,
			weather.PositionOptions{
				Timeout:            cfg.Geolocation.Timeout,
				MaximumAge:         cfg.Geolocation.MaximumAge,
				EnableHighAccuracy: cfg.Geolocation.EnableHighAccuracy,
			},
		),
		monitors: monitors,
	}, nil
}
