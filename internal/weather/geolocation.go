package weather

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

// PositionOptions configures a one-shot position request.
type PositionOptions struct {
	Timeout            time.Duration
	MaximumAge         time.Duration
	EnableHighAccuracy bool
}

// DefaultPositionOptions matches the widget defaults.
var DefaultPositionOptions = PositionOptions{
	Timeout:            10 * time.Second,
	MaximumAge:         5 * time.Minute,
	EnableHighAccuracy: false,
}

// Locator resolves the current device position.
type Locator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (domain.Coordinates, error)
}

// Source is a raw position backend. Geolocator adds timeout and caching.
type Source interface {
	Locate(ctx context.Context, highAccuracy bool) (domain.Coordinates, error)
}

// Geolocator implements Locator over a Source. A nil source means the
// host has no geolocation capability.
type Geolocator struct {
	source Source
	now    func() time.Time

	mu     sync.Mutex
	last   domain.Coordinates
	lastAt time.Time
}

// NewGeolocator creates a locator; pass nil when no source is available.
func NewGeolocator(source Source) *Geolocator {
	return &Geolocator{source: source, now: time.Now}
}

// CurrentPosition returns a cached fix younger than MaximumAge, or asks the
// source within Timeout. Failures are always *domain.GeolocationError.
func (g *Geolocator) CurrentPosition(
	ctx context.Context,
	opts PositionOptions,
) (domain.Coordinates, error) {
	if g == nil || g.source == nil {
		return domain.Coordinates{}, &domain.GeolocationError{
			Code:    domain.GeolocationNotSupported,
			Message: "Geolocation not supported",
		}
	}

	if coords, ok := g.cached(opts.MaximumAge); ok {
		return coords, nil
	}

	locateCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		locateCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	coords, err := g.source.Locate(locateCtx, opts.EnableHighAccuracy)
	if err != nil {
		var geoErr *domain.GeolocationError
		switch {
		case errors.As(err, &geoErr):
			return domain.Coordinates{}, geoErr
		case ctx.Err() == nil && errors.Is(locateCtx.Err(), context.DeadlineExceeded):
			return domain.Coordinates{}, &domain.GeolocationError{
				Code:    domain.GeolocationTimeout,
				Message: "position request timed out",
				Err:     err,
			}
		default:
			return domain.Coordinates{}, &domain.GeolocationError{
				Code:    domain.GeolocationPositionUnavailable,
				Message: "position unavailable",
				Err:     err,
			}
		}
	}

	g.mu.Lock()
	g.last = coords
	g.lastAt = g.now()
	g.mu.Unlock()

	return coords, nil
}

func (g *Geolocator) cached(maxAge time.Duration) (domain.Coordinates, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if maxAge <= 0 || g.lastAt.IsZero() {
		return domain.Coordinates{}, false
	}
	if g.now().Sub(g.lastAt) > maxAge {
		return domain.Coordinates{}, false
	}
	return g.last, true
}

// StaticSource always reports the configured coordinates.
type StaticSource struct {
	Coords domain.Coordinates
}

func (s StaticSource) Locate(ctx context.Context, highAccuracy bool) (domain.Coordinates, error) {
	return s.Coords, ctx.Err()
}

// IPSource approximates the position from the public IP (ip-api.com).
// IP lookups have a single accuracy level, so highAccuracy is ignored.
type IPSource struct {
	endpoint *fetch.Endpoint
}

// NewIPSource creates an IP geolocation source.
func NewIPSource(rawURL string, f *fetch.Fetcher, retry fetch.RetryConfig) *IPSource {
	return &IPSource{endpoint: fetch.NewEndpoint("IP geolocation", rawURL, f, retry)}
}

// Endpoint exposes the underlying endpoint for health reporting.
func (s *IPSource) Endpoint() *fetch.Endpoint { return s.endpoint }

func (s *IPSource) Locate(ctx context.Context, highAccuracy bool) (domain.Coordinates, error) {
	var resp struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}

	if err := s.endpoint.GetJSON(ctx, nil, &resp); err != nil {
		if netErr, ok := domain.AsNetworkError(err); ok &&
			(netErr.StatusCode == http.StatusUnauthorized || netErr.StatusCode == http.StatusForbidden) {
			return domain.Coordinates{}, &domain.GeolocationError{
				Code:    domain.GeolocationPermissionDenied,
				Message: "location lookup refused",
				Err:     err,
			}
		}
		return domain.Coordinates{}, err
	}

	if resp.Status != "success" {
		return domain.Coordinates{}, &domain.GeolocationError{
			Code:    domain.GeolocationPositionUnavailable,
			Message: "location lookup failed: " + resp.Message,
		}
	}

	return domain.Coordinates{Latitude: resp.Lat, Longitude: resp.Lon}, nil
}
