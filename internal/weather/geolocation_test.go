package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

type countingSource struct {
	coords domain.Coordinates
	err    error
	calls  int
}

func (s *countingSource) Locate(ctx context.Context, highAccuracy bool) (domain.Coordinates, error) {
	s.calls++
	return s.coords, s.err
}

type blockingSource struct{}

func (blockingSource) Locate(ctx context.Context, highAccuracy bool) (domain.Coordinates, error) {
	<-ctx.Done()
	return domain.Coordinates{}, ctx.Err()
}

func geoCode(t *testing.T, err error) domain.GeolocationCode {
	t.Helper()
	var geoErr *domain.GeolocationError
	if !errors.As(err, &geoErr) {
		t.Fatalf("expected GeolocationError, got %T: %v", err, err)
	}
	return geoErr.Code
}

func TestGeolocator_NotSupported(t *testing.T) {
	g := NewGeolocator(nil)
	_, err := g.CurrentPosition(context.Background(), DefaultPositionOptions)
	if code := geoCode(t, err); code != domain.GeolocationNotSupported {
		t.Errorf("expected NOT_SUPPORTED, got %v", code)
	}
	if ErrorMessage(err) != MessageNotSupported {
		t.Errorf("unexpected message %q", ErrorMessage(err))
	}
}

func TestGeolocator_CachesWithinMaximumAge(t *testing.T) {
	src := &countingSource{coords: domain.Coordinates{Latitude: 1, Longitude: 2}}
	g := NewGeolocator(src)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	opts := PositionOptions{Timeout: time.Second, MaximumAge: 5 * time.Minute}
	for range 2 {
		if _, err := g.CurrentPosition(context.Background(), opts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if src.calls != 1 {
		t.Errorf("expected cached fix on second call, source called %d times", src.calls)
	}

	now = now.Add(6 * time.Minute)
	if _, err := g.CurrentPosition(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("expected stale fix to be refreshed, source called %d times", src.calls)
	}
}

func TestGeolocator_Timeout(t *testing.T) {
	g := NewGeolocator(blockingSource{})
	_, err := g.CurrentPosition(context.Background(), PositionOptions{Timeout: 20 * time.Millisecond})
	if code := geoCode(t, err); code != domain.GeolocationTimeout {
		t.Errorf("expected TIMEOUT, got %v", code)
	}
	if ErrorMessage(err) != MessageLocationTimeout {
		t.Errorf("unexpected message %q", ErrorMessage(err))
	}
}

func TestGeolocator_SourceFailureIsUnavailable(t *testing.T) {
	g := NewGeolocator(&countingSource{err: errors.New("boom")})
	_, err := g.CurrentPosition(context.Background(), DefaultPositionOptions)
	if code := geoCode(t, err); code != domain.GeolocationPositionUnavailable {
		t.Errorf("expected POSITION_UNAVAILABLE, got %v", code)
	}
}

func TestIPSource(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     domain.Coordinates
		wantCode domain.GeolocationCode
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"status":"success","lat":48.8566,"lon":2.3522}`,
			want:   domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522},
		},
		{
			name:     "lookup failed",
			status:   http.StatusOK,
			body:     `{"status":"fail","message":"private range"}`,
			wantCode: domain.GeolocationPositionUnavailable,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{}`,
			wantCode: domain.GeolocationPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g := NewGeolocator(NewIPSource(server.URL, testFetcher(), fetch.DefaultRetryConfig))
			coords, err := g.CurrentPosition(context.Background(), DefaultPositionOptions)
			if tt.wantCode != 0 {
				if code := geoCode(t, err); code != tt.wantCode {
					t.Errorf("expected %v, got %v", tt.wantCode, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if coords != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, coords)
			}
		})
	}
}
