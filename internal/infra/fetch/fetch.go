// Package fetch provides resilient outbound HTTP calls for the widget.
//
// This package offers:
//   - Per-attempt timeouts (10s by default)
//   - Failure classification into retryable network errors and
//     non-retryable API errors (domain.NetworkError)
//   - Exponential backoff between attempts, capped at a maximum delay
//   - Named JSON endpoints with health monitoring and metrics
//
// # Quick Start
//
//	f := fetch.NewFetcher()
//	ep := fetch.NewEndpoint("Weather", "https://api.open-meteo.com/v1/forecast", f, fetch.DefaultRetryConfig)
//
//	var out forecastResponse
//	err := ep.GetJSON(ctx, url.Values{"latitude": {"-23.5"}}, &out)
//
// Completed responses are handed back whatever their status code; Endpoint
// turns a non-success status into a NetworkError with IsNetworkError=false so
// it is never retried.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/metrics"
)

// DefaultTimeout bounds a single attempt.
const DefaultTimeout = 10 * time.Second

// RetryConfig defines retry behavior.
type RetryConfig struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig provides sensible defaults.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:    3,
	BaseDelay:     1 * time.Second,
	MaxDelay:      10 * time.Second,
	BackoffFactor: 2.0,
}

// Validate rejects configurations that cannot produce a growing backoff.
func (c RetryConfig) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("base delay must be positive, got %v", c.BaseDelay)
	}
	if c.MaxDelay < c.BaseDelay {
		return fmt.Errorf("max delay %v is below base delay %v", c.MaxDelay, c.BaseDelay)
	}
	if c.BackoffFactor <= 1 {
		return fmt.Errorf("backoff factor must be > 1, got %v", c.BackoffFactor)
	}
	return nil
}

// Delay returns the wait after the given zero-based failed attempt:
// min(BaseDelay * BackoffFactor^attempt, MaxDelay).
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(c.BaseDelay) * math.Pow(c.BackoffFactor, float64(attempt))
	if delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}
	return time.Duration(delay)
}

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one outbound call.
type Request struct {
	// Name labels logs and metrics; defaults to the URL host.
	Name   string
	Method string // defaults to GET
	URL    string
	Header http.Header
}

// Fetcher performs HTTP calls with timeout, classification and backoff.
type Fetcher struct {
	client  Doer
	timeout time.Duration
	online  func() bool
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client Doer) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithOnlineCheck installs a connectivity probe consulted before each call.
// When it reports offline the call fails at once without touching the network.
func WithOnlineCheck(online func() bool) Option {
	return func(f *Fetcher) {
		f.online = online
	}
}

// WithSleep replaces the backoff wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// NewFetcher creates a Fetcher with a pooled HTTP client and a 10s attempt timeout.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: DefaultTimeout,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchWithRetry executes the request with exponential backoff.
//
// Any completed response is returned immediately, whatever its status code.
// Failures are classified; non-retryable ones and the failure of the last
// allowed attempt are returned as *domain.NetworkError. The caller must close
// the response body.
func (f *Fetcher) FetchWithRetry(
	ctx context.Context,
	req Request,
	config RetryConfig,
) (*http.Response, error) {
	name := req.Name
	if name == "" {
		name = hostOf(req.URL)
	}

	if f.isOffline() {
		metrics.FetchAttemptsTotal.WithLabelValues(name, "offline").Inc()
		return nil, &domain.NetworkError{
			Message:        "network is offline",
			IsNetworkError: true,
		}
	}

	var lastErr *domain.NetworkError

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		resp, err := f.do(ctx, req)
		if err == nil {
			metrics.FetchAttemptsTotal.WithLabelValues(name, "completed").Inc()
			return resp, nil
		}

		lastErr = Classify(err, f.isOffline())
		metrics.FetchAttemptsTotal.WithLabelValues(name, errorType(lastErr)).Inc()

		// The caller gave up; nothing left to retry for.
		if ctx.Err() != nil {
			return nil, Classify(ctx.Err(), false)
		}

		if !lastErr.Retryable() {
			return nil, lastErr
		}

		if attempt == config.MaxRetries {
			break
		}

		delay := config.Delay(attempt)
		slog.Warn("Fetch attempt failed, retrying",
			"endpoint", name,
			"attempt", attempt+1,
			"delay", delay,
			"timeout", lastErr.IsTimeout,
			"error", lastErr,
		)
		metrics.FetchRetriesTotal.WithLabelValues(name).Inc()

		if err := f.sleep(ctx, delay); err != nil {
			return nil, Classify(err, false)
		}
	}

	slog.Error("Fetch failed after retries",
		"endpoint", name,
		"attempts", config.MaxRetries+1,
		"error", lastErr,
	)
	return nil, lastErr
}

// do runs a single attempt bounded by the fetcher timeout. The attempt
// context lives until the response body is closed.
func (f *Fetcher) do(ctx context.Context, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)

	httpReq, err := http.NewRequestWithContext(attemptCtx, method, req.URL, nil)
	if err != nil {
		cancel()
		return nil, &domain.NetworkError{
			Message: fmt.Sprintf("invalid request: %v", err),
			Err:     err,
		}
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		cancel()
		return nil, err
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (f *Fetcher) isOffline() bool {
	return f.online != nil && !f.online()
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
