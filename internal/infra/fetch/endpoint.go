package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/metrics"
)

// Endpoint is a named JSON API reached through a Fetcher.
type Endpoint struct {
	Name   string
	URL    string
	Header http.Header

	fetcher *Fetcher
	retry   RetryConfig

	Monitor *Monitor
}

// NewEndpoint creates a JSON endpoint. The name is used in API error
// messages ("<name> API error: 503"), logs and metrics.
func NewEndpoint(name, rawURL string, f *Fetcher, retry RetryConfig) *Endpoint {
	return &Endpoint{
		Name:    name,
		URL:     rawURL,
		Header:  make(http.Header),
		fetcher: f,
		retry:   retry,
		Monitor: NewMonitor(),
	}
}

// WithHeader sets a request header sent on every call.
func (e *Endpoint) WithHeader(key, value string) *Endpoint {
	e.Header.Set(key, value)
	return e
}

// GetJSON issues a GET with the given query and decodes the JSON body into out.
func (e *Endpoint) GetJSON(ctx context.Context, query url.Values, out any) error {
	start := time.Now()

	target, err := e.target(query)
	if err != nil {
		return e.fail(&domain.NetworkError{
			Message: fmt.Sprintf("%s API error: invalid url", e.Name),
			Err:     err,
		})
	}

	resp, err := e.fetcher.FetchWithRetry(ctx, Request{
		Name:   e.Name,
		URL:    target,
		Header: e.Header,
	}, e.retry)
	if err != nil {
		netErr := Classify(err, false)
		if ctx.Err() != nil {
			// The caller gave up; the endpoint itself did not fail.
			return netErr
		}
		return e.fail(netErr)
	}
	defer resp.Body.Close()

	latency := time.Since(start)
	metrics.FetchLatency.WithLabelValues(e.Name).Observe(latency.Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Warn("API returned error status",
			"endpoint", e.Name,
			"status", resp.StatusCode,
		)
		return e.fail(&domain.NetworkError{
			Message:    fmt.Sprintf("%s API error: %d", e.Name, resp.StatusCode),
			StatusCode: resp.StatusCode,
		})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return e.fail(&domain.NetworkError{
			Message: fmt.Sprintf("%s API error: invalid response", e.Name),
			Err:     err,
		})
	}

	e.Monitor.RecordSuccess(latency)
	return nil
}

func (e *Endpoint) fail(err *domain.NetworkError) error {
	e.Monitor.RecordFailure(err)
	metrics.FetchErrorsTotal.WithLabelValues(e.Name, errorType(err)).Inc()
	return err
}

func (e *Endpoint) target(query url.Values) (string, error) {
	if len(query) == 0 {
		return e.URL, nil
	}

	u, err := url.Parse(e.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
