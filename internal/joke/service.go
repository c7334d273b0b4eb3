// Package joke picks a joke provider at random and falls back to the other
// one when the first fails.
package joke

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
	"github.com/vietddude/jokecast/internal/metrics"
)

// DefaultChuckNorrisChance is the probability that Chuck Norris is tried first.
const DefaultChuckNorrisChance = 0.5

// User-facing joke error messages.
const (
	MessageAllUnavailable     = "All joke services are temporarily unavailable"
	MessageNetworkUnavailable = "Unable to reach joke services - please check your internet connection"
	MessageTimeout            = "Joke services timed out - please try again"
)

// Service fetches a joke from a primary provider with a single fallback.
type Service struct {
	dadJoke     Provider
	chuckNorris Provider
	chance      float64
	rand        func() float64
}

// Option configures a Service.
type Option func(*Service)

// WithChuckNorrisChance sets the probability that Chuck Norris is the primary.
func WithChuckNorrisChance(chance float64) Option {
	return func(s *Service) {
		s.chance = chance
	}
}

// WithRandom replaces the random source used for the primary draw.
func WithRandom(r func() float64) Option {
	return func(s *Service) {
		s.rand = r
	}
}

// NewService creates a joke service over the two redundant providers.
func NewService(dadJoke, chuckNorris Provider, opts ...Option) *Service {
	s := &Service{
		dadJoke:     dadJoke,
		chuckNorris: chuckNorris,
		chance:      DefaultChuckNorrisChance,
		rand:        rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchJoke returns a joke from the primary provider, or from the secondary
// when the primary fails. When both fail the error is network-classified if
// the last failure was, otherwise it is ErrAllJokeProvidersUnavailable.
func (s *Service) FetchJoke(ctx context.Context) (string, error) {
	primary, secondary := s.order()

	joke, firstErr := primary.Fetch(ctx)
	if firstErr == nil {
		return joke, nil
	}

	slog.Warn("Primary joke provider failed, falling back",
		"primary", primary.Name(),
		"secondary", secondary.Name(),
		"error", firstErr,
	)
	metrics.JokeFallbacksTotal.WithLabelValues(string(primary.Name()), string(secondary.Name())).Inc()

	joke, secondErr := secondary.Fetch(ctx)
	if secondErr == nil {
		return joke, nil
	}

	slog.Error("All joke providers failed",
		"primary_error", firstErr,
		"secondary_error", secondErr,
	)

	if netErr, ok := domain.AsNetworkError(secondErr); ok && netErr.IsNetworkError {
		return "", &domain.NetworkError{
			Message:        "joke services unreachable",
			IsNetworkError: true,
			IsTimeout:      netErr.IsTimeout,
			Err:            fmt.Errorf("%w: %w", domain.ErrAllJokeProvidersUnavailable, secondErr),
		}
	}
	return "", fmt.Errorf("%w: %w", domain.ErrAllJokeProvidersUnavailable, secondErr)
}

func (s *Service) order() (Provider, Provider) {
	if s.rand() < s.chance {
		return s.chuckNorris, s.dadJoke
	}
	return s.dadJoke, s.chuckNorris
}

// Message maps a FetchJoke error to the text shown in place of the joke.
func Message(err error) string {
	switch {
	case fetch.IsTimeout(err):
		return MessageTimeout
	case fetch.IsNetwork(err):
		return MessageNetworkUnavailable
	default:
		return MessageAllUnavailable
	}
}
