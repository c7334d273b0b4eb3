// Package widget drives one joke and weather widget: it loads jokes, keeps
// the selected score, saves ratings on "next" and renders the weather panel.
package widget

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/joke"
	"github.com/vietddude/jokecast/internal/metrics"
	"github.com/vietddude/jokecast/internal/rating"
	"github.com/vietddude/jokecast/internal/weather"
)

// Presenter is the display surface of the widget.
type Presenter interface {
	DisplayJoke(text string)
	DisplayError(text string)
	SetLoadingState(loading bool)
	DisplayWeather(html string)
	SetupNextJokeButton(handler func(ctx context.Context))
	SetupScoreButtons(handler func(score int))
	ResetScoreButtons()
}

// JokeFetcher returns the text of a new joke.
type JokeFetcher interface {
	FetchJoke(ctx context.Context) (string, error)
}

// WeatherLoader returns the weather at the current position.
type WeatherLoader interface {
	LoadWeather(ctx context.Context) (domain.WeatherSnapshot, error)
}

// Session is a single widget instance.
type Session struct {
	ID string

	jokes     JokeFetcher
	weather   WeatherLoader
	tracker   *rating.Tracker
	presenter Presenter
	log       *slog.Logger

	busy        atomic.Bool
	mu          sync.RWMutex
	currentJoke string
}

// NewSession wires the presenter buttons to the session.
func NewSession(jokes JokeFetcher, weatherLoader WeatherLoader, tracker *rating.Tracker, presenter Presenter) *Session {
	if tracker == nil {
		tracker = rating.NewTracker()
	}

	id := uuid.NewString()
	s := &Session{
		ID:        id,
		jokes:     jokes,
		weather:   weatherLoader,
		tracker:   tracker,
		presenter: presenter,
		log:       slog.Default().With("session", id),
	}

	presenter.SetupScoreButtons(s.SelectScore)
	presenter.SetupNextJokeButton(func(ctx context.Context) {
		s.Next(ctx)
	})

	return s
}

// Start loads the weather panel and the first joke concurrently and
// returns once both have been displayed.
func (s *Session) Start(ctx context.Context) {
	s.log.Info("Starting widget session")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.LoadWeather(ctx)
	}()
	go func() {
		defer wg.Done()
		s.LoadJoke(ctx)
	}()
	wg.Wait()
}

// LoadJoke fetches and displays a joke. It returns false without doing
// anything when another joke load is in flight.
func (s *Session) LoadJoke(ctx context.Context) bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.log.Debug("Joke load already in progress, dropping request")
		return false
	}
	defer s.busy.Store(false)

	log := s.log.With("request_id", uuid.NewString())
	log.Debug("Loading joke")

	s.presenter.SetLoadingState(true)
	defer s.presenter.SetLoadingState(false)

	text, err := s.jokes.FetchJoke(ctx)
	if err != nil {
		log.Error("Failed to load joke", "error", err)
		metrics.LoadsTotal.WithLabelValues("joke", "error").Inc()
		s.presenter.DisplayError(joke.Message(err))
		return true
	}

	s.mu.Lock()
	s.currentJoke = text
	s.mu.Unlock()

	metrics.LoadsTotal.WithLabelValues("joke", "success").Inc()
	s.presenter.DisplayJoke(text)
	return true
}

// LoadWeather renders the weather panel, or an error panel on failure.
func (s *Session) LoadWeather(ctx context.Context) {
	log := s.log.With("request_id", uuid.NewString())
	s.presenter.DisplayWeather(weather.RenderLoading())

	snap, err := s.weather.LoadWeather(ctx)
	if err != nil {
		log.Warn("Weather loading failed", "error", err)
		metrics.LoadsTotal.WithLabelValues("weather", "error").Inc()
		s.presenter.DisplayWeather(weather.RenderError(weather.ErrorMessage(err)))
		return
	}

	log.Debug("Weather loaded", "city", snap.City, "temperature", snap.Temperature)
	metrics.LoadsTotal.WithLabelValues("weather", "success").Inc()
	s.presenter.DisplayWeather(weather.Render(snap))
}

// SelectScore records the score chosen for the displayed joke.
func (s *Session) SelectScore(score int) {
	if !rating.ValidScore(score) {
		s.log.Warn("Ignoring invalid score", "score", score)
		return
	}
	s.tracker.SetCurrentScore(score)
}

// Next saves the pending rating, clears the selection and loads a new
// joke. It reports whether a joke load was started. While a joke is
// loading the press is ignored and the selection is kept.
func (s *Session) Next(ctx context.Context) bool {
	if s.busy.Load() {
		s.log.Debug("Joke load in progress, ignoring next")
		return false
	}

	current := s.CurrentJoke()
	if s.tracker.HasPendingRating(current) {
		if score, ok := s.tracker.CurrentScore(); ok {
			report := s.tracker.SaveRating(current, score)
			s.log.Info("Saved joke rating", "report", report.ID, "score", score)
		}
	}

	s.tracker.ResetScore()
	s.presenter.ResetScoreButtons()
	return s.LoadJoke(ctx)
}

// CurrentJoke returns the last successfully displayed joke.
func (s *Session) CurrentJoke() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentJoke
}

// Reports returns the ratings saved so far.
func (s *Session) Reports() []domain.JokeReport {
	return s.tracker.AllReports()
}
