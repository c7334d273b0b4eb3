// Package rating keeps the scores a user gave to jokes during a session.
package rating

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/metrics"
)

// Score bounds offered by the widget buttons.
const (
	MinScore = 1
	MaxScore = 3
)

// ValidScore reports whether n is one of the offered scores.
func ValidScore(n int) bool {
	return n >= MinScore && n <= MaxScore
}

// Tracker holds the currently selected score and the saved reports.
type Tracker struct {
	mu       sync.Mutex
	reports  []domain.JokeReport
	score    int
	hasScore bool
	now      func() time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// SetCurrentScore selects a score for the displayed joke.
func (t *Tracker) SetCurrentScore(score int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.score = score
	t.hasScore = true
}

// CurrentScore returns the selected score, if any.
func (t *Tracker) CurrentScore() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.score, t.hasScore
}

// ResetScore clears the selection.
func (t *Tracker) ResetScore() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.score = 0
	t.hasScore = false
}

// HasPendingRating is true when a joke is displayed and a score is chosen.
func (t *Tracker) HasPendingRating(joke string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return joke != "" && t.hasScore
}

// SaveRating appends a report for the joke.
func (t *Tracker) SaveRating(joke string, score int) domain.JokeReport {
	report := domain.JokeReport{
		ID:    uuid.NewString(),
		Joke:  joke,
		Score: score,
		Date:  t.now().UTC(),
	}

	t.mu.Lock()
	t.reports = append(t.reports, report)
	t.mu.Unlock()

	metrics.RatingsSavedTotal.WithLabelValues(strconv.Itoa(score)).Inc()
	return report
}

// AllReports returns a copy of the saved reports in insertion order.
func (t *Tracker) AllReports() []domain.JokeReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.JokeReport, len(t.reports))
	copy(out, t.reports)
	return out
}
