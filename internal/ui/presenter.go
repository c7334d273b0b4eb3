package ui

import (
	"context"
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"sync"
)

// buttons holds the handlers registered by a widget session.
type buttons struct {
	mu      sync.RWMutex
	onNext  func(ctx context.Context)
	onScore func(score int)
}

func (b *buttons) SetupNextJokeButton(handler func(ctx context.Context)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onNext = handler
}

func (b *buttons) SetupScoreButtons(handler func(score int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onScore = handler
}

// PressNext triggers the "next joke" handler. It reports false when no
// handler is registered.
func (b *buttons) PressNext(ctx context.Context) bool {
	b.mu.RLock()
	handler := b.onNext
	b.mu.RUnlock()

	if handler == nil {
		return false
	}
	handler(ctx)
	return true
}

// PressScore triggers the score handler.
func (b *buttons) PressScore(score int) bool {
	b.mu.RLock()
	handler := b.onScore
	b.mu.RUnlock()

	if handler == nil {
		return false
	}
	handler(score)
	return true
}

// Snapshot is the widget as currently displayed.
type Snapshot struct {
	Joke          string `json:"joke"`
	Error         string `json:"error,omitempty"`
	Loading       bool   `json:"loading"`
	WeatherHTML   string `json:"weather_html"`
	SelectedScore int    `json:"selected_score,omitempty"`
}

// State is an in-memory presenter backing the HTTP widget.
type State struct {
	buttons

	mu   sync.RWMutex
	snap Snapshot
}

// NewState creates an empty state presenter.
func NewState() *State {
	return &State{}
}

func (s *State) DisplayJoke(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Joke = text
	s.snap.Error = ""
}

// DisplayError replaces the joke text with an error message.
func (s *State) DisplayError(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Joke = ""
	s.snap.Error = text
}

func (s *State) SetLoadingState(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Loading = loading
}

func (s *State) DisplayWeather(html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WeatherHTML = html
}

func (s *State) ResetScoreButtons() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.SelectedScore = 0
}

// PressScore highlights the score and forwards it to the session.
func (s *State) PressScore(score int) bool {
	if !s.buttons.PressScore(score) {
		return false
	}
	s.mu.Lock()
	s.snap.SelectedScore = score
	s.mu.Unlock()
	return true
}

// Snapshot returns a copy of the displayed state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Console is a presenter printing to a terminal.
type Console struct {
	buttons

	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console presenter writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) DisplayJoke(text string) {
	c.println("😄 " + text)
}

func (c *Console) DisplayError(text string) {
	c.println("⚠️  " + text)
}

func (c *Console) SetLoadingState(loading bool) {
	if loading {
		c.println("Loading joke...")
	}
}

// DisplayWeather prints the text content of the weather panel.
func (c *Console) DisplayWeather(markup string) {
	c.println(PlainText(markup))
}

func (c *Console) ResetScoreButtons() {}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

// PlainText strips tags from rendered panel HTML.
func PlainText(markup string) string {
	text := tagPattern.ReplaceAllString(markup, " ")
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}
