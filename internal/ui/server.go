// Package ui exposes a widget session over HTTP and the terminal.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
	"github.com/vietddude/jokecast/internal/rating"
)

// ReportLister returns the ratings saved by a session.
type ReportLister interface {
	Reports() []domain.JokeReport
}

// Server serves the widget page, its JSON state and health endpoints.
type Server struct {
	ctx       context.Context
	sessionID string
	state     *State
	reports   ReportLister
	monitors  map[string]*fetch.Monitor
	server    *http.Server
}

// NewServer creates a new widget server. Loads triggered by requests run
// under ctx, so they outlive the request and stop at shutdown.
func NewServer(
	ctx context.Context,
	sessionID string,
	state *State,
	reports ReportLister,
	monitors map[string]*fetch.Monitor,
	port int,
) *Server {
	mux := http.NewServeMux()
	s := &Server{
		ctx:       ctx,
		sessionID: sessionID,
		state:     state,
		reports:   reports,
		monitors:  monitors,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /next", s.handleNext)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/reports", s.handleReports)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/detailed", s.handleDetailed)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Handler returns the server's request router.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	scores := make([]int, 0, rating.MaxScore-rating.MinScore+1)
	for n := rating.MinScore; n <= rating.MaxScore; n++ {
		scores = append(scores, n)
	}

	// Panel markup comes from weather.Render* which escapes its fields.
	data := pageData{
		Joke:     snap.Joke,
		Error:    snap.Error,
		Loading:  snap.Loading,
		Weather:  template.HTML(snap.WeatherHTML),
		Scores:   scores,
		Selected: snap.SelectedScore,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render widget page", "error", err)
	}
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	if !s.state.PressNext(s.ctx) {
		http.Error(w, "widget not ready", http.StatusServiceUnavailable)
		return
	}
	s.respond(w, r)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil || !rating.ValidScore(score) {
		http.Error(w, fmt.Sprintf("score must be between %d and %d", rating.MinScore, rating.MaxScore),
			http.StatusBadRequest)
		return
	}
	if !s.state.PressScore(score) {
		http.Error(w, "widget not ready", http.StatusServiceUnavailable)
		return
	}
	s.respond(w, r)
}

// respond sends JSON clients the new state and browsers back to the page.
func (s *Server) respond(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Accept") == "application/json" {
		s.handleState(w, r)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		SessionID string `json:"session_id"`
		Snapshot
	}{s.sessionID, s.state.Snapshot()})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reports.Reports())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := CheckHealth(s.monitors)

	status := http.StatusOK
	if report.SystemStatus == StatusCritical {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"status": string(report.SystemStatus)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CheckHealth(s.monitors))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
