package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
	"github.com/vietddude/jokecast/internal/infra/fetch"
	"github.com/vietddude/jokecast/internal/joke"
	"github.com/vietddude/jokecast/internal/rating"
	"github.com/vietddude/jokecast/internal/widget"
)

type sequenceJokes struct {
	texts []string
	n     int
}

func (s *sequenceJokes) FetchJoke(ctx context.Context) (string, error) {
	text := s.texts[s.n%len(s.texts)]
	s.n++
	return text, nil
}

type fixedWeather struct{}

func (fixedWeather) LoadWeather(ctx context.Context) (domain.WeatherSnapshot, error) {
	return domain.WeatherSnapshot{Temperature: 12, Description: "Fog", City: "London"}, nil
}

func newTestServer(t *testing.T, monitors map[string]*fetch.Monitor) (*httptest.Server, *widget.Session) {
	t.Helper()

	state := NewState()
	session := widget.NewSession(
		&sequenceJokes{texts: []string{"first <joke>", "second"}},
		fixedWeather{},
		rating.NewTracker(),
		state,
	)
	session.Start(context.Background())

	srv := NewServer(context.Background(), session.ID, state, session, monitors, 0)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, session
}

// noRedirect keeps the 303 responses visible to the test.
var noRedirect = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func TestServer_Page(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	page := body.String()

	for _, part := range []string{"first &lt;joke&gt;", `class="weather-content"`, "London", `action="/score"`, `action="/next"`} {
		if !strings.Contains(page, part) {
			t.Errorf("page missing %q", part)
		}
	}
}

func TestServer_ScoreThenNextSavesReport(t *testing.T) {
	ts, session := newTestServer(t, nil)

	resp, err := noRedirect.PostForm(ts.URL+"/score", url.Values{"score": {"2"}})
	if err != nil {
		t.Fatalf("POST /score: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/next", nil)
	req.Header.Set("Accept", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /next: %v", err)
	}
	defer resp.Body.Close()

	var state struct {
		SessionID     string `json:"session_id"`
		Joke          string `json:"joke"`
		SelectedScore int    `json:"selected_score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Joke != "second" {
		t.Errorf("expected second joke, got %q", state.Joke)
	}
	if state.SelectedScore != 0 {
		t.Errorf("expected score selection reset, got %d", state.SelectedScore)
	}
	if state.SessionID != session.ID {
		t.Errorf("expected session %s, got %s", session.ID, state.SessionID)
	}

	resp, err = http.Get(ts.URL + "/api/reports")
	if err != nil {
		t.Fatalf("GET /api/reports: %v", err)
	}
	defer resp.Body.Close()

	var reports []domain.JokeReport
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		t.Fatalf("decode reports: %v", err)
	}
	if len(reports) != 1 || reports[0].Joke != "first <joke>" || reports[0].Score != 2 {
		t.Errorf("unexpected reports %+v", reports)
	}
}

func TestServer_InvalidScore(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	for _, v := range []string{"0", "4", "abc", ""} {
		resp, err := http.PostForm(ts.URL+"/score", url.Values{"score": {v}})
		if err != nil {
			t.Fatalf("POST /score: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("score %q: expected 400, got %d", v, resp.StatusCode)
		}
	}
}

func TestServer_Health(t *testing.T) {
	healthy := fetch.NewMonitor()
	healthy.RecordSuccess(50 * time.Millisecond)

	down := fetch.NewMonitor()
	for range 3 {
		down.RecordFailure(&domain.NetworkError{Message: "Failed to fetch", IsNetworkError: true})
	}

	tests := []struct {
		name       string
		monitors   map[string]*fetch.Monitor
		wantCode   int
		wantStatus string
	}{
		{"healthy", map[string]*fetch.Monitor{"Weather": healthy}, http.StatusOK, "healthy"},
		{"critical", map[string]*fetch.Monitor{"Weather": healthy, "Dad joke": down}, http.StatusServiceUnavailable, "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newTestServer(t, tt.monitors)

			resp, err := http.Get(ts.URL + "/health")
			if err != nil {
				t.Fatalf("GET /health: %v", err)
			}
			defer resp.Body.Close()

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.StatusCode != tt.wantCode || body["status"] != tt.wantStatus {
				t.Errorf("expected %d %s, got %d %s", tt.wantCode, tt.wantStatus, resp.StatusCode, body["status"])
			}
		})
	}
}

func TestServer_HealthDetailed(t *testing.T) {
	m := fetch.NewMonitor()
	m.RecordSuccess(10 * time.Millisecond)
	ts, _ := newTestServer(t, map[string]*fetch.Monitor{"Chuck Norris": m})

	resp, err := http.Get(ts.URL + "/health/detailed")
	if err != nil {
		t.Fatalf("GET /health/detailed: %v", err)
	}
	defer resp.Body.Close()

	var report struct {
		SystemStatus string `json:"system_status"`
		Endpoints    map[string]struct {
			Status   string `json:"status"`
			Requests int    `json:"requests"`
		} `json:"endpoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ep, ok := report.Endpoints["Chuck Norris"]
	if !ok || ep.Status != "healthy" || ep.Requests != 1 {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestConsole(t *testing.T) {
	var out strings.Builder
	c := NewConsole(&out)
	session := widget.NewSession(&sequenceJokes{texts: []string{"a joke"}}, fixedWeather{}, nil, c)
	session.Start(context.Background())

	if !c.PressScore(3) || !c.PressNext(context.Background()) {
		t.Fatal("expected handlers to be registered")
	}
	if len(session.Reports()) != 1 {
		t.Errorf("expected saved report, got %d", len(session.Reports()))
	}

	text := out.String()
	for _, part := range []string{"😄 a joke", "12°C", "London"} {
		if !strings.Contains(text, part) {
			t.Errorf("console output missing %q:\n%s", part, text)
		}
	}
	if strings.Contains(text, "<div") {
		t.Errorf("console output should not contain markup:\n%s", text)
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText(`<div class="weather-error">Location &amp; weather</div>`)
	if got != "Location & weather" {
		t.Errorf("unexpected %q", got)
	}
}

// A browser giving up on POST /next must not cancel the joke load.
func TestServer_NextOutlivesClientDisconnect(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(300 * time.Millisecond):
		}
		_, _ = w.Write([]byte(`{"joke":"worth the wait","value":"worth the wait"}`))
	}))
	defer api.Close()

	f := fetch.NewFetcher(fetch.WithSleep(func(ctx context.Context, d time.Duration) error { return ctx.Err() }))
	jokes := joke.NewService(
		joke.NewDadJoke(api.URL, f, fetch.DefaultRetryConfig),
		joke.NewChuckNorris(api.URL, f, fetch.DefaultRetryConfig),
	)
	state := NewState()
	session := widget.NewSession(jokes, fixedWeather{}, rating.NewTracker(), state)

	srv := NewServer(context.Background(), session.ID, state, session, nil, 0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, ts.URL+"/next", nil)
	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
		t.Fatal("expected the client request to time out")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := state.Snapshot(); snap.Joke != "" || snap.Error != "" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	snap := state.Snapshot()
	if snap.Joke != "worth the wait" || snap.Error != "" {
		t.Errorf("after client gave up: joke=%q error=%q", snap.Joke, snap.Error)
	}
}
