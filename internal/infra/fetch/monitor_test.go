package fetch

import (
	"testing"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
)

func TestMonitor_UnreachableAfterConsecutiveNetworkFailures(t *testing.T) {
	m := NewMonitor()
	netErr := &domain.NetworkError{Message: "connection refused", IsNetworkError: true}

	m.RecordFailure(netErr)
	m.RecordFailure(netErr)
	if m.Status() == StatusUnreachable {
		t.Fatal("two failures should not mark the endpoint unreachable")
	}

	m.RecordFailure(netErr)
	if m.Status() != StatusUnreachable {
		t.Errorf("expected unreachable, got %s", m.Status())
	}

	m.RecordSuccess(10 * time.Millisecond)
	if m.Status() == StatusUnreachable {
		t.Error("success should clear unreachable status")
	}
}

func TestMonitor_APIErrorsDegradeButDoNotDisconnect(t *testing.T) {
	m := NewMonitor()
	apiErr := &domain.NetworkError{Message: "Weather API error: 500", StatusCode: 500}

	for i := 0; i < 5; i++ {
		m.RecordFailure(apiErr)
	}
	if got := m.Status(); got != StatusDegraded {
		t.Errorf("expected degraded, got %s", got)
	}

	stats := m.Stats()
	if stats.ConsecutiveFailures != 0 {
		t.Errorf("API errors must not count as network failures, got %d", stats.ConsecutiveFailures)
	}
	if stats.LastError == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestMonitor_HealthyAverages(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 20; i++ {
		m.RecordSuccess(100 * time.Millisecond)
	}

	stats := m.Stats()
	if stats.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", stats.Status)
	}
	if stats.AverageLatency != 100*time.Millisecond {
		t.Errorf("expected 100ms average, got %v", stats.AverageLatency)
	}
	if stats.Requests != 20 {
		t.Errorf("expected 20 requests, got %d", stats.Requests)
	}
}
