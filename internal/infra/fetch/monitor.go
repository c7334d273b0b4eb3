package fetch

import (
	"sync"
	"time"

	"github.com/vietddude/jokecast/internal/core/domain"
)

// Status represents the health state of an endpoint.
type Status int

const (
	StatusHealthy     Status = iota // Endpoint is answering normally
	StatusDegraded                  // Endpoint is slow or failing often
	StatusUnreachable               // Recent calls could not reach the endpoint
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON health reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MonitorStats holds monitoring statistics for an endpoint.
type MonitorStats struct {
	Status              Status        `json:"status"`
	AverageLatency      time.Duration `json:"average_latency"`
	Requests            int           `json:"requests"`
	Failures            int           `json:"failures"`
	ConsecutiveFailures int           `json:"consecutive_failures"`
	ErrorRate           float64       `json:"error_rate"`
	LastSuccessAt       time.Time     `json:"last_success_at"`
	LastFailureAt       time.Time     `json:"last_failure_at"`
	LastError           string        `json:"last_error,omitempty"`
}

// Monitor tracks endpoint latency and outcomes.
type Monitor struct {
	mu sync.RWMutex

	// Response time tracking
	recentLatencies  []time.Duration
	maxLatencyWindow int

	// Outcome tracking (true = failure)
	recentOutcomes   []bool
	maxOutcomeWindow int

	requests            int
	failures            int
	consecutiveNetFails int
	lastSuccessAt       time.Time
	lastFailureAt       time.Time
	lastError           string

	// Thresholds
	slowResponseThreshold time.Duration
	degradedThreshold     float64
	unreachableAfter      int
}

// NewMonitor creates a new monitor with default settings.
func NewMonitor() *Monitor {
	return &Monitor{
		recentLatencies:       make([]time.Duration, 0, 100),
		maxLatencyWindow:      100,
		recentOutcomes:        make([]bool, 0, 20),
		maxOutcomeWindow:      20,
		slowResponseThreshold: 3 * time.Second,
		degradedThreshold:     0.3, // 30% error rate
		unreachableAfter:      3,
	}
}

// RecordSuccess records a successful call with its latency.
func (m *Monitor) RecordSuccess(latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recentLatencies = append(m.recentLatencies, latency)
	if len(m.recentLatencies) > m.maxLatencyWindow {
		m.recentLatencies = m.recentLatencies[1:]
	}

	m.requests++
	m.consecutiveNetFails = 0
	m.lastSuccessAt = time.Now()
	m.recordOutcome(false)
}

// RecordFailure records a failed call. Only network failures count
// towards the unreachable status; API errors prove the endpoint answered.
func (m *Monitor) RecordFailure(err *domain.NetworkError) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	m.failures++
	m.lastFailureAt = time.Now()
	if err != nil {
		m.lastError = err.Error()
		if err.IsNetworkError {
			m.consecutiveNetFails++
		} else {
			m.consecutiveNetFails = 0
		}
	}
	m.recordOutcome(true)
}

func (m *Monitor) recordOutcome(failed bool) {
	m.recentOutcomes = append(m.recentOutcomes, failed)
	if len(m.recentOutcomes) > m.maxOutcomeWindow {
		m.recentOutcomes = m.recentOutcomes[1:]
	}
}

// Status returns the current status of the endpoint.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusLocked()
}

func (m *Monitor) statusLocked() Status {
	if m.consecutiveNetFails >= m.unreachableAfter {
		return StatusUnreachable
	}

	if m.errorRateLocked() > m.degradedThreshold {
		return StatusDegraded
	}

	if len(m.recentLatencies) > 10 && m.averageLatencyLocked() > m.slowResponseThreshold {
		return StatusDegraded
	}

	return StatusHealthy
}

func (m *Monitor) errorRateLocked() float64 {
	if len(m.recentOutcomes) == 0 {
		return 0
	}
	failed := 0
	for _, f := range m.recentOutcomes {
		if f {
			failed++
		}
	}
	return float64(failed) / float64(len(m.recentOutcomes))
}

func (m *Monitor) averageLatencyLocked() time.Duration {
	if len(m.recentLatencies) == 0 {
		return 0
	}
	var total time.Duration
	for _, lat := range m.recentLatencies {
		total += lat
	}
	return total / time.Duration(len(m.recentLatencies))
}

// Stats returns current monitoring statistics.
func (m *Monitor) Stats() MonitorStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MonitorStats{
		Status:              m.statusLocked(),
		AverageLatency:      m.averageLatencyLocked(),
		Requests:            m.requests,
		Failures:            m.failures,
		ConsecutiveFailures: m.consecutiveNetFails,
		ErrorRate:           m.errorRateLocked(),
		LastSuccessAt:       m.lastSuccessAt,
		LastFailureAt:       m.lastFailureAt,
		LastError:           m.lastError,
	}
}
