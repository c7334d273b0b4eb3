package ui

import (
	"github.com/vietddude/jokecast/internal/infra/fetch"
)

// SystemStatus represents the overall health of the widget's upstreams.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// HealthReport contains the full upstream health report.
type HealthReport struct {
	SystemStatus SystemStatus                  `json:"system_status"`
	Endpoints    map[string]fetch.MonitorStats `json:"endpoints"`
}

// CheckHealth aggregates endpoint monitors; the worst endpoint wins.
func CheckHealth(monitors map[string]*fetch.Monitor) HealthReport {
	report := HealthReport{
		SystemStatus: StatusHealthy,
		Endpoints:    make(map[string]fetch.MonitorStats, len(monitors)),
	}

	for name, m := range monitors {
		stats := m.Stats()
		report.Endpoints[name] = stats

		switch stats.Status {
		case fetch.StatusUnreachable:
			report.SystemStatus = StatusCritical
		case fetch.StatusDegraded:
			if report.SystemStatus == StatusHealthy {
				report.SystemStatus = StatusDegraded
			}
		}
	}

	return report
}
