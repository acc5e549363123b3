// Package health reports whether the overlay engine is serving useful
// heatmaps: graph loaded, volumes resolved, no prompt left hanging.
package health

import (
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the result of one component check
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
}

// CheckFunc performs a check
type CheckFunc func() Check

// Checker runs registered checks. Readiness checks run separately from
// the general health checks.
type Checker struct {
	checks      map[string]CheckFunc
	readyChecks map[string]CheckFunc
	startTime   time.Time
	mu          sync.RWMutex
}

// Response is the aggregated result; the worst check status wins
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    time.Duration    `json:"uptime_seconds"`
}
