// Package health reports whether a watching planner is still producing
// orders.
//
// Checks are pluggable:
//
//	manager := health.NewManager()
//	manager.AddChecker(health.NewSnapshotChecker(path))
//	manager.AddChecker(passes)
//
//	results := manager.Check(ctx)
//	status := health.OverallStatus(results)
package health

import (
	"context"
	"time"
)

// Checker verifies one thing the planner depends on.
type Checker interface {
	// Name is lowercase with hyphens, e.g. "theater-snapshot".
	Name() string

	// Check must respect the context deadline.
	Check(ctx context.Context) *Result
}

// Status of a check.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

func (s Status) String() string {
	return string(s)
}

// Result is the outcome of a check.
type Result struct {
	Status  Status         `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Latency time.Duration  `json:"latency"`
}

// NewResult creates a result with no details.
func NewResult(status Status, message string) *Result {
	return &Result{
		Status:  status,
		Message: message,
		Details: make(map[string]any),
	}
}

// WithDetail adds a detail and returns r for chaining.
func (r *Result) WithDetail(key string, value any) *Result {
	r.Details[key] = value
	return r
}

func Healthy(message string) *Result {
	return NewResult(StatusHealthy, message)
}

func Degraded(message string) *Result {
	return NewResult(StatusDegraded, message)
}

func Unhealthy(message string) *Result {
	return NewResult(StatusUnhealthy, message)
}
