package health

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/commander/internal/theater"
)

// SnapshotChecker reports whether the watched theater snapshot loads and
// validates.
type SnapshotChecker struct {
	path string
}

func NewSnapshotChecker(path string) *SnapshotChecker {
	return &SnapshotChecker{path: path}
}

func (c *SnapshotChecker) Name() string {
	return "theater-snapshot"
}

func (c *SnapshotChecker) Check(ctx context.Context) *Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("check cancelled").WithDetail("error", err.Error())
	}
	snapshot, err := theater.LoadSnapshot(c.path)
	if err != nil {
		return Unhealthy("theater snapshot unusable").
			WithDetail("path", c.path).
			WithDetail("error", err.Error())
	}
	return Healthy("theater snapshot loaded").
		WithDetail("path", c.path).
		WithDetail("theater", snapshot.Name).
		WithDetail("turn", snapshot.Turn)
}

// PassChecker tracks the outcome of the latest planning run. It is
// unhealthy until the first run completes and degraded while the latest run
// failed after an earlier success.
type PassChecker struct {
	mu       sync.Mutex
	runs     int
	lastErr  error
	lastOK   time.Time
	packages int
	now      func() time.Time
}

func NewPassChecker() *PassChecker {
	return &PassChecker{now: time.Now}
}

// Record stores the outcome of a planning run.
func (c *PassChecker) Record(packages int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs++
	c.lastErr = err
	if err == nil {
		c.lastOK = c.now()
		c.packages = packages
	}
}

func (c *PassChecker) Name() string {
	return "planning-pass"
}

func (c *PassChecker) Check(context.Context) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.runs == 0:
		return Unhealthy("no planning pass has run yet")
	case c.lastErr != nil && c.lastOK.IsZero():
		return Unhealthy("planning has never succeeded").
			WithDetail("error", c.lastErr.Error())
	case c.lastErr != nil:
		return Degraded("latest planning pass failed").
			WithDetail("error", c.lastErr.Error()).
			WithDetail("last_success", c.lastOK.Format(time.RFC3339))
	}
	return Healthy("orders are current").
		WithDetail("packages", c.packages).
		WithDetail("runs", c.runs)
}
