package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) *Result {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Unhealthy("check cancelled")
		}
	}
	return s.result
}

func TestManager_Check(t *testing.T) {
	m := NewManager()
	m.AddChecker(&stubChecker{name: "a", result: Healthy("ok")})
	m.AddChecker(&stubChecker{name: "b", result: Degraded("slow")})

	results := m.Check(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, StatusHealthy, results["a"].Status)
	assert.Equal(t, StatusDegraded, results["b"].Status)
}

func TestManager_CheckTimeout(t *testing.T) {
	m := NewManager().WithTimeout(10 * time.Millisecond)
	m.AddChecker(&stubChecker{name: "slow", result: Healthy("ok"), delay: time.Second})

	results := m.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, results["slow"].Status)
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]*Result
		want    Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", map[string]*Result{"a": Healthy(""), "b": Healthy("")}, StatusHealthy},
		{"one degraded", map[string]*Result{"a": Healthy(""), "b": Degraded("")}, StatusDegraded},
		{"unhealthy wins", map[string]*Result{"a": Degraded(""), "b": Unhealthy("")}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallStatus(tt.results))
		})
	}
}

func TestPassChecker(t *testing.T) {
	c := NewPassChecker()
	assert.Equal(t, StatusUnhealthy, c.Check(context.Background()).Status)

	c.Record(0, errors.New("bad snapshot"))
	r := c.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, r.Status)
	assert.Equal(t, "bad snapshot", r.Details["error"])

	c.Record(7, nil)
	r = c.Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, 7, r.Details["packages"])
	assert.Equal(t, 2, r.Details["runs"])

	c.Record(0, errors.New("bad snapshot"))
	assert.Equal(t, StatusDegraded, c.Check(context.Background()).Status)
}

func TestSnapshotChecker(t *testing.T) {
	good := NewSnapshotChecker(filepath.Join("..", "theater", "testdata", "caucasus.yaml"))
	assert.Equal(t, "theater-snapshot", good.Name())
	r := good.Check(context.Background())
	assert.Equal(t, StatusHealthy, r.Status)
	assert.Equal(t, "Caucasus", r.Details["theater"])

	broken := filepath.Join(t.TempDir(), "theater.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("turn: [\n"), 0644))
	assert.Equal(t, StatusUnhealthy, NewSnapshotChecker(broken).Check(context.Background()).Status)
}

func TestHandler(t *testing.T) {
	passes := NewPassChecker()
	m := NewManager()
	m.AddChecker(passes)

	serve := func() (*httptest.ResponseRecorder, Report) {
		w := httptest.NewRecorder()
		Handler(m).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		var report Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		return w, report
	}

	w, report := serve()
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, StatusUnhealthy, report.Status)

	passes.Record(3, nil)
	w, report = serve()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusHealthy, report.Status)
	assert.Contains(t, report.Checks, "planning-pass")
}
