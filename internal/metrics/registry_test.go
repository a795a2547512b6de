package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewRegistry(t *testing.T) {
	reg, m := NewRegistry()
	m.RecordPass("blue", 0, 7, nil)
	m.RecordMethodRejected("DegradeIads")

	body := scrape(t, HandlerFor(reg, promhttp.HandlerOpts{}))
	assert.Contains(t, body, `commander_pass_executions_total{side="blue",success="true"} 1`)
	assert.Contains(t, body, `commander_methods_rejected_total{task="DegradeIads"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNewRegistry_Independent(t *testing.T) {
	reg1, m1 := NewRegistry()
	reg2, _ := NewRegistry()
	m1.RecordError("CONFIG-001")

	assert.Contains(t, scrape(t, HandlerFor(reg1, promhttp.HandlerOpts{})), "commander_errors_total")
	assert.NotContains(t, scrape(t, HandlerFor(reg2, promhttp.HandlerOpts{})), `error_code="CONFIG-001"`)
}

func TestServeStopsWithContext(t *testing.T) {
	reg, _ := NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	route := Route{Pattern: "/healthz", Handler: http.NotFoundHandler()}
	assert.NoError(t, Serve(ctx, "127.0.0.1:0", reg, route))
}
