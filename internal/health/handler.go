package health

import (
	"encoding/json"
	"net/http"
)

// Report is the body served by Handler.
type Report struct {
	Status Status             `json:"status"`
	Checks map[string]*Result `json:"checks"`
}

// Handler serves the manager's checks as JSON. Unhealthy answers 503.
func Handler(m *Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := m.Check(r.Context())
		report := Report{Status: OverallStatus(results), Checks: results}

		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(report)
	})
}
