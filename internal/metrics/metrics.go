package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the commander
type Metrics struct {
	// Planning pass metrics
	PassExecutions *prometheus.CounterVec
	PassDuration   *prometheus.HistogramVec

	// Planner search metrics
	MethodsRejected *prometheus.CounterVec
	TasksApplied    *prometheus.CounterVec

	// Output metrics
	PackagesPlanned     *prometheus.CounterVec
	PackageCount        *prometheus.HistogramVec
	ProcurementRequests *prometheus.CounterVec

	// Scheduler metrics
	PackagesScheduled    *prometheus.CounterVec
	UnresolvedDepartures prometheus.Counter

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		PassExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_pass_executions_total",
				Help: "Total number of planning passes",
			},
			[]string{"side", "success"},
		),
		PassDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commander_pass_duration_seconds",
				Help:    "Planning pass duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"side"},
		),

		MethodsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_methods_rejected_total",
				Help: "Total number of methods rolled back by the planner",
			},
			[]string{"task"},
		),
		TasksApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_tasks_applied_total",
				Help: "Total number of primitive tasks in committed plans",
			},
			[]string{"task"},
		),

		PackagesPlanned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_packages_planned_total",
				Help: "Total number of packages committed to an air-tasking order",
			},
			[]string{"side", "primary_task"},
		),
		PackageCount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "commander_pass_package_count",
				Help:    "Number of packages planned per pass",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
			},
			[]string{"side"},
		),
		ProcurementRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_procurement_requests_total",
				Help: "Total number of aircraft procurement requests",
			},
			[]string{"side", "task"},
		),

		PackagesScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_packages_scheduled_total",
				Help: "Total number of packages given a time over target",
			},
			[]string{"mode"},
		),
		UnresolvedDepartures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "commander_unresolved_departures_total",
				Help: "Total number of patrol packages whose departure time could not be determined",
			},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commander_errors_total",
				Help: "Total number of errors by error code",
			},
			[]string{"error_code"},
		),
	}
}

// RecordPass records the outcome of a planning pass.
func (m *Metrics) RecordPass(side string, duration time.Duration, packages int, err error) {
	if m == nil {
		return
	}
	m.PassExecutions.WithLabelValues(side, strconv.FormatBool(err == nil)).Inc()
	m.PassDuration.WithLabelValues(side).Observe(duration.Seconds())
	if err == nil {
		m.PackageCount.WithLabelValues(side).Observe(float64(packages))
	}
}

// RecordMethodRejected counts a rolled back method of a compound task.
func (m *Metrics) RecordMethodRejected(task string) {
	if m == nil {
		return
	}
	m.MethodsRejected.WithLabelValues(task).Inc()
}

// RecordTaskApplied counts a primitive task of a committed plan.
func (m *Metrics) RecordTaskApplied(task string) {
	if m == nil {
		return
	}
	m.TasksApplied.WithLabelValues(task).Inc()
}

// RecordPackage counts a committed package.
func (m *Metrics) RecordPackage(side, primaryTask string) {
	if m == nil {
		return
	}
	m.PackagesPlanned.WithLabelValues(side, primaryTask).Inc()
}

// RecordProcurement counts a procurement request.
func (m *Metrics) RecordProcurement(side, task string) {
	if m == nil {
		return
	}
	m.ProcurementRequests.WithLabelValues(side, task).Inc()
}

// RecordScheduled counts a scheduled package. mode is asap, spread or patrol.
func (m *Metrics) RecordScheduled(mode string) {
	if m == nil {
		return
	}
	m.PackagesScheduled.WithLabelValues(mode).Inc()
}

// RecordUnresolvedDeparture counts a patrol whose departure was unknown.
func (m *Metrics) RecordUnresolvedDeparture() {
	if m == nil {
		return
	}
	m.UnresolvedDepartures.Inc()
}

// RecordError counts an error by code.
func (m *Metrics) RecordError(code string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(code).Inc()
}
