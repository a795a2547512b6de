package commander

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/coalition"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
	"github.com/felixgeelhaar/commander/internal/htn"
	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/metrics"
	"github.com/felixgeelhaar/commander/internal/scheduler"
	"github.com/felixgeelhaar/commander/internal/telemetry"
)

// Commander runs planning passes for one side.
type Commander struct {
	finder    ObjectiveFinder
	estimator ato.Estimator
	logger    *log.Logger
	metrics   *metrics.Metrics
}

// Option configures a Commander.
type Option func(*Commander)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Commander) { c.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Commander) { c.metrics = m }
}

// WithEstimator replaces the doctrine based timing estimator.
func WithEstimator(e ato.Estimator) Option {
	return func(c *Commander) { c.estimator = e }
}

// New creates a commander planning against the finder's objectives.
func New(finder ObjectiveFinder, opts ...Option) *Commander {
	c := &Commander{
		finder:    finder,
		estimator: ato.NewDoctrineEstimator(),
		logger:    log.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result summarizes a planning pass.
type Result struct {
	Side domain.Side

	// Packages planned by this pass, in commit order.
	Packages []*ato.Package

	// SaturationPackages is how many of Packages came from saturation waves.
	SaturationPackages int

	ProcurementRequests []coalition.ProcurementRequest
}

// Plan runs a planning pass: it commits packages for the highest priority
// goals until nothing more can be planned, adds saturation waves over the
// active fronts and then schedules the whole air-tasking order.
func (c *Commander) Plan(ctx context.Context, pc *Context) (*Result, error) {
	start := time.Now()
	ctx, span := telemetry.StartPassSpan(ctx, pc.Side.String(), pc.Turn)
	defer span.End()

	result, err := c.plan(ctx, pc)

	packages := 0
	if result != nil {
		packages = len(result.Packages)
	}
	c.metrics.RecordPass(pc.Side.String(), time.Since(start), packages, err)

	if err != nil {
		telemetry.RecordError(span, err)
		var cerr *errors.CommanderError
		if stderrors.As(err, &cerr) {
			c.metrics.RecordError(string(cerr.Code))
		}
		c.logger.WithError(err).ErrorContext(ctx, "planning pass failed", "side", pc.Side)
		return nil, err
	}

	telemetry.RecordSuccess(span,
		attribute.Int("packages", packages),
		attribute.Int("procurement_requests", len(result.ProcurementRequests)),
	)
	c.logger.InfoContext(ctx, "planning pass complete",
		"side", pc.Side,
		"turn", pc.Turn,
		"packages", packages,
		"saturation_packages", result.SaturationPackages,
	)
	return result, nil
}

func (c *Commander) plan(ctx context.Context, pc *Context) (*Result, error) {
	state := NewTheaterState(pc, c.finder)
	result := &Result{Side: pc.Side}
	observer := htn.WithObserver[*TheaterState](&passObserver{logger: c.logger, metrics: c.metrics})

	prioritized := htn.NewPlanner[*TheaterState](PlanNextAction{}, observer)
	if err := c.planUntilExhausted(ctx, pc, state, prioritized, result); err != nil {
		return nil, err
	}

	saturation := htn.NewPlanner[*TheaterState](SaturateFrontLines{}, observer)
	planned := len(result.Packages)
	for range pc.Settings.SaturationWaves {
		state.startSaturationWave()
		if err := c.planUntilExhausted(ctx, pc, state, saturation, result); err != nil {
			return nil, err
		}
	}
	result.SaturationPackages = len(result.Packages) - planned

	result.ProcurementRequests = pc.Coalition.ProcurementRequests()
	for _, req := range result.ProcurementRequests {
		c.metrics.RecordProcurement(pc.Side.String(), req.Task.String())
	}

	sched := scheduler.New(c.estimator, pc.Settings, pc.Rand,
		scheduler.WithLogger(c.logger),
		scheduler.WithMetrics(c.metrics),
	)
	sched.Schedule(ctx, pc.Coalition.ATO().Packages)

	return result, nil
}

// planUntilExhausted plans and commits with planner until it finds nothing
// more to do. A failed attempt that found new threats is retried so they
// can be planned against.
func (c *Commander) planUntilExhausted(ctx context.Context, pc *Context, state *TheaterState, planner *htn.Planner[*TheaterState], result *Result) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		known := state.ThreateningAirDefenses.Len()
		plan, err := planner.Plan(state)
		if err != nil {
			return err
		}
		if plan == nil {
			if state.ThreateningAirDefenses.Len() > known {
				continue
			}
			return nil
		}

		c.commit(ctx, pc, plan, result)
		state.Commit()
	}
}

// commit appends one package per planned task to the coalition's order.
func (c *Commander) commit(ctx context.Context, pc *Context, plan *htn.Plan[*TheaterState], result *Result) {
	for _, task := range plan.Tasks {
		pt, ok := task.(*PackageTask)
		if !ok || pt.Package() == nil {
			continue
		}
		pkg := pt.Package()
		pc.Coalition.ATO().Add(pkg)
		result.Packages = append(result.Packages, pkg)

		c.metrics.RecordPackage(pc.Side.String(), pkg.PrimaryTask.String())
		c.logger.InfoContext(ctx, "package planned",
			"side", pc.Side,
			"task", pkg.PrimaryTask,
			"target", pkg.Target.ID,
			"aircraft", pkg.AircraftCount(),
		)
	}
}

// passObserver reports the planner's search to logs and metrics.
type passObserver struct {
	logger  *log.Logger
	metrics *metrics.Metrics
}

func (o *passObserver) MethodRejected(task htn.CompoundTask[*TheaterState], method Method, failed Task) {
	o.metrics.RecordMethodRejected(task.Name())
	o.logger.Debug("method rejected",
		"task", task.Name(),
		"method", method.Names(),
		"failed", describe(failed),
	)
}

func (o *passObserver) TaskApplied(task htn.PrimitiveTask[*TheaterState]) {
	o.metrics.RecordTaskApplied(task.Name())
}

func describe(t Task) string {
	if pt, ok := t.(*PackageTask); ok {
		return pt.String()
	}
	return t.Name()
}
