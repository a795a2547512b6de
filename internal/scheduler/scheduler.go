// Package scheduler assigns times over target to mission packages.
package scheduler

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/metrics"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/telemetry"
)

// Start slots are spread between SlotEarliest and the desired mission
// duration and moved by up to SlotMargin either way.
const (
	SlotEarliest = 5 * time.Minute
	SlotMargin   = 5 * time.Minute
)

// Scheduling modes reported to metrics.
const (
	modeASAP   = "asap"
	modeSpread = "spread"
	modePatrol = "patrol"
)

// Scheduler gives every package of an air-tasking order a time over target.
type Scheduler struct {
	estimator ato.Estimator
	settings  *settings.Settings
	rng       *rand.Rand
	logger    *log.Logger
	metrics   *metrics.Metrics
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// NewRand returns a random source seeded with seed. Equal seeds give equal
// schedules.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New creates a scheduler.
func New(estimator ato.Estimator, s *settings.Settings, rng *rand.Rand, opts ...Option) *Scheduler {
	sched := &Scheduler{
		estimator: estimator,
		settings:  s,
		rng:       rng,
		logger:    log.Nop(),
	}
	for _, opt := range opts {
		opt(sched)
	}
	return sched
}

// Schedule sets TimeOverTarget on every package.
//
// Patrols at the same target relieve each other: each one arrives when the
// previous one leaves, or as soon as it can if that is later. Other packages
// fly as soon as possible when requested, and are otherwise spread over the
// desired mission duration in priority order.
func (s *Scheduler) Schedule(ctx context.Context, packages []*ato.Package) {
	ctx, span := telemetry.StartScheduleSpan(ctx, len(packages))
	defer span.End()

	ordered := prioritized(packages)

	spread := 0
	for _, p := range ordered {
		if !p.PrimaryTask.IsPatrol() {
			spread++
		}
	}
	nextSlot := s.startTimes(spread)

	// Departure of the latest patrol per target.
	patrolEnd := make(map[string]time.Duration)

	for _, p := range ordered {
		earliest := s.estimator.EarliestTOT(p)

		switch {
		case p.PrimaryTask.IsPatrol():
			s.schedulePatrol(ctx, p, earliest, patrolEnd)
		case s.asap(p):
			p.TimeOverTarget = earliest
			s.metrics.RecordScheduled(modeASAP)
		default:
			p.TimeOverTarget = nextSlot() + earliest
			s.metrics.RecordScheduled(modeSpread)
		}
	}

	telemetry.RecordSuccess(span, attribute.Int("patrol_chains", len(patrolEnd)))
}

// schedulePatrol starts the patrol when the previous one at the same target
// leaves. A patrol whose departure cannot be determined keeps its previous
// time over target and does not extend the chain.
func (s *Scheduler) schedulePatrol(ctx context.Context, p *ato.Package, earliest time.Duration, patrolEnd map[string]time.Duration) {
	tot := max(earliest, patrolEnd[p.Target.ID])

	departure, ok := s.estimator.MissionDeparture(p, tot)
	if !ok {
		s.logger.ErrorContext(ctx, "could not determine mission end time",
			"package", p.ID,
			"task", p.PrimaryTask,
			"target", p.Target.ID,
		)
		s.metrics.RecordUnresolvedDeparture()
		return
	}

	p.TimeOverTarget = tot
	patrolEnd[p.Target.ID] = departure
	s.metrics.RecordScheduled(modePatrol)
}

func (s *Scheduler) asap(p *ato.Package) bool {
	if p.AutoASAP || s.settings.ScheduleAllASAP() {
		return true
	}
	return p.Origin == ato.OriginManual && s.settings.AutoASAPPlayerMissions
}

// startTimes returns a source of count jittered start offsets evenly spaced
// between SlotEarliest and the desired mission duration.
func (s *Scheduler) startTimes(count int) func() time.Duration {
	if count <= 0 {
		return func() time.Duration { return 0 }
	}

	earliest := int64(SlotEarliest / time.Second)
	latest := int64(s.settings.DesiredMissionDuration / time.Second)
	margin := int64(SlotMargin / time.Second)
	interval := max((latest-earliest)/int64(count), 1)

	next := earliest
	return func() time.Duration {
		slot := next
		if next+interval < latest {
			next += interval
		}
		jitter := s.rng.Int64N(2*margin+1) - margin
		return time.Duration(max(slot+jitter, 0)) * time.Second
	}
}

// prioritized orders packages so that surveillance flies first, followed by
// suppression of air defenses, then offensive counter-air, then the rest in
// their original order.
func prioritized(packages []*ato.Package) []*ato.Package {
	ordered := slices.Clone(packages)
	slices.SortStableFunc(ordered, func(a, b *ato.Package) int {
		return priority(a.PrimaryTask) - priority(b.PrimaryTask)
	})
	return ordered
}

func priority(t domain.FlightType) int {
	switch t {
	case domain.FlightAEWC:
		return 0
	case domain.FlightDEAD, domain.FlightSEAD:
		return 1
	case domain.FlightAirAssault, domain.FlightOCARunway, domain.FlightOCAAircraft, domain.FlightSweep:
		return 2
	default:
		return 3
	}
}
