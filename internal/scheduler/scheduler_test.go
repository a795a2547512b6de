package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/log"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// stubEstimator returns a fixed earliest time over target and keeps patrols
// on station for a fixed time.
type stubEstimator struct {
	earliest   time.Duration
	overrides  map[string]time.Duration
	onStation  time.Duration
	unresolved map[string]bool
}

func (e *stubEstimator) EarliestTOT(p *ato.Package) time.Duration {
	if d, ok := e.overrides[p.ID]; ok {
		return d
	}
	return e.earliest
}

func (e *stubEstimator) MissionDeparture(p *ato.Package, tot time.Duration) (time.Duration, bool) {
	if e.unresolved[p.ID] {
		return 0, false
	}
	return tot + e.onStation, true
}

func newPackage(id string, task domain.FlightType, target string) *ato.Package {
	p := ato.NewPackage(task, theater.Target{ID: target, Name: target})
	p.ID = id
	p.AddFlight(ato.Flight{Type: task, Count: 2})
	return p
}

func newScheduler(t *testing.T, est ato.Estimator, duration time.Duration, opts ...Option) *Scheduler {
	t.Helper()
	s := settings.Default()
	s.DesiredMissionDuration = duration
	require.NoError(t, s.Validate())
	return New(est, s, rand.New(rand.NewPCG(1, 2)), opts...)
}

func requireWithin(t *testing.T, got, slot time.Duration) {
	t.Helper()
	low := max(slot-SlotMargin, 0)
	high := slot + SlotMargin
	assert.True(t, got >= low && got <= high, "%s not within [%s, %s]", got, low, high)
}

func TestSchedule_PatrolChain(t *testing.T) {
	est := &stubEstimator{earliest: 10 * time.Minute, onStation: 30 * time.Minute}
	packages := []*ato.Package{
		newPackage("cap-1", domain.FlightBARCAP, "batumi"),
		newPackage("tarcap", domain.FlightTARCAP, "front"),
		newPackage("cap-2", domain.FlightBARCAP, "batumi"),
		newPackage("cap-3", domain.FlightBARCAP, "batumi"),
	}

	newScheduler(t, est, time.Hour).Schedule(context.Background(), packages)

	assert.Equal(t, 10*time.Minute, packages[0].TimeOverTarget, "first patrol flies as early as feasible")
	assert.Equal(t, 10*time.Minute, packages[1].TimeOverTarget, "chains are kept per target")
	assert.Equal(t, 40*time.Minute, packages[2].TimeOverTarget, "relief arrives when the previous patrol leaves")
	assert.Equal(t, 70*time.Minute, packages[3].TimeOverTarget)
}

func TestSchedule_PatrolChainWaitsForEarliest(t *testing.T) {
	est := &stubEstimator{
		earliest:  5 * time.Minute,
		overrides: map[string]time.Duration{"far": 50 * time.Minute},
		onStation: 30 * time.Minute,
	}
	packages := []*ato.Package{
		newPackage("near", domain.FlightBARCAP, "kutaisi"),
		newPackage("far", domain.FlightBARCAP, "kutaisi"),
	}

	newScheduler(t, est, time.Hour).Schedule(context.Background(), packages)

	assert.Equal(t, 5*time.Minute, packages[0].TimeOverTarget)
	assert.Equal(t, 50*time.Minute, packages[1].TimeOverTarget)
}

func TestSchedule_UnresolvedDepartureIsSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelInfo, Format: log.FormatJSON, Output: log.NewOutput(&buf)})

	est := &stubEstimator{
		earliest:   10 * time.Minute,
		onStation:  30 * time.Minute,
		unresolved: map[string]bool{"broken": true},
	}
	packages := []*ato.Package{
		newPackage("first", domain.FlightBARCAP, "batumi"),
		newPackage("broken", domain.FlightBARCAP, "batumi"),
		newPackage("third", domain.FlightBARCAP, "batumi"),
	}
	packages[1].TimeOverTarget = 7 * time.Minute

	newScheduler(t, est, time.Hour, WithLogger(logger)).Schedule(context.Background(), packages)

	assert.Equal(t, 10*time.Minute, packages[0].TimeOverTarget)
	assert.Equal(t, 7*time.Minute, packages[1].TimeOverTarget, "timing is left at its prior value")
	assert.Equal(t, 40*time.Minute, packages[2].TimeOverTarget, "the chain continues from the last resolved patrol")

	output := buf.String()
	assert.Contains(t, output, "could not determine mission end time")
	assert.Contains(t, output, `"level":"ERROR"`)
	assert.Contains(t, output, "broken")
}

func TestSchedule_SpreadsPackagesAcrossTheMission(t *testing.T) {
	est := &stubEstimator{earliest: 10 * time.Minute}
	var packages []*ato.Package
	for i := range 4 {
		packages = append(packages, newPackage(fmt.Sprintf("strike-%d", i), domain.FlightStrike, fmt.Sprintf("t%d", i)))
	}

	newScheduler(t, est, time.Hour).Schedule(context.Background(), packages)

	// (60m - 5m) / 4 = 13m45s between slots.
	slots := []time.Duration{
		5 * time.Minute,
		18*time.Minute + 45*time.Second,
		32*time.Minute + 30*time.Second,
		46*time.Minute + 15*time.Second,
	}
	for i, p := range packages {
		requireWithin(t, p.TimeOverTarget-10*time.Minute, slots[i])
	}
}

func TestSchedule_PriorityOrder(t *testing.T) {
	est := &stubEstimator{}
	packages := []*ato.Package{
		newPackage("strike", domain.FlightStrike, "depot"),
		newPackage("cap", domain.FlightBARCAP, "batumi"),
		newPackage("oca", domain.FlightOCARunway, "kutaisi"),
		newPackage("dead", domain.FlightDEAD, "sam"),
		newPackage("awacs", domain.FlightAEWC, "batumi"),
	}

	newScheduler(t, est, time.Hour).Schedule(context.Background(), packages)

	// Patrols take no slot, so four slots are spread over the hour.
	interval := (55 * time.Minute) / 4
	order := map[string]int{"awacs": 0, "dead": 1, "oca": 2, "strike": 3}
	for _, p := range packages {
		i, ok := order[p.ID]
		if !ok {
			continue
		}
		requireWithin(t, p.TimeOverTarget, SlotEarliest+time.Duration(i)*interval)
	}
}

func TestSchedule_AllASAPAtMinimumDuration(t *testing.T) {
	est := &stubEstimator{earliest: 12 * time.Minute, onStation: 30 * time.Minute}
	packages := []*ato.Package{
		newPackage("strike", domain.FlightStrike, "depot"),
		newPackage("dead", domain.FlightDEAD, "sam"),
		newPackage("cap-1", domain.FlightBARCAP, "batumi"),
		newPackage("cap-2", domain.FlightBARCAP, "batumi"),
	}

	newScheduler(t, est, settings.MinimumMissionDuration).Schedule(context.Background(), packages)

	assert.Equal(t, 12*time.Minute, packages[0].TimeOverTarget)
	assert.Equal(t, 12*time.Minute, packages[1].TimeOverTarget)
	assert.Equal(t, 12*time.Minute, packages[2].TimeOverTarget)
	assert.Equal(t, 42*time.Minute, packages[3].TimeOverTarget, "patrols still chain")
}

func TestSchedule_ASAPFlags(t *testing.T) {
	est := &stubEstimator{earliest: 12 * time.Minute}

	flagged := newPackage("flagged", domain.FlightStrike, "depot")
	flagged.AutoASAP = true
	manual := newPackage("manual", domain.FlightStrike, "factory")
	manual.Origin = ato.OriginManual

	s := settings.Default()
	s.AutoASAPPlayerMissions = true
	sched := New(est, s, rand.New(rand.NewPCG(3, 4)))
	sched.Schedule(context.Background(), []*ato.Package{flagged, manual})

	assert.Equal(t, 12*time.Minute, flagged.TimeOverTarget)
	assert.Equal(t, 12*time.Minute, manual.TimeOverTarget)
}

func TestSchedule_SameSeedSameSchedule(t *testing.T) {
	build := func() []*ato.Package {
		var packages []*ato.Package
		for i := range 6 {
			packages = append(packages, newPackage(fmt.Sprintf("p%d", i), domain.FlightStrike, fmt.Sprintf("t%d", i)))
		}
		return packages
	}

	first, second := build(), build()
	newScheduler(t, &stubEstimator{}, 90*time.Minute).Schedule(context.Background(), first)
	newScheduler(t, &stubEstimator{}, 90*time.Minute).Schedule(context.Background(), second)

	for i := range first {
		assert.Equal(t, first[i].TimeOverTarget, second[i].TimeOverTarget)
	}
}

func TestSchedule_WindowProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minutes := rapid.IntRange(31, 150).Draw(t, "duration")
		count := rapid.IntRange(1, 25).Draw(t, "packages")
		lead := time.Duration(rapid.IntRange(0, 3600).Draw(t, "lead")) * time.Second

		s := settings.Default()
		s.DesiredMissionDuration = time.Duration(minutes) * time.Minute
		sched := New(&stubEstimator{earliest: lead}, s, rand.New(rand.NewPCG(rapid.Uint64().Draw(t, "seed"), 0)))

		var packages []*ato.Package
		for i := range count {
			packages = append(packages, newPackage(fmt.Sprintf("p%d", i), domain.FlightStrike, "t"))
		}
		sched.Schedule(context.Background(), packages)

		for _, p := range packages {
			offset := p.TimeOverTarget - lead
			if offset < 0 || offset >= s.DesiredMissionDuration+SlotMargin {
				t.Fatalf("offset %s outside [0, %s)", offset, s.DesiredMissionDuration+SlotMargin)
			}
			if offset%time.Second != 0 {
				t.Fatalf("offset %s is not whole seconds", offset)
			}
		}
	})
}

func TestPrioritizedKeepsOriginalSlice(t *testing.T) {
	packages := []*ato.Package{
		newPackage("strike", domain.FlightStrike, "depot"),
		newPackage("awacs", domain.FlightAEWC, "batumi"),
	}

	ordered := prioritized(packages)

	assert.Equal(t, "awacs", ordered[0].ID)
	assert.Equal(t, "strike", packages[0].ID)
	assert.True(t, strings.HasPrefix(ordered[1].ID, "strike"))
}
