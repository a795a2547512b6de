package ato

import (
	"time"

	"github.com/felixgeelhaar/commander/internal/domain"
)

// Estimator answers timing questions about packages. Implementations are
// expected to know about routes and aircraft performance.
type Estimator interface {
	// EarliestTOT is the soonest the package can reach its target.
	EarliestTOT(pkg *Package) time.Duration

	// MissionDeparture is when the package leaves the target area if it
	// arrives at tot. ok is false when it cannot be determined.
	MissionDeparture(pkg *Package, tot time.Duration) (departure time.Duration, ok bool)
}

// DoctrineEstimator estimates timings from doctrine values instead of
// concrete flight plans.
type DoctrineEstimator struct {
	// StartupTime covers engine start, taxi and join-up.
	StartupTime time.Duration

	// CruiseSpeed in knots.
	CruiseSpeed float64

	// PatrolDuration is the time spent on station by patrolling flights.
	PatrolDuration time.Duration
}

// NewDoctrineEstimator returns an estimator with default doctrine values.
func NewDoctrineEstimator() *DoctrineEstimator {
	return &DoctrineEstimator{
		StartupTime:    10 * time.Minute,
		CruiseSpeed:    450,
		PatrolDuration: 30 * time.Minute,
	}
}

// EarliestTOT implements Estimator.
func (e *DoctrineEstimator) EarliestTOT(pkg *Package) time.Duration {
	travel := time.Duration(0)
	if e.CruiseSpeed > 0 {
		travel = time.Duration(pkg.Distance / e.CruiseSpeed * float64(time.Hour))
	}
	return (e.StartupTime + travel).Round(time.Second)
}

// MissionDeparture implements Estimator.
func (e *DoctrineEstimator) MissionDeparture(pkg *Package, tot time.Duration) (time.Duration, bool) {
	if !pkg.HasFlights() {
		return 0, false
	}
	if stationKeeping(pkg.PrimaryTask) {
		return tot + e.PatrolDuration, true
	}
	return tot, true
}

func stationKeeping(t domain.FlightType) bool {
	return t.IsPatrol() || t == domain.FlightCAS
}
