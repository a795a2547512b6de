package commander

import (
	"fmt"
	"slices"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/coalition"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
	"github.com/felixgeelhaar/commander/internal/objective"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// Escort sizing.
const (
	escortsPerAirBase = 2
	maxEscorts        = 4
	seadEscorts       = 2
)

// flightAsk is a request for aircraft to fly one task in a package. Escort
// asks are dropped when no aircraft can be found.
type flightAsk struct {
	task   domain.FlightType
	count  int
	escort bool
}

// mission holds the domain rules of one kind of package.
type mission interface {
	// eligible checks the domain preconditions against the state.
	eligible(state *TheaterState, target theater.Target) bool

	// consume applies the effects of committing the package.
	consume(state *TheaterState, target theater.Target)

	// proposeFlights declares the package's primary task and flights.
	proposeFlights(state *TheaterState, target theater.Target) (domain.FlightType, []flightAsk)
}

// PackageTask is a primitive task that plans one package against a target.
type PackageTask struct {
	name    string
	target  theater.Target
	minimum domain.AutoTasking
	mission mission
	pkg     *ato.Package
}

func newPackageTask(name string, target theater.Target, minimum domain.AutoTasking, m mission, kinds ...domain.TargetKind) (*PackageTask, error) {
	if !slices.Contains(kinds, target.Kind) {
		want := make([]string, len(kinds))
		for i, k := range kinds {
			want[i] = string(k)
		}
		return nil, errors.NewTargetKindMismatchError(name, target.ID, string(target.Kind), want...)
	}
	return &PackageTask{name: name, target: target, minimum: minimum, mission: m}, nil
}

// Name implements htn.Task.
func (t *PackageTask) Name() string {
	return t.name
}

// Target returns the target the package flies against.
func (t *PackageTask) Target() theater.Target {
	return t.target
}

// MinimumTasking is the least restrictive auto-tasking level the task needs.
func (t *PackageTask) MinimumTasking() domain.AutoTasking {
	return t.minimum
}

// Package returns the proposed package. It is nil until the preconditions
// have been met.
func (t *PackageTask) Package() *ato.Package {
	return t.pkg
}

func (t *PackageTask) String() string {
	return fmt.Sprintf("%s(%s)", t.name, t.target)
}

// PreconditionsMet implements htn.PrimitiveTask. Aircraft for the package
// are claimed here so that a task without aircraft fails like any other
// unmet precondition.
func (t *PackageTask) PreconditionsMet(state *TheaterState) bool {
	if !t.mission.eligible(state, t.target) {
		return false
	}
	if !state.Context().Settings.AutoTasking.Permits(t.minimum) {
		return false
	}
	return t.fulfill(state)
}

// ApplyEffects implements htn.PrimitiveTask.
func (t *PackageTask) ApplyEffects(state *TheaterState) {
	t.mission.consume(state, t.target)
}

func (t *PackageTask) fulfill(state *TheaterState) bool {
	mark := state.Checkpoint()
	primary, asks := t.mission.proposeFlights(state, t.target)

	pkg := ato.NewPackage(primary, t.target)
	for _, ask := range asks {
		squadron, ok := state.claimAircraft(ask.task, ask.count)
		if !ok {
			if ask.escort {
				continue
			}
			state.Rollback(mark)
			state.Context().Coalition.RequestProcurement(coalition.ProcurementRequest{
				Task:     ask.task,
				Count:    ask.count,
				TargetID: t.target.ID,
			})
			t.pkg = nil
			return false
		}
		pkg.AddFlight(ato.Flight{Type: ask.task, Count: ask.count, Squadron: squadron, Escort: ask.escort})
	}

	t.pkg = pkg
	return true
}

// commonEscorts sizes fighter and SEAD escorts to the threats around target.
func commonEscorts(state *TheaterState, target theater.Target) []flightAsk {
	var asks []flightAsk

	escorts := 0
	for _, base := range state.EnemyAirBases() {
		if base.Position.DistanceTo(target.Position) <= objective.AirfieldThreatRange {
			escorts += escortsPerAirBase
		}
	}
	if escorts > 0 {
		asks = append(asks, flightAsk{task: domain.FlightEscort, count: min(escorts, maxEscorts), escort: true})
	}

	if state.defendedByOtherAirDefense(target) {
		asks = append(asks, flightAsk{task: domain.FlightSEADEscort, count: seadEscorts, escort: true})
	}

	return asks
}
