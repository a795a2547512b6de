package commander

import (
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// NewPlanAewc plans an airborne early warning orbit over a friendly base.
func NewPlanAewc(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanAewc", target, domain.TaskingAirDefence,
		supportMission{pool: aewcPool, primary: domain.FlightAEWC, count: 1},
		domain.KindAirfield, domain.KindFleet)
}

// NewPlanRefueling plans a tanker track over a friendly base.
func NewPlanRefueling(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanRefueling", target, domain.TaskingAirDefence,
		supportMission{pool: refuelingPool, primary: domain.FlightRefueling, count: 1},
		domain.KindAirfield, domain.KindFleet)
}

// NewPlanBarcap plans a barrier combat air patrol over a friendly base.
func NewPlanBarcap(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanBarcap", target, domain.TaskingAirDefence,
		supportMission{pool: barcapPool, primary: domain.FlightBARCAP, count: 2},
		domain.KindAirfield, domain.KindFleet)
}

// NewPlanDead plans a destruction of enemy air defenses package against an
// air defense site.
func NewPlanDead(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanDead", target, domain.TaskingFull,
		defenseMission{primary: domain.FlightDEAD}, domain.KindAirDefense)
}

// NewPlanAntiShip plans an anti-ship package against a ship.
func NewPlanAntiShip(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanAntiShip", target, domain.TaskingFull,
		defenseMission{primary: domain.FlightAntiShip}, domain.KindShip)
}

// NewPlanOcaStrike plans an offensive counter-air package against an
// airfield or fleet.
func NewPlanOcaStrike(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanOcaStrike", target, domain.TaskingFull,
		ocaMission{}, domain.KindAirfield, domain.KindFleet)
}

// NewPlanStrike plans a strike package against a building.
func NewPlanStrike(target theater.Target) (*PackageTask, error) {
	return newPackageTask("PlanStrike", target, domain.TaskingFull,
		strikeMission{}, domain.KindBuilding)
}

// NewPlanCas plans close air support over a front line. A saturating
// package does not consume the front and flies without TARCAP.
func NewPlanCas(target theater.Target, saturate bool) (*PackageTask, error) {
	return newPackageTask("PlanCas", target, domain.TaskingLimited,
		casMission{saturate: saturate}, domain.KindFrontLine)
}

// defenseTasks maps the kinds found in the air defense pools to the task
// that attacks them.
var defenseTasks = map[domain.TargetKind]func(theater.Target) (*PackageTask, error){
	domain.KindAirDefense: NewPlanDead,
	domain.KindShip:       NewPlanAntiShip,
}

// planAgainstDefense returns the task attacking an air defense or ship.
func planAgainstDefense(target theater.Target) (*PackageTask, error) {
	build, ok := defenseTasks[target.Kind]
	if !ok {
		return nil, errors.NewTargetKindMismatchError("DegradeIads", target.ID, string(target.Kind),
			string(domain.KindAirDefense), string(domain.KindShip))
	}
	return build(target)
}

func aewcPool(s *TheaterState) *TargetSet      { return s.AewcTargets }
func refuelingPool(s *TheaterState) *TargetSet { return s.RefuelingTargets }
func barcapPool(s *TheaterState) *TargetSet    { return s.BarcapTargets }

// supportMission flies one unescorted flight over a friendly base taken
// from pool.
type supportMission struct {
	pool    func(*TheaterState) *TargetSet
	primary domain.FlightType
	count   int
}

func (m supportMission) eligible(state *TheaterState, target theater.Target) bool {
	return m.pool(state).Contains(target.ID)
}

func (m supportMission) consume(state *TheaterState, target theater.Target) {
	state.consume(m.pool(state), target.ID)
}

func (m supportMission) proposeFlights(_ *TheaterState, _ theater.Target) (domain.FlightType, []flightAsk) {
	return m.primary, []flightAsk{{task: m.primary, count: m.count}}
}

// defenseMission attacks a threatening or detecting site while it is alive.
type defenseMission struct {
	primary domain.FlightType
}

func (m defenseMission) eligible(state *TheaterState, target theater.Target) bool {
	listed := state.ThreateningAirDefenses.Contains(target.ID) ||
		state.DetectingAirDefenses.Contains(target.ID)
	return listed && state.EnemyAirDefenses.Contains(target.ID)
}

func (m defenseMission) consume(state *TheaterState, target theater.Target) {
	state.consume(state.ThreateningAirDefenses, target.ID)
	state.consume(state.DetectingAirDefenses, target.ID)
	state.consume(state.EnemyAirDefenses, target.ID)
}

func (m defenseMission) proposeFlights(state *TheaterState, target theater.Target) (domain.FlightType, []flightAsk) {
	asks := []flightAsk{{task: m.primary, count: 2}}
	return m.primary, append(asks, commonEscorts(state, target)...)
}

type ocaMission struct{}

func (ocaMission) eligible(state *TheaterState, target theater.Target) bool {
	return state.OcaTargets.Contains(target.ID) && state.recordThreatsCovering(target)
}

func (ocaMission) consume(state *TheaterState, target theater.Target) {
	state.consume(state.OcaTargets, target.ID)
}

func (ocaMission) proposeFlights(state *TheaterState, target theater.Target) (domain.FlightType, []flightAsk) {
	primary := domain.FlightOCAAircraft
	if target.RunwayOperational {
		primary = domain.FlightOCARunway
		if target.Kind == domain.KindFleet {
			primary = domain.FlightAntiShip
		}
	}
	asks := []flightAsk{{task: primary, count: 2}}
	return primary, append(asks, commonEscorts(state, target)...)
}

type strikeMission struct{}

func (strikeMission) eligible(state *TheaterState, target theater.Target) bool {
	return state.StrikeTargets.Contains(target.ID) && state.recordThreatsCovering(target)
}

func (strikeMission) consume(state *TheaterState, target theater.Target) {
	state.consume(state.StrikeTargets, target.ID)
}

func (strikeMission) proposeFlights(state *TheaterState, target theater.Target) (domain.FlightType, []flightAsk) {
	asks := []flightAsk{{task: domain.FlightStrike, count: 2}}
	return domain.FlightStrike, append(asks, commonEscorts(state, target)...)
}

type casMission struct {
	saturate bool
}

func (m casMission) eligible(state *TheaterState, target theater.Target) bool {
	if m.saturate {
		if !state.ActiveFrontLines.Contains(target.ID) || state.SaturatedFrontLines.Contains(target.ID) {
			return false
		}
	} else if !state.VulnerableFrontLines.Contains(target.ID) {
		return false
	}

	// Threats over the front are worth knowing about even when no CAS is
	// planned there.
	state.recordThreatsCovering(target)

	// Ground units are only deployed after the first turn.
	if target.EnemyDeployableUnits == 0 && state.Context().Turn > 0 {
		return false
	}
	return true
}

func (m casMission) consume(state *TheaterState, target theater.Target) {
	if m.saturate {
		state.mark(state.SaturatedFrontLines, target)
		return
	}
	state.consume(state.VulnerableFrontLines, target.ID)
}

func (m casMission) proposeFlights(_ *TheaterState, _ theater.Target) (domain.FlightType, []flightAsk) {
	asks := []flightAsk{{task: domain.FlightCAS, count: 2}}
	if !m.saturate {
		asks = append(asks, flightAsk{task: domain.FlightTARCAP, count: 2})
	}
	return domain.FlightCAS, asks
}
