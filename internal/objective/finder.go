// Package objective identifies and ranks candidate objectives for the
// commander from a theater snapshot.
package objective

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// AirfieldThreatRange is how far enemy aircraft based at an airfield or
// fleet are considered a threat to packages.
const AirfieldThreatRange = 150.0

// Finder identifies potential objectives for one side.
type Finder struct {
	snapshot *theater.Snapshot
	side     domain.Side
}

// NewFinder creates a finder planning for side.
func NewFinder(snapshot *theater.Snapshot, side domain.Side) *Finder {
	return &Finder{snapshot: snapshot, side: side}
}

// Side returns the side objectives are found for.
func (f *Finder) Side() domain.Side {
	return f.side
}

// ActiveFrontLines returns every front line the side takes part in.
func (f *Finder) ActiveFrontLines() []theater.Target {
	var targets []theater.Target
	for _, fl := range f.snapshot.FrontLines {
		if t, ok := f.frontLineTarget(fl); ok {
			targets = append(targets, t)
		}
	}
	return f.rank(targets)
}

// VulnerableFrontLines returns the front lines held by friendly control
// points that are not behind the lines, i.e. not off-map spawns.
func (f *Finder) VulnerableFrontLines() []theater.Target {
	var targets []theater.Target
	for _, fl := range f.snapshot.FrontLines {
		friendly, _, ok := f.snapshot.FrontLineEnds(fl, f.side)
		if !ok || friendly.Kind == theater.ControlPointOffMap || friendly.Destroyed {
			continue
		}
		if t, ok := f.frontLineTarget(fl); ok {
			targets = append(targets, t)
		}
	}
	return f.rank(targets)
}

// EnemyAirDefenses returns live enemy air defense sites.
func (f *Finder) EnemyAirDefenses() []theater.Target {
	return f.rank(f.enemyGroundObjects(func(_ theater.ControlPoint, g theater.GroundObject) bool {
		return g.Kind == theater.GroundObjectAirDefense
	}))
}

// DetectingAirDefenses returns live enemy air defenses that detected
// friendly aircraft.
func (f *Finder) DetectingAirDefenses() []theater.Target {
	return f.rank(f.enemyGroundObjects(func(_ theater.ControlPoint, g theater.GroundObject) bool {
		return g.Kind == theater.GroundObjectAirDefense && g.Detected
	}))
}

// ThreateningShips returns live enemy ships sorted by their proximity to
// friendly control points.
func (f *Finder) ThreateningShips() []theater.Target {
	return f.rank(f.enemyGroundObjects(func(_ theater.ControlPoint, g theater.GroundObject) bool {
		return g.Kind == theater.GroundObjectShip
	}))
}

// StrikeTargets returns enemy buildings. Buildings that make up one
// objective share a name and are reported once. IADS buildings are left to
// DEAD planning and a FOB's own structure is never targetable.
func (f *Finder) StrikeTargets() []theater.Target {
	seen := make(map[string]bool)
	return f.rank(f.enemyGroundObjects(func(cp theater.ControlPoint, g theater.GroundObject) bool {
		if g.Kind != theater.GroundObjectBuilding {
			return false
		}
		if cp.Kind == theater.ControlPointFob && g.ControlPointStructure {
			return false
		}
		if seen[g.Name] {
			return false
		}
		seen[g.Name] = true
		return true
	}))
}

// OcaTargets returns enemy airfields and fleets with at least minAircraft
// aircraft present.
func (f *Finder) OcaTargets(minAircraft int) []theater.Target {
	var targets []theater.Target
	for _, cp := range f.enemyControlPoints() {
		if !isAirBase(cp) || cp.AircraftPresent < minAircraft {
			continue
		}
		targets = append(targets, f.controlPointTarget(cp))
	}
	return f.rank(targets)
}

// EnemyAirBases returns enemy airfields and fleets with any aircraft present.
func (f *Finder) EnemyAirBases() []theater.Target {
	return f.OcaTargets(1)
}

// BarcapTargets returns friendly airfields and fleets within reach of an
// enemy air base, closest to the threat first.
func (f *Finder) BarcapTargets() []theater.Target {
	enemies := f.EnemyAirBases()
	var bases []theater.ControlPoint
	for _, cp := range f.friendlyAirBases() {
		for _, enemy := range enemies {
			if cp.Position.DistanceTo(enemy.Position) <= AirfieldThreatRange {
				bases = append(bases, cp)
				break
			}
		}
	}
	slices.SortStableFunc(bases, func(a, b theater.ControlPoint) int {
		return cmp.Compare(f.distanceToThreat(a.Position), f.distanceToThreat(b.Position))
	})
	return f.controlPointTargets(bases)
}

// AewcTargets returns the friendly air base farthest from enemy threats.
func (f *Finder) AewcTargets() []theater.Target {
	var farthest []theater.ControlPoint
	best := math.Inf(-1)
	for _, cp := range f.friendlyAirBases() {
		if d := f.distanceToThreat(cp.Position); d > best {
			farthest, best = []theater.ControlPoint{cp}, d
		}
	}
	return f.controlPointTargets(farthest)
}

// RefuelingTargets returns the friendly air base closest to enemy threats.
// Fleets with a damaged deck cannot host a tanker track.
func (f *Finder) RefuelingTargets() []theater.Target {
	var closest []theater.ControlPoint
	best := math.Inf(1)
	for _, cp := range f.friendlyAirBases() {
		if cp.IsFleet() && !cp.RunwayOperational {
			continue
		}
		if d := f.distanceToThreat(cp.Position); d < best {
			closest, best = []theater.ControlPoint{cp}, d
		}
	}
	return f.controlPointTargets(closest)
}

// distanceToThreat is how far p is outside the closest enemy threat zone.
// Air defenses and ships threaten their own range, air bases hosting
// aircraft AirfieldThreatRange. It is negative inside a zone.
func (f *Finder) distanceToThreat(p theater.Point) float64 {
	closest := math.Inf(1)
	for _, cp := range f.enemyControlPoints() {
		if isAirBase(cp) && cp.AircraftPresent > 0 {
			closest = math.Min(closest, p.DistanceTo(cp.Position)-AirfieldThreatRange)
		}
		for _, g := range cp.GroundObjects {
			if g.Dead || g.ThreatRange <= 0 {
				continue
			}
			closest = math.Min(closest, p.DistanceTo(g.Position)-g.ThreatRange)
		}
	}
	return closest
}

func (f *Finder) friendlyAirBases() []theater.ControlPoint {
	var out []theater.ControlPoint
	for _, cp := range f.friendlyControlPoints() {
		if isAirBase(cp) {
			out = append(out, cp)
		}
	}
	return out
}

func (f *Finder) controlPointTargets(cps []theater.ControlPoint) []theater.Target {
	targets := make([]theater.Target, 0, len(cps))
	for _, cp := range cps {
		targets = append(targets, f.controlPointTarget(cp))
	}
	return targets
}

func isAirBase(cp theater.ControlPoint) bool {
	return cp.Kind == theater.ControlPointAirfield || cp.Kind == theater.ControlPointFleet
}

func (f *Finder) frontLineTarget(fl theater.FrontLine) (theater.Target, bool) {
	_, enemy, ok := f.snapshot.FrontLineEnds(fl, f.side)
	if !ok {
		return theater.Target{}, false
	}
	return theater.Target{
		ID:                   fl.ID,
		Name:                 fl.Name,
		Kind:                 domain.KindFrontLine,
		Position:             f.snapshot.FrontLinePosition(fl),
		EnemyDeployableUnits: enemy.DeployableFrontLineUnits,
	}, true
}

func (f *Finder) controlPointTarget(cp theater.ControlPoint) theater.Target {
	kind := domain.KindAirfield
	if cp.IsFleet() {
		kind = domain.KindFleet
	}
	return theater.Target{
		ID:                cp.ID,
		Name:              cp.Name,
		Kind:              kind,
		Position:          cp.Position,
		RunwayOperational: cp.RunwayOperational,
		AircraftPresent:   cp.AircraftPresent,
	}
}

func groundObjectTarget(g theater.GroundObject) theater.Target {
	var kind domain.TargetKind
	switch g.Kind {
	case theater.GroundObjectAirDefense:
		kind = domain.KindAirDefense
	case theater.GroundObjectShip:
		kind = domain.KindShip
	default:
		kind = domain.KindBuilding
	}
	return theater.Target{
		ID:              g.ID,
		Name:            g.Name,
		Kind:            kind,
		Position:        g.Position,
		HasLiveRadarSAM: g.RadarSAM,
		ThreatRange:     g.ThreatRange,
	}
}

func (f *Finder) enemyGroundObjects(keep func(theater.ControlPoint, theater.GroundObject) bool) []theater.Target {
	var targets []theater.Target
	for _, cp := range f.enemyControlPoints() {
		for _, g := range cp.GroundObjects {
			if g.Dead || !keep(cp, g) {
				continue
			}
			targets = append(targets, groundObjectTarget(g))
		}
	}
	return targets
}

func (f *Finder) enemyControlPoints() []theater.ControlPoint {
	return f.snapshot.ControlPointsFor(f.side.Opponent())
}

func (f *Finder) friendlyControlPoints() []theater.ControlPoint {
	var out []theater.ControlPoint
	for _, cp := range f.snapshot.ControlPointsFor(f.side) {
		if !cp.Destroyed {
			out = append(out, cp)
		}
	}
	return out
}

// rank annotates each target with its distance to the closest friendly
// control point and sorts by it. Ties keep snapshot order.
func (f *Finder) rank(targets []theater.Target) []theater.Target {
	friendly := f.friendlyControlPoints()
	for i := range targets {
		closest := math.Inf(1)
		for _, cp := range friendly {
			closest = math.Min(closest, targets[i].Position.DistanceTo(cp.Position))
		}
		targets[i].DistanceToFriendly = closest
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].DistanceToFriendly < targets[j].DistanceToFriendly
	})
	return targets
}
