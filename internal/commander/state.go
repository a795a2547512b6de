package commander

import (
	"slices"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// TheaterState is the mutable world model of a planning pass. Every change
// to the eligibility sets and every aircraft claim is recorded in an undo
// log so the planner can roll back rejected methods.
type TheaterState struct {
	ctx *Context

	VulnerableFrontLines *TargetSet
	ActiveFrontLines     *TargetSet
	OcaTargets           *TargetSet
	StrikeTargets        *TargetSet

	// ThreateningAirDefenses starts empty. Defenses found covering a target
	// while planning against it are added and stay even when the method
	// that found them is rolled back.
	ThreateningAirDefenses *TargetSet
	DetectingAirDefenses   *TargetSet

	// EnemyAirDefenses holds the defenses and ships still alive. They decide
	// which targets are covered by a threat.
	EnemyAirDefenses *TargetSet

	BarcapTargets    *TargetSet
	AewcTargets      *TargetSet
	RefuelingTargets *TargetSet

	// SaturatedFrontLines holds the fronts that received a package in the
	// current saturation wave.
	SaturatedFrontLines *TargetSet

	enemyAirBases []theater.Target
	undo          []func()
}

// NewTheaterState seeds a state from the finder's ranked candidates. The
// finder's slices are copied and kept in the order they were returned.
func NewTheaterState(ctx *Context, finder ObjectiveFinder) *TheaterState {
	return &TheaterState{
		ctx:                    ctx,
		VulnerableFrontLines:   newTargetSet(finder.VulnerableFrontLines()),
		ActiveFrontLines:       newTargetSet(finder.ActiveFrontLines()),
		OcaTargets:             newTargetSet(finder.OcaTargets(ctx.Settings.OcaMinAircraft)),
		StrikeTargets:          newTargetSet(finder.StrikeTargets()),
		ThreateningAirDefenses: newTargetSet(nil),
		DetectingAirDefenses:   newTargetSet(finder.DetectingAirDefenses()),
		EnemyAirDefenses:       newTargetSet(slices.Concat(finder.EnemyAirDefenses(), finder.ThreateningShips())),
		BarcapTargets:          newTargetSet(finder.BarcapTargets()),
		AewcTargets:            newTargetSet(finder.AewcTargets()),
		RefuelingTargets:       newTargetSet(finder.RefuelingTargets()),
		SaturatedFrontLines:    newTargetSet(nil),
		enemyAirBases:          slices.Clone(finder.EnemyAirBases()),
	}
}

// Context returns the planning context of the pass.
func (s *TheaterState) Context() *Context {
	return s.ctx
}

// EnemyAirBases returns the enemy airfields and fleets hosting aircraft.
func (s *TheaterState) EnemyAirBases() []theater.Target {
	return s.enemyAirBases
}

// Checkpoint implements htn.State.
func (s *TheaterState) Checkpoint() int {
	return len(s.undo)
}

// Rollback implements htn.State.
func (s *TheaterState) Rollback(mark int) {
	for len(s.undo) > mark {
		last := len(s.undo) - 1
		undo := s.undo[last]
		s.undo = s.undo[:last]
		undo()
	}
}

// Commit forgets the undo log. Changes made so far become permanent.
func (s *TheaterState) Commit() {
	s.undo = nil
}

// consume removes a target from set. It reports whether it was present.
func (s *TheaterState) consume(set *TargetSet, id string) bool {
	i, t, ok := set.remove(id)
	if !ok {
		return false
	}
	s.undo = append(s.undo, func() {
		// Threats recorded since are not logged, so only put t back if
		// nothing else did.
		if !set.Contains(t.ID) {
			set.insert(min(i, set.Len()), t)
		}
	})
	return true
}

// mark adds a target to set.
func (s *TheaterState) mark(set *TargetSet, t theater.Target) {
	if !set.add(t) {
		return
	}
	s.undo = append(s.undo, func() { set.remove(t.ID) })
}

func (s *TheaterState) claimAircraft(task domain.FlightType, count int) (string, bool) {
	c := s.ctx.Coalition
	squadron, ok := c.ClaimAircraft(task, count)
	if !ok {
		return "", false
	}
	s.undo = append(s.undo, func() { c.ReleaseAircraft(squadron, count) })
	return squadron, true
}

// recordThreat marks a defense as threatening. It is not logged for undo.
func (s *TheaterState) recordThreat(t theater.Target) {
	s.ThreateningAirDefenses.add(t)
}

// recordThreatsCovering marks every live defense covering target as
// threatening and reports whether there were none.
func (s *TheaterState) recordThreatsCovering(target theater.Target) bool {
	noThreat := true
	for _, defense := range s.EnemyAirDefenses.items {
		if defense.Covers(target) {
			s.recordThreat(defense)
			noThreat = false
		}
	}
	return noThreat
}

// defendedByOtherAirDefense reports whether a live defense other than the
// target itself covers it.
func (s *TheaterState) defendedByOtherAirDefense(target theater.Target) bool {
	return slices.ContainsFunc(s.EnemyAirDefenses.items, func(d theater.Target) bool {
		return d.Covers(target)
	})
}

// startSaturationWave makes every active front eligible for saturation again.
func (s *TheaterState) startSaturationWave() {
	s.SaturatedFrontLines.clear()
}
