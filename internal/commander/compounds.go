package commander

import (
	"iter"

	"github.com/felixgeelhaar/commander/internal/htn"
	"github.com/felixgeelhaar/commander/internal/theater"
)

type (
	// Task is a node of the commander's task network.
	Task = htn.Task[*TheaterState]
	// Method is one decomposition of a compound task.
	Method = htn.Method[*TheaterState]
)

// perTarget yields one single-task method per target, building the task
// only when the method is pulled.
func perTarget(targets []theater.Target, build func(theater.Target) (*PackageTask, error)) iter.Seq2[Method, error] {
	return func(yield func(Method, error) bool) {
		for _, t := range targets {
			task, err := build(t)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(Method{task}, nil) {
				return
			}
		}
	}
}

// PlanNextAction is the root task. Its methods are tried in priority order.
type PlanNextAction struct{}

func (PlanNextAction) Name() string { return "PlanNextAction" }

func (PlanNextAction) EachValidMethod(*TheaterState) iter.Seq2[Method, error] {
	return htn.Methods(
		Method{TheaterSupport{}},
		Method{ProtectAirSpace{}},
		Method{DefendFrontLines{}},
		Method{DegradeIads{}},
		Method{AttackAirInfrastructure{}},
		Method{AttackBuildings{}},
	)
}

// TheaterSupport plans AEW&C orbits, then tanker tracks.
type TheaterSupport struct{}

func (TheaterSupport) Name() string { return "TheaterSupport" }

func (TheaterSupport) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	aewc := perTarget(state.AewcTargets.Items(), NewPlanAewc)
	refueling := perTarget(state.RefuelingTargets.Items(), NewPlanRefueling)
	return func(yield func(Method, error) bool) {
		for m, err := range aewc {
			if !yield(m, err) || err != nil {
				return
			}
		}
		for m, err := range refueling {
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

// ProtectAirSpace plans BARCAP over friendly bases within reach of enemy
// aircraft.
type ProtectAirSpace struct{}

func (ProtectAirSpace) Name() string { return "ProtectAirSpace" }

func (ProtectAirSpace) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	return perTarget(state.BarcapTargets.Items(), NewPlanBarcap)
}

// DefendFrontLines plans CAS over a vulnerable front.
type DefendFrontLines struct{}

func (DefendFrontLines) Name() string { return "DefendFrontLines" }

func (DefendFrontLines) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	return perTarget(state.VulnerableFrontLines.Items(), func(t theater.Target) (*PackageTask, error) {
		return NewPlanCas(t, false)
	})
}

// SaturateFrontLines plans extra CAS over active fronts not yet covered in
// the current wave.
type SaturateFrontLines struct{}

func (SaturateFrontLines) Name() string { return "SaturateFrontLines" }

func (SaturateFrontLines) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	var fronts []theater.Target
	for _, t := range state.ActiveFrontLines.Items() {
		if !state.SaturatedFrontLines.Contains(t.ID) {
			fronts = append(fronts, t)
		}
	}
	return perTarget(fronts, func(t theater.Target) (*PackageTask, error) {
		return NewPlanCas(t, true)
	})
}

// DegradeIads attacks enemy air defenses found threatening while planning:
// radar guided sites first, then the remaining sites, then sites that
// detected friendly aircraft.
type DegradeIads struct{}

func (DegradeIads) Name() string { return "DegradeIads" }

func (DegradeIads) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	var radar, other []theater.Target
	for _, t := range state.ThreateningAirDefenses.Items() {
		if t.HasLiveRadarSAM {
			radar = append(radar, t)
		} else {
			other = append(other, t)
		}
	}

	candidates := newTargetSet(append(radar, other...))
	for _, t := range state.DetectingAirDefenses.Items() {
		candidates.add(t)
	}

	return perTarget(candidates.Items(), planAgainstDefense)
}

// AttackAirInfrastructure plans offensive counter-air against enemy bases.
type AttackAirInfrastructure struct{}

func (AttackAirInfrastructure) Name() string { return "AttackAirInfrastructure" }

func (AttackAirInfrastructure) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	return perTarget(state.OcaTargets.Items(), NewPlanOcaStrike)
}

// AttackBuildings plans strikes against enemy structures.
type AttackBuildings struct{}

func (AttackBuildings) Name() string { return "AttackBuildings" }

func (AttackBuildings) EachValidMethod(state *TheaterState) iter.Seq2[Method, error] {
	return perTarget(state.StrikeTargets.Items(), NewPlanStrike)
}
