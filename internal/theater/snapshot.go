package theater

import (
	"fmt"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
)

// Validate checks identifiers and cross references.
func (s *Snapshot) Validate() error {
	ids := make(map[string]bool)
	claim := func(id, what string) error {
		if id == "" {
			return errors.NewTheaterInvalidError(fmt.Sprintf("%s has an empty id", what))
		}
		if ids[id] {
			return errors.NewTheaterInvalidError(fmt.Sprintf("duplicate id %q", id))
		}
		ids[id] = true
		return nil
	}

	for _, cp := range s.ControlPoints {
		if err := claim(cp.ID, "control point"); err != nil {
			return err
		}
		if err := cp.Side.Validate(); err != nil {
			return errors.NewTheaterInvalidError(fmt.Sprintf("control point %s: %v", cp.ID, err))
		}
		switch cp.Kind {
		case ControlPointAirfield, ControlPointFleet, ControlPointFob, ControlPointOffMap:
		default:
			return errors.NewTheaterInvalidError(fmt.Sprintf("control point %s has unknown kind %q", cp.ID, cp.Kind))
		}
		for _, g := range cp.GroundObjects {
			if err := claim(g.ID, "ground object at "+cp.ID); err != nil {
				return err
			}
			switch g.Kind {
			case GroundObjectAirDefense, GroundObjectShip, GroundObjectBuilding, GroundObjectIadsBuilding:
			default:
				return errors.NewTheaterInvalidError(fmt.Sprintf("ground object %s has unknown kind %q", g.ID, g.Kind))
			}
		}
		for _, sq := range cp.Squadrons {
			if sq.Name == "" || sq.Aircraft < 0 {
				return errors.NewTheaterInvalidError(fmt.Sprintf("control point %s has an invalid squadron", cp.ID))
			}
			for _, task := range sq.Tasks {
				if err := task.Validate(); err != nil {
					return errors.NewTheaterInvalidError(fmt.Sprintf("squadron %s: %v", sq.Name, err))
				}
			}
		}
	}

	for _, fl := range s.FrontLines {
		if err := claim(fl.ID, "front line"); err != nil {
			return err
		}
		a, okA := s.ControlPoint(fl.ControlPoints[0])
		b, okB := s.ControlPoint(fl.ControlPoints[1])
		if !okA || !okB {
			return errors.NewTheaterInvalidError(fmt.Sprintf("front line %s references an unknown control point", fl.ID))
		}
		if a.Side == b.Side {
			return errors.NewTheaterInvalidError(fmt.Sprintf("front line %s joins two %s control points", fl.ID, a.Side))
		}
	}

	return nil
}

// ControlPoint looks up a control point by id.
func (s *Snapshot) ControlPoint(id string) (ControlPoint, bool) {
	for _, cp := range s.ControlPoints {
		if cp.ID == id {
			return cp, true
		}
	}
	return ControlPoint{}, false
}

// ControlPointsFor returns the control points owned by side, in snapshot order.
func (s *Snapshot) ControlPointsFor(side domain.Side) []ControlPoint {
	var out []ControlPoint
	for _, cp := range s.ControlPoints {
		if cp.Side == side {
			out = append(out, cp)
		}
	}
	return out
}

// FrontLineEnds returns the control point on each side of a front line.
func (s *Snapshot) FrontLineEnds(fl FrontLine, side domain.Side) (friendly, enemy ControlPoint, ok bool) {
	a, okA := s.ControlPoint(fl.ControlPoints[0])
	b, okB := s.ControlPoint(fl.ControlPoints[1])
	if !okA || !okB {
		return ControlPoint{}, ControlPoint{}, false
	}
	switch side {
	case a.Side:
		return a, b, true
	case b.Side:
		return b, a, true
	}
	return ControlPoint{}, ControlPoint{}, false
}

// FrontLinePosition is the midpoint between the two control points.
func (s *Snapshot) FrontLinePosition(fl FrontLine) Point {
	a, _ := s.ControlPoint(fl.ControlPoints[0])
	b, _ := s.ControlPoint(fl.ControlPoints[1])
	return a.Position.Midpoint(b.Position)
}
