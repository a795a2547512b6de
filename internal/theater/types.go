// Package theater models the campaign theater as a snapshot the commander
// plans against: control points, their ground objects and the front lines
// between them.
package theater

import (
	"math"

	"github.com/felixgeelhaar/commander/internal/domain"
)

// Point is a planar position in nautical miles.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// DistanceTo returns the distance between two points in nautical miles.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Midpoint returns the point halfway between p and other.
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// ControlPointKind classifies a control point.
type ControlPointKind string

const (
	ControlPointAirfield ControlPointKind = "airfield"
	ControlPointFleet    ControlPointKind = "fleet"
	ControlPointFob      ControlPointKind = "fob"
	ControlPointOffMap   ControlPointKind = "off_map"
)

// GroundObjectKind classifies a ground object.
type GroundObjectKind string

const (
	GroundObjectAirDefense   GroundObjectKind = "air_defense"
	GroundObjectShip         GroundObjectKind = "ship"
	GroundObjectBuilding     GroundObjectKind = "building"
	GroundObjectIadsBuilding GroundObjectKind = "iads_building"
)

// Snapshot is the state of the theater at the start of a turn.
type Snapshot struct {
	Name          string         `yaml:"name"`
	Turn          int            `yaml:"turn"`
	ControlPoints []ControlPoint `yaml:"control_points"`
	FrontLines    []FrontLine    `yaml:"front_lines,omitempty"`
}

// ControlPoint is an airfield, fleet, FOB or off-map spawn owned by one side.
type ControlPoint struct {
	ID                       string           `yaml:"id"`
	Name                     string           `yaml:"name"`
	Side                     domain.Side      `yaml:"side"`
	Kind                     ControlPointKind `yaml:"kind"`
	Position                 Point            `yaml:"position"`
	RunwayOperational        bool             `yaml:"runway_operational"`
	AircraftPresent          int              `yaml:"aircraft_present"`
	DeployableFrontLineUnits int              `yaml:"deployable_front_line_units"`
	Destroyed                bool             `yaml:"destroyed"`
	GroundObjects            []GroundObject   `yaml:"ground_objects,omitempty"`
	Squadrons                []Squadron       `yaml:"squadrons,omitempty"`
}

// Squadron is an air unit based at a control point.
type Squadron struct {
	Name     string              `yaml:"name"`
	Aircraft int                 `yaml:"aircraft"`
	Tasks    []domain.FlightType `yaml:"tasks"`
}

// IsFleet reports whether the control point is a naval group.
func (cp ControlPoint) IsFleet() bool {
	return cp.Kind == ControlPointFleet
}

// GroundObject is a site belonging to a control point.
type GroundObject struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Kind     GroundObjectKind `yaml:"kind"`
	Position Point            `yaml:"position"`
	Dead     bool             `yaml:"dead"`
	// RadarSAM marks air defenses with a live radar-guided SAM.
	RadarSAM bool `yaml:"radar_sam"`
	// ThreatRange is the engagement range in nautical miles.
	ThreatRange float64 `yaml:"threat_range"`
	// Detected marks air defenses that detected friendly aircraft last turn.
	Detected bool `yaml:"detected"`
	// ControlPointStructure marks the structure that is the control point
	// itself (a FOB), which cannot be targeted.
	ControlPointStructure bool `yaml:"control_point_structure"`
}

// FrontLine is a contested boundary between two control points of
// opposing sides.
type FrontLine struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	ControlPoints [2]string `yaml:"control_points"`
}
