package theater

import "github.com/felixgeelhaar/commander/internal/domain"

// Target is the handle the planner operates on. It is a value: the planner
// never mutates the theater through it.
type Target struct {
	ID       string            `yaml:"id" json:"id"`
	Name     string            `yaml:"name" json:"name"`
	Kind     domain.TargetKind `yaml:"kind" json:"kind"`
	Position Point             `yaml:"position" json:"position"`

	// Air defenses and ships.
	HasLiveRadarSAM bool    `yaml:"radar_sam,omitempty" json:"radar_sam,omitempty"`
	ThreatRange     float64 `yaml:"threat_range,omitempty" json:"threat_range,omitempty"`

	// Airfields and fleets.
	RunwayOperational bool `yaml:"runway_operational,omitempty" json:"runway_operational,omitempty"`
	AircraftPresent   int  `yaml:"aircraft_present,omitempty" json:"aircraft_present,omitempty"`

	// Front lines: ground units the enemy can still commit at this front.
	EnemyDeployableUnits int `yaml:"enemy_deployable_units,omitempty" json:"enemy_deployable_units,omitempty"`

	// DistanceToFriendly is the distance to the closest friendly control point.
	DistanceToFriendly float64 `yaml:"distance_to_friendly" json:"distance_to_friendly"`
}

// Covers reports whether a defense at t engages the given target.
func (t Target) Covers(other Target) bool {
	if t.ID == other.ID || t.ThreatRange <= 0 {
		return false
	}
	return t.Position.DistanceTo(other.Position) <= t.ThreatRange
}

func (t Target) String() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
