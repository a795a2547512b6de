package domain

import "fmt"

// TargetKind is the closed set of things a package can be planned against.
type TargetKind string

const (
	KindFrontLine  TargetKind = "front_line"
	KindAirDefense TargetKind = "air_defense"
	KindShip       TargetKind = "ship"
	KindBuilding   TargetKind = "building"
	KindAirfield   TargetKind = "airfield"
	KindFleet      TargetKind = "fleet"
)

// Validate checks if the target kind is valid
func (k TargetKind) Validate() error {
	switch k {
	case KindFrontLine, KindAirDefense, KindShip, KindBuilding, KindAirfield, KindFleet:
		return nil
	default:
		return fmt.Errorf("invalid target kind %q", string(k))
	}
}

// IsAirBase reports whether aircraft can be based at targets of this kind.
func (k TargetKind) IsAirBase() bool {
	return k == KindAirfield || k == KindFleet
}

func (k TargetKind) String() string {
	return string(k)
}
