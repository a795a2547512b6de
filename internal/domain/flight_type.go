package domain

import "fmt"

// FlightType is the primary task of a flight or package.
type FlightType string

const (
	FlightAEWC        FlightType = "AEWC"
	FlightBARCAP      FlightType = "BARCAP"
	FlightTARCAP      FlightType = "TARCAP"
	FlightCAS         FlightType = "CAS"
	FlightDEAD        FlightType = "DEAD"
	FlightSEAD        FlightType = "SEAD"
	FlightSEADEscort  FlightType = "SEAD_ESCORT"
	FlightEscort      FlightType = "ESCORT"
	FlightAntiShip    FlightType = "ANTISHIP"
	FlightStrike      FlightType = "STRIKE"
	FlightOCARunway   FlightType = "OCA_RUNWAY"
	FlightOCAAircraft FlightType = "OCA_AIRCRAFT"
	FlightSweep       FlightType = "SWEEP"
	FlightAirAssault  FlightType = "AIR_ASSAULT"
	FlightBAI         FlightType = "BAI"
	FlightRefueling   FlightType = "REFUELING"
)

var knownFlightTypes = map[FlightType]struct{}{
	FlightAEWC: {}, FlightBARCAP: {}, FlightTARCAP: {}, FlightCAS: {},
	FlightDEAD: {}, FlightSEAD: {}, FlightSEADEscort: {}, FlightEscort: {},
	FlightAntiShip: {}, FlightStrike: {}, FlightOCARunway: {}, FlightOCAAircraft: {},
	FlightSweep: {}, FlightAirAssault: {}, FlightBAI: {}, FlightRefueling: {},
}

// Validate checks if the flight type is known
func (f FlightType) Validate() error {
	if _, ok := knownFlightTypes[f]; !ok {
		return fmt.Errorf("unknown flight type %q", string(f))
	}
	return nil
}

// IsPatrol reports whether flights of this type hold a combat air patrol
// that must be relieved on station.
func (f FlightType) IsPatrol() bool {
	return f == FlightBARCAP || f == FlightTARCAP
}

func (f FlightType) String() string {
	return string(f)
}
