// Package settings holds the game settings the commander reads during a
// planning pass.
package settings

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
)

// Mission duration bounds. Packages are spread over the desired duration; at
// the minimum every package flies as soon as possible.
const (
	MinimumMissionDuration = 30 * time.Minute
	MaximumMissionDuration = 150 * time.Minute
)

// DefaultOcaMinAircraft is the number of aircraft an enemy base needs to
// host before it is worth an offensive counter-air package.
const DefaultOcaMinAircraft = 20

// Settings are the game settings relevant to automatic planning.
type Settings struct {
	AutoTasking            domain.AutoTasking
	DesiredMissionDuration time.Duration
	AutoASAPPlayerMissions bool
	OcaMinAircraft         int

	// SaturationWaves is how many extra CAS waves are planned over every
	// active front after the prioritized plan is exhausted.
	SaturationWaves int
}

// Default returns the settings used when no file is supplied.
func Default() *Settings {
	return &Settings{
		AutoTasking:            domain.TaskingFull,
		DesiredMissionDuration: 60 * time.Minute,
		OcaMinAircraft:         DefaultOcaMinAircraft,
	}
}

// Validate checks that the settings can drive a planning pass.
func (s *Settings) Validate() error {
	if err := s.AutoTasking.Validate(); err != nil {
		return errors.NewSettingsInvalidError(err.Error())
	}
	if s.DesiredMissionDuration < MinimumMissionDuration || s.DesiredMissionDuration > MaximumMissionDuration {
		return errors.NewSettingsInvalidError(fmt.Sprintf(
			"desired mission duration %s outside [%s, %s]",
			s.DesiredMissionDuration, MinimumMissionDuration, MaximumMissionDuration))
	}
	if s.OcaMinAircraft < 0 {
		return errors.NewSettingsInvalidError("oca_min_aircraft must not be negative")
	}
	if s.SaturationWaves < 0 {
		return errors.NewSettingsInvalidError("saturation_waves must not be negative")
	}
	return nil
}

// ScheduleAllASAP reports whether every package should fly as soon as
// possible instead of being spread across the mission.
func (s *Settings) ScheduleAllASAP() bool {
	return s.DesiredMissionDuration == MinimumMissionDuration
}
