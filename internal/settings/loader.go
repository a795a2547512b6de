package settings

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/errors"
)

// Environment variables that override file settings.
const (
	EnvAutoTasking     = "COMMANDER_AUTO_TASKING"
	EnvMissionDuration = "COMMANDER_MISSION_DURATION"
	EnvSaturationWaves = "COMMANDER_SATURATION_WAVES"
)

// fileSettings mirrors the YAML layout. Unset keys keep their defaults.
type fileSettings struct {
	AutoTasking            *string `yaml:"auto_ato_tasking"`
	DesiredMissionDuration *int    `yaml:"desired_mission_duration"`
	AutoASAPPlayerMissions *bool   `yaml:"auto_asap_player_missions"`
	OcaMinAircraft         *int    `yaml:"oca_min_aircraft"`
	SaturationWaves        *int    `yaml:"saturation_waves"`
}

// Load builds settings from defaults, the optional YAML file at path and the
// environment, in that order, and validates the result.
func Load(path string) (*Settings, error) {
	s := Default()

	if path != "" {
		if err := s.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := s.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.NewFileUnmarshalError(path, "dotenv", err)
	}
	return nil
}

func (s *Settings) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileNotFoundError(path)
		}
		return errors.Wrap(errors.ErrCodeFileReadFailed, "read settings", err)
	}

	var f fileSettings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.NewFileUnmarshalError(path, "YAML", err)
	}

	if f.AutoTasking != nil {
		tasking, err := domain.NewAutoTasking(*f.AutoTasking)
		if err != nil {
			return errors.NewSettingsInvalidError(err.Error())
		}
		s.AutoTasking = tasking
	}
	if f.DesiredMissionDuration != nil {
		s.DesiredMissionDuration = time.Duration(*f.DesiredMissionDuration) * time.Minute
	}
	if f.AutoASAPPlayerMissions != nil {
		s.AutoASAPPlayerMissions = *f.AutoASAPPlayerMissions
	}
	if f.OcaMinAircraft != nil {
		s.OcaMinAircraft = *f.OcaMinAircraft
	}
	if f.SaturationWaves != nil {
		s.SaturationWaves = *f.SaturationWaves
	}
	return nil
}

// ApplyEnv overrides settings from COMMANDER_* environment variables.
func (s *Settings) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvAutoTasking); ok && v != "" {
		tasking, err := domain.NewAutoTasking(v)
		if err != nil {
			return errors.NewSettingsInvalidError(EnvAutoTasking + ": " + err.Error())
		}
		s.AutoTasking = tasking
	}
	if v, ok := os.LookupEnv(EnvMissionDuration); ok && v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewSettingsInvalidError(EnvMissionDuration + " must be a whole number of minutes")
		}
		s.DesiredMissionDuration = time.Duration(minutes) * time.Minute
	}
	if v, ok := os.LookupEnv(EnvSaturationWaves); ok && v != "" {
		waves, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewSettingsInvalidError(EnvSaturationWaves + " must be an integer")
		}
		s.SaturationWaves = waves
	}
	return nil
}
