package domain

import (
	"fmt"
	"strings"
)

// AutoTasking is the restriction level applied to automatic package planning.
// Levels are ordered: AirDefence < Limited < Full.
type AutoTasking string

// Valid tasking levels
const (
	TaskingAirDefence AutoTasking = "air_defence" // AEW&C, refueling and BARCAP only
	TaskingLimited    AutoTasking = "limited"     // adds CAS
	TaskingFull       AutoTasking = "full"        // all tasks
)

// NewAutoTasking creates a new AutoTasking value object with validation
func NewAutoTasking(value string) (AutoTasking, error) {
	t := AutoTasking(strings.ToLower(strings.TrimSpace(value)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks if the tasking level is valid
func (t AutoTasking) Validate() error {
	switch t {
	case TaskingAirDefence, TaskingLimited, TaskingFull:
		return nil
	default:
		return fmt.Errorf("invalid auto tasking %q: must be air_defence, limited, or full", string(t))
	}
}

// String returns the string representation
func (t AutoTasking) String() string {
	return string(t)
}

// Permits reports whether a task that needs at least the given level may run
// under this restriction.
func (t AutoTasking) Permits(minimum AutoTasking) bool {
	return taskingRank(t) >= taskingRank(minimum)
}

// taskingRank returns the numeric rank of a tasking level (higher = less restricted)
func taskingRank(t AutoTasking) int {
	switch t {
	case TaskingAirDefence:
		return 1
	case TaskingLimited:
		return 2
	case TaskingFull:
		return 3
	default:
		return 0
	}
}
