// Package commander plans mission packages for one side of the theater by
// decomposing campaign goals with an HTN planner.
package commander

import (
	"math/rand/v2"

	"github.com/felixgeelhaar/commander/internal/coalition"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/scheduler"
	"github.com/felixgeelhaar/commander/internal/settings"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// Context is the immutable input of one planning pass.
type Context struct {
	Side      domain.Side
	Turn      int
	Settings  *settings.Settings
	Rand      *rand.Rand
	Coalition *coalition.Coalition
}

// NewContext creates a planning context whose random source is seeded with
// seed, so equal inputs produce equal plans.
func NewContext(side domain.Side, turn int, s *settings.Settings, seed uint64, c *coalition.Coalition) *Context {
	return &Context{
		Side:      side,
		Turn:      turn,
		Settings:  s,
		Rand:      scheduler.NewRand(seed),
		Coalition: c,
	}
}

// ObjectiveFinder supplies ranked candidate targets for the planning side.
// The planner treats the returned slices as read-only.
type ObjectiveFinder interface {
	VulnerableFrontLines() []theater.Target
	ActiveFrontLines() []theater.Target
	EnemyAirDefenses() []theater.Target
	DetectingAirDefenses() []theater.Target
	ThreateningShips() []theater.Target
	StrikeTargets() []theater.Target
	OcaTargets(minAircraft int) []theater.Target
	EnemyAirBases() []theater.Target

	// Friendly bases to cover with patrols, surveillance and tankers.
	BarcapTargets() []theater.Target
	AewcTargets() []theater.Target
	RefuelingTargets() []theater.Target
}
