// Package coalition tracks the assets and orders of one side during
// planning.
package coalition

import (
	"fmt"
	"slices"

	"github.com/felixgeelhaar/commander/internal/ato"
	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// Squadron is a pool of aircraft able to fly a set of tasks.
type Squadron struct {
	Name      string
	Base      string
	Tasks     []domain.FlightType
	Available int
}

// CanFly reports whether the squadron is capable of the task.
func (s *Squadron) CanFly(task domain.FlightType) bool {
	return slices.Contains(s.Tasks, task)
}

// ProcurementRequest asks for aircraft that could not be found for a
// planned package.
type ProcurementRequest struct {
	Task     domain.FlightType `yaml:"task" json:"task"`
	Count    int               `yaml:"count" json:"count"`
	TargetID string            `yaml:"target" json:"target"`
}

func (r ProcurementRequest) String() string {
	return fmt.Sprintf("%d x %s for %s", r.Count, r.Task, r.TargetID)
}

// Coalition is one side's squadrons, air-tasking order and procurement
// requests.
type Coalition struct {
	side        domain.Side
	order       *ato.AirTaskingOrder
	squadrons   []*Squadron
	procurement []ProcurementRequest
}

// New creates a coalition with an empty air-tasking order.
func New(side domain.Side, squadrons ...*Squadron) *Coalition {
	return &Coalition{
		side:      side,
		order:     ato.NewAirTaskingOrder(side),
		squadrons: squadrons,
	}
}

// FromSnapshot creates a coalition from the squadrons based at the side's
// surviving control points.
func FromSnapshot(snapshot *theater.Snapshot, side domain.Side) *Coalition {
	var squadrons []*Squadron
	for _, cp := range snapshot.ControlPointsFor(side) {
		if cp.Destroyed {
			continue
		}
		for _, sq := range cp.Squadrons {
			squadrons = append(squadrons, &Squadron{
				Name:      sq.Name,
				Base:      cp.ID,
				Tasks:     slices.Clone(sq.Tasks),
				Available: sq.Aircraft,
			})
		}
	}
	return New(side, squadrons...)
}

// Side returns the coalition's side.
func (c *Coalition) Side() domain.Side {
	return c.side
}

// ATO returns the coalition's air-tasking order.
func (c *Coalition) ATO() *ato.AirTaskingOrder {
	return c.order
}

// UseATO replaces the air-tasking order, e.g. with one loaded from disk.
func (c *Coalition) UseATO(order *ato.AirTaskingOrder) {
	c.order = order
}

// Squadrons returns the coalition's squadrons.
func (c *Coalition) Squadrons() []*Squadron {
	return c.squadrons
}

// AvailableAircraft returns the number of unclaimed aircraft.
func (c *Coalition) AvailableAircraft() int {
	total := 0
	for _, s := range c.squadrons {
		total += s.Available
	}
	return total
}

// ClaimAircraft reserves count aircraft for task from the first capable
// squadron with enough of them.
func (c *Coalition) ClaimAircraft(task domain.FlightType, count int) (squadron string, ok bool) {
	for _, s := range c.squadrons {
		if s.CanFly(task) && s.Available >= count {
			s.Available -= count
			return s.Name, true
		}
	}
	return "", false
}

// ReleaseAircraft returns previously claimed aircraft to a squadron.
func (c *Coalition) ReleaseAircraft(squadron string, count int) {
	for _, s := range c.squadrons {
		if s.Name == squadron {
			s.Available += count
			return
		}
	}
}

// RequestProcurement records that more aircraft are needed. Repeated
// requests for the same task and target are kept once.
func (c *Coalition) RequestProcurement(req ProcurementRequest) {
	for _, existing := range c.procurement {
		if existing.Task == req.Task && existing.TargetID == req.TargetID {
			return
		}
	}
	c.procurement = append(c.procurement, req)
}

// ProcurementRequests returns the recorded requests in order.
func (c *Coalition) ProcurementRequests() []ProcurementRequest {
	return c.procurement
}
