// Package ato models mission packages and the air-tasking order they are
// collected in.
package ato

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/commander/internal/domain"
	"github.com/felixgeelhaar/commander/internal/theater"
)

// Origin records who created a package.
type Origin string

const (
	OriginPlanned Origin = "planned"
	OriginManual  Origin = "manual"
)

// TargetRef identifies the objective a package flies against.
type TargetRef struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Kind     domain.TargetKind `yaml:"kind"`
	Position theater.Point     `yaml:"position"`
}

// NewTargetRef creates a reference to a planning target.
func NewTargetRef(t theater.Target) TargetRef {
	return TargetRef{ID: t.ID, Name: t.Name, Kind: t.Kind, Position: t.Position}
}

// Flight is a group of aircraft with a single task inside a package.
type Flight struct {
	Type     domain.FlightType `yaml:"type"`
	Count    int               `yaml:"count"`
	Squadron string            `yaml:"squadron,omitempty"`
	Escort   bool              `yaml:"escort,omitempty"`
}

// Package is a group of flights working together against one target.
type Package struct {
	ID          string            `yaml:"id"`
	PrimaryTask domain.FlightType `yaml:"primary_task"`
	Target      TargetRef         `yaml:"target"`
	Flights     []Flight          `yaml:"flights,omitempty"`

	// TimeOverTarget is measured from mission start.
	TimeOverTarget time.Duration `yaml:"time_over_target"`
	AutoASAP       bool          `yaml:"auto_asap,omitempty"`

	// Distance from the nearest friendly base to the target, in nm.
	Distance float64 `yaml:"distance"`
	Origin   Origin  `yaml:"origin"`
}

// NewPackage creates a planned package with a fresh identifier.
func NewPackage(primary domain.FlightType, target theater.Target) *Package {
	return &Package{
		ID:          uuid.New().String(),
		PrimaryTask: primary,
		Target:      NewTargetRef(target),
		Distance:    target.DistanceToFriendly,
		Origin:      OriginPlanned,
	}
}

// AddFlight appends a flight to the package.
func (p *Package) AddFlight(f Flight) {
	p.Flights = append(p.Flights, f)
}

// AircraftCount returns the number of aircraft across all flights.
func (p *Package) AircraftCount() int {
	total := 0
	for _, f := range p.Flights {
		total += f.Count
	}
	return total
}

// HasFlights reports whether any flight has been declared.
func (p *Package) HasFlights() bool {
	return len(p.Flights) > 0
}

// Validate checks the package structure.
func (p *Package) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("package id is required")
	}
	if err := p.PrimaryTask.Validate(); err != nil {
		return fmt.Errorf("package %s: %w", p.ID, err)
	}
	if p.TimeOverTarget < 0 {
		return fmt.Errorf("package %s: negative time over target", p.ID)
	}
	for i, f := range p.Flights {
		if err := f.Type.Validate(); err != nil {
			return fmt.Errorf("package %s flight %d: %w", p.ID, i, err)
		}
		if f.Count <= 0 {
			return fmt.Errorf("package %s flight %d: count must be positive", p.ID, i)
		}
	}
	return nil
}

func (p *Package) String() string {
	return fmt.Sprintf("%s %s", p.PrimaryTask, p.Target.Name)
}

// AirTaskingOrder is the ordered list of a side's packages.
type AirTaskingOrder struct {
	Side     domain.Side `yaml:"side"`
	Packages []*Package  `yaml:"packages"`
}

// NewAirTaskingOrder creates an empty order for side.
func NewAirTaskingOrder(side domain.Side) *AirTaskingOrder {
	return &AirTaskingOrder{Side: side}
}

// Add appends a package.
func (o *AirTaskingOrder) Add(p *Package) {
	o.Packages = append(o.Packages, p)
}

// Len returns the number of packages.
func (o *AirTaskingOrder) Len() int {
	return len(o.Packages)
}

// Validate checks every package and the uniqueness of their identifiers.
func (o *AirTaskingOrder) Validate() error {
	if err := o.Side.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(o.Packages))
	for _, p := range o.Packages {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate package id %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
