package ato

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// canonicalPackage is the digest form of a package. Package IDs are random
// and left out so that equal plans from equal seeds hash the same.
type canonicalPackage struct {
	PrimaryTask    string            `json:"primary_task"`
	Target         string            `json:"target"`
	Flights        []canonicalFlight `json:"flights"`
	TimeOverTarget int64             `json:"tot_seconds"`
	AutoASAP       bool              `json:"auto_asap"`
	Origin         string            `json:"origin"`
}

type canonicalFlight struct {
	Type     string `json:"type"`
	Count    int    `json:"count"`
	Squadron string `json:"squadron"`
	Escort   bool   `json:"escort"`
}

// Canonicalize returns a stable JSON representation of the order.
func Canonicalize(o *AirTaskingOrder) ([]byte, error) {
	packages := make([]canonicalPackage, 0, len(o.Packages))
	for _, p := range o.Packages {
		flights := make([]canonicalFlight, 0, len(p.Flights))
		for _, f := range p.Flights {
			flights = append(flights, canonicalFlight{
				Type:     string(f.Type),
				Count:    f.Count,
				Squadron: f.Squadron,
				Escort:   f.Escort,
			})
		}
		packages = append(packages, canonicalPackage{
			PrimaryTask:    string(p.PrimaryTask),
			Target:         p.Target.ID,
			Flights:        flights,
			TimeOverTarget: int64(p.TimeOverTarget.Seconds()),
			AutoASAP:       p.AutoASAP,
			Origin:         string(p.Origin),
		})
	}

	return json.Marshal(struct {
		Side     string             `json:"side"`
		Packages []canonicalPackage `json:"packages"`
	}{Side: string(o.Side), Packages: packages})
}

// Digest computes the blake3 hash of the canonicalized order.
func Digest(o *AirTaskingOrder) (string, error) {
	canonical, err := Canonicalize(o)
	if err != nil {
		return "", fmt.Errorf("canonicalize ato: %w", err)
	}

	hasher := blake3.New()
	if _, err := hasher.Write(canonical); err != nil {
		return "", fmt.Errorf("hash ato: %w", err)
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
