// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// ShipStats contains the fixed geometry and control tuning of the ship
type ShipStats struct {
	Width        float64
	Height       float64
	RotateStep   int
	ThrustMin    int
	ThrustMax    int
	ThrustStep   int
	MuzzleOffset float64
}

// DefaultShipStats matches the original arcade tuning
func DefaultShipStats() ShipStats {
	return ShipStats{
		Width:        40,
		Height:       50,
		RotateStep:   15,
		ThrustMin:    15,
		ThrustMax:    60,
		ThrustStep:   3,
		MuzzleOffset: 17,
	}
}

// Ship is the player's ship. Heading is kept in degrees and accumulates in
// RotateStep increments without being normalized.
type Ship struct {
	Position physics.Vector2D
	Heading  int
	Velocity int
	Fuel     int
	Ammo     int
	Health   int

	// Thrust is the exhaust intensity shown by the client, clamped to
	// [ThrustMin, ThrustMax]. It drops to zero once the tank is empty.
	Thrust  int
	Crashed bool

	Stats ShipStats
}

// NewShip creates a ship at position with the given supplies
func NewShip(position physics.Vector2D, fuel, ammo, health int, stats ShipStats) *Ship {
	return &Ship{
		Position: position,
		Fuel:     max(fuel, 0),
		Ammo:     max(ammo, 0),
		Health:   max(health, 0),
		Thrust:   stats.ThrustMin,
		Stats:    stats,
	}
}

// Bounds returns the ship's collision box
func (s *Ship) Bounds() physics.Rect {
	return physics.RectAt(s.Position, s.Stats.Width, s.Stats.Height)
}

// Move advances the ship one tick at its current velocity and heading
func (s *Ship) Move() {
	s.Position = physics.Advance(s.Position, float64(s.Velocity), float64(s.Heading))
}

// ThrustUp burns one unit of fuel to gain one unit of speed
func (s *Ship) ThrustUp() bool {
	if s.Fuel <= 0 {
		return false
	}
	s.Fuel--
	s.Velocity++
	s.Thrust = min(s.Thrust+s.Stats.ThrustStep, s.Stats.ThrustMax)
	return true
}

// ThrustDown burns one unit of fuel to shed one unit of speed. A ship that
// is not moving forward keeps its fuel.
func (s *Ship) ThrustDown() bool {
	if s.Fuel <= 0 || s.Velocity <= 0 {
		return false
	}
	s.Fuel--
	s.Velocity--
	s.Thrust = max(s.Thrust-s.Stats.ThrustStep, s.Stats.ThrustMin)
	return true
}

// RotateLeft turns the ship counter-clockwise by one step
func (s *Ship) RotateLeft() bool {
	return s.rotate(-s.Stats.RotateStep)
}

// RotateRight turns the ship clockwise by one step
func (s *Ship) RotateRight() bool {
	return s.rotate(s.Stats.RotateStep)
}

func (s *Ship) rotate(delta int) bool {
	if s.Fuel <= 0 {
		return false
	}
	s.Fuel--
	s.Heading += delta
	return true
}

// Fire spends one round and returns the new projectile, or nil when the
// magazine is empty.
func (s *Ship) Fire(id ID) *Projectile {
	if s.Ammo <= 0 {
		return nil
	}
	s.Ammo--
	muzzle := s.Position.Add(physics.Vector2D{X: s.Stats.MuzzleOffset})
	return NewProjectile(id, muzzle, s.Heading)
}

// TakeHit removes one point of health. It reports false when the ship had
// nothing left to lose.
func (s *Ship) TakeHit() bool {
	if s.Health <= 0 {
		return false
	}
	s.Health--
	return true
}

// CutThrust clears the exhaust effect
func (s *Ship) CutThrust() {
	s.Thrust = 0
}
