// pkg/entity/projectile.go
package entity

import (
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Projectile box size
const (
	ProjectileWidth  = 4
	ProjectileHeight = 6
)

// Projectile is a missile fired by the ship. Its heading is fixed at launch.
type Projectile struct {
	ID       ID
	Position physics.Vector2D
	Alive    bool

	heading int
}

// NewProjectile creates a live projectile
func NewProjectile(id ID, position physics.Vector2D, heading int) *Projectile {
	return &Projectile{
		ID:       id,
		Position: position,
		Alive:    true,
		heading:  heading,
	}
}

// Heading returns the launch heading in degrees
func (p *Projectile) Heading() int {
	return p.heading
}

// Move advances a live projectile one tick at speed
func (p *Projectile) Move(speed float64) {
	if !p.Alive {
		return
	}
	p.Position = physics.Advance(p.Position, speed, float64(p.heading))
}

// Bounds returns the projectile's collision box
func (p *Projectile) Bounds() physics.Rect {
	return physics.RectAt(p.Position, ProjectileWidth, ProjectileHeight)
}

// Kill takes the projectile out of play
func (p *Projectile) Kill() {
	p.Alive = false
}
