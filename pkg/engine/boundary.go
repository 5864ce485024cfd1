// pkg/engine/boundary.go
package engine

import (
	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/entity"
)

// Boundary applies the field edges to the ship and to projectiles
type Boundary struct {
	Width            float64
	Height           float64
	ShipMargin       float64
	WrapInset        float64
	ProjectileMargin float64
}

// NewBoundary builds the boundary policy for a field
func NewBoundary(cfg *config.GameConfig) Boundary {
	return Boundary{
		Width:            cfg.Field.Width,
		Height:           cfg.Field.Height,
		ShipMargin:       cfg.Boundary.ShipMargin,
		WrapInset:        cfg.Boundary.WrapInset,
		ProjectileMargin: cfg.Projectile.Margin,
	}
}

// WrapShip moves a ship that crossed an edge to the opposite side. Only the
// first matching edge is applied per tick, checked right, left, top, bottom.
// Velocity and heading are untouched.
func (b Boundary) WrapShip(ship *entity.Ship) bool {
	pos := &ship.Position
	switch {
	case pos.X+b.ShipMargin > b.Width:
		pos.X = b.WrapInset
	case pos.X < -b.ShipMargin:
		pos.X = b.Width - b.WrapInset
	case pos.Y < -b.ShipMargin:
		pos.Y = b.Height - b.WrapInset
	case pos.Y+b.ShipMargin > b.Height:
		pos.Y = b.WrapInset
	default:
		return false
	}
	return true
}

// CullProjectile kills a projectile that left the field
func (b Boundary) CullProjectile(p *entity.Projectile) bool {
	if !p.Alive {
		return false
	}
	pos := p.Position
	m := b.ProjectileMargin
	if pos.X+m > b.Width || pos.X < -m || pos.Y < -m || pos.Y+m > b.Height {
		p.Kill()
		return true
	}
	return false
}
