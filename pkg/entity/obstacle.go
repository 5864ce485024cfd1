// pkg/entity/obstacle.go
package entity

import (
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Obstacle is a drifting rock announced by the spawn feed. Obstacles are
// flagged, never removed, when they leave play.
type Obstacle struct {
	ID     ID
	Handle Handle
	Bounds physics.Rect
	Alive  bool

	// Hit marks the obstacle that ended the session.
	Hit bool
}

// NewObstacle creates a live obstacle
func NewObstacle(id ID, handle Handle, bounds physics.Rect) *Obstacle {
	return &Obstacle{
		ID:     id,
		Handle: handle,
		Bounds: bounds,
		Alive:  true,
	}
}

// Hide takes the obstacle out of play
func (o *Obstacle) Hide() {
	o.Alive = false
}

// MarkHit flags the obstacle as the one the ship crashed into
func (o *Obstacle) MarkHit() {
	o.Hit = true
}
