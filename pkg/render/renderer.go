// pkg/render/renderer.go
package render

import (
	"fmt"

	"github.com/opd-ai/go-spacerun/pkg/engine"
)

// Renderer draws one frame at a time. Clear starts a frame and Present
// flushes it.
type Renderer interface {
	Clear()
	RenderShip(ship engine.ShipState)
	RenderProjectile(projectile engine.ProjectileState)
	RenderObstacle(obstacle engine.ObstacleState)
	Present() error
}

// HUDRenderer is implemented by renderers that show the heads-up display
type HUDRenderer interface {
	RenderHUD(hud engine.HUD)
}

// SummaryRenderer is implemented by renderers that show the game over screen
type SummaryRenderer interface {
	RenderSummary(summary engine.Summary) error
}

// Draw renders a frame: obstacles still in play or marked as the crash
// cause, live projectiles, then the ship on top.
func Draw(r Renderer, frame engine.Frame) error {
	r.Clear()
	for _, o := range frame.Obstacles {
		if o.Alive || o.Hit {
			r.RenderObstacle(o)
		}
	}
	for _, p := range frame.Projectiles {
		r.RenderProjectile(p)
	}
	r.RenderShip(frame.Ship)
	if err := r.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", frame.Tick, err)
	}
	return nil
}

// FrameSink adapts a Renderer to engine.Sink
type FrameSink struct {
	renderer Renderer
}

// NewFrameSink wraps r
func NewFrameSink(r Renderer) *FrameSink {
	return &FrameSink{renderer: r}
}

// Frame implements engine.Sink
func (s *FrameSink) Frame(frame engine.Frame) error {
	return Draw(s.renderer, frame)
}

// HUD implements engine.Sink
func (s *FrameSink) HUD(hud engine.HUD) error {
	if h, ok := s.renderer.(HUDRenderer); ok {
		h.RenderHUD(hud)
	}
	return nil
}

// GameOver implements engine.Sink
func (s *FrameSink) GameOver(summary engine.Summary) error {
	if r, ok := s.renderer.(SummaryRenderer); ok {
		return r.RenderSummary(summary)
	}
	return nil
}
