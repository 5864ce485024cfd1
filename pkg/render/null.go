// pkg/render/null.go
package render

import (
	"context"

	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/logging"
)

// NullRenderer draws nothing and logs every call at debug level. It backs
// headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer logging to logger
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.frames++
	d.logger.Debug(context.Background(), "frame presented", "frames", d.frames)
	return nil
}

// RenderShip implements Renderer.
func (d *NullRenderer) RenderShip(ship engine.ShipState) {
	d.logger.Debug(context.Background(), "RenderShip called",
		"x", ship.Position.X,
		"y", ship.Position.Y,
		"heading", ship.Heading,
		"velocity", ship.Velocity,
		"crashed", ship.Crashed,
	)
}

// RenderProjectile implements Renderer.
func (d *NullRenderer) RenderProjectile(projectile engine.ProjectileState) {
	d.logger.Debug(context.Background(), "RenderProjectile called",
		"projectile_id", uint64(projectile.ID),
		"heading", projectile.Heading,
	)
}

// RenderObstacle implements Renderer.
func (d *NullRenderer) RenderObstacle(obstacle engine.ObstacleState) {
	d.logger.Debug(context.Background(), "RenderObstacle called",
		"obstacle_id", uint64(obstacle.ID),
		"hit", obstacle.Hit,
	)
}

// RenderHUD implements HUDRenderer.
func (d *NullRenderer) RenderHUD(hud engine.HUD) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"fuel", hud.Fuel,
		"ammo", hud.Ammo,
		"health", hud.Health,
		"score", hud.Score,
		"time_left", hud.TimeLeft,
	)
}

// RenderSummary implements SummaryRenderer.
func (d *NullRenderer) RenderSummary(summary engine.Summary) error {
	d.logger.Info(logging.WithCorrelationID(context.Background(), summary.SessionID), "game over",
		"elapsed_seconds", summary.ElapsedSeconds,
		"final_score", summary.FinalScore,
		"reason", string(summary.Reason),
	)
	return nil
}

// Frames returns how many frames were presented
func (d *NullRenderer) Frames() int {
	return d.frames
}
