// pkg/engine/sink.go
package engine

import (
	"errors"

	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Reason names why a session ended
type Reason string

// Session end reasons
const (
	ReasonCrash   Reason = "crash"
	ReasonTimeout Reason = "timeout"
)

// Sink receives everything a client needs to present a session. Errors are
// logged by the session and never stop the simulation.
type Sink interface {
	Frame(frame Frame) error
	HUD(hud HUD) error
	GameOver(summary Summary) error
}

// Frame is a snapshot of the play field taken at the end of a tick
type Frame struct {
	SessionID   string
	Tick        uint64
	Ship        ShipState
	Projectiles []ProjectileState
	Obstacles   []ObstacleState
}

// ShipState represents a snapshot of the ship
type ShipState struct {
	Position physics.Vector2D
	Width    float64
	Height   float64
	Heading  int
	Velocity int
	Thrust   int
	Crashed  bool
}

// Bounds returns the ship box of the snapshot
func (s ShipState) Bounds() physics.Rect {
	return physics.RectAt(s.Position, s.Width, s.Height)
}

// ProjectileState represents a snapshot of a live projectile
type ProjectileState struct {
	ID       entity.ID
	Position physics.Vector2D
	Heading  int
}

// Bounds returns the projectile box of the snapshot
func (p ProjectileState) Bounds() physics.Rect {
	return physics.RectAt(p.Position, entity.ProjectileWidth, entity.ProjectileHeight)
}

// ObstacleState represents a snapshot of a tracked obstacle
type ObstacleState struct {
	ID     entity.ID
	Handle entity.Handle
	Bounds physics.Rect
	Alive  bool
	Hit    bool
}

// HUD is the heads-up display. TimeLeft counts whole seconds remaining.
type HUD struct {
	Fuel      int
	Ammo      int
	Health    int
	Score     int
	TimeLeft  int
	OutOfFuel bool
}

// Summary is emitted once when a session ends
type Summary struct {
	SessionID      string
	ElapsedSeconds int
	FinalScore     int
	Reason         Reason
}

// MultiSink fans every call out to several sinks
type MultiSink []Sink

// Frame implements Sink
func (m MultiSink) Frame(frame Frame) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Frame(frame))
	}
	return errors.Join(errs...)
}

// HUD implements Sink
func (m MultiSink) HUD(hud HUD) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.HUD(hud))
	}
	return errors.Join(errs...)
}

// GameOver implements Sink
func (m MultiSink) GameOver(summary Summary) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.GameOver(summary))
	}
	return errors.Join(errs...)
}

type nopSink struct{}

func (nopSink) Frame(Frame) error      { return nil }
func (nopSink) HUD(HUD) error          { return nil }
func (nopSink) GameOver(Summary) error { return nil }
