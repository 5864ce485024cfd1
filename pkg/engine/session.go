// pkg/engine/session.go
package engine

import (
	"context"
	"sync"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/logging"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Session is the state of one run from launch to game over. It is owned by a
// single goroutine (the Clock) and is not safe for concurrent use.
type Session struct {
	ID string

	cfg      *config.GameConfig
	bus      *event.Bus
	geometry GeometrySource
	sink     Sink
	logger   *logging.Logger
	ctx      context.Context

	ids         entity.IDSource
	ship        *entity.Ship
	projectiles []*entity.Projectile
	tracker     *Tracker
	boundary    Boundary

	score     int
	countdown int
	tick      uint64
	outOfFuel bool

	terminal bool
	reason   Reason
	summary  Summary
	done     chan struct{}
	endOnce  sync.Once

	spawnSub *event.Subscription
}

// NewSession creates a session from cfg and subscribes it to obstacle
// announcements on bus. Nil geometry, sink or logger fall back to inert
// implementations.
func NewSession(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, geometry GeometrySource, sink Sink, logger *logging.Logger) *Session {
	if geometry == nil {
		geometry = noGeometry{}
	}
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	id := logging.GenerateCorrelationID()
	s := &Session{
		ID:        id,
		cfg:       cfg,
		bus:       bus,
		geometry:  geometry,
		sink:      sink,
		logger:    logger,
		ctx:       logging.WithCorrelationID(ctx, id),
		tracker:   NewTracker(),
		boundary:  NewBoundary(cfg),
		countdown: cfg.Clock.CountdownStart,
		done:      make(chan struct{}),
	}

	start := physics.Vector2D{
		X: cfg.Field.Width/2 - cfg.Ship.Width/2,
		Y: cfg.Field.Height/2 + cfg.Ship.Height/2,
	}
	s.ship = entity.NewShip(start, cfg.Ship.Fuel, cfg.Ship.Ammo, cfg.Ship.Health, cfg.Ship.ShipStats())

	s.spawnSub = bus.Subscribe(event.ObstacleSpawned, s.handleObstacleSpawned)
	return s
}

// Start announces the session and pushes the initial display
func (s *Session) Start() {
	s.logger.Info(s.ctx, "session started",
		"fuel", s.ship.Fuel,
		"ammo", s.ship.Ammo,
		"health", s.ship.Health,
		"countdown", s.countdown,
	)
	s.bus.Publish(event.NewGameEvent(event.GameStarted, s, s.ID, s.score, 0, ""))
	s.checkFuel()
	s.publishFrame()
	s.publishHUD()
}

// HandleIntent applies a player command. Steering and thrust are refused
// entirely on an empty tank; firing only needs ammunition. Commands after
// game over are ignored.
func (s *Session) HandleIntent(intent Intent) bool {
	if s.terminal {
		return false
	}
	if intent.burnsFuel() && s.ship.Fuel <= 0 {
		return false
	}

	var changed bool
	switch intent {
	case ThrustUp:
		changed = s.ship.ThrustUp()
	case ThrustDown:
		changed = s.ship.ThrustDown()
	case RotateLeft:
		changed = s.ship.RotateLeft()
	case RotateRight:
		changed = s.ship.RotateRight()
	case Fire:
		changed = s.fire()
	}

	s.checkFuel()
	if changed {
		s.publishHUD()
	}
	return changed
}

func (s *Session) fire() bool {
	projectile := s.ship.Fire(s.ids.Next())
	if projectile == nil {
		return false
	}
	s.projectiles = append(s.projectiles, projectile)
	s.bus.Publish(event.NewShipEvent(event.ProjectileFired, s, s.ship.Fuel, s.ship.Ammo, s.ship.Health))
	return true
}

// checkFuel raises the out-of-fuel signal the first time the tank is empty
func (s *Session) checkFuel() {
	if s.outOfFuel || s.ship.Fuel > 0 {
		return
	}
	s.outOfFuel = true
	s.ship.CutThrust()
	s.logger.Info(s.ctx, "out of fuel", "tick", s.tick)
	s.bus.Publish(event.NewShipEvent(event.OutOfFuel, s, s.ship.Fuel, s.ship.Ammo, s.ship.Health))
}

// Step advances the simulation by one tick: movement, boundaries, obstacle
// refresh, collisions and optional compaction, then a frame and HUD update.
func (s *Session) Step() {
	if s.terminal {
		return
	}
	s.tick++

	s.pruneProjectiles()
	s.updateEntities()
	s.applyBoundaries()
	s.tracker.Refresh(s.geometry)
	s.resolveCollisions()
	s.compact()

	s.publishFrame()
	s.publishHUD()
}

// pruneProjectiles drops projectiles that died during the previous tick
func (s *Session) pruneProjectiles() {
	alive := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	clear(s.projectiles[len(alive):])
	s.projectiles = alive
}

func (s *Session) updateEntities() {
	s.ship.Move()
	for _, p := range s.projectiles {
		p.Move(s.cfg.Projectile.Speed)
	}
}

func (s *Session) applyBoundaries() {
	s.boundary.WrapShip(s.ship)
	for _, p := range s.projectiles {
		s.boundary.CullProjectile(p)
	}
}

func (s *Session) compact() {
	every := s.cfg.Tracker.CompactEvery
	if every <= 0 || s.tick%uint64(every) != 0 {
		return
	}
	if removed := s.tracker.Compact(); removed > 0 {
		s.logger.Debug(s.ctx, "compacted obstacles", "removed", removed, "remaining", s.tracker.Len())
	}
}

// CountdownTick runs once a second: one second off the clock and the
// survival bonus added to the score. The countdown stops at -1, the last
// value the time limit allows.
func (s *Session) CountdownTick() {
	if s.terminal || s.countdown < 0 {
		return
	}
	s.countdown--
	s.score += s.cfg.Rules.SecondBonus
	s.publishHUD()
}

// Timeout ends the session when the time limit expires
func (s *Session) Timeout() {
	s.end(ReasonTimeout, nil)
}

// end performs the one-way transition into game over. Only the first call
// has any effect.
func (s *Session) end(reason Reason, cause *entity.Obstacle) {
	s.endOnce.Do(func() {
		s.terminal = true
		s.reason = reason
		s.ship.Crashed = true
		if cause != nil {
			cause.MarkHit()
		}

		s.summary = Summary{
			SessionID:      s.ID,
			ElapsedSeconds: s.cfg.Clock.CountdownStart - s.countdown,
			FinalScore:     s.score,
			Reason:         reason,
		}
		close(s.done)

		s.logger.Info(s.ctx, "session ended",
			"reason", string(reason),
			"score", s.score,
			"elapsed", s.summary.ElapsedSeconds,
			"tick", s.tick,
		)
		if err := s.sink.GameOver(s.summary); err != nil {
			s.logger.Warn(s.ctx, "sink rejected summary", "error", err.Error())
		}
		s.bus.Publish(event.NewGameEvent(event.GameEnded, s, s.ID, s.score, s.summary.ElapsedSeconds, string(reason)))
	})
}

// Done is closed when the session reaches game over
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close detaches the session from the event bus
func (s *Session) Close() {
	if s.spawnSub != nil {
		s.spawnSub.Cancel()
		s.spawnSub = nil
	}
}

func (s *Session) handleObstacleSpawned(e event.Event) {
	spawned, ok := e.(*event.ObstacleEvent)
	if !ok || s.terminal {
		return
	}
	if _, added := s.tracker.Track(s.ids.Next(), spawned.Handle, spawned.Bounds); added {
		s.logger.Debug(s.ctx, "obstacle tracked", "handle", uint64(spawned.Handle), "tracked", s.tracker.Len())
	}
}

// Snapshot returns the current frame
func (s *Session) Snapshot() Frame {
	frame := Frame{
		SessionID: s.ID,
		Tick:      s.tick,
		Ship: ShipState{
			Position: s.ship.Position,
			Width:    s.ship.Stats.Width,
			Height:   s.ship.Stats.Height,
			Heading:  s.ship.Heading,
			Velocity: s.ship.Velocity,
			Thrust:   s.ship.Thrust,
			Crashed:  s.ship.Crashed,
		},
		Projectiles: make([]ProjectileState, 0, len(s.projectiles)),
		Obstacles:   make([]ObstacleState, 0, s.tracker.Len()),
	}
	for _, p := range s.projectiles {
		if p.Alive {
			frame.Projectiles = append(frame.Projectiles, ProjectileState{
				ID:       p.ID,
				Position: p.Position,
				Heading:  p.Heading(),
			})
		}
	}
	for _, o := range s.tracker.Obstacles() {
		frame.Obstacles = append(frame.Obstacles, ObstacleState{
			ID:     o.ID,
			Handle: o.Handle,
			Bounds: o.Bounds,
			Alive:  o.Alive,
			Hit:    o.Hit,
		})
	}
	return frame
}

// HUDState returns the current heads-up display
func (s *Session) HUDState() HUD {
	return HUD{
		Fuel:      s.ship.Fuel,
		Ammo:      s.ship.Ammo,
		Health:    s.ship.Health,
		Score:     s.score,
		TimeLeft:  s.countdown + 1,
		OutOfFuel: s.outOfFuel,
	}
}

func (s *Session) publishFrame() {
	if err := s.sink.Frame(s.Snapshot()); err != nil {
		s.logger.Warn(s.ctx, "sink rejected frame", "tick", s.tick, "error", err.Error())
	}
}

func (s *Session) publishHUD() {
	if err := s.sink.HUD(s.HUDState()); err != nil {
		s.logger.Warn(s.ctx, "sink rejected hud", "tick", s.tick, "error", err.Error())
	}
}

// Ship returns the session's ship
func (s *Session) Ship() *entity.Ship { return s.ship }

// Projectiles returns the projectiles in flight, including any culled this tick
func (s *Session) Projectiles() []*entity.Projectile { return s.projectiles }

// Tracker returns the obstacle tracker
func (s *Session) Tracker() *Tracker { return s.tracker }

// Score returns the current score
func (s *Session) Score() int { return s.score }

// Countdown returns the seconds counter, which goes below zero at the end
func (s *Session) Countdown() int { return s.countdown }

// Tick returns the number of simulation ticks run
func (s *Session) Tick() uint64 { return s.tick }

// Terminal reports whether the session reached game over
func (s *Session) Terminal() bool { return s.terminal }

// Summary returns the end-of-session summary and whether the session ended
func (s *Session) Summary() (Summary, bool) { return s.summary, s.terminal }
