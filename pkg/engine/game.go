// pkg/engine/game.go
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/logging"
)

// GameStatus reports where the runner is in its lifecycle
type GameStatus int32

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Game runs sessions back to back. Each restart builds a brand new session
// and obstacle feed; nothing carries over from the previous run except the
// event bus subscribers.
type Game struct {
	Config   *config.GameConfig
	EventBus *event.Bus

	sink      Sink
	logger    *logging.Logger
	newFeed   func() Feed
	newTimers func(config.ClockConfig) Timers

	intents  chan Intent
	restart  chan struct{}
	status   atomic.Int32
	sessions atomic.Int64

	mu      sync.Mutex
	current *Session
}

// Option customizes a Game
type Option func(*Game)

// WithLogger sets the logger shared by all sessions
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithFeed sets the obstacle feed factory. It is called once per session.
func WithFeed(newFeed func() Feed) Option {
	return func(g *Game) { g.newFeed = newFeed }
}

// WithTimers replaces the wall-clock timers, typically with hand-driven ones
func WithTimers(newTimers func(config.ClockConfig) Timers) Option {
	return func(g *Game) { g.newTimers = newTimers }
}

// WithEventBus shares an existing bus with the game
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// NewGame creates a runner for cfg presenting to sink
func NewGame(cfg *config.GameConfig, sink Sink, opts ...Option) *Game {
	g := &Game{
		Config:    cfg,
		EventBus:  event.NewEventBus(),
		sink:      sink,
		logger:    logging.Discard(),
		newFeed:   func() Feed { return emptyFeed{} },
		newTimers: NewTimers,
		intents:   make(chan Intent, 32),
		restart:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run plays sessions until ctx is cancelled. After each game over it waits
// for Restart.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := g.runSession(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.restart:
		}
	}
}

func (g *Game) runSession(ctx context.Context) error {
	g.drainIntents()

	feed := g.newFeed()
	session := NewSession(ctx, g.Config, g.EventBus, feed, g.sink, g.logger)
	defer session.Close()

	g.mu.Lock()
	g.current = session
	g.mu.Unlock()
	g.sessions.Add(1)

	g.status.Store(int32(GameStatusActive))
	clock := NewClock(session, g.newTimers(g.Config.Clock), feed, g.intents)
	err := clock.Run(ctx)
	g.status.Store(int32(GameStatusEnded))
	return err
}

func (g *Game) drainIntents() {
	for {
		select {
		case <-g.intents:
		default:
			return
		}
	}
}

// Submit queues an intent for the running session without blocking. It
// reports false when the intent was dropped.
func (g *Game) Submit(intent Intent) bool {
	if g.Status() != GameStatusActive {
		return false
	}
	select {
	case g.intents <- intent:
		return true
	default:
		return false
	}
}

// Restart asks for a new session after game over. It reports false while a
// session is still running or a restart is already pending.
func (g *Game) Restart() bool {
	if !g.status.CompareAndSwap(int32(GameStatusEnded), int32(GameStatusWaiting)) {
		return false
	}
	g.restart <- struct{}{}
	return true
}

// Status returns the runner status
func (g *Game) Status() GameStatus {
	return GameStatus(g.status.Load())
}

// Sessions returns how many sessions have been started
func (g *Game) Sessions() int {
	return int(g.sessions.Load())
}

// Current returns the most recent session. Its state belongs to the run
// loop; callers should only read it once the session is done.
func (g *Game) Current() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
