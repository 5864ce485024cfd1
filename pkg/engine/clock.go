// pkg/engine/clock.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/event"
)

// Timers supplies the periodic simulation tick, the one second countdown
// tick and the session deadline. Stop must be safe to call more than once.
type Timers interface {
	Tick() <-chan time.Time
	Countdown() <-chan time.Time
	Deadline() <-chan time.Time
	Stop()
}

type realTimers struct {
	tick      *time.Ticker
	countdown *time.Ticker
	deadline  *time.Timer
	stopOnce  sync.Once
}

// NewTimers starts wall-clock timers for a session. The deadline is armed
// first so it is never due after a countdown tick scheduled for the same
// instant.
func NewTimers(cfg config.ClockConfig) Timers {
	deadline := time.NewTimer(cfg.TimeLimit())
	return &realTimers{
		tick:      time.NewTicker(cfg.TickInterval()),
		countdown: time.NewTicker(cfg.CountdownInterval()),
		deadline:  deadline,
	}
}

func (t *realTimers) Tick() <-chan time.Time      { return t.tick.C }
func (t *realTimers) Countdown() <-chan time.Time { return t.countdown.C }
func (t *realTimers) Deadline() <-chan time.Time  { return t.deadline.C }

func (t *realTimers) Stop() {
	t.stopOnce.Do(func() {
		t.tick.Stop()
		t.countdown.Stop()
		t.deadline.Stop()
	})
}

// Feed animates obstacles outside the simulation. Advance runs before each
// simulation tick and announces new obstacles on the bus.
type Feed interface {
	GeometrySource
	Advance(bus *event.Bus)
}

type emptyFeed struct{ noGeometry }

func (emptyFeed) Advance(*event.Bus) {}

// Clock drives one session. Intents, ticks, the deadline and cancellation
// are serialized through a single select loop, so the session never sees
// two callbacks at once.
type Clock struct {
	session *Session
	timers  Timers
	feed    Feed
	intents <-chan Intent
}

// NewClock creates a clock for session
func NewClock(session *Session, timers Timers, feed Feed, intents <-chan Intent) *Clock {
	if feed == nil {
		feed = emptyFeed{}
	}
	return &Clock{
		session: session,
		timers:  timers,
		feed:    feed,
		intents: intents,
	}
}

// Run starts the session and blocks until it ends or ctx is cancelled. The
// timers are stopped exactly once on the way out.
func (c *Clock) Run(ctx context.Context) error {
	defer c.timers.Stop()

	s := c.session
	s.Start()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(s.ctx, "session cancelled", "tick", s.tick)
			return ctx.Err()
		case <-s.Done():
			return nil
		case intent := <-c.intents:
			s.HandleIntent(intent)
		case <-c.timers.Tick():
			c.feed.Advance(s.bus)
			s.Step()
		case <-c.timers.Countdown():
			// a due deadline wins over the countdown tick it raced with
			select {
			case <-c.timers.Deadline():
				s.Timeout()
			default:
				s.CountdownTick()
			}
		case <-c.timers.Deadline():
			s.Timeout()
		}
	}
}
