package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

type scriptedFeed struct {
	fakeGeometry
	advances int
}

func (f *scriptedFeed) Advance(bus *event.Bus) {
	f.advances++
	if f.advances == 1 {
		f.fakeGeometry[1] = physics.Rect{X: 10, Y: 10, Width: 10, Height: 10}
		bus.Publish(event.NewObstacleEvent(f, 1, f.fakeGeometry[1]))
	}
}

func runClock(t *testing.T, clock *Clock, ctx context.Context) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- clock.Run(ctx) }()
	return errc
}

func waitErr(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("clock did not stop")
		return nil
	}
}

// TestClock_SixtySecondsWithoutInput runs a whole session on hand-driven
// timers: sixty countdown ticks, then the deadline.
func TestClock_SixtySecondsWithoutInput(t *testing.T) {
	s, sink, _ := newTestSession(t, nil)
	timers := newManualTimers()
	errc := runClock(t, NewClock(s, timers, nil, nil), context.Background())

	for i := 0; i < 60; i++ {
		timers.countdown <- time.Time{}
	}
	timers.deadline <- time.Time{}

	if err := waitErr(t, errc); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if s.Countdown() >= 0 {
		t.Errorf("expected countdown below zero, got %d", s.Countdown())
	}
	if s.Score() != 600 {
		t.Errorf("expected score 600, got %d", s.Score())
	}
	if !s.Terminal() {
		t.Error("session should be terminal")
	}
	if stops := timers.stops.Load(); stops != 1 {
		t.Errorf("timers stopped %d times, want 1", stops)
	}
	if sink.summaryCount() != 1 {
		t.Errorf("expected one summary, got %d", sink.summaryCount())
	}
	summary, _ := s.Summary()
	if summary.ElapsedSeconds != 60 || summary.FinalScore != 600 {
		t.Errorf("unexpected summary %+v", summary)
	}

	// Nothing listens to the periodic sources any more.
	select {
	case timers.tick <- time.Time{}:
		t.Error("tick delivered after game over")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestClock_TickAdvancesFeedThenSession(t *testing.T) {
	feed := &scriptedFeed{fakeGeometry: fakeGeometry{}}
	bus := event.NewEventBus()
	s := NewSession(context.Background(), config.DefaultConfig(), bus, feed, nil, nil)
	defer s.Close()

	timers := newManualTimers()
	ctx, cancel := context.WithCancel(context.Background())
	errc := runClock(t, NewClock(s, timers, feed, nil), ctx)

	timers.tick <- time.Time{}
	timers.tick <- time.Time{}
	cancel()

	if err := waitErr(t, errc); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if feed.advances != 2 {
		t.Errorf("feed advanced %d times, want 2", feed.advances)
	}
	if s.Tick() != 2 || s.Tracker().Len() != 1 {
		t.Errorf("tick=%d tracked=%d, want 2 and 1", s.Tick(), s.Tracker().Len())
	}
	if timers.stops.Load() != 1 {
		t.Errorf("timers stopped %d times, want 1", timers.stops.Load())
	}
}

func TestClock_IntentsSerializedWithTicks(t *testing.T) {
	s, _, bus := newTestSession(t, nil)
	fired := make(chan struct{}, 4)
	bus.Subscribe(event.ProjectileFired, func(event.Event) { fired <- struct{}{} })

	intents := make(chan Intent)
	timers := newManualTimers()
	errc := runClock(t, NewClock(s, timers, nil, intents), context.Background())

	intents <- Fire
	intents <- ThrustUp
	timers.tick <- time.Time{}
	timers.deadline <- time.Time{}
	if err := waitErr(t, errc); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if len(fired) != 1 {
		t.Errorf("expected one shot, got %d", len(fired))
	}
	if s.Ship().Ammo != 19 || s.Ship().Fuel != 149 || s.Ship().Velocity != 1 {
		t.Errorf("unexpected ship %+v", s.Ship())
	}
}

func TestClock_CrashEndsRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ship.Health = 0
	s, _, _ := newTestSession(t, cfg)
	s.tracker.Track(s.ids.Next(), 1, s.ship.Bounds())

	timers := newManualTimers()
	errc := runClock(t, NewClock(s, timers, nil, nil), context.Background())
	timers.tick <- time.Time{}

	if err := waitErr(t, errc); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if summary, ok := s.Summary(); !ok || summary.Reason != ReasonCrash {
		t.Errorf("expected crash summary, got %+v", summary)
	}
}

func TestRealTimers(t *testing.T) {
	timers := NewTimers(config.ClockConfig{TickIntervalMs: 1, CountdownIntervalMs: 1, TimeLimitMs: 1})

	for name, ch := range map[string]<-chan time.Time{
		"tick":      timers.Tick(),
		"countdown": timers.Countdown(),
		"deadline":  timers.Deadline(),
	} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Errorf("%s never fired", name)
		}
	}

	timers.Stop()
	timers.Stop()
}

// TestClock_RealTimersEndAtTimeLimit runs whole sessions on wall-clock timers
// scaled down so the last countdown tick and the deadline fall due together.
func TestClock_RealTimersEndAtTimeLimit(t *testing.T) {
	for i := 0; i < 5; i++ {
		t.Run(fmt.Sprintf("run_%d", i), func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			cfg.Clock.TickIntervalMs = 10
			cfg.Clock.CountdownIntervalMs = 20
			cfg.Clock.TimeLimitMs = 61 * 20

			s, sink, _ := newTestSession(t, cfg)
			errc := runClock(t, NewClock(s, NewTimers(cfg.Clock), nil, nil), context.Background())

			if err := waitErr(t, errc); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			if s.Score() != 600 || s.Countdown() != -1 {
				t.Errorf("score=%d countdown=%d, want 600 and -1", s.Score(), s.Countdown())
			}
			summary, ok := s.Summary()
			want := Summary{SessionID: s.ID, ElapsedSeconds: 60, FinalScore: 600, Reason: ReasonTimeout}
			if !ok || summary != want {
				t.Errorf("summary = %+v, want %+v", summary, want)
			}
			if sink.summaryCount() != 1 {
				t.Errorf("expected one summary, got %d", sink.summaryCount())
			}
		})
	}
}
