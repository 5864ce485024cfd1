package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// manualTimers are driven by the test. The channels are unbuffered, so a
// send returns only once the clock loop has taken the tick.
type manualTimers struct {
	tick      chan time.Time
	countdown chan time.Time
	deadline  chan time.Time
	stops     atomic.Int32
}

func newManualTimers() *manualTimers {
	return &manualTimers{
		tick:      make(chan time.Time),
		countdown: make(chan time.Time),
		deadline:  make(chan time.Time),
	}
}

func (m *manualTimers) Tick() <-chan time.Time      { return m.tick }
func (m *manualTimers) Countdown() <-chan time.Time { return m.countdown }
func (m *manualTimers) Deadline() <-chan time.Time  { return m.deadline }
func (m *manualTimers) Stop()                       { m.stops.Add(1) }

type recordingSink struct {
	mu        sync.Mutex
	frames    []Frame
	huds      []HUD
	summaries []Summary
	err       error
}

func (r *recordingSink) Frame(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return r.err
}

func (r *recordingSink) HUD(hud HUD) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.huds = append(r.huds, hud)
	return r.err
}

func (r *recordingSink) GameOver(summary Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, summary)
	return r.err
}

func (r *recordingSink) lastHUD() HUD {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.huds[len(r.huds)-1]
}

func (r *recordingSink) lastFrame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func (r *recordingSink) summaryCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.summaries)
}

type fakeGeometry map[entity.Handle]physics.Rect

func (f fakeGeometry) Bounds(handle entity.Handle) (physics.Rect, bool) {
	r, ok := f[handle]
	return r, ok
}

// countEvents counts events of type t published on bus
func countEvents(bus *event.Bus, t event.Type) *atomic.Int32 {
	var n atomic.Int32
	bus.Subscribe(t, func(event.Event) { n.Add(1) })
	return &n
}

func newTestSession(t *testing.T, cfg *config.GameConfig) (*Session, *recordingSink, *event.Bus) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bus := event.NewEventBus()
	sink := &recordingSink{}
	s := NewSession(context.Background(), cfg, bus, nil, sink, nil)
	t.Cleanup(s.Close)
	return s, sink, bus
}

func TestMultiSink_JoinsErrors(t *testing.T) {
	failing := &recordingSink{err: errors.New("boom")}
	ok := &recordingSink{}
	multi := MultiSink{failing, ok}

	if err := multi.Frame(Frame{Tick: 3}); err == nil {
		t.Error("expected joined error from Frame")
	}
	if err := multi.HUD(HUD{Score: 1}); err == nil {
		t.Error("expected joined error from HUD")
	}
	if err := multi.GameOver(Summary{FinalScore: 1}); err == nil {
		t.Error("expected joined error from GameOver")
	}
	if len(ok.frames) != 1 || len(ok.huds) != 1 || len(ok.summaries) != 1 {
		t.Error("healthy sink should still receive every call")
	}
	if err := (MultiSink{ok}).Frame(Frame{}); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestIntent_String(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{ThrustUp, "thrust_up"},
		{ThrustDown, "thrust_down"},
		{RotateLeft, "rotate_left"},
		{RotateRight, "rotate_right"},
		{Fire, "fire"},
		{Intent(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("Intent(%d).String() = %q, want %q", tt.intent, got, tt.want)
		}
	}
}
