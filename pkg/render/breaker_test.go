package render

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-spacerun/pkg/engine"
)

type flakySink struct {
	fail      bool
	frames    int
	huds      int
	summaries int
}

func (f *flakySink) Frame(engine.Frame) error {
	f.frames++
	if f.fail {
		return errors.New("display gone")
	}
	return nil
}

func (f *flakySink) HUD(engine.HUD) error {
	f.huds++
	if f.fail {
		return errors.New("display gone")
	}
	return nil
}

func (f *flakySink) GameOver(engine.Summary) error {
	f.summaries++
	return nil
}

func TestBreakerSink_TripsAndRecovers(t *testing.T) {
	next := &flakySink{fail: true}
	sink := NewBreakerSink(next, BreakerSettings{Name: "test", MaxFailures: 3, Cooldown: 20 * time.Millisecond}, nil)

	for i := 0; i < 3; i++ {
		if err := sink.Frame(engine.Frame{}); err == nil {
			t.Fatalf("failure %d should be reported", i)
		}
	}
	if sink.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %v", sink.State())
	}

	// Open: dropped silently, never reaching the sink.
	for i := 0; i < 10; i++ {
		if err := sink.Frame(engine.Frame{}); err != nil {
			t.Errorf("open breaker should drop quietly, got %v", err)
		}
		if err := sink.HUD(engine.HUD{}); err != nil {
			t.Errorf("open breaker should drop quietly, got %v", err)
		}
	}
	if next.frames != 3 || next.huds != 0 {
		t.Errorf("open breaker leaked calls: frames=%d huds=%d", next.frames, next.huds)
	}

	if err := sink.GameOver(engine.Summary{}); err != nil || next.summaries != 1 {
		t.Errorf("summary should bypass the breaker: err=%v summaries=%d", err, next.summaries)
	}

	time.Sleep(40 * time.Millisecond)
	next.fail = false
	if err := sink.Frame(engine.Frame{}); err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if sink.State() != gobreaker.StateClosed {
		t.Errorf("expected closed breaker after a good probe, got %v", sink.State())
	}
}

func TestDefaultBreakerSettings(t *testing.T) {
	s := DefaultBreakerSettings("display")
	if s.Name != "display" || s.MaxFailures != 5 || s.Cooldown != 2*time.Second {
		t.Errorf("unexpected settings %+v", s)
	}
}
