package engine

import (
	"testing"

	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

func TestTracker_TrackKeepsOrderAndIgnoresDuplicates(t *testing.T) {
	tracker := NewTracker()
	tracker.Track(1, 10, physics.Rect{X: 1})
	tracker.Track(2, 20, physics.Rect{X: 2})

	if _, added := tracker.Track(3, 10, physics.Rect{X: 99}); added {
		t.Error("duplicate handle should not be tracked twice")
	}
	if tracker.Len() != 2 {
		t.Fatalf("expected 2 obstacles, got %d", tracker.Len())
	}

	obstacles := tracker.Obstacles()
	if obstacles[0].Handle != 10 || obstacles[1].Handle != 20 {
		t.Errorf("unexpected order: %v, %v", obstacles[0].Handle, obstacles[1].Handle)
	}
	if obstacles[0].Bounds.X != 1 {
		t.Errorf("duplicate overwrote bounds: %+v", obstacles[0].Bounds)
	}
}

func TestTracker_RefreshByHandle(t *testing.T) {
	tracker := NewTracker()
	tracker.Track(1, 10, physics.Rect{X: 1, Width: 5, Height: 5})
	tracker.Track(2, 20, physics.Rect{X: 2, Width: 5, Height: 5})

	// The source only knows handle 20, and reports it first.
	source := fakeGeometry{20: {X: 50, Y: 60, Width: 5, Height: 5}}
	tracker.Refresh(source)

	first, _ := tracker.Lookup(10)
	second, _ := tracker.Lookup(20)
	if first.Bounds.X != 1 {
		t.Errorf("unresolved handle should keep its last box, got %+v", first.Bounds)
	}
	if second.Bounds.X != 50 || second.Bounds.Y != 60 {
		t.Errorf("resolved handle not refreshed, got %+v", second.Bounds)
	}
}

func TestTracker_Compact(t *testing.T) {
	tracker := NewTracker()
	live, _ := tracker.Track(1, 10, physics.Rect{})
	hidden, _ := tracker.Track(2, 20, physics.Rect{})
	crashed, _ := tracker.Track(3, 30, physics.Rect{})
	hidden.Hide()
	crashed.Hide()
	crashed.MarkHit()

	if removed := tracker.Compact(); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if tracker.Len() != 2 {
		t.Fatalf("expected 2 remaining, got %d", tracker.Len())
	}
	if _, ok := tracker.Lookup(20); ok {
		t.Error("compacted handle should no longer resolve")
	}
	if got := tracker.Obstacles(); got[0] != live || got[1] != crashed {
		t.Error("compaction changed the order of survivors")
	}
}

func TestTracker_NeverDropsImplicitly(t *testing.T) {
	tracker := NewTracker()
	for i := 0; i < 5; i++ {
		o, _ := tracker.Track(entity.ID(i+1), entity.Handle(i+1), physics.Rect{})
		o.Hide()
	}
	tracker.Refresh(fakeGeometry{})
	if tracker.Len() != 5 {
		t.Errorf("hidden obstacles should stay tracked until compaction, got %d", tracker.Len())
	}
}
