// pkg/engine/tracker.go
package engine

import (
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// GeometrySource resolves an obstacle handle to its current bounding box.
// The spawn feed animates obstacles; the simulation only reads them back.
type GeometrySource interface {
	Bounds(handle entity.Handle) (physics.Rect, bool)
}

type noGeometry struct{}

func (noGeometry) Bounds(entity.Handle) (physics.Rect, bool) { return physics.Rect{}, false }

// Tracker holds every obstacle announced in a session, in announcement
// order, keyed by the feed's handle.
type Tracker struct {
	obstacles []*entity.Obstacle
	byHandle  map[entity.Handle]*entity.Obstacle
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		byHandle: make(map[entity.Handle]*entity.Obstacle),
	}
}

// Track appends a new obstacle. A handle that is already tracked is ignored
// and the existing obstacle returned with false.
func (t *Tracker) Track(id entity.ID, handle entity.Handle, bounds physics.Rect) (*entity.Obstacle, bool) {
	if existing, ok := t.byHandle[handle]; ok {
		return existing, false
	}
	obstacle := entity.NewObstacle(id, handle, bounds)
	t.obstacles = append(t.obstacles, obstacle)
	t.byHandle[handle] = obstacle
	return obstacle, true
}

// Refresh copies the current box of every obstacle whose handle still
// resolves. Obstacles the source has forgotten keep their last box.
func (t *Tracker) Refresh(source GeometrySource) {
	for _, obstacle := range t.obstacles {
		if bounds, ok := source.Bounds(obstacle.Handle); ok {
			obstacle.Bounds = bounds
		}
	}
}

// Lookup returns the obstacle tracked under handle
func (t *Tracker) Lookup(handle entity.Handle) (*entity.Obstacle, bool) {
	obstacle, ok := t.byHandle[handle]
	return obstacle, ok
}

// Obstacles returns the tracked obstacles in announcement order. The slice
// is owned by the tracker.
func (t *Tracker) Obstacles() []*entity.Obstacle {
	return t.obstacles
}

// Len returns the number of tracked obstacles
func (t *Tracker) Len() int {
	return len(t.obstacles)
}

// Compact drops hidden obstacles, except the one marked as the cause of a
// crash, and returns how many were removed.
func (t *Tracker) Compact() int {
	kept := t.obstacles[:0]
	removed := 0
	for _, obstacle := range t.obstacles {
		if obstacle.Alive || obstacle.Hit {
			kept = append(kept, obstacle)
			continue
		}
		delete(t.byHandle, obstacle.Handle)
		removed++
	}
	clear(t.obstacles[len(kept):])
	t.obstacles = kept
	return removed
}
