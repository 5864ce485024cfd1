// Package spawn animates the drifting rocks the ship has to dodge. It sits
// outside the simulation: rocks are announced on the event bus and their
// current boxes are read back by handle every tick.
package spawn

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/event"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Edge identifies the side of the field a rock enters from
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Rock is a square obstacle drifting in a straight line
type Rock struct {
	Handle   entity.Handle
	Bounds   physics.Rect
	Velocity physics.Vector2D
}

// Field is the rock animator for one session. It is driven from the clock
// goroutine and is not safe for concurrent use.
type Field struct {
	cfg    config.SpawnConfig
	width  float64
	height float64
	rng    *rand.Rand

	rocks      map[entity.Handle]*Rock
	nextHandle entity.Handle
	ticks      int
}

// NewField creates an animator for a field of the given size
func NewField(cfg config.SpawnConfig, field config.FieldConfig) *Field {
	return &Field{
		cfg:    cfg,
		width:  field.Width,
		height: field.Height,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		rocks:  make(map[entity.Handle]*Rock),
	}
}

// Advance moves every rock one tick, forgets rocks that drifted far off the
// field and, every EveryTicks ticks, announces a new one on bus.
func (f *Field) Advance(bus *event.Bus) {
	f.ticks++

	margin := f.cfg.MaxSize * 2
	for handle, rock := range f.rocks {
		rock.Bounds.X += rock.Velocity.X
		rock.Bounds.Y += rock.Velocity.Y
		if rock.Bounds.X < -margin || rock.Bounds.X > f.width+margin ||
			rock.Bounds.Y < -margin || rock.Bounds.Y > f.height+margin {
			delete(f.rocks, handle)
		}
	}

	if f.cfg.EveryTicks <= 0 || f.ticks%f.cfg.EveryTicks != 0 {
		return
	}
	rock := f.spawn(Edge(f.rng.IntN(4)))
	bus.Publish(event.NewObstacleEvent(f, rock.Handle, rock.Bounds))
}

// spawn places a rock just outside edge and aims it at a random point in the
// opposite half of the field.
func (f *Field) spawn(edge Edge) *Rock {
	size := f.between(f.cfg.MinSize, f.cfg.MaxSize)
	speed := f.between(f.cfg.MinSpeed, f.cfg.MaxSpeed)

	var x, y, targetX, targetY float64
	switch edge {
	case EdgeLeft:
		x, y = -size, f.rng.Float64()*f.height
		targetX, targetY = f.width/2+f.rng.Float64()*f.width/2, f.rng.Float64()*f.height
	case EdgeRight:
		x, y = f.width, f.rng.Float64()*f.height
		targetX, targetY = f.rng.Float64()*f.width/2, f.rng.Float64()*f.height
	case EdgeTop:
		x, y = f.rng.Float64()*f.width, -size
		targetX, targetY = f.rng.Float64()*f.width, f.height/2+f.rng.Float64()*f.height/2
	default:
		x, y = f.rng.Float64()*f.width, f.height
		targetX, targetY = f.rng.Float64()*f.width, f.rng.Float64()*f.height/2
	}

	angle := math.Atan2(targetY-y, targetX-x)
	f.nextHandle++
	rock := &Rock{
		Handle:   f.nextHandle,
		Bounds:   physics.Rect{X: x, Y: y, Width: size, Height: size},
		Velocity: physics.Vector2D{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
	}
	f.rocks[rock.Handle] = rock
	return rock
}

func (f *Field) between(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Bounds returns the current box of a rock still on the field
func (f *Field) Bounds(handle entity.Handle) (physics.Rect, bool) {
	rock, ok := f.rocks[handle]
	if !ok {
		return physics.Rect{}, false
	}
	return rock.Bounds, true
}

// Len returns the number of rocks in flight
func (f *Field) Len() int {
	return len(f.rocks)
}

// Rocks returns a copy of the rocks in flight ordered by handle
func (f *Field) Rocks() []Rock {
	rocks := make([]Rock, 0, len(f.rocks))
	for _, rock := range f.rocks {
		rocks = append(rocks, *rock)
	}
	slices.SortFunc(rocks, func(a, b Rock) int {
		return int(a.Handle) - int(b.Handle)
	})
	return rocks
}
