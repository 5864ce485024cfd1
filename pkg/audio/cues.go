// Package audio plays short synthesized cues for game events.
package audio

import (
	"sync"

	"github.com/opd-ai/go-spacerun/pkg/event"
)

// Cue names a sound effect
type Cue int

// Available cues
const (
	CueFire Cue = iota
	CueDamage
	CueShot
	CueCrash
	CueOutOfFuel
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueDamage:
		return "damage"
	case CueShot:
		return "shot"
	case CueCrash:
		return "crash"
	case CueOutOfFuel:
		return "out_of_fuel"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player plays cues without blocking the caller
type Player interface {
	Play(cue Cue)
}

// eventCues maps bus events to the cue they trigger
var eventCues = map[event.Type]Cue{
	event.ProjectileFired: CueFire,
	event.ShipDamaged:     CueDamage,
	event.ObstacleShot:    CueShot,
	event.ShipCrashed:     CueCrash,
	event.OutOfFuel:       CueOutOfFuel,
	event.GameEnded:       CueGameOver,
}

// Cues connects a bus to a player
type Cues struct {
	mu   sync.Mutex
	subs []*event.Subscription
}

// Attach subscribes player to every event with a cue
func Attach(bus *event.Bus, player Player) *Cues {
	c := &Cues{}
	for eventType, cue := range eventCues {
		cue := cue
		c.subs = append(c.subs, bus.Subscribe(eventType, func(event.Event) {
			player.Play(cue)
		}))
	}
	return c
}

// Detach removes every subscription. Safe to call more than once.
func (c *Cues) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subs {
		s.Cancel()
	}
	c.subs = nil
}
