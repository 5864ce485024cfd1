// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ObstacleSpawned Type = "obstacle_spawned"
	ProjectileFired Type = "projectile_fired"
	ShipDamaged     Type = "ship_damaged"
	ObstacleShot    Type = "obstacle_shot"
	ShipCrashed     Type = "ship_crashed"
	OutOfFuel       Type = "out_of_fuel"
	GameStarted     Type = "game_started"
	GameEnded       Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// ObstacleEvent announces a new obstacle with its initial geometry
type ObstacleEvent struct {
	BaseEvent
	Handle entity.Handle
	Bounds physics.Rect
}

// NewObstacleEvent creates a spawn announcement
func NewObstacleEvent(source interface{}, handle entity.Handle, bounds physics.Rect) *ObstacleEvent {
	return &ObstacleEvent{
		BaseEvent: BaseEvent{EventType: ObstacleSpawned, Source: source},
		Handle:    handle,
		Bounds:    bounds,
	}
}

// ShipEvent reports a change to the ship's supplies
type ShipEvent struct {
	BaseEvent
	Fuel   int
	Ammo   int
	Health int
}

// NewShipEvent creates a ship event
func NewShipEvent(eventType Type, source interface{}, fuel, ammo, health int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Fuel:      fuel,
		Ammo:      ammo,
		Health:    health,
	}
}

// CollisionEvent contains information about an obstacle collision. Projectile
// is zero for ship collisions.
type CollisionEvent struct {
	BaseEvent
	Obstacle   entity.ID
	Projectile entity.ID
	Score      int
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(eventType Type, source interface{}, obstacle, projectile entity.ID, score int) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent:  BaseEvent{EventType: eventType, Source: source},
		Obstacle:   obstacle,
		Projectile: projectile,
		Score:      score,
	}
}

// GameEvent marks the start or end of a session
type GameEvent struct {
	BaseEvent
	SessionID string
	Score     int
	Elapsed   int
	Reason    string
}

// NewGameEvent creates a session lifecycle event
func NewGameEvent(eventType Type, source interface{}, sessionID string, score, elapsed int, reason string) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		SessionID: sessionID,
		Score:     score,
		Elapsed:   elapsed,
		Reason:    reason,
	}
}
