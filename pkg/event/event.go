// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-shmup/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	PlayerSpawned     Type = "player_spawned"
	PlayerDestroyed   Type = "player_destroyed"
	EnemySpawned      Type = "enemy_spawned"
	EnemyDestroyed    Type = "enemy_destroyed"
	ProjectileFired   Type = "projectile_fired"
	ProjectileHit     Type = "projectile_hit"
	ExplosionFinished Type = "explosion_finished"
	WorldStepped      Type = "world_stepped"
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

// SubscriptionID identifies a handler registered with Subscribe
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes the handler registered under id, reporting whether it existed
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			rest := make([]subscription, 0, len(subs)-1)
			rest = append(rest, subs[:i]...)
			rest = append(rest, subs[i+1:]...)
			if len(rest) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = rest
			}
			return true
		}
	}
	return false
}

// HasSubscribers reports whether any handler listens for eventType
func (b *Bus) HasSubscribers(eventType Type) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType]) > 0
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	// Call each handler
	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ShipEvent contains information about a player or enemy ship
type ShipEvent struct {
	BaseEvent
	ShipID   uint64
	Team     string
	Position physics.Vector2D
	// KillerID is the owner of the fatal projectile, zero when unknown
	KillerID uint64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, team string, position physics.Vector2D) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:   shipID,
		Team:     team,
		Position: position,
	}
}

// ProjectileEvent contains information about a projectile being fired or landing
type ProjectileEvent struct {
	BaseEvent
	ProjectileID uint64
	Kind         string
	OwnerID      uint64
	// TargetID is the ship hit; zero for ProjectileFired
	TargetID uint64
	Damage   int
	Position physics.Vector2D
}

// NewProjectileEvent creates a new projectile event
func NewProjectileEvent(eventType Type, source interface{}, projectileID uint64, kind string, ownerID uint64) *ProjectileEvent {
	return &ProjectileEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ProjectileID: projectileID,
		Kind:         kind,
		OwnerID:      ownerID,
	}
}

// ExplosionEvent is published when an explosion has played out
type ExplosionEvent struct {
	BaseEvent
	ExplosionID uint64
	SourceID    uint64
}

// NewExplosionEvent creates a new explosion event
func NewExplosionEvent(source interface{}, explosionID, sourceID uint64) *ExplosionEvent {
	return &ExplosionEvent{
		BaseEvent: BaseEvent{
			EventType: ExplosionFinished,
			Source:    source,
		},
		ExplosionID: explosionID,
		SourceID:    sourceID,
	}
}

// StepEvent summarises one completed world step
type StepEvent struct {
	BaseEvent
	Tick        uint64
	DeltaTime   float64
	Players     int
	Enemies     int
	Projectiles int
	Explosions  int
	Massive     int
}

// NewStepEvent creates a new step event
func NewStepEvent(source interface{}, tick uint64, deltaTime float64) *StepEvent {
	return &StepEvent{
		BaseEvent: BaseEvent{
			EventType: WorldStepped,
			Source:    source,
		},
		Tick:      tick,
		DeltaTime: deltaTime,
	}
}
