// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SimulationInitialized Type = "simulation_initialized"
	BodyAdded             Type = "body_added"
	BodyRemoved           Type = "body_removed"
	BodiesCleared         Type = "bodies_cleared"
	BodyBounced           Type = "body_bounced"
	GridResampled         Type = "grid_resampled"
	ConstantChanged       Type = "constant_changed"
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

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// BodyEvent contains information about body lifecycle events
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Mass   float64
}

// NewBodyEvent creates a new body event
func NewBodyEvent(eventType Type, source interface{}, bodyID uint64, mass float64) *BodyEvent {
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Mass:   mass,
	}
}

// BounceEvent records a boundary reflection. SpeedAfter is always
// strictly less than SpeedBefore along the violated axis.
type BounceEvent struct {
	BaseEvent
	BodyID      uint64
	Axis        string // "x" or "y"
	SpeedBefore float64
	SpeedAfter  float64
}

// NewBounceEvent creates a new bounce event
func NewBounceEvent(source interface{}, bodyID uint64, axis string, before, after float64) *BounceEvent {
	return &BounceEvent{
		BaseEvent: BaseEvent{
			EventType: BodyBounced,
			Source:    source,
		},
		BodyID:      bodyID,
		Axis:        axis,
		SpeedBefore: before,
		SpeedAfter:  after,
	}
}

// ResampleEvent records a force grid recomputation
type ResampleEvent struct {
	BaseEvent
	GridWidth  int
	GridHeight int
	BodyCount  int
}

// NewResampleEvent creates a new resample event
func NewResampleEvent(source interface{}, gridWidth, gridHeight, bodyCount int) *ResampleEvent {
	return &ResampleEvent{
		BaseEvent: BaseEvent{
			EventType: GridResampled,
			Source:    source,
		},
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
		BodyCount:  bodyCount,
	}
}
