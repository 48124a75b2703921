package gridlight

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event names
const (
	EventCarMoved    = "car_moved"
	EventPhaseChange = "phase_change"
	EventExhausted   = "exhausted"
)

// Event is something observable that happened during a run
type Event interface {
	GetID() uuid.UUID
	GetName() string
	GetTimestamp() time.Time
	GetIntersection() IntersectionID
}

// BaseEvent provides the fields shared by every event
type BaseEvent struct {
	id           uuid.UUID
	name         string
	timestamp    time.Time
	intersection IntersectionID
}

func newBaseEvent(name string, intersection IntersectionID) BaseEvent {
	return BaseEvent{
		id:           uuid.New(),
		name:         name,
		timestamp:    time.Now(),
		intersection: intersection,
	}
}

// GetID returns the unique event ID
func (e BaseEvent) GetID() uuid.UUID {
	return e.id
}

// GetName returns the event name
func (e BaseEvent) GetName() string {
	return e.name
}

// GetTimestamp returns when the event was created
func (e BaseEvent) GetTimestamp() time.Time {
	return e.timestamp
}

// GetIntersection returns the intersection the event happened at
func (e BaseEvent) GetIntersection() IntersectionID {
	return e.intersection
}

// CarMovedEvent is emitted once per car that departs an approach
type CarMovedEvent struct {
	BaseEvent
	Approach    Approach
	Destination IntersectionID
	Remaining   int
}

// NewCarMovedEvent creates a car moved event
func NewCarMovedEvent(from IntersectionID, approach Approach, destination IntersectionID, remaining int) CarMovedEvent {
	return CarMovedEvent{
		BaseEvent:   newBaseEvent(EventCarMoved, from),
		Approach:    approach,
		Destination: destination,
		Remaining:   remaining,
	}
}

func (e CarMovedEvent) String() string {
	return fmt.Sprintf("Moved one car to intersection %d", int(e.Destination))
}

// PhaseChangeEvent is emitted when a light controller changes at least one
// phase of an intersection
type PhaseChangeEvent struct {
	BaseEvent
	Policy string
	Before [4]Phase
	After  [4]Phase
}

// NewPhaseChangeEvent creates a phase change event
func NewPhaseChangeEvent(intersection IntersectionID, policy string, before, after [4]Phase) PhaseChangeEvent {
	return PhaseChangeEvent{
		BaseEvent: newBaseEvent(EventPhaseChange, intersection),
		Policy:    policy,
		Before:    before,
		After:     after,
	}
}

// Changed lists the approaches whose phase differs between Before and After
func (e PhaseChangeEvent) Changed() []Approach {
	var changed []Approach
	for _, a := range Approaches {
		if e.Before[a] != e.After[a] {
			changed = append(changed, a)
		}
	}
	return changed
}

// ExhaustionEvent is emitted when a worker iteration could not move any car
// and the worker cleared the run flag
type ExhaustionEvent struct {
	BaseEvent
	Worker    int
	Iteration int
}

// NewExhaustionEvent creates an exhaustion event
func NewExhaustionEvent(intersection IntersectionID, worker, iteration int) ExhaustionEvent {
	return ExhaustionEvent{
		BaseEvent: newBaseEvent(EventExhausted, intersection),
		Worker:    worker,
		Iteration: iteration,
	}
}
