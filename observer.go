package gridlight

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Observer represents an entity that observes a simulation run
type Observer interface {
	// Required methods

	// OnCarMoved is called when a car departs an approach
	OnCarMoved(event CarMovedEvent)

	// OnPhaseChange is called when the light controller changes phases
	OnPhaseChange(event PhaseChangeEvent)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnExhausted is called when a worker could not move any car and stopped the run
	OnExhausted(event ExhaustionEvent)

	// OnError is called when an error occurs during the run
	OnError(err error)

	// OnRunStarted is called before any worker or controller starts
	OnRunStarted(info RunInfo)

	// OnRunStopped is called once every worker and the controller have finished
	OnRunStopped(report *Report)
}

// RunInfo describes a run that is about to start
type RunInfo struct {
	ID            uuid.UUID
	Policy        string
	Intersections int
	QueuedCars    int
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnCarMoved implements the required Observer method
func (o *BaseObserver) OnCarMoved(event CarMovedEvent) {}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(event PhaseChangeEvent) {}

// OnExhausted implements the optional ExtendedObserver method
func (o *BaseObserver) OnExhausted(event ExhaustionEvent) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// OnRunStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnRunStarted(info RunInfo) {}

// OnRunStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnRunStopped(report *Report) {}

// ObserverManager manages a collection of observers. A panicking observer is
// recovered and reported through OnError; it never reaches the caller.
type ObserverManager struct {
	mutex     sync.RWMutex
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// guard runs notify and turns a panic into an OnError notification
func guard(observer Observer, method string, notify func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", method, r))
				}()
			}
		}
	}()
	notify()
}

// NotifyCarMoved notifies all observers that a car moved
func (om *ObserverManager) NotifyCarMoved(event CarMovedEvent) {
	for _, observer := range om.snapshot() {
		observer := observer
		guard(observer, "OnCarMoved", func() { observer.OnCarMoved(event) })
	}
}

// NotifyPhaseChange notifies all observers of a phase change
func (om *ObserverManager) NotifyPhaseChange(event PhaseChangeEvent) {
	for _, observer := range om.snapshot() {
		observer := observer
		guard(observer, "OnPhaseChange", func() { observer.OnPhaseChange(event) })
	}
}

// NotifyExhausted notifies all observers of local exhaustion
func (om *ObserverManager) NotifyExhausted(event ExhaustionEvent) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			guard(observer, "OnExhausted", func() { extObs.OnExhausted(event) })
		}
	}
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}

// NotifyRunStarted notifies all observers that a run is starting
func (om *ObserverManager) NotifyRunStarted(info RunInfo) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			guard(observer, "OnRunStarted", func() { extObs.OnRunStarted(info) })
		}
	}
}

// NotifyRunStopped notifies all observers that a run has finished
func (om *ObserverManager) NotifyRunStopped(report *Report) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			guard(observer, "OnRunStopped", func() { extObs.OnRunStopped(report) })
		}
	}
}
