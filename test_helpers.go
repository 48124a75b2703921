package gridlight

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	CarMoves     []CarMovedEvent
	PhaseChanges []PhaseChangeEvent
	Exhaustions  []ExhaustionEvent
	Errors       []error
	Started      []RunInfo
	Stopped      []*Report
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		CarMoves:     make([]CarMovedEvent, 0),
		PhaseChanges: make([]PhaseChangeEvent, 0),
		Exhaustions:  make([]ExhaustionEvent, 0),
		Errors:       make([]error, 0),
		Started:      make([]RunInfo, 0),
		Stopped:      make([]*Report, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnCarMoved(event CarMovedEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.CarMoves = append(o.CarMoves, event)
}

func (o *TestObserver) OnPhaseChange(event PhaseChangeEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = append(o.PhaseChanges, event)
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnExhausted(event ExhaustionEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Exhaustions = append(o.Exhaustions, event)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

func (o *TestObserver) OnRunStarted(info RunInfo) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, info)
}

func (o *TestObserver) OnRunStopped(report *Report) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, report)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.CarMoves = nil
	o.PhaseChanges = nil
	o.Exhaustions = nil
	o.Errors = nil
	o.Started = nil
	o.Stopped = nil
}

func (o *TestObserver) CarMoveCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.CarMoves)
}

func (o *TestObserver) PhaseChangeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.PhaseChanges)
}

func (o *TestObserver) ExhaustionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Exhaustions)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

func (o *TestObserver) LastCarMove() *CarMovedEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.CarMoves) == 0 {
		return nil
	}
	return &o.CarMoves[len(o.CarMoves)-1]
}

// Destinations returns the destination of every recorded car move, in order
func (o *TestObserver) Destinations() []IntersectionID {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	result := make([]IntersectionID, len(o.CarMoves))
	for i, move := range o.CarMoves {
		result[i] = move.Destination
	}
	return result
}

// Test topologies - common network configurations for testing

// CreateScenarioIntersection returns intersection 1 of the grid shipped with examples/grid:
// N2S stop/5->4, S2N go/3->exit, E2W go/2->2, W2E stop/4->exit
func CreateScenarioIntersection() Topology {
	return NewTopology().
		Intersection(1).
		NorthToSouth(Stop, 5, 4).
		SouthToNorth(Go, 3, Exit).
		EastToWest(Go, 2, 2).
		WestToEast(Stop, 4, Exit).
		Build()
}

// CreateDrainedIntersection returns a single intersection with no queued cars
func CreateDrainedIntersection() Topology {
	return NewTopology().
		Intersection(1).
		NorthToSouth(Go, 0, Exit).
		SouthToNorth(Go, 0, Exit).
		EastToWest(Stop, 0, Exit).
		WestToEast(Stop, 0, Exit).
		Build()
}

// CreateLineTopology returns count intersections in a row, each with the
// north-south pair green and cars queued on every approach
func CreateLineTopology(count, cars int) Topology {
	builder := NewTopology()
	for id := 1; id <= count; id++ {
		next := IntersectionID(id + 1)
		if id == count {
			next = Exit
		}
		builder.Intersection(IntersectionID(id)).
			NorthToSouth(Go, cars, next).
			SouthToNorth(Go, cars, IntersectionID(id-1)).
			EastToWest(Stop, cars, Exit).
			WestToEast(Stop, cars, Exit)
	}
	return builder.Build()
}

// Test assertions and utilities

// AssertCars checks the queued cars of every approach of an intersection
func AssertCars(t *testing.T, in Intersection, nts, stn, etw, wte int) {
	t.Helper()
	expected := [4]int{nts, stn, etw, wte}
	for _, a := range Approaches {
		if in.Directions[a].Cars != expected[a] {
			t.Errorf("Expected %s of intersection %d to hold %d cars, got %d",
				a, int(in.ID), expected[a], in.Directions[a].Cars)
		}
	}
}

// AssertPairsComplementary checks that each pair shares a phase and the two
// pairs are opposite
func AssertPairsComplementary(t *testing.T, in Intersection) {
	t.Helper()
	ns := in.Directions[NorthToSouth].Phase
	ew := in.Directions[EastToWest].Phase
	if in.Directions[SouthToNorth].Phase != ns {
		t.Errorf("Expected north-south pair of intersection %d to share a phase", int(in.ID))
	}
	if in.Directions[WestToEast].Phase != ew {
		t.Errorf("Expected east-west pair of intersection %d to share a phase", int(in.ID))
	}
	if ns == ew {
		t.Errorf("Expected pairs of intersection %d to be opposite, both are %s", int(in.ID), ns)
	}
}
