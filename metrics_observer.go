package gridlight

import (
	"sync"
	"time"
)

// MetricsObserver collects counters about a run
type MetricsObserver struct {
	movedFrom    map[IntersectionID]int
	movedTo      map[IntersectionID]int
	movedByRoute map[Approach]int
	phaseChanges map[IntersectionID]int
	exhausted    []IntersectionID
	errorCount   int
	started      time.Time
	stopped      time.Time
	mutex        sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		movedFrom:    make(map[IntersectionID]int),
		movedTo:      make(map[IntersectionID]int),
		movedByRoute: make(map[Approach]int),
		phaseChanges: make(map[IntersectionID]int),
	}
}

// OnCarMoved records a departure
func (o *MetricsObserver) OnCarMoved(event CarMovedEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.movedFrom[event.GetIntersection()]++
	o.movedTo[event.Destination]++
	o.movedByRoute[event.Approach]++
}

// OnPhaseChange records a phase change
func (o *MetricsObserver) OnPhaseChange(event PhaseChangeEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.phaseChanges[event.GetIntersection()]++
}

// OnExhausted records which intersection stopped the run
func (o *MetricsObserver) OnExhausted(event ExhaustionEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.exhausted = append(o.exhausted, event.GetIntersection())
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// OnRunStarted records the start time
func (o *MetricsObserver) OnRunStarted(info RunInfo) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.started = time.Now()
}

// OnRunStopped records the stop time
func (o *MetricsObserver) OnRunStopped(report *Report) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.stopped = time.Now()
}

// GetCarsMoved returns the total number of cars moved
func (o *MetricsObserver) GetCarsMoved() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	total := 0
	for _, count := range o.movedFrom {
		total += count
	}
	return total
}

// GetMovedFrom returns the number of departures per intersection
func (o *MetricsObserver) GetMovedFrom() map[IntersectionID]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return copyCounts(o.movedFrom)
}

// GetMovedTo returns the number of arrivals per destination, Exit included
func (o *MetricsObserver) GetMovedTo() map[IntersectionID]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return copyCounts(o.movedTo)
}

// GetMovedByApproach returns the number of departures per approach
func (o *MetricsObserver) GetMovedByApproach() map[Approach]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[Approach]int)
	for a, count := range o.movedByRoute {
		result[a] = count
	}
	return result
}

// GetPhaseChanges returns the number of phase changes per intersection
func (o *MetricsObserver) GetPhaseChanges() map[IntersectionID]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return copyCounts(o.phaseChanges)
}

// GetExhausted returns the intersections that reported exhaustion, in order
func (o *MetricsObserver) GetExhausted() []IntersectionID {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]IntersectionID, len(o.exhausted))
	copy(result, o.exhausted)
	return result
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// GetDuration returns the time between run start and stop, or zero while
// the run is in progress
func (o *MetricsObserver) GetDuration() time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	if o.started.IsZero() || o.stopped.IsZero() {
		return 0
	}
	return o.stopped.Sub(o.started)
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.movedFrom = make(map[IntersectionID]int)
	o.movedTo = make(map[IntersectionID]int)
	o.movedByRoute = make(map[Approach]int)
	o.phaseChanges = make(map[IntersectionID]int)
	o.exhausted = nil
	o.errorCount = 0
	o.started = time.Time{}
	o.stopped = time.Time{}
}

func copyCounts(in map[IntersectionID]int) map[IntersectionID]int {
	result := make(map[IntersectionID]int)
	for id, count := range in {
		result[id] = count
	}
	return result
}
