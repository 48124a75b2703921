package gridlight

import (
	"context"
	"fmt"
	"time"
)

// DefaultWorkerDelay is the pause between two iterations of a worker
const DefaultWorkerDelay = time.Second

// Worker drains the green approaches of one intersection until the run flag
// is cleared
type Worker struct {
	index     int
	network   *Network
	delay     time.Duration
	observers *ObserverManager

	iterations int
	moved      int
	exhausted  bool
}

// NewWorker creates the worker for the intersection at position index
func NewWorker(index int, network *Network, delay time.Duration, observers *ObserverManager) *Worker {
	if observers == nil {
		observers = NewObserverManager()
	}
	return &Worker{
		index:     index,
		network:   network,
		delay:     delay,
		observers: observers,
	}
}

// Name identifies the worker as an actor on the network
func (w *Worker) Name() string {
	return fmt.Sprintf("worker-%d", w.index)
}

// Step performs one iteration: it tries to move one car through every
// approach in drain order, and clears the run flag if none moved. It must be
// called with exclusive access.
func (w *Worker) Step(s *Shared) (moved int, exhausted bool) {
	w.iterations++
	in := s.Intersections[w.index]

	for _, a := range Approaches {
		if event, ok := in.AdvanceOne(a); ok {
			moved++
			w.observers.NotifyCarMoved(event)
		}
	}
	w.moved += moved

	if moved == 0 {
		s.Halt()
		w.exhausted = true
		w.observers.NotifyExhausted(NewExhaustionEvent(in.ID, w.index, w.iterations))
		return 0, true
	}
	return moved, false
}

// Run iterates until the run flag is cleared. Cancelling ctx clears the run
// flag; the worker then finishes its next iteration and returns.
func (w *Worker) Run(ctx context.Context) error {
	for {
		var stop bool
		err := w.network.Exclusive(w.Name(), func(s *Shared) {
			w.Step(s)
			stop = !s.Running()
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
		w.pause(ctx)
	}
}

func (w *Worker) pause(ctx context.Context) {
	if w.delay <= 0 {
		return
	}
	timer := time.NewTimer(w.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-w.network.Done():
	case <-ctx.Done():
		w.network.Halt()
	}
}

// Iterations returns how many iterations the worker ran. Read it only after
// Run has returned.
func (w *Worker) Iterations() int {
	return w.iterations
}

// Moved returns how many cars the worker moved. Read it only after Run has
// returned.
func (w *Worker) Moved() int {
	return w.moved
}

// Exhausted reports whether the worker stopped the run. Read it only after
// Run has returned.
func (w *Worker) Exhausted() bool {
	return w.exhausted
}
