package gridlight

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyStarted is returned when Run is called on a runner twice
var ErrAlreadyStarted = errors.New("gridlight: runner already started")

// Option configures a Runner
type Option func(*runnerOptions)

type runnerOptions struct {
	workerDelay time.Duration
	observers   []Observer
	runID       uuid.UUID
}

// WithWorkerDelay sets the pause between two worker iterations
func WithWorkerDelay(d time.Duration) Option {
	return func(o *runnerOptions) {
		o.workerDelay = d
	}
}

// WithObserver registers an observer for the run
func WithObserver(observer Observer) Option {
	return func(o *runnerOptions) {
		o.observers = append(o.observers, observer)
	}
}

// WithRunID sets the run ID instead of generating one
func WithRunID(id uuid.UUID) Option {
	return func(o *runnerOptions) {
		o.runID = id
	}
}

// Report summarises a finished run
type Report struct {
	RunID       uuid.UUID
	Policy      string
	Started     time.Time
	Elapsed     time.Duration
	InitialCars int
	CarsMoved   int
	QueuedCars  int
	Iterations  int
	Cancelled   bool
	// PhaseChanges counts intersections whose phases the controller changed
	PhaseChanges int
	// ExhaustedAt lists the intersections whose worker cleared the run flag
	ExhaustedAt []IntersectionID
	Final       []Intersection
	Err         error
}

// Runner coordinates one simulation run: it owns the network and the run
// flag, starts the light controller and one worker per intersection, and
// joins them.
type Runner struct {
	id         uuid.UUID
	network    *Network
	controller *LightController
	workers    []*Worker
	observers  *ObserverManager
	initial    int

	mutex   sync.Mutex
	started bool
}

// NewRunner builds the network for topology and prepares a run driven by policy
func NewRunner(topology Topology, policy Policy, opts ...Option) (*Runner, error) {
	if policy == nil {
		return nil, NewConfigurationError("policy", fmt.Errorf("%w: <nil>", ErrUnknownPolicy))
	}

	options := runnerOptions{workerDelay: DefaultWorkerDelay}
	for _, opt := range opts {
		opt(&options)
	}
	if options.workerDelay < 0 {
		return nil, NewConfigurationError("worker delay", fmt.Errorf("negative delay %s", options.workerDelay))
	}
	if options.runID == uuid.Nil {
		options.runID = uuid.New()
	}

	network, err := NewNetwork(topology)
	if err != nil {
		return nil, err
	}

	observers := NewObserverManager()
	for _, o := range options.observers {
		observers.AddObserver(o)
	}

	r := &Runner{
		id:         options.runID,
		network:    network,
		controller: NewLightController(network, policy, observers),
		observers:  observers,
		initial:    topology.TotalCars(),
	}
	for i := 0; i < network.Len(); i++ {
		r.workers = append(r.workers, NewWorker(i, network, options.workerDelay, observers))
	}
	return r, nil
}

// ID returns the run ID
func (r *Runner) ID() uuid.UUID {
	return r.id
}

// Network returns the network driven by the runner
func (r *Runner) Network() *Network {
	return r.network
}

// AddObserver registers an observer before the run starts
func (r *Runner) AddObserver(observer Observer) {
	r.observers.AddObserver(observer)
}

// Run executes the simulation until a worker finds its intersection
// exhausted, ctx is cancelled, or the shared state is poisoned. The report
// is returned even when the run aborts.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.mutex.Lock()
	if r.started {
		r.mutex.Unlock()
		return nil, ErrAlreadyStarted
	}
	r.started = true
	r.mutex.Unlock()

	start := time.Now()
	r.observers.NotifyRunStarted(RunInfo{
		ID:            r.id,
		Policy:        r.controller.Policy().Name(),
		Intersections: r.network.Len(),
		QueuedCars:    r.initial,
	})

	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			r.network.Halt()
		case <-watchDone:
		}
	}()

	var controllerErr error
	controllerDone := make(chan struct{})
	go func() {
		defer close(controllerDone)
		controllerErr = r.guard(r.controller.Name(), func() error { return r.controller.Run(ctx) })
	}()

	workerErrs := make([]error, len(r.workers))
	var wg sync.WaitGroup
	for i, w := range r.workers {
		wg.Add(1)
		go func(i int, w *Worker) {
			defer wg.Done()
			workerErrs[i] = r.guard(w.Name(), func() error { return w.Run(ctx) })
		}(i, w)
	}
	wg.Wait()

	// Covers runs where no worker cleared the flag itself
	r.network.Halt()
	<-controllerDone
	close(watchDone)

	report := r.report(start)
	report.Cancelled = ctx.Err() != nil

	if err := errors.Join(workerErrs...); err != nil {
		report.Err = &RunError{Code: ErrCodeWorkerFailed, RunID: r.id, Stage: "workers", Err: err}
	} else if controllerErr != nil {
		report.Err = &RunError{Code: ErrCodeControllerFailed, RunID: r.id, Stage: "controller", Err: controllerErr}
	}
	if report.Err != nil {
		r.observers.NotifyError(report.Err)
	}
	r.observers.NotifyRunStopped(report)

	return report, report.Err
}

// guard turns a panic escaping an actor into an error and halts the run
func (r *Runner) guard(actor string, run func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.network.Halt()
			err = fmt.Errorf("%s panicked: %v", actor, p)
		}
	}()
	return run()
}

func (r *Runner) report(start time.Time) *Report {
	report := &Report{
		RunID:        r.id,
		Policy:       r.controller.Policy().Name(),
		Started:      start,
		Elapsed:      time.Since(start),
		InitialCars:  r.initial,
		QueuedCars:   r.network.QueuedCars(),
		PhaseChanges: r.controller.Changes(),
		Final:        r.network.Snapshot(),
	}
	for _, w := range r.workers {
		report.CarsMoved += w.Moved()
		report.Iterations += w.Iterations()
		if w.Exhausted() {
			report.ExhaustedAt = append(report.ExhaustedAt, report.Final[w.index].ID)
		}
	}
	return report
}
