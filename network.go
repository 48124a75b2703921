package gridlight

import (
	"fmt"
	"sync"
)

// Shared is the state guarded by the network lock: every intersection plus
// the run flag. It is only valid inside an Exclusive callback.
type Shared struct {
	Intersections []*Intersection

	running bool
	network *Network
}

// Running reports whether the simulation should continue
func (s *Shared) Running() bool {
	return s.running
}

// Halt clears the run flag. Calling it more than once is harmless.
func (s *Shared) Halt() {
	s.running = false
	s.network.closeDone()
}

// Network is the set of intersections shared by every worker and the light
// controller. A single mutex guards the intersections and the run flag
// together, so only one actor makes progress at a time.
type Network struct {
	mutex    sync.Mutex
	shared   Shared
	poisoned any

	done     chan struct{}
	doneOnce sync.Once
}

// NewNetwork creates a running network from a topology
func NewNetwork(topology Topology) (*Network, error) {
	if len(topology.Intersections) == 0 {
		return nil, NewConfigurationError("topology", ErrEmptyNetwork)
	}

	n := &Network{done: make(chan struct{})}
	n.shared = Shared{
		Intersections: make([]*Intersection, 0, len(topology.Intersections)),
		running:       true,
		network:       n,
	}

	for i, spec := range topology.Intersections {
		in := &Intersection{ID: spec.ID}
		for _, a := range Approaches {
			d := spec.Direction(a)
			if d.Cars < 0 {
				return nil, NewConfigurationError(
					fmt.Sprintf("intersection %d (%s)", i, a),
					fmt.Errorf("%w: %d", ErrNegativeCars, d.Cars),
				)
			}
			if d.Phase != Stop && d.Phase != Go {
				return nil, NewConfigurationError(
					fmt.Sprintf("intersection %d (%s)", i, a),
					fmt.Errorf("%w: %d", ErrInvalidPhase, int(d.Phase)),
				)
			}
			in.Directions[a] = Direction{Phase: d.Phase, Cars: d.Cars, Destination: d.Destination}
		}
		n.shared.Intersections = append(n.shared.Intersections, in)
	}

	return n, nil
}

// Len returns the number of intersections
func (n *Network) Len() int {
	return len(n.shared.Intersections)
}

// Exclusive runs fn while holding the network lock. If fn panics the network
// is poisoned and every later call fails with ErrPoisoned.
func (n *Network) Exclusive(actor string, fn func(s *Shared)) (err error) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.poisoned != nil {
		return NewPoisonedError(actor, n.poisoned)
	}

	defer func() {
		if r := recover(); r != nil {
			n.poisoned = fmt.Sprintf("panic in %s: %v", actor, r)
			n.closeDone()
			err = NewPoisonedError(actor, n.poisoned)
		}
	}()

	fn(&n.shared)
	return nil
}

// Halt clears the run flag. Unlike Exclusive it also succeeds on a poisoned
// network, so a coordinator can always release waiting actors.
func (n *Network) Halt() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.shared.running = false
	n.closeDone()
}

// Running reports the run flag
func (n *Network) Running() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.shared.running
}

// Done returns a channel closed once the run flag is first cleared or the
// network is poisoned
func (n *Network) Done() <-chan struct{} {
	return n.done
}

// Poisoned reports whether a panic has poisoned the network
func (n *Network) Poisoned() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.poisoned != nil
}

// Snapshot returns a copy of every intersection
func (n *Network) Snapshot() []Intersection {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	result := make([]Intersection, len(n.shared.Intersections))
	for i, in := range n.shared.Intersections {
		result[i] = *in
	}
	return result
}

// QueuedCars returns the number of cars still waiting across the network
func (n *Network) QueuedCars() int {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	total := 0
	for _, in := range n.shared.Intersections {
		total += in.QueuedCars()
	}
	return total
}

func (n *Network) closeDone() {
	n.doneOnce.Do(func() { close(n.done) })
}
