package gridlight

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Policy names accepted by PolicyByName
const (
	PolicyNaive    = "naive"
	PolicyPriority = "priority"
)

// DefaultNaivePeriod is the pause before each naive toggle pass
const DefaultNaivePeriod = 2 * time.Second

// Policy decides how the light controller changes the phases of one
// intersection. Exactly one policy drives a run.
type Policy interface {
	// Name identifies the policy in events and reports
	Name() string

	// Interval is the pause before each pass over the network. Zero means
	// the controller polls without pausing.
	Interval() time.Duration

	// Apply updates the phases of one intersection and reports whether any
	// phase changed
	Apply(in *Intersection) bool
}

// NaivePolicy flips every intersection on a fixed period, ignoring demand
type NaivePolicy struct {
	Period time.Duration
}

// NewNaivePolicy creates a naive policy. A non-positive period selects
// DefaultNaivePeriod.
func NewNaivePolicy(period time.Duration) *NaivePolicy {
	if period <= 0 {
		period = DefaultNaivePeriod
	}
	return &NaivePolicy{Period: period}
}

func (p *NaivePolicy) Name() string { return PolicyNaive }

func (p *NaivePolicy) Interval() time.Duration { return p.Period }

func (p *NaivePolicy) Apply(in *Intersection) bool {
	in.ToggleNaive()
	return true
}

// PriorityPolicy hands Go to the busier pair as soon as every approach that
// currently has Go has drained
type PriorityPolicy struct{}

// NewPriorityPolicy creates a priority policy
func NewPriorityPolicy() *PriorityPolicy {
	return &PriorityPolicy{}
}

func (p *PriorityPolicy) Name() string { return PolicyPriority }

func (p *PriorityPolicy) Interval() time.Duration { return 0 }

func (p *PriorityPolicy) Apply(in *Intersection) bool {
	if !in.GoDrained() {
		return false
	}
	return in.TogglePriority()
}

// PolicyByName returns the policy for a name. "sequential" and "efficient"
// are accepted as aliases of naive and priority. naivePeriod only applies to
// the naive policy.
func PolicyByName(name string, naivePeriod time.Duration) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicyNaive, "sequential":
		return NewNaivePolicy(naivePeriod), nil
	case PolicyPriority, "efficient":
		return NewPriorityPolicy(), nil
	}
	return nil, NewConfigurationError("policy", fmt.Errorf("%w: %q", ErrUnknownPolicy, name))
}

// LightController is the single task that changes signal phases while the
// run flag is set
type LightController struct {
	policy    Policy
	network   *Network
	observers *ObserverManager
	passes    int
	changes   int
}

// NewLightController creates a controller driving network with policy
func NewLightController(network *Network, policy Policy, observers *ObserverManager) *LightController {
	if observers == nil {
		observers = NewObserverManager()
	}
	return &LightController{
		policy:    policy,
		network:   network,
		observers: observers,
	}
}

// Name identifies the controller as an actor on the network
func (c *LightController) Name() string {
	return "controller:" + c.policy.Name()
}

// Policy returns the policy driving the controller
func (c *LightController) Policy() Policy {
	return c.policy
}

// Pass applies the policy to every intersection once and returns how many
// intersections changed. It must be called with exclusive access.
func (c *LightController) Pass(s *Shared) int {
	c.passes++
	changed := 0
	for _, in := range s.Intersections {
		before := in.Phases()
		if !c.policy.Apply(in) {
			continue
		}
		after := in.Phases()
		if before == after {
			continue
		}
		changed++
		c.observers.NotifyPhaseChange(NewPhaseChangeEvent(in.ID, c.policy.Name(), before, after))
	}
	c.changes += changed
	return changed
}

// Passes returns how many passes the controller made. Read it only after Run
// has returned.
func (c *LightController) Passes() int {
	return c.passes
}

// Changes returns how many intersection phase changes the controller made.
// Read it only after Run has returned.
func (c *LightController) Changes() int {
	return c.changes
}

// Run drives the network until the run flag is cleared. Cancelling ctx
// clears the run flag.
func (c *LightController) Run(ctx context.Context) error {
	interval := c.policy.Interval()
	for {
		if interval > 0 {
			var running bool
			if err := c.network.Exclusive(c.Name(), func(s *Shared) { running = s.Running() }); err != nil {
				return err
			}
			if !running {
				return nil
			}
			c.pause(ctx, interval)
		} else if ctx.Err() != nil {
			c.network.Halt()
		}

		var stop bool
		err := c.network.Exclusive(c.Name(), func(s *Shared) {
			if !s.Running() {
				stop = true
				return
			}
			c.Pass(s)
		})
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

func (c *LightController) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-c.network.Done():
	case <-ctx.Done():
		c.network.Halt()
	}
}
