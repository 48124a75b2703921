package gridlight

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Topology is the construction input of a network: every intersection with
// the initial state of its four approaches
type Topology struct {
	Intersections []IntersectionSpec `yaml:"intersections"`
}

// IntersectionSpec describes one intersection of a topology
type IntersectionSpec struct {
	ID           IntersectionID `yaml:"id"`
	NorthToSouth DirectionSpec  `yaml:"north_to_south"`
	SouthToNorth DirectionSpec  `yaml:"south_to_north"`
	EastToWest   DirectionSpec  `yaml:"east_to_west"`
	WestToEast   DirectionSpec  `yaml:"west_to_east"`
}

// DirectionSpec describes the initial state of one approach
type DirectionSpec struct {
	Phase       Phase          `yaml:"phase"`
	Cars        int            `yaml:"cars"`
	Destination IntersectionID `yaml:"destination"`
}

// Direction returns the spec of the given approach
func (s *IntersectionSpec) Direction(a Approach) DirectionSpec {
	switch a {
	case NorthToSouth:
		return s.NorthToSouth
	case SouthToNorth:
		return s.SouthToNorth
	case EastToWest:
		return s.EastToWest
	default:
		return s.WestToEast
	}
}

func (s *IntersectionSpec) setDirection(a Approach, d DirectionSpec) {
	switch a {
	case NorthToSouth:
		s.NorthToSouth = d
	case SouthToNorth:
		s.SouthToNorth = d
	case EastToWest:
		s.EastToWest = d
	default:
		s.WestToEast = d
	}
}

// TotalCars returns the number of cars queued across the topology
func (t Topology) TotalCars() int {
	total := 0
	for i := range t.Intersections {
		for _, a := range Approaches {
			total += t.Intersections[i].Direction(a).Cars
		}
	}
	return total
}

// Scenario is a complete run description: policy, delays and topology
type Scenario struct {
	Policy      string        `yaml:"policy"`
	WorkerDelay time.Duration `yaml:"worker_delay"`
	NaivePeriod time.Duration `yaml:"naive_period"`
	Topology    `yaml:",inline"`
}

// ParseScenario decodes a YAML scenario. Unknown keys are rejected. A missing
// worker_delay selects DefaultWorkerDelay; an explicit 0s disables the pause.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	sc := Scenario{WorkerDelay: DefaultWorkerDelay}
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewConfigurationError("scenario", ErrEmptyNetwork)
		}
		return nil, NewConfigurationError("scenario", err)
	}
	if len(sc.Intersections) == 0 {
		return nil, NewConfigurationError("scenario", ErrEmptyNetwork)
	}
	if sc.Policy != "" {
		if _, err := PolicyByName(sc.Policy, sc.NaivePeriod); err != nil {
			return nil, err
		}
	}
	return &sc, nil
}

// LoadScenario reads a YAML scenario file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigurationError("scenario", fmt.Errorf("read %s: %w", path, err))
	}
	return ParseScenario(bytes.NewReader(data))
}

// MarshalScenario encodes a scenario as YAML
func MarshalScenario(sc *Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LightPolicy returns the light policy named by the scenario, defaulting to naive
func (sc *Scenario) LightPolicy() (Policy, error) {
	name := sc.Policy
	if name == "" {
		name = PolicyNaive
	}
	return PolicyByName(name, sc.NaivePeriod)
}
