package gridlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoIntersectionScenario = `
policy: efficient
worker_delay: 250ms
naive_period: 1s
intersections:
  - id: 1
    north_to_south: {phase: red, cars: 5, destination: 2}
    south_to_north: {phase: green, cars: 3, destination: 0}
    east_to_west: {phase: go, cars: 2, destination: 2}
    west_to_east: {phase: stop, cars: 4, destination: 0}
  - id: 2
    north_to_south: {phase: green, cars: 6}
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario(strings.NewReader(twoIntersectionScenario))
	require.NoError(t, err)

	assert.Equal(t, "efficient", sc.Policy)
	assert.Equal(t, 250*time.Millisecond, sc.WorkerDelay)
	assert.Equal(t, time.Second, sc.NaivePeriod)
	require.Len(t, sc.Intersections, 2)

	first := sc.Intersections[0]
	assert.Equal(t, IntersectionID(1), first.ID)
	assert.Equal(t, DirectionSpec{Phase: Stop, Cars: 5, Destination: 2}, first.NorthToSouth)
	assert.Equal(t, DirectionSpec{Phase: Go, Cars: 3, Destination: Exit}, first.SouthToNorth)
	assert.Equal(t, Go, first.EastToWest.Phase)
	assert.Equal(t, Stop, first.WestToEast.Phase)

	second := sc.Intersections[1]
	assert.Equal(t, DirectionSpec{Phase: Go, Cars: 6, Destination: Exit}, second.NorthToSouth)
	assert.Equal(t, DirectionSpec{}, second.WestToEast, "omitted approaches are empty and stopped")

	assert.Equal(t, 20, sc.TotalCars())

	policy, err := sc.LightPolicy()
	require.NoError(t, err)
	assert.Equal(t, PolicyPriority, policy.Name())
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"empty document", "", ErrEmptyNetwork},
		{"no intersections", "policy: naive\n", ErrEmptyNetwork},
		{"unknown policy", "policy: max-pressure\nintersections:\n  - id: 1\n", ErrUnknownPolicy},
		{"bad phase", "intersections:\n  - id: 1\n    north_to_south: {phase: amber}\n", ErrInvalidPhase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestParseScenario_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseScenario(strings.NewReader("intersections:\n  - id: 1\n    north_to_south: {colour: red}\n"))
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "colour")
}

func TestScenario_LightPolicyDefaultsToNaive(t *testing.T) {
	sc := &Scenario{NaivePeriod: 3 * time.Millisecond}

	policy, err := sc.LightPolicy()
	require.NoError(t, err)
	assert.Equal(t, PolicyNaive, policy.Name())
	assert.Equal(t, 3*time.Millisecond, policy.Interval())
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoIntersectionScenario), 0o600))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Len(t, sc.Intersections, 2)

	_, err = LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestMarshalScenario(t *testing.T) {
	original := &Scenario{
		Policy:      PolicyNaive,
		WorkerDelay: 10 * time.Millisecond,
		NaivePeriod: 2 * time.Second,
		Topology:    CreateScenarioIntersection(),
	}

	data, err := MarshalScenario(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), "phase: go")
	assert.Contains(t, string(data), "worker_delay: 10ms")
	assert.NotContains(t, string(data), "topology")

	decoded, err := ParseScenario(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestTopology_TotalCars(t *testing.T) {
	assert.Equal(t, 14, CreateScenarioIntersection().TotalCars())
	assert.Equal(t, 0, Topology{}.TotalCars())
	assert.Equal(t, 3*4*2, CreateLineTopology(3, 2).TotalCars())
}

func TestParseScenario_WorkerDelay(t *testing.T) {
	sc, err := ParseScenario(strings.NewReader("intersections:\n  - id: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultWorkerDelay, sc.WorkerDelay, "missing key keeps the default")

	sc, err = ParseScenario(strings.NewReader("worker_delay: 0s\nintersections:\n  - id: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), sc.WorkerDelay, "an explicit zero disables the pause")
}
