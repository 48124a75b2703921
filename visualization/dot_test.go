package visualization_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/gridlight"
	"github.com/anggasct/gridlight/visualization"
)

func sampleTopology() gridlight.Topology {
	return gridlight.NewTopology().
		Intersection(1).
		NorthToSouth(gridlight.Stop, 5, 4).
		SouthToNorth(gridlight.Go, 3, gridlight.Exit).
		EastToWest(gridlight.Go, 2, 2).
		WestToEast(gridlight.Stop, 4, gridlight.Exit).
		Intersection(2).
		NorthToSouth(gridlight.Go, 6, 5).
		SouthToNorth(gridlight.Stop, 1, gridlight.Exit).
		EastToWest(gridlight.Go, 3, 3).
		WestToEast(gridlight.Stop, 2, 1).
		Build()
}

func TestDOTGeneration(t *testing.T) {
	generator := visualization.NewDOTGenerator(sampleTopology())

	dotContent, err := generator.Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "digraph Network")
	assert.Contains(t, dotContent, "\"1\" [label=\"intersection 1\\n14 cars\"]")
	assert.Contains(t, dotContent, "\"exit\" [shape=doublecircle")
	assert.Contains(t, dotContent, "\"1\" -> \"4\" [label=\"north_to_south (5)\", color=red, style=dashed]")
	assert.Contains(t, dotContent, "\"1\" -> \"exit\" [label=\"south_to_north (3)\", color=darkgreen, style=solid]")
	assert.Contains(t, dotContent, "\"2\" -> \"1\"")

	t.Logf("Generated DOT content:\n%s", dotContent)
}

func TestDOTGeneration_CompactOptions(t *testing.T) {
	opts := visualization.DefaultDOTOptions()
	opts.ShowCars = false
	opts.ShowPhases = false
	opts.ShowExit = false

	dotContent, err := visualization.NewDOTGenerator(sampleTopology(), opts).Generate()
	require.NoError(t, err)

	assert.NotContains(t, dotContent, "exit")
	assert.NotContains(t, dotContent, "cars")
	assert.NotContains(t, dotContent, "color=")
	assert.Contains(t, dotContent, "\"1\" -> \"2\" [label=\"east_to_west\"]")
}

func TestDOTGeneration_InvalidPhase(t *testing.T) {
	topology := sampleTopology()
	topology.Intersections[0].EastToWest.Phase = gridlight.Phase(7)

	_, err := visualization.NewDOTGenerator(topology).Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, gridlight.ErrInvalidPhase)
}

func TestDOTGeneration_Snapshot(t *testing.T) {
	network, err := gridlight.NewNetwork(sampleTopology())
	require.NoError(t, err)

	require.NoError(t, network.Exclusive("test", func(s *gridlight.Shared) {
		s.Intersections[0].ToggleNaive()
	}))

	dotContent, err := visualization.NewSnapshotDOTGenerator(network.Snapshot()).Generate()
	require.NoError(t, err)

	assert.Contains(t, dotContent, "\"1\" -> \"4\" [label=\"north_to_south (5)\", color=darkgreen, style=solid]")
}

func TestDOTGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.dot")

	require.NoError(t, visualization.NewDOTGenerator(sampleTopology()).GenerateToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph Network {"))
}

func TestDOTGenerateSVG(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("Graphviz dot not installed")
	}

	svg, err := visualization.NewDOTGenerator(sampleTopology()).GenerateSVG()
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "intersection 1")
}

func TestDOTGenerateSVG_InvalidPhase(t *testing.T) {
	topology := gridlight.NewTopology().
		Intersection(1).NorthToSouth(gridlight.Phase(7), 1, gridlight.Exit).
		Build()

	_, err := visualization.NewDOTGenerator(topology).GenerateSVG()
	assert.ErrorIs(t, err, gridlight.ErrInvalidPhase)
}
