package gridlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopologyBuilder_Basic(t *testing.T) {
	topology := NewTopology().
		Intersection(1).
		NorthToSouth(Stop, 5, 4).
		SouthToNorth(Go, 3, Exit).
		EastToWest(Go, 2, 2).
		WestToEast(Stop, 4, Exit).
		Build()

	require.Len(t, topology.Intersections, 1)
	spec := topology.Intersections[0]
	assert.Equal(t, IntersectionID(1), spec.ID)
	assert.Equal(t, DirectionSpec{Phase: Stop, Cars: 5, Destination: 4}, spec.NorthToSouth)
	assert.Equal(t, DirectionSpec{Phase: Go, Cars: 3, Destination: Exit}, spec.SouthToNorth)
	assert.Equal(t, DirectionSpec{Phase: Go, Cars: 2, Destination: 2}, spec.EastToWest)
	assert.Equal(t, DirectionSpec{Phase: Stop, Cars: 4, Destination: Exit}, spec.WestToEast)
}

func TestTopologyBuilder_KeepsFirstNamedOrder(t *testing.T) {
	b := NewTopology()
	b.Intersection(7).NorthToSouth(Go, 1, Exit)
	b.Intersection(3).NorthToSouth(Go, 2, Exit)
	b.Intersection(7).SouthToNorth(Go, 9, 3)

	topology := b.Build()

	require.Len(t, topology.Intersections, 2)
	assert.Equal(t, IntersectionID(7), topology.Intersections[0].ID)
	assert.Equal(t, IntersectionID(3), topology.Intersections[1].ID)
	assert.Equal(t, 1, topology.Intersections[0].NorthToSouth.Cars, "resuming keeps earlier settings")
	assert.Equal(t, 9, topology.Intersections[0].SouthToNorth.Cars)
}

func TestTopologyBuilder_PairHelpers(t *testing.T) {
	topology := NewTopology().
		Intersection(1).
		NorthToSouth(Stop, 1, Exit).SouthToNorth(Stop, 2, Exit).
		EastToWest(Go, 3, Exit).WestToEast(Go, 4, Exit).
		NorthSouthGo().
		Intersection(2).
		EastWestGo().
		Build()

	first := topology.Intersections[0]
	assert.Equal(t, Go, first.NorthToSouth.Phase)
	assert.Equal(t, Go, first.SouthToNorth.Phase)
	assert.Equal(t, Stop, first.EastToWest.Phase)
	assert.Equal(t, Stop, first.WestToEast.Phase)
	assert.Equal(t, 4, first.WestToEast.Cars, "pair helpers keep queues")

	second := topology.Intersections[1]
	assert.Equal(t, Stop, second.NorthToSouth.Phase)
	assert.Equal(t, Go, second.EastToWest.Phase)
}

func TestTopologyBuilder_BuildReturnsCopy(t *testing.T) {
	b := NewTopology()
	b.Intersection(1).NorthToSouth(Go, 1, Exit)

	topology := b.Build()
	topology.Intersections[0].NorthToSouth.Cars = 50

	assert.Equal(t, 1, b.Build().Intersections[0].NorthToSouth.Cars)
}

func TestTopologyBuilder_FeedsNetwork(t *testing.T) {
	network, err := NewNetwork(NewTopology().Intersection(1).NorthSouthGo().Intersection(2).EastWestGo().Build())
	require.NoError(t, err)

	snapshot := network.Snapshot()
	require.Len(t, snapshot, 2)
	AssertPairsComplementary(t, snapshot[0])
	AssertPairsComplementary(t, snapshot[1])
}
