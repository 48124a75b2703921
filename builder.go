package gridlight

// TopologyBuilder provides the main entry point for building topologies
type TopologyBuilder interface {
	Intersection(id IntersectionID) IntersectionBuilder
	Build() Topology
}

// IntersectionBuilder configures the approaches of one intersection
type IntersectionBuilder interface {
	NorthToSouth(phase Phase, cars int, destination IntersectionID) IntersectionBuilder
	SouthToNorth(phase Phase, cars int, destination IntersectionID) IntersectionBuilder
	EastToWest(phase Phase, cars int, destination IntersectionID) IntersectionBuilder
	WestToEast(phase Phase, cars int, destination IntersectionID) IntersectionBuilder

	// NorthSouthGo sets the north-south pair to Go and the east-west pair to Stop
	NorthSouthGo() IntersectionBuilder
	// EastWestGo sets the east-west pair to Go and the north-south pair to Stop
	EastWestGo() IntersectionBuilder

	Intersection(id IntersectionID) IntersectionBuilder
	Build() Topology
}

type topologyBuilderImpl struct {
	intersections []IntersectionSpec
	index         map[IntersectionID]int
}

// NewTopology creates a new topology builder
func NewTopology() TopologyBuilder {
	return &topologyBuilderImpl{
		intersections: make([]IntersectionSpec, 0),
		index:         make(map[IntersectionID]int),
	}
}

// Intersection starts or resumes configuring the intersection with the given ID.
// Intersections keep the order in which they were first named.
func (tb *topologyBuilderImpl) Intersection(id IntersectionID) IntersectionBuilder {
	pos, exists := tb.index[id]
	if !exists {
		pos = len(tb.intersections)
		tb.intersections = append(tb.intersections, IntersectionSpec{ID: id})
		tb.index[id] = pos
	}
	return &intersectionBuilderImpl{topology: tb, pos: pos}
}

func (tb *topologyBuilderImpl) Build() Topology {
	result := make([]IntersectionSpec, len(tb.intersections))
	copy(result, tb.intersections)
	return Topology{Intersections: result}
}

type intersectionBuilderImpl struct {
	topology *topologyBuilderImpl
	pos      int
}

func (ib *intersectionBuilderImpl) set(a Approach, phase Phase, cars int, destination IntersectionID) IntersectionBuilder {
	ib.topology.intersections[ib.pos].setDirection(a, DirectionSpec{
		Phase:       phase,
		Cars:        cars,
		Destination: destination,
	})
	return ib
}

func (ib *intersectionBuilderImpl) NorthToSouth(phase Phase, cars int, destination IntersectionID) IntersectionBuilder {
	return ib.set(NorthToSouth, phase, cars, destination)
}

func (ib *intersectionBuilderImpl) SouthToNorth(phase Phase, cars int, destination IntersectionID) IntersectionBuilder {
	return ib.set(SouthToNorth, phase, cars, destination)
}

func (ib *intersectionBuilderImpl) EastToWest(phase Phase, cars int, destination IntersectionID) IntersectionBuilder {
	return ib.set(EastToWest, phase, cars, destination)
}

func (ib *intersectionBuilderImpl) WestToEast(phase Phase, cars int, destination IntersectionID) IntersectionBuilder {
	return ib.set(WestToEast, phase, cars, destination)
}

func (ib *intersectionBuilderImpl) NorthSouthGo() IntersectionBuilder {
	return ib.pairs(Go, Stop)
}

func (ib *intersectionBuilderImpl) EastWestGo() IntersectionBuilder {
	return ib.pairs(Stop, Go)
}

func (ib *intersectionBuilderImpl) pairs(ns, ew Phase) IntersectionBuilder {
	spec := &ib.topology.intersections[ib.pos]
	for _, a := range Approaches {
		d := spec.Direction(a)
		if a.NorthSouth() {
			d.Phase = ns
		} else {
			d.Phase = ew
		}
		spec.setDirection(a, d)
	}
	return ib
}

func (ib *intersectionBuilderImpl) Intersection(id IntersectionID) IntersectionBuilder {
	return ib.topology.Intersection(id)
}

func (ib *intersectionBuilderImpl) Build() Topology {
	return ib.topology.Build()
}
