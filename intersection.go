package gridlight

// Intersection aggregates the four approaches of one crossing
type Intersection struct {
	ID         IntersectionID
	Directions [4]Direction
}

// Direction returns the state of the given approach
func (in *Intersection) Direction(a Approach) *Direction {
	return &in.Directions[a]
}

// AdvanceOne moves a single car through the given approach if its light is
// Go and it has queued cars.
func (in *Intersection) AdvanceOne(a Approach) (CarMovedEvent, bool) {
	d := &in.Directions[a]
	if !d.Advance() {
		return CarMovedEvent{}, false
	}
	return NewCarMovedEvent(in.ID, a, d.Destination, d.Cars), true
}

// Phases returns the phase of every approach, indexed by Approach
func (in *Intersection) Phases() [4]Phase {
	var phases [4]Phase
	for _, a := range Approaches {
		phases[a] = in.Directions[a].Phase
	}
	return phases
}

// NorthSouthCars returns the combined queue of the north-south pair
func (in *Intersection) NorthSouthCars() int {
	return in.Directions[NorthToSouth].Cars + in.Directions[SouthToNorth].Cars
}

// EastWestCars returns the combined queue of the east-west pair
func (in *Intersection) EastWestCars() int {
	return in.Directions[EastToWest].Cars + in.Directions[WestToEast].Cars
}

// QueuedCars returns the number of cars waiting at every approach
func (in *Intersection) QueuedCars() int {
	return in.NorthSouthCars() + in.EastWestCars()
}

// ToggleNaive flips every approach to the complement of its phase,
// regardless of demand.
func (in *Intersection) ToggleNaive() {
	for _, a := range Approaches {
		in.Directions[a].Phase = in.Directions[a].Phase.Complement()
	}
}

// DemandFavorsNorthSouth reports whether the north-south pair has at least as
// many queued cars as the east-west pair. Ties favor north-south.
func (in *Intersection) DemandFavorsNorthSouth() bool {
	return in.NorthSouthCars() >= in.EastWestCars()
}

// TogglePriority gives Go to the pair with the higher demand and Stop to the
// other. It reports whether any phase changed.
func (in *Intersection) TogglePriority() bool {
	ns, ew := Go, Stop
	if !in.DemandFavorsNorthSouth() {
		ns, ew = Stop, Go
	}
	return in.setPairs(ns, ew)
}

// GoDrained reports whether no approach with a Go phase has queued cars
func (in *Intersection) GoDrained() bool {
	for _, a := range Approaches {
		d := in.Directions[a]
		if d.Phase == Go && d.Cars > 0 {
			return false
		}
	}
	return true
}

func (in *Intersection) setPairs(ns, ew Phase) bool {
	before := in.Phases()
	for _, a := range Approaches {
		if a.NorthSouth() {
			in.Directions[a].Phase = ns
		} else {
			in.Directions[a].Phase = ew
		}
	}
	return before != in.Phases()
}
