package gridlight

import "fmt"

// IntersectionID identifies an intersection in a network
type IntersectionID int

// Exit is the destination of approaches whose cars leave the network
const Exit IntersectionID = 0

// String returns "exit" for the exit sentinel and the number otherwise
func (id IntersectionID) String() string {
	if id == Exit {
		return "exit"
	}
	return fmt.Sprintf("%d", int(id))
}

// Approach names one of the four directions of travel through an intersection
type Approach int

const (
	// NorthToSouth is traffic entering from the north
	NorthToSouth Approach = iota
	// SouthToNorth is traffic entering from the south
	SouthToNorth
	// EastToWest is traffic entering from the east
	EastToWest
	// WestToEast is traffic entering from the west
	WestToEast
)

// Approaches lists every approach in the order a worker drains them
var Approaches = [4]Approach{NorthToSouth, SouthToNorth, EastToWest, WestToEast}

// String returns the approach name
func (a Approach) String() string {
	switch a {
	case NorthToSouth:
		return "north_to_south"
	case SouthToNorth:
		return "south_to_north"
	case EastToWest:
		return "east_to_west"
	case WestToEast:
		return "west_to_east"
	default:
		return fmt.Sprintf("approach(%d)", int(a))
	}
}

// NorthSouth reports whether the approach belongs to the north-south pair
func (a Approach) NorthSouth() bool {
	return a == NorthToSouth || a == SouthToNorth
}

// Direction is the per-approach state of an intersection
type Direction struct {
	Phase       Phase
	Cars        int
	Destination IntersectionID
}

// Advance lets one queued car depart when the phase is Go.
// It reports whether a car moved.
func (d *Direction) Advance() bool {
	if d.Phase != Go || d.Cars <= 0 {
		return false
	}
	d.Cars--
	return true
}
