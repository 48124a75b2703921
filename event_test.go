package gridlight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCarMovedEvent(t *testing.T) {
	before := time.Now()
	event := NewCarMovedEvent(3, WestToEast, 8, 5)

	assert.Equal(t, EventCarMoved, event.GetName())
	assert.Equal(t, IntersectionID(3), event.GetIntersection())
	assert.Equal(t, WestToEast, event.Approach)
	assert.Equal(t, IntersectionID(8), event.Destination)
	assert.Equal(t, 5, event.Remaining)
	assert.False(t, event.GetTimestamp().Before(before))
	assert.Equal(t, "Moved one car to intersection 8", event.String())
	assert.Equal(t, "Moved one car to intersection 0", NewCarMovedEvent(1, NorthToSouth, Exit, 0).String())
}

func TestEventIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewCarMovedEvent(1, NorthToSouth, Exit, i).GetID().String()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestPhaseChangeEvent_Changed(t *testing.T) {
	before := [4]Phase{Go, Go, Stop, Stop}

	flipped := NewPhaseChangeEvent(1, PolicyNaive, before, [4]Phase{Stop, Stop, Go, Go})
	assert.Equal(t, EventPhaseChange, flipped.GetName())
	assert.Equal(t, Approaches[:], flipped.Changed())

	partial := NewPhaseChangeEvent(1, PolicyPriority, before, [4]Phase{Go, Go, Go, Go})
	assert.Equal(t, []Approach{EastToWest, WestToEast}, partial.Changed())

	same := NewPhaseChangeEvent(1, PolicyPriority, before, before)
	assert.Empty(t, same.Changed())
}

func TestExhaustionEvent(t *testing.T) {
	event := NewExhaustionEvent(4, 3, 12)

	assert.Equal(t, EventExhausted, event.GetName())
	assert.Equal(t, IntersectionID(4), event.GetIntersection())
	assert.Equal(t, 3, event.Worker)
	assert.Equal(t, 12, event.Iteration)
}
