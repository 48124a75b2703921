// Package gridlight simulates cars draining through a network of four-way
// intersections while a light controller switches their signals.
//
// A Runner owns one Network and its run flag. It starts a single
// LightController, driven by either the naive (timed flip) or the priority
// (demand driven) Policy, and one Worker per intersection. Every actor takes
// the network lock as one unit, so only one of them mutates the network at a
// time. The run stops as soon as any worker completes an iteration in which
// no car could move.
package gridlight
