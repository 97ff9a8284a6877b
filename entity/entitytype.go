// Package entity holds the enum types shared between the simulation
// entity packages and the kernel.
package entity

// SignalState is the color shown on one axis of an intersection.
type SignalState string

const (
	SignalRed    SignalState = "RED"
	SignalYellow SignalState = "YELLOW"
	SignalGreen  SignalState = "GREEN"
)

// IntersectionMode decides which writer owns an intersection's signal state.
// EMERGENCY_OVERRIDE intersections are frozen for the phase machine and
// driven solely by the emergency arbitrator.
type IntersectionMode string

const (
	ModeFixed             IntersectionMode = "FIXED"
	ModeManual            IntersectionMode = "MANUAL"
	ModeAIOptimized       IntersectionMode = "AI_OPTIMIZED"
	ModeEmergencyOverride IntersectionMode = "EMERGENCY_OVERRIDE"
)

// Valid reports whether m is one of the known modes.
func (m IntersectionMode) Valid() bool {
	switch m {
	case ModeFixed, ModeManual, ModeAIOptimized, ModeEmergencyOverride:
		return true
	}
	return false
}

// LaneKind is the orientation of a lane.
type LaneKind string

const (
	LaneHorizontal LaneKind = "horizontal"
	LaneVertical   LaneKind = "vertical"
)

// Direction is a vehicle's direction of travel along its lane.
// Horizontal lanes carry east/west traffic, vertical lanes north/south.
type Direction string

const (
	DirEast  Direction = "east"
	DirWest  Direction = "west"
	DirNorth Direction = "north"
	DirSouth Direction = "south"
)

// Forward reports whether the position coordinate increases in this
// direction of travel (east and south run with the axis).
func (d Direction) Forward() bool {
	return d == DirEast || d == DirSouth
}
