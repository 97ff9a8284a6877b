package kernel

import (
	"github.com/CodeNexus100/signal-iq-be/entity"
)

// CommandKind tags the closed set of command variants.
type CommandKind int

const (
	CmdUpdateIntersection CommandKind = iota
	CmdSetGlobalAIMode
	CmdApplyTrafficPattern
	CmdStartEmergency
	CmdStopEmergency
	CmdSpawnVehicle
)

// Command is a deferred mutation request. Commands carry data only; the
// kernel's apply step matches on Kind exhaustively. Fields not used by a
// variant stay zero.
type Command struct {
	Kind CommandKind

	// CmdUpdateIntersection
	IntersectionID string
	NSGreenTime    *float64
	EWGreenTime    *float64
	Mode           *entity.IntersectionMode

	// CmdSetGlobalAIMode
	AIEnabled bool

	// CmdApplyTrafficPattern
	Pattern string
}

// UpdateIntersection updates the timing and/or mode of one intersection;
// nil fields are left unchanged.
func UpdateIntersection(id string, nsGreen, ewGreen *float64, mode *entity.IntersectionMode) Command {
	return Command{
		Kind:           CmdUpdateIntersection,
		IntersectionID: id,
		NSGreenTime:    nsGreen,
		EWGreenTime:    ewGreen,
		Mode:           mode,
	}
}

// SetGlobalAIMode switches every intersection between AI_OPTIMIZED and
// FIXED and records the global flag.
func SetGlobalAIMode(enabled bool) Command {
	return Command{Kind: CmdSetGlobalAIMode, AIEnabled: enabled}
}

// ApplyTrafficPattern applies a named timing plan to all intersections.
func ApplyTrafficPattern(pattern string) Command {
	return Command{Kind: CmdApplyTrafficPattern, Pattern: pattern}
}

// StartEmergency launches the emergency vehicle on its fixed route.
func StartEmergency() Command {
	return Command{Kind: CmdStartEmergency}
}

// StopEmergency deactivates the emergency and restores its overrides.
func StopEmergency() Command {
	return Command{Kind: CmdStopEmergency}
}

// SpawnVehicle forces one spawn attempt, subject to the population cap.
func SpawnVehicle() Command {
	return Command{Kind: CmdSpawnVehicle}
}
