package intersection

import (
	"github.com/CodeNexus100/signal-iq-be/entity"
)

// Intersection is one signalized grid crossing. Exactly one of the two
// axes is GREEN or YELLOW at any time; both RED at once is a transient
// state (left behind by an external override) that the phase machine
// resolves to NS-GREEN on its next update.
type Intersection struct {
	ID       string                  `json:"id"`
	NSSignal entity.SignalState      `json:"nsSignal"`
	EWSignal entity.SignalState      `json:"ewSignal"`
	Timer    float64                 `json:"timer"`
	Mode     entity.IntersectionMode `json:"mode"`

	// Green-time targets consumed on the next phase switch, bounded to
	// [MinGreen, MaxGreen] by their writers.
	NSGreenTime float64 `json:"nsGreenTime"`
	EWGreenTime float64 `json:"ewGreenTime"`
}

// Update runs the countdown for one tick and fires at most one phase
// transition. A timer underflowing by more than one step still causes a
// single transition, not a catch-up loop; the approximation is part of
// the model.
func (i *Intersection) Update(dt, yellowTime float64) {
	i.Timer -= dt
	if i.Timer <= 0 {
		i.switchPhase(yellowTime)
	}
}

// switchPhase advances the GREEN -> YELLOW -> RED cycle, alternating the
// two axes. The final case recovers from the transient all-red state.
func (i *Intersection) switchPhase(yellowTime float64) {
	switch {
	case i.NSSignal == entity.SignalGreen:
		i.NSSignal = entity.SignalYellow
		i.Timer = yellowTime
	case i.NSSignal == entity.SignalYellow:
		i.NSSignal = entity.SignalRed
		i.EWSignal = entity.SignalGreen
		i.Timer = i.EWGreenTime
	case i.EWSignal == entity.SignalGreen:
		i.EWSignal = entity.SignalYellow
		i.Timer = yellowTime
	case i.EWSignal == entity.SignalYellow:
		i.EWSignal = entity.SignalRed
		i.NSSignal = entity.SignalGreen
		i.Timer = i.NSGreenTime
	case i.NSSignal == entity.SignalRed && i.EWSignal == entity.SignalRed:
		i.NSSignal = entity.SignalGreen
		i.Timer = i.NSGreenTime
	}
}

// Phase names the current sub-phase for reporting.
func (i *Intersection) Phase() string {
	switch {
	case i.NSSignal == entity.SignalGreen:
		return "NS"
	case i.EWSignal == entity.SignalGreen:
		return "EW"
	case i.NSSignal == entity.SignalYellow:
		return "NS-Yellow"
	case i.EWSignal == entity.SignalYellow:
		return "EW-Yellow"
	}
	return "All-Red"
}
