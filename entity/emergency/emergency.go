// Package emergency implements the green-wave arbitration for the single
// emergency vehicle: intersections along its fixed route are forced to
// EMERGENCY_OVERRIDE as it approaches and restored once it has passed.
package emergency

import (
	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
	"github.com/CodeNexus100/signal-iq-be/entity/intersection"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
)

var log = logrus.WithField("module", "emergency")

// Vehicle is the emergency vehicle. At most one exists at a time. The
// route is fixed at creation; TargetIndex points at the next route
// intersection and only ever advances.
type Vehicle struct {
	ID          string   `json:"id"`
	Position    float64  `json:"position"`
	LaneID      string   `json:"laneId"`
	Speed       float64  `json:"speed"`
	Route       []string `json:"route"`
	Active      bool     `json:"active"`
	TargetIndex int      `json:"currentTargetIndex"`
	Type        string   `json:"type"`
}

// Clone returns a deep copy for snapshots.
func (v *Vehicle) Clone() *Vehicle {
	if v == nil {
		return nil
	}
	c := *v
	c.Route = append([]string(nil), v.Route...)
	return &c
}

// Arbitrator drives the emergency vehicle and owns the signal state of
// intersections it has placed in EMERGENCY_OVERRIDE.
type Arbitrator struct {
	cfg *config.Config
}

// NewArbitrator creates the arbitrator.
func NewArbitrator(cfg *config.Config) *Arbitrator {
	return &Arbitrator{cfg: cfg}
}

// Start creates the emergency vehicle at its fixed off-grid start on
// lane H0, routed east across the whole first row. Deliberately
// deterministic: no randomness is consumed.
func (a *Arbitrator) Start() *Vehicle {
	route := make([]string, 0, grid.Size)
	for col := 0; col < grid.Size; col++ {
		route = append(route, grid.ID(0, col))
	}
	log.Info("emergency vehicle started")
	return &Vehicle{
		ID:       "EM-1",
		Position: a.cfg.Emergency.StartPosition,
		LaneID:   grid.LaneID(entity.LaneHorizontal, 0),
		Speed:    a.cfg.Emergency.Speed,
		Route:    route,
		Active:   true,
		Type:     "emergency",
	}
}

// Stop deactivates the emergency and restores every route intersection
// still held in EMERGENCY_OVERRIDE back to FIXED. Safe to call with no
// active emergency.
func (a *Arbitrator) Stop(ev *Vehicle, signals *intersection.Manager) {
	if ev == nil {
		return
	}
	ev.Active = false
	for _, id := range ev.Route {
		if i, ok := signals.Get(id); ok && i.Mode == entity.ModeEmergencyOverride {
			i.Mode = entity.ModeFixed
		}
	}
	log.Info("emergency vehicle stopped")
}

// Update advances the vehicle and arbitrates its current route target:
// within the detection window the intersection is forced green along the
// route axis (idempotently); once passed by more than the margin it is
// restored and the target index advances. Returns true when the vehicle
// has left the grid and the emergency should be torn down.
func (a *Arbitrator) Update(ev *Vehicle, signals *intersection.Manager, dt float64) (done bool) {
	ev.Position += ev.Speed * dt

	if ev.TargetIndex < len(ev.Route) {
		targetID := ev.Route[ev.TargetIndex]
		if target, ok := signals.Get(targetID); ok {
			_, col, err := grid.RowCol(targetID)
			if err == nil {
				dist := float64(col)*a.cfg.Grid.Spacing - ev.Position
				if dist > 0 && dist < a.cfg.Emergency.DetectionDist {
					if target.Mode != entity.ModeEmergencyOverride {
						target.Mode = entity.ModeEmergencyOverride
						target.EWSignal = entity.SignalGreen
						target.NSSignal = entity.SignalRed
						log.Infof("override %s for emergency", targetID)
					}
				}
				if dist < -a.cfg.Emergency.PassMargin {
					if target.Mode == entity.ModeEmergencyOverride {
						target.Mode = entity.ModeFixed
						log.Infof("restore %s after emergency passed", targetID)
					}
					ev.TargetIndex++
				}
			}
		}
	}

	return ev.Position > a.cfg.Grid.BoundsMax+a.cfg.Emergency.ExitMargin
}
