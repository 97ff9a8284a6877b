package kernel

import (
	"math"

	"github.com/samber/lo"

	"github.com/CodeNexus100/signal-iq-be/controller"
	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/emergency"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
	"github.com/CodeNexus100/signal-iq-be/entity/intersection"
	"github.com/CodeNexus100/signal-iq-be/entity/vehicle"
)

// Snapshot is a deep copy of the post-tick simulation state. Readers
// never alias live kernel state.
type Snapshot struct {
	Tick          int64                       `json:"tick"`
	Time          float64                     `json:"time"`
	Intersections []intersection.Intersection `json:"intersections"`
	Vehicles      []vehicle.Vehicle           `json:"vehicles"`
	Emergency     *emergency.Vehicle          `json:"emergency,omitempty"`
}

// IntersectionDetail is the per-intersection query result. FlowRate and
// PedestrianDemand are fixed placeholders until real detectors exist.
type IntersectionDetail struct {
	IntersectionID   string `json:"intersectionId"`
	NSGreenTime      int    `json:"nsGreenTime"`
	EWGreenTime      int    `json:"ewGreenTime"`
	CurrentPhase     string `json:"currentPhase"`
	TimerRemaining   int    `json:"timerRemaining"`
	FlowRate         int    `json:"flowRate"`
	PedestrianDemand string `json:"pedestrianDemand"`
	AIEnabled        bool   `json:"aiEnabled"`
}

// RoadOverview is one lane's aggregated load.
type RoadOverview struct {
	LaneID     string  `json:"laneId"`
	Congestion float64 `json:"congestion"`
	Flow       string  `json:"flow"`
}

// ZoneOverview is one named zone's aggregated load.
type ZoneOverview struct {
	Name   string  `json:"name"`
	Load   float64 `json:"load"`
	Status string  `json:"status"`
}

// GridOverview aggregates per-lane and per-zone congestion.
type GridOverview struct {
	Roads []RoadOverview `json:"roads"`
	Zones []ZoneOverview `json:"zones"`
}

// zoneDef maps display zones onto the lanes feeding them. Ordered so the
// overview is stable across calls.
type zoneDef struct {
	name  string
	lanes []string
}

var zones = []zoneDef{
	{name: "North Industrial", lanes: []string{"H0", "H1", "V0", "V4"}},
	{name: "Central District", lanes: []string{"H2", "H3", "V2", "V3"}},
	{name: "West Harbor", lanes: []string{"V0", "V1", "H4"}},
}

// Snapshot returns a deep copy of the current state. It sees the state
// only between ticks, never mid-tick.
func (k *Kernel) Snapshot() Snapshot {
	k.mu.RLock()
	defer k.mu.RUnlock()

	s := Snapshot{
		Tick: k.clock.TickID,
		Time: k.clock.T,
	}
	s.Intersections = lo.Map(k.intersections.All(), func(i *intersection.Intersection, _ int) intersection.Intersection {
		return *i
	})
	if k.vehicles != nil {
		s.Vehicles = lo.Map(k.vehicles.All(), func(v *vehicle.Vehicle, _ int) vehicle.Vehicle {
			return *v
		})
	}
	s.Emergency = k.emergencyVehicle.Clone()
	return s
}

// HasIntersection reports whether the id is known.
func (k *Kernel) HasIntersection(id string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.intersections.Get(id)
	return ok
}

// IntersectionDetail resolves one intersection. Unknown ids return
// ErrIntersectionNotFound.
func (k *Kernel) IntersectionDetail(id string) (IntersectionDetail, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	i, ok := k.intersections.Get(id)
	if !ok {
		return IntersectionDetail{}, ErrIntersectionNotFound
	}
	return IntersectionDetail{
		IntersectionID:   i.ID,
		NSGreenTime:      int(i.NSGreenTime),
		EWGreenTime:      int(i.EWGreenTime),
		CurrentPhase:     i.Phase(),
		TimerRemaining:   max(0, int(i.Timer)),
		FlowRate:         500,   // placeholder
		PedestrianDemand: "Low", // placeholder
		AIEnabled:        i.Mode == entity.ModeAIOptimized,
	}, nil
}

// AIStatus returns the heuristic controller's latest report.
func (k *Kernel) AIStatus() controller.Status {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.heuristic.Status()
}

// GridOverview aggregates per-lane congestion (population over a
// three-vehicle saturation) and rolls lanes up into the display zones.
func (k *Kernel) GridOverview() GridOverview {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var counts map[string]int
	if k.vehicles != nil {
		counts = k.vehicles.CountByLane()
	}

	congestion := make(map[string]float64, 2*grid.Size)
	overview := GridOverview{}
	for _, laneID := range grid.LaneIDs() {
		load := math.Min(1.0, float64(counts[laneID])/3.0)
		congestion[laneID] = load
		overview.Roads = append(overview.Roads, RoadOverview{
			LaneID:     laneID,
			Congestion: round2(load),
			Flow:       flowStatus(load),
		})
	}
	for _, z := range zones {
		total := 0.0
		for _, laneID := range z.lanes {
			total += congestion[laneID]
		}
		load := total / float64(max(1, len(z.lanes)))
		overview.Zones = append(overview.Zones, ZoneOverview{
			Name:   z.name,
			Load:   round2(load),
			Status: flowStatus(load),
		})
	}
	return overview
}

func flowStatus(load float64) string {
	switch {
	case load >= 0.75:
		return "congested"
	case load >= 0.5:
		return "moderate"
	}
	return "optimal"
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
