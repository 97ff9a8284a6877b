// Package vehicle implements the lane-based car-following model: per
// lane and direction, vehicles are processed lead-first against a stop
// target fused from the next restrictive signal and the leader gap.
package vehicle

import (
	"fmt"
	"math"
	"sort"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
	"github.com/CodeNexus100/signal-iq-be/entity/intersection"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
	"github.com/CodeNexus100/signal-iq-be/utils/randengine"
)

var log = logrus.WithField("module", "vehicle")

const (
	// hardStopDist snaps the vehicle onto the stop target to avoid
	// oscillating around it across ticks.
	hardStopDist = 1.0
	// safetyFactor shrinks the kinematic safe speed.
	safetyFactor = 0.8
	// accelMargin permits gentle acceleration only while comfortably
	// under the safe speed.
	accelMargin = 0.9
	// emergencyBrakeFactor bounds the braking rate between comfortable
	// and emergency deceleration.
	emergencyBrakeFactor = 1.5
)

// SignalSource resolves intersection ids to live signal state.
type SignalSource interface {
	Get(id string) (*intersection.Intersection, bool)
}

// Manager owns the vehicle population. Slice order is insertion order
// and is part of the deterministic state: removals keep it, and
// snapshots expose it unchanged.
type Manager struct {
	cfg *config.Config
	rng *randengine.Engine

	vehicles []*Vehicle
}

// NewManager creates a manager drawing spawn decisions from the shared
// deterministic stream.
func NewManager(cfg *config.Config, rng *randengine.Engine) *Manager {
	return &Manager{cfg: cfg, rng: rng}
}

// Init seeds the initial population of 10 vehicles.
func (m *Manager) Init() {
	m.vehicles = m.vehicles[:0]
	for n := 0; n < 10; n++ {
		m.Spawn(0)
	}
}

// All returns the vehicles in insertion order.
func (m *Manager) All() []*Vehicle {
	return m.vehicles
}

// Count returns the population size.
func (m *Manager) Count() int {
	return len(m.vehicles)
}

// Spawn adds one random vehicle unless the population cap is reached.
// The draw order (orientation, lane, direction, position, speed, target
// speed, id suffix) is fixed; it is part of the reproducible stream.
func (m *Manager) Spawn(tickID int64) {
	if len(m.vehicles) >= m.cfg.Vehicle.Max {
		return
	}
	kind := entity.LaneVertical
	if m.rng.Bool() {
		kind = entity.LaneHorizontal
	}
	laneIdx := m.rng.IntBetween(0, grid.Size-1)
	var dir entity.Direction
	if kind == entity.LaneHorizontal {
		dir = entity.DirWest
		if m.rng.Bool() {
			dir = entity.DirEast
		}
	} else {
		dir = entity.DirSouth
		if m.rng.Bool() {
			dir = entity.DirNorth
		}
	}
	v := &Vehicle{
		LaneID:      grid.LaneID(kind, laneIdx),
		LaneKind:    kind,
		Direction:   dir,
		Position:    m.rng.UniformFloat64(0, 500),
		Speed:       m.rng.UniformFloat64(m.cfg.Vehicle.MinSpeed, m.cfg.Vehicle.MaxSpeed),
		TargetSpeed: m.rng.UniformFloat64(m.cfg.Vehicle.MinSpeed, m.cfg.Vehicle.MaxSpeed),
		Type:        "car",
	}
	v.ID = fmt.Sprintf("v-%d-%d", tickID, m.rng.IntBetween(100, 999))
	m.vehicles = append(m.vehicles, v)
}

// UpdateAll advances every vehicle by dt. Lanes are processed in
// canonical lane order and directions in a fixed order within each lane,
// so the update sequence is identical across same-seed runs. Vehicles
// leaving the grid bounds are removed afterwards.
func (m *Manager) UpdateAll(dt float64, signals SignalSource) {
	groups := m.groupByLane()
	laneIDs := grid.LaneIDs()
	// Vehicles on unknown lane ids still move (as open road); their lanes
	// go last, in sorted order, to keep the update sequence fixed.
	known := lo.SliceToMap(laneIDs, func(id string) (string, struct{}) { return id, struct{}{} })
	extra := lo.Reject(lo.Keys(groups), func(id string, _ int) bool {
		_, ok := known[id]
		return ok
	})
	sort.Strings(extra)
	for _, laneID := range append(laneIDs, extra...) {
		byDir, ok := groups[laneID]
		if !ok {
			continue
		}
		for _, dir := range []entity.Direction{entity.DirEast, entity.DirWest, entity.DirNorth, entity.DirSouth} {
			lane := byDir[dir]
			if len(lane) == 0 {
				continue
			}
			m.updateLane(lane, dir, dt, signals)
		}
	}
	m.dropOutOfBounds()
}

// groupByLane partitions the population by lane id and direction.
func (m *Manager) groupByLane() map[string]map[entity.Direction][]*Vehicle {
	groups := make(map[string]map[entity.Direction][]*Vehicle)
	for _, v := range m.vehicles {
		byDir, ok := groups[v.LaneID]
		if !ok {
			byDir = make(map[entity.Direction][]*Vehicle)
			groups[v.LaneID] = byDir
		}
		byDir[v.Direction] = append(byDir[v.Direction], v)
	}
	return groups
}

// updateLane orders one (lane, direction) group lead-first and updates
// followers against their already-updated leader.
func (m *Manager) updateLane(lane []*Vehicle, dir entity.Direction, dt float64, signals SignalSource) {
	if dir.Forward() {
		sort.SliceStable(lane, func(a, b int) bool { return lane[a].Position > lane[b].Position })
	} else {
		sort.SliceStable(lane, func(a, b int) bool { return lane[a].Position < lane[b].Position })
	}
	for idx, v := range lane {
		var leader *Vehicle
		if idx > 0 {
			leader = lane[idx-1]
		}
		m.updateOne(v, leader, dt, signals)
	}
}

// updateOne computes the stop target for one vehicle and integrates its
// speed and position for this tick. The target is recomputed fresh every
// tick, so a changing leader or signal is absorbed within one step.
func (m *Manager) updateOne(v *Vehicle, leader *Vehicle, dt float64, signals SignalSource) {
	stopPos, hasStop := m.signalStop(v, signals)

	// The leader gap and the stop line compete; the more restrictive
	// target (closer in the direction of travel) wins.
	if leader != nil {
		if v.Direction.Forward() {
			leadStop := leader.Position - m.cfg.Vehicle.MinGap
			if !hasStop || leadStop < stopPos {
				stopPos, hasStop = leadStop, true
			}
		} else {
			leadStop := leader.Position + m.cfg.Vehicle.MinGap
			if !hasStop || leadStop > stopPos {
				stopPos, hasStop = leadStop, true
			}
		}
	}

	if hasStop {
		dist := math.Abs(stopPos - v.Position)
		switch {
		case dist < hardStopDist:
			v.Speed = 0
			v.Position = stopPos
		case dist < m.cfg.Vehicle.BrakeDistance:
			safe := math.Sqrt(2*m.cfg.Vehicle.Deceleration*dist) * safetyFactor
			if v.Speed > safe {
				required := v.Speed * v.Speed / (2 * dist)
				decel := math.Min(m.cfg.Vehicle.Deceleration*emergencyBrakeFactor, required)
				v.Speed -= decel * dt
				if v.Speed < 0 {
					v.Speed = 0
				}
			} else if v.Speed < v.TargetSpeed && v.Speed < safe*accelMargin {
				v.Speed += m.cfg.Vehicle.Acceleration * dt
			}
		}
	} else if v.Speed < v.TargetSpeed {
		v.Speed += m.cfg.Vehicle.Acceleration * dt
		if v.Speed > v.TargetSpeed {
			v.Speed = v.TargetSpeed
		}
	}

	// Integrate, clamped so the vehicle never crosses its stop target
	// within a single step.
	move := v.Speed * dt
	if v.Direction.Forward() {
		next := v.Position + move
		if hasStop && next > stopPos {
			next = stopPos
			v.Speed = 0
		}
		v.Position = next
	} else {
		next := v.Position - move
		if hasStop && next < stopPos {
			next = stopPos
			v.Speed = 0
		}
		v.Position = next
	}
}

// signalStop derives the stop-line target from the nearest upcoming
// intersection, if its cross-axis signal is restrictive. YELLOW stops
// traffic the same as RED. A vehicle already past the intersection
// center has committed and is never asked to stop.
func (m *Manager) signalStop(v *Vehicle, signals SignalSource) (float64, bool) {
	target, _ := m.upcoming(v, signals)
	if target == nil {
		return 0, false
	}
	var blocking entity.SignalState
	if v.LaneKind == entity.LaneHorizontal {
		blocking = target.EWSignal
	} else {
		blocking = target.NSSignal
	}
	if blocking == entity.SignalGreen {
		return 0, false
	}
	center := m.axisPos(target.ID, v.LaneKind)
	if v.Direction.Forward() {
		if v.Position > center {
			return 0, false
		}
		return center - m.cfg.Vehicle.StopOffset, true
	}
	if v.Position < center {
		return 0, false
	}
	return center + m.cfg.Vehicle.StopOffset, true
}

// upcoming finds the nearest intersection ahead of v on its lane, and
// the distance to it. An intersection further than one grid spacing away
// does not constrain the vehicle yet. A malformed lane id degrades to
// open road (nil, infinite distance) rather than failing.
func (m *Manager) upcoming(v *Vehicle, signals SignalSource) (*intersection.Intersection, float64) {
	kind, laneIdx, err := grid.ParseLane(v.LaneID)
	if err != nil {
		return nil, mathutil.INF
	}
	best := -1
	bestDist := mathutil.INF
	for cell := 0; cell < grid.Size; cell++ {
		pos := float64(cell) * m.cfg.Grid.Spacing
		var d float64
		if v.Direction.Forward() {
			d = pos - v.Position
		} else {
			d = v.Position - pos
		}
		if d > 0 && d < bestDist {
			bestDist = d
			best = cell
		}
	}
	if best < 0 || bestDist >= m.cfg.Grid.Spacing {
		return nil, mathutil.INF
	}
	var id string
	if kind == entity.LaneHorizontal {
		id = grid.ID(laneIdx, best)
	} else {
		id = grid.ID(best, laneIdx)
	}
	target, ok := signals.Get(id)
	if !ok {
		return nil, mathutil.INF
	}
	return target, bestDist
}

// axisPos returns the intersection's coordinate on the given lane axis:
// its column position for horizontal lanes, row position for vertical.
func (m *Manager) axisPos(id string, kind entity.LaneKind) float64 {
	row, col, err := grid.RowCol(id)
	if err != nil {
		return 0
	}
	if kind == entity.LaneHorizontal {
		return float64(col) * m.cfg.Grid.Spacing
	}
	return float64(row) * m.cfg.Grid.Spacing
}

// dropOutOfBounds removes vehicles that left the grid, preserving the
// order of the remainder. Replacements come only from the kernel's
// global spawn policy.
func (m *Manager) dropOutOfBounds() {
	kept := m.vehicles[:0]
	for _, v := range m.vehicles {
		if v.Position < m.cfg.Grid.BoundsMin || v.Position > m.cfg.Grid.BoundsMax {
			log.Debugf("vehicle %s left the grid at %.1f", v.ID, v.Position)
			continue
		}
		kept = append(kept, v)
	}
	m.vehicles = kept
}

// CountNear counts vehicles on the lane within radius of axisPos, and
// how many of those are waiting (slower than waitingSpeed).
func (m *Manager) CountNear(laneID string, axisPos, radius, waitingSpeed float64) (total, waiting int) {
	for _, v := range m.vehicles {
		if v.LaneID != laneID {
			continue
		}
		if math.Abs(v.Position-axisPos) < radius {
			total++
			if v.Speed < waitingSpeed {
				waiting++
			}
		}
	}
	return total, waiting
}

// CountByLane returns the population per lane id.
func (m *Manager) CountByLane() map[string]int {
	counts := make(map[string]int, 2*grid.Size)
	for _, v := range m.vehicles {
		counts[v.LaneID]++
	}
	return counts
}
