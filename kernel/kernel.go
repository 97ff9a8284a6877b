// Package kernel owns the single mutable simulation state and the
// fixed-timestep tick. External writers only ever touch the command
// queue; RunTick is the one writer of the state, and readers observe it
// only between ticks.
package kernel

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/clock"
	"github.com/CodeNexus100/signal-iq-be/controller"
	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/emergency"
	"github.com/CodeNexus100/signal-iq-be/entity/intersection"
	"github.com/CodeNexus100/signal-iq-be/entity/vehicle"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
	"github.com/CodeNexus100/signal-iq-be/utils/randengine"
)

var log = logrus.WithField("module", "kernel")

// ErrIntersectionNotFound is returned by queries for unknown ids.
var ErrIntersectionNotFound = errors.New("kernel: intersection not found")

// Kernel drives the simulation. The mutex makes each tick a single
// non-preemptible unit relative to snapshot readers; command producers
// never take it, they go through the queue.
type Kernel struct {
	cfg config.Config

	mu    sync.RWMutex
	queue Queue

	clock         *clock.Clock
	rng           *randengine.Engine
	intersections *intersection.Manager
	vehicles      *vehicle.Manager
	arbitrator    *emergency.Arbitrator
	heuristic     *controller.Heuristic

	emergencyVehicle *emergency.Vehicle
	aiEnabled        bool
	initialized      bool
}

// New creates an uninitialized kernel. Call Initialize with a seed
// before (or let the first RunTick initialize with the configured seed).
func New(cfg config.Config) *Kernel {
	k := &Kernel{cfg: cfg}
	k.clock = clock.New(cfg.Control.DT)
	k.intersections = intersection.NewManager(&k.cfg)
	k.arbitrator = emergency.NewArbitrator(&k.cfg)
	k.heuristic = controller.New(&k.cfg)
	return k
}

// Initialize resets the simulation to tick zero and rebuilds the grid
// and the initial vehicle population from the seeded stream. The stream
// is consumed in a fixed order (grid first, then vehicles), so two
// kernels initialized with the same seed are identical.
func (k *Kernel) Initialize(seed uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.initialize(seed)
}

func (k *Kernel) initialize(seed uint64) {
	k.clock.Init()
	k.rng = randengine.New(seed)
	k.intersections.Init(k.rng)
	k.vehicles = vehicle.NewManager(&k.cfg, k.rng)
	k.vehicles.Init()
	k.heuristic.Reset()
	k.emergencyVehicle = nil
	k.aiEnabled = false
	k.initialized = true
	log.Infof("kernel initialized (seed %d)", seed)
}

// Enqueue submits a command for the next tick. Safe for concurrent use
// and never blocks on a running tick.
func (k *Kernel) Enqueue(cmd Command) {
	k.queue.Enqueue(cmd)
}

// RunTick advances the simulation by one fixed step: drain commands,
// signals (with the heuristic controller), vehicles, emergency
// arbitration, clock, spawn policy. Must not be called concurrently
// with itself.
func (k *Kernel) RunTick() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.initialized {
		k.initialize(k.cfg.Control.Seed)
	}
	dt := k.clock.DT

	for _, cmd := range k.queue.PopAll() {
		k.apply(cmd)
	}

	k.intersections.UpdateAll(dt)
	k.heuristic.Run(k.clock.T, k.intersections, k.vehicles, k.aiEnabled)

	k.vehicles.UpdateAll(dt, k.intersections)

	if k.emergencyVehicle != nil && k.emergencyVehicle.Active {
		if done := k.arbitrator.Update(k.emergencyVehicle, k.intersections, dt); done {
			k.arbitrator.Stop(k.emergencyVehicle, k.intersections)
			k.emergencyVehicle = nil
		}
	}

	k.clock.Advance()

	// Two-stage spawn gate, by design: a dt-scaled trial followed by a
	// plain trial. The draw count is part of the reproducible stream.
	if k.vehicles.Count() < k.cfg.Vehicle.SpawnFloor && k.rng.PTrue(k.cfg.Vehicle.SpawnChance*dt) {
		if k.rng.PTrue(k.cfg.Vehicle.SpawnChance) {
			k.vehicles.Spawn(k.clock.TickID)
		}
	}
}

// apply executes one command against the current state. Every variant
// is matched here; unknown intersection ids inside a command are silent
// no-ops.
func (k *Kernel) apply(cmd Command) {
	switch cmd.Kind {
	case CmdUpdateIntersection:
		k.intersections.ApplyUpdate(cmd.IntersectionID, cmd.NSGreenTime, cmd.EWGreenTime, cmd.Mode)
	case CmdSetGlobalAIMode:
		k.aiEnabled = cmd.AIEnabled
		mode := entity.ModeFixed
		if cmd.AIEnabled {
			mode = entity.ModeAIOptimized
		}
		k.intersections.SetAllModes(mode)
	case CmdApplyTrafficPattern:
		k.intersections.ApplyPattern(cmd.Pattern)
	case CmdStartEmergency:
		k.emergencyVehicle = k.arbitrator.Start()
	case CmdStopEmergency:
		if k.emergencyVehicle != nil {
			k.arbitrator.Stop(k.emergencyVehicle, k.intersections)
			k.emergencyVehicle = nil
		}
	case CmdSpawnVehicle:
		k.vehicles.Spawn(k.clock.TickID)
	default:
		log.Warnf("unknown command kind %d dropped", cmd.Kind)
	}
}
