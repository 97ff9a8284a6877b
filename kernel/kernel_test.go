package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/kernel"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
)

func newKernel(seed uint64) *kernel.Kernel {
	k := kernel.New(config.Default())
	k.Initialize(seed)
	return k
}

func runTicks(k *kernel.Kernel, n int) {
	for i := 0; i < n; i++ {
		k.RunTick()
	}
}

func TestSameSeedRunsAreIdentical(t *testing.T) {
	k1 := newKernel(42)
	k2 := newKernel(42)

	runTicks(k1, 500)
	runTicks(k2, 500)

	s1, s2 := k1.Snapshot(), k2.Snapshot()
	assert.Equal(t, int64(500), s1.Tick)
	assert.Equal(t, s1, s2)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	k1 := newKernel(1)
	k2 := newKernel(2)

	s1, s2 := k1.Snapshot(), k2.Snapshot()
	assert.NotEqual(t, s1.Vehicles, s2.Vehicles)
}

func TestInitializeResets(t *testing.T) {
	k := newKernel(42)
	runTicks(k, 100)
	assert.Equal(t, int64(100), k.Snapshot().Tick)

	k.Initialize(42)
	s := k.Snapshot()
	assert.Equal(t, int64(0), s.Tick)
	assert.Equal(t, 0.0, s.Time)
	assert.Len(t, s.Intersections, 25)
	assert.Len(t, s.Vehicles, 10)
	assert.Nil(t, s.Emergency)
}

func TestLazyInitializeOnFirstTick(t *testing.T) {
	k := kernel.New(config.Default())
	k.RunTick()

	s := k.Snapshot()
	assert.Equal(t, int64(1), s.Tick)
	assert.Len(t, s.Intersections, 25)
}

func TestCommandsApplyInSubmissionOrder(t *testing.T) {
	k := newKernel(42)
	first, second := 20.0, 30.0
	k.Enqueue(kernel.UpdateIntersection("I-101", &first, nil, nil))
	k.Enqueue(kernel.UpdateIntersection("I-101", &second, nil, nil))
	k.RunTick()

	detail, err := k.IntersectionDetail("I-101")
	assert.NoError(t, err)
	assert.Equal(t, 30, detail.NSGreenTime)
}

func TestUnknownIntersectionCommandIsNoOp(t *testing.T) {
	k := newKernel(42)
	before := k.Snapshot()
	ns := 25.0
	k.Enqueue(kernel.UpdateIntersection("I-999", &ns, nil, nil))
	k.RunTick()

	// The command is dropped; the tick itself still ran.
	assert.Equal(t, before.Tick+1, k.Snapshot().Tick)
}

func TestApplyPatternCommand(t *testing.T) {
	k := newKernel(42)
	k.Enqueue(kernel.ApplyTrafficPattern("rush_hour"))
	k.RunTick()

	for _, i := range k.Snapshot().Intersections {
		assert.Equal(t, 40.0, i.NSGreenTime, i.ID)
		assert.Equal(t, 20.0, i.EWGreenTime, i.ID)
	}
}

func TestSetGlobalAIMode(t *testing.T) {
	k := newKernel(42)
	k.Enqueue(kernel.SetGlobalAIMode(true))
	k.RunTick()

	for _, i := range k.Snapshot().Intersections {
		assert.Equal(t, entity.ModeAIOptimized, i.Mode)
	}
	assert.True(t, k.AIStatus().AIActive)

	k.Enqueue(kernel.SetGlobalAIMode(false))
	k.RunTick()
	for _, i := range k.Snapshot().Intersections {
		assert.Equal(t, entity.ModeFixed, i.Mode)
	}
}

func TestSpawnVehicleCommand(t *testing.T) {
	cfg := config.Default()
	cfg.Vehicle.SpawnChance = 0 // no background spawns
	k := kernel.New(cfg)
	k.Initialize(42)

	k.RunTick()
	assert.Len(t, k.Snapshot().Vehicles, 10)

	k.Enqueue(kernel.SpawnVehicle())
	k.RunTick()
	assert.Len(t, k.Snapshot().Vehicles, 11)
}

func TestSpawnRespectsCap(t *testing.T) {
	cfg := config.Default()
	cfg.Vehicle.SpawnChance = 0
	cfg.Vehicle.Max = 10
	k := kernel.New(cfg)
	k.Initialize(42)

	k.Enqueue(kernel.SpawnVehicle())
	k.RunTick()
	assert.Len(t, k.Snapshot().Vehicles, 10)
}

func TestEmergencyLifecycle(t *testing.T) {
	k := newKernel(42)
	k.Enqueue(kernel.StartEmergency())
	k.RunTick()

	s := k.Snapshot()
	assert.NotNil(t, s.Emergency)
	assert.True(t, s.Emergency.Active)
	assert.Equal(t, "EM-1", s.Emergency.ID)

	k.Enqueue(kernel.StopEmergency())
	k.RunTick()
	s = k.Snapshot()
	assert.Nil(t, s.Emergency)
	for _, i := range s.Intersections {
		assert.NotEqual(t, entity.ModeEmergencyOverride, i.Mode, i.ID)
	}
}

func TestEmergencyTearsDownPastBounds(t *testing.T) {
	k := newKernel(42)
	k.Enqueue(kernel.StartEmergency())

	// 700 units at 35 u/s is 20s, i.e. 400 ticks; run a margin beyond.
	runTicks(k, 450)
	s := k.Snapshot()
	assert.Nil(t, s.Emergency)
	for _, i := range s.Intersections {
		assert.NotEqual(t, entity.ModeEmergencyOverride, i.Mode, i.ID)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	k := newKernel(42)
	s := k.Snapshot()
	s.Intersections[0].NSGreenTime = 999
	if len(s.Vehicles) > 0 {
		s.Vehicles[0].Position = -12345
	}

	fresh := k.Snapshot()
	assert.NotEqual(t, 999.0, fresh.Intersections[0].NSGreenTime)
	if len(fresh.Vehicles) > 0 {
		assert.NotEqual(t, -12345.0, fresh.Vehicles[0].Position)
	}
}

func TestIntersectionDetail(t *testing.T) {
	k := newKernel(42)
	detail, err := k.IntersectionDetail("I-113")
	assert.NoError(t, err)
	assert.Equal(t, "I-113", detail.IntersectionID)
	assert.Contains(t, []string{"NS", "EW", "NS-Yellow", "EW-Yellow", "All-Red"}, detail.CurrentPhase)
	assert.GreaterOrEqual(t, detail.TimerRemaining, 0)
	assert.False(t, detail.AIEnabled)

	_, err = k.IntersectionDetail("I-999")
	assert.ErrorIs(t, err, kernel.ErrIntersectionNotFound)

	assert.True(t, k.HasIntersection("I-113"))
	assert.False(t, k.HasIntersection("I-999"))
}

func TestGridOverview(t *testing.T) {
	k := newKernel(42)
	o := k.GridOverview()

	assert.Len(t, o.Roads, 10)
	assert.Equal(t, "H0", o.Roads[0].LaneID)
	assert.Equal(t, "V4", o.Roads[9].LaneID)
	for _, r := range o.Roads {
		assert.GreaterOrEqual(t, r.Congestion, 0.0)
		assert.LessOrEqual(t, r.Congestion, 1.0)
		assert.Contains(t, []string{"optimal", "moderate", "congested"}, r.Flow)
	}

	assert.Len(t, o.Zones, 3)
	assert.Equal(t, "North Industrial", o.Zones[0].Name)
	assert.Equal(t, "Central District", o.Zones[1].Name)
	assert.Equal(t, "West Harbor", o.Zones[2].Name)
}

func TestQueueOrderAndDrain(t *testing.T) {
	q := &kernel.Queue{}
	q.Enqueue(kernel.StartEmergency())
	q.Enqueue(kernel.StopEmergency())
	assert.Equal(t, 2, q.Len())

	cmds := q.PopAll()
	assert.Len(t, cmds, 2)
	assert.Equal(t, kernel.CmdStartEmergency, cmds[0].Kind)
	assert.Equal(t, kernel.CmdStopEmergency, cmds[1].Kind)
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.PopAll())
}
