package intersection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/intersection"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
	"github.com/CodeNexus100/signal-iq-be/utils/randengine"
)

func newIntersection() *intersection.Intersection {
	return &intersection.Intersection{
		ID:          "I-101",
		NSSignal:    entity.SignalGreen,
		EWSignal:    entity.SignalRed,
		Timer:       1.0,
		Mode:        entity.ModeFixed,
		NSGreenTime: 15,
		EWGreenTime: 25,
	}
}

func TestPhaseCycle(t *testing.T) {
	i := newIntersection()

	// NS green expires into NS yellow.
	i.Update(1.0, 3.0)
	assert.Equal(t, entity.SignalYellow, i.NSSignal)
	assert.Equal(t, entity.SignalRed, i.EWSignal)
	assert.Equal(t, 3.0, i.Timer)
	assert.Equal(t, "NS-Yellow", i.Phase())

	// Yellow expires: NS red, EW green with the EW green time.
	i.Update(3.0, 3.0)
	assert.Equal(t, entity.SignalRed, i.NSSignal)
	assert.Equal(t, entity.SignalGreen, i.EWSignal)
	assert.Equal(t, 25.0, i.Timer)
	assert.Equal(t, "EW", i.Phase())

	// EW green through yellow back to NS green.
	i.Update(25.0, 3.0)
	assert.Equal(t, "EW-Yellow", i.Phase())
	i.Update(3.0, 3.0)
	assert.Equal(t, entity.SignalGreen, i.NSSignal)
	assert.Equal(t, entity.SignalRed, i.EWSignal)
	assert.Equal(t, 15.0, i.Timer)
}

func TestAllRedRecovery(t *testing.T) {
	i := newIntersection()
	i.NSSignal = entity.SignalRed
	i.EWSignal = entity.SignalRed
	i.Timer = 0.05

	i.Update(0.05, 3.0)
	assert.Equal(t, entity.SignalGreen, i.NSSignal)
	assert.Equal(t, entity.SignalRed, i.EWSignal)
	assert.Equal(t, 15.0, i.Timer)
}

func TestNeverBothGreen(t *testing.T) {
	i := newIntersection()
	for n := 0; n < 10000; n++ {
		i.Update(0.05, 3.0)
		bothGreen := i.NSSignal == entity.SignalGreen && i.EWSignal == entity.SignalGreen
		assert.False(t, bothGreen, "tick %d", n)
	}
}

func TestManagerInitDeterministic(t *testing.T) {
	cfg := config.Default()
	m1 := intersection.NewManager(&cfg)
	m1.Init(randengine.New(7))
	m2 := intersection.NewManager(&cfg)
	m2.Init(randengine.New(7))

	a, b := m1.All(), m2.All()
	assert.Equal(t, 25, len(a))
	for idx := range a {
		assert.Equal(t, *a[idx], *b[idx])
	}
	// Id order is row-major.
	assert.Equal(t, "I-101", a[0].ID)
	assert.Equal(t, "I-125", a[24].ID)
}

func TestManagerUpdateSkipsOverride(t *testing.T) {
	cfg := config.Default()
	m := intersection.NewManager(&cfg)
	m.Init(randengine.New(1))

	i, ok := m.Get("I-103")
	assert.True(t, ok)
	i.Mode = entity.ModeEmergencyOverride
	i.NSSignal = entity.SignalRed
	i.EWSignal = entity.SignalGreen
	i.Timer = 0.01

	m.UpdateAll(0.05)
	// Frozen: the expired timer does not fire a transition.
	assert.Equal(t, entity.SignalGreen, i.EWSignal)
	assert.Equal(t, entity.SignalRed, i.NSSignal)
}

func TestApplyUpdateClamps(t *testing.T) {
	cfg := config.Default()
	m := intersection.NewManager(&cfg)
	m.Init(randengine.New(1))

	ns, ew := 5.0, 120.0
	mode := entity.ModeManual
	ok := m.ApplyUpdate("I-110", &ns, &ew, &mode)
	assert.True(t, ok)

	i, _ := m.Get("I-110")
	assert.Equal(t, cfg.Signal.MinGreen, i.NSGreenTime)
	assert.Equal(t, cfg.Signal.MaxGreen, i.EWGreenTime)
	assert.Equal(t, entity.ModeManual, i.Mode)

	// Nil fields leave state untouched.
	ok = m.ApplyUpdate("I-110", nil, nil, nil)
	assert.True(t, ok)
	assert.Equal(t, cfg.Signal.MinGreen, i.NSGreenTime)
	assert.Equal(t, entity.ModeManual, i.Mode)

	assert.False(t, m.ApplyUpdate("I-999", &ns, nil, nil))
}

func TestApplyPattern(t *testing.T) {
	cfg := config.Default()
	m := intersection.NewManager(&cfg)
	m.Init(randengine.New(1))

	p, n := m.ApplyPattern("rush_hour")
	assert.Equal(t, 25, n)
	assert.Equal(t, 40.0, p.NSGreen)
	assert.Equal(t, 20.0, p.EWGreen)
	for _, i := range m.All() {
		assert.Equal(t, 40.0, i.NSGreenTime)
		assert.Equal(t, 20.0, i.EWGreenTime)
		// Timer resets to the green time of the active axis.
		if i.NSSignal == entity.SignalGreen || i.NSSignal == entity.SignalYellow {
			assert.Equal(t, 40.0, i.Timer)
		} else {
			assert.Equal(t, 20.0, i.Timer)
		}
	}

	// Unknown patterns fall back to the neutral plan.
	p, n = m.ApplyPattern("nonsense")
	assert.Equal(t, 25, n)
	assert.Equal(t, 10.0, p.NSGreen)
	assert.Equal(t, 10.0, p.EWGreen)
}
