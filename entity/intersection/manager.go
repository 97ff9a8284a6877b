// Package intersection implements the per-intersection signal phase
// machine and the manager that owns all 25 grid intersections.
package intersection

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
	"github.com/CodeNexus100/signal-iq-be/utils/randengine"
)

var log = logrus.WithField("module", "intersection")

// Pattern is a named traffic pattern: a fixed NS/EW green-time pair
// applied to every intersection at once.
type Pattern struct {
	NSGreen float64
	EWGreen float64
}

// patterns are the supported named timing plans. Unknown names fall back
// to the neutral 10/10 plan.
var patterns = map[string]Pattern{
	"rush_hour":  {NSGreen: 40, EWGreen: 20},
	"night_mode": {NSGreen: 10, EWGreen: 10},
	"event":      {NSGreen: 35, EWGreen: 35},
	"holiday":    {NSGreen: 20, EWGreen: 20},
}

// Manager owns the intersections. The ordered slice fixes iteration
// order (grid id order) so that same-seed runs evolve identically; the
// map serves id lookups.
type Manager struct {
	cfg *config.Config

	items []*Intersection
	byID  map[string]*Intersection
}

// NewManager creates an empty manager; Init populates the grid.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Init builds the 5x5 grid. Each intersection starts with a random
// active axis and a random 5-10s countdown drawn from the shared stream,
// consuming exactly two draws per intersection in id order.
func (m *Manager) Init(e *randengine.Engine) {
	m.items = make([]*Intersection, 0, grid.Size*grid.Size)
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			startNS := entity.SignalRed
			startEW := entity.SignalGreen
			if e.Bool() {
				startNS = entity.SignalGreen
				startEW = entity.SignalRed
			}
			m.items = append(m.items, &Intersection{
				ID:          grid.ID(row, col),
				NSSignal:    startNS,
				EWSignal:    startEW,
				Timer:       float64(e.IntBetween(5, 10)),
				Mode:        entity.ModeFixed,
				NSGreenTime: m.cfg.Signal.MinGreen,
				EWGreenTime: m.cfg.Signal.MinGreen,
			})
		}
	}
	m.byID = lo.SliceToMap(m.items, func(i *Intersection) (string, *Intersection) {
		return i.ID, i
	})
	log.Debugf("initialized %d intersections", len(m.items))
}

// Get returns the intersection with the given id.
func (m *Manager) Get(id string) (*Intersection, bool) {
	i, ok := m.byID[id]
	return i, ok
}

// All returns the intersections in grid id order.
func (m *Manager) All() []*Intersection {
	return m.items
}

// UpdateAll runs the phase machine for one tick. Intersections in
// EMERGENCY_OVERRIDE are frozen here; the emergency arbitrator owns them.
func (m *Manager) UpdateAll(dt float64) {
	for _, i := range m.items {
		switch i.Mode {
		case entity.ModeFixed, entity.ModeAIOptimized, entity.ModeManual:
			i.Update(dt, m.cfg.Signal.Yellow)
		}
	}
}

// ApplyUpdate applies an operator update to one intersection. Nil fields
// are left untouched. Unknown ids are a silent no-op per the command
// contract; the caller sees false.
func (m *Manager) ApplyUpdate(id string, nsGreen, ewGreen *float64, mode *entity.IntersectionMode) bool {
	i, ok := m.byID[id]
	if !ok {
		log.Debugf("update for unknown intersection %s dropped", id)
		return false
	}
	if nsGreen != nil {
		i.NSGreenTime = lo.Clamp(*nsGreen, m.cfg.Signal.MinGreen, m.cfg.Signal.MaxGreen)
	}
	if ewGreen != nil {
		i.EWGreenTime = lo.Clamp(*ewGreen, m.cfg.Signal.MinGreen, m.cfg.Signal.MaxGreen)
	}
	if mode != nil {
		i.Mode = *mode
	}
	return true
}

// SetAllModes switches every intersection to the given mode.
func (m *Manager) SetAllModes(mode entity.IntersectionMode) {
	for _, i := range m.items {
		i.Mode = mode
	}
}

// ApplyPattern sets every intersection's green times to the named
// pattern's pair and resets the countdown to the new green time of the
// currently active axis. Returns the applied pattern and the number of
// intersections updated.
func (m *Manager) ApplyPattern(name string) (Pattern, int) {
	p, ok := patterns[name]
	if !ok {
		p = Pattern{NSGreen: 10, EWGreen: 10}
	}
	for _, i := range m.items {
		i.NSGreenTime = p.NSGreen
		i.EWGreenTime = p.EWGreen
		if i.NSSignal == entity.SignalGreen || i.NSSignal == entity.SignalYellow {
			i.Timer = p.NSGreen
		} else {
			i.Timer = p.EWGreen
		}
	}
	log.Infof("pattern %q applied to %d intersections", name, len(m.items))
	return p, len(m.items)
}
