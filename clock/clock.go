// Package clock tracks simulated time for the fixed-timestep kernel.
package clock

import "fmt"

// Clock advances in fixed steps of DT seconds. TickID counts completed
// ticks and T is the simulated time in seconds; both are owned by the
// kernel tick and must not be mutated elsewhere.
type Clock struct {
	DT float64

	TickID int64
	T      float64
}

// New creates a clock with the given fixed step.
func New(dt float64) *Clock {
	c := &Clock{DT: dt}
	c.Init()
	return c
}

// Init resets the clock to tick 0, time 0.
func (c *Clock) Init() {
	c.TickID = 0
	c.T = 0
}

// Advance completes one tick.
func (c *Clock) Advance() {
	c.T += c.DT
	c.TickID++
}

// String formats the simulated time as HH:MM:SS.
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(t))
}
