package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeNexus100/signal-iq-be/clock"
)

func TestAdvance(t *testing.T) {
	c := clock.New(0.05)
	assert.Equal(t, int64(0), c.TickID)
	assert.Equal(t, 0.0, c.T)

	for i := 0; i < 20; i++ {
		c.Advance()
	}
	assert.Equal(t, int64(20), c.TickID)
	assert.InDelta(t, 1.0, c.T, 1e-9)

	c.Init()
	assert.Equal(t, int64(0), c.TickID)
	assert.Equal(t, 0.0, c.T)
}

func TestString(t *testing.T) {
	c := clock.New(1.0)
	assert.Equal(t, "00:00:00", c.String())
	c.T = 3725
	assert.Equal(t, "01:02:05", c.String())
}
