package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeNexus100/signal-iq-be/entity"
	"github.com/CodeNexus100/signal-iq-be/entity/grid"
)

func TestID(t *testing.T) {
	assert.Equal(t, "I-101", grid.ID(0, 0))
	assert.Equal(t, "I-105", grid.ID(0, 4))
	assert.Equal(t, "I-113", grid.ID(2, 2))
	assert.Equal(t, "I-125", grid.ID(4, 4))
}

func TestIndexRoundTrip(t *testing.T) {
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			id := grid.ID(row, col)
			idx, err := grid.Index(id)
			assert.NoError(t, err)
			assert.Equal(t, row*grid.Size+col, idx)
			r, c, err := grid.RowCol(id)
			assert.NoError(t, err)
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
}

func TestIndexMalformed(t *testing.T) {
	for _, id := range []string{"", "I-", "I-abc", "X-101", "I-100", "I-126", "101"} {
		_, err := grid.Index(id)
		assert.Error(t, err, id)
	}
}

func TestLaneID(t *testing.T) {
	assert.Equal(t, "H0", grid.LaneID(entity.LaneHorizontal, 0))
	assert.Equal(t, "V3", grid.LaneID(entity.LaneVertical, 3))
}

func TestParseLane(t *testing.T) {
	kind, idx, err := grid.ParseLane("H2")
	assert.NoError(t, err)
	assert.Equal(t, entity.LaneHorizontal, kind)
	assert.Equal(t, 2, idx)

	kind, idx, err = grid.ParseLane("V4")
	assert.NoError(t, err)
	assert.Equal(t, entity.LaneVertical, kind)
	assert.Equal(t, 4, idx)

	for _, laneID := range []string{"", "H", "Z1", "H5", "V-1", "Hx"} {
		_, _, err := grid.ParseLane(laneID)
		assert.Error(t, err, laneID)
	}
}

func TestLaneIDsCanonicalOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"H0", "H1", "H2", "H3", "H4", "V0", "V1", "V2", "V3", "V4"},
		grid.LaneIDs())
}
