// Package grid maps between intersection ids, grid coordinates and lane
// ids for the fixed 5x5 signalized grid. All functions are pure; spatial
// scaling (spacing, bounds) lives in the runtime config.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CodeNexus100/signal-iq-be/entity"
)

// Size is the number of rows and columns in the grid.
const Size = 5

// firstNumber is the numeric part of the first intersection id: the grid
// is addressed I-101 (row 0, col 0) through I-125 (row 4, col 4).
const firstNumber = 101

// ID returns the intersection id at (row, col).
func ID(row, col int) string {
	return fmt.Sprintf("I-%d", firstNumber+row*Size+col)
}

// Index parses an intersection id into its linear index 0..24.
func Index(id string) (int, error) {
	numPart, ok := strings.CutPrefix(id, "I-")
	if !ok {
		return 0, fmt.Errorf("grid: malformed intersection id %q", id)
	}
	n, err := strconv.Atoi(numPart)
	if err != nil {
		return 0, fmt.Errorf("grid: malformed intersection id %q", id)
	}
	idx := n - firstNumber
	if idx < 0 || idx >= Size*Size {
		return 0, fmt.Errorf("grid: intersection id %q out of range", id)
	}
	return idx, nil
}

// RowCol parses an intersection id into grid coordinates.
func RowCol(id string) (row, col int, err error) {
	idx, err := Index(id)
	if err != nil {
		return 0, 0, err
	}
	return idx / Size, idx % Size, nil
}

// LaneID formats a lane id, e.g. H2 for horizontal row 2, V3 for
// vertical column 3.
func LaneID(kind entity.LaneKind, index int) string {
	if kind == entity.LaneHorizontal {
		return fmt.Sprintf("H%d", index)
	}
	return fmt.Sprintf("V%d", index)
}

// ParseLane splits a lane id into orientation and row/column index.
func ParseLane(laneID string) (entity.LaneKind, int, error) {
	if len(laneID) < 2 {
		return "", 0, fmt.Errorf("grid: malformed lane id %q", laneID)
	}
	var kind entity.LaneKind
	switch laneID[0] {
	case 'H':
		kind = entity.LaneHorizontal
	case 'V':
		kind = entity.LaneVertical
	default:
		return "", 0, fmt.Errorf("grid: malformed lane id %q", laneID)
	}
	index, err := strconv.Atoi(laneID[1:])
	if err != nil || index < 0 || index >= Size {
		return "", 0, fmt.Errorf("grid: malformed lane id %q", laneID)
	}
	return kind, index, nil
}

// LaneIDs returns every lane id in canonical order (H0..H4, V0..V4).
// Iterating lanes in this order keeps the vehicle update deterministic.
func LaneIDs() []string {
	ids := make([]string, 0, 2*Size)
	for i := 0; i < Size; i++ {
		ids = append(ids, LaneID(entity.LaneHorizontal, i))
	}
	for i := 0; i < Size; i++ {
		ids = append(ids, LaneID(entity.LaneVertical, i))
	}
	return ids
}
