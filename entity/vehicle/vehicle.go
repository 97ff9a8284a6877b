package vehicle

import (
	"github.com/CodeNexus100/signal-iq-be/entity"
)

// Vehicle is one car on a lane. Position is the scalar coordinate along
// the lane axis; Speed is never negative. TargetSpeed is the cruising
// speed resumed after a stop.
type Vehicle struct {
	ID          string           `json:"id"`
	LaneID      string           `json:"laneId"`
	LaneKind    entity.LaneKind  `json:"laneType"`
	Direction   entity.Direction `json:"direction"`
	Position    float64          `json:"position"`
	Speed       float64          `json:"speed"`
	TargetSpeed float64          `json:"targetSpeed"`
	Type        string           `json:"type"`
}
