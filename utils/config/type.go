package config

// Control holds the fixed-timestep settings of the tick loop.
type Control struct {
	// DT is the fixed simulation step in seconds. The kernel does not
	// support variable-step ticks.
	DT float64 `yaml:"dt"`
	// Seed drives the deterministic random stream.
	Seed uint64 `yaml:"seed"`
}

// Grid holds the spatial scaling of the 5x5 intersection grid.
type Grid struct {
	// Spacing is the distance between adjacent intersection centers.
	Spacing float64 `yaml:"spacing"`
	// BoundsMin/BoundsMax delimit the simulated coordinate range;
	// vehicles leaving it are despawned.
	BoundsMin float64 `yaml:"bounds_min"`
	BoundsMax float64 `yaml:"bounds_max"`
}

// Signal holds the phase timing limits of the signal machine.
type Signal struct {
	MinGreen float64 `yaml:"min_green"`
	MaxGreen float64 `yaml:"max_green"`
	Yellow   float64 `yaml:"yellow"`
}

// Vehicle holds car-following physics and spawn policy settings.
type Vehicle struct {
	Max         int     `yaml:"max"`          // hard cap on the population
	SpawnFloor  int     `yaml:"spawn_floor"`  // spawn trials run below this count
	SpawnChance float64 `yaml:"spawn_chance"` // per-trial success probability

	Acceleration float64 `yaml:"acceleration"` // units/s^2
	Deceleration float64 `yaml:"deceleration"` // units/s^2, comfortable braking
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`

	StopOffset    float64 `yaml:"stop_offset"`    // stop line distance from intersection center
	MinGap        float64 `yaml:"min_gap"`        // minimum gap behind a leader
	BrakeDistance float64 `yaml:"brake_distance"` // braking curve engages under this distance
}

// AI holds the heuristic controller settings.
type AI struct {
	// UpdateInterval is the simulated-time throttle between green-time
	// actuations; scores and status are still recomputed every tick.
	UpdateInterval   float64 `yaml:"update_interval"`
	CongestionRadius float64 `yaml:"congestion_radius"`
	WaitingSpeed     float64 `yaml:"waiting_speed"` // below this a vehicle counts as waiting
	GreenStep        float64 `yaml:"green_step"`    // per-actuation green-time nudge
}

// Emergency holds green-wave arbitration settings.
type Emergency struct {
	Speed         float64 `yaml:"speed"`
	StartPosition float64 `yaml:"start_position"`
	DetectionDist float64 `yaml:"detection_dist"` // override when closer than this
	PassMargin    float64 `yaml:"pass_margin"`    // restore when past by more than this
	ExitMargin    float64 `yaml:"exit_margin"`    // teardown this far beyond the grid bounds
}

// Config is the root of the YAML configuration file.
type Config struct {
	Control   Control   `yaml:"control"`
	Grid      Grid      `yaml:"grid"`
	Signal    Signal    `yaml:"signal"`
	Vehicle   Vehicle   `yaml:"vehicle"`
	AI        AI        `yaml:"ai"`
	Emergency Emergency `yaml:"emergency"`
}
