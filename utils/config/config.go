// Package config carries every tunable of the simulation. Defaults match
// the reference deployment; a YAML file can override any subset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Control: Control{
			DT:   0.05, // 20 Hz
			Seed: 42,
		},
		Grid: Grid{
			Spacing:   100.0,
			BoundsMin: -100.0,
			BoundsMax: 600.0,
		},
		Signal: Signal{
			MinGreen: 10.0,
			MaxGreen: 60.0,
			Yellow:   3.0,
		},
		Vehicle: Vehicle{
			Max:           50,
			SpawnFloor:    20,
			SpawnChance:   0.1,
			Acceleration:  10.0,
			Deceleration:  30.0,
			MinSpeed:      5.0,
			MaxSpeed:      15.0,
			StopOffset:    35.0,
			MinGap:        8.0,
			BrakeDistance: 150.0,
		},
		AI: AI{
			UpdateInterval:   2.0,
			CongestionRadius: 50.0,
			WaitingSpeed:     1.0,
			GreenStep:        1.0,
		},
		Emergency: Emergency{
			Speed:         35.0,
			StartPosition: -50.0,
			DetectionDist: 150.0,
			PassMargin:    20.0,
			ExitMargin:    50.0,
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := yaml.UnmarshalStrict(file, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
