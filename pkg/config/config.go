// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimulationConfig contains the full configuration for a gravity
// simulation: world geometry, grid resolution, the physics preset, and
// the seeded body set. The numeric constants are presets tuned for
// visual stability, not physical accuracy.
type SimulationConfig struct {
	WorldWidth     float64       `json:"worldWidth"`
	WorldHeight    float64       `json:"worldHeight"`
	GridResolution int           `json:"gridResolution"`
	Physics        PhysicsConfig `json:"physics"`
	Bodies         []BodyConfig  `json:"bodies"`
}

// PhysicsConfig contains the physics preset constants
type PhysicsConfig struct {
	GravitationalConstant float64 `json:"gravitationalConstant"`
	VelocityDamping       float64 `json:"velocityDamping"`
	BounceDamping         float64 `json:"bounceDamping"`
}

// BodyConfig describes one seeded body
type BodyConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Mass   float64 `json:"mass"`
	Radius float64 `json:"radius"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimulationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimulationConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default demonstration configuration: an
// 800×600 world, a grid of roughly 200×150 cells, and three bodies
// given tangential velocities around the central mass so the system
// orbits rather than collapsing immediately.
func DefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		WorldWidth:     800,
		WorldHeight:    600,
		GridResolution: 25,
		Physics: PhysicsConfig{
			GravitationalConstant: 100,
			VelocityDamping:       0.99995,
			BounceDamping:         0.8,
		},
		Bodies: []BodyConfig{
			{
				X:      400,
				Y:      300,
				Mass:   1000,
				Radius: 15,
			},
			{
				X:      200,
				Y:      180,
				VX:     10.6,
				VY:     -17.7,
				Mass:   200,
				Radius: 8,
			},
			{
				X:      600,
				Y:      420,
				VX:     -10.6,
				VY:     17.7,
				Mass:   300,
				Radius: 10,
			},
		},
	}
}

// TwoBodyConfig returns a central-mass-plus-orbiter preset: a 5000 mass
// at world center and a 20 mass orbiter at distance 110 with circular
// orbital speed sqrt(G·M/r). Used by tests and the orbit example.
func TwoBodyConfig() *SimulationConfig {
	return &SimulationConfig{
		WorldWidth:     800,
		WorldHeight:    600,
		GridResolution: 25,
		Physics: PhysicsConfig{
			GravitationalConstant: 100,
			VelocityDamping:       0.99995,
			BounceDamping:         0.8,
		},
		Bodies: []BodyConfig{
			{
				X:      400,
				Y:      300,
				Mass:   5000,
				Radius: 12,
			},
			{
				X:      510,
				Y:      300,
				VY:     67.419986, // sqrt(100*5000/110)
				Mass:   20,
				Radius: 4,
			},
		},
	}
}
