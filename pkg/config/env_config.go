// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig contains deployment-level settings read from
// GRAVITY_* environment variables. Simulation parameters can be
// overridden here without touching the JSON configuration file.
type EnvironmentConfig struct {
	WorldWidth            float64
	WorldHeight           float64
	GridResolution        int
	GravitationalConstant float64
	FrameRate             int
	HealthAddr            string

	// Resource management configuration
	MaxMemoryMB           int64
	MaxGoroutines         int64
	ShutdownTimeout       time.Duration
	ResourceCheckInterval time.Duration
}

// LoadConfigFromEnv builds an EnvironmentConfig from environment
// variables, falling back to safe defaults for anything unset.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		WorldWidth:            800,
		WorldHeight:           600,
		GridResolution:        25,
		GravitationalConstant: 100,
		FrameRate:             60,
		HealthAddr:            ":8080",
		MaxMemoryMB:           500,
		MaxGoroutines:         100,
		ShutdownTimeout:       30 * time.Second,
		ResourceCheckInterval: 10 * time.Second,
	}

	var err error
	if config.WorldWidth, err = getEnvFloat("GRAVITY_WORLD_WIDTH", config.WorldWidth); err != nil {
		return nil, err
	}
	if config.WorldHeight, err = getEnvFloat("GRAVITY_WORLD_HEIGHT", config.WorldHeight); err != nil {
		return nil, err
	}
	if config.GridResolution, err = getEnvInt("GRAVITY_GRID_RESOLUTION", config.GridResolution); err != nil {
		return nil, err
	}
	if config.GravitationalConstant, err = getEnvFloat("GRAVITY_CONSTANT", config.GravitationalConstant); err != nil {
		return nil, err
	}
	if config.FrameRate, err = getEnvInt("GRAVITY_FRAME_RATE", config.FrameRate); err != nil {
		return nil, err
	}
	if addr := os.Getenv("GRAVITY_HEALTH_ADDR"); addr != "" {
		config.HealthAddr = addr
	}
	if config.MaxMemoryMB, err = getEnvInt64("GRAVITY_MAX_MEMORY_MB", config.MaxMemoryMB); err != nil {
		return nil, err
	}
	if config.MaxGoroutines, err = getEnvInt64("GRAVITY_MAX_GOROUTINES", config.MaxGoroutines); err != nil {
		return nil, err
	}
	if config.ShutdownTimeout, err = getEnvDuration("GRAVITY_SHUTDOWN_TIMEOUT", config.ShutdownTimeout); err != nil {
		return nil, err
	}
	if config.ResourceCheckInterval, err = getEnvDuration("GRAVITY_RESOURCE_CHECK_INTERVAL", config.ResourceCheckInterval); err != nil {
		return nil, err
	}

	return config, nil
}

// ApplyEnvironmentOverrides overlays environment-provided simulation
// parameters onto a loaded configuration.
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	envConfig, err := LoadConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}

	if os.Getenv("GRAVITY_WORLD_WIDTH") != "" {
		config.WorldWidth = envConfig.WorldWidth
	}
	if os.Getenv("GRAVITY_WORLD_HEIGHT") != "" {
		config.WorldHeight = envConfig.WorldHeight
	}
	if os.Getenv("GRAVITY_GRID_RESOLUTION") != "" {
		config.GridResolution = envConfig.GridResolution
	}
	if os.Getenv("GRAVITY_CONSTANT") != "" {
		config.Physics.GravitationalConstant = envConfig.GravitationalConstant
	}

	return nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
