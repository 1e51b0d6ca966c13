// cmd/viewer/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
	engorender "github.com/opd-ai/go-gravity/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	fullscreen := flag.Bool("fullscreen", false, "Run fullscreen")
	twoBody := flag.Bool("two-body", false, "Start with the two-body orbit configuration")
	flag.Parse()

	var simConfig *config.SimulationConfig
	switch {
	case *twoBody:
		simConfig = config.TwoBodyConfig()
	default:
		if _, err := os.Stat(*configPath); os.IsNotExist(err) {
			logger.Info(ctx, "Configuration file not found, using default configuration",
				"config_path", *configPath,
			)
			simConfig = config.DefaultConfig()
		} else {
			var err error
			simConfig, err = config.LoadConfig(*configPath)
			if err != nil {
				logger.Error(ctx, "Failed to load configuration", err,
					"config_path", *configPath,
				)
				os.Exit(1)
			}
		}
	}

	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	sim := engine.NewSimulation(simConfig)
	if err := sim.Initialize(); err != nil {
		logger.Error(ctx, "Failed to initialize simulation", err)
		os.Exit(1)
	}
	gridW, gridH := sim.GridDimensions()
	logger.Info(ctx, "Simulation initialized",
		"grid_width", gridW,
		"grid_height", gridH,
	)

	scene := engorender.NewSimulationScene(sim)

	opts := engo.RunOptions{
		Title:      "Gravity",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	logger.Info(ctx, "Starting viewer",
		"width", *width,
		"height", *height,
	)
	engo.Run(opts, scene)
}
