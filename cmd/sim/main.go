// cmd/sim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/health"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/physics"
	"github.com/opd-ai/go-gravity/pkg/resource"
)

const (
	spawnMass   = 250.0
	spawnRadius = 8.0

	// Cells above this force magnitude saturate the glyph ramp.
	maxDisplayForce = 500.0
)

// forceRamp orders glyphs from weakest field to strongest.
var forceRamp = []rune(" .:-=+*#%@")

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	headless := flag.Bool("headless", false, "Run without a display")
	steps := flag.Int("steps", 1000, "Number of steps to run in headless mode")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	simConfig := loadSimulationConfig(ctx, logger, *configPath)

	if err := config.ApplyEnvironmentOverrides(simConfig); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	env, err := config.LoadConfigFromEnv()
	if err != nil {
		logger.Error(ctx, "Failed to load environment configuration", err)
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
		"bodies", len(sim.Snapshot().Bodies),
	)

	manager := resource.NewManager(env)
	if err := manager.Start(); err != nil {
		logger.Error(ctx, "Failed to start resource manager", err)
		os.Exit(1)
	}

	healthServer := startHealthServer(ctx, logger, sim, manager, env.HealthAddr)

	dt := 1.0 / float64(env.FrameRate)

	if *headless {
		runHeadless(ctx, logger, sim, dt, *steps)
	} else if err := runInteractive(sim, dt); err != nil {
		logger.Error(ctx, "Interactive viewer failed", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.ShutdownTimeout)
	defer cancel()

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Health server shutdown failed", err)
	}
	if err := manager.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Resource manager shutdown failed", err)
	}
}

// loadSimulationConfig reads the configuration file, falling back to the
// default configuration when the file does not exist.
func loadSimulationConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimulationConfig {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig()
	}

	simConfig, err := config.LoadConfig(path)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", path,
		)
		os.Exit(1)
	}
	return simConfig
}

// startHealthServer registers health checks and serves them in the
// background on addr.
func startHealthServer(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, manager *resource.Manager, addr string) *http.Server {
	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewSimulationHealthCheck(sim.Initialized))
	checker.AddCheck(health.NewInvariantHealthCheck(sim.Snapshot))
	checker.AddCheck(health.NewMemoryHealthCheck(manager.Stats().MaxMemoryMB, manager.MemoryUsage))
	checker.AddCheck(resource.NewHealthCheck(manager))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", checker.LivenessHandler)
	mux.HandleFunc("/ready", checker.ReadinessHandler)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info(ctx, "Starting health check server",
			"addr", addr,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Health check server failed", err)
		}
	}()

	return server
}

// runHeadless advances the simulation a fixed number of steps without a
// display, logging progress periodically.
func runHeadless(ctx context.Context, logger *logging.Logger, sim *engine.Simulation, dt float64, steps int) {
	logger.Info(ctx, "Running headless",
		"steps", steps,
		"dt", dt,
	)

	for i := 0; i < steps; i++ {
		if err := sim.Update(dt); err != nil {
			logger.Error(ctx, "Simulation step failed", err,
				"step", i,
			)
			return
		}
		if (i+1)%100 == 0 {
			state := sim.Snapshot()
			logger.Info(ctx, "Simulation progress",
				"tick", state.Tick,
				"bodies", len(state.Bodies),
			)
		}
	}

	logger.Info(ctx, "Headless run complete",
		"tick", sim.Tick(),
	)
}

// viewer renders the force field and bodies to a terminal and maps key
// and mouse input onto simulation operations.
type viewer struct {
	screen tcell.Screen
	sim    *engine.Simulation
	dt     float64
	paused bool
}

func runInteractive(sim *engine.Simulation, dt float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	screen.EnableMouse()

	v := &viewer{
		screen: screen,
		sim:    sim,
		dt:     dt,
	}
	v.run()
	return nil
}

func (v *viewer) run() {
	frame := time.Duration(float64(time.Second) * v.dt)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- v.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				if err := v.sim.Update(v.dt); err != nil {
					return
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case 'c':
				v.sim.ClearBodies()
			case 'g':
				v.adjustGravity(1.1)
			case 'h':
				v.adjustGravity(0.9)
			case 'b':
				v.spawnRandomBody()
			}
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			cx, cy := ev.Position()
			v.sim.AddBody(v.screenToWorld(cx, cy), spawnMass, spawnRadius)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

func (v *viewer) adjustGravity(factor float64) {
	g := v.sim.GravitationalConstant() * factor
	v.sim.SetGravitationalConstant(g)
}

func (v *viewer) spawnRandomBody() {
	worldWidth, worldHeight := v.sim.WorldDimensions()
	position := physics.Vector2D{
		X: rand.Float64() * worldWidth,
		Y: rand.Float64() * worldHeight,
	}
	v.sim.AddBody(position, spawnMass, spawnRadius)
}

func (v *viewer) screenToWorld(cx, cy int) physics.Vector2D {
	screenWidth, screenHeight := v.screen.Size()
	worldWidth, worldHeight := v.sim.WorldDimensions()
	return physics.Vector2D{
		X: float64(cx) / float64(screenWidth) * worldWidth,
		Y: float64(cy) / float64(screenHeight-1) * worldHeight,
	}
}

func (v *viewer) worldToScreen(wx, wy float64) (int, int) {
	screenWidth, screenHeight := v.screen.Size()
	worldWidth, worldHeight := v.sim.WorldDimensions()
	cx := int(wx / worldWidth * float64(screenWidth))
	cy := int(wy / worldHeight * float64(screenHeight-1))
	return cx, cy
}

func (v *viewer) draw() {
	v.screen.Clear()

	screenWidth, screenHeight := v.screen.Size()
	fieldHeight := screenHeight - 1
	if screenWidth <= 0 || fieldHeight <= 0 {
		v.screen.Show()
		return
	}

	worldWidth, worldHeight := v.sim.WorldDimensions()

	for cy := 0; cy < fieldHeight; cy++ {
		for cx := 0; cx < screenWidth; cx++ {
			wx := (float64(cx) + 0.5) / float64(screenWidth) * worldWidth
			wy := (float64(cy) + 0.5) / float64(fieldHeight) * worldHeight
			gx, gy := v.sim.WorldToGrid(physics.Vector2D{X: wx, Y: wy})
			magnitude := v.sim.ForceMagnitudeAt(gx, gy)
			v.screen.SetContent(cx, cy, forceGlyph(magnitude), nil, fieldStyle(magnitude))
		}
	}

	state := v.sim.Snapshot()
	bodyStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for _, body := range state.Bodies {
		cx, cy := v.worldToScreen(body.Position.X, body.Position.Y)
		if cx >= 0 && cx < screenWidth && cy >= 0 && cy < fieldHeight {
			v.screen.SetContent(cx, cy, 'O', nil, bodyStyle)
		}
	}

	status := fmt.Sprintf(" bodies: %d  G: %.1f  tick: %d ", len(state.Bodies), state.GravitationalConstant, state.Tick)
	if v.paused {
		status += " PAUSED "
	}
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= screenWidth {
			break
		}
		v.screen.SetContent(i, screenHeight-1, r, nil, statusStyle)
	}

	v.screen.Show()
}

// forceGlyph maps a force magnitude onto the glyph ramp.
func forceGlyph(magnitude float64) rune {
	if magnitude < 0 {
		magnitude = 0
	}
	if magnitude > maxDisplayForce {
		magnitude = maxDisplayForce
	}
	index := int(magnitude / maxDisplayForce * float64(len(forceRamp)-1))
	return forceRamp[index]
}

// fieldStyle shades stronger field cells brighter.
func fieldStyle(magnitude float64) tcell.Style {
	switch {
	case magnitude > maxDisplayForce*0.66:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case magnitude > maxDisplayForce*0.33:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	}
}
