// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
)

// Mass and radius used for bodies spawned by mouse click.
const (
	spawnMass   = 250.0
	spawnRadius = 8.0
)

// InputSystem handles keyboard and mouse input: pause, clearing bodies,
// adjusting the gravitational constant, camera mode switching, and
// spawning bodies at the cursor.
type InputSystem struct {
	sim    *engine.Simulation
	camera *CameraSystem

	paused bool
}

// NewInputSystem creates a new input system driving the given simulation.
func NewInputSystem(sim *engine.Simulation, camera *CameraSystem) *InputSystem {
	return &InputSystem{
		sim:    sim,
		camera: camera,
	}
}

// Add satisfies the ecs.System interface
func (is *InputSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update processes input once per frame
func (is *InputSystem) Update(dt float32) {
	if engo.Input.Button("pause").JustPressed() {
		is.paused = !is.paused
	}

	if engo.Input.Button("clearBodies").JustPressed() {
		is.sim.ClearBodies()
	}

	if engo.Input.Button("cameraMode").JustPressed() {
		is.toggleCameraMode()
	}

	is.handleGravityInput()
	is.handleMouseInput()
}

// toggleCameraMode cycles through the closed set of camera modes.
func (is *InputSystem) toggleCameraMode() {
	if is.camera.Mode() == FreeFlight {
		is.camera.SetMode(GameStyle)
	} else {
		is.camera.SetMode(FreeFlight)
	}
}

// handleGravityInput nudges the gravitational constant up or down.
func (is *InputSystem) handleGravityInput() {
	g := is.sim.GravitationalConstant()

	if engo.Input.Button("gravityUp").JustPressed() {
		// Validation rejects non-positive G; scaling keeps it positive.
		_ = is.sim.SetGravitationalConstant(g * 1.1)
	}
	if engo.Input.Button("gravityDown").JustPressed() {
		_ = is.sim.SetGravitationalConstant(g * 0.9)
	}
}

// handleMouseInput spawns a body at the cursor on left click.
func (is *InputSystem) handleMouseInput() {
	if engo.Input.Mouse.Action != engo.Press || engo.Input.Mouse.Button != engo.MouseButtonLeft {
		return
	}

	worldPos := is.camera.ScreenToWorld(
		float64(engo.Input.Mouse.X),
		float64(engo.Input.Mouse.Y),
	)

	// Clicks outside the world are rejected by the boundary clamp on
	// the next step; validation only refuses non-finite positions.
	_, _ = is.sim.AddBody(worldPos, spawnMass, spawnRadius)
}

// Paused reports whether the user paused the simulation.
func (is *InputSystem) Paused() bool {
	return is.paused
}
