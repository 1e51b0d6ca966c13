// pkg/render/engo/scene.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/event"
)

// SimulationScene is the main windowed scene. It owns a local
// simulation, steps it once per frame, and feeds read-only snapshots to
// the rendering systems.
type SimulationScene struct {
	world *ecs.World

	sim      *engine.Simulation
	eventBus *event.Bus

	renderer *FieldRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem
}

// NewSimulationScene creates a scene around an initialized simulation.
func NewSimulationScene(sim *engine.Simulation) *SimulationScene {
	return &SimulationScene{
		sim:      sim,
		eventBus: sim.EventBus,
		world:    &ecs.World{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "SimulationScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimulationScene) Preload() {
	// HUD text degrades to blank if the font asset is missing.
	_ = engo.Files.Load("fonts/Roboto-Regular.ttf")
}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	scene.world = &ecs.World{}

	scene.world.AddSystem(&common.RenderSystem{})
	scene.world.AddSystem(&common.MouseSystem{})

	scene.renderer = NewFieldRenderer(scene.world)
	scene.renderer.Initialize(scene.sim)

	scene.camera = NewCameraSystem()
	scene.world.AddSystem(scene.camera)

	scene.input = NewInputSystem(scene.sim, scene.camera)
	scene.world.AddSystem(scene.input)

	scene.hud = NewHUDSystem(scene.world)
	scene.world.AddSystem(scene.hud)

	scene.world.AddSystem(&stepSystem{scene: scene})

	scene.subscribeToEvents()

	SetupControls()
}

// stepSystem advances the simulation and pushes state into the
// rendering systems each frame.
type stepSystem struct {
	scene *SimulationScene
}

// Remove satisfies the ecs.System interface
func (ss *stepSystem) Remove(basic ecs.BasicEntity) {}

// Update advances the simulation one frame and redraws
func (ss *stepSystem) Update(dt float32) {
	scene := ss.scene

	if !scene.input.Paused() {
		// Step errors only occur for misuse (bad dt, uninitialized);
		// the scene is constructed from an initialized simulation.
		_ = scene.sim.Update(float64(dt))
	}

	state := scene.sim.Snapshot()

	scene.renderer.Clear()
	scene.renderer.RenderField(scene.sim)
	for _, body := range state.Bodies {
		scene.renderer.RenderBody(body)
	}
	scene.renderer.Present()

	scene.camera.SetWorldSize(state.WorldWidth, state.WorldHeight)
	scene.camera.FollowHeaviest(state)

	scene.hud.UpdateState(state, scene.input.Paused())
}

// subscribeToEvents sets up event handlers for HUD notifications.
func (scene *SimulationScene) subscribeToEvents() {
	scene.eventBus.Subscribe(event.BodyAdded, func(e event.Event) {
		scene.hud.Notify("body added")
	})
	scene.eventBus.Subscribe(event.BodiesCleared, func(e event.Event) {
		scene.hud.Notify("bodies cleared")
	})
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {}
