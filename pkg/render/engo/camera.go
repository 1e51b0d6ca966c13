// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// CameraMode selects one of the two camera behaviors. The set is closed;
// mode switches exchange state through Pose rather than inspecting the
// other variant.
type CameraMode int

const (
	// FreeFlight pans and zooms freely under keyboard control.
	FreeFlight CameraMode = iota
	// GameStyle tracks the heaviest body at a fixed height.
	GameStyle
)

// Pose is the shared intermediate representation both camera modes
// convert to and from on a mode switch.
type Pose struct {
	Position physics.Vector2D
	Yaw      float64
	Pitch    float64
	Height   float64
}

// CameraSystem manages the view transform over the simulated world.
type CameraSystem struct {
	mode CameraMode
	pose Pose

	panSpeed   float64
	minHeight  float64
	maxHeight  float64
	worldW     float64
	worldH     float64
	target     physics.Vector2D
	haveTarget bool
}

// NewCameraSystem creates a camera centered at the origin in free-flight
// mode.
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		mode:      FreeFlight,
		pose:      Pose{Height: 1.0},
		panSpeed:  300.0,
		minHeight: 0.25,
		maxHeight: 4.0,
	}
}

// Add satisfies the ecs.System interface
func (cs *CameraSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update moves the camera according to the active mode
func (cs *CameraSystem) Update(dt float32) {
	switch cs.mode {
	case FreeFlight:
		cs.handlePanInput(float64(dt))
	case GameStyle:
		if cs.haveTarget {
			cs.pose.Position = cs.target
		}
	}

	cs.handleZoomInput()
	cs.applyCameraTransform()
}

// handlePanInput applies WASD-style panning in free-flight mode.
func (cs *CameraSystem) handlePanInput(dt float64) {
	step := cs.panSpeed * dt * cs.pose.Height

	if engo.Input.Button("panUp").Down() {
		cs.pose.Position.Y -= step
	}
	if engo.Input.Button("panDown").Down() {
		cs.pose.Position.Y += step
	}
	if engo.Input.Button("panLeft").Down() {
		cs.pose.Position.X -= step
	}
	if engo.Input.Button("panRight").Down() {
		cs.pose.Position.X += step
	}
}

// handleZoomInput adjusts the camera height from the scroll wheel.
func (cs *CameraSystem) handleZoomInput() {
	scrollY := engo.Input.Mouse.ScrollY
	if scrollY != 0 {
		cs.SetHeight(cs.pose.Height * (1.0 - float64(scrollY)*0.1))
	}
	if engo.Input.Button("resetZoom").JustPressed() {
		cs.SetHeight(1.0)
	}
}

// applyCameraTransform dispatches the current pose to Engo's camera.
func (cs *CameraSystem) applyCameraTransform() {
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.XAxis,
		Value:       float32(cs.pose.Position.X),
		Incremental: false,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.YAxis,
		Value:       float32(cs.pose.Position.Y),
		Incremental: false,
	})
	engo.Mailbox.Dispatch(common.CameraMessage{
		Axis:        common.ZAxis,
		Value:       float32(cs.pose.Height),
		Incremental: false,
	})
}

// SetMode switches camera behavior. Both variants read and write the
// shared pose, so the view carries over without any type inspection.
func (cs *CameraSystem) SetMode(mode CameraMode) {
	if mode == cs.mode {
		return
	}
	pose := cs.CurrentPose()
	cs.mode = mode
	cs.RestorePose(pose)
}

// Mode returns the active camera mode.
func (cs *CameraSystem) Mode() CameraMode {
	return cs.mode
}

// CurrentPose returns the camera's shared-representation state.
func (cs *CameraSystem) CurrentPose() Pose {
	return cs.pose
}

// RestorePose loads a previously captured pose.
func (cs *CameraSystem) RestorePose(pose Pose) {
	cs.pose = pose
	cs.pose.Height = cs.clampHeight(cs.pose.Height)
}

// SetWorldSize records the world bounds used for target clamping.
func (cs *CameraSystem) SetWorldSize(w, h float64) {
	cs.worldW = w
	cs.worldH = h
}

// FollowHeaviest aims the game-style camera at the most massive body.
func (cs *CameraSystem) FollowHeaviest(state *engine.SimulationState) {
	cs.haveTarget = false
	var best float64
	for _, body := range state.Bodies {
		if body.Mass > best {
			best = body.Mass
			cs.target = body.Position
			cs.haveTarget = true
		}
	}
}

// SetHeight sets the camera height (zoom), clamped to limits.
func (cs *CameraSystem) SetHeight(height float64) {
	cs.pose.Height = cs.clampHeight(height)
}

// Height returns the current camera height.
func (cs *CameraSystem) Height() float64 {
	return cs.pose.Height
}

func (cs *CameraSystem) clampHeight(height float64) float64 {
	if height < cs.minHeight {
		return cs.minHeight
	}
	if height > cs.maxHeight {
		return cs.maxHeight
	}
	return height
}

// ScreenToWorld converts window coordinates to world coordinates under
// the current pose.
func (cs *CameraSystem) ScreenToWorld(screenX, screenY float64) physics.Vector2D {
	relX := (screenX - float64(engo.GameWidth())/2) * cs.pose.Height
	relY := (screenY - float64(engo.GameHeight())/2) * cs.pose.Height
	return physics.Vector2D{
		X: relX + cs.pose.Position.X,
		Y: relY + cs.pose.Position.Y,
	}
}

// SetupControls registers the key bindings used by the camera and input
// systems.
func SetupControls() {
	engo.Input.RegisterButton("panUp", engo.KeyW)
	engo.Input.RegisterButton("panDown", engo.KeyS)
	engo.Input.RegisterButton("panLeft", engo.KeyA)
	engo.Input.RegisterButton("panRight", engo.KeyD)
	engo.Input.RegisterButton("resetZoom", engo.KeyR)
	engo.Input.RegisterButton("pause", engo.KeySpace)
	engo.Input.RegisterButton("clearBodies", engo.KeyC)
	engo.Input.RegisterButton("cameraMode", engo.KeyM)
	engo.Input.RegisterButton("gravityUp", engo.KeyG)
	engo.Input.RegisterButton("gravityDown", engo.KeyH)
}
