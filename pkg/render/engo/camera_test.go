// pkg/render/engo/camera_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

func TestNewCameraSystem(t *testing.T) {
	camera := NewCameraSystem()

	if camera.Mode() != FreeFlight {
		t.Errorf("Mode() = %v, expected FreeFlight", camera.Mode())
	}
	if camera.Height() != 1.0 {
		t.Errorf("Height() = %v, expected 1.0", camera.Height())
	}
}

func TestCameraSystem_SetHeight_Clamps(t *testing.T) {
	camera := NewCameraSystem()

	tests := []struct {
		name     string
		height   float64
		expected float64
	}{
		{name: "within_range", height: 2.0, expected: 2.0},
		{name: "below_minimum", height: 0.01, expected: 0.25},
		{name: "above_maximum", height: 100, expected: 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera.SetHeight(tt.height)
			if got := camera.Height(); got != tt.expected {
				t.Errorf("Height() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCameraSystem_ModeSwitchPreservesPose(t *testing.T) {
	camera := NewCameraSystem()
	camera.RestorePose(Pose{
		Position: physics.Vector2D{X: 123, Y: 456},
		Height:   2.5,
	})

	camera.SetMode(GameStyle)
	if camera.Mode() != GameStyle {
		t.Fatalf("Mode() = %v, expected GameStyle", camera.Mode())
	}

	pose := camera.CurrentPose()
	if pose.Position.X != 123 || pose.Position.Y != 456 {
		t.Errorf("pose position = %v, expected (123, 456)", pose.Position)
	}
	if pose.Height != 2.5 {
		t.Errorf("pose height = %v, expected 2.5", pose.Height)
	}

	// Switching back is also pose-preserving.
	camera.SetMode(FreeFlight)
	if camera.CurrentPose() != pose {
		t.Errorf("pose after round trip = %+v, expected %+v", camera.CurrentPose(), pose)
	}
}

func TestCameraSystem_SetModeSameModeIsNoOp(t *testing.T) {
	camera := NewCameraSystem()
	camera.RestorePose(Pose{Position: physics.Vector2D{X: 5, Y: 5}, Height: 1.5})

	camera.SetMode(FreeFlight)
	if camera.Mode() != FreeFlight {
		t.Errorf("Mode() = %v, expected FreeFlight", camera.Mode())
	}
}

func TestCameraSystem_RestorePoseClampsHeight(t *testing.T) {
	camera := NewCameraSystem()
	camera.RestorePose(Pose{Height: 999})

	if camera.Height() != 4.0 {
		t.Errorf("Height() = %v, expected clamped 4.0", camera.Height())
	}
}

func TestCameraSystem_FollowHeaviest(t *testing.T) {
	camera := NewCameraSystem()

	state := &engine.SimulationState{
		Bodies: []engine.BodyState{
			{ID: 1, Mass: 100, Position: physics.Vector2D{X: 10, Y: 10}},
			{ID: 2, Mass: 5000, Position: physics.Vector2D{X: 400, Y: 300}},
			{ID: 3, Mass: 50, Position: physics.Vector2D{X: 700, Y: 500}},
		},
	}

	camera.FollowHeaviest(state)

	if !camera.haveTarget {
		t.Fatal("expected a follow target")
	}
	if camera.target != (physics.Vector2D{X: 400, Y: 300}) {
		t.Errorf("target = %v, expected heaviest body position", camera.target)
	}
}

func TestCameraSystem_FollowHeaviest_NoBodies(t *testing.T) {
	camera := NewCameraSystem()
	camera.FollowHeaviest(&engine.SimulationState{})

	if camera.haveTarget {
		t.Error("expected no follow target with an empty body set")
	}
}

func TestFieldColor(t *testing.T) {
	cold := fieldColor(0)
	hot := fieldColor(maxFieldForce)
	saturated := fieldColor(maxFieldForce * 10)

	if cold.B <= hot.B {
		t.Errorf("cold blue %d should exceed hot blue %d", cold.B, hot.B)
	}
	if hot.R <= cold.R {
		t.Errorf("hot red %d should exceed cold red %d", hot.R, cold.R)
	}
	if hot != saturated {
		t.Errorf("saturated color %v differs from max color %v", saturated, hot)
	}
}
