// pkg/grid/grid_test.go
package grid

import (
	"math"
	"testing"

	"github.com/opd-ai/go-gravity/pkg/physics"
)

func TestNewForceGrid_Dimensions(t *testing.T) {
	tests := []struct {
		name        string
		worldWidth  float64
		worldHeight float64
		resolution  int
		wantWidth   int
		wantHeight  int
	}{
		{
			name:        "default_world",
			worldWidth:  800,
			worldHeight: 600,
			resolution:  25,
			wantWidth:   200,
			wantHeight:  150,
		},
		{
			name:        "low_resolution_floors_at_minimum",
			worldWidth:  100,
			worldHeight: 100,
			resolution:  1,
			wantWidth:   MinGridDimension,
			wantHeight:  MinGridDimension,
		},
		{
			name:        "asymmetric_floor",
			worldWidth:  2000,
			worldHeight: 100,
			resolution:  5,
			wantWidth:   100,
			wantHeight:  MinGridDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fg := NewForceGrid(tt.worldWidth, tt.worldHeight, tt.resolution)
			width, height := fg.Dimensions()
			if width != tt.wantWidth || height != tt.wantHeight {
				t.Errorf("Dimensions() = (%d, %d), expected (%d, %d)",
					width, height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestNewForceGrid_Spacing(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)

	width, _ := fg.Dimensions()
	want := 800.0 / float64(width-1)
	if math.Abs(fg.Spacing()-want) > 1e-9 {
		t.Errorf("Spacing() = %v, expected %v", fg.Spacing(), want)
	}
}

func TestForceGrid_CoordinateRoundTrip(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)

	positions := []physics.Vector2D{
		{X: 0, Y: 0},
		{X: 400, Y: 300},
		{X: 799, Y: 599},
		{X: 123.4, Y: 456.7},
	}

	for _, pos := range positions {
		gx, gy := fg.WorldToGrid(pos)
		back := fg.GridToWorld(gx, gy)

		if math.Abs(back.X-pos.X) > fg.Spacing() {
			t.Errorf("round trip X: %v -> (%d,%d) -> %v, drift exceeds one cell",
				pos.X, gx, gy, back.X)
		}
		if math.Abs(back.Y-pos.Y) > fg.Spacing() {
			t.Errorf("round trip Y: %v -> (%d,%d) -> %v, drift exceeds one cell",
				pos.Y, gx, gy, back.Y)
		}
	}
}

func TestForceGrid_WorldToGrid_ClampsOutOfRange(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)
	width, height := fg.Dimensions()

	tests := []struct {
		name   string
		pos    physics.Vector2D
		wantGX int
		wantGY int
	}{
		{
			name:   "negative_coordinates",
			pos:    physics.Vector2D{X: -100, Y: -50},
			wantGX: 0,
			wantGY: 0,
		},
		{
			name:   "beyond_world_bounds",
			pos:    physics.Vector2D{X: 5000, Y: 5000},
			wantGX: width - 1,
			wantGY: height - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx, gy := fg.WorldToGrid(tt.pos)
			if gx != tt.wantGX || gy != tt.wantGY {
				t.Errorf("WorldToGrid(%v) = (%d, %d), expected (%d, %d)",
					tt.pos, gx, gy, tt.wantGX, tt.wantGY)
			}
		})
	}
}

func TestForceGrid_Resample_MatchesDirectSum(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)

	bodies := []*physics.Body{
		{Position: physics.Vector2D{X: 200, Y: 150}, Mass: 1000},
		{Position: physics.Vector2D{X: 600, Y: 450}, Mass: 500},
	}
	g := 100.0

	fg.Resample(bodies, g)

	width, height := fg.Dimensions()
	probes := [][2]int{{0, 0}, {width / 2, height / 2}, {width - 1, height - 1}, {17, 42}}

	for _, p := range probes {
		gx, gy := p[0], p[1]
		worldPos := fg.GridToWorld(gx, gy)

		want := physics.Vector2D{}
		for _, body := range bodies {
			want = want.Add(body.ForceToward(worldPos, g))
		}

		got := fg.ForceAt(gx, gy)
		if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
			t.Errorf("ForceAt(%d, %d) = %v, expected %v", gx, gy, got, want)
		}
	}
}

func TestForceGrid_Resample_EmptyBodySet(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)
	fg.Resample(nil, 100)

	width, height := fg.Dimensions()
	for _, p := range [][2]int{{0, 0}, {width - 1, height - 1}} {
		if force := fg.ForceAt(p[0], p[1]); force != (physics.Vector2D{}) {
			t.Errorf("ForceAt(%d, %d) = %v with no bodies, expected zero", p[0], p[1], force)
		}
	}
}

func TestForceGrid_Resample_PointsTowardBody(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)
	body := &physics.Body{Position: physics.Vector2D{X: 400, Y: 300}, Mass: 1000}
	fg.Resample([]*physics.Body{body}, 100)

	// A cell left of the body must point right, toward it.
	gx, gy := fg.WorldToGrid(physics.Vector2D{X: 100, Y: 300})
	force := fg.ForceAt(gx, gy)
	if force.X <= 0 {
		t.Errorf("force X at left probe = %v, expected positive", force.X)
	}
}

func TestForceGrid_ForceAt_OutOfRange(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)
	body := &physics.Body{Position: physics.Vector2D{X: 400, Y: 300}, Mass: 1000}
	fg.Resample([]*physics.Body{body}, 100)

	width, height := fg.Dimensions()
	outOfRange := [][2]int{{-1, 0}, {0, -1}, {width, 0}, {0, height}, {-5, -5}}

	for _, p := range outOfRange {
		if force := fg.ForceAt(p[0], p[1]); force != (physics.Vector2D{}) {
			t.Errorf("ForceAt(%d, %d) = %v, expected zero sentinel", p[0], p[1], force)
		}
		if magnitude := fg.ForceMagnitudeAt(p[0], p[1]); magnitude != 0 {
			t.Errorf("ForceMagnitudeAt(%d, %d) = %v, expected 0", p[0], p[1], magnitude)
		}
	}
}

func TestForceGrid_ForceMagnitudeAt(t *testing.T) {
	fg := NewForceGrid(800, 600, 25)
	body := &physics.Body{Position: physics.Vector2D{X: 400, Y: 300}, Mass: 1000}
	fg.Resample([]*physics.Body{body}, 100)

	gx, gy := fg.WorldToGrid(physics.Vector2D{X: 100, Y: 300})
	want := fg.ForceAt(gx, gy).Length()
	if got := fg.ForceMagnitudeAt(gx, gy); math.Abs(got-want) > 1e-9 {
		t.Errorf("ForceMagnitudeAt() = %v, expected %v", got, want)
	}
}
