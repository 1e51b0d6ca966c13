// Package grid implements the sampled gravitational force field: a 2D
// lattice over world space where each cell holds the summed force vector
// contributed by every body. The grid is derived state, fully recomputed
// from the current body set on each resample.
package grid

import (
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// MinGridDimension is the floor for grid width and height in cells.
const MinGridDimension = 10

// ForceGrid is a lattice of force vectors over a rectangular world.
// Cells are stored row-major, indexed [y][x].
type ForceGrid struct {
	worldWidth  float64
	worldHeight float64
	gridWidth   int
	gridHeight  int
	spacing     float64
	forces      [][]physics.Vector2D
}

// NewForceGrid creates a grid covering a world of the given size. The
// resolution parameter scales cell density: each axis gets
// worldDimension*resolution/100 cells, floored at MinGridDimension.
func NewForceGrid(worldWidth, worldHeight float64, resolution int) *ForceGrid {
	gridWidth := int(worldWidth * float64(resolution) / 100.0)
	gridHeight := int(worldHeight * float64(resolution) / 100.0)

	if gridWidth < MinGridDimension {
		gridWidth = MinGridDimension
	}
	if gridHeight < MinGridDimension {
		gridHeight = MinGridDimension
	}

	forces := make([][]physics.Vector2D, gridHeight)
	for y := range forces {
		forces[y] = make([]physics.Vector2D, gridWidth)
	}

	return &ForceGrid{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		gridWidth:   gridWidth,
		gridHeight:  gridHeight,
		spacing:     worldWidth / float64(gridWidth-1),
		forces:      forces,
	}
}

// Resample recomputes every cell from the current body set. Brute force
// over cells×bodies; the grid always matches the bodies it was sampled
// from, and grid sizes stay small enough that incremental updates are
// not worth the bookkeeping.
func (fg *ForceGrid) Resample(bodies []*physics.Body, g float64) {
	for y := 0; y < fg.gridHeight; y++ {
		for x := 0; x < fg.gridWidth; x++ {
			worldPos := fg.GridToWorld(x, y)

			total := physics.Vector2D{}
			for _, body := range bodies {
				total = total.Add(body.ForceToward(worldPos, g))
			}

			fg.forces[y][x] = total
		}
	}
}

// Dimensions returns the grid size in cells.
func (fg *ForceGrid) Dimensions() (width, height int) {
	return fg.gridWidth, fg.gridHeight
}

// WorldDimensions returns the covered world size.
func (fg *ForceGrid) WorldDimensions() (width, height float64) {
	return fg.worldWidth, fg.worldHeight
}

// Spacing returns the world-space distance between adjacent columns.
func (fg *ForceGrid) Spacing() float64 {
	return fg.spacing
}

// WorldToGrid maps a world position to cell indices, clamped into the
// valid range.
func (fg *ForceGrid) WorldToGrid(pos physics.Vector2D) (gx, gy int) {
	gx = int((pos.X / fg.worldWidth) * float64(fg.gridWidth-1))
	gy = int((pos.Y / fg.worldHeight) * float64(fg.gridHeight-1))

	gx = clampIndex(gx, fg.gridWidth-1)
	gy = clampIndex(gy, fg.gridHeight-1)
	return gx, gy
}

// GridToWorld maps cell indices to the cell's world position.
func (fg *ForceGrid) GridToWorld(gx, gy int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(gx) / float64(fg.gridWidth-1)) * fg.worldWidth,
		Y: (float64(gy) / float64(fg.gridHeight-1)) * fg.worldHeight,
	}
}

// ForceAt returns the sampled force vector at a cell. Out-of-range
// indices return the zero vector; visualization loops probe
// boundary-adjacent indices freely.
func (fg *ForceGrid) ForceAt(gx, gy int) physics.Vector2D {
	if !fg.contains(gx, gy) {
		return physics.Vector2D{}
	}
	return fg.forces[gy][gx]
}

// ForceMagnitudeAt returns the force magnitude at a cell, zero if the
// indices are out of range.
func (fg *ForceGrid) ForceMagnitudeAt(gx, gy int) float64 {
	if !fg.contains(gx, gy) {
		return 0
	}
	return fg.forces[gy][gx].Length()
}

func (fg *ForceGrid) contains(gx, gy int) bool {
	return gx >= 0 && gx < fg.gridWidth && gy >= 0 && gy < fg.gridHeight
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
