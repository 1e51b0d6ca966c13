// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/logging"
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// FieldReader is the read-only view of the force grid that renderers
// consume. *engine.Simulation satisfies it.
type FieldReader interface {
	GridDimensions() (width, height int)
	WorldDimensions() (width, height float64)
	ForceAt(gx, gy int) physics.Vector2D
	ForceMagnitudeAt(gx, gy int) float64
	GridToWorld(gx, gy int) physics.Vector2D
}

// Renderer turns simulation snapshots into a displayed frame. Renderers
// only read; they never mutate simulation state.
type Renderer interface {
	Clear()
	RenderField(field FieldReader)
	RenderBody(body engine.BodyState)
	Present()
}

// NullRenderer is a Renderer that only logs, for headless runs and tests.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements Renderer.
func (r *NullRenderer) Clear() {
	r.logger.Debug(context.Background(), "Clear called")
}

// RenderField implements Renderer.
func (r *NullRenderer) RenderField(field FieldReader) {
	if field == nil {
		r.logger.Debug(context.Background(), "RenderField called with nil field")
		return
	}
	w, h := field.GridDimensions()
	r.logger.Debug(context.Background(), "RenderField called",
		"grid_width", w,
		"grid_height", h,
	)
}

// RenderBody implements Renderer.
func (r *NullRenderer) RenderBody(body engine.BodyState) {
	r.logger.Debug(context.Background(), "RenderBody called",
		"body_id", body.ID,
		"mass", body.Mass,
	)
}

// Present implements Renderer.
func (r *NullRenderer) Present() {
	r.logger.Debug(context.Background(), "Present called")
}
