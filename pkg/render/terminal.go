// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opd-ai/go-gravity/pkg/engine"
)

// MaxDisplayForce is the force magnitude mapped to the strongest glyph.
// Anything above it saturates; field samples near massive bodies would
// otherwise wash out the ramp.
const MaxDisplayForce = 500.0

// forceRamp maps normalized force magnitude to a glyph, weakest first.
var forceRamp = []rune(" .:-=+*#%@")

// TerminalRenderer provides a simple ASCII rendering of the force field
// and bodies for terminals. Cells are shaded by sampled force magnitude;
// bodies overdraw the field.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]rune
	out    io.Writer

	worldWidth  float64
	worldHeight float64
}

// NewTerminalRenderer creates a terminal renderer with the given screen
// dimensions, writing frames to stdout.
func NewTerminalRenderer(width, height int) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		out:    os.Stdout,
	}
}

// SetOutput redirects frame output, used by tests.
func (r *TerminalRenderer) SetOutput(w io.Writer) {
	r.out = w
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// RenderField implements Renderer. Every screen cell samples the grid
// cell covering its world position and draws a glyph scaled by force
// magnitude.
func (r *TerminalRenderer) RenderField(field FieldReader) {
	r.worldWidth, r.worldHeight = field.WorldDimensions()
	gw, gh := field.GridDimensions()

	// Single-cell axes have no span to interpolate across.
	spanX := r.width - 1
	if spanX < 1 {
		spanX = 1
	}
	spanY := r.height - 1
	if spanY < 1 {
		spanY = 1
	}

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			gx := x * (gw - 1) / spanX
			gy := y * (gh - 1) / spanY
			r.buffer[y][x] = forceGlyph(field.ForceMagnitudeAt(gx, gy))
		}
	}
}

// RenderBody implements Renderer.
func (r *TerminalRenderer) RenderBody(body engine.BodyState) {
	x, y := r.worldToScreen(body.Position.X, body.Position.Y)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buffer[y][x] = 'O'
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	var sb strings.Builder

	sb.WriteString("+" + strings.Repeat("-", r.width) + "+\n")
	for y := range r.buffer {
		sb.WriteString("|")
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", r.width) + "+\n")

	fmt.Fprint(r.out, sb.String())
}

// worldToScreen maps a world position onto the character buffer.
func (r *TerminalRenderer) worldToScreen(wx, wy float64) (int, int) {
	if r.worldWidth == 0 || r.worldHeight == 0 {
		return -1, -1
	}
	x := int(wx / r.worldWidth * float64(r.width-1))
	y := int(wy / r.worldHeight * float64(r.height-1))
	return x, y
}

// forceGlyph picks the ramp glyph for a force magnitude.
func forceGlyph(magnitude float64) rune {
	normalized := magnitude / MaxDisplayForce
	if normalized > 1 {
		normalized = 1
	}
	idx := int(normalized * float64(len(forceRamp)-1))
	return forceRamp[idx]
}
