// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
	"github.com/opd-ai/go-gravity/pkg/render"
)

// maxFieldForce is the force magnitude mapped to the hottest tile color.
const maxFieldForce = 500.0

// fieldTileAxis caps the number of field tiles per axis; the sampled
// grid is denser than anything worth drawing one entity per cell.
const fieldTileAxis = 80

// fieldTile is one drawn cell of the force field.
type fieldTile struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
	gx, gy int
}

// bodyEntity is one drawn body.
type bodyEntity struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// FieldRenderer draws the force field as a lattice of colored tiles and
// bodies as circles, using the Engo render system.
type FieldRenderer struct {
	world        *ecs.World
	renderSystem *common.RenderSystem

	tiles  []*fieldTile
	bodies map[uint64]*bodyEntity

	tileW, tileH float32
}

// NewFieldRenderer creates a new Engo-based field renderer
func NewFieldRenderer(world *ecs.World) *FieldRenderer {
	return &FieldRenderer{
		world:  world,
		bodies: make(map[uint64]*bodyEntity),
	}
}

// Initialize builds the tile lattice for the simulation's grid and
// registers everything with the render system.
func (r *FieldRenderer) Initialize(field render.FieldReader) {
	for _, system := range r.world.Systems() {
		if rs, ok := system.(*common.RenderSystem); ok {
			r.renderSystem = rs
		}
	}
	if r.renderSystem == nil {
		r.renderSystem = &common.RenderSystem{}
		r.world.AddSystem(r.renderSystem)
	}

	gw, gh := field.GridDimensions()
	tilesX := min(gw, fieldTileAxis)
	tilesY := min(gh, fieldTileAxis)

	worldW, worldH := field.WorldDimensions()
	r.tileW = float32(worldW) / float32(tilesX)
	r.tileH = float32(worldH) / float32(tilesY)

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			tile := &fieldTile{
				basic: ecs.NewBasic(),
				gx:    tx * (gw - 1) / (tilesX - 1),
				gy:    ty * (gh - 1) / (tilesY - 1),
			}
			tile.render = common.RenderComponent{
				Drawable: common.Rectangle{},
				Color:    color.RGBA{0, 0, 64, 255},
			}
			tile.space = common.SpaceComponent{
				Position: engo.Point{X: float32(tx) * r.tileW, Y: float32(ty) * r.tileH},
				Width:    r.tileW,
				Height:   r.tileH,
			}
			r.renderSystem.Add(&tile.basic, &tile.render, &tile.space)
			r.tiles = append(r.tiles, tile)
		}
	}
}

// Clear removes body entities whose bodies no longer exist. Field tiles
// persist; only their colors change.
func (r *FieldRenderer) Clear() {
	for id := range r.bodies {
		r.bodies[id].render.Hidden = true
	}
}

// RenderField recolors every tile from the current grid samples
func (r *FieldRenderer) RenderField(field render.FieldReader) {
	for _, tile := range r.tiles {
		tile.render.Color = fieldColor(field.ForceMagnitudeAt(tile.gx, tile.gy))
	}
}

// RenderBody draws one body as a filled circle at its world position
func (r *FieldRenderer) RenderBody(body engine.BodyState) {
	entity, exists := r.bodies[body.ID]
	if !exists {
		entity = &bodyEntity{basic: ecs.NewBasic()}
		entity.render = common.RenderComponent{
			Drawable: common.Circle{},
			Color:    color.RGBA{255, 215, 0, 255},
		}
		r.renderSystem.Add(&entity.basic, &entity.render, &entity.space)
		r.bodies[body.ID] = entity
	}

	size := float32(body.Radius * 2)
	entity.space.Position = engo.Point{
		X: float32(body.Position.X) - size/2,
		Y: float32(body.Position.Y) - size/2,
	}
	entity.space.Width = size
	entity.space.Height = size
	entity.render.Hidden = false
}

// Present finishes the frame. Engo presents through its render system;
// entities still hidden here belonged to removed bodies and are dropped.
func (r *FieldRenderer) Present() {
	for id, entity := range r.bodies {
		if entity.render.Hidden {
			r.renderSystem.Remove(entity.basic)
			delete(r.bodies, id)
		}
	}
}

// fieldColor maps force magnitude onto a blue-to-red heat ramp.
func fieldColor(magnitude float64) color.RGBA {
	intensity := magnitude / maxFieldForce
	if intensity > 1 {
		intensity = 1
	}
	return color.RGBA{
		R: uint8(76 + 179*intensity),
		G: uint8(178 - 128*intensity),
		B: uint8(255 - 204*intensity),
		A: 255,
	}
}
