// pkg/render/engo/hud.go
package engo

import (
	"fmt"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gravity/pkg/engine"
)

// notificationTTL is how long a HUD notification stays visible.
const notificationTTL = 3 * time.Second

// HUDSystem displays simulation status: body count, gravitational
// constant, tick, paused flag, and short-lived notifications.
type HUDSystem struct {
	world *ecs.World

	statusEntity ecs.BasicEntity
	statusRender common.RenderComponent
	statusSpace  common.SpaceComponent
	added        bool

	font *common.Font

	statusText   string
	notification string
	notifiedAt   time.Time

	hudColor color.Color
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem(world *ecs.World) *HUDSystem {
	return &HUDSystem{
		world:    world,
		hudColor: color.RGBA{255, 255, 255, 255},
		font: &common.Font{
			URL:  "fonts/Roboto-Regular.ttf",
			FG:   color.RGBA{255, 255, 255, 255},
			Size: 14,
		},
	}
}

// Add satisfies the ecs.System interface
func (hud *HUDSystem) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update refreshes the HUD text entity
func (hud *HUDSystem) Update(dt float32) {
	text := hud.statusText
	if hud.notification != "" {
		if time.Since(hud.notifiedAt) > notificationTTL {
			hud.notification = ""
		} else {
			text += "  [" + hud.notification + "]"
		}
	}

	if hud.font.TTF == nil {
		if err := hud.font.CreatePreloaded(); err != nil {
			// Font asset missing; the HUD stays blank rather than
			// failing the scene.
			return
		}
	}

	hud.statusRender.Drawable = common.Text{
		Font: hud.font,
		Text: text,
	}

	if !hud.added {
		hud.statusSpace = common.SpaceComponent{
			Position: engo.Point{X: 10, Y: 10},
			Width:    float32(engo.GameWidth()) - 20,
			Height:   20,
		}
		hud.statusRender.Color = hud.hudColor
		hud.statusRender.SetShader(common.HUDShader)
		hud.statusEntity = ecs.NewBasic()
		for _, system := range hud.world.Systems() {
			if rs, ok := system.(*common.RenderSystem); ok {
				rs.Add(&hud.statusEntity, &hud.statusRender, &hud.statusSpace)
			}
		}
		hud.added = true
	}
}

// UpdateState refreshes the HUD from a simulation snapshot.
func (hud *HUDSystem) UpdateState(state *engine.SimulationState, paused bool) {
	status := fmt.Sprintf(
		"bodies: %d  G: %.1f  tick: %d",
		len(state.Bodies),
		state.GravitationalConstant,
		state.Tick,
	)
	if paused {
		status += "  PAUSED"
	}
	hud.statusText = status
}

// Notify shows a short-lived message on the HUD.
func (hud *HUDSystem) Notify(message string) {
	hud.notification = message
	hud.notifiedAt = time.Now()
}
