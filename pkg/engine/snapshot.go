// pkg/engine/snapshot.go
package engine

import (
	"github.com/opd-ai/go-gravity/pkg/physics"
)

// SimulationState is a read-only snapshot of the simulation. Values are
// copied; the snapshot stays valid after subsequent Update calls.
type SimulationState struct {
	Tick                  uint64
	WorldWidth            float64
	WorldHeight           float64
	GridWidth             int
	GridHeight            int
	GravitationalConstant float64
	Bodies                []BodyState
}

// BodyState is a read-only copy of one body's state
type BodyState struct {
	ID       uint64
	Position physics.Vector2D
	Velocity physics.Vector2D
	Mass     float64
	Radius   float64
}

// Snapshot returns a copy of the current simulation state for rendering
// and UI collaborators. Callers never receive references into the live
// body collection.
func (s *Simulation) Snapshot() *SimulationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gw, gh := s.grid.Dimensions()
	state := &SimulationState{
		Tick:                  s.tick,
		WorldWidth:            s.Config.WorldWidth,
		WorldHeight:           s.Config.WorldHeight,
		GridWidth:             gw,
		GridHeight:            gh,
		GravitationalConstant: s.Config.Physics.GravitationalConstant,
		Bodies:                make([]BodyState, 0, len(s.bodies)),
	}

	for _, rec := range s.bodies {
		state.Bodies = append(state.Bodies, BodyState{
			ID:       rec.id,
			Position: rec.body.Position,
			Velocity: rec.body.Velocity,
			Mass:     rec.body.Mass,
			Radius:   rec.body.Radius,
		})
	}

	return state
}
