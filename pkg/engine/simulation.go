// pkg/engine/simulation.go
package engine

import (
	"errors"
	"sync"

	"github.com/opd-ai/go-gravity/pkg/config"
	"github.com/opd-ai/go-gravity/pkg/event"
	"github.com/opd-ai/go-gravity/pkg/grid"
	"github.com/opd-ai/go-gravity/pkg/physics"
	"github.com/opd-ai/go-gravity/pkg/validation"
)

// Simulation misuse errors
var (
	// ErrNotInitialized is returned by Update when Initialize has not
	// been called. Stepping an unseeded simulation is a caller error,
	// not a silent no-op.
	ErrNotInitialized = errors.New("simulation not initialized")

	// ErrBodyNotFound is returned when a body ID does not exist.
	ErrBodyNotFound = errors.New("body not found")
)

// bodyRecord pairs a body with its stable ID. The slice preserves
// insertion order, which fixes the force summation order and keeps
// resampling deterministic.
type bodyRecord struct {
	id   uint64
	body *physics.Body
}

// Simulation owns the body collection and the force grid and advances
// the system one time step at a time. Each Update runs to completion
// before returning; the step itself is single-threaded. The embedded
// lock orders access from read-side collaborators (renderers, health
// checks) against the step, it does not make Update re-entrant.
type Simulation struct {
	Config   *config.SimulationConfig
	EventBus *event.Bus

	mu          sync.RWMutex
	bodies      []bodyRecord
	grid        *grid.ForceGrid
	gridStale   bool
	nextBodyID  uint64
	initialized bool
	tick        uint64
}

// NewSimulation creates a simulation from a configuration. World
// dimensions and grid resolution below their minimums are clamped up;
// bad visualization parameters degrade gracefully instead of failing.
func NewSimulation(cfg *config.SimulationConfig) *Simulation {
	cfg.WorldWidth = validation.ClampWorldDimension(cfg.WorldWidth)
	cfg.WorldHeight = validation.ClampWorldDimension(cfg.WorldHeight)
	cfg.GridResolution = validation.ClampGridResolution(cfg.GridResolution)

	return &Simulation{
		Config:     cfg,
		EventBus:   event.NewEventBus(),
		grid:       grid.NewForceGrid(cfg.WorldWidth, cfg.WorldHeight, cfg.GridResolution),
		nextBodyID: 1,
	}
}

// Initialize seeds the configured body set and performs the first grid
// resample. Bodies that fail validation abort initialization.
func (s *Simulation) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bc := range s.Config.Bodies {
		if _, err := s.addBodyLocked(
			physics.Vector2D{X: bc.X, Y: bc.Y},
			physics.Vector2D{X: bc.VX, Y: bc.VY},
			bc.Mass, bc.Radius,
		); err != nil {
			return err
		}
	}

	s.resampleLocked()
	s.initialized = true

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.SimulationInitialized,
		Source:    s,
	})
	return nil
}

// Update advances the simulation one time step: O(n²) pairwise force
// accumulation, velocity then position integration per body, boundary
// bounce, and an unconditional grid resample. Bodies move every step by
// construction, so there is no dirty-flag short-circuit here.
func (s *Simulation) Update(dt float64) error {
	if err := validation.ValidateTimeStep(dt); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	s.accumulateAndIntegrate(dt)
	s.applyBoundaryPolicy()
	s.resampleLocked()
	s.tick++
	return nil
}

// accumulateAndIntegrate sums pairwise forces for every body, then
// integrates velocity before position so velocity changes take effect
// on the same frame.
func (s *Simulation) accumulateAndIntegrate(dt float64) {
	g := s.Config.Physics.GravitationalConstant
	damping := s.Config.Physics.VelocityDamping

	forces := make([]physics.Vector2D, len(s.bodies))
	for i, rec := range s.bodies {
		for j, other := range s.bodies {
			if i == j {
				continue
			}
			forces[i] = forces[i].Add(rec.body.ForceFrom(other.body, g))
		}
	}

	for i, rec := range s.bodies {
		rec.body.IntegrateVelocity(forces[i], dt, damping)
		rec.body.IntegratePosition(dt)
	}
}

// applyBoundaryPolicy reflects the velocity component along any violated
// axis, scaled by the bounce damping factor, and clamps the position
// back to the boundary. A deliberately simple bouncing wall.
func (s *Simulation) applyBoundaryPolicy() {
	damping := s.Config.Physics.BounceDamping

	for _, rec := range s.bodies {
		body := rec.body

		if body.Position.X < 0 {
			body.Position.X = 0
			s.bounce(rec.id, "x", &body.Velocity.X, damping)
		} else if body.Position.X > s.Config.WorldWidth {
			body.Position.X = s.Config.WorldWidth
			s.bounce(rec.id, "x", &body.Velocity.X, damping)
		}

		if body.Position.Y < 0 {
			body.Position.Y = 0
			s.bounce(rec.id, "y", &body.Velocity.Y, damping)
		} else if body.Position.Y > s.Config.WorldHeight {
			body.Position.Y = s.Config.WorldHeight
			s.bounce(rec.id, "y", &body.Velocity.Y, damping)
		}
	}
}

// bounce reflects one velocity component with energy loss and publishes
// the reflection.
func (s *Simulation) bounce(bodyID uint64, axis string, component *float64, damping float64) {
	before := *component
	*component = -before * damping

	speedBefore := before
	if speedBefore < 0 {
		speedBefore = -speedBefore
	}
	speedAfter := speedBefore * damping

	s.EventBus.Publish(event.NewBounceEvent(s, bodyID, axis, speedBefore, speedAfter))
}

// resampleLocked recomputes the force grid from the current body set.
// Caller must hold the write lock.
func (s *Simulation) resampleLocked() {
	bodies := make([]*physics.Body, len(s.bodies))
	for i, rec := range s.bodies {
		bodies[i] = rec.body
	}
	s.grid.Resample(bodies, s.Config.Physics.GravitationalConstant)
	s.gridStale = false

	w, h := s.grid.Dimensions()
	s.EventBus.Publish(event.NewResampleEvent(s, w, h, len(bodies)))
}

// AddBody adds a stationary body and marks the grid stale. Returns the
// new body's ID.
func (s *Simulation) AddBody(position physics.Vector2D, mass, radius float64) (uint64, error) {
	return s.AddBodyWithVelocity(position, physics.Vector2D{}, mass, radius)
}

// AddBodyWithVelocity adds a body with an initial velocity and marks the
// grid stale.
func (s *Simulation) AddBodyWithVelocity(position, velocity physics.Vector2D, mass, radius float64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.addBodyLocked(position, velocity, mass, radius)
	if err != nil {
		return 0, err
	}
	s.gridStale = true
	return id, nil
}

func (s *Simulation) addBodyLocked(position, velocity physics.Vector2D, mass, radius float64) (uint64, error) {
	if err := validation.ValidateBodyCount(len(s.bodies)); err != nil {
		return 0, err
	}

	body, err := physics.NewBody(position, mass, radius)
	if err != nil {
		return 0, err
	}
	body.Velocity = velocity

	id := s.nextBodyID
	s.nextBodyID++
	s.bodies = append(s.bodies, bodyRecord{id: id, body: body})

	s.EventBus.Publish(event.NewBodyEvent(event.BodyAdded, s, id, mass))
	return id, nil
}

// RemoveBody removes a body by ID and marks the grid stale.
func (s *Simulation) RemoveBody(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.bodies {
		if rec.id == id {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			s.gridStale = true
			s.EventBus.Publish(event.NewBodyEvent(event.BodyRemoved, s, id, rec.body.Mass))
			return nil
		}
	}
	return ErrBodyNotFound
}

// ClearBodies removes every body and marks the grid stale.
func (s *Simulation) ClearBodies() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bodies = nil
	s.gridStale = true

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.BodiesCleared,
		Source:    s,
	})
}

// SetGravitationalConstant replaces G and marks the grid stale.
func (s *Simulation) SetGravitationalConstant(g float64) error {
	if err := validation.ValidateGravitationalConstant(g); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.Config.Physics.GravitationalConstant = g
	s.gridStale = true

	s.EventBus.Publish(&event.BaseEvent{
		EventType: event.ConstantChanged,
		Source:    s,
	})
	return nil
}

// GravitationalConstant returns the current G.
func (s *Simulation) GravitationalConstant() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Config.Physics.GravitationalConstant
}

// Initialized reports whether Initialize has completed.
func (s *Simulation) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Tick returns the number of completed update steps.
func (s *Simulation) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// BodyCount returns the current number of bodies.
func (s *Simulation) BodyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bodies)
}

// ForceAt returns the sampled grid force at a cell, resampling first if
// a mutation left the grid stale. Grid state observed by any reader is
// always consistent with the most recent body set.
func (s *Simulation) ForceAt(gx, gy int) physics.Vector2D {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gridStale {
		s.resampleLocked()
	}
	return s.grid.ForceAt(gx, gy)
}

// ForceMagnitudeAt returns the sampled force magnitude at a cell,
// resampling first if the grid is stale.
func (s *Simulation) ForceMagnitudeAt(gx, gy int) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gridStale {
		s.resampleLocked()
	}
	return s.grid.ForceMagnitudeAt(gx, gy)
}

// GridDimensions returns the grid size in cells.
func (s *Simulation) GridDimensions() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Dimensions()
}

// WorldDimensions returns the configured world size.
func (s *Simulation) WorldDimensions() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Config.WorldWidth, s.Config.WorldHeight
}

// GridToWorld maps cell indices to a world position.
func (s *Simulation) GridToWorld(gx, gy int) physics.Vector2D {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.GridToWorld(gx, gy)
}

// WorldToGrid maps a world position to clamped cell indices.
func (s *Simulation) WorldToGrid(pos physics.Vector2D) (gx, gy int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.WorldToGrid(pos)
}
