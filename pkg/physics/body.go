// pkg/physics/body.go
package physics

import (
	"math"

	"github.com/opd-ai/go-gravity/pkg/validation"
)

// Force law tuning. Body-body pairs use a tighter minimum separation to
// keep orbits numerically stable; probe points are sampled densely and
// close to bodies, so they get a looser distance clamp and a lower force
// ceiling to keep the field visualization bounded.
const (
	// MinBodyDistance is the smallest separation used in body-body
	// force calculations. Closer pairs are treated as this far apart.
	MinBodyDistance = 10.0

	// MaxBodyForce caps the magnitude of a body-body force.
	MaxBodyForce = 5000.0

	// MinPointDistance is the smallest separation used when sampling
	// the force at an arbitrary point.
	MinPointDistance = 1.0

	// MaxPointForce caps the magnitude of a sampled point force.
	MaxPointForce = 1000.0
)

// Body is a point mass with a velocity and a display radius. Mass is
// always positive; NewBody rejects anything else so integration never
// divides by zero.
type Body struct {
	Position Vector2D
	Velocity Vector2D
	Mass     float64
	Radius   float64
}

// NewBody creates a body after validating its parameters. Mass must be
// positive, radius non-negative, and position finite.
func NewBody(position Vector2D, mass, radius float64) (*Body, error) {
	if err := validation.ValidateMass(mass); err != nil {
		return nil, err
	}
	if err := validation.ValidateRadius(radius); err != nil {
		return nil, err
	}
	if err := validation.ValidatePosition(position.X, position.Y); err != nil {
		return nil, err
	}
	return &Body{
		Position: position,
		Mass:     mass,
		Radius:   radius,
	}, nil
}

// ForceFrom returns the Newtonian gravitational force that other exerts
// on this body, directed from this body toward other. The separation is
// clamped to MinBodyDistance before squaring and the resulting magnitude
// is clamped to MaxBodyForce, so coincident bodies produce a finite,
// bounded force instead of a singularity.
func (b *Body) ForceFrom(other *Body, g float64) Vector2D {
	direction := other.Position.Sub(b.Position)

	distance := direction.Length()
	if distance < MinBodyDistance {
		distance = MinBodyDistance
	}

	magnitude := (g * b.Mass * other.Mass) / (distance * distance)
	magnitude = math.Min(magnitude, MaxBodyForce)

	return direction.Normalize().Scale(magnitude)
}

// ForceToward returns the gravitational force this body exerts on a
// unit-mass probe at point, directed from the point toward the body.
// Used for grid sampling, with its own distance and force clamps.
func (b *Body) ForceToward(point Vector2D, g float64) Vector2D {
	direction := b.Position.Sub(point)

	distanceSquared := direction.LengthSquared()
	if distanceSquared < MinPointDistance*MinPointDistance {
		distanceSquared = MinPointDistance * MinPointDistance
	}

	magnitude := (g * b.Mass) / distanceSquared
	magnitude = math.Min(magnitude, MaxPointForce)

	return direction.Normalize().Scale(magnitude)
}

// IntegrateVelocity advances the velocity by the accumulated force over
// dt, then applies the multiplicative damping factor. Damping suppresses
// long-run numerical drift without visibly altering orbital energy.
func (b *Body) IntegrateVelocity(force Vector2D, dt, damping float64) {
	acceleration := force.Scale(1.0 / b.Mass)
	b.Velocity = b.Velocity.Add(acceleration.Scale(dt)).Scale(damping)
}

// IntegratePosition advances the position by the current velocity over
// dt. Must be called after IntegrateVelocity within the same step so
// velocity changes take effect on the same frame.
func (b *Body) IntegratePosition(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}
