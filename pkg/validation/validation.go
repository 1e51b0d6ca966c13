// Package validation provides construction-time validation for simulation
// parameters. Physics invariants (positive mass, finite coordinates) are
// enforced here so the integrator never has to guard against them.
package validation

import (
	"errors"
	"fmt"
	"math"
)

// Validation limits for simulation parameters
const (
	// MinWorldDimension is the smallest accepted world width or height.
	// Smaller values are clamped up rather than rejected.
	MinWorldDimension = 100.0

	// MinGridResolution is the smallest accepted grid resolution
	// parameter. Smaller values are clamped up rather than rejected.
	MinGridResolution = 1

	// MaxBodies bounds the body collection. The step loop is O(n²), so
	// this is a sanity limit, not a tuning knob.
	MaxBodies = 1024
)

// Sentinel errors for contract violations
var (
	ErrNonPositiveMass  = errors.New("body mass must be positive")
	ErrNegativeRadius   = errors.New("body radius must be non-negative")
	ErrNonFiniteValue   = errors.New("value must be finite")
	ErrNonPositiveG     = errors.New("gravitational constant must be positive")
	ErrNonPositiveDelta = errors.New("time step must be positive")
	ErrTooManyBodies    = errors.New("body limit exceeded")
)

// ValidateMass checks that a body mass is positive and finite.
func ValidateMass(mass float64) error {
	if math.IsNaN(mass) || math.IsInf(mass, 0) {
		return fmt.Errorf("mass %v: %w", mass, ErrNonFiniteValue)
	}
	if mass <= 0 {
		return fmt.Errorf("mass %v: %w", mass, ErrNonPositiveMass)
	}
	return nil
}

// ValidateRadius checks that a display radius is non-negative and finite.
func ValidateRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return fmt.Errorf("radius %v: %w", radius, ErrNonFiniteValue)
	}
	if radius < 0 {
		return fmt.Errorf("radius %v: %w", radius, ErrNegativeRadius)
	}
	return nil
}

// ValidatePosition checks that both coordinates are finite.
func ValidatePosition(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return fmt.Errorf("position (%v, %v): %w", x, y, ErrNonFiniteValue)
	}
	return nil
}

// ValidateGravitationalConstant checks that G is positive and finite.
func ValidateGravitationalConstant(g float64) error {
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return fmt.Errorf("gravitational constant %v: %w", g, ErrNonFiniteValue)
	}
	if g <= 0 {
		return fmt.Errorf("gravitational constant %v: %w", g, ErrNonPositiveG)
	}
	return nil
}

// ValidateTimeStep checks that a simulation time step is positive and finite.
func ValidateTimeStep(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("time step %v: %w", dt, ErrNonFiniteValue)
	}
	if dt <= 0 {
		return fmt.Errorf("time step %v: %w", dt, ErrNonPositiveDelta)
	}
	return nil
}

// ValidateBodyCount checks that adding one more body stays within MaxBodies.
func ValidateBodyCount(current int) error {
	if current >= MaxBodies {
		return fmt.Errorf("%d bodies: %w", current, ErrTooManyBodies)
	}
	return nil
}

// ClampWorldDimension raises a world dimension to the accepted minimum.
// Non-finite values also degrade to the minimum; visualization parameters
// favor graceful degradation over hard failure.
func ClampWorldDimension(dim float64) float64 {
	if math.IsNaN(dim) || math.IsInf(dim, 0) || dim < MinWorldDimension {
		return MinWorldDimension
	}
	return dim
}

// ClampGridResolution raises a grid resolution parameter to the accepted
// minimum.
func ClampGridResolution(resolution int) int {
	if resolution < MinGridResolution {
		return MinGridResolution
	}
	return resolution
}
