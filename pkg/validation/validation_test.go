// pkg/validation/validation_test.go
package validation

import (
	"errors"
	"math"
	"testing"
)

func TestValidateMass(t *testing.T) {
	tests := []struct {
		name    string
		mass    float64
		wantErr error
	}{
		{name: "positive", mass: 100, wantErr: nil},
		{name: "small_positive", mass: 1e-10, wantErr: nil},
		{name: "zero", mass: 0, wantErr: ErrNonPositiveMass},
		{name: "negative", mass: -5, wantErr: ErrNonPositiveMass},
		{name: "nan", mass: math.NaN(), wantErr: ErrNonFiniteValue},
		{name: "positive_inf", mass: math.Inf(1), wantErr: ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMass(tt.mass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMass(%v) = %v, expected %v", tt.mass, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr error
	}{
		{name: "positive", radius: 5, wantErr: nil},
		{name: "zero_allowed", radius: 0, wantErr: nil},
		{name: "negative", radius: -1, wantErr: ErrNegativeRadius},
		{name: "nan", radius: math.NaN(), wantErr: ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRadius(tt.radius)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRadius(%v) = %v, expected %v", tt.radius, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePosition(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		wantErr error
	}{
		{name: "origin", x: 0, y: 0, wantErr: nil},
		{name: "negative_allowed", x: -100, y: -200, wantErr: nil},
		{name: "nan_x", x: math.NaN(), y: 0, wantErr: ErrNonFiniteValue},
		{name: "inf_y", x: 0, y: math.Inf(-1), wantErr: ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePosition(tt.x, tt.y)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePosition(%v, %v) = %v, expected %v", tt.x, tt.y, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGravitationalConstant(t *testing.T) {
	tests := []struct {
		name    string
		g       float64
		wantErr error
	}{
		{name: "positive", g: 100, wantErr: nil},
		{name: "zero", g: 0, wantErr: ErrNonPositiveG},
		{name: "negative", g: -9.8, wantErr: ErrNonPositiveG},
		{name: "inf", g: math.Inf(1), wantErr: ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGravitationalConstant(tt.g)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGravitationalConstant(%v) = %v, expected %v", tt.g, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTimeStep(t *testing.T) {
	tests := []struct {
		name    string
		dt      float64
		wantErr error
	}{
		{name: "frame_step", dt: 0.016, wantErr: nil},
		{name: "zero", dt: 0, wantErr: ErrNonPositiveDelta},
		{name: "negative", dt: -0.016, wantErr: ErrNonPositiveDelta},
		{name: "nan", dt: math.NaN(), wantErr: ErrNonFiniteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeStep(tt.dt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTimeStep(%v) = %v, expected %v", tt.dt, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBodyCount(t *testing.T) {
	if err := ValidateBodyCount(0); err != nil {
		t.Errorf("ValidateBodyCount(0) = %v, expected nil", err)
	}
	if err := ValidateBodyCount(MaxBodies - 1); err != nil {
		t.Errorf("ValidateBodyCount(%d) = %v, expected nil", MaxBodies-1, err)
	}
	if err := ValidateBodyCount(MaxBodies); !errors.Is(err, ErrTooManyBodies) {
		t.Errorf("ValidateBodyCount(%d) = %v, expected ErrTooManyBodies", MaxBodies, err)
	}
}

func TestClampWorldDimension(t *testing.T) {
	tests := []struct {
		name     string
		dim      float64
		expected float64
	}{
		{name: "above_minimum", dim: 800, expected: 800},
		{name: "at_minimum", dim: MinWorldDimension, expected: MinWorldDimension},
		{name: "below_minimum", dim: 10, expected: MinWorldDimension},
		{name: "negative", dim: -50, expected: MinWorldDimension},
		{name: "nan", dim: math.NaN(), expected: MinWorldDimension},
		{name: "inf", dim: math.Inf(1), expected: MinWorldDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampWorldDimension(tt.dim); got != tt.expected {
				t.Errorf("ClampWorldDimension(%v) = %v, expected %v", tt.dim, got, tt.expected)
			}
		})
	}
}

func TestClampGridResolution(t *testing.T) {
	if got := ClampGridResolution(25); got != 25 {
		t.Errorf("ClampGridResolution(25) = %d, expected 25", got)
	}
	if got := ClampGridResolution(0); got != MinGridResolution {
		t.Errorf("ClampGridResolution(0) = %d, expected %d", got, MinGridResolution)
	}
	if got := ClampGridResolution(-3); got != MinGridResolution {
		t.Errorf("ClampGridResolution(-3) = %d, expected %d", got, MinGridResolution)
	}
}
