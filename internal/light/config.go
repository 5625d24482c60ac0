// Package light computes per-emitter RGB light fields by raycasting over a
// tile map, cascades diffuse and specular reflections, sums the fields into a
// map-wide irradiance grid and tone maps the result for display.
package light

import (
	"errors"
	"fmt"
)

// Config holds every tunable of the lighting engine.
type Config struct {
	RaycastStep     float64 // ray march increment in tiles
	RaycastFineness float64 // perimeter targets per tile of field edge
	ReflectionLevel int     // bounce generations simulated; 0 disables reflections
	BrightnessFloor float64 // channels below this are invisible

	DiffuseSweep       float64 // half-angle of a diffuse bounce
	DiffuseCollimation float64
	FaceEpsilon        float64 // how far outside a struck face a bounce is emitted

	Ambient          RGB
	ExploredFraction float64 // share of ambient used for remembered tiles
	ExploredMinimum  float64
}

// DefaultConfig returns the tuning used by the demo.
func DefaultConfig() Config {
	return Config{
		RaycastStep:        0.05,
		RaycastFineness:    4,
		ReflectionLevel:    2,
		BrightnessFloor:    1.0 / 255,
		DiffuseSweep:       90,
		DiffuseCollimation: 0,
		FaceEpsilon:        0.01,
		Ambient:            Gray(0.05),
		ExploredFraction:   0.2,
		ExploredMinimum:    0.02,
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.RaycastStep <= 0 {
		errs = append(errs, fmt.Errorf("raycast step must be positive, got %v", c.RaycastStep))
	}
	if c.RaycastFineness <= 0 {
		errs = append(errs, fmt.Errorf("raycast fineness must be positive, got %v", c.RaycastFineness))
	}
	if c.ReflectionLevel < 0 {
		errs = append(errs, fmt.Errorf("reflection level must not be negative, got %d", c.ReflectionLevel))
	}
	if c.BrightnessFloor <= 0 || c.BrightnessFloor >= 1 {
		errs = append(errs, fmt.Errorf("brightness floor must be in (0, 1), got %v", c.BrightnessFloor))
	}
	if c.DiffuseSweep < 0 || c.DiffuseSweep > 180 {
		errs = append(errs, fmt.Errorf("diffuse sweep must be in [0, 180], got %v", c.DiffuseSweep))
	}
	return errors.Join(errs...)
}
