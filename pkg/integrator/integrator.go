package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// world and lights are read-only; sampler is owned by the caller.
	RayColor(ray core.Ray, world geometry.Shape, lightSource lights.Light, sampler core.Sampler) core.Vec3
}
