package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
)

// IndirectDamping scales the light gathered from the scattered ray on every bounce.
// It is not energy conserving; the material attenuation already applies once.
const IndirectDamping = 0.5

// Config contains the integrator settings
type Config struct {
	MaxDepth        int     // Maximum ray bounce depth
	IndirectDamping float64 // Multiplier applied to the recursive bounce
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:        50,
		IndirectDamping: IndirectDamping,
	}
}

// PathTracingIntegrator gathers direct light from the light list at every
// bounce and adds the damped light carried by the scattered ray
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator's configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor implements the Integrator interface
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, lightSource lights.Light, sampler core.Sampler) core.Vec3 {
	return trace(ray, world, lightSource, pt.config.MaxDepth, pt.config.IndirectDamping, sampler)
}

// Trace returns the color for ray with at most depth bounces, using the
// standard IndirectDamping
func Trace(ray core.Ray, world geometry.Shape, lightSource lights.Light, depth int, sampler core.Sampler) core.Vec3 {
	return trace(ray, world, lightSource, depth, IndirectDamping, sampler)
}

func trace(ray core.Ray, world geometry.Shape, lightSource lights.Light, depth int, damping float64, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	// No sky: a miss gathers nothing
	hit, isHit := world.Hit(ray, geometry.MinHitDistance, math.Inf(1))
	if !isHit {
		return core.Vec3{}
	}

	if hit.Material == nil {
		return core.Vec3{}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Vec3{} // Material absorbed the ray
	}

	var direct core.Vec3
	if lightSource != nil {
		direct = scatter.Attenuation.MultiplyVec(lightSource.Illuminate(hit, world))
	}
	indirect := trace(scatter.Scattered, world, lightSource, depth-1, damping, sampler)

	return direct.Add(indirect.Multiply(damping))
}
