package lights

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// PointLight emits from a single position in all directions
type PointLight struct {
	Position   core.Vec3
	Brightness float64
	Color      core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, brightness float64, color core.Vec3) *PointLight {
	return &PointLight{
		Position:   position,
		Brightness: brightness,
		Color:      color,
	}
}

// Type implements the Light interface
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Intensity returns the unshadowed intensity at the given distance.
// Falloff is brightness / (12π·d³), an inverse cube.
func (pl *PointLight) Intensity(distance float64) float64 {
	return pl.Brightness / (12.0 * math.Pi * distance * distance * distance)
}

// Illuminate implements the Light interface
func (pl *PointLight) Illuminate(hit *material.HitRecord, world geometry.Shape) core.Vec3 {
	toLight := pl.Position.Subtract(hit.Point)
	distance := toLight.Length()
	if distance < geometry.MinHitDistance {
		// Light sits on the surface; no meaningful direction or falloff
		return core.Vec3{}
	}

	// Anything hit before reaching the light occludes it
	shadowRay := core.NewRay(hit.Point, toLight.Divide(distance))
	if _, blocked := world.Hit(shadowRay, geometry.MinHitDistance, distance); blocked {
		return core.Vec3{}
	}

	return pl.Color.Multiply(pl.Intensity(distance))
}
