package lights

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// DirectionalLight is a light infinitely far away, like the sun
type DirectionalLight struct {
	Direction  core.Vec3 // Direction the light travels, from the light toward the scene
	Brightness float64
	Color      core.Vec3
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(direction core.Vec3, brightness float64, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Direction:  direction,
		Brightness: brightness,
		Color:      color,
	}
}

// Type implements the Light interface
func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Illuminate implements the Light interface
func (dl *DirectionalLight) Illuminate(hit *material.HitRecord, world geometry.Shape) core.Vec3 {
	dirToLight := dl.Direction.Negate().Normalize()
	if dirToLight.NearZero() {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(hit.Point, dirToLight)
	if _, blocked := world.Hit(shadowRay, geometry.MinHitDistance, math.Inf(1)); blocked {
		return core.Vec3{}
	}

	// Surfaces facing away from the light receive nothing
	cosine := math.Max(0, hit.Normal.Dot(dirToLight))
	return dl.Color.Multiply(cosine * dl.Brightness)
}
