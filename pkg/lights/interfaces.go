package lights

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeList        LightType = "list"
)

// Light interface for sources that contribute direct illumination
type Light interface {
	Type() LightType

	// Illuminate returns the light arriving at the hit point from this source.
	// The result is already shadow-tested against world.
	Illuminate(hit *material.HitRecord, world geometry.Shape) core.Vec3
}
