package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t in [tMin, tMax], if any.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// MinHitDistance is the tMin used for every primary, scattered and shadow ray.
// It keeps a ray leaving a surface from hitting that same surface again.
const MinHitDistance = 0.001
