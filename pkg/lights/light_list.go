package lights

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// LightList is a Light that sums the contributions of the lights it holds
type LightList struct {
	Lights []Light
}

// NewLightList creates a list holding the given lights
func NewLightList(lights ...Light) *LightList {
	return &LightList{Lights: lights}
}

// Add appends a light to the list
func (ll *LightList) Add(light Light) {
	ll.Lights = append(ll.Lights, light)
}

// Len returns the number of lights directly held by the list
func (ll *LightList) Len() int {
	return len(ll.Lights)
}

// Type implements the Light interface
func (ll *LightList) Type() LightType {
	return LightTypeList
}

// Illuminate implements the Light interface. Each light does its own shadow test.
func (ll *LightList) Illuminate(hit *material.HitRecord, world geometry.Shape) core.Vec3 {
	total := core.Vec3{}
	for _, light := range ll.Lights {
		total = total.Add(light.Illuminate(hit, world))
	}
	return total
}
