package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// layoutSeed drives the placement and materials of the small spheres
const layoutSeed = 42

// NewDefaultScene creates the classic field of small random spheres around
// three large ones, lit by a dim sun and two point lights
func NewDefaultScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(-10, 2.2, 3),
		LookAt:        core.NewVec3(2, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.25,
		FocusDistance: 7.5,
	}

	samplingConfig := SamplingConfig{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 500,
		MaxDepth:        50,
		Seed:            42,
	}

	world := geometry.NewSurfaceList()

	groundMaterial := material.NewLambertian(core.NewVec3(0.45, 0.45, 0.45))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	addRandomSpheres(world, core.NewSeededSampler(layoutSeed))

	glass := material.NewDielectric(1.5)
	brown := material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	mirror := material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, brown))
	world.Add(geometry.NewSphere(core.NewVec3(-3, 1, 0), 1.0, mirror))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, glass))

	white := core.NewVec3(1, 1, 1)
	lightList := lights.NewLightList(
		lights.NewDirectionalLight(core.NewVec3(2, -1, -0.1).Normalize(), 0.05, white),
		lights.NewPointLight(core.NewVec3(-6.4, 1.0, 2.3), 40.0, white),
		lights.NewPointLight(core.NewVec3(6.0, 1.0, 2.8), 40.0, white),
	)

	return newScene(cameraConfig, world, lightList, samplingConfig)
}

// addRandomSpheres scatters small spheres over a 22x22 grid, leaving a gap
// around the glass sphere
func addRandomSpheres(world *geometry.SurfaceList, sampler *core.RandomSampler) {
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomColor(sampler, 0, 1).MultiplyVec(randomColor(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := randomColor(sampler, 0.5, 1)
				mat = material.NewMetal(albedo, sampler.Range(0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}

			world.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}
}

func randomColor(sampler *core.RandomSampler, lo, hi float64) core.Vec3 {
	return core.NewVec3(sampler.Range(lo, hi), sampler.Range(lo, hi), sampler.Range(lo, hi))
}

// NewSimpleScene creates a single diffuse sphere lit head-on by a
// directional light
func NewSimpleScene() *Scene {
	cameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	}

	samplingConfig := SamplingConfig{
		Width:           200,
		Height:          200,
		SamplesPerPixel: 16,
		MaxDepth:        10,
		Seed:            42,
	}

	world := geometry.NewSurfaceList(
		geometry.NewSphere(core.NewVec3(0, 0, -5), 2, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	lightList := lights.NewLightList(
		lights.NewDirectionalLight(core.NewVec3(0, 0, -1), 1, core.NewVec3(1, 1, 1)),
	)

	return newScene(cameraConfig, world, lightList, samplingConfig)
}
