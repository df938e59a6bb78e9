package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed for per-tile random generators
}

// Validate reports the first problem with the configuration
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
	GetLights() lights.Light
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders pixel regions of a scene. It holds no mutable state
// and is safe to share between workers.
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer using the scene's sampling config
func NewRaytracer(scene Scene) *Raytracer {
	config := scene.GetSamplingConfig()
	return &Raytracer{
		scene:  scene,
		config: config,
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{
			MaxDepth:        config.MaxDepth,
			IndirectDamping: integrator.IndirectDamping,
		}),
	}
}

// ScreenCoordinates maps a pixel column i and bottom-up row j plus jitter
// to normalized camera coordinates.
func (rt *Raytracer) ScreenCoordinates(i, j int, jitter core.Vec2) (s, t float64) {
	s = (float64(i) + jitter.X) / float64(max(rt.config.Width-1, 1))
	t = (float64(j) + jitter.Y) / float64(max(rt.config.Height-1, 1))
	return s, t
}

// RenderBounds renders every pixel inside bounds into pixelStats, which is
// indexed in image coordinates (row 0 at the top). Tiles never overlap, so
// concurrent calls on disjoint bounds are safe. ctx is checked before each
// pixel; on cancellation the partial stats are returned with ctx.Err().
func (rt *Raytracer) RenderBounds(ctx context.Context, bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) (RenderStats, error) {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	lightSource := rt.scene.GetLights()
	sampler := core.NewRandomSampler(random)

	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Camera rows count upwards from the bottom of the image
		j := rt.config.Height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if err := ctx.Err(); err != nil {
				stats.finalize()
				return stats, err
			}
			pixel := &pixelStats[y][x]
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				s, t := rt.ScreenCoordinates(x, j, sampler.Get2D())
				ray := camera.GetRay(s, t, sampler)

				color := rt.integrator.RayColor(ray, world, lightSource, sampler)
				if !color.IsFinite() {
					stats.NonFinite++
					color = core.Vec3{}
				}
				pixel.AddSample(color)
				stats.TotalSamples++
			}
			stats.TotalPixels++
		}
	}

	stats.finalize()
	return stats, nil
}
