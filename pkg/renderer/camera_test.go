package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance &&
		math.Abs(a.Y-b.Y) < tolerance &&
		math.Abs(a.Z-b.Z) < tolerance
}

func TestCamera_CenterRayPointsAtTarget(t *testing.T) {
	tests := []struct {
		name     string
		lookFrom core.Vec3
		lookAt   core.Vec3
	}{
		{"Down negative Z", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)},
		{"Oblique", core.NewVec3(-10, 2.2, 3), core.NewVec3(2, 0, 0)},
		{"Along X", core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := NewCamera(CameraConfig{
				LookFrom:    tt.lookFrom,
				LookAt:      tt.lookAt,
				Up:          core.NewVec3(0, 1, 0),
				VFov:        30,
				AspectRatio: 1.5,
			})

			ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(42))
			expected := tt.lookAt.Subtract(tt.lookFrom).Normalize()

			if !vecClose(ray.Origin, tt.lookFrom, 1e-12) {
				t.Errorf("Pinhole ray origin should be %v, got %v", tt.lookFrom, ray.Origin)
			}
			if !vecClose(ray.Direction.Normalize(), expected, 1e-9) {
				t.Errorf("Center ray direction should be %v, got %v", expected, ray.Direction.Normalize())
			}
			if !vecClose(camera.GetCameraForward(), expected, 1e-9) {
				t.Errorf("Camera forward should be %v, got %v", expected, camera.GetCameraForward())
			}
		})
	}
}

func TestCamera_FieldOfView(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	})
	sampler := core.NewSeededSampler(42)

	// At 90 degrees the top edge is 45 degrees above the axis
	top := camera.GetRay(0.5, 1, sampler).Direction.Normalize()
	expectedTop := core.NewVec3(0, 1, -1).Normalize()
	if !vecClose(top, expectedTop, 1e-9) {
		t.Errorf("Top edge ray should be %v, got %v", expectedTop, top)
	}

	// Aspect ratio 2 doubles the horizontal extent
	right := camera.GetRay(1, 0.5, sampler).Direction
	if math.Abs(right.X/-right.Z-2) > 1e-9 {
		t.Errorf("Right edge ray should have slope 2, got %v", right)
	}
}

func TestCamera_DefocusBlur(t *testing.T) {
	config := CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0.5,
		FocusDistance: 4,
	}
	blurred := NewCamera(config)
	config.Aperture = 0
	pinhole := NewCamera(config)

	if blurred.LensRadius() != 0.25 {
		t.Fatalf("Lens radius should be half the aperture, got %f", blurred.LensRadius())
	}

	sampler := core.NewSeededSampler(42)
	for i := 0; i < 100; i++ {
		s, v := sampler.Get1D(), sampler.Get1D()
		ray := blurred.GetRay(s, v, sampler)
		reference := pinhole.GetRay(s, v, sampler)

		if ray.Origin.Length() > 0.25+1e-9 {
			t.Fatalf("Ray origin %v outside the lens", ray.Origin)
		}
		if ray.Origin.Z != 0 {
			t.Fatalf("Lens samples should stay in the camera plane, got %v", ray.Origin)
		}
		// Every lens sample converges on the same point of the focus plane
		if !vecClose(ray.At(1), reference.At(1), 1e-9) {
			t.Fatalf("Blurred ray misses focus point: %v vs %v", ray.At(1), reference.At(1))
		}
	}
}

func TestCamera_FocusDistanceDefaultsToTarget(t *testing.T) {
	config := CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -3),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
	}
	implicit := NewCamera(config)
	config.FocusDistance = 3
	explicit := NewCamera(config)

	sampler := core.NewSeededSampler(1)
	a := implicit.GetRay(0.2, 0.7, sampler)
	b := explicit.GetRay(0.2, 0.7, sampler)
	if !vecClose(a.Direction, b.Direction, 1e-12) {
		t.Errorf("Implicit focus distance should match |LookFrom-LookAt|: %v vs %v", a.Direction, b.Direction)
	}
	if math.Abs(a.Direction.Z+3) > 1e-12 {
		t.Errorf("Center of the focus plane should lie 3 units ahead, got %v", a.Direction)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	valid := CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid camera rejected: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"Same position and target", func(c *CameraConfig) { c.LookAt = c.LookFrom }},
		{"Up along view direction", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, -3) }},
		{"Up opposite view direction", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }},
		{"Zero up", func(c *CameraConfig) { c.Up = core.Vec3{} }},
		{"Zero field of view", func(c *CameraConfig) { c.VFov = 0 }},
		{"Straight field of view", func(c *CameraConfig) { c.VFov = 180 }},
		{"Zero aspect ratio", func(c *CameraConfig) { c.AspectRatio = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.modify(&config)
			if err := config.Validate(); err == nil {
				t.Errorf("Expected an error for %+v", config)
			}
		})
	}
}
