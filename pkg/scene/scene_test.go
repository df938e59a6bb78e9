package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

func TestNewDefaultScene(t *testing.T) {
	sc := NewDefaultScene()
	if err := sc.Validate(); err != nil {
		t.Fatalf("Default scene should be valid: %v", err)
	}

	// Ground, at most 22x22 small spheres, three large spheres
	n := sc.World.Len()
	if n < 4+400 || n > 4+22*22 {
		t.Errorf("Unexpected sphere count %d", n)
	}
	if sc.Lights.Len() != 3 {
		t.Errorf("Expected 3 lights, got %d", sc.Lights.Len())
	}
	if sc.Lights.Lights[0].Type() != lights.LightTypeDirectional ||
		sc.Lights.Lights[1].Type() != lights.LightTypePoint ||
		sc.Lights.Lights[2].Type() != lights.LightTypePoint {
		t.Error("Expected one directional light followed by two point lights")
	}

	if sc.CameraConfig.VFov != 30 || sc.CameraConfig.Aperture != 0.25 || sc.CameraConfig.FocusDistance != 7.5 {
		t.Errorf("Unexpected camera config %+v", sc.CameraConfig)
	}
	if sc.Camera.LensRadius() != 0.125 {
		t.Errorf("Lens radius should be 0.125, got %f", sc.Camera.LensRadius())
	}
}

func TestNewDefaultScene_Deterministic(t *testing.T) {
	a := NewDefaultScene()
	b := NewDefaultScene()

	if a.World.Len() != b.World.Len() {
		t.Fatalf("Sphere counts differ: %d vs %d", a.World.Len(), b.World.Len())
	}

	ray := core.NewRay(core.NewVec3(-10, 2.2, 3), core.NewVec3(12, -2.2, -3))
	hitA, okA := a.World.Hit(ray, 0.001, 1e9)
	hitB, okB := b.World.Hit(ray, 0.001, 1e9)
	if okA != okB || (okA && hitA.T != hitB.T) {
		t.Error("Two default scenes should have identical layouts")
	}
}

func TestNewDefaultScene_SmallSpheres(t *testing.T) {
	sc := NewDefaultScene()
	clearing := core.NewVec3(4, 0.2, 0)

	small := 0
	for _, shape := range sc.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Unexpected shape %T", shape)
		}
		if sphere.Radius != 0.2 {
			continue
		}
		small++
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v is inside the clearing", sphere.Center)
		}
		if sphere.Center.Y != 0.2 {
			t.Errorf("Small sphere at %v should rest on the ground", sphere.Center)
		}
		switch m := sphere.Material.(type) {
		case *material.Lambertian:
		case *material.Metal:
			if m.Fuzz > 0.5 || m.Albedo.X < 0.5 {
				t.Errorf("Metal outside expected range: %+v", m)
			}
		case *material.Dielectric:
			if m.RefractiveIndex != 1.5 {
				t.Errorf("Glass should have index 1.5, got %f", m.RefractiveIndex)
			}
		default:
			t.Errorf("Unexpected material %T", m)
		}
	}
	if small != sc.World.Len()-4 {
		t.Errorf("Expected %d small spheres, got %d", sc.World.Len()-4, small)
	}
}

func TestNewSimpleScene(t *testing.T) {
	sc := NewSimpleScene()
	if err := sc.Validate(); err != nil {
		t.Fatalf("Simple scene should be valid: %v", err)
	}
	if sc.World.Len() != 1 || sc.Lights.Len() != 1 {
		t.Errorf("Expected one sphere and one light, got %d and %d", sc.World.Len(), sc.Lights.Len())
	}
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Scene)
	}{
		{"No camera", func(s *Scene) { s.Camera = nil }},
		{"No world", func(s *Scene) { s.World = nil }},
		{"Zero width", func(s *Scene) { s.SamplingConfig.Width = 0 }},
		{"Zero samples", func(s *Scene) { s.SamplingConfig.SamplesPerPixel = 0 }},
		{"Negative depth", func(s *Scene) { s.SamplingConfig.MaxDepth = -1 }},
		{"Zero aspect ratio", func(s *Scene) { s.CameraConfig.AspectRatio = 0 }},
		{"Camera at its target", func(s *Scene) { s.CameraConfig.LookAt = s.CameraConfig.LookFrom }},
		{"Up along view direction", func(s *Scene) {
			s.CameraConfig.Up = s.CameraConfig.LookAt.Subtract(s.CameraConfig.LookFrom)
		}},
		{"Zero field of view", func(s *Scene) { s.CameraConfig.VFov = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewSimpleScene()
			tt.modify(sc)
			err := sc.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestScene_NilListsAreNilInterfaces(t *testing.T) {
	sc := &Scene{}
	if sc.GetWorld() != nil {
		t.Error("Missing world should be a nil Shape")
	}
	if sc.GetLights() != nil {
		t.Error("Missing lights should be a nil Light")
	}
}

func TestScene_SetImageWidth(t *testing.T) {
	sc := NewDefaultScene()
	sc.SetImageWidth(300)
	if sc.SamplingConfig.Width != 300 || sc.SamplingConfig.Height != 200 {
		t.Errorf("Expected 300x200 at 3:2, got %dx%d", sc.SamplingConfig.Width, sc.SamplingConfig.Height)
	}
}
