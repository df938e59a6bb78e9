package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrInvalidConfig is returned when a scene cannot be rendered as configured
var ErrInvalidConfig = errors.New("invalid scene configuration")

// SamplingConfig contains rendering configuration
type SamplingConfig = renderer.SamplingConfig

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.SurfaceList // Objects in the scene
	Lights         *lights.LightList     // Lights in the scene
	SamplingConfig SamplingConfig
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetLights implements renderer.Scene
func (s *Scene) GetLights() lights.Light {
	if s.Lights == nil {
		return nil
	}
	return s.Lights
}

// GetSamplingConfig implements renderer.Scene
func (s *Scene) GetSamplingConfig() SamplingConfig {
	return s.SamplingConfig
}

// SetImageWidth changes the output width, deriving the height from the
// camera's aspect ratio
func (s *Scene) SetImageWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: scene has no camera", ErrInvalidConfig)
	}
	if s.World == nil {
		return fmt.Errorf("%w: scene has no world", ErrInvalidConfig)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// newScene assembles a scene and builds its camera
func newScene(cameraConfig renderer.CameraConfig, world *geometry.SurfaceList, lightList *lights.LightList, sampling SamplingConfig) *Scene {
	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          world,
		Lights:         lightList,
		SamplingConfig: sampling,
	}
}
