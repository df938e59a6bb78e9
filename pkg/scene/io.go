package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Vec3 is a point or direction in a scene file
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Color is a linear RGB color in a scene file
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// CameraDesc describes the viewpoint
type CameraDesc struct {
	LookFrom    Vec3    `json:"look_from"`
	LookAt      Vec3    `json:"look_at"`
	Up          Vec3    `json:"up"` // defaults to +Y
	VFov        float64 `json:"vfov"`
	AspectRatio float64 `json:"aspect_ratio"` // defaults to width/height
	Aperture    float64 `json:"aperture"`
	FocusDist   float64 `json:"focus_dist"` // <= 0 focuses on look_at
}

// RenderSettings defines quality/performance parameters
type RenderSettings struct {
	Width        int   `json:"width"`
	Height       int   `json:"height"`
	SamplesPerPx int   `json:"samples_per_px"`
	MaxDepth     int   `json:"max_depth"`
	Seed         int64 `json:"seed"`
}

// MaterialType enumerates supported material kinds
type MaterialType string

const (
	MaterialLambertian MaterialType = "lambertian"
	MaterialMetal      MaterialType = "metal"
	MaterialDielectric MaterialType = "dielectric"
)

// MaterialDesc describes a named material that spheres refer to by ID
type MaterialDesc struct {
	ID     string       `json:"id"`
	Type   MaterialType `json:"type"`
	Albedo Color        `json:"albedo"` // lambertian and metal
	Fuzz   float64      `json:"fuzz"`   // metal
	IOR    float64      `json:"ior"`    // dielectric
}

// SphereDesc is a sphere referencing a material by ID
type SphereDesc struct {
	Center     Vec3    `json:"center"`
	Radius     float64 `json:"radius"`
	MaterialID string  `json:"material_id"`
}

// LightType enumerates supported light kinds
type LightType string

const (
	LightDirectional LightType = "directional"
	LightPoint       LightType = "point"
)

// LightDesc describes a directional or point light
type LightDesc struct {
	Type       LightType `json:"type"`
	Direction  Vec3      `json:"direction"` // directional
	Position   Vec3      `json:"position"`  // point
	Brightness float64   `json:"brightness"`
	Color      Color     `json:"color"`
}

// Description is the on-disk form of a scene
type Description struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Camera      CameraDesc     `json:"camera"`
	Render      RenderSettings `json:"render"`
	Materials   []MaterialDesc `json:"materials"`
	Spheres     []SphereDesc   `json:"spheres"`
	Lights      []LightDesc    `json:"lights"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	sc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Decode reads a JSON scene description and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	desc, err := DecodeDescription(r)
	if err != nil {
		return nil, err
	}
	return desc.Build()
}

// DecodeDescription reads a JSON scene description without building it
func DecodeDescription(r io.Reader) (*Description, error) {
	var desc Description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &desc, nil
}

// Save writes a scene description to a JSON file
func Save(path string, desc *Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Build turns the description into a renderable scene. Spheres naming the
// same material ID share one material instance.
func (d *Description) Build() (*Scene, error) {
	materials := make(map[string]material.Material, len(d.Materials))
	for i, md := range d.Materials {
		if md.ID == "" {
			return nil, fmt.Errorf("%w: material %d has no id", ErrInvalidConfig, i)
		}
		if _, exists := materials[md.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate material id %q", ErrInvalidConfig, md.ID)
		}
		mat, err := md.build()
		if err != nil {
			return nil, err
		}
		materials[md.ID] = mat
	}

	world := geometry.NewSurfaceList()
	for i, sd := range d.Spheres {
		mat, ok := materials[sd.MaterialID]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidConfig, i, sd.MaterialID)
		}
		if sd.Radius <= 0 {
			return nil, fmt.Errorf("%w: sphere %d has non-positive radius %g", ErrInvalidConfig, i, sd.Radius)
		}
		world.Add(geometry.NewSphere(sd.Center.vec(), sd.Radius, mat))
	}

	lightList := lights.NewLightList()
	for i, ld := range d.Lights {
		light, err := ld.build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lightList.Add(light)
	}

	cameraConfig := d.cameraConfig()
	sampling := SamplingConfig{
		Width:           d.Render.Width,
		Height:          d.Render.Height,
		SamplesPerPixel: d.Render.SamplesPerPx,
		MaxDepth:        d.Render.MaxDepth,
		Seed:            d.Render.Seed,
	}

	sc := newScene(cameraConfig, world, lightList, sampling)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (d *Description) cameraConfig() renderer.CameraConfig {
	up := d.Camera.Up.vec()
	if up.NearZero() {
		up = core.NewVec3(0, 1, 0)
	}
	aspect := d.Camera.AspectRatio
	if aspect <= 0 && d.Render.Height > 0 {
		aspect = float64(d.Render.Width) / float64(d.Render.Height)
	}
	return renderer.CameraConfig{
		LookFrom:      d.Camera.LookFrom.vec(),
		LookAt:        d.Camera.LookAt.vec(),
		Up:            up,
		VFov:          d.Camera.VFov,
		AspectRatio:   aspect,
		Aperture:      d.Camera.Aperture,
		FocusDistance: d.Camera.FocusDist,
	}
}

func (md MaterialDesc) build() (material.Material, error) {
	switch md.Type {
	case MaterialLambertian:
		return material.NewLambertian(md.Albedo.vec()), nil
	case MaterialMetal:
		return material.NewMetal(md.Albedo.vec(), md.Fuzz), nil
	case MaterialDielectric:
		if md.IOR <= 0 {
			return nil, fmt.Errorf("%w: material %q needs a positive ior", ErrInvalidConfig, md.ID)
		}
		return material.NewDielectric(md.IOR), nil
	default:
		return nil, fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidConfig, md.ID, md.Type)
	}
}

func (ld LightDesc) build() (lights.Light, error) {
	switch ld.Type {
	case LightDirectional:
		direction := ld.Direction.vec()
		if direction.NearZero() {
			return nil, fmt.Errorf("%w: directional light needs a direction", ErrInvalidConfig)
		}
		return lights.NewDirectionalLight(direction.Normalize(), ld.Brightness, ld.Color.vec()), nil
	case LightPoint:
		return lights.NewPointLight(ld.Position.vec(), ld.Brightness, ld.Color.vec()), nil
	default:
		return nil, fmt.Errorf("%w: unknown light type %q", ErrInvalidConfig, ld.Type)
	}
}

func (v Vec3) vec() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

func (c Color) vec() core.Vec3 {
	return core.NewVec3(c.R, c.G, c.B)
}
