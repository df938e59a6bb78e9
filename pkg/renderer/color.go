package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// EncodeComponent converts a linear color channel to an 8-bit value using
// gamma 2. Non-finite values encode as 0.
func EncodeComponent(c float64) uint8 {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	c = math.Sqrt(math.Max(c, 0))
	return uint8(256 * mgl64.Clamp(c, 0.0, 0.999))
}

// EncodeColor converts a linear color to an opaque 8-bit RGBA value
func EncodeColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: EncodeComponent(c.X),
		G: EncodeComponent(c.Y),
		B: EncodeComponent(c.Z),
		A: 255,
	}
}

// Image converts the frame to an 8-bit gamma-corrected image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, EncodeColor(f.Pixels[y][x]))
		}
	}
	return img
}
