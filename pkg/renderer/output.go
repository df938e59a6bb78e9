package renderer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
)

// WritePPM writes the frame as a plain-text (P3) PPM image
func WritePPM(w io.Writer, frame *Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return err
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			c := EncodeColor(frame.Pixels[y][x])
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WritePNG writes the frame as a PNG image
func WritePNG(w io.Writer, frame *Frame) error {
	return gg.NewContextForRGBA(frame.Image()).EncodePNG(w)
}

// SaveImage writes the frame to path, choosing the format from its extension
func SaveImage(path string, frame *Frame) error {
	var write func(io.Writer, *Frame) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		write = WritePNG
	case ".ppm":
		write = WritePPM
	default:
		return fmt.Errorf("unsupported image format %q (want .png or .ppm)", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
