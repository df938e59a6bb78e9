package renderer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger on top of the standard logger
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.Default()}
}

// Config contains configuration for parallel tile rendering
type Config struct {
	TileSize   int         // Size of each square tile in pixels
	NumWorkers int         // Number of parallel workers (0 = use CPU count)
	Pool       *WorkerPool // Pool to render on; nil uses the shared pool for NumWorkers
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Frame is a finished render: the averaged linear color of every pixel,
// row 0 at the top of the image.
type Frame struct {
	Width, Height int
	Pixels        [][]core.Vec3
	Stats         RenderStats
}

// At returns the linear color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y][x]
}

// Renderer splits an image into tiles and renders them on a worker pool
type Renderer struct {
	scene     Scene
	config    Config
	sampling  SamplingConfig
	raytracer *Raytracer
	pool      *WorkerPool
	logger    core.Logger
}

// NewRenderer creates a renderer for scene. A nil logger discards output.
func NewRenderer(scene Scene, config Config, logger core.Logger) (*Renderer, error) {
	sampling := scene.GetSamplingConfig()
	if err := sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if scene.GetCamera() == nil {
		return nil, fmt.Errorf("scene has no camera")
	}
	if err := scene.GetCamera().Config().Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	if scene.GetWorld() == nil {
		return nil, fmt.Errorf("scene has no world")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	pool := config.Pool
	if pool == nil {
		pool = SharedWorkerPool(config.NumWorkers)
	}

	return &Renderer{
		scene:     scene,
		config:    config,
		sampling:  sampling,
		raytracer: NewRaytracer(scene),
		pool:      pool,
		logger:    logger,
	}, nil
}

// Render traces every pixel of the scene and returns the averaged frame.
// Cancelling ctx abandons the render: queued tiles are skipped, tiles in
// flight stop at the next pixel and Render returns the context error.
func (r *Renderer) Render(ctx context.Context) (*Frame, error) {
	width, height := r.sampling.Width, r.sampling.Height

	tiles := NewTileGrid(width, height, r.config.TileSize, r.sampling.Seed)

	// Shared pixel statistics array (global image coordinates)
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{
			Tile:       tile,
			TaskID:     tile.ID,
			PixelStats: pixelStats,
		}
	}

	r.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (%d tiles, %d workers)...\n",
		width, height, r.sampling.SamplesPerPixel, r.sampling.MaxDepth, len(tiles), r.pool.GetNumWorkers())
	startTime := time.Now()

	results := r.pool.RenderTiles(ctx, r.raytracer, tasks)
	if err := ctx.Err(); err != nil {
		r.logger.Printf("Rendering cancelled after %v\n", time.Since(startTime))
		return nil, err
	}

	stats := RenderStats{}
	for _, result := range results {
		if result.Error != nil {
			return nil, result.Error
		}
		stats.Merge(result.Stats)
	}

	frame := &Frame{
		Width:  width,
		Height: height,
		Pixels: make([][]core.Vec3, height),
		Stats:  stats,
	}
	for y := 0; y < height; y++ {
		frame.Pixels[y] = make([]core.Vec3, width)
		for x := 0; x < width; x++ {
			frame.Pixels[y][x] = pixelStats[y][x].GetColor()
		}
	}

	r.logger.Printf("Render completed in %v (%d samples, %d non-finite)\n",
		time.Since(startTime), stats.TotalSamples, stats.NonFinite)

	return frame, nil
}
