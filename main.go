package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// options holds the parsed command line. Zero values leave the scene's own
// settings untouched.
type options struct {
	sceneName  string
	scenesDir  string
	width      int
	spp        int
	depth      int
	seed       int64
	seedSet    bool
	workers    int
	tileSize   int
	outputPath string
	list       bool
	help       bool
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene: 'default', 'simple', or a path to a .json scene file")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched by -list for .json scene files")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels; height follows the camera aspect ratio (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed (default: scene seed)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&opts.tileSize, "tile", renderer.DefaultConfig().TileSize, "Tile size in pixels")
	fs.StringVar(&opts.outputPath, "out", "", "Output image (.png or .ppm); default output/<scene>/render_<timestamp>.png")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	if opts.help {
		fmt.Fprintln(output, "Sphere Raytracer")
		fmt.Fprintln(output, "Usage: raytracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
	}

	return opts, nil
}

func main() {
	logger := renderer.NewDefaultLogger()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if opts.help {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	if opts.list {
		return listScenes(opts.scenesDir, logger)
	}

	logger.Printf("Starting Sphere Raytracer...\n")

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	if err := applyOverrides(selectedScene, opts); err != nil {
		return err
	}

	r, err := renderer.NewRenderer(selectedScene, renderer.Config{
		TileSize:   opts.tileSize,
		NumWorkers: opts.workers,
	}, logger)
	if err != nil {
		return err
	}

	frame, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(opts.sceneName, time.Now())
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	if err := renderer.SaveImage(outputPath, frame); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

// createScene resolves a built-in scene name or a .json scene file
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("no scene given")
	}
	sc, err := scene.Create(name)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// applyOverrides replaces scene sampling settings with any set on the command line
func applyOverrides(sc *scene.Scene, opts options) error {
	if opts.width > 0 {
		sc.SetImageWidth(opts.width)
	}
	if opts.spp > 0 {
		sc.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth >= 0 {
		sc.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.seedSet {
		sc.SamplingConfig.Seed = opts.seed
	}
	return sc.Validate()
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", base, fmt.Sprintf("render_%s.png", timestamp))
}

func listScenes(dir string, logger core.Logger) error {
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		return err
	}
	logger.Printf("Available scenes:\n")
	for _, info := range scenes {
		if info.Description != "" {
			logger.Printf("  %-24s %s - %s\n", info.ID, info.Name, info.Description)
		} else {
			logger.Printf("  %-24s %s\n", info.ID, info.Name)
		}
	}
	return nil
}
