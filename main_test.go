package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// recordingLogger collects log lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"simple scene", "simple", false},
		{"example JSON scene", "scenes/three-spheres.json", false},

		// Invalid scenes
		{"unknown scene", "cornell", true},
		{"missing JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if err := sc.Validate(); err != nil {
				t.Errorf("Scene '%s' should be valid: %v", tt.sceneType, err)
			}
		})
	}

	if _, err := createScene("cornell"); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-scene", "simple", "-width", "64", "-spp", "2", "-depth", "0", "-seed", "9", "-out", "x.ppm"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.sceneName != "simple" || opts.width != 64 || opts.spp != 2 || opts.depth != 0 || opts.outputPath != "x.ppm" {
		t.Errorf("Unexpected options %+v", opts)
	}
	if !opts.seedSet || opts.seed != 9 {
		t.Errorf("Seed should be recorded as set, got %+v", opts)
	}

	defaults, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if defaults.sceneName != "default" || defaults.depth != -1 || defaults.seedSet {
		t.Errorf("Unexpected defaults %+v", defaults)
	}

	if _, err := parseFlags([]string{"-bogus"}, io.Discard); err == nil {
		t.Error("Unknown flags should be rejected")
	}
}

func TestApplyOverrides(t *testing.T) {
	sc := scene.NewDefaultScene()
	seed := sc.SamplingConfig.Seed

	if err := applyOverrides(sc, options{width: 120, spp: 3, depth: -1}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	got := sc.SamplingConfig
	if got.Width != 120 || got.Height != 80 || got.SamplesPerPixel != 3 || got.MaxDepth != 50 || got.Seed != seed {
		t.Errorf("Unexpected sampling config %+v", got)
	}

	if err := applyOverrides(sc, options{depth: 0, seed: 0, seedSet: true}); err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if sc.SamplingConfig.MaxDepth != 0 || sc.SamplingConfig.Seed != 0 {
		t.Errorf("Explicit zero depth and seed should apply, got %+v", sc.SamplingConfig)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 5, 0, time.UTC)
	tests := []struct {
		scene    string
		expected string
	}{
		{"default", filepath.Join("output", "default", "render_20240301_123005.png")},
		{"scenes/three-spheres.json", filepath.Join("output", "three-spheres", "render_20240301_123005.png")},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.scene, now); got != tt.expected {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.scene, got, tt.expected)
		}
	}
}

func TestRun_RendersImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "simple.ppm")
	opts := options{
		sceneName:  "simple",
		width:      16,
		spp:        1,
		depth:      2,
		tileSize:   8,
		outputPath: out,
	}

	if err := run(context.Background(), opts, core.NopLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n16 16\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:min(len(data), 20)]))
	}
}

func TestRun_ListScenes(t *testing.T) {
	logger := &recordingLogger{}
	if err := run(context.Background(), options{list: true, scenesDir: "scenes"}, logger); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	joined := strings.Join(logger.lines, "\n")
	for _, want := range []string{"default", "simple", "three-spheres.json"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Scene list should mention %q:\n%s", want, joined)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"unknown scene", options{sceneName: "nonexistent"}},
		{"unsupported output", options{sceneName: "simple", width: 4, spp: 1, outputPath: filepath.Join(t.TempDir(), "x.gif")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.opts, core.NopLogger{}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
