package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// maxSampleBudget caps width*height*spp for a single request
const maxSampleBudget = 50_000_000

// Server renders scenes on request and returns the finished image
type Server struct {
	port      int
	scenesDir string
	pool      *renderer.WorkerPool // shared by every request
}

// NewServer creates a new web server and starts its render workers
func NewServer(port int, scenesDir string, workers int) *Server {
	return &Server{port: port, scenesDir: scenesDir, pool: renderer.NewWorkerPool(workers)}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string // Scene ID as listed by /api/scenes
	Width           int    // Image width; height follows the camera aspect ratio
	SamplesPerPixel int
	MaxDepth        int
	Seed            int64
	Format          string // "png" or "ppm"
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the scenes that can be rendered
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenes)
}

// handleRender renders one image and writes it as the response body.
// The render stops if the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	sceneObj.SetImageWidth(req.Width)
	sceneObj.SamplingConfig.SamplesPerPixel = req.SamplesPerPixel
	sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	sceneObj.SamplingConfig.Seed = req.Seed
	if err := checkSampleBudget(sceneObj.SamplingConfig); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	logger := renderer.NewDefaultLogger()
	rt, err := renderer.NewRenderer(sceneObj, renderer.Config{
		TileSize:   renderer.DefaultConfig().TileSize,
		NumWorkers: s.pool.GetNumWorkers(),
		Pool:       s.pool,
	}, logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startTime := time.Now()
	frame, err := rt.Render(r.Context())
	if err != nil {
		// Client is probably gone; nothing useful to send
		logger.Printf("Render of %s aborted: %v\n", req.Scene, err)
		return
	}

	var buf bytes.Buffer
	contentType := "image/png"
	if req.Format == "ppm" {
		contentType = "image/x-portable-pixmap"
		err = renderer.WritePPM(&buf, frame)
	} else {
		err = renderer.WritePNG(&buf, frame)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode image: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(frame.Stats.TotalSamples))
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:  values.Get("scene"),
		Format: values.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "ppm" {
		return nil, fmt.Errorf("format must be png or ppm, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 50, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

// checkSampleBudget rejects renders whose total camera samples exceed
// maxSampleBudget, even when each parameter is within its own range.
func checkSampleBudget(cfg renderer.SamplingConfig) error {
	total := int64(cfg.Width) * int64(cfg.Height) * int64(cfg.SamplesPerPixel)
	if total > maxSampleBudget {
		return fmt.Errorf("%dx%d at %d spp is %d samples, limit is %d",
			cfg.Width, cfg.Height, cfg.SamplesPerPixel, total, maxSampleBudget)
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a scene by ID. Only listed scenes may be rendered, so
// clients cannot name arbitrary files.
func (s *Server) createScene(id string) (*scene.Scene, error) {
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return scene.Create(id)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
}
