// Package api serves the HTTP control surface for a running session.
// GET endpoints are read-only queries. POST endpoints are the mutation entry
// points and require a bearer token when an admin key is configured.
// Every handler touches the session only through the frame loop.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/talgya/ghost-cookies/internal/engine"
	"github.com/talgya/ghost-cookies/internal/metrics"
	"github.com/talgya/ghost-cookies/internal/projection"
	"github.com/talgya/ghost-cookies/internal/render"
	"github.com/talgya/ghost-cookies/internal/shop"
)

// Environment variables read by New.
const (
	EnvAdminKey    = "GHOSTCOOKIES_ADMIN_KEY"
	EnvCORSOrigins = "GHOSTCOOKIES_CORS_ORIGINS"
)

// maxBody caps POST bodies.
const maxBody = 1 << 16

// Executor runs fn on the goroutine that owns the session. *engine.Loop
// satisfies it.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// Options configures a Server.
type Options struct {
	Addr            string
	Width, Height   int // frame.png size
	FramesPerMinute int
	AdminKey        string // empty leaves POST endpoints open
}

// Server serves one driver over HTTP.
type Server struct {
	exec     Executor
	driver   *engine.Driver
	renderer *render.Renderer
	palette  render.Palette // owned by the loop goroutine

	opts   Options
	frames *RateLimiter
}

// New creates a server for d. All access to d goes through exec.
func New(exec Executor, d *engine.Driver, r *render.Renderer, opts Options) *Server {
	if opts.AdminKey == "" {
		opts.AdminKey = os.Getenv(EnvAdminKey)
	}
	if opts.FramesPerMinute <= 0 {
		opts.FramesPerMinute = 120
	}
	return &Server{
		exec:     exec,
		driver:   d,
		renderer: r,
		palette:  r.Palette,
		opts:     opts,
		frames:   NewRateLimiter(opts.FramesPerMinute, time.Minute),
	}
}

// SetPalette swaps the frame palette. Safe to call from any goroutine.
func (s *Server) SetPalette(ctx context.Context, p render.Palette) error {
	return s.exec.Do(ctx, func() { s.palette = p })
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", getOnly(s.handleStatus))
	mux.HandleFunc("/api/v1/metrics", getOnly(s.handleMetrics))
	mux.HandleFunc("/api/v1/frame.png", getOnly(RateLimitMiddleware(s.frames, s.handleFrame)))

	mux.HandleFunc("/api/v1/shop", s.postOnly(s.handleShop))
	mux.HandleFunc("/api/v1/threshold", s.postOnly(s.handleThreshold))
	mux.HandleFunc("/api/v1/view", s.postOnly(s.handleView))
	mux.HandleFunc("/api/v1/input/key", s.postOnly(s.handleKey))
	mux.HandleFunc("/api/v1/input/drag", s.postOnly(s.handleDrag))
	mux.HandleFunc("/api/v1/input/wheel", s.postOnly(s.handleWheel))
	mux.HandleFunc("/api/v1/animation", s.postOnly(s.handleAnimation))

	return corsMiddleware(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", s.opts.Addr, "admin_auth", s.opts.AdminKey != "")

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("HTTP API stopped")
	return nil
}

// corsMiddleware adds CORS headers for allowed frontend origins, taken from a
// comma-separated env list. Localhost dev servers are always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range strings.Split(os.Getenv(EnvCORSOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins[origin] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

// postOnly restricts a handler to POST and checks the bearer token when an
// admin key is set.
func (s *Server) postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.opts.AdminKey != "" && !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		next(w, r)
	}
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && token == s.opts.AdminKey
}

// do runs fn on the loop, writing 503 and returning false if it could not.
func (s *Server) do(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.exec.Do(r.Context(), fn); err != nil {
		slog.Warn("loop unavailable", "path", r.URL.Path, "error", err)
		http.Error(w, "simulation unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

type statusResponse struct {
	Generation   string               `json:"generation"`
	GeneratedAt  time.Time            `json:"generated_at"`
	Seed         int64                `json:"seed"`
	Config       shop.Config          `json:"config"`
	Operations   int                  `json:"operations"`
	Samples      int                  `json:"samples"`
	Animation    engine.State         `json:"animation"`
	View         projection.ViewState `json:"view"`
	Frames       uint64               `json:"frames"`
	Instructions bool                 `json:"instructions"`
}

func (s *Server) status() statusResponse {
	sess := s.driver.Session()
	gen := sess.Generation()
	return statusResponse{
		Generation:   gen.ID.String(),
		GeneratedAt:  gen.CreatedAt,
		Seed:         sess.Seed(),
		Config:       sess.Config(),
		Operations:   len(gen.Operations),
		Samples:      len(gen.Samples),
		Animation:    s.driver.State(),
		View:         sess.View,
		Frames:       s.driver.Frames(),
		Instructions: sess.Input.Instructions,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var resp statusResponse
	if !s.do(w, r, func() { resp = s.status() }) {
		return
	}
	writeJSON(w, resp)
}

type metricsResponse struct {
	metrics.Metrics
	Narrative string `json:"narrative"`
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var resp metricsResponse
	if !s.do(w, r, func() {
		sess := s.driver.Session()
		resp = metricsResponse{Metrics: sess.Metrics(), Narrative: sess.Narrative()}
	}) {
		return
	}
	writeJSON(w, resp)
}

// handleFrame renders the current scene off the loop. Generations are never
// mutated after creation, so the snapshot stays valid.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	var (
		scene   *render.Scene
		view    projection.ViewState
		palette render.Palette
	)
	if !s.do(w, r, func() {
		sess := s.driver.Session()
		scene, view, palette = sess.Scene(), sess.View, s.palette
	}) {
		return
	}

	canvas, err := render.NewCanvas(s.opts.Width, s.opts.Height)
	if err != nil {
		slog.Error("frame canvas", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	defer canvas.Close()

	s.renderer.WithPalette(palette).Render(canvas, scene, view)
	if err := canvas.Err(); err != nil {
		slog.Error("frame render", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		slog.Error("frame encode", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// handleShop overlays the request body on the active configuration and
// applies it. Omitted fields keep their current values. The overlay runs on
// the loop so concurrent partial updates do not overwrite each other.
func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var (
		next        shop.Config
		regenerated bool
		applyErr    error
		resp        statusResponse
	)
	if !s.do(w, r, func() {
		next = s.driver.Session().Config()
		if applyErr = json.Unmarshal(body, &next); applyErr != nil {
			return
		}
		regenerated, applyErr = s.driver.Reconfigure(next)
		resp = s.status()
	}) {
		return
	}
	if applyErr != nil {
		writeShopError(w, applyErr)
		return
	}
	slog.Info("shop reconfigured", "archetype", next.Archetype, "regenerated", regenerated)
	writeJSON(w, map[string]any{"regenerated": regenerated, "status": resp})
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Threshold *float64 `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Threshold == nil {
		http.Error(w, "invalid json: threshold required", http.StatusBadRequest)
		return
	}

	var (
		err  error
		resp metricsResponse
	)
	if !s.do(w, r, func() {
		err = s.driver.SetThreshold(*req.Threshold)
		sess := s.driver.Session()
		resp = metricsResponse{Metrics: sess.Metrics(), Narrative: sess.Narrative()}
	}) {
		return
	}
	if err != nil {
		writeConfigError(w, err)
		return
	}
	writeJSON(w, resp)
}

type viewRequest struct {
	Action string  `json:"action"` // pan, rotate, zoom or reset
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Pitch  float64 `json:"pitch"`
	Yaw    float64 `json:"yaw"`
	Factor float64 `json:"factor"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var apply func()
	switch strings.ToLower(req.Action) {
	case "pan":
		apply = func() { s.driver.Pan(req.DX, req.DY) }
	case "rotate":
		apply = func() { s.driver.Rotate(req.Pitch, req.Yaw) }
	case "zoom":
		if req.Factor <= 0 {
			http.Error(w, "zoom factor must be positive", http.StatusBadRequest)
			return
		}
		apply = func() { s.driver.Zoom(req.Factor) }
	case "reset":
		apply = s.driver.ResetView
	default:
		http.Error(w, "action must be pan, rotate, zoom or reset", http.StatusBadRequest)
		return
	}
	s.respondView(w, r, apply)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key  string `json:"key"`
		Down bool   `json:"down"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		http.Error(w, "invalid json: key required", http.StatusBadRequest)
		return
	}
	s.respondView(w, r, func() {
		if req.Down {
			s.driver.KeyDown(req.Key)
		} else {
			s.driver.KeyUp(req.Key)
		}
	})
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Button int     `json:"button"`
		DX     float64 `json:"dx"`
		DY     float64 `json:"dy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.respondView(w, r, func() { s.driver.Drag(req.Button, req.DX, req.DY) })
}

func (s *Server) handleWheel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeltaY float64 `json:"delta_y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	s.respondView(w, r, func() { s.driver.Wheel(req.DeltaY) })
}

func (s *Server) handleAnimation(w http.ResponseWriter, r *http.Request) {
	var state engine.State
	if !s.do(w, r, func() { state = s.driver.Toggle() }) {
		return
	}
	slog.Info("animation toggled", "state", state)
	writeJSON(w, map[string]engine.State{"animation": state})
}

// respondView applies a view mutation on the loop and returns the new view.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, apply func()) {
	var view projection.ViewState
	if !s.do(w, r, func() {
		apply()
		view = s.driver.Session().View
	}) {
		return
	}
	writeJSON(w, view)
}

// writeShopError answers 400 for a body that does not decode onto a config
// and defers to writeConfigError otherwise.
func writeShopError(w http.ResponseWriter, err error) {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	writeConfigError(w, err)
}

func writeConfigError(w http.ResponseWriter, err error) {
	if errors.Is(err, shop.ErrInvalidConfig) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slog.Error("apply config", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
