// Package server serves a plot directory over HTTP.
//
// Besides the static products written by printframes it exposes a small
// JSON API:
//
//	GET  /healthz                    liveness and build info
//	GET  /api/frames                 frames in the output directory
//	GET  /api/frames/{n}             one frame and its rendered images
//	POST /api/frames/{n}/render      re-render one frame
//	GET  /metrics                    Prometheus metrics, when enabled
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/clawplot/pkg/buildinfo"
	"github.com/matzehuels/clawplot/pkg/errors"
	"github.com/matzehuels/clawplot/pkg/frame"
	"github.com/matzehuels/clawplot/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// RenderFunc re-renders the given frame and reports the run.
type RenderFunc func(ctx context.Context, frameno int) (*pipeline.Result, error)

// Options configures a Server.
type Options struct {
	PlotDir string
	OutDir  string

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	// Render enables POST /api/frames/{n}/render when set.
	Render RenderFunc
}

// Server is the plot HTTP server.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New builds a server for opts.
func New(opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/frames", func(r chi.Router) {
		r.Get("/", s.handleFrames)
		r.Get("/{n}", s.handleFrame)
		r.Post("/{n}/render", s.handleRender)
	})
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+pipeline.IndexFile, http.StatusFound)
	})
	r.Handle("/*", http.FileServer(http.Dir(s.opts.PlotDir)))
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving plots", "addr", addr, "dir", s.opts.PlotDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// FrameInfo describes one frame in API responses.
type FrameInfo struct {
	Number int      `json:"number"`
	Time   float64  `json:"time"`
	Meqn   int      `json:"meqn"`
	Images []string `json:"images"`
}

// RenderResponse is the body of a successful render request.
type RenderResponse struct {
	RunID     string   `json:"run_id"`
	Files     []string `json:"files"`
	CacheHits int      `json:"cache_hits"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	nums, err := frame.List(s.opts.OutDir)
	if err != nil {
		s.writeError(w, err)
		return
	}
	infos := make([]FrameInfo, 0, len(nums))
	for _, n := range nums {
		info, err := s.frameInfo(n)
		if err != nil {
			s.logger.Warn("skipping unreadable frame", "frame", n, "err", err)
			continue
		}
		infos = append(infos, *info)
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	n, err := frameParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	info, err := s.frameInfo(n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.opts.Render == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "rendering is disabled"})
		return
	}
	n, err := frameParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.opts.Render(r.Context(), n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{RunID: res.RunID, Files: res.Files, CacheHits: res.CacheHits})
}

func (s *Server) frameInfo(n int) (*FrameInfo, error) {
	f, err := frame.ReadHeader(s.opts.OutDir, n)
	if err != nil {
		return nil, err
	}
	images, err := filepath.Glob(filepath.Join(s.opts.PlotDir, fmt.Sprintf("frame%04dfig*", n)))
	if err != nil {
		return nil, err
	}
	info := &FrameInfo{Number: n, Time: f.Time, Meqn: f.Meqn, Images: make([]string, 0, len(images))}
	for _, path := range images {
		info.Images = append(info.Images, filepath.Base(path))
	}
	sort.Strings(info.Images)
	return info, nil
}

func frameParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "n")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid frame number %q", raw)
	}
	return n, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFrameNotFound, errors.ErrCodeFigureNotFound, errors.ErrCodeSetplotNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFrame, errors.ErrCodeInvalidPlotData, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
