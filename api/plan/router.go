// Package plan exposes the plan generator over HTTP.
package plan

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/kilianp07/studyplan/core/logger"
	"github.com/kilianp07/studyplan/core/model"
)

// DefaultTimeout bounds the handling of one request. It sits above the
// remote client timeout so the local fallback still has time to run.
const DefaultTimeout = 30 * time.Second

// Generator produces a plan for a request. *planner.Manager implements it.
type Generator interface {
	Generate(ctx context.Context, req model.PlanRequest) model.PlanResult
}

// Options configures the router.
type Options struct {
	// StaticDir is served for every path the API does not handle. Empty or
	// missing directories disable static serving.
	StaticDir string
	Timeout   time.Duration
	Logger    logger.Logger
	// ServiceName labels server spans.
	ServiceName string
}

// NewRouter returns the HTTP handler for the plan API.
func NewRouter(gen Generator, opts Options) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NopLogger{}
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "studyplan"
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))

	h := &handler{gen: gen, log: opts.Logger}
	r.Get("/healthz", h.health)
	r.Post("/api/plan", h.createPlan)

	if dirExists(opts.StaticDir) {
		fs := http.FileServer(http.Dir(opts.StaticDir))
		r.NotFound(fs.ServeHTTP)
	} else if opts.StaticDir != "" {
		opts.Logger.Warnf("static dir %q not found, static serving disabled", opts.StaticDir)
	}

	return otelhttp.NewHandler(r, opts.ServiceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debugw("http request", map[string]any{
				"request_id":  middleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
