package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kilianp07/studyplan/api/plan"
	"github.com/kilianp07/studyplan/config"
	"github.com/kilianp07/studyplan/core/events"
	coremetrics "github.com/kilianp07/studyplan/core/metrics"
	"github.com/kilianp07/studyplan/core/planner"
	"github.com/kilianp07/studyplan/infra/logger"
	"github.com/kilianp07/studyplan/infra/metrics"
	"github.com/kilianp07/studyplan/infra/mqtt"
	"github.com/kilianp07/studyplan/infra/openai"
	"github.com/kilianp07/studyplan/infra/tracing"
	"github.com/kilianp07/studyplan/internal/eventbus"
)

const shutdownTimeout = 10 * time.Second

// Service wires the plan manager to the HTTP API and its observers.
type Service struct {
	Manager *planner.Manager
	Server  *http.Server

	bus             *eventbus.Bus[events.Event]
	publisher       *mqtt.PlanPublisher
	sink            coremetrics.MetricsSink
	shutdownTracing tracing.ShutdownFunc
	log             logger.Logger
	promPort        string
}

// New creates a Service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := logger.Configure(cfg.Logging); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logg := logger.New("service")

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	svc := &Service{shutdownTracing: shutdownTracing, log: logg, promPort: cfg.Metrics.PrometheusPort}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc.sink = sink

	remote, err := NewRemotePlanner(cfg.Remote, logg)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("remote planner: %w", err)
	}

	svc.bus = eventbus.New[events.Event]()
	manager, err := planner.NewManager(remote, sink, svc.bus, logger.New("planner"))
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("plan manager: %w", err)
	}
	svc.Manager = manager

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPlanPublisher(cfg.MQTT)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	router := plan.NewRouter(manager, plan.Options{
		StaticDir:   cfg.Server.StaticDir,
		Timeout:     cfg.Server.RequestTimeout(),
		Logger:      logger.New("http"),
		ServiceName: cfg.Tracing.ServiceName,
	})
	svc.Server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout(),
	}
	return svc, nil
}

// NewRemotePlanner builds the OpenAI client, or returns nil when the remote
// path is disabled.
func NewRemotePlanner(cfg openai.Config, log logger.Logger) (planner.RemotePlanner, error) {
	if cfg.Disabled {
		log.Infof("remote planner disabled")
		return nil, nil
	}
	if cfg.APIKey == "" {
		log.Warnf("%s not set, remote requests will fall back to the local plan", config.EnvAPIKey)
	}
	client, err := openai.NewClient(cfg, logger.New("openai"))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Run listens on the configured address and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves the API on ln until ctx is cancelled, then shuts the server
// down gracefully.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	var published <-chan struct{}
	if s.publisher != nil {
		published = s.publisher.Run(ctx, s.bus)
	}
	if s.promPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("serving plans on %s", ln.Addr())
		if err := s.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if published != nil {
		select {
		case <-published:
		case <-shutdownCtx.Done():
		}
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if s.bus != nil {
		s.bus.Close()
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
	if c, ok := s.sink.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("metrics sink: %w", err))
		}
	}
	if s.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
	}
	return errors.Join(errs...)
}
