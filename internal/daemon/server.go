package daemon

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bolt-foundry/gambit/internal/config"
	"github.com/bolt-foundry/gambit/internal/model"
	"github.com/bolt-foundry/gambit/internal/observability"
	"github.com/bolt-foundry/gambit/internal/router"
	"github.com/bolt-foundry/gambit/internal/rpc"
	routerrpc "github.com/bolt-foundry/gambit/internal/rpc/router"
	"github.com/bolt-foundry/gambit/internal/settings"
)

// Server hosts the routing daemon: health/metrics endpoints plus the resolve
// RPC over Connect and plain JSON.
type Server struct {
	set     *settings.Settings
	logger  *zap.Logger
	metrics *observability.Metrics
	service *router.Service
}

// NewServer constructs a daemon instance. logger may be nil.
func NewServer(set *settings.Settings, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := observability.NewMetrics()

	store := config.NewStore()
	store.Observer = metrics

	service := router.New(store, set.Fallback(), metrics, logger)

	return &Server{set: set, logger: logger, metrics: metrics, service: service}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// error.
func (s *Server) Run(ctx context.Context) error {
	resolver := &serviceResolver{service: s.service}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/metrics", s.metricsHandler)
	mux.Handle("/router/resolve", routerrpc.NewHandler(resolver, s.metrics))

	transport := strings.ToLower(strings.TrimSpace(s.set.Server.Transport))
	handler := http.Handler(mux)
	if transport != "http" {
		path, connectHandler := routerrpc.NewConnectHandler(resolver, s.metrics)
		mux.Handle(path, connectHandler)
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              s.set.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting gambit router daemon",
			zap.String("addr", s.set.Server.Addr),
			zap.String("fallback_provider", string(s.set.Fallback())))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down gambit router daemon")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.set.Server.MetricsEnabled {
		http.NotFound(w, r)
		return
	}

	promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}

// serviceResolver adapts router.Service to the wire types.
type serviceResolver struct {
	service *router.Service
}

func (r *serviceResolver) ResolveModel(ctx context.Context, req rpc.ResolveModelRequest) (rpc.ResolveModelResponse, error) {
	// Handler validation already rejected unknown keys.
	fallback, _ := model.ParseProviderKey(req.FallbackProvider)

	res, err := r.service.Resolve(ctx, req.StartPath, req.Model, fallback)
	if err != nil {
		return rpc.ResolveModelResponse{}, err
	}

	resp := rpc.ResolveModelResponse{
		RequestID:    req.RequestID,
		ConfigRoot:   res.ConfigRoot,
		ConfigPath:   res.ConfigPath,
		Model:        res.Resolution.Model,
		Alias:        res.Resolution.Alias,
		Applied:      res.Resolution.Applied,
		MissingAlias: res.Resolution.MissingAlias,
		Params:       res.Resolution.Params,
		Provider:     string(res.Provider),
		Resolved:     res.Resolved,
	}
	for _, skipped := range res.Skipped {
		resp.Skipped = append(resp.Skipped, rpc.SkippedAlias{Name: skipped.Name, Reason: skipped.Reason})
	}
	return resp, nil
}
