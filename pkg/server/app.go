package server

import (
	"context"
	"errors"
	"time"

	dservice "SentiPnL/internal/domain/service"
	"SentiPnL/internal/handler/ws"
	"SentiPnL/pkg/config"
	xhttp "SentiPnL/pkg/http"
	applogger "SentiPnL/pkg/logger"
)

// App encapsulates the HTTP serving lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	svc        dservice.ReportService
	hub        *ws.Hub
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	svc dservice.ReportService,
	hub *ws.Hub,
	checks map[string]xhttp.HealthCheck,
	handlers ...xhttp.Handler,
) *App {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
	}
	for name, check := range checks {
		opts = append(opts, xhttp.WithHealthCheck(name, check))
	}
	if !cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(""))
	} else {
		opts = append(opts, xhttp.WithMetricsPath(cfg.Metrics.Path))
	}
	if hub != nil {
		handlers = append(handlers, hub)
	}
	return &App{
		cfg:        cfg,
		l:          l,
		svc:        svc,
		hub:        hub,
		httpServer: xhttp.NewServer(l, handlers, opts...),
	}
}

// Server exposes the HTTP server, mainly for tests.
func (a *App) Server() *xhttp.Server { return a.httpServer }

// Run serves until ctx is cancelled or the listener fails. With analyzeOnStart an
// analysis runs in the background once the server is up; its failure is only logged.
func (a *App) Run(ctx context.Context, analyzeOnStart bool) error {
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	if analyzeOnStart {
		go func() {
			rep, err := a.svc.Analyze(ctx, dservice.AnalyzeOptions{})
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					a.l.Error("startup analysis failed", applogger.Error(err))
				}
				return
			}
			a.l.Info("startup analysis done",
				applogger.String("id", rep.ID),
				applogger.Int("merged_rows", rep.MergedRows),
			)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info("shutdown signal received")
	case runErr = <-a.httpServer.Errors():
	}
	a.shutdown()
	return runErr
}

// shutdown stops the HTTP server and disconnects websocket subscribers.
// Infrastructure clients are closed by the DI cleanup.
func (a *App) shutdown() {
	a.l.Info("shutting down...")

	timeout := a.httpServer.ShutdownTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if a.hub != nil {
		a.hub.Close()
	}
	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}
	a.l.Info("shutdown complete")
}
