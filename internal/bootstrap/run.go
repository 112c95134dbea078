package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/carematch-ui/config"
)

// Run opens storage, builds the services and serves HTTP until ctx is canceled,
// SIGINT/SIGTERM arrives or the server fails.
func Run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := OpenStorage(ctx, StorageDeps{Storage: cfg.Storage, Redis: cfg.Redis, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close storage failed", "error", cerr)
		}
	}()

	sink, closeMetrics := NewMetricsSink(cfg.Metrics, logger)
	defer func() {
		if cerr := closeMetrics(); cerr != nil {
			logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
		}
	}()

	services, err := NewServices(ServiceDeps{Config: cfg, Metrics: sink, Logger: logger})
	if err != nil {
		return err
	}

	handler := BuildHTTPHandler(HTTPServerConfig{Config: cfg, Services: services, Storage: storage, Logger: logger})
	server := NewHTTPServer(cfg.HTTP, handler)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}
	return Serve(ctx, ServeConfig{Server: server, Listener: ln, ShutdownTimeout: cfg.HTTP.ShutdownTimeout, Logger: logger})
}

// ServeConfig contains dependencies for Serve.
type ServeConfig struct {
	Server          *http.Server
	Listener        net.Listener
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// Serve runs the server on the listener and shuts it down gracefully when ctx ends.
func Serve(ctx context.Context, cfg ServeConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", cfg.Listener.Addr().String())
		if err := cfg.Server.Serve(cfg.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		// The parent context is already done here.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return group.Wait()
}
