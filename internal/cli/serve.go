package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	httpAdapter "github.com/aretw0/turing/internal/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds the HTTP server for eng. Metrics registered on reg are
// served on /metrics.
func NewServer(eng *turing.Engine, cfg ServeConfig, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	handler := httpAdapter.NewHandler(eng,
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStepLimit(cfg.StepLimit),
		httpAdapter.WithMaxCount(cfg.MaxCount),
	)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve runs srv on ln until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Turing Server", "address", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		logger.Info("Start shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("Turing Server stopped gracefully")
		return nil
	}
}
